package types

import (
	"github.com/annel0/dig-game/internal/world/tile"
)

// Explosives — заряд взрывчатки в породе.
// Реагирует только на урон вида Explosion: детонирует сам, подавляя общую
// обработку (тайл к этому моменту уже удалён алгоритмом взрыва).
// Добыча киркой не подрывает заряд, а забирает его в инвентарь.
// Правый клик по доступному заряду подрывает его напрямую.
var Explosives = &tile.Descriptor{
	Name:           "Explosives",
	BreakThreshold: ptr(tile.DamageMining),
	MaskPattern:    ptr("rock"),
	BreakSound:     ptr(tile.SoundCollect),
	Score:          ptr(0),

	OnDamage: func(api tile.API, kind tile.DamageKind, amount int) bool {
		if kind == tile.DamageExplosion {
			api.Detonate()
			return true
		}
		return false
	},

	OnBreak: func(api tile.API, kind tile.DamageKind) {
		if kind == tile.DamageMining {
			api.AddExplosive()
		}
	},

	OnRightClick: func(api tile.API) bool {
		if !api.Accessible() {
			return false
		}
		api.Detonate()
		return true
	},
}
