package types

import (
	"github.com/annel0/dig-game/internal/world/tile"
)

// Rock — базовая порода. Большинство типов наследуют от неё порог
// разрушения и шаблон маски.
var Rock = &tile.Descriptor{
	Name:           "Rock",
	BreakThreshold: ptr(tile.DamageMining),
	MaskPattern:    ptr("rock"),
	Score:          ptr(1),
}

// Dirt — мягкий поверхностный грунт
var Dirt = &tile.Descriptor{
	Name:        "Dirt",
	Base:        ptr(tile.RockID),
	MaskPattern: ptr("dirt"),
	Score:       ptr(0),
}

// Grass — травяной слой на поверхности
var Grass = &tile.Descriptor{
	Name:     "Grass",
	Base:     ptr(tile.DirtID),
	Category: ptr("Surface"),
}

// Metal — жила металла: киркой не берётся, только взрывом
var Metal = &tile.Descriptor{
	Name:           "Metal",
	BreakThreshold: ptr(tile.DamageExplosion),
	MaskPattern:    ptr("metal"),
	HitSound:       ptr(tile.SoundMetalHit),
	Score:          ptr(50),
}

// Cavern — естественная пустота. Не отрисовывается сама (invisible),
// не участвует в сглаживании соседей (separated), фоном служит порода.
var Cavern = &tile.Descriptor{
	Name:          "Cavern",
	Invisible:     ptr(true),
	Separated:     ptr(true),
	Nonselectable: ptr(true),
	Background:    ptr(tile.RockID),
}

// Mineshaft — вход в шахту на поверхности: постоянный источник света.
// Эмиссия на единицу выше LightMax, чтобы прилегающие тайлы были
// освещены полностью.
var Mineshaft = &tile.Descriptor{
	Name:          "Mineshaft",
	EmittedLight:  ptr(tile.LightEmission),
	Nonselectable: ptr(true),
	Separated:     ptr(true),
}
