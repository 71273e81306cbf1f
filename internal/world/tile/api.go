package tile

import (
	"github.com/annel0/dig-game/internal/vec"
)

// API определяет интерфейс для взаимодействия хуков типа с конкретным
// тайлом и его миром. Хуки получают ровно этот узкий срез возможностей:
// они не владеют ни тайлом, ни сеткой.
type API interface {
	// Pos возвращает координаты тайла в сетке мира.
	Pos() vec.Vec2

	// TypeID возвращает тип тайла.
	TypeID() ID

	// Light возвращает текущий эффективный уровень освещённости [0, LightMax].
	Light() int

	// Accessible сообщает, доступен ли тайл для взаимодействия.
	Accessible() bool

	// Damage применяет урон к этому тайлу. При effects воспроизводятся
	// звук и частицы.
	Damage(kind DamageKind, amount int, effects bool)

	// Detonate подрывает тайл: удаляет его и наносит урон по области.
	Detonate()

	// RemoveSelf удаляет тайл из сетки без начисления очков.
	RemoveSelf(accessible bool)

	// AddExplosive добавляет взрывчатку в инвентарь забега.
	AddExplosive()

	// PlaySound проигрывает звуковой эффект через коллаборатора Sound.
	PlaySound(kind SoundKind)

	// SpawnParticles создаёт частицы в пиксельных координатах тайла.
	SpawnParticles(visual string, amount int)
}

const (
	// LightMax — максимальный эффективный уровень освещённости тайла.
	LightMax = 3

	// LightEmission — фиксированная эмиссия источников света.
	// На единицу выше LightMax, чтобы соседи источника получали полную яркость.
	LightEmission = LightMax + 1
)
