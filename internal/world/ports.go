package world

import (
	"math/rand"

	"github.com/annel0/dig-game/internal/world/tile"
)

// Sound воспроизводит звуковые эффекты (fire-and-forget).
// Реализация живёт вне ядра симуляции (internal/audio).
type Sound interface {
	Play(kind tile.SoundKind)
}

// Particles создаёт всплески частиц в пиксельных координатах.
// Рендеринг частиц — забота внешнего коллаборатора.
type Particles interface {
	Create(visual string, pixelX, pixelY, amount int)
}

// Random — ограниченная целочисленная выборка.
// Between возвращает равномерное значение в [min, max] включительно.
type Random interface {
	Between(min, max int) int
}

// NullSound — заглушка для тестов и headless-запусков
type NullSound struct{}

func (NullSound) Play(kind tile.SoundKind) {}

// NullParticles — заглушка для тестов и headless-запусков
type NullParticles struct{}

func (NullParticles) Create(visual string, pixelX, pixelY, amount int) {}

type seededRandom struct {
	r *rand.Rand
}

// NewRandom создаёт детерминированный источник случайности для мира
func NewRandom(seed int64) Random {
	return &seededRandom{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}
