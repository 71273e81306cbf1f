package render

import (
	"math/rand"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/dig-game/internal/world"
)

// particle — одна летящая крошка на экране
type particle struct {
	x, y   float64
	vx, vy float64
	ttl    int
	color  tcell.Color
}

// ParticleField хранит и анимирует короткоживущие частицы.
// Реализует интерфейс Particles из пакета world.
type ParticleField struct {
	mu        sync.Mutex
	particles []particle
	rng       *rand.Rand
}

// NewParticleField создает пустое поле частиц
func NewParticleField(seed int64) *ParticleField {
	return &ParticleField{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// visualColor подбирает цвет крошек по спрайту разрушенной клетки
func visualColor(visual string) tcell.Color {
	switch visual {
	case "Ore":
		return tcell.ColorYellow
	case "Surface":
		return tcell.ColorGreen
	case "Explosives":
		return tcell.ColorRed
	default:
		return tcell.ColorGray
	}
}

// Create добавляет amount частиц вокруг пиксельной точки.
// Координаты приходят в пикселях мира, экранная клетка = TileSize пикселей.
func (pf *ParticleField) Create(visual string, pixelX, pixelY, amount int) {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	cx := float64(pixelX) / float64(world.TileSize)
	cy := float64(pixelY) / float64(world.TileSize)
	color := visualColor(visual)

	for i := 0; i < amount; i++ {
		pf.particles = append(pf.particles, particle{
			x:     cx,
			y:     cy,
			vx:    (pf.rng.Float64() - 0.5) * 0.8,
			vy:    (pf.rng.Float64() - 0.7) * 0.6,
			ttl:   4 + pf.rng.Intn(5),
			color: color,
		})
	}
}

// Step продвигает частицы на один кадр и удаляет погасшие.
func (pf *ParticleField) Step() {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	alive := pf.particles[:0]
	for _, p := range pf.particles {
		p.ttl--
		if p.ttl <= 0 {
			continue
		}
		p.x += p.vx
		p.y += p.vy
		p.vy += 0.15 // гравитация
		alive = append(alive, p)
	}
	pf.particles = alive
}

// Draw рисует живые частицы поверх мира.
func (pf *ParticleField) Draw(screen *Screen) {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	for _, p := range pf.particles {
		screen.SetContent(int(p.x), int(p.y), '•', tcell.StyleDefault.Foreground(p.color))
	}
}

// количество частиц (для тестов)
func (pf *ParticleField) count() int {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return len(pf.particles)
}

var _ world.Particles = (*ParticleField)(nil)
