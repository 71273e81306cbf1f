package world

import (
	"github.com/annel0/dig-game/internal/world/tile"
	"github.com/aquilax/go-perlin"
)

const (
	surfaceDepth = 3  // травяной слой + грунт
	shaftSpacing = 12 // период входов в шахту по поверхности

	caveScale      = 0.08
	caveThreshold  = 0.80
	veinScale      = 0.15
	oreThreshold   = 0.80
	metalThreshold = 0.74

	explosivesChance = 50 // один шанс из N на ячейку породы
)

// Generator детерминированно заполняет мир: поверхность с входами в
// шахту, толща породы с рудными жилами, пустотами и зарядами взрывчатки.
// Распределение руд и пустот управляется шумом Перлина.
type Generator struct {
	seed    int64
	terrain *perlin.Perlin // пустоты и жилы металла
	veins   *perlin.Perlin // рудные жилы
}

// NewGenerator создаёт генератор с указанным сидом
func NewGenerator(seed int64) *Generator {
	const (
		alpha = 2.0 // сглаживание шума
		beta  = 2.0 // частота шума
		n     = 3   // количество октав
	)
	return &Generator{
		seed:    seed,
		terrain: perlin.NewPerlin(alpha, beta, n, seed),
		veins:   perlin.NewPerlin(alpha, beta, n, seed+1),
	}
}

// Generate заполняет мир тайлами. Вызывается один раз на пустом мире.
func (g *Generator) Generate(w *World) {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			w.SetTile(x, y, g.typeAt(w, x, y))
		}
	}
}

// typeAt выбирает тип тайла для ячейки
func (g *Generator) typeAt(w *World, x, y int) tile.ID {
	// Поверхность: трава с периодическими входами в шахту —
	// единственными источниками света в свежем мире.
	if y == 0 {
		if x%shaftSpacing == shaftSpacing/2 {
			return tile.MineshaftID
		}
		return tile.GrassID
	}
	if y < surfaceDepth {
		return tile.DirtID
	}

	// Пустоты: крупный масштаб шума
	if g.noise(g.terrain, x, y, caveScale) > caveThreshold {
		return tile.CavernID
	}

	// Рудные жилы: мелкий масштаб; ценность растёт с глубиной
	if v := g.noise(g.veins, x, y, veinScale); v > oreThreshold {
		return oreForDepth(w, y)
	} else if v > metalThreshold {
		return tile.MetalID
	}

	// Редкие заряды взрывчатки в породе
	if w.rng.Between(0, explosivesChance-1) == 0 {
		return tile.ExplosivesID
	}

	return tile.RockID
}

// noise возвращает нормализованное значение шума в [0, 1]
func (g *Generator) noise(p *perlin.Perlin, x, y int, scale float64) float64 {
	return (p.Noise2D(float64(x)*scale, float64(y)*scale) + 1.0) / 2.0
}

// oreForDepth выбирает руду по относительной глубине ячейки
func oreForDepth(w *World, y int) tile.ID {
	depth := float64(y) / float64(w.height)
	switch {
	case depth > 0.75:
		return tile.DiamondID
	case depth > 0.5:
		return tile.GoldID
	case depth > 0.25:
		return tile.RubyID
	default:
		return tile.EmeraldID
	}
}
