package world

import (
	"fmt"
	"sync"

	"github.com/annel0/dig-game/internal/vec"
	"github.com/annel0/dig-game/internal/world/tile"

	// Регистрация стандартной таблицы типов в init()
	_ "github.com/annel0/dig-game/internal/world/tile/types"
)

// World владеет сеткой тайлов и счётчиками забега. Ядро симуляции
// однопоточно: все операции (тик, события указателя, урон, взрывы)
// выполняются до конца под одним мьютексом, без внутреннего параллелизма.
type World struct {
	mu     sync.Mutex
	width  int
	height int
	tiles  map[vec.Vec2]*Tile

	stats     Stats
	sound     Sound
	particles Particles
	rng       Random

	metrics *worldMetrics
}

// Options задаёт параметры создания мира.
// Нулевые коллабораторы заменяются заглушками.
type Options struct {
	Width  int
	Height int
	Seed   int64

	Sound     Sound
	Particles Particles
	Random    Random
}

// New создаёт пустой мир. Таблица типов проверяется целиком до первого
// обращения: ошибки конфигурации (цикл base, неизвестный тип) — это
// ошибки загрузки, а не времени игры.
func New(opts Options) (*World, error) {
	if err := tile.Validate(); err != nil {
		return nil, fmt.Errorf("table validation: %w", err)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("некорректные размеры мира: %dx%d", opts.Width, opts.Height)
	}

	w := &World{
		width:     opts.Width,
		height:    opts.Height,
		tiles:     make(map[vec.Vec2]*Tile),
		sound:     opts.Sound,
		particles: opts.Particles,
		rng:       opts.Random,
		metrics:   getWorldMetrics(),
	}
	if w.sound == nil {
		w.sound = NullSound{}
	}
	if w.particles == nil {
		w.particles = NullParticles{}
	}
	if w.rng == nil {
		w.rng = NewRandom(opts.Seed)
	}
	return w, nil
}

// Width возвращает ширину мира в тайлах
func (w *World) Width() int { return w.width }

// Height возвращает высоту мира в тайлах
func (w *World) Height() int { return w.height }

// Stats возвращает счётчики забега. Доступ из симуляции однопоточный.
func (w *World) Stats() *Stats { return &w.stats }

// InBounds проверяет, лежат ли координаты внутри мира
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// GetTile возвращает тайл в ячейке или nil, если ячейка пуста либо
// координаты вне мира. Отсутствие тайла — не ошибка: вся зависящая от
// соседей логика трактует его как «ничего».
func (w *World) GetTile(x, y int) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.tiles[vec.Vec2{X: x, Y: y}]
}

// GetTileInDirection возвращает соседа тайла в указанном направлении
func (w *World) GetTileInDirection(dir vec.Direction, t *Tile) *Tile {
	p := t.pos.Add(dir.Offset())
	return w.GetTile(p.X, p.Y)
}

// SetTile помещает тайл указанного типа в ячейку, заменяя существующий.
// Структурное изменение: сбрасываются кэши масок ячейки и соседей,
// кэши света соседей помечаются устаревшими.
func (w *World) SetTile(x, y int, id tile.ID) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	pos := vec.Vec2{X: x, Y: y}
	t := newTile(w, pos, id)
	w.tiles[pos] = t
	w.structuralChange(pos)
	return t
}

// RemoveTile убирает тайл из ячейки.
//
// accessible=true — «доступное» удаление: на месте тайла остаётся пустота
// (Cavern), через которую продолжает распространяться свет и которая
// отрисовывается фоном. accessible=false — ячейка очищается полностью.
func (w *World) RemoveTile(x, y int, accessible bool) {
	if !w.InBounds(x, y) {
		return
	}
	pos := vec.Vec2{X: x, Y: y}
	if accessible {
		w.tiles[pos] = newTile(w, pos, tile.CavernID)
	} else {
		delete(w.tiles, pos)
	}
	w.structuralChange(pos)
}

// structuralChange инвалидирует кэши после создания/удаления тайла.
// Маски сбрасываются явно (не по тикам); свет лишь помечается устаревшим —
// кэшированные значения доживают до ленивого пересчёта.
func (w *World) structuralChange(pos vec.Vec2) {
	if t := w.tiles[pos]; t != nil {
		t.InvalidateMask()
	}
	for _, dir := range vec.Directions {
		n := w.GetTile(pos.X+dir.Offset().X, pos.Y+dir.Offset().Y)
		if n == nil {
			continue
		}
		n.InvalidateMask()
		n.markLightStale()
	}
}

// Step выполняет один тик симуляции: продвигает счётчик тиков,
// восстанавливает усталость и вызывает onUpdate каждого резидентного
// тайла не более одного раза.
func (w *World) Step() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stats.Tick++
	if w.stats.Exhaustion > 0 {
		w.stats.Exhaustion--
	}

	// Хуки onUpdate могут менять сетку (RemoveSelf, Detonate) — обходим
	// снимок списка резидентов, пропуская удаленных по дороге.
	resident := make([]*Tile, 0, len(w.tiles))
	for _, t := range w.tiles {
		resident = append(resident, t)
	}
	for _, t := range resident {
		if w.tiles[t.pos] != t {
			continue
		}
		t.Update()
	}

	w.metrics.ticks.Inc()
	w.metrics.score.Set(float64(w.stats.Score))
}

// Interact маршрутизирует событие указателя в тайл по координатам.
// Возвращает false, если в ячейке нет тайла.
func (w *World) Interact(x, y int, ev tile.PointerEvent) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.GetTile(x, y)
	if t == nil {
		return false
	}
	t.Pointer(ev)
	return true
}

// PlaceExplosive ставит заряд из инвентаря в пустую (или выкопанную)
// ячейку. Возвращает ошибку, если ячейка занята или инвентарь пуст.
func (w *World) PlaceExplosive(x, y int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.InBounds(x, y) {
		return fmt.Errorf("координаты (%d,%d) вне мира", x, y)
	}
	if t := w.GetTile(x, y); t != nil && t.id != tile.CavernID {
		return fmt.Errorf("ячейка (%d,%d) занята", x, y)
	}
	if !w.stats.UseExplosive() {
		return fmt.Errorf("в инвентаре нет взрывчатки")
	}
	w.SetTile(x, y, tile.ExplosivesID)
	return nil
}

// StatsCopy возвращает снимок счётчиков для внешних потребителей
func (w *World) StatsCopy() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// tileBroken фиксирует разрушение тайла: метрики и событие шины
func (w *World) tileBroken(t *Tile, kind tile.DamageKind) {
	w.metrics.broken.Inc()
	publishTileBroken(t, kind)
}

// detonated фиксирует состоявшийся взрыв: метрики и событие шины
func (w *World) detonated(t *Tile, radius int) {
	w.metrics.explosions.Inc()
	publishDetonation(t, radius)
}
