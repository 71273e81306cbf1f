package world

import (
	"github.com/annel0/dig-game/internal/vec"
	"github.com/annel0/dig-game/internal/world/tile"
)

const (
	// TileSize — размер тайла в пикселях (для координат частиц)
	TileSize = 16

	// Диапазон начальной прочности тайла (включительно)
	durabilityMin = 2
	durabilityMax = 4

	// ExhaustionCooldown — тики восстановления после удара киркой
	ExhaustionCooldown = 10

	breakBurst = 16 // частиц при разрушении
	hitBurst   = 2  // частиц при попадании
)

// Tile — разрушаемый объект в ячейке сетки. Один экземпляр на занятую
// ячейку; владеет им мир, тайл хранит только обратную ссылку.
type Tile struct {
	world *World
	pos   vec.Vec2
	id    tile.ID

	durability int // < 0 означает «разрушен»
	breakAnim  int // счётчик кадров трещин, чистая презентация

	cachedMask  *uint8  // nil — маска не вычислена
	cachedLight int     // действителен, пока lightStale == nil
	lightStale  *uint64 // тик, с которого кэш света устарел; nil — актуален

	hovering bool // транзиентный фокус указателя, не сохраняется
}

func newTile(w *World, pos vec.Vec2, id tile.ID) *Tile {
	t := &Tile{
		world:      w,
		pos:        pos,
		id:         id,
		durability: w.rng.Between(durabilityMin, durabilityMax),
	}
	// Свет нового тайла не вычислен: помечаем устаревшим на тик создания,
	// чтобы первый запрос на следующем тике пересчитал его.
	stale := w.stats.Tick
	t.lightStale = &stale
	return t
}

// === Реализация tile.API ===

// Pos возвращает координаты тайла в сетке
func (t *Tile) Pos() vec.Vec2 { return t.pos }

// TypeID возвращает тип тайла
func (t *Tile) TypeID() tile.ID { return t.id }

// RemoveSelf удаляет тайл из сетки без начисления очков
func (t *Tile) RemoveSelf(accessible bool) {
	t.world.RemoveTile(t.pos.X, t.pos.Y, accessible)
}

// AddExplosive добавляет взрывчатку в инвентарь забега
func (t *Tile) AddExplosive() {
	t.world.stats.AddExplosive()
}

// PlaySound проигрывает звуковой эффект
func (t *Tile) PlaySound(kind tile.SoundKind) {
	t.world.sound.Play(kind)
}

// SpawnParticles создаёт частицы в центре тайла
func (t *Tile) SpawnParticles(visual string, amount int) {
	px := t.pos.X*TileSize + TileSize/2
	py := t.pos.Y*TileSize + TileSize/2
	t.world.particles.Create(visual, px, py, amount)
}

// === Освещение ===

// Light возвращает эффективный уровень освещённости тайла [0, LightMax].
//
// Запрос ленивый: при устаревшем кэше свет пересчитывается по соседям,
// и пересчёт может пометить устаревшими кэши соседних тайлов (pull-based
// распространение инвалидации). Пересчёт выполняется не чаще одного раза
// за тик благодаря отметке тика.
func (t *Tile) Light() int {
	if emission, ok := tile.EmittedLight(t.id); ok {
		// Источники света не пересчитываются
		return emission
	}
	if t.lightStale != nil && *t.lightStale < t.world.stats.Tick {
		t.recomputeLight()
	}
	return t.cachedLight
}

// recomputeLight пересчитывает свет по четырём соседям и распространяет
// инвалидацию на соседей, оказавшихся несогласованно тёмными.
func (t *Tile) recomputeLight() {
	brightest := 0
	for _, dir := range vec.Directions {
		n := t.world.GetTileInDirection(dir, t)
		if n == nil {
			continue
		}
		// Для источников берём эмиссию напрямую, минуя их кэш
		light, ok := tile.EmittedLight(n.id)
		if !ok {
			light = n.cachedLight
		}
		if light > brightest {
			brightest = light
		}
	}

	newLight := brightest - 1
	if newLight < 0 {
		newLight = 0
	}
	t.cachedLight = newLight
	t.lightStale = nil

	// Сосед темнее newLight-1 несогласован с новым значением: помечаем его
	// устаревшим на текущий тик. Пересчёт отложен до запроса (lazy).
	for _, dir := range vec.Directions {
		n := t.world.GetTileInDirection(dir, t)
		if n == nil {
			continue
		}
		if _, ok := tile.EmittedLight(n.id); ok {
			continue
		}
		if n.cachedLight < newLight-1 {
			n.markLightStale()
		}
	}
}

// markLightStale помечает кэш света устаревшим с текущего тика.
// Кэшированное значение не сбрасывается: до пересчёта соседи продолжают
// читать прежний (возможно устаревший) свет.
func (t *Tile) markLightStale() {
	stale := t.world.stats.Tick
	t.lightStale = &stale
}

// === Доступность и маска ===

// Accessible сообщает, доступен ли тайл для взаимодействия: полный свет
// и тип, допускающий выделение.
func (t *Tile) Accessible() bool {
	return t.Light() == tile.LightMax && !tile.Nonselectable(t.id)
}

// Mineable сообщает, можно ли выкопать тайл киркой
func (t *Tile) Mineable() bool {
	return t.Accessible() && tile.DamageMining.Meets(tile.BreakThreshold(t.id))
}

// Mask возвращает маску граней тайла: бит направления установлен, если
// сосед отсутствует, невидим или отделён. Вычисляется лениво; кэш
// сбрасывается мутатором при структурных изменениях, а не по тикам.
func (t *Tile) Mask() uint8 {
	if t.cachedMask != nil {
		return *t.cachedMask
	}
	var mask uint8
	for _, dir := range vec.Directions {
		n := t.world.GetTileInDirection(dir, t)
		if n == nil || tile.Invisible(n.id) || tile.Separated(n.id) {
			mask |= dir.Bit()
		}
	}
	t.cachedMask = &mask
	return mask
}

// InvalidateMask сбрасывает кэш маски. Кэш света не затрагивается.
func (t *Tile) InvalidateMask() {
	t.cachedMask = nil
}

// Hovering сообщает, находится ли указатель над тайлом
func (t *Tile) Hovering() bool { return t.hovering }

// BreakAnimation возвращает счётчик кадров трещин (презентация)
func (t *Tile) BreakAnimation() int { return t.breakAnim }

// === Урон и разрушение ===

// Damage применяет к тайлу урон указанного вида.
//
// Хук типа OnDamage может выполнить особую реакцию и подавить общую
// обработку. Далее: вид урона сверяется с порогом типа, списывается
// прочность, и при её исчерпании тайл разрушается — удаляется из сетки,
// начисляются очки, для кирки увеличивается счётчик выкопанного.
func (t *Tile) Damage(kind tile.DamageKind, amount int, effects bool) {
	if hook := tile.DamageHook(t.id); hook != nil {
		if hook(t, kind, amount) {
			return
		}
	}

	if !kind.Meets(tile.BreakThreshold(t.id)) {
		return
	}

	t.durability -= amount
	if t.durability < 0 {
		t.broken(kind, effects)
		return
	}

	t.breakAnim++
	if effects {
		t.world.sound.Play(tile.HitSound(t.id))
		t.SpawnParticles(tile.Sprite(t.id), hitBurst)
	}
}

// broken переводит тайл в терминальное состояние: удаление происходит до
// любых побочных эффектов, чтобы повторный урон (цепные взрывы) не достал
// уже разрушенный тайл.
func (t *Tile) broken(kind tile.DamageKind, effects bool) {
	t.world.RemoveTile(t.pos.X, t.pos.Y, true)
	t.world.stats.Score += tile.Score(t.id)
	if kind == tile.DamageMining {
		t.world.stats.Dig()
	}

	if effects {
		t.world.sound.Play(tile.BreakSound(t.id))
		t.SpawnParticles(tile.Sprite(t.id), breakBurst)
	}

	if hook := tile.BreakHook(t.id); hook != nil {
		hook(t, kind)
	}

	t.world.tileBroken(t, kind)
}

// Detonate подрывает тайл: удаляет его и наносит урон с манхэттенским
// затуханием по ромбу вокруг эпицентра.
//
// Радиус выбирается тремя вложенными ограниченными выборками — каждая
// служит верхней границей следующей, что смещает распределение к малым
// значениям: в основном скромные взрывы, изредка крупные.
func (t *Tile) Detonate() {
	w := t.world

	// Детонирующий тайл удаляется первым: повторный урон из цепочки
	// взрывов уже не найдёт его в сетке.
	w.RemoveTile(t.pos.X, t.pos.Y, true)
	w.sound.Play(tile.SoundExplosion)

	radius := w.rng.Between(4, w.rng.Between(5, w.rng.Between(6, 8)))
	t.blast(radius)

	w.detonated(t, radius)
}

// blast применяет урон взрыва по смещениям [-(radius-1), radius-1]².
// Затухание falloff = radius − (|dx|+|dy|); края ромба получают 2 урона,
// центр — до radius*2. Вторичные попадания беззвучны и без частиц.
func (t *Tile) blast(radius int) {
	for dy := -(radius - 1); dy <= radius-1; dy++ {
		for dx := -(radius - 1); dx <= radius-1; dx++ {
			falloff := radius - (absInt(dx) + absInt(dy))
			if falloff <= 0 {
				continue
			}
			n := t.world.GetTile(t.pos.X+dx, t.pos.Y+dy)
			if n == nil {
				continue
			}
			n.Damage(tile.DamageExplosion, falloff*2, false)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// === Обновление ===

// Update вызывается миром не более одного раза за тик
func (t *Tile) Update() {
	if hook := tile.UpdateHook(t.id); hook != nil {
		hook(t)
	}
}
