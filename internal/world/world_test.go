package world

import (
	"testing"

	"github.com/annel0/dig-game/internal/world/tile"
)

// funcRandom — скриптуемый источник случайности для тестов
type funcRandom struct {
	f func(min, max int) int
}

func (r funcRandom) Between(min, max int) int { return r.f(min, max) }

// minRandom всегда возвращает нижнюю границу
func minRandom() Random {
	return funcRandom{f: func(min, max int) int { return min }}
}

// recordSound запоминает все проигранные звуки
type recordSound struct {
	played []tile.SoundKind
}

func (s *recordSound) Play(kind tile.SoundKind) {
	s.played = append(s.played, kind)
}

// newLitRow создает мир высотой 1: шахта в (0,0), порода правее.
// Удобен для тестов света и добычи.
func newLitRow(t *testing.T, width int, rng Random) *World {
	t.Helper()
	w, err := New(Options{Width: width, Height: 1, Random: rng})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	w.SetTile(0, 0, tile.MineshaftID)
	for x := 1; x < width; x++ {
		w.SetTile(x, 0, tile.RockID)
	}
	return w
}

// queryLights опрашивает свет слева направо (как это делает рендерер)
func queryLights(w *World) []int {
	lights := make([]int, w.Width())
	for x := 0; x < w.Width(); x++ {
		if t := w.GetTile(x, 0); t != nil {
			lights[x] = t.Light()
		}
	}
	return lights
}

// TestLightSourceEmission проверяет, что источник светит выше максимума
func TestLightSourceEmission(t *testing.T) {
	w := newLitRow(t, 3, minRandom())
	if got := w.GetTile(0, 0).Light(); got != tile.LightEmission {
		t.Errorf("Свет источника: ожидалось %d, получено %d", tile.LightEmission, got)
	}
}

// TestLightConvergence проверяет сходимость ленивого распространения
// света: за тик фронт продвигается на одну клетку.
func TestLightConvergence(t *testing.T) {
	w := newLitRow(t, 8, minRandom())

	for i := 0; i < 5; i++ {
		w.Step()
		queryLights(w)
	}

	want := []int{tile.LightEmission, 3, 2, 1, 0, 0, 0, 0}
	got := queryLights(w)
	for x, wl := range want {
		if got[x] != wl {
			t.Errorf("Свет в x=%d: ожидалось %d, получено %d (ряд %v)", x, wl, got[x], got)
		}
	}
}

// TestLightMemoizedPerTick проверяет, что в пределах тика свет не
// пересчитывается повторно.
func TestLightMemoizedPerTick(t *testing.T) {
	w := newLitRow(t, 4, minRandom())
	w.Step()

	t1 := w.GetTile(1, 0)
	first := t1.Light()
	if t1.lightStale != nil {
		t.Error("Кэш должен быть актуален после пересчета")
	}
	if second := t1.Light(); second != first {
		t.Errorf("Повторный запрос в том же тике: %d != %d", second, first)
	}
}

// TestLightThroughTunnel проверяет, что выкопанная клетка (пустота)
// продолжает проводить свет, а полностью очищенная — нет.
func TestLightThroughTunnel(t *testing.T) {
	w := newLitRow(t, 6, minRandom())
	for i := 0; i < 5; i++ {
		w.Step()
		queryLights(w)
	}

	// Выкапываем клетку рядом с источником: на её месте пустота
	w.RemoveTile(1, 0, true)
	if got := w.GetTile(1, 0).TypeID(); got != tile.CavernID {
		t.Fatalf("После доступного удаления ожидалась пустота, получен тип %d", got)
	}

	for i := 0; i < 5; i++ {
		w.Step()
		queryLights(w)
	}
	// Пустота освещена и пропускает свет дальше
	if got := w.GetTile(1, 0).Light(); got != 3 {
		t.Errorf("Свет пустоты: ожидалось 3, получено %d", got)
	}
	if got := w.GetTile(2, 0).Light(); got != 2 {
		t.Errorf("Свет за пустотой: ожидалось 2, получено %d", got)
	}

	// Полная очистка ячейки обрывает распространение
	w.RemoveTile(1, 0, false)
	if w.GetTile(1, 0) != nil {
		t.Fatal("После полного удаления ячейка должна быть пуста")
	}
	for i := 0; i < 5; i++ {
		w.Step()
		queryLights(w)
	}
	if got := w.GetTile(2, 0).Light(); got != 0 {
		t.Errorf("Свет за пустой ячейкой: ожидалось 0, получено %d", got)
	}
}

// TestAccessibility проверяет условия доступности: полный свет и
// выделяемый тип.
func TestAccessibility(t *testing.T) {
	w := newLitRow(t, 8, minRandom())
	for i := 0; i < 6; i++ {
		w.Step()
		queryLights(w)
	}

	if !w.GetTile(1, 0).Accessible() {
		t.Error("Полностью освещенная порода должна быть доступна")
	}
	if w.GetTile(2, 0).Accessible() {
		t.Error("Порода со светом 2 не должна быть доступна")
	}
	if w.GetTile(5, 0).Accessible() {
		t.Error("Темная порода не должна быть доступна")
	}
	// Источник света невыделяем несмотря на полный свет
	if w.GetTile(0, 0).Accessible() {
		t.Error("Вход в шахту невыделяем и не должен быть доступен")
	}
}

// TestMaskBits проверяет вычисление маски граней
func TestMaskBits(t *testing.T) {
	w, err := New(Options{Width: 3, Height: 3, Random: minRandom()})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			w.SetTile(x, y, tile.RockID)
		}
	}

	center := w.GetTile(1, 1)
	if got := center.Mask(); got != 0 {
		t.Errorf("Маска при полном окружении: ожидалось 0, получено %b", got)
	}

	// Пустота сверху (невидимая и отделенная) поднимает бит Up
	w.RemoveTile(1, 0, true)
	if got := center.Mask(); got&1 == 0 {
		t.Errorf("Бит Up не установлен после появления пустоты сверху: %b", got)
	}

	// Полное удаление слева поднимает бит Left
	w.RemoveTile(0, 1, false)
	if got := center.Mask(); got&(1<<3) == 0 {
		t.Errorf("Бит Left не установлен после очистки ячейки слева: %b", got)
	}
}

// TestMaskCacheIndependence проверяет, что кэши маски и света живут
// раздельно: сброс маски не трогает свет, пометка света не трогает маску.
func TestMaskCacheIndependence(t *testing.T) {
	w := newLitRow(t, 4, minRandom())
	for i := 0; i < 4; i++ {
		w.Step()
		queryLights(w)
	}

	t1 := w.GetTile(1, 0)
	lightBefore := t1.Light()
	maskBefore := t1.Mask()

	t1.InvalidateMask()
	if t1.lightStale != nil {
		t.Error("InvalidateMask пометил кэш света устаревшим")
	}
	if got := t1.Light(); got != lightBefore {
		t.Errorf("Свет изменился после сброса маски: %d -> %d", lightBefore, got)
	}

	t1.markLightStale()
	if t1.cachedMask == nil {
		t.Error("Пометка света устаревшим сбросила кэш маски")
	}
	if got := t1.Mask(); got != maskBefore {
		t.Errorf("Маска изменилась после пометки света: %b -> %b", maskBefore, got)
	}
}

// TestPlaceExplosiveRules проверяет правила установки взрывчатки
func TestPlaceExplosiveRules(t *testing.T) {
	w := newLitRow(t, 4, minRandom())

	// Инвентарь пуст
	if err := w.PlaceExplosive(2, 0); err == nil {
		t.Error("Установка при пустом инвентаре должна вернуть ошибку")
	}

	w.stats.AddExplosive()

	// Занятая ячейка
	if err := w.PlaceExplosive(1, 0); err == nil {
		t.Error("Установка в занятую ячейку должна вернуть ошибку")
	}

	// Выкопанная ячейка подходит
	w.RemoveTile(1, 0, true)
	if err := w.PlaceExplosive(1, 0); err != nil {
		t.Errorf("Установка в выкопанную ячейку: %v", err)
	}
	if got := w.GetTile(1, 0).TypeID(); got != tile.ExplosivesID {
		t.Errorf("В ячейке ожидалась взрывчатка, получен тип %d", got)
	}
	if w.StatsCopy().Explosives != 0 {
		t.Error("Взрывчатка не списана из инвентаря")
	}
}

// Тестовые типы с хуками onUpdate, мутирующими сетку во время тика
const (
	decayID tile.ID = 970 // исчезает на первом же тике
	chainID tile.ID = 971 // детонирует на первом же тике
)

var decayUpdates int

func init() {
	mining := tile.DamageMining
	tile.Register(decayID, &tile.Descriptor{
		Name:           "TestDecay",
		BreakThreshold: &mining,
		OnUpdate: func(api tile.API) {
			decayUpdates++
			api.RemoveSelf(true)
		},
	})
	tile.Register(chainID, &tile.Descriptor{
		Name:           "TestChain",
		BreakThreshold: &mining,
		OnUpdate: func(api tile.API) {
			api.Detonate()
		},
	})
}

// TestStepHookRemovesTiles проверяет, что хук onUpdate может удалять
// тайлы из сетки посреди тика: каждый резидент обновляется ровно один раз.
func TestStepHookRemovesTiles(t *testing.T) {
	w, err := New(Options{Width: 4, Height: 1, Random: minRandom()})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	for x := 0; x < 4; x++ {
		w.SetTile(x, 0, decayID)
	}

	decayUpdates = 0
	w.Step()

	if decayUpdates != 4 {
		t.Errorf("Обновлений за тик: ожидалось 4, получено %d", decayUpdates)
	}
	for x := 0; x < 4; x++ {
		if got := w.GetTile(x, 0).TypeID(); got != tile.CavernID {
			t.Errorf("Ячейка x=%d: ожидалась пустота, получен тип %d", x, got)
		}
	}
}

// TestStepSkipsTilesRemovedMidTick проверяет, что тайл, выбитый из сетки
// чужим хуком в том же тике, свой onUpdate уже не получает: два смежных
// заряда дают один взрыв, а не цепочку из двух.
func TestStepSkipsTilesRemovedMidTick(t *testing.T) {
	sound := &recordSound{}
	w, err := New(Options{Width: 4, Height: 1, Random: minRandom(), Sound: sound})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	w.SetTile(1, 0, chainID)
	w.SetTile(2, 0, chainID)

	w.Step()

	explosions := 0
	for _, kind := range sound.played {
		if kind == tile.SoundExplosion {
			explosions++
		}
	}
	if explosions != 1 {
		t.Errorf("Взрывов за тик: ожидался 1, получено %d", explosions)
	}
	for x := 1; x <= 2; x++ {
		if got := w.GetTile(x, 0).TypeID(); got != tile.CavernID {
			t.Errorf("Ячейка x=%d: ожидалась пустота, получен тип %d", x, got)
		}
	}
}

// TestTileInfoConcurrentWithStep гоняет точечные запросы состояния
// параллельно с тиками и событиями указателя: чтение ячейки обязано
// идти под мьютексом мира, потому что запрос света пишет в кэши.
func TestTileInfoConcurrentWithStep(t *testing.T) {
	w := newLitRow(t, 8, minRandom())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			w.Step()
			w.Interact(1, 0, tile.PointerEnter)
			w.Interact(1, 0, tile.PointerLeave)
		}
	}()

	for i := 0; i < 200; i++ {
		if info, ok := w.TileInfo(4, 0); ok {
			if info.Light < 0 || info.Light > tile.LightEmission {
				t.Fatalf("Свет вне диапазона: %d", info.Light)
			}
		}
	}
	<-done

	info, ok := w.TileInfo(0, 0)
	if !ok || info.Type != tile.MineshaftID {
		t.Errorf("TileInfo(0,0): ожидалась шахта, получено %+v (ok=%v)", info, ok)
	}
	if _, ok := w.TileInfo(7, 7); ok {
		t.Error("TileInfo вне мира вернул ячейку")
	}
}
