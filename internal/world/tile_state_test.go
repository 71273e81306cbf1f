package world

import (
	"testing"

	"github.com/annel0/dig-game/internal/world/tile"
)

// converge прогоняет мир до стабилизации освещения
func converge(w *World, steps int) {
	for i := 0; i < steps; i++ {
		w.Step()
		for y := 0; y < w.Height(); y++ {
			for x := 0; x < w.Width(); x++ {
				if t := w.GetTile(x, y); t != nil {
					t.Light()
				}
			}
		}
	}
}

// TestMiningDurability проверяет машину состояний прочности: тайл с
// прочностью d разрушается на (d+1)-м ударе киркой.
func TestMiningDurability(t *testing.T) {
	sound := &recordSound{}
	w := newLitRow(t, 3, minRandom()) // прочность = 2
	w.sound = sound
	converge(w, 3)

	target := w.GetTile(1, 0)
	if !target.Mineable() {
		t.Fatal("Освещенная порода должна быть добываемой")
	}

	// Первый удар: прочность 2 -> 1, трещина, звук попадания
	w.Interact(1, 0, tile.PointerClick)
	if got := target.BreakAnimation(); got != 1 {
		t.Errorf("После первого удара ожидалась 1 трещина, получено %d", got)
	}
	if w.StatsCopy().Exhaustion != ExhaustionCooldown {
		t.Errorf("Усталость после удара: ожидалось %d, получено %d",
			ExhaustionCooldown, w.StatsCopy().Exhaustion)
	}

	// Удар при усталости игнорируется
	w.Interact(1, 0, tile.PointerClick)
	if got := target.BreakAnimation(); got != 1 {
		t.Errorf("Удар при усталости прошел: трещин %d", got)
	}

	// Второй и третий удары (усталость сбрасываем вручную)
	w.stats.Exhaustion = 0
	w.Interact(1, 0, tile.PointerClick)
	w.stats.Exhaustion = 0
	w.Interact(1, 0, tile.PointerClick)

	// Тайл разрушен: на его месте пустота, очки и счетчик выкопанного
	if got := w.GetTile(1, 0).TypeID(); got != tile.CavernID {
		t.Fatalf("После разрушения ожидалась пустота, получен тип %d", got)
	}
	stats := w.StatsCopy()
	if stats.Score != 1 {
		t.Errorf("Очки за породу: ожидалось 1, получено %d", stats.Score)
	}
	if stats.Dug != 1 {
		t.Errorf("Счетчик выкопанного: ожидалось 1, получено %d", stats.Dug)
	}

	// Звуки: два попадания и одно разрушение
	hits, breaks := 0, 0
	for _, k := range sound.played {
		switch k {
		case tile.SoundHit:
			hits++
		case tile.SoundBreak:
			breaks++
		}
	}
	if hits != 2 || breaks != 1 {
		t.Errorf("Звуки: ожидалось 2 попадания и 1 разрушение, получено %d/%d", hits, breaks)
	}
}

// TestExhaustionRecovery проверяет восстановление усталости по тикам
func TestExhaustionRecovery(t *testing.T) {
	w := newLitRow(t, 3, minRandom())
	converge(w, 3)

	w.Interact(1, 0, tile.PointerClick)
	for i := 0; i < ExhaustionCooldown; i++ {
		if w.StatsCopy().Exhaustion != ExhaustionCooldown-i {
			t.Fatalf("Усталость на тике %d: ожидалось %d, получено %d",
				i, ExhaustionCooldown-i, w.StatsCopy().Exhaustion)
		}
		w.Step()
	}
	if w.StatsCopy().Exhaustion != 0 {
		t.Error("Усталость не восстановилась за время перезарядки")
	}

	// Удержание кнопки снова добывает
	target := w.GetTile(1, 0)
	before := target.BreakAnimation()
	w.Interact(1, 0, tile.PointerHold)
	if target.BreakAnimation() != before+1 {
		t.Error("Удержание после восстановления не нанесло урон")
	}
}

// TestMiningInaccessible проверяет, что темный тайл киркой не берется
func TestMiningInaccessible(t *testing.T) {
	w := newLitRow(t, 8, minRandom())
	converge(w, 6)

	dark := w.GetTile(5, 0)
	w.Interact(5, 0, tile.PointerClick)
	if dark.BreakAnimation() != 0 {
		t.Error("Недоступный тайл получил урон киркой")
	}
	if w.StatsCopy().Exhaustion != 0 {
		t.Error("Удар по недоступному тайлу потратил усталость")
	}
}

// TestMetalResistsMining проверяет пороги: металл не берется киркой,
// но разрушается взрывом.
func TestMetalResistsMining(t *testing.T) {
	w := newLitRow(t, 3, minRandom())
	w.SetTile(1, 0, tile.MetalID)
	converge(w, 3)

	metal := w.GetTile(1, 0)
	if metal.Mineable() {
		t.Error("Металл не должен быть добываемым киркой")
	}

	metal.Damage(tile.DamageMining, 10, false)
	if w.GetTile(1, 0).TypeID() != tile.MetalID {
		t.Error("Урон кирки разрушил металл")
	}

	metal.Damage(tile.DamageExplosion, 10, false)
	if w.GetTile(1, 0).TypeID() != tile.CavernID {
		t.Error("Урон взрыва не разрушил металл")
	}
	if w.StatsCopy().Score != 50 {
		t.Errorf("Очки за металл: ожидалось 50, получено %d", w.StatsCopy().Score)
	}
	// Разрушение взрывом не засчитывается как выкопанное
	if w.StatsCopy().Dug != 0 {
		t.Error("Взрыв увеличил счетчик выкопанного")
	}
}

// blastRandom возвращает прочность 4 и минимальный радиус (4)
func blastRandom() Random {
	return funcRandom{f: func(min, max int) int {
		if min == durabilityMin {
			return durabilityMax
		}
		return min // вложенные выборки радиуса схлопываются к 4
	}}
}

// TestBlastTaper проверяет ромб взрыва с манхэттенским затуханием
func TestBlastTaper(t *testing.T) {
	w, err := New(Options{Width: 11, Height: 11, Random: blastRandom()})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	for y := 0; y < 11; y++ {
		for x := 0; x < 11; x++ {
			w.SetTile(x, y, tile.RockID)
		}
	}
	w.SetTile(5, 5, tile.ExplosivesID)

	w.GetTile(5, 5).Detonate()

	// Эпицентр удален до нанесения урона по площади
	if got := w.GetTile(5, 5).TypeID(); got != tile.CavernID {
		t.Fatalf("Эпицентр: ожидалась пустота, получен тип %d", got)
	}

	// Радиус 4, прочность породы 4:
	// дистанция 1 — урон 6, разрушение;
	// дистанция 2 — урон 4, прочность 0, тайл выживает с трещиной;
	// дистанция 3 — урон 2, трещина;
	// дистанция 4+ — вне ромба, нетронуто.
	cases := []struct {
		dx, dy    int
		wantType  tile.ID
		wantAnim  int
		wantLabel string
	}{
		{1, 0, tile.CavernID, 0, "дистанция 1"},
		{0, -1, tile.CavernID, 0, "дистанция 1"},
		{2, 0, tile.RockID, 1, "дистанция 2"},
		{1, 1, tile.RockID, 1, "дистанция 2 по диагонали"},
		{3, 0, tile.RockID, 1, "дистанция 3"},
		{2, -1, tile.RockID, 1, "дистанция 3 по диагонали"},
		{4, 0, tile.RockID, 0, "дистанция 4"},
		{2, 2, tile.RockID, 0, "дистанция 4 по диагонали"},
		{3, 3, tile.RockID, 0, "угол квадрата вне ромба"},
	}
	for _, c := range cases {
		got := w.GetTile(5+c.dx, 5+c.dy)
		if got.TypeID() != c.wantType {
			t.Errorf("%s (%d,%d): ожидался тип %d, получен %d",
				c.wantLabel, c.dx, c.dy, c.wantType, got.TypeID())
		}
		if got.TypeID() == tile.RockID && got.BreakAnimation() != c.wantAnim {
			t.Errorf("%s (%d,%d): ожидалось %d трещин, получено %d",
				c.wantLabel, c.dx, c.dy, c.wantAnim, got.BreakAnimation())
		}
	}

	// Очки: четыре разрушенные породы, взрыв не копает
	stats := w.StatsCopy()
	if stats.Score != 4 {
		t.Errorf("Очки за взрыв: ожидалось 4, получено %d", stats.Score)
	}
	if stats.Dug != 0 {
		t.Errorf("Взрыв не должен увеличивать счетчик выкопанного: %d", stats.Dug)
	}
}

// TestBlastChainReaction проверяет цепную детонацию зарядов
func TestBlastChainReaction(t *testing.T) {
	w, err := New(Options{Width: 13, Height: 5, Random: blastRandom()})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 13; x++ {
			w.SetTile(x, y, tile.RockID)
		}
	}
	w.SetTile(4, 2, tile.ExplosivesID)
	w.SetTile(6, 2, tile.ExplosivesID)

	w.GetTile(4, 2).Detonate()

	// Второй заряд в зоне поражения детонирует сам
	if got := w.GetTile(6, 2).TypeID(); got != tile.CavernID {
		t.Errorf("Цепной заряд не сдетонировал: тип %d", got)
	}
	// Порода за вторым зарядом накрыта его взрывом
	if got := w.GetTile(7, 2).TypeID(); got != tile.CavernID {
		t.Errorf("Порода за цепным зарядом уцелела: тип %d", got)
	}
}

// TestExplosivesCollect проверяет добычу заряда киркой в инвентарь
func TestExplosivesCollect(t *testing.T) {
	sound := &recordSound{}
	w := newLitRow(t, 3, minRandom()) // прочность = 2
	w.sound = sound
	w.SetTile(1, 0, tile.ExplosivesID)
	converge(w, 3)

	for i := 0; i < 3; i++ {
		w.stats.Exhaustion = 0
		w.Interact(1, 0, tile.PointerClick)
	}

	if got := w.GetTile(1, 0).TypeID(); got != tile.CavernID {
		t.Fatalf("Заряд не выкопан: тип %d", got)
	}
	if w.StatsCopy().Explosives != 1 {
		t.Errorf("Заряд не попал в инвентарь: %d", w.StatsCopy().Explosives)
	}

	// Добыча заряда звучит как подбор, а не взрыв
	collected := false
	for _, k := range sound.played {
		if k == tile.SoundCollect {
			collected = true
		}
		if k == tile.SoundExplosion {
			t.Error("Добыча киркой подорвала заряд")
		}
	}
	if !collected {
		t.Error("Звук подбора не проигран")
	}
}

// TestExplosivesRightClick проверяет подрыв заряда правым кликом
func TestExplosivesRightClick(t *testing.T) {
	w := newLitRow(t, 8, blastRandom())
	w.SetTile(1, 0, tile.ExplosivesID)
	w.SetTile(5, 0, tile.ExplosivesID)
	converge(w, 6)

	// Недоступный (темный) заряд правым кликом не подрывается
	w.Interact(5, 0, tile.PointerRightClick)
	if got := w.GetTile(5, 0).TypeID(); got != tile.ExplosivesID {
		t.Errorf("Темный заряд сдетонировал: тип %d", got)
	}

	// Доступный заряд детонирует
	w.Interact(1, 0, tile.PointerRightClick)
	if got := w.GetTile(1, 0).TypeID(); got != tile.CavernID {
		t.Errorf("Доступный заряд не сдетонировал: тип %d", got)
	}
}

// TestHoverTracking проверяет транзиентный фокус указателя
func TestHoverTracking(t *testing.T) {
	w := newLitRow(t, 3, minRandom())

	target := w.GetTile(1, 0)
	w.Interact(1, 0, tile.PointerEnter)
	if !target.Hovering() {
		t.Error("Фокус не установлен после Enter")
	}
	w.Interact(1, 0, tile.PointerLeave)
	if target.Hovering() {
		t.Error("Фокус не снят после Leave")
	}

	// Событие по пустой ячейке сообщает об отсутствии тайла
	w.RemoveTile(1, 0, false)
	if w.Interact(1, 0, tile.PointerEnter) {
		t.Error("Interact по пустой ячейке вернул true")
	}
}

// recordRandom запоминает границы всех выборок, возвращая минимум
type recordRandom struct {
	calls [][2]int
}

func (r *recordRandom) Between(min, max int) int {
	r.calls = append(r.calls, [2]int{min, max})
	return min
}

// TestBlastRadiusNestedSampling проверяет конструкцию выборки радиуса:
// три вложенных розыгрыша, каждый служит верхней границей следующего.
func TestBlastRadiusNestedSampling(t *testing.T) {
	rng := &recordRandom{}
	w, err := New(Options{Width: 3, Height: 3, Random: rng})
	if err != nil {
		t.Fatalf("Ошибка создания мира: %v", err)
	}
	w.SetTile(1, 1, tile.ExplosivesID)

	rng.calls = nil
	w.GetTile(1, 1).Detonate()

	// Розыгрыши прочности идут из (2,4); радиус — единственные выборки
	// с нижней границей 4 и выше
	var draws [][2]int
	for _, c := range rng.calls {
		if c[0] > durabilityMin {
			draws = append(draws, c)
		}
	}

	want := [][2]int{{6, 8}, {5, 6}, {4, 5}}
	if len(draws) != len(want) {
		t.Fatalf("Выборок радиуса: ожидалось %d, получено %d (%v)", len(want), len(draws), draws)
	}
	for i, wd := range want {
		if draws[i] != wd {
			t.Errorf("Выборка %d: ожидалось Between%v, получено Between%v", i, wd, draws[i])
		}
	}
	// Результат внутреннего розыгрыша ограничивает следующий
	if draws[1][1] != draws[0][0] || draws[2][1] != draws[1][0] {
		t.Errorf("Выборки не вложены: %v", draws)
	}
}
