package world

import (
	"github.com/annel0/dig-game/internal/world/tile"
)

// Маршрутизация событий указателя: сперва хук типа (если он сообщил, что
// событие обработано — поведение по умолчанию пропускается), затем общая
// обработка.

// Pointer маршрутизирует произвольное событие указателя по его виду
func (t *Tile) Pointer(ev tile.PointerEvent) {
	switch ev {
	case tile.PointerEnter:
		t.OnMouseEnter()
	case tile.PointerLeave:
		t.OnMouseLeave()
	case tile.PointerClick:
		t.OnMouseClick()
	case tile.PointerRightClick:
		t.OnMouseRightClick()
	case tile.PointerDown:
		t.OnMouseDown()
	case tile.PointerUp:
		t.OnMouseUp()
	case tile.PointerHold:
		t.OnMouseHold()
	}
}

// OnMouseEnter отмечает тайл как находящийся под указателем
func (t *Tile) OnMouseEnter() {
	if t.invokeHook(tile.PointerEnter) {
		return
	}
	t.hovering = true
}

// OnMouseLeave снимает отметку фокуса указателя
func (t *Tile) OnMouseLeave() {
	if t.invokeHook(tile.PointerLeave) {
		return
	}
	t.hovering = false
}

// OnMouseClick выполняет одиночный удар киркой по доступному тайлу
func (t *Tile) OnMouseClick() {
	if t.invokeHook(tile.PointerClick) {
		return
	}
	t.mineOnce()
}

// OnMouseRightClick делегирует правый клик хуку типа.
// Общего поведения по умолчанию у правого клика нет.
func (t *Tile) OnMouseRightClick() {
	t.invokeHook(tile.PointerRightClick)
}

// OnMouseDown делегирует нажатие кнопки хуку типа
func (t *Tile) OnMouseDown() {
	t.invokeHook(tile.PointerDown)
}

// OnMouseUp делегирует отпускание кнопки хуку типа
func (t *Tile) OnMouseUp() {
	t.invokeHook(tile.PointerUp)
}

// OnMouseHold обрабатывает тик удержания кнопки: непрерывная добыча,
// ограниченная счётчиком усталости мира.
func (t *Tile) OnMouseHold() {
	if t.invokeHook(tile.PointerHold) {
		return
	}
	t.mineOnce()
}

func (t *Tile) invokeHook(ev tile.PointerEvent) bool {
	if hook := tile.PointerHook(t.id, ev); hook != nil {
		return hook(t)
	}
	return false
}

// mineOnce наносит одну единицу урона киркой, если тайл доступен и
// добываем, а счётчик усталости равен нулю. После удара мир устанавливает
// усталость в значение перезарядки: урон дросселируется вызывающей
// стороной, а не самой машиной состояний урона.
func (t *Tile) mineOnce() {
	if !t.Mineable() {
		return
	}
	if t.world.stats.Exhaustion > 0 {
		return
	}
	t.Damage(tile.DamageMining, 1, true)
	t.world.stats.Exhaustion = ExhaustionCooldown
}
