package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/dig-game/internal/world"
	"github.com/annel0/dig-game/internal/world/tile"
)

// Renderer рисует мир, частицы и курсор на экране.
type Renderer struct {
	screen *Screen
}

// NewRenderer создает рендерер для данного экрана.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// tileGlyph возвращает символ для типа клетки
func tileGlyph(id tile.ID) rune {
	switch id {
	case tile.RockID:
		return '▒'
	case tile.DirtID:
		return '░'
	case tile.GrassID:
		return '"'
	case tile.EmeraldID, tile.RubyID, tile.DiamondID, tile.GoldID:
		return '◆'
	case tile.MetalID:
		return '▓'
	case tile.ExplosivesID:
		return '*'
	case tile.CavernID:
		return '·'
	case tile.MineshaftID:
		return '='
	default:
		return '?'
	}
}

// tileColor возвращает базовый цвет для типа клетки
func tileColor(id tile.ID) tcell.Color {
	switch id {
	case tile.RockID:
		return tcell.ColorGray
	case tile.DirtID:
		return tcell.NewRGBColor(139, 90, 43)
	case tile.GrassID:
		return tcell.ColorGreen
	case tile.EmeraldID:
		return tcell.NewRGBColor(64, 224, 120)
	case tile.RubyID:
		return tcell.NewRGBColor(224, 48, 80)
	case tile.DiamondID:
		return tcell.NewRGBColor(160, 224, 255)
	case tile.GoldID:
		return tcell.ColorYellow
	case tile.MetalID:
		return tcell.ColorSilver
	case tile.ExplosivesID:
		return tcell.ColorRed
	case tile.MineshaftID:
		return tcell.NewRGBColor(200, 170, 110)
	default:
		return tcell.ColorDarkGray
	}
}

// shade затемняет цвет пропорционально уровню освещенности
func shade(c tcell.Color, light int) tcell.Color {
	if light >= tile.LightMax {
		return c
	}
	r, g, b := c.RGB()
	// Нижний порог, чтобы силуэты оставались различимы
	f := 0.15 + 0.85*float64(light)/float64(tile.LightMax)
	return tcell.NewRGBColor(
		int32(float64(r)*f),
		int32(float64(g)*f),
		int32(float64(b)*f),
	)
}

// Render рисует кадр: мир, частицы, курсор и строку статистики.
func (r *Renderer) Render(w *world.World, particles *ParticleField, cursorX, cursorY int) {
	r.screen.Clear()

	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			t := w.GetTile(x, y)
			if t == nil {
				continue
			}

			id := t.TypeID()
			light := t.Light()

			glyph := tileGlyph(id)
			color := tileColor(id)

			// Невидимые клетки показываем фоновым типом, сильно затемненным
			if tile.Invisible(id) {
				if bg, ok := tile.Background(id); ok {
					color = shade(tileColor(bg), 0)
				}
			} else {
				color = shade(color, light)
			}

			// Поврежденная клетка трескается
			if t.BreakAnimation() > 0 {
				glyph = '╳'
			}

			style := tcell.StyleDefault.Foreground(color)

			// Открытые грани выделяем жирным контуром, доступные для
			// взаимодействия клетки — фоновой подсветкой
			if !tile.Invisible(id) && t.Mask() != 0 {
				style = style.Bold(true)
			}
			if t.Accessible() {
				style = style.Background(tcell.NewRGBColor(46, 42, 24))
			}

			if x == cursorX && y == cursorY {
				style = style.Reverse(true)
			}

			r.screen.SetContent(x, y, glyph, style)
		}
	}

	particles.Draw(r.screen)

	stats := w.StatsCopy()
	r.RenderMessage(fmt.Sprintf(
		" счет:%d взрывчатка:%d выкопано:%d такт:%d ",
		stats.Score, stats.Explosives, stats.Dug, stats.Tick,
	), w.Height())
	r.RenderMessage(" стрелки: курсор | space: копать | r: ПКМ | e: взрывчатка | q: выход ", w.Height()+1)

	r.screen.Show()
}

// RenderMessage выводит строку текста на заданной высоте.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}
