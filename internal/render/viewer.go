package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/dig-game/internal/world"
	"github.com/annel0/dig-game/internal/world/tile"
)

// Viewer — интерактивный терминальный клиент мира: курсор, мышь,
// копание и установка взрывчатки.
type Viewer struct {
	screen    *Screen
	renderer  *Renderer
	world     *world.World
	particles *ParticleField

	cursorX, cursorY int
	mouseHeld        bool
	running          bool
}

// NewViewer создает вьювер поверх готового мира
func NewViewer(w *world.World, particles *ParticleField) (*Viewer, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}

	return &Viewer{
		screen:    screen,
		renderer:  NewRenderer(screen),
		world:     w,
		particles: particles,
		running:   true,
	}, nil
}

// Run запускает главный цикл: мир тикает по таймеру, ввод — из терминала.
func (v *Viewer) Run(ctx context.Context, tickInterval time.Duration) error {
	defer v.screen.Close()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	v.pointTo(v.cursorX, v.cursorY)

	for v.running {
		select {
		case <-ctx.Done():
			v.running = false
		case <-ticker.C:
			v.world.Step()
			if v.mouseHeld {
				v.world.Interact(v.cursorX, v.cursorY, tile.PointerHold)
			}
			v.particles.Step()
			v.renderer.Render(v.world, v.particles, v.cursorX, v.cursorY)
		case ev := <-events:
			v.handleEvent(ev)
		}
	}

	return nil
}

// handleEvent обрабатывает одно событие терминала
func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// pointTo перемещает курсор с событиями leave/enter для затронутых клеток
func (v *Viewer) pointTo(x, y int) {
	if x < 0 || y < 0 || x >= v.world.Width() || y >= v.world.Height() {
		return
	}
	if x != v.cursorX || y != v.cursorY {
		v.world.Interact(v.cursorX, v.cursorY, tile.PointerLeave)
	}
	v.cursorX, v.cursorY = x, y
	v.world.Interact(x, y, tile.PointerEnter)
}

func (v *Viewer) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.pointTo(v.cursorX, v.cursorY-1)
	case tcell.KeyDown:
		v.pointTo(v.cursorX, v.cursorY+1)
	case tcell.KeyLeft:
		v.pointTo(v.cursorX-1, v.cursorY)
	case tcell.KeyRight:
		v.pointTo(v.cursorX+1, v.cursorY)

	case tcell.KeyEnter:
		v.world.Interact(v.cursorX, v.cursorY, tile.PointerClick)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case ' ':
			v.world.Interact(v.cursorX, v.cursorY, tile.PointerClick)
		case 'h', 'H':
			v.mouseHeld = !v.mouseHeld
		case 'r', 'R':
			v.world.Interact(v.cursorX, v.cursorY, tile.PointerRightClick)
		case 'e', 'E':
			_ = v.world.PlaceExplosive(v.cursorX, v.cursorY)
		}
	}
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if x >= v.world.Width() || y >= v.world.Height() {
		return
	}

	v.pointTo(x, y)

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		if !v.mouseHeld {
			v.world.Interact(x, y, tile.PointerDown)
			v.world.Interact(x, y, tile.PointerClick)
			v.mouseHeld = true
		}
	case buttons&tcell.Button2 != 0:
		v.world.Interact(x, y, tile.PointerRightClick)
	default:
		if v.mouseHeld {
			v.world.Interact(x, y, tile.PointerUp)
			v.mouseHeld = false
		}
	}
}
