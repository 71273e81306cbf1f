// Package render отрисовывает мир в терминале через tcell.
package render

import "github.com/gdamore/tcell/v2"

// Screen оборачивает tcell.Screen упрощенным интерфейсом.
type Screen struct {
	screen tcell.Screen
}

// NewScreen создает и инициализирует терминальный экран.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s}, nil
}

// NewSimulationScreen создает экран на tcell-симуляторе: рисование идет
// в память, без настоящего терминала. Используется в тестах.
func NewSimulationScreen(width, height int) (*Screen, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, nil, err
	}
	sim.SetSize(width, height)
	return &Screen{screen: sim}, sim, nil
}

// Close завершает работу экрана и восстанавливает терминал.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent блокирующе возвращает следующее событие терминала.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent кладет событие в очередь экрана.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Clear очищает буфер экрана.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show сбрасывает буфер экрана в терминал.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent устанавливает содержимое одной ячейки.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size возвращает текущие размеры терминала.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync принудительно перерисовывает экран целиком.
func (s *Screen) Sync() {
	s.screen.Sync()
}
