package render

import (
	"testing"

	"github.com/annel0/dig-game/internal/world"
)

// TestParticleFieldLifecycle проверяет создание и угасание частиц
func TestParticleFieldLifecycle(t *testing.T) {
	pf := NewParticleField(1)

	pf.Create("Rock", 5*world.TileSize, 3*world.TileSize, 16)
	if got := pf.count(); got != 16 {
		t.Fatalf("Создано частиц: ожидалось 16, получено %d", got)
	}

	// Частицы живут не дольше 8 кадров
	for i := 0; i < 10; i++ {
		pf.Step()
	}
	if got := pf.count(); got != 0 {
		t.Errorf("Частицы не угасли: осталось %d", got)
	}
}

// TestParticleFieldImplementsPort проверяет совместимость с миром:
// частицы создаются напрямую из симуляции при разрушении тайлов.
func TestParticleFieldImplementsPort(t *testing.T) {
	pf := NewParticleField(2)
	var port world.Particles = pf

	port.Create("Ore", 0, 0, 2)
	if got := pf.count(); got != 2 {
		t.Errorf("Через интерфейс создано %d частиц вместо 2", got)
	}
}
