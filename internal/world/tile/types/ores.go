package types

import (
	"github.com/annel0/dig-game/internal/world/tile"
)

// Руды наследуют от Rock порог разрушения и маску, но переопределяют
// очки и звуки. Категория "Ore" группирует их спрайты; фоном
// отрисовывается порода.
func ore(name string, score int) *tile.Descriptor {
	return &tile.Descriptor{
		Name:       name,
		Base:       ptr(tile.RockID),
		Category:   ptr("Ore"),
		Background: ptr(tile.RockID),
		Score:      ptr(score),
		BreakSound: ptr(tile.SoundGem),
	}
}

var (
	Emerald = ore("Emerald", 100)
	Ruby    = ore("Ruby", 150)
	Gold    = ore("Gold", 250)
	Diamond = ore("Diamond", 500)
)
