package types

import "github.com/annel0/dig-game/internal/world/tile"

// Регистрируем все типы тайлов при импорте пакета
func init() {
	tile.Register(tile.RockID, Rock)
	tile.Register(tile.DirtID, Dirt)
	tile.Register(tile.GrassID, Grass)

	tile.Register(tile.EmeraldID, Emerald)
	tile.Register(tile.RubyID, Ruby)
	tile.Register(tile.GoldID, Gold)
	tile.Register(tile.DiamondID, Diamond)

	tile.Register(tile.MetalID, Metal)
	tile.Register(tile.ExplosivesID, Explosives)
	tile.Register(tile.CavernID, Cavern)
	tile.Register(tile.MineshaftID, Mineshaft)
}
