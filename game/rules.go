package game

import (
	"hexciv/hex"
	"hexciv/world"
)

// Rules holds the tunable parts of the simulation.
type Rules interface {
	FoodForGrowth(population int) int
	FoodUpkeep(population int) int
	CityRadius() int
	DefenseModifier(tile world.Tile, from hex.Coord, cityCenter bool) float64
	// WorkedTiles is how many territory tiles besides the center a city works.
	WorkedTiles(population int) int
}
