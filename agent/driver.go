package agent

import (
	"hexciv/game"
	"hexciv/hex"
	"hexciv/world"
)

// Driver is what a controller needs from a running game. Both *game.Game
// and *gamemaster.Master satisfy it.
type Driver interface {
	ExecuteCommand(cmd game.Command) ([]game.Event, error)
	QueryUnits(owner *world.PlayerID) []game.UnitSnapshot
	QueryCities(owner *world.PlayerID) []game.CitySnapshot
	QueryTile(c hex.Coord) (game.TileSnapshot, bool)
	QueryGameState() game.StateSnapshot
	QueryReachable(h world.Handle) map[hex.Coord]int
}
