package engine

import (
	"hexciv/experiments/metrics"
	"hexciv/world"
)

const DefaultMaxTurns = 500

type Runner interface {
	// Run plays a game till there's a winner or the turn limit is reached
	Run() (Result, error)
}

// Result is what one finished game leaves behind. Winner is zero on a draw
// or when the turn limit stopped the game.
type Result struct {
	Winner world.PlayerID
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}
