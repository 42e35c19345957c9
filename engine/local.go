package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hexciv/agent"
	"hexciv/experiments/metrics"
	"hexciv/game"
	"hexciv/gamemaster"
	"hexciv/world"
)

type Option func(e *Engine)

func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithEvaluator sets the function that scores each player after their turn.
func WithEvaluator(evaluate game.Evaluator) Option {
	return func(e *Engine) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

// Engine drives one controller per player over a shared Master. Controllers
// are matched to players in seating order.
type Engine struct {
	master      *gamemaster.Master
	controllers map[world.PlayerID]*agent.Controller
	maxTurns    int
	evaluate    game.Evaluator
}

var _ Runner = (*Engine)(nil)

func New(master *gamemaster.Master, controllers []*agent.Controller, options ...Option) *Engine {
	if len(controllers) < 2 {
		panic("need at least two controllers")
	}
	players := master.QueryGameState().Players
	if len(players) != len(controllers) {
		panic("number of players does not match number of controllers")
	}

	e := &Engine{ // Default values
		master:      master,
		controllers: make(map[world.PlayerID]*agent.Controller, len(players)),
		maxTurns:    DefaultMaxTurns,
		evaluate:    game.Evaluate,
	}
	for i, p := range players {
		e.controllers[p.ID] = controllers[i]
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// counter counts the commands the master accepted.
type counter struct {
	*gamemaster.Master
	accepted int
}

func (c *counter) ExecuteCommand(cmd game.Command) ([]game.Event, error) {
	events, err := c.Master.ExecuteCommand(cmd)
	if err == nil {
		c.accepted++
	}
	return events, err
}

// Run executes the game loop until a winner is found or the turn limit is hit.
func (e *Engine) Run() (Result, error) {
	start := time.Now()
	driver := &counter{Master: e.master}
	state := e.master.QueryGameState()
	var moves []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", state.CurrentPlayer)

	for !state.IsGameOver && state.Turn <= e.maxTurns {
		player, turn := state.CurrentPlayer, state.Turn
		decision, err := e.controllers[player].TakeTurn(driver)
		if err != nil {
			return Result{}, fmt.Errorf("engine: player %d turn %d: %w", player, turn, err)
		}
		moves = append(moves, metrics.MoveMetric{
			Turn:           turn,
			Player:         int(player),
			Evaluation:     e.master.Evaluate(player, e.evaluate),
			DecisionMetric: decision,
		})
		state = e.master.QueryGameState()
	}

	var winner world.PlayerID
	if state.Winner != nil {
		winner = *state.Winner
	}
	if state.IsGameOver {
		log.Info().Msgf("game over on turn %d, winner: %d", state.Turn, winner)
	} else {
		log.Info().Msgf("stopped after %d turns without a winner", e.maxTurns)
	}

	end := time.Now()
	return Result{
		Winner: winner,
		Game: metrics.GameMetric{
			Players:    len(state.Players),
			Winner:     int(winner),
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start),
			Turns:      min(state.Turn, e.maxTurns),
			TotalMoves: driver.accepted,
			FinalHash:  uint64(e.master.Hash()),
		},
		Moves: moves,
	}, nil
}
