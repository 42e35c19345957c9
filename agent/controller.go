package agent

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hexciv/experiments/metrics"
	"hexciv/game"
)

// DefaultMaxIterations bounds the commands a controller tries in one turn.
const DefaultMaxIterations = 200

type Option func(c *Controller)

func WithRegistry(r *Registry) Option {
	return func(c *Controller) {
		if r != nil {
			c.registry = r
		}
	}
}

func WithMaxIterations(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithNoise adds seeded uniform jitter in [-amount/2, amount/2) to every score.
func WithNoise(amount float64, seed uint64) Option {
	return func(c *Controller) {
		if amount > 0 {
			c.noise = amount
			c.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func WithMetrics() Option {
	return func(c *Controller) {
		c.metrics = metrics.NewCollector()
	}
}

// Controller is a greedy utility agent: each cycle it submits the single best
// scored candidate until it ends its turn.
type Controller struct {
	registry      *Registry
	maxIterations int
	noise         float64
	rng           *rand.Rand
	metrics       metrics.Collector
}

func NewController(options ...Option) *Controller {
	c := &Controller{ // Default values
		registry:      DefaultRegistry(),
		maxIterations: DefaultMaxIterations,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type candidate struct {
	cmd   game.Command
	score float64
}

// TakeTurn plays the current player's turn on d. It returns once the turn
// has passed or the game is over.
func (c *Controller) TakeTurn(d Driver) (metrics.DecisionMetric, error) {
	c.metrics.Start()
	player := d.QueryGameState().CurrentPlayer
	rejected := map[game.Command]bool{}

	for i := 0; i < c.maxIterations; i++ {
		state := d.QueryGameState()
		if state.IsGameOver || state.CurrentPlayer != player {
			return c.metrics.Complete(), nil
		}

		ctx := NewContext(d)
		best, ok := c.choose(ctx, rejected)
		if !ok {
			break
		}
		_, err := d.ExecuteCommand(best.cmd)
		var rej *game.Rejection
		switch {
		case errors.As(err, &rej):
			log.Debug().Msgf("player %d: dropping %+v: %s", player, best.cmd, rej.Reason)
			rejected[best.cmd] = true
			c.metrics.AddRejection()
			continue
		case err != nil:
			return c.metrics.Complete(), fmt.Errorf("agent: execute %s: %w", best.cmd.Kind(), err)
		}
		c.metrics.AddCommand()
		if _, ended := best.cmd.(game.EndTurn); ended {
			return c.metrics.Complete(), nil
		}
	}

	state := d.QueryGameState()
	if state.IsGameOver || state.CurrentPlayer != player {
		return c.metrics.Complete(), nil
	}
	log.Debug().Msgf("player %d: iteration cap reached, ending turn", player)
	c.metrics.SetForcedEnd(true)
	if _, err := d.ExecuteCommand(game.EndTurn{Player: player}); err != nil {
		return c.metrics.Complete(), fmt.Errorf("agent: forced end turn: %w", err)
	}
	c.metrics.AddCommand()
	return c.metrics.Complete(), nil
}

// choose returns the highest scored candidate. Ties keep the earliest action,
// then the earliest slot, then the earliest candidate.
func (c *Controller) choose(ctx *Context, rejected map[game.Command]bool) (candidate, bool) {
	var best candidate
	found := false
	slots := ctx.Slots()
	for _, action := range c.registry.actions {
		for _, slot := range slots {
			cmds := action.Candidates(ctx, slot)
			c.metrics.AddCandidates(len(cmds))
			for _, cmd := range cmds {
				if rejected[cmd] {
					continue
				}
				score := action.Score(ctx, cmd) + c.jitter()
				if !found || score > best.score {
					best = candidate{cmd: cmd, score: score}
					found = true
				}
			}
		}
	}
	return best, found
}

func (c *Controller) jitter() float64 {
	if c.rng == nil {
		return 0
	}
	return c.noise * (c.rng.Float64() - 0.5)
}
