package game

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rs/zerolog/log"

	"hexciv/world"
)

type Phase int

const (
	PhaseTurnStart Phase = iota
	PhasePlayerAction
	PhaseTurnEnd
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTurnStart:
		return "TurnStart"
	case PhasePlayerAction:
		return "PlayerAction"
	case PhaseTurnEnd:
		return "TurnEnd"
	case PhaseGameOver:
		return "GameOver"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

var ErrTooFewPlayers = errors.New("game: at least two players are required")

// Game is the authoritative simulation. It is not safe for concurrent use;
// gamemaster.Master serializes access when several goroutines share one.
type Game struct {
	store   *world.Store
	rules   Rules
	turn    int
	phase   Phase
	current world.PlayerID
	winner  world.PlayerID // zero while running or on a draw
	founded map[world.PlayerID]int
}

// New takes ownership of store, whose players must already be registered,
// and starts the first turn. A nil rules value selects the standard rules.
func New(store *world.Store, rules Rules) (*Game, error) {
	if rules == nil {
		rules = NewStandardRules()
	}
	if len(store.Players()) < 2 {
		return nil, ErrTooFewPlayers
	}
	g := &Game{
		store:   store,
		rules:   rules,
		turn:    1,
		founded: make(map[world.PlayerID]int),
	}
	first, _, ok := g.nextAlive(0)
	if !ok {
		return nil, ErrTooFewPlayers
	}
	g.current = first
	g.startTurn()
	return g, nil
}

// ExecuteCommand validates cmd against the current state and, if it is
// legal, applies it. Rejected commands leave the state untouched.
func (g *Game) ExecuteCommand(cmd Command) ([]Event, error) {
	if cmd == nil {
		return nil, ErrUnknownCommand
	}
	if g.phase == PhaseGameOver {
		return nil, g.reject(cmd, ErrGameOver)
	}

	switch c := cmd.(type) {
	case MoveUnit:
		order, reason := g.validateMove(c)
		if reason != 0 {
			return nil, g.reject(c, reason)
		}
		return g.executeMove(order), nil
	case Attack:
		order, reason := g.validateAttack(c)
		if reason != 0 {
			return nil, g.reject(c, reason)
		}
		return g.executeAttack(order), nil
	case FoundCity:
		settler, reason := g.validateFound(c)
		if reason != 0 {
			return nil, g.reject(c, reason)
		}
		return g.executeFound(settler), nil
	case SetProduction:
		city, reason := g.validateProduction(c)
		if reason != 0 {
			return nil, g.reject(c, reason)
		}
		return g.executeProduction(city, c.Item), nil
	case EndTurn:
		if c.Player != g.current {
			return nil, g.reject(c, ErrNotCurrentPlayer)
		}
		return g.endTurn(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (g *Game) reject(cmd Command, reason Reason) error {
	log.Debug().Msgf("player %d: %s rejected: %s", g.current, cmd.Kind(), reason)
	return &Rejection{Reason: reason, Command: cmd}
}

func (g *Game) Turn() int                     { return g.turn }
func (g *Game) Phase() Phase                  { return g.phase }
func (g *Game) CurrentPlayer() world.PlayerID { return g.current }
func (g *Game) IsOver() bool                  { return g.phase == PhaseGameOver }
func (g *Game) Rules() Rules                  { return g.rules }

// Winner is zero while the game runs and after a draw.
func (g *Game) Winner() world.PlayerID { return g.winner }

// Copy returns an independent game for lookahead. Rules are shared.
func (g *Game) Copy() *Game {
	out := *g
	out.store = g.store.Copy()
	out.founded = maps.Clone(g.founded)
	return &out
}

// must guards store writes that validation has already proven legal.
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("game: store rejected a validated write: %v", err))
	}
}
