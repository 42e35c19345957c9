package agent

import (
	"fmt"

	"hexciv/game"
)

// Action proposes and scores commands of one kind.
type Action interface {
	ID() string
	Candidates(ctx *Context, slot Slot) []game.Command
	Score(ctx *Context, cmd game.Command) float64
}

// Registry keeps actions in registration order, which is also the tiebreak order.
type Registry struct {
	actions []Action
	ids     map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{ids: map[string]bool{}}
}

func (r *Registry) Register(a Action) error {
	if r.ids[a.ID()] {
		return fmt.Errorf("agent: action %q already registered", a.ID())
	}
	r.ids[a.ID()] = true
	r.actions = append(r.actions, a)
	return nil
}

func (r *Registry) Actions() []Action {
	return append([]Action(nil), r.actions...)
}

// DefaultRegistry holds the standard actions: attack, found-city,
// set-production, move and end-turn.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, a := range []Action{
		AttackAction{},
		FoundCityAction{},
		SetProductionAction{},
		MoveAction{},
		EndTurnAction{},
	} {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}
