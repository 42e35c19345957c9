package gamemaster

import (
	"errors"
	"fmt"
	"slices"

	"hexciv/game"
	"hexciv/world"
)

var ErrPlayerCount = errors.New("gamemaster: need at least two players")

// Setup places one settler on each start position with a warrior on the
// first free neighbor that is not another player's start.
func Setup(s *world.Store, players []string) error {
	if len(players) < 2 {
		return ErrPlayerCount
	}
	starts, err := world.StartPositions(s, len(players))
	if err != nil {
		return fmt.Errorf("gamemaster: %w", err)
	}
	for i, name := range players {
		id := s.AddPlayer(name, true)
		if _, err := s.CreateUnit(starts[i], world.Settler, id); err != nil {
			return fmt.Errorf("gamemaster: place settler for %s: %w", name, err)
		}
		for _, n := range starts[i].Neighbors() {
			t, ok := s.Tile(n)
			if !ok || !t.IsPassable() || slices.Contains(starts, n) {
				continue
			}
			if _, err := s.CreateUnit(n, world.Warrior, id); err == nil {
				break
			}
		}
	}
	return nil
}

// NewLocal generates a map from cfg, seats the players and starts a game.
func NewLocal(cfg world.MapConfig, players []string, rules game.Rules) (*Master, error) {
	store := world.NewGenerator(cfg).Generate()
	if err := Setup(store, players); err != nil {
		return nil, err
	}
	g, err := game.New(store, rules)
	if err != nil {
		return nil, fmt.Errorf("gamemaster: %w", err)
	}
	return New(g), nil
}
