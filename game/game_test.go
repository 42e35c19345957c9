package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"hexciv/combat"
	"hexciv/hex"
	"hexciv/world"
)

// newTestStore is a grassland disc with two players, red (1) and blue (2).
func newTestStore(radius int) (*world.Store, world.PlayerID, world.PlayerID) {
	s := world.NewStore()
	for _, c := range hex.Range(hex.Origin, radius) {
		s.PutTile(world.NewTile(c, world.Grassland))
	}
	red := s.AddPlayer("red", true)
	blue := s.AddPlayer("blue", true)
	return s, red, blue
}

func placeUnit(t *testing.T, s *world.Store, c hex.Coord, ut world.UnitType, owner world.PlayerID) world.Handle {
	t.Helper()
	h, err := s.CreateUnit(c, ut, owner)
	require.NoError(t, err)
	return h
}

func newTestGame(t *testing.T, s *world.Store) *Game {
	t.Helper()
	g, err := New(s, nil)
	require.NoError(t, err)
	return g
}

func requireReason(t *testing.T, err error, want Reason) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, want), "want %s, got %v", want, err)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, want, rej.Reason)
}

func TestNew(t *testing.T) {
	t.Run("requires two players", func(t *testing.T) {
		s := world.NewStore()
		s.AddPlayer("solo", false)
		_, err := New(s, nil)
		require.ErrorIs(t, err, ErrTooFewPlayers)
	})

	t.Run("starts on turn one with the first player acting", func(t *testing.T) {
		s, red, _ := newTestStore(2)
		g := newTestGame(t, s)
		state := g.QueryGameState()
		require.Equal(t, 1, state.Turn)
		require.Equal(t, red, state.CurrentPlayer)
		require.Equal(t, PhasePlayerAction, state.Phase)
		require.False(t, state.IsGameOver)
		require.Nil(t, state.Winner)
	})
}

func TestFoundCity(t *testing.T) {
	t.Run("a settler on grassland founds a city with seven territory tiles", func(t *testing.T) {
		s, red, blue := newTestStore(3)
		settler := placeUnit(t, s, hex.Origin, world.Settler, red)
		placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
		g := newTestGame(t, s)

		events, err := g.ExecuteCommand(FoundCity{Settler: settler})
		require.NoError(t, err)
		require.Len(t, events, 1)
		founded, ok := events[0].(CityFounded)
		require.True(t, ok)
		require.Equal(t, hex.Origin, founded.Coord)
		require.Len(t, founded.Territory, 7)
		require.Equal(t, "red Capital", founded.Name)

		_, exists := g.QueryUnit(settler)
		require.False(t, exists, "the settler is consumed")
		city, ok := g.QueryCity(founded.City)
		require.True(t, ok)
		require.Equal(t, 1, city.Population)
		require.Equal(t, red, city.Owner)
		require.ElementsMatch(t, hex.Range(hex.Origin, 1), city.Territory)
	})

	t.Run("only settlers found cities", func(t *testing.T) {
		s, red, _ := newTestStore(2)
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, red)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(FoundCity{Settler: warrior})
		requireReason(t, err, ErrWrongUnitType)
	})

	t.Run("water is invalid terrain", func(t *testing.T) {
		s, red, _ := newTestStore(2)
		s.PutTile(world.NewTile(hex.New(1, 0), world.Coast))
		settler := placeUnit(t, s, hex.New(1, 0), world.Settler, red)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(FoundCity{Settler: settler})
		requireReason(t, err, ErrInvalidTerrain)
	})

	t.Run("a second city on the same center is rejected", func(t *testing.T) {
		s, red, blue := newTestStore(3)
		first := placeUnit(t, s, hex.Origin, world.Settler, red)
		placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(FoundCity{Settler: first})
		require.NoError(t, err)

		second := placeUnit(t, s, hex.Origin, world.Settler, red)
		_, err = g.ExecuteCommand(FoundCity{Settler: second})
		requireReason(t, err, ErrOccupiedTile)
	})

	t.Run("unknown and foreign settlers", func(t *testing.T) {
		s, _, blue := newTestStore(2)
		foreign := placeUnit(t, s, hex.Origin, world.Settler, blue)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(FoundCity{Settler: foreign})
		requireReason(t, err, ErrNotOwner)
		_, err = g.ExecuteCommand(FoundCity{Settler: 999})
		requireReason(t, err, ErrNotFound)
	})

	t.Run("overlapping territory stays with the first city", func(t *testing.T) {
		s, red, blue := newTestStore(4)
		a := placeUnit(t, s, hex.Origin, world.Settler, red)
		b := placeUnit(t, s, hex.New(2, 0), world.Settler, red)
		placeUnit(t, s, hex.New(-4, 0), world.Warrior, blue)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(FoundCity{Settler: a})
		require.NoError(t, err)
		_, err = g.ExecuteCommand(FoundCity{Settler: b})
		require.NoError(t, err)

		seen := map[hex.Coord]world.Handle{}
		for _, c := range g.QueryCities(nil) {
			for _, coord := range c.Territory {
				prev, dup := seen[coord]
				require.False(t, dup, "%s claimed by %d and %d", coord, prev, c.Handle)
				seen[coord] = c.Handle
			}
		}
		require.Len(t, seen, 13)
	})
}

func TestMoveUnit(t *testing.T) {
	t.Run("movement points drop by the path cost of each move", func(t *testing.T) {
		s, red, blue := newTestStore(4)
		scout := placeUnit(t, s, hex.Origin, world.Scout, red)
		placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
		g := newTestGame(t, s)

		spent := 0
		for _, target := range []hex.Coord{hex.New(1, 0), hex.New(2, 0), hex.New(3, 0)} {
			events, err := g.ExecuteCommand(MoveUnit{Unit: scout, Target: target})
			require.NoError(t, err)
			moved := events[0].(UnitMoved)
			spent += moved.Cost
			u, _ := g.QueryUnit(scout)
			require.Equal(t, u.MaxMovement-spent, u.Movement)
			require.GreaterOrEqual(t, u.Movement, 0)
			require.Equal(t, target, u.Coord)
		}

		_, err := g.ExecuteCommand(MoveUnit{Unit: scout, Target: hex.New(4, 0)})
		requireReason(t, err, ErrNoMovement)
	})

	t.Run("a path costing more than the remaining movement is unreachable", func(t *testing.T) {
		s, red, _ := newTestStore(3)
		s.PutTile(world.NewTile(hex.New(2, 0), world.GrasslandHill))
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, red)
		g := newTestGame(t, s)

		_, err := g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(2, 0)})
		requireReason(t, err, ErrUnreachable)
		u, _ := g.QueryUnit(warrior)
		require.Equal(t, hex.Origin, u.Coord, "rejected commands change nothing")
		require.Equal(t, 2, u.Movement)
	})

	t.Run("friendly units block stacking and enemies are unreachable", func(t *testing.T) {
		s, red, blue := newTestStore(2)
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, red)
		placeUnit(t, s, hex.New(1, 0), world.Warrior, red)
		placeUnit(t, s, hex.New(0, 1), world.Warrior, blue)
		g := newTestGame(t, s)

		_, err := g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(1, 0)})
		requireReason(t, err, ErrOccupiedTile)
		_, err = g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(0, 1)})
		requireReason(t, err, ErrUnreachable)
		u, _ := g.QueryUnit(warrior)
		require.Equal(t, hex.Origin, u.Coord)
	})

	t.Run("off map targets are unreachable", func(t *testing.T) {
		s, red, _ := newTestStore(1)
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, red)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(5, 5)})
		requireReason(t, err, ErrUnreachable)
	})

	t.Run("another player's unit cannot be moved", func(t *testing.T) {
		s, _, blue := newTestStore(2)
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, blue)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(1, 0)})
		requireReason(t, err, ErrNotOwner)
	})

	t.Run("a combat unit captures an undefended enemy city", func(t *testing.T) {
		s, red, blue := newTestStore(4)
		city, err := s.CreateCity(hex.New(2, 0), blue, "blue Capital")
		require.NoError(t, err)
		_, err = s.ClaimTerritory(city, hex.Range(hex.New(2, 0), 1))
		require.NoError(t, err)
		placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
		warrior := placeUnit(t, s, hex.New(1, 0), world.Warrior, red)
		g := newTestGame(t, s)

		events, err := g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(2, 0)})
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Equal(t, 0, events[0].(UnitMoved).Remaining)
		captured := events[1].(CityCaptured)
		require.Equal(t, blue, captured.From)
		require.Equal(t, red, captured.To)

		c, _ := g.QueryCity(city)
		require.Equal(t, red, c.Owner)
		require.Len(t, c.Territory, 7)
		require.False(t, g.IsOver(), "blue still has a warrior")
	})

	t.Run("settlers cannot enter enemy cities", func(t *testing.T) {
		s, red, blue := newTestStore(3)
		_, err := s.CreateCity(hex.New(1, 0), blue, "blue Capital")
		require.NoError(t, err)
		settler := placeUnit(t, s, hex.Origin, world.Settler, red)
		g := newTestGame(t, s)
		_, err = g.ExecuteCommand(MoveUnit{Unit: settler, Target: hex.New(1, 0)})
		requireReason(t, err, ErrUnreachable)
	})
}

func TestAttack(t *testing.T) {
	t.Run("even warriors on open ground deal 30 and take 15", func(t *testing.T) {
		s, red, blue := newTestStore(2)
		att := placeUnit(t, s, hex.Origin, world.Warrior, red)
		def := placeUnit(t, s, hex.New(1, 0), world.Warrior, blue)
		g := newTestGame(t, s)

		events, err := g.ExecuteCommand(Attack{Attacker: att, Defender: def})
		require.NoError(t, err)
		require.Len(t, events, 1)
		res := events[0].(CombatResolved)
		require.Equal(t, 30, res.DefenderDamage)
		require.Equal(t, 15, res.AttackerDamage)

		a, _ := g.QueryUnit(att)
		d, _ := g.QueryUnit(def)
		require.Equal(t, 85, a.Health)
		require.Equal(t, 70, d.Health)
		require.Equal(t, 0, a.Movement)
		require.Equal(t, hex.Origin, a.Coord, "the attacker never advances")
	})

	t.Run("rejections", func(t *testing.T) {
		s, red, blue := newTestStore(3)
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, red)
		settler := placeUnit(t, s, hex.New(0, 1), world.Settler, red)
		friend := placeUnit(t, s, hex.New(-1, 0), world.Warrior, red)
		near := placeUnit(t, s, hex.New(1, 0), world.Warrior, blue)
		far := placeUnit(t, s, hex.New(3, 0), world.Warrior, blue)
		g := newTestGame(t, s)

		tests := []struct {
			name string
			cmd  Attack
			want Reason
		}{
			{"unknown attacker", Attack{Attacker: 999, Defender: near}, ErrNotFound},
			{"unknown defender", Attack{Attacker: warrior, Defender: 999}, ErrNotFound},
			{"foreign attacker", Attack{Attacker: near, Defender: warrior}, ErrNotOwner},
			{"settlers cannot attack", Attack{Attacker: settler, Defender: near}, ErrWrongUnitType},
			{"defender out of reach", Attack{Attacker: warrior, Defender: far}, ErrNotAdjacent},
			{"friendly fire", Attack{Attacker: warrior, Defender: friend}, ErrSameOwner},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := g.ExecuteCommand(tt.cmd)
				requireReason(t, err, tt.want)
			})
		}

		_, err := g.ExecuteCommand(Attack{Attacker: warrior, Defender: near})
		require.NoError(t, err)
		_, err = g.ExecuteCommand(Attack{Attacker: warrior, Defender: near})
		requireReason(t, err, ErrNoMovement)
	})

	t.Run("destroying the last enemy unit ends the game", func(t *testing.T) {
		s, red, blue := newTestStore(2)
		warrior := placeUnit(t, s, hex.Origin, world.Warrior, red)
		settler := placeUnit(t, s, hex.New(1, 0), world.Settler, blue)
		g := newTestGame(t, s)

		events, err := g.ExecuteCommand(Attack{Attacker: warrior, Defender: settler})
		require.NoError(t, err)
		kinds := make([]string, 0, len(events))
		for _, ev := range events {
			kinds = append(kinds, ev.Kind())
		}
		require.Equal(t, []string{"CombatResolved", "UnitDestroyed", "PlayerEliminated", "GameOver"}, kinds)

		state := g.QueryGameState()
		require.True(t, state.IsGameOver)
		require.NotNil(t, state.Winner)
		require.Equal(t, red, *state.Winner)
		for _, p := range state.Players {
			units, cities := s.CountOwned(p.ID)
			require.Equal(t, units == 0 && cities == 0, p.Eliminated)
		}

		_, err = g.ExecuteCommand(EndTurn{Player: red})
		requireReason(t, err, ErrGameOver)
		_, err = g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(-1, 0)})
		requireReason(t, err, ErrGameOver)
	})
}

func TestSetProduction(t *testing.T) {
	s, red, blue := newTestStore(3)
	settler := placeUnit(t, s, hex.Origin, world.Settler, red)
	placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
	g := newTestGame(t, s)
	events, err := g.ExecuteCommand(FoundCity{Settler: settler})
	require.NoError(t, err)
	city := events[0].(CityFounded).City

	_, err = g.ExecuteCommand(SetProduction{City: city, Item: world.Warrior})
	require.NoError(t, err)
	_, err = g.ExecuteCommand(EndTurn{Player: red})
	require.NoError(t, err)

	t.Run("cities can only be managed by their owner", func(t *testing.T) {
		_, err := g.ExecuteCommand(SetProduction{City: city, Item: world.Scout})
		requireReason(t, err, ErrNotOwner)
	})

	_, err = g.ExecuteCommand(EndTurn{Player: blue})
	require.NoError(t, err)

	progressOf := func() (world.UnitType, int) {
		c, _ := g.QueryCity(city)
		require.NotNil(t, c.Production)
		return c.Production.Item, c.Production.Progress
	}

	t.Run("progress is kept when the item is unchanged", func(t *testing.T) {
		_, before := progressOf()
		require.Equal(t, 1, before, "an unimproved grassland city makes one production")
		_, err := g.ExecuteCommand(SetProduction{City: city, Item: world.Warrior})
		require.NoError(t, err)
		item, after := progressOf()
		require.Equal(t, world.Warrior, item)
		require.Equal(t, before, after)
	})

	t.Run("progress resets when the item changes", func(t *testing.T) {
		_, err := g.ExecuteCommand(SetProduction{City: city, Item: world.Scout})
		require.NoError(t, err)
		item, progress := progressOf()
		require.Equal(t, world.Scout, item)
		require.Zero(t, progress)
	})

	t.Run("unknown items are rejected", func(t *testing.T) {
		_, err := g.ExecuteCommand(SetProduction{City: city, Item: world.UnitType(99)})
		requireReason(t, err, ErrWrongUnitType)
		_, err = g.ExecuteCommand(SetProduction{City: 999, Item: world.Warrior})
		requireReason(t, err, ErrNotFound)
	})
}

func TestSnapshotsAreCopies(t *testing.T) {
	s, red, blue := newTestStore(3)
	settler := placeUnit(t, s, hex.Origin, world.Settler, red)
	warrior := placeUnit(t, s, hex.New(0, 2), world.Warrior, red)
	placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
	g := newTestGame(t, s)
	_, err := g.ExecuteCommand(FoundCity{Settler: settler})
	require.NoError(t, err)

	cities := g.QueryCities(&red)
	require.Len(t, cities, 1)
	cities[0].Territory[0] = hex.New(99, 99)
	again := g.QueryCities(&red)
	require.NotEqual(t, hex.New(99, 99), again[0].Territory[0])

	before := g.QueryUnits(&red)
	_, err = g.ExecuteCommand(MoveUnit{Unit: warrior, Target: hex.New(1, 1)})
	require.NoError(t, err)
	require.Equal(t, hex.New(0, 2), before[0].Coord)

	require.Len(t, g.QueryUnits(nil), 2)
	require.Len(t, g.QueryUnits(&blue), 1)

	tile, ok := g.QueryTile(hex.Origin)
	require.True(t, ok)
	require.NotZero(t, tile.City)
	require.Equal(t, 1, tile.MoveCost)
	_, ok = g.QueryTile(hex.New(50, 50))
	require.False(t, ok)
}

func TestCopyAndHash(t *testing.T) {
	build := func() (*Game, world.Handle) {
		s, red, blue := newTestStore(3)
		w := placeUnit(t, s, hex.Origin, world.Warrior, red)
		placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
		return newTestGame(t, s), w
	}

	t.Run("equal command sequences give equal hashes", func(t *testing.T) {
		a, wa := build()
		b, wb := build()
		require.Equal(t, a.Hash(), b.Hash())
		_, err := a.ExecuteCommand(MoveUnit{Unit: wa, Target: hex.New(1, 0)})
		require.NoError(t, err)
		require.NotEqual(t, a.Hash(), b.Hash())
		_, err = b.ExecuteCommand(MoveUnit{Unit: wb, Target: hex.New(1, 0)})
		require.NoError(t, err)
		require.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("a copy evolves independently", func(t *testing.T) {
		g, w := build()
		c := g.Copy()
		_, err := c.ExecuteCommand(MoveUnit{Unit: w, Target: hex.New(1, 0)})
		require.NoError(t, err)
		u, _ := g.QueryUnit(w)
		require.Equal(t, hex.Origin, u.Coord)
		require.NotEqual(t, g.Hash(), c.Hash())
	})
}

func TestEvaluate(t *testing.T) {
	s, red, blue := newTestStore(3)
	placeUnit(t, s, hex.Origin, world.Warrior, red)
	placeUnit(t, s, hex.New(1, 0), world.Warrior, red)
	placeUnit(t, s, hex.New(-3, 0), world.Warrior, blue)
	g := newTestGame(t, s)

	require.Greater(t, EvaluateMilitary(g, red), 0.0)
	require.Less(t, EvaluateMilitary(g, blue), 0.0)
	require.InDelta(t, EvaluateMilitary(g, red), -EvaluateMilitary(g, blue), 1e-9)
	require.Zero(t, EvaluateResources(g, red), "nobody has cities")
	score := Evaluate(g, red)
	require.GreaterOrEqual(t, score, -1.0)
	require.LessOrEqual(t, score, 1.0)
}

func TestArcherFightsInMelee(t *testing.T) {
	s, red, blue := newTestStore(3)
	archer := placeUnit(t, s, hex.Origin, world.Archer, red)
	near := placeUnit(t, s, hex.New(1, 0), world.Warrior, blue)
	far := placeUnit(t, s, hex.New(-2, 0), world.Warrior, blue)
	g := newTestGame(t, s)

	_, err := g.ExecuteCommand(Attack{Attacker: archer, Defender: far})
	requireReason(t, err, ErrNotAdjacent)

	att, _ := s.Unit(archer)
	def, _ := s.Unit(near)
	tile, _ := s.Tile(def.Coord)
	want := combat.Predict(att, def, tile, false)

	events, err := g.ExecuteCommand(Attack{Attacker: archer, Defender: near})
	require.NoError(t, err)
	got := events[0].(CombatResolved)
	require.Equal(t, want.AttackerDamage, got.AttackerDamage, "melee strength, not ranged")
	require.Equal(t, want.DefenderDamage, got.DefenderDamage)
}
