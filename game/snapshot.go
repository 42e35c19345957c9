package game

import (
	"slices"

	"hexciv/hex"
	"hexciv/pathfind"
	"hexciv/world"
)

// Snapshots are deep copies. Holding one never observes later commands.

type UnitSnapshot struct {
	Handle      world.Handle   `json:"handle"`
	Type        world.UnitType `json:"type"`
	Owner       world.PlayerID `json:"owner"`
	Coord       hex.Coord      `json:"coord"`
	Movement    int            `json:"movement"`
	MaxMovement int            `json:"max_movement"`
	Health      int            `json:"health"`
	MaxHealth   int            `json:"max_health"`
	Strength    float64        `json:"strength"`
}

type ProductionSnapshot struct {
	Item     world.UnitType `json:"item"`
	Progress int            `json:"progress"`
	Cost     int            `json:"cost"`
}

type CitySnapshot struct {
	Handle       world.Handle        `json:"handle"`
	Name         string              `json:"name"`
	Owner        world.PlayerID      `json:"owner"`
	Coord        hex.Coord           `json:"coord"`
	Population   int                 `json:"population"`
	Food         int                 `json:"food"`
	FoodRequired int                 `json:"food_required"`
	Production   *ProductionSnapshot `json:"production,omitempty"`
	Territory    []hex.Coord         `json:"territory"`
	Yields       world.Yields        `json:"yields"`
}

type TileSnapshot struct {
	world.Tile
	Yields   world.Yields `json:"yields"`
	MoveCost int          `json:"move_cost"`
	Unit     world.Handle `json:"unit,omitempty"`
	City     world.Handle `json:"city,omitempty"`
}

type StateSnapshot struct {
	Turn          int             `json:"turn"`
	Phase         Phase           `json:"phase"`
	CurrentPlayer world.PlayerID  `json:"current_player"`
	IsGameOver    bool            `json:"is_game_over"`
	Winner        *world.PlayerID `json:"winner,omitempty"`
	Players       []world.Player  `json:"players"`
}

// QueryUnits lists units in handle order, optionally only those of one player.
func (g *Game) QueryUnits(owner *world.PlayerID) []UnitSnapshot {
	var units []world.Unit
	if owner != nil {
		units = g.store.UnitsOwnedBy(*owner)
	} else {
		units = g.store.AllUnits()
	}
	out := make([]UnitSnapshot, 0, len(units))
	for _, u := range units {
		out = append(out, unitSnapshot(u))
	}
	return out
}

func (g *Game) QueryUnit(h world.Handle) (UnitSnapshot, bool) {
	u, ok := g.store.Unit(h)
	if !ok {
		return UnitSnapshot{}, false
	}
	return unitSnapshot(u), true
}

func (g *Game) QueryCities(owner *world.PlayerID) []CitySnapshot {
	var cities []world.City
	if owner != nil {
		cities = g.store.CitiesOwnedBy(*owner)
	} else {
		cities = g.store.AllCities()
	}
	out := make([]CitySnapshot, 0, len(cities))
	for _, c := range cities {
		out = append(out, g.citySnapshot(c))
	}
	return out
}

func (g *Game) QueryCity(h world.Handle) (CitySnapshot, bool) {
	c, ok := g.store.City(h)
	if !ok {
		return CitySnapshot{}, false
	}
	return g.citySnapshot(c), true
}

func (g *Game) QueryTile(c hex.Coord) (TileSnapshot, bool) {
	t, ok := g.store.Tile(c)
	if !ok {
		return TileSnapshot{}, false
	}
	occ := g.store.EntityAt(c)
	return TileSnapshot{
		Tile:     t,
		Yields:   t.Yields(),
		MoveCost: t.MoveCost(),
		Unit:     occ.Unit,
		City:     occ.City,
	}, true
}

// QueryCoords lists every map coordinate in row-major order.
func (g *Game) QueryCoords() []hex.Coord {
	return g.store.Coords()
}

func (g *Game) QueryGameState() StateSnapshot {
	s := StateSnapshot{
		Turn:          g.turn,
		Phase:         g.phase,
		CurrentPlayer: g.current,
		IsGameOver:    g.phase == PhaseGameOver,
		Players:       g.store.Players(),
	}
	if s.IsGameOver && g.winner != 0 {
		w := g.winner
		s.Winner = &w
	}
	return s
}

// QueryReachable maps every tile the unit can still enter this turn to its
// path cost. The unit's own tile is not included.
func (g *Game) QueryReachable(h world.Handle) map[hex.Coord]int {
	u, ok := g.store.Unit(h)
	if !ok {
		return nil
	}
	return pathfind.ReachableTiles(g.store.Mover(u.Owner), u.Coord, u.Movement)
}

func unitSnapshot(u world.Unit) UnitSnapshot {
	return UnitSnapshot{
		Handle:      u.Handle,
		Type:        u.Type,
		Owner:       u.Owner,
		Coord:       u.Coord,
		Movement:    u.Movement,
		MaxMovement: u.MaxMove,
		Health:      u.Health,
		MaxHealth:   u.MaxHealth,
		Strength:    u.Strength(),
	}
}

func (g *Game) citySnapshot(c world.City) CitySnapshot {
	s := CitySnapshot{
		Handle:       c.Handle,
		Name:         c.Name,
		Owner:        c.Owner,
		Coord:        c.Coord,
		Population:   c.Population,
		Food:         c.Food,
		FoodRequired: g.rules.FoodForGrowth(c.Population),
		Territory:    slices.Clone(c.Territory),
		Yields:       g.CityYields(c),
	}
	if c.Production != nil {
		s.Production = &ProductionSnapshot{
			Item:     c.Production.Item,
			Progress: c.Production.Progress,
			Cost:     c.Production.Cost(),
		}
	}
	return s
}
