package agent

import (
	"hexciv/game"
	"hexciv/hex"
	"hexciv/world"
)

// Context is one decision cycle's view of the game, built from snapshots.
type Context struct {
	Player      world.PlayerID
	State       game.StateSnapshot
	Units       []game.UnitSnapshot
	Cities      []game.CitySnapshot
	EnemyUnits  []game.UnitSnapshot
	EnemyCities []game.CitySnapshot

	driver Driver
	unitAt map[hex.Coord]game.UnitSnapshot
	cityAt map[hex.Coord]game.CitySnapshot
	tiles  map[hex.Coord]tileEntry
	reach  map[world.Handle]map[hex.Coord]int
}

type tileEntry struct {
	tile game.TileSnapshot
	ok   bool
}

func NewContext(d Driver) *Context {
	state := d.QueryGameState()
	ctx := &Context{
		Player: state.CurrentPlayer,
		State:  state,
		driver: d,
		unitAt: map[hex.Coord]game.UnitSnapshot{},
		cityAt: map[hex.Coord]game.CitySnapshot{},
		tiles:  map[hex.Coord]tileEntry{},
		reach:  map[world.Handle]map[hex.Coord]int{},
	}
	for _, u := range d.QueryUnits(nil) {
		ctx.unitAt[u.Coord] = u
		if u.Owner == ctx.Player {
			ctx.Units = append(ctx.Units, u)
		} else {
			ctx.EnemyUnits = append(ctx.EnemyUnits, u)
		}
	}
	for _, c := range d.QueryCities(nil) {
		ctx.cityAt[c.Coord] = c
		if c.Owner == ctx.Player {
			ctx.Cities = append(ctx.Cities, c)
		} else {
			ctx.EnemyCities = append(ctx.EnemyCities, c)
		}
	}
	return ctx
}

// TileAt is cached for the lifetime of the context.
func (c *Context) TileAt(coord hex.Coord) (game.TileSnapshot, bool) {
	if e, ok := c.tiles[coord]; ok {
		return e.tile, e.ok
	}
	t, ok := c.driver.QueryTile(coord)
	c.tiles[coord] = tileEntry{tile: t, ok: ok}
	return t, ok
}

func (c *Context) UnitAt(coord hex.Coord) (game.UnitSnapshot, bool) {
	u, ok := c.unitAt[coord]
	return u, ok
}

func (c *Context) CityAt(coord hex.Coord) (game.CitySnapshot, bool) {
	city, ok := c.cityAt[coord]
	return city, ok
}

func (c *Context) EnemyAt(coord hex.Coord) (game.UnitSnapshot, bool) {
	u, ok := c.unitAt[coord]
	if !ok || u.Owner == c.Player {
		return game.UnitSnapshot{}, false
	}
	return u, true
}

// AdjacentEnemies lists enemy units around coord in direction order.
func (c *Context) AdjacentEnemies(coord hex.Coord) []game.UnitSnapshot {
	var out []game.UnitSnapshot
	for _, n := range coord.Neighbors() {
		if u, ok := c.EnemyAt(n); ok {
			out = append(out, u)
		}
	}
	return out
}

// Reachable maps tiles the unit can enter this turn to their path cost.
func (c *Context) Reachable(h world.Handle) map[hex.Coord]int {
	if r, ok := c.reach[h]; ok {
		return r
	}
	r := c.driver.QueryReachable(h)
	c.reach[h] = r
	return r
}

// NearestEnemy is the distance from coord to the closest enemy unit or city.
func (c *Context) NearestEnemy(coord hex.Coord) (int, bool) {
	best, found := 0, false
	consider := func(d int) {
		if !found || d < best {
			best, found = d, true
		}
	}
	for _, u := range c.EnemyUnits {
		consider(hex.Distance(coord, u.Coord))
	}
	for _, city := range c.EnemyCities {
		consider(hex.Distance(coord, city.Coord))
	}
	return best, found
}

// NearestCity is the distance from coord to the closest city of any owner.
func (c *Context) NearestCity(coord hex.Coord) (int, bool) {
	best, found := 0, false
	for at := range c.cityAt {
		if d := hex.Distance(coord, at); !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

type SlotKind int

const (
	UnitSlot SlotKind = iota
	CitySlot
	PlayerSlot
)

// Slot is the thing a candidate command is issued for.
type Slot struct {
	Kind   SlotKind
	Handle world.Handle
}

// Slots lists own units, then own cities, then the player, in handle order.
func (c *Context) Slots() []Slot {
	out := make([]Slot, 0, len(c.Units)+len(c.Cities)+1)
	for _, u := range c.Units {
		out = append(out, Slot{Kind: UnitSlot, Handle: u.Handle})
	}
	for _, city := range c.Cities {
		out = append(out, Slot{Kind: CitySlot, Handle: city.Handle})
	}
	return append(out, Slot{Kind: PlayerSlot})
}

func (c *Context) unit(h world.Handle) (game.UnitSnapshot, bool) {
	for _, u := range c.Units {
		if u.Handle == h {
			return u, true
		}
	}
	return game.UnitSnapshot{}, false
}

func (c *Context) city(h world.Handle) (game.CitySnapshot, bool) {
	for _, city := range c.Cities {
		if city.Handle == h {
			return city, true
		}
	}
	return game.CitySnapshot{}, false
}
