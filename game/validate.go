package game

import (
	"hexciv/hex"
	"hexciv/pathfind"
	"hexciv/world"
)

// Validators never write to the store. A zero Reason means the command is legal.

type moveOrder struct {
	unit    world.Unit
	path    pathfind.Path
	capture *world.City
}

func (g *Game) validateMove(c MoveUnit) (moveOrder, Reason) {
	u, ok := g.store.Unit(c.Unit)
	if !ok {
		return moveOrder{}, ErrNotFound
	}
	if u.Owner != g.current {
		return moveOrder{}, ErrNotOwner
	}
	if u.Movement == 0 {
		return moveOrder{}, ErrNoMovement
	}
	// Units never stack. An enemy on the target is a wall, not a stack.
	if occupant, taken := g.store.UnitAt(c.Target); taken {
		if occupant.Owner == u.Owner {
			return moveOrder{}, ErrOccupiedTile
		}
		return moveOrder{}, ErrUnreachable
	}
	if !g.store.HasTile(c.Target) {
		return moveOrder{}, ErrUnreachable
	}

	mover := g.store.Mover(u.Owner)
	var capture *world.City
	if city, ok := g.store.CityAt(c.Target); ok && city.Owner != u.Owner && u.Type.IsCombat() {
		mover = mover.CapturingAt(c.Target)
		capture = &city
	}
	path, ok := pathfind.FindPath(mover, u.Coord, c.Target, u.Movement)
	if !ok {
		return moveOrder{}, ErrUnreachable
	}
	return moveOrder{unit: u, path: path, capture: capture}, 0
}

type attackOrder struct {
	attacker   world.Unit
	defender   world.Unit
	tile       world.Tile
	cityCenter bool
}

func (g *Game) validateAttack(c Attack) (attackOrder, Reason) {
	att, ok := g.store.Unit(c.Attacker)
	if !ok {
		return attackOrder{}, ErrNotFound
	}
	if att.Owner != g.current {
		return attackOrder{}, ErrNotOwner
	}
	if !att.Type.IsCombat() {
		return attackOrder{}, ErrWrongUnitType
	}
	if att.Movement == 0 {
		return attackOrder{}, ErrNoMovement
	}
	def, ok := g.store.Unit(c.Defender)
	if !ok {
		return attackOrder{}, ErrNotFound
	}
	if !hex.IsAdjacent(att.Coord, def.Coord) {
		return attackOrder{}, ErrNotAdjacent
	}
	if def.Owner == att.Owner {
		return attackOrder{}, ErrSameOwner
	}
	tile, _ := g.store.Tile(def.Coord)
	city, inCity := g.store.CityAt(def.Coord)
	return attackOrder{
		attacker:   att,
		defender:   def,
		tile:       tile,
		cityCenter: inCity && city.Owner == def.Owner,
	}, 0
}

func (g *Game) validateFound(c FoundCity) (world.Unit, Reason) {
	u, ok := g.store.Unit(c.Settler)
	if !ok {
		return world.Unit{}, ErrNotFound
	}
	if u.Owner != g.current {
		return world.Unit{}, ErrNotOwner
	}
	if u.Type != world.Settler {
		return world.Unit{}, ErrWrongUnitType
	}
	tile, ok := g.store.Tile(u.Coord)
	if !ok || !tile.IsPassable() || tile.Terrain.IsWater() {
		return world.Unit{}, ErrInvalidTerrain
	}
	if _, taken := g.store.CityAt(u.Coord); taken {
		return world.Unit{}, ErrOccupiedTile
	}
	return u, 0
}

func (g *Game) validateProduction(c SetProduction) (world.City, Reason) {
	city, ok := g.store.City(c.City)
	if !ok {
		return world.City{}, ErrNotFound
	}
	if city.Owner != g.current {
		return world.City{}, ErrNotOwner
	}
	if !c.Item.Valid() {
		return world.City{}, ErrWrongUnitType
	}
	return city, 0
}
