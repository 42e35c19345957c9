package game

import (
	"slices"

	"github.com/rs/zerolog/log"

	"hexciv/hex"
	"hexciv/world"
)

// startTurn refreshes the current player's units and opens the action phase.
func (g *Game) startTurn() {
	g.phase = PhaseTurnStart
	for _, u := range g.store.UnitsOwnedBy(g.current) {
		must(g.store.SetUnitMovement(u.Handle, u.MaxMove))
	}
	g.phase = PhasePlayerAction
}

func (g *Game) endTurn() []Event {
	g.phase = PhaseTurnEnd
	var events []Event
	for _, c := range g.store.CitiesOwnedBy(g.current) {
		events = append(events, g.upkeepCity(c)...)
	}
	events = append(events, TurnEnded{Player: g.current, Turn: g.turn})

	for _, p := range g.store.Players() {
		if ev, ok := g.checkElimination(p.ID); ok {
			events = append(events, ev)
		}
	}
	if ev, ok := g.checkVictory(); ok {
		return append(events, ev)
	}
	g.advance()
	return events
}

// advance hands the turn to the next live player. Wrapping past the last
// player starts a new turn number.
func (g *Game) advance() {
	next, wrapped, ok := g.nextAlive(g.current)
	if !ok {
		return
	}
	if wrapped {
		g.turn++
	}
	g.current = next
	g.startTurn()
}

func (g *Game) nextAlive(after world.PlayerID) (world.PlayerID, bool, bool) {
	players := g.store.Players()
	for _, p := range players {
		if p.ID > after && !p.Eliminated {
			return p.ID, false, true
		}
	}
	for _, p := range players {
		if !p.Eliminated {
			return p.ID, true, true
		}
	}
	return 0, false, false
}

// settle runs the elimination and victory checks after a mid-turn loss. If
// the acting player was eliminated by its own command, play passes on.
func (g *Game) settle(events []Event, affected ...world.PlayerID) []Event {
	for _, p := range affected {
		if ev, ok := g.checkElimination(p); ok {
			events = append(events, ev)
		}
	}
	if ev, ok := g.checkVictory(); ok {
		return append(events, ev)
	}
	if p, _ := g.store.Player(g.current); p.Eliminated {
		events = append(events, TurnEnded{Player: g.current, Turn: g.turn})
		g.advance()
	}
	return events
}

func (g *Game) checkElimination(id world.PlayerID) (Event, bool) {
	p, ok := g.store.Player(id)
	if !ok || p.Eliminated {
		return nil, false
	}
	if units, cities := g.store.CountOwned(id); units > 0 || cities > 0 {
		return nil, false
	}
	must(g.store.SetEliminated(id))
	log.Debug().Msgf("player %d eliminated on turn %d", id, g.turn)
	return PlayerEliminated{Player: id}, true
}

// checkVictory ends the game when at most one player remains.
func (g *Game) checkVictory() (Event, bool) {
	if g.phase == PhaseGameOver {
		return nil, false
	}
	var alive []world.PlayerID
	for _, p := range g.store.Players() {
		if !p.Eliminated {
			alive = append(alive, p.ID)
		}
	}
	if len(alive) > 1 {
		return nil, false
	}
	g.phase = PhaseGameOver
	if len(alive) == 1 {
		g.winner = alive[0]
	}
	log.Debug().Msgf("game over on turn %d, winner %d", g.turn, g.winner)
	return GameOver{Winner: g.winner, Turn: g.turn}, true
}

// upkeepCity runs production then food for one city at the end of its
// owner's turn.
func (g *Game) upkeepCity(c world.City) []Event {
	var events []Event
	y := g.CityYields(c)

	if p := c.Production; p != nil {
		progress := p.Progress + y.Production
		if progress >= p.Cost() {
			if site, ok := g.spawnSite(c); ok {
				h, err := g.store.CreateUnit(site, p.Item, c.Owner)
				must(err)
				progress -= p.Cost()
				log.Debug().Msgf("%s completed %s", c.Name, p.Item)
				events = append(events, ProductionCompleted{City: c.Handle, Unit: h, Item: p.Item, Coord: site})
			}
		}
		must(g.store.SetProduction(c.Handle, p.Item, progress))
	}

	pop := c.Population
	food := c.Food + y.Food - g.rules.FoodUpkeep(pop)
	switch {
	case food < 0:
		pop = max(pop-1, 1)
		food = 0
	case food >= g.rules.FoodForGrowth(pop):
		food -= g.rules.FoodForGrowth(pop)
		pop++
		events = append(events, CityGrew{City: c.Handle, Population: pop})
	}
	must(g.store.SetPopulation(c.Handle, pop))
	must(g.store.SetCityFood(c.Handle, food))
	return events
}

// spawnSite is the first free passable neighbor in direction order, falling
// back to the city center.
func (g *Game) spawnSite(c world.City) (hex.Coord, bool) {
	for _, n := range c.Coord.Neighbors() {
		t, ok := g.store.Tile(n)
		if !ok || !t.IsPassable() {
			continue
		}
		occ := g.store.EntityAt(n)
		if occ.Unit != 0 {
			continue
		}
		if other, ok := g.store.City(occ.City); ok && other.Owner != c.Owner {
			continue
		}
		return n, true
	}
	if _, taken := g.store.UnitAt(c.Coord); !taken {
		return c.Coord, true
	}
	return hex.Coord{}, false
}

// CityYields is the center tile, raised to at least 2 food and 1 production,
// plus the best worked tiles of the territory.
func (g *Game) CityYields(c world.City) world.Yields {
	center, _ := g.store.Tile(c.Coord)
	total := center.Yields()
	total.Food = max(total.Food, 2)
	total.Production = max(total.Production, 1)

	var worked []world.Tile
	for _, coord := range c.Territory {
		if coord == c.Coord {
			continue
		}
		if t, ok := g.store.Tile(coord); ok {
			worked = append(worked, t)
		}
	}
	slices.SortFunc(worked, func(a, b world.Tile) int {
		if d := tileScore(b) - tileScore(a); d != 0 {
			return d
		}
		switch {
		case a.Coord.Less(b.Coord):
			return -1
		case b.Coord.Less(a.Coord):
			return 1
		}
		return 0
	})
	n := min(g.rules.WorkedTiles(c.Population), len(worked))
	for _, t := range worked[:n] {
		total = total.Add(t.Yields())
	}
	return total
}

func tileScore(t world.Tile) int {
	y := t.Yields()
	return y.Food + y.Production + y.Gold
}
