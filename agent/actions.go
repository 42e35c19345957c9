package agent

import (
	"slices"

	"hexciv/combat"
	"hexciv/game"
	"hexciv/hex"
	"hexciv/world"
)

const (
	// MinCitySpacing is the closest a new city may be founded to another.
	MinCitySpacing = 3
	// TargetCities is where settler production stops in favor of the army.
	TargetCities = 4

	captureScore    = 2.0
	garrisonPenalty = 0.6
	pressureWeight  = 0.3
	exploreWeight   = 0.02
	stepCost        = 0.05
)

type AttackAction struct{}

func (AttackAction) ID() string { return "attack" }

func (AttackAction) Candidates(ctx *Context, slot Slot) []game.Command {
	if slot.Kind != UnitSlot {
		return nil
	}
	u, ok := ctx.unit(slot.Handle)
	if !ok || u.Strength == 0 || u.Movement == 0 {
		return nil
	}
	var out []game.Command
	for _, enemy := range ctx.AdjacentEnemies(u.Coord) {
		out = append(out, game.Attack{Attacker: u.Handle, Defender: enemy.Handle})
	}
	return out
}

// Score is the predicted damage trade, with a bonus for a kill and a
// matching penalty for losing the attacker.
func (AttackAction) Score(ctx *Context, cmd game.Command) float64 {
	a, ok := cmd.(game.Attack)
	if !ok {
		return 0
	}
	att, ok := ctx.unit(a.Attacker)
	if !ok {
		return 0
	}
	var def game.UnitSnapshot
	for _, e := range ctx.EnemyUnits {
		if e.Handle == a.Defender {
			def = e
		}
	}
	out := PredictAttack(ctx, att, def)
	score := float64(out.DefenderDamage-out.AttackerDamage) / 100
	if !out.DefenderSurvives {
		score += 1
	}
	if !out.AttackerSurvives {
		score -= 1
	}
	return score
}

func PredictAttack(ctx *Context, att, def game.UnitSnapshot) combat.Outcome {
	tile, _ := ctx.TileAt(def.Coord)
	city, inCity := ctx.CityAt(def.Coord)
	mod := combat.DefenseModifier(tile.Tile, att.Coord, inCity && city.Owner == def.Owner)
	return combat.Resolve(
		combat.Combatant{Strength: att.Strength, Health: att.Health, MaxHealth: att.MaxHealth},
		combat.Combatant{Strength: def.Strength, Health: def.Health, MaxHealth: def.MaxHealth},
		mod,
	)
}

type FoundCityAction struct{}

func (FoundCityAction) ID() string { return "found-city" }

func (FoundCityAction) Candidates(ctx *Context, slot Slot) []game.Command {
	if slot.Kind != UnitSlot {
		return nil
	}
	u, ok := ctx.unit(slot.Handle)
	if !ok || u.Type != world.Settler {
		return nil
	}
	return []game.Command{game.FoundCity{Settler: u.Handle}}
}

func (FoundCityAction) Score(ctx *Context, cmd game.Command) float64 {
	f, ok := cmd.(game.FoundCity)
	if !ok {
		return 0
	}
	u, ok := ctx.unit(f.Settler)
	if !ok {
		return 0
	}
	return SiteValue(ctx, u.Coord)
}

// SiteValue rates a city site by the unclaimed yields around it. Sites on
// water, on a city or too close to one score -1.
func SiteValue(ctx *Context, at hex.Coord) float64 {
	tile, ok := ctx.TileAt(at)
	if !ok || tile.MoveCost == world.Impassable || tile.Terrain.IsWater() {
		return -1
	}
	if d, ok := ctx.NearestCity(at); ok && d < MinCitySpacing {
		return -1
	}
	total := 0
	for _, c := range hex.Range(at, 1) {
		t, ok := ctx.TileAt(c)
		if !ok || t.Owner != 0 {
			continue
		}
		total += t.Yields.Food + t.Yields.Production + t.Yields.Gold
	}
	return 0.5 + float64(total)/20
}

type SetProductionAction struct{}

func (SetProductionAction) ID() string { return "set-production" }

func (SetProductionAction) Candidates(ctx *Context, slot Slot) []game.Command {
	if slot.Kind != CitySlot {
		return nil
	}
	city, ok := ctx.city(slot.Handle)
	if !ok {
		return nil
	}
	want := DesiredItem(ctx)
	p := city.Production
	if p == nil || (p.Item != want && p.Progress == 0) {
		return []game.Command{game.SetProduction{City: city.Handle, Item: want}}
	}
	return nil
}

func (SetProductionAction) Score(ctx *Context, cmd game.Command) float64 {
	sp, ok := cmd.(game.SetProduction)
	if !ok {
		return 0
	}
	city, ok := ctx.city(sp.City)
	if !ok {
		return 0
	}
	if city.Production == nil {
		return 1
	}
	return 0.3
}

var armyRotation = []world.UnitType{world.Warrior, world.Archer, world.Spearman, world.Horseman}

// DesiredItem keeps two combat units per city, then expands up to
// TargetCities, then builds horsemen.
func DesiredItem(ctx *Context) world.UnitType {
	army, settlers := 0, 0
	for _, u := range ctx.Units {
		switch {
		case u.Type == world.Settler:
			settlers++
		case u.Strength > 0:
			army++
		}
	}
	cities := len(ctx.Cities)
	switch {
	case army < 2*cities:
		return armyRotation[army%len(armyRotation)]
	case cities+settlers < TargetCities:
		return world.Settler
	}
	return world.Horseman
}

type MoveAction struct{}

func (MoveAction) ID() string { return "move" }

func (MoveAction) Candidates(ctx *Context, slot Slot) []game.Command {
	if slot.Kind != UnitSlot {
		return nil
	}
	u, ok := ctx.unit(slot.Handle)
	if !ok || u.Movement == 0 {
		return nil
	}
	reach := ctx.Reachable(u.Handle)
	targets := make([]hex.Coord, 0, len(reach))
	for c := range reach {
		if _, taken := ctx.UnitAt(c); taken {
			continue
		}
		targets = append(targets, c)
	}
	if u.Strength > 0 {
		for _, city := range ctx.EnemyCities {
			if _, held := ctx.UnitAt(city.Coord); !held && canStrike(u, reach, city.Coord) {
				targets = append(targets, city.Coord)
			}
		}
	}
	slices.SortFunc(targets, func(a, b hex.Coord) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	out := make([]game.Command, 0, len(targets))
	for _, c := range targets {
		out = append(out, game.MoveUnit{Unit: u.Handle, Target: c})
	}
	return out
}

// canStrike reports whether the unit could step onto target this turn.
func canStrike(u game.UnitSnapshot, reach map[hex.Coord]int, target hex.Coord) bool {
	for _, n := range target.Neighbors() {
		if n == u.Coord {
			return true
		}
		if cost, ok := reach[n]; ok && cost < u.Movement {
			return true
		}
	}
	return false
}

func (MoveAction) Score(ctx *Context, cmd game.Command) float64 {
	m, ok := cmd.(game.MoveUnit)
	if !ok {
		return 0
	}
	u, ok := ctx.unit(m.Unit)
	if !ok {
		return 0
	}
	if city, ok := ctx.CityAt(m.Target); ok && city.Owner != ctx.Player {
		return captureScore
	}
	cost := ctx.Reachable(u.Handle)[m.Target]

	if u.Type == world.Settler {
		return SiteValue(ctx, m.Target) - SiteValue(ctx, u.Coord) - 0.1 - stepCost*float64(cost)
	}

	score := -stepCost * float64(cost)
	if d0, ok := ctx.NearestEnemy(u.Coord); ok {
		d1, _ := ctx.NearestEnemy(m.Target)
		score += pressureWeight * float64(d0-d1)
	}
	score += exploreWeight * float64(unclaimedAround(ctx, m.Target)-unclaimedAround(ctx, u.Coord))
	if city, ok := ctx.CityAt(u.Coord); ok && city.Owner == ctx.Player {
		score -= garrisonPenalty
	}
	return score
}

func unclaimedAround(ctx *Context, at hex.Coord) int {
	n := 0
	for _, c := range hex.Range(at, 2) {
		if t, ok := ctx.TileAt(c); ok && t.Owner == 0 && t.MoveCost != world.Impassable {
			n++
		}
	}
	return n
}

type EndTurnAction struct{}

func (EndTurnAction) ID() string { return "end-turn" }

func (EndTurnAction) Candidates(ctx *Context, slot Slot) []game.Command {
	if slot.Kind != PlayerSlot {
		return nil
	}
	return []game.Command{game.EndTurn{Player: ctx.Player}}
}

func (EndTurnAction) Score(*Context, game.Command) float64 { return 0 }
