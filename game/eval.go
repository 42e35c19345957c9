package game

import (
	"hexciv/world"
)

// Evaluator scores a position between -1 and 1 from one player's perspective.
type Evaluator func(g *Game, p world.PlayerID) float64

// Evaluate averages the resource and military scores against the strongest rival.
func Evaluate(g *Game, p world.PlayerID) float64 {
	return (EvaluateResources(g, p) + EvaluateMilitary(g, p)) / 2
}

// EvaluateResources compares cities, population and territory size.
func EvaluateResources(g *Game, p world.PlayerID) float64 {
	cities := make(map[world.PlayerID]float64)
	population := make(map[world.PlayerID]float64)
	territory := make(map[world.PlayerID]float64)
	for _, c := range g.store.AllCities() {
		cities[c.Owner]++
		population[c.Owner] += float64(c.Population)
		territory[c.Owner] += float64(len(c.Territory))
	}

	cityScore := normalize(cities[p], g.strongestRival(p, cities))
	popScore := normalize(population[p], g.strongestRival(p, population))
	territoryScore := normalize(territory[p], g.strongestRival(p, territory))
	return (cityScore + popScore + territoryScore) / 3.0
}

// EvaluateMilitary compares unit counts and health weighted strength.
func EvaluateMilitary(g *Game, p world.PlayerID) float64 {
	units := make(map[world.PlayerID]float64)
	strength := make(map[world.PlayerID]float64)
	for _, u := range g.store.AllUnits() {
		units[u.Owner]++
		if u.MaxHealth > 0 {
			strength[u.Owner] += u.Strength() * float64(u.Health) / float64(u.MaxHealth)
		}
	}

	unitScore := normalize(units[p], g.strongestRival(p, units))
	strengthScore := normalize(strength[p], g.strongestRival(p, strength))
	return (unitScore + strengthScore) / 2.0
}

// strongestRival is the highest tally among live players other than p.
func (g *Game) strongestRival(p world.PlayerID, tally map[world.PlayerID]float64) float64 {
	best := 0.0
	for _, other := range g.store.Players() {
		if other.ID == p || other.Eliminated {
			continue
		}
		best = max(best, tally[other.ID])
	}
	return best
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
