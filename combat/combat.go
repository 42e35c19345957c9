package combat

import (
	"math"

	"hexciv/hex"
	"hexciv/world"
)

const (
	BaseDamage = 30.0

	// MaxDefenseModifier caps the summed defense bonuses at +100%.
	MaxDefenseModifier = 1.0
	// MinDefenseModifier keeps effective defense strictly positive.
	MinDefenseModifier = -0.9

	HillBonus  = 0.25
	CoverBonus = 0.25
	RiverBonus = 0.25
	CityBonus  = 0.50
)

// Combatant is one side of a fight.
type Combatant struct {
	Strength  float64
	Health    int
	MaxHealth int
}

// effective scales strength by remaining health.
func (c Combatant) effective() float64 {
	if c.MaxHealth <= 0 || c.Health <= 0 {
		return 0
	}
	return c.Strength * float64(c.Health) / float64(c.MaxHealth)
}

type Outcome struct {
	Ratio            float64
	AttackerDamage   int
	DefenderDamage   int
	AttackerSurvives bool
	DefenderSurvives bool
}

// Resolve computes damage for a single exchange. It has no side effects.
// Defense bonuses are additive; the total is clamped by ClampModifier.
func Resolve(attacker, defender Combatant, defenseModifier float64) Outcome {
	att := attacker.effective()
	def := defender.effective() * (1 + ClampModifier(defenseModifier))

	var out Outcome
	switch {
	case att <= 0:
		// Nothing to deal, and no retaliation worth computing.
		out.Ratio = 0
	case def <= 0:
		out.Ratio = math.Inf(1)
		out.DefenderDamage = defender.Health
	default:
		out.Ratio = att / def
		out.DefenderDamage = int(math.Round(BaseDamage * out.Ratio))
		out.AttackerDamage = int(math.Round(BaseDamage / out.Ratio * 0.5))
	}
	out.DefenderDamage = clamp(out.DefenderDamage, 0, max(defender.Health, 0))
	out.AttackerDamage = clamp(out.AttackerDamage, 0, max(attacker.Health, 0))
	out.AttackerSurvives = attacker.Health-out.AttackerDamage > 0
	out.DefenderSurvives = defender.Health-out.DefenderDamage > 0
	return out
}

func ClampModifier(m float64) float64 {
	return math.Min(math.Max(m, MinDefenseModifier), MaxDefenseModifier)
}

// DefenseModifier sums the bonuses of the defender's tile against an attack
// coming from the adjacent coordinate from. The sum is returned uncapped;
// Resolve applies the cap.
func DefenseModifier(tile world.Tile, from hex.Coord, cityCenter bool) float64 {
	m := 0.0
	if tile.Terrain.IsHill() {
		m += HillBonus
	}
	if tile.Feature.IsCover() {
		m += CoverBonus
	}
	if d, ok := hex.DirectionTo(tile.Coord, from); ok && tile.Rivers.Has(d) {
		m += RiverBonus
	}
	if cityCenter {
		m += CityBonus
	}
	return m
}

// Predict is Resolve for a concrete pair of units on the defender's tile.
func Predict(attacker, defender world.Unit, tile world.Tile, cityCenter bool) Outcome {
	return Resolve(
		Combatant{Strength: attacker.Strength(), Health: attacker.Health, MaxHealth: attacker.MaxHealth},
		Combatant{Strength: defender.Strength(), Health: defender.Health, MaxHealth: defender.MaxHealth},
		DefenseModifier(tile, attacker.Coord, cityCenter),
	)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
