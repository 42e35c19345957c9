package game

import (
	"hexciv/combat"
	"hexciv/hex"
	"hexciv/world"
)

type StandardRules struct {
	GrowthBase     int `yaml:"growth_base"`
	GrowthPerPop   int `yaml:"growth_per_pop"`
	FoodPerPop     int `yaml:"food_per_pop"`
	TerritoryRange int `yaml:"territory_range"`
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		GrowthBase:     15,
		GrowthPerPop:   6,
		FoodPerPop:     2,
		TerritoryRange: 1,
	}
}

func (sr *StandardRules) FoodForGrowth(population int) int {
	return sr.GrowthBase + sr.GrowthPerPop*(max(population, 1)-1)
}

func (sr *StandardRules) FoodUpkeep(population int) int {
	return sr.FoodPerPop * population
}

func (sr *StandardRules) CityRadius() int {
	return sr.TerritoryRange
}

func (sr *StandardRules) DefenseModifier(tile world.Tile, from hex.Coord, cityCenter bool) float64 {
	return combat.DefenseModifier(tile, from, cityCenter)
}

func (sr *StandardRules) WorkedTiles(population int) int {
	return population
}
