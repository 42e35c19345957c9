package world

import "fmt"

type ResourceCategory int

const (
	BonusResource ResourceCategory = iota
	StrategicResource
	LuxuryResource
)

type Resource int

const (
	NoResource Resource = iota

	Cattle
	Sheep
	Fish
	Stone
	Wheat
	Bananas
	Deer

	Horses
	Iron
	Coal
	Oil
	Aluminum
	Uranium

	Citrus
	Cotton
	Copper
	Gold
	Crab
	Whales
	Turtles
	Olives
	Wine
	Silk
	Spices
	Gems
	Marble
	Ivory
)

var resourceNames = []string{
	"None",
	"Cattle", "Sheep", "Fish", "Stone", "Wheat", "Bananas", "Deer",
	"Horses", "Iron", "Coal", "Oil", "Aluminum", "Uranium",
	"Citrus", "Cotton", "Copper", "Gold", "Crab", "Whales", "Turtles",
	"Olives", "Wine", "Silk", "Spices", "Gems", "Marble", "Ivory",
}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("Resource(%d)", int(r))
	}
	return resourceNames[r]
}

func (r Resource) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r Resource) Category() ResourceCategory {
	switch {
	case r >= Cattle && r <= Deer:
		return BonusResource
	case r >= Horses && r <= Uranium:
		return StrategicResource
	}
	return LuxuryResource
}

func (r Resource) FoodBonus() int {
	switch r {
	case Fish, Wheat, Bananas, Deer, Citrus, Crab, Whales, Turtles:
		return 1
	}
	return 0
}

func (r Resource) ProductionBonus() int {
	switch r {
	case Cattle, Sheep, Stone, Horses, Iron, Coal, Oil, Aluminum, Uranium, Olives, Marble, Ivory:
		return 1
	}
	return 0
}

func (r Resource) GoldBonus() int {
	switch r {
	case Gems:
		return 3
	case Cotton, Copper, Gold, Wine, Silk, Spices:
		return 2
	case Citrus, Whales, Turtles, Olives, Marble, Ivory:
		return 1
	}
	return 0
}

func (r Resource) ImprovedFoodBonus() int {
	switch r {
	case Fish, Wheat, Bananas, Deer, Crab, Whales, Turtles:
		return 2
	case Citrus:
		return 1
	}
	return 0
}

func (r Resource) ImprovedProductionBonus() int {
	switch r {
	case Cattle, Sheep, Stone, Horses, Iron, Coal, Oil, Aluminum, Uranium, Marble, Ivory:
		return 2
	case Copper, Olives:
		return 1
	}
	return 0
}

func (r Resource) ImprovedGoldBonus() int {
	switch r {
	case Cotton, Wine, Silk, Spices, Gems:
		return 3
	case Citrus, Copper, Gold, Olives:
		return 2
	case Whales, Turtles, Marble, Ivory:
		return 1
	}
	return 0
}

// ValidTerrains lists where the generator may place r.
func (r Resource) ValidTerrains() []Terrain {
	switch r {
	case Fish, Crab, Whales, Turtles:
		return []Terrain{Coast, Ocean}
	case Cattle, Wheat, Cotton, Citrus, Bananas, Silk, Spices:
		return []Terrain{Grassland, Plains}
	case Sheep, Stone, Marble:
		return []Terrain{GrasslandHill, PlainsHill, DesertHill, TundraHill}
	case Deer, Ivory:
		return []Terrain{Tundra, Plains, TundraHill}
	case Horses:
		return []Terrain{Grassland, Plains, Tundra}
	case Iron, Copper, Gold, Gems, Coal, Aluminum:
		return []Terrain{PlainsHill, DesertHill, GrasslandHill, TundraHill, Desert}
	case Oil, Uranium:
		return []Terrain{Desert, Tundra, Snow}
	case Olives, Wine:
		return []Terrain{Plains, PlainsHill}
	}
	return nil
}

func (r Resource) CanPlaceOn(t Terrain) bool {
	for _, v := range r.ValidTerrains() {
		if v == t {
			return true
		}
	}
	return false
}
