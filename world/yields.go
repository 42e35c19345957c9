package world

// Yields is the per-turn output of a tile or a city. Tile yields are never negative.
type Yields struct {
	Food       int `json:"food"`
	Production int `json:"production"`
	Gold       int `json:"gold"`
	Science    int `json:"science"`
	Culture    int `json:"culture"`
	Faith      int `json:"faith"`
}

// CalculateYields combines terrain, feature and resource output. Improved
// tiles use the resource's improved bonus instead of the base one.
func CalculateYields(t Terrain, f Feature, r Resource, improved bool) Yields {
	y := Yields{
		Food:       t.BaseFood() + f.FoodModifier(),
		Production: t.BaseProduction() + f.ProductionModifier(),
		Gold:       t.BaseGold() + f.GoldModifier(),
	}
	if improved {
		y.Food += r.ImprovedFoodBonus()
		y.Production += r.ImprovedProductionBonus()
		y.Gold += r.ImprovedGoldBonus()
	} else {
		y.Food += r.FoodBonus()
		y.Production += r.ProductionBonus()
		y.Gold += r.GoldBonus()
	}
	y.Food = max(y.Food, 0)
	y.Production = max(y.Production, 0)
	y.Gold = max(y.Gold, 0)
	return y
}

func (y Yields) Add(o Yields) Yields {
	return Yields{
		Food:       y.Food + o.Food,
		Production: y.Production + o.Production,
		Gold:       y.Gold + o.Gold,
		Science:    y.Science + o.Science,
		Culture:    y.Culture + o.Culture,
		Faith:      y.Faith + o.Faith,
	}
}

func (y Yields) Total() int {
	return y.Food + y.Production + y.Gold + y.Science + y.Culture + y.Faith
}

func (y Yields) IsEmpty() bool {
	return y.Total() == 0
}
