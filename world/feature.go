package world

import "fmt"

// Feature is an overlay on a terrain. A tile has at most one.
type Feature int

const (
	NoFeature Feature = iota
	Forest
	Jungle
	Marsh
	Floodplains
	Oasis
	Ice
)

var featureNames = []string{"None", "Forest", "Jungle", "Marsh", "Floodplains", "Oasis", "Ice"}

func (f Feature) String() string {
	if f < 0 || int(f) >= len(featureNames) {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureNames[f]
}

func (f Feature) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f Feature) FoodModifier() int {
	switch f {
	case Marsh:
		return -1
	case Floodplains:
		return 2
	case Oasis:
		return 3
	}
	return 0
}

func (f Feature) ProductionModifier() int {
	switch f {
	case Forest:
		return 1
	case Jungle:
		return -1
	}
	return 0
}

func (f Feature) GoldModifier() int {
	if f == Oasis {
		return 1
	}
	return 0
}

func (f Feature) MovementModifier() int {
	switch f {
	case Forest, Jungle, Marsh:
		return 1
	}
	return 0
}

// IsCover reports whether the feature grants a defensive bonus.
func (f Feature) IsCover() bool {
	return f == Forest || f == Jungle
}

func (f Feature) ValidTerrains() []Terrain {
	switch f {
	case Forest:
		return []Terrain{Grassland, Plains, Tundra, GrasslandHill, PlainsHill, TundraHill}
	case Jungle:
		return []Terrain{Grassland, Plains, GrasslandHill, PlainsHill}
	case Marsh:
		return []Terrain{Grassland}
	case Floodplains, Oasis:
		return []Terrain{Desert}
	case Ice:
		return []Terrain{Coast, Ocean}
	}
	return nil
}

func (f Feature) CanPlaceOn(t Terrain) bool {
	for _, v := range f.ValidTerrains() {
		if v == t {
			return true
		}
	}
	return false
}
