package world

import "fmt"

// Impassable is the movement cost sentinel for tiles no land unit can enter.
const Impassable = 9999

type Terrain int

const (
	Grassland Terrain = iota
	Plains
	Desert
	Tundra
	Snow

	GrasslandHill
	PlainsHill
	DesertHill
	TundraHill
	SnowHill

	Mountain

	Coast
	Ocean
	Lake
)

var terrainNames = []string{
	"Grassland", "Plains", "Desert", "Tundra", "Snow",
	"GrasslandHill", "PlainsHill", "DesertHill", "TundraHill", "SnowHill",
	"Mountain",
	"Coast", "Ocean", "Lake",
}

// Terrains lists every terrain in declaration order.
func Terrains() []Terrain {
	out := make([]Terrain, len(terrainNames))
	for i := range out {
		out[i] = Terrain(i)
	}
	return out
}

func (t Terrain) String() string {
	if t < 0 || int(t) >= len(terrainNames) {
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
	return terrainNames[t]
}

func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Terrain) UnmarshalText(b []byte) error {
	for i, name := range terrainNames {
		if name == string(b) {
			*t = Terrain(i)
			return nil
		}
	}
	return fmt.Errorf("unknown terrain %q", string(b))
}

func (t Terrain) BaseFood() int {
	switch t {
	case Grassland, Lake:
		return 2
	case Plains, Tundra, Coast, Ocean:
		return 1
	}
	return 0
}

func (t Terrain) BaseProduction() int {
	switch {
	case t == Plains:
		return 1
	case t.IsHill():
		return 2
	}
	return 0
}

func (t Terrain) BaseGold() int {
	return 0
}

func (t Terrain) MoveCost() int {
	switch {
	case t.IsFlatLand():
		return 1
	case t.IsHill():
		return 2
	}
	return Impassable
}

func (t Terrain) IsWater() bool {
	return t == Coast || t == Ocean || t == Lake
}

func (t Terrain) IsHill() bool {
	return t >= GrasslandHill && t <= SnowHill
}

func (t Terrain) IsFlatLand() bool {
	return t >= Grassland && t <= Snow
}

func (t Terrain) IsPassable() bool {
	return t != Mountain && !t.IsWater()
}
