package world

import "hexciv/hex"

// Tile is one map cell. Only Owner changes after generation.
type Tile struct {
	Coord    hex.Coord  `json:"coord"`
	Terrain  Terrain    `json:"terrain"`
	Feature  Feature    `json:"feature"`
	Resource Resource   `json:"resource"`
	Rivers   RiverEdges `json:"rivers"`
	Improved bool       `json:"improved"`
	Owner    Handle     `json:"owner"` // claiming city, 0 if unclaimed
}

func NewTile(c hex.Coord, t Terrain) Tile {
	return Tile{Coord: c, Terrain: t}
}

func (t Tile) WithFeature(f Feature) Tile {
	t.Feature = f
	return t
}

func (t Tile) WithResource(r Resource) Tile {
	t.Resource = r
	return t
}

func (t Tile) WithRivers(e RiverEdges) Tile {
	t.Rivers = e
	return t
}

func (t Tile) Yields() Yields {
	return CalculateYields(t.Terrain, t.Feature, t.Resource, t.Improved)
}

// MoveCost is the cost to enter the tile, or Impassable.
func (t Tile) MoveCost() int {
	base := t.Terrain.MoveCost()
	if base == Impassable {
		return Impassable
	}
	return base + t.Feature.MovementModifier()
}

func (t Tile) IsPassable() bool {
	return t.MoveCost() != Impassable
}
