package world

import (
	"slices"

	"hexciv/hex"
)

// Production is the single in-progress item of a city queue.
type Production struct {
	Item     UnitType
	Progress int
}

func (p Production) Cost() int {
	return p.Item.Stats().Cost
}

type City struct {
	Handle     Handle
	Name       string
	Owner      PlayerID
	Coord      hex.Coord
	Population int
	Food       int
	Production *Production // nil when nothing is queued
	Territory  []hex.Coord
}

func (c City) Copy() City {
	out := c
	if c.Production != nil {
		p := *c.Production
		out.Production = &p
	}
	out.Territory = slices.Clone(c.Territory)
	return out
}
