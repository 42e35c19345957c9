package world

import (
	"math/bits"

	"hexciv/hex"
)

// RiverEdges marks which of the six hex edges carry a river. Bit i is hex.Direction(i).
type RiverEdges uint8

const allEdges RiverEdges = 0b0011_1111

func EdgeBit(d hex.Direction) RiverEdges {
	return 1 << uint(d)
}

func NewRiverEdges(dirs ...hex.Direction) RiverEdges {
	var e RiverEdges
	for _, d := range dirs {
		e |= EdgeBit(d)
	}
	return e
}

func (e RiverEdges) Any() bool {
	return e&allEdges != 0
}

func (e RiverEdges) Has(d hex.Direction) bool {
	return e&EdgeBit(d) != 0
}

func (e RiverEdges) With(d hex.Direction) RiverEdges {
	return (e | EdgeBit(d)) & allEdges
}

func (e RiverEdges) Without(d hex.Direction) RiverEdges {
	return e &^ EdgeBit(d)
}

func (e RiverEdges) Count() int {
	return bits.OnesCount8(uint8(e & allEdges))
}

func (e RiverEdges) Directions() []hex.Direction {
	var out []hex.Direction
	for d := hex.East; d <= hex.SouthEast; d++ {
		if e.Has(d) {
			out = append(out, d)
		}
	}
	return out
}
