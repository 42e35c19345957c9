package game

import (
	"encoding/binary"
	"hash/fnv"
)

type StateHash uint64

// Hash fingerprints the turn, the acting player and every entity in handle
// order. Equal command sequences on equal seeds give equal hashes.
func (g *Game) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int64) {
		binary.Write(hasher, binary.LittleEndian, v)
	}

	write(int64(g.turn))
	write(int64(g.current))
	write(int64(g.phase))
	for _, p := range g.store.Players() {
		write(int64(p.ID))
		if p.Eliminated {
			write(1)
		} else {
			write(0)
		}
	}
	for _, u := range g.store.AllUnits() {
		write(int64(u.Handle))
		write(int64(u.Type))
		write(int64(u.Owner))
		write(int64(u.Coord.Q))
		write(int64(u.Coord.R))
		write(int64(u.Movement))
		write(int64(u.Health))
	}
	for _, c := range g.store.AllCities() {
		write(int64(c.Handle))
		write(int64(c.Owner))
		write(int64(c.Coord.Q))
		write(int64(c.Coord.R))
		write(int64(c.Population))
		write(int64(c.Food))
		write(int64(len(c.Territory)))
		if c.Production != nil {
			write(int64(c.Production.Item))
			write(int64(c.Production.Progress))
		} else {
			write(-1)
		}
	}
	return StateHash(hasher.Sum64())
}
