package pathfind

import (
	"container/heap"

	"hexciv/hex"
)

// Graph reports the cost of entering a coordinate. ok is false for
// impassable or blocked coordinates.
type Graph interface {
	StepCost(c hex.Coord) (cost int, ok bool)
}

// Path is a route from start to goal. Steps includes both ends.
type Path struct {
	Steps []hex.Coord
	Cost  int
}

func (p Path) Len() int {
	return max(len(p.Steps)-1, 0)
}

type node struct {
	coord hex.Coord
	g     int
	f     int
	seq   int
}

// frontier orders nodes by f, then lowest g, then insertion order.
type frontier []*node

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].g != q[j].g {
		return q[i].g < q[j].g
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(*node)) }

func (q *frontier) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// FindPath runs A* from start to goal. Each step costs the destination's
// StepCost, and the heuristic is hex distance. It reports false when no
// path costs at most maxCost.
func FindPath(g Graph, start, goal hex.Coord, maxCost int) (Path, bool) {
	if start == goal {
		return Path{Steps: []hex.Coord{start}}, true
	}
	seq := 0
	open := &frontier{{coord: start, f: hex.Distance(start, goal)}}
	best := map[hex.Coord]int{start: 0}
	parent := map[hex.Coord]hex.Coord{}
	closed := map[hex.Coord]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.coord] {
			continue
		}
		if cur.coord == goal {
			return Path{Steps: walkBack(parent, start, goal), Cost: cur.g}, true
		}
		closed[cur.coord] = true

		for _, n := range cur.coord.Neighbors() {
			if closed[n] {
				continue
			}
			cost, ok := g.StepCost(n)
			if !ok {
				continue
			}
			ng := cur.g + cost
			if ng > maxCost {
				continue
			}
			if old, seen := best[n]; seen && old <= ng {
				continue
			}
			best[n] = ng
			parent[n] = cur.coord
			seq++
			heap.Push(open, &node{coord: n, g: ng, f: ng + hex.Distance(n, goal), seq: seq})
		}
	}
	return Path{}, false
}

// ReachableTiles returns the minimum cost to reach every coordinate within
// the movement budget. The start coordinate is not included.
func ReachableTiles(g Graph, start hex.Coord, movement int) map[hex.Coord]int {
	out := map[hex.Coord]int{}
	if movement <= 0 {
		return out
	}
	seq := 0
	open := &frontier{{coord: start}}
	best := map[hex.Coord]int{start: 0}
	done := map[hex.Coord]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if done[cur.coord] {
			continue
		}
		done[cur.coord] = true
		if cur.coord != start {
			out[cur.coord] = cur.g
		}
		for _, n := range cur.coord.Neighbors() {
			if done[n] {
				continue
			}
			cost, ok := g.StepCost(n)
			if !ok {
				continue
			}
			ng := cur.g + cost
			if ng > movement {
				continue
			}
			if old, seen := best[n]; seen && old <= ng {
				continue
			}
			best[n] = ng
			seq++
			heap.Push(open, &node{coord: n, g: ng, f: ng, seq: seq})
		}
	}
	return out
}

func walkBack(parent map[hex.Coord]hex.Coord, start, goal hex.Coord) []hex.Coord {
	var steps []hex.Coord
	for c := goal; c != start; c = parent[c] {
		steps = append(steps, c)
	}
	steps = append(steps, start)
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
