package pathfind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexciv/hex"
)

// mockGraph costs 1 everywhere in its disc unless overridden. Blocked
// coordinates and anything off the disc are impassable.
type mockGraph struct {
	radius  int
	costs   map[hex.Coord]int
	blocked map[hex.Coord]bool
}

func newMockGraph(radius int) *mockGraph {
	return &mockGraph{radius: radius, costs: map[hex.Coord]int{}, blocked: map[hex.Coord]bool{}}
}

func (m *mockGraph) StepCost(c hex.Coord) (int, bool) {
	if hex.Distance(hex.Origin, c) > m.radius || m.blocked[c] {
		return 0, false
	}
	if cost, ok := m.costs[c]; ok {
		return cost, true
	}
	return 1, true
}

func requireContiguous(t *testing.T, p Path) {
	t.Helper()
	for i := 1; i < len(p.Steps); i++ {
		require.Equal(t, 1, hex.Distance(p.Steps[i-1], p.Steps[i]), "step %d is not adjacent", i)
	}
}

func TestFindPath(t *testing.T) {
	t.Run("straight line on open ground", func(t *testing.T) {
		g := newMockGraph(5)
		p, ok := FindPath(g, hex.Origin, hex.New(3, 0), 10)
		require.True(t, ok)
		require.Equal(t, 3, p.Cost)
		require.Equal(t, 3, p.Len())
		require.Equal(t, hex.Origin, p.Steps[0])
		require.Equal(t, hex.New(3, 0), p.Steps[len(p.Steps)-1])
		requireContiguous(t, p)
	})

	t.Run("start equals goal costs nothing", func(t *testing.T) {
		p, ok := FindPath(newMockGraph(1), hex.Origin, hex.Origin, 0)
		require.True(t, ok)
		require.Zero(t, p.Cost)
		require.Equal(t, []hex.Coord{hex.Origin}, p.Steps)
	})

	t.Run("routes around a wall", func(t *testing.T) {
		g := newMockGraph(5)
		for _, c := range []hex.Coord{hex.New(1, -1), hex.New(1, 0), hex.New(0, 1)} {
			g.blocked[c] = true
		}
		p, ok := FindPath(g, hex.Origin, hex.New(2, 0), 10)
		require.True(t, ok)
		require.Greater(t, p.Cost, 2)
		for _, c := range p.Steps {
			require.False(t, g.blocked[c], "path crosses blocked %v", c)
		}
		requireContiguous(t, p)
	})

	t.Run("prefers a longer but cheaper route over hills", func(t *testing.T) {
		g := newMockGraph(5)
		g.costs[hex.New(1, 0)] = 5
		p, ok := FindPath(g, hex.Origin, hex.New(2, 0), 10)
		require.True(t, ok)
		require.Equal(t, 3, p.Cost)
		require.NotContains(t, p.Steps, hex.New(1, 0))
	})

	t.Run("path cost above the budget is rejected", func(t *testing.T) {
		g := newMockGraph(5)
		_, ok := FindPath(g, hex.Origin, hex.New(3, 0), 2)
		require.False(t, ok)
	})

	t.Run("unreachable goal", func(t *testing.T) {
		g := newMockGraph(3)
		g.blocked[hex.New(2, 0)] = true
		_, ok := FindPath(g, hex.Origin, hex.New(2, 0), 20)
		require.False(t, ok)
		_, ok = FindPath(g, hex.Origin, hex.New(9, 0), 20)
		require.False(t, ok)
	})

	t.Run("equal cost alternatives resolve the same way every time", func(t *testing.T) {
		g := newMockGraph(6)
		first, ok := FindPath(g, hex.New(-2, 1), hex.New(3, -2), 20)
		require.True(t, ok)
		for i := 0; i < 20; i++ {
			again, _ := FindPath(g, hex.New(-2, 1), hex.New(3, -2), 20)
			require.Equal(t, first, again)
		}
	})
}

func TestReachableTiles(t *testing.T) {
	t.Run("uniform cost disc", func(t *testing.T) {
		got := ReachableTiles(newMockGraph(5), hex.Origin, 2)
		require.Len(t, got, 18)
		require.NotContains(t, got, hex.Origin)
		for c, cost := range got {
			require.Equal(t, hex.Distance(hex.Origin, c), cost)
		}
	})

	t.Run("expensive tiles shrink the reach", func(t *testing.T) {
		g := newMockGraph(5)
		g.costs[hex.New(1, 0)] = 2
		got := ReachableTiles(g, hex.Origin, 2)
		require.Equal(t, 2, got[hex.New(1, 0)])
		require.NotContains(t, got, hex.New(2, 0))
	})

	t.Run("no movement reaches nothing", func(t *testing.T) {
		require.Empty(t, ReachableTiles(newMockGraph(5), hex.Origin, 0))
	})

	t.Run("reachable costs agree with find path", func(t *testing.T) {
		g := newMockGraph(4)
		g.costs[hex.New(0, 1)] = 2
		g.blocked[hex.New(-1, 0)] = true
		for c, cost := range ReachableTiles(g, hex.Origin, 3) {
			p, ok := FindPath(g, hex.Origin, c, 3)
			require.True(t, ok)
			require.Equal(t, cost, p.Cost, "cost to %v", c)
		}
	})
}
