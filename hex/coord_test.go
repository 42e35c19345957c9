package hex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	t.Run("neighbors start east and follow the fixed direction order", func(t *testing.T) {
		got := New(2, -1).Neighbors()
		want := [6]Coord{
			{Q: 3, R: -1},
			{Q: 3, R: -2},
			{Q: 2, R: -2},
			{Q: 1, R: -1},
			{Q: 1, R: 0},
			{Q: 2, R: 0},
		}
		require.Equal(t, want, got)
	})

	t.Run("every neighbor is at distance one and reports its direction", func(t *testing.T) {
		c := New(-4, 7)
		for i, n := range c.Neighbors() {
			require.Equal(t, 1, Distance(c, n))
			d, ok := DirectionTo(c, n)
			require.True(t, ok)
			require.Equal(t, Direction(i), d)
			back, ok := DirectionTo(n, c)
			require.True(t, ok)
			require.Equal(t, d.Opposite(), back, "opposite edge should face back")
		}
	})

	t.Run("non adjacent coordinates have no direction", func(t *testing.T) {
		_, ok := DirectionTo(Origin, New(2, 0))
		require.False(t, ok)
	})
}

func TestDistance(t *testing.T) {
	t.Run("known distances", func(t *testing.T) {
		require.Equal(t, 0, Distance(Origin, Origin))
		require.Equal(t, 3, Distance(Origin, New(3, -3)))
		require.Equal(t, 4, Distance(New(-2, 1), New(2, -1)))
		require.Equal(t, 5, Distance(New(0, 0), New(-2, -3)))
	})

	t.Run("distance is symmetric and obeys the triangle inequality", func(t *testing.T) {
		points := Range(New(1, -2), 3)
		for _, a := range points {
			for _, b := range points {
				require.Equal(t, Distance(a, b), Distance(b, a))
				for _, c := range points[:7] {
					require.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c))
				}
			}
		}
	})
}

func TestRangeAndRing(t *testing.T) {
	t.Run("range size is 3k^2+3k+1", func(t *testing.T) {
		for k := 0; k <= 8; k++ {
			got := Range(New(3, 3), k)
			require.Len(t, got, 3*k*k+3*k+1, "radius %d", k)
			for _, c := range got {
				require.LessOrEqual(t, Distance(New(3, 3), c), k)
			}
		}
	})

	t.Run("range has no duplicates", func(t *testing.T) {
		seen := map[Coord]bool{}
		for _, c := range Range(Origin, 5) {
			require.False(t, seen[c], "duplicate %v", c)
			seen[c] = true
		}
	})

	t.Run("ring size is max(1, 6k) and every member sits at distance k", func(t *testing.T) {
		center := New(-1, 4)
		for k := 0; k <= 8; k++ {
			got := Ring(center, k)
			require.Len(t, got, max(1, 6*k), "radius %d", k)
			seen := map[Coord]bool{}
			for _, c := range got {
				require.Equal(t, k, Distance(center, c))
				require.False(t, seen[c])
				seen[c] = true
			}
		}
	})

	t.Run("ring starts at the south west corner and walks east first", func(t *testing.T) {
		got := Ring(Origin, 2)
		require.Equal(t, New(-2, 2), got[0])
		require.Equal(t, New(-1, 2), got[1])
		require.Equal(t, New(0, 2), got[2])
	})

	t.Run("negative radius yields nothing", func(t *testing.T) {
		require.Empty(t, Range(Origin, -1))
		require.Empty(t, Ring(Origin, -1))
	})
}

func TestLine(t *testing.T) {
	t.Run("line includes both ends and steps one hex at a time", func(t *testing.T) {
		a, b := New(-3, 1), New(4, -2)
		line := Line(a, b)
		require.Len(t, line, Distance(a, b)+1)
		require.Equal(t, a, line[0])
		require.Equal(t, b, line[len(line)-1])
		for i := 1; i < len(line); i++ {
			require.Equal(t, 1, Distance(line[i-1], line[i]))
		}
	})

	t.Run("line to self is a single coordinate", func(t *testing.T) {
		require.Equal(t, []Coord{New(2, 2)}, Line(New(2, 2), New(2, 2)))
	})
}
