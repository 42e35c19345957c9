package hex

import "fmt"

// Coord is an axial hex coordinate. The cube component S is derived, never stored.
type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

var Origin = Coord{}

func New(q, r int) Coord {
	return Coord{Q: q, R: r}
}

func (c Coord) S() int {
	return -c.Q - c.R
}

func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{Q: c.Q - o.Q, R: c.R - o.R}
}

func (c Coord) Scale(k int) Coord {
	return Coord{Q: c.Q * k, R: c.R * k}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Less orders coordinates by R then Q, i.e. row-major on screen.
func (c Coord) Less(o Coord) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	return c.Q < o.Q
}

// Direction indexes the six hex edges, starting east.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

var directions = [6]Coord{
	{Q: 1, R: 0},  // E
	{Q: 1, R: -1}, // NE
	{Q: 0, R: -1}, // NW
	{Q: -1, R: 0}, // W
	{Q: -1, R: 1}, // SW
	{Q: 0, R: 1},  // SE
}

var directionNames = [6]string{"E", "NE", "NW", "W", "SW", "SE"}

func (d Direction) Vector() Coord {
	return directions[d]
}

func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

func (d Direction) String() string {
	if d < 0 || d > 5 {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (c Coord) Neighbor(d Direction) Coord {
	return c.Add(directions[d])
}

// Neighbors returns the six adjacent coordinates in Direction order (E, NE, NW, W, SW, SE).
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range directions {
		out[i] = c.Add(d)
	}
	return out
}

// DirectionTo reports the edge of a that faces b, if the two are adjacent.
func DirectionTo(a, b Coord) (Direction, bool) {
	delta := b.Sub(a)
	for i, d := range directions {
		if d == delta {
			return Direction(i), true
		}
	}
	return 0, false
}

func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

func IsAdjacent(a, b Coord) bool {
	return Distance(a, b) == 1
}

// Range returns every coordinate within distance k of c, k >= 0.
func Range(c Coord, k int) []Coord {
	if k < 0 {
		return nil
	}
	out := make([]Coord, 0, 3*k*k+3*k+1)
	for dq := -k; dq <= k; dq++ {
		lo := max(-k, -dq-k)
		hi := min(k, -dq+k)
		for dr := lo; dr <= hi; dr++ {
			out = append(out, Coord{Q: c.Q + dq, R: c.R + dr})
		}
	}
	return out
}

// Ring returns the coordinates at exactly distance k, walking six edges of
// length k from the south-west corner. Ring(c, 0) is just c.
func Ring(c Coord, k int) []Coord {
	if k < 0 {
		return nil
	}
	if k == 0 {
		return []Coord{c}
	}
	out := make([]Coord, 0, 6*k)
	cur := c.Add(SouthWest.Vector().Scale(k))
	for side := 0; side < 6; side++ {
		for step := 0; step < k; step++ {
			out = append(out, cur)
			cur = cur.Neighbor(Direction(side))
		}
	}
	return out
}

// Line returns the coordinates on the straight line from a to b, both ends included.
func Line(a, b Coord) []Coord {
	n := Distance(a, b)
	if n == 0 {
		return []Coord{a}
	}
	const nudge = 1e-6
	aq, ar := float64(a.Q)+nudge, float64(a.R)+nudge
	bq, br := float64(b.Q)+nudge, float64(b.R)+nudge
	out := make([]Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, Round(aq+(bq-aq)*t, ar+(br-ar)*t))
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
