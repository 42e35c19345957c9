package hex

import "math"

var sqrt3 = math.Sqrt(3)

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Layout converts between axial coordinates and pixels for pointy-top hexes.
type Layout struct {
	Size   float64
	Origin Point
}

func NewLayout(size float64) Layout {
	return Layout{Size: size}
}

func (l Layout) ToPixel(c Coord) Point {
	q, r := float64(c.Q), float64(c.R)
	return Point{
		X: l.Size*(sqrt3*q+sqrt3/2*r) + l.Origin.X,
		Y: l.Size*(1.5*r) + l.Origin.Y,
	}
}

func (l Layout) FromPixel(p Point) Coord {
	x := (p.X - l.Origin.X) / l.Size
	y := (p.Y - l.Origin.Y) / l.Size
	q := sqrt3/3*x - y/3
	r := 2.0 / 3.0 * y
	return Round(q, r)
}

// Round snaps a fractional axial coordinate to the nearest lattice point using
// cube rounding: the component with the largest rounding error is rebuilt
// from the other two so q+r+s stays zero.
func Round(fq, fr float64) Coord {
	fs := -fq - fr
	q, r, s := math.Round(fq), math.Round(fr), math.Round(fs)
	dq, dr, ds := math.Abs(q-fq), math.Abs(r-fr), math.Abs(s-fs)
	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return Coord{Q: int(q), R: int(r)}
}

// FromOffset converts "odd-r" offset grid indices (pointy-top rows) into axial.
func FromOffset(col, row int) Coord {
	q := col - (row-(row&1))/2
	return Coord{Q: q, R: row}
}

// ToOffset is the inverse of FromOffset.
func ToOffset(c Coord) (col, row int) {
	return c.Q + (c.R-(c.R&1))/2, c.R
}
