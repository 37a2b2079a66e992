package geom

import (
	"math"
	"strconv"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Dim returns the coordinate on the given axis, 0 is x and 1 is y.
func (p Point) Dim(axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func (p Point) Equal(p1 Point) bool {
	return p.X == p1.X && p.Y == p1.Y
}

func (p Point) DistanceSquaredTo(p1 Point) float64 {
	dx := p.X - p1.X
	dy := p.Y - p1.Y
	return dx*dx + dy*dy
}

// DistanceTo stays finite while DistanceSquaredTo overflows, up to differences near
// math.MaxFloat64.
func (p Point) DistanceTo(p1 Point) float64 {
	return math.Hypot(p.X-p1.X, p.Y-p1.Y)
}

// Compare orders points by y-coordinate, breaking ties by x-coordinate.
func Compare(p, p1 Point) int {
	switch {
	case p.Y < p1.Y:
		return -1
	case p.Y > p1.Y:
		return 1
	case p.X < p1.X:
		return -1
	case p.X > p1.X:
		return 1
	}
	return 0
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}
