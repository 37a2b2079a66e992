package geom

import (
	"math"
	"strconv"
)

// Rect is a closed axis-aligned rectangle [XMin, XMax] x [YMin, YMax]. Bounds may be
// infinite, and a rectangle may be degenerate (a segment or a single point).
type Rect struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

func NewRect(xmin, ymin, xmax, ymax float64) Rect {
	return Rect{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
}

// Universe is the whole plane.
func Universe() Rect {
	return Rect{XMin: math.Inf(-1), YMin: math.Inf(-1), XMax: math.Inf(1), YMax: math.Inf(1)}
}

// Valid reports whether no bound is NaN and the bounds are ordered.
func (r Rect) Valid() bool {
	if math.IsNaN(r.XMin) || math.IsNaN(r.YMin) || math.IsNaN(r.XMax) || math.IsNaN(r.YMax) {
		return false
	}
	return r.XMin <= r.XMax && r.YMin <= r.YMax
}

func (r Rect) Width() float64 {
	return r.XMax - r.XMin
}

func (r Rect) Height() float64 {
	return r.YMax - r.YMin
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax &&
		p.Y >= r.YMin && p.Y <= r.YMax
}

// Intersects reports whether the two rectangles share at least one point, boundaries included.
func (r Rect) Intersects(r1 Rect) bool {
	return r.XMax >= r1.XMin && r.YMax >= r1.YMin &&
		r1.XMax >= r.XMin && r1.YMax >= r.YMin
}

// DistanceSquaredTo is 0 when p lies inside or on the boundary.
func (r Rect) DistanceSquaredTo(p Point) float64 {
	var dx, dy float64
	if p.X < r.XMin {
		dx = p.X - r.XMin
	} else if p.X > r.XMax {
		dx = p.X - r.XMax
	}
	if p.Y < r.YMin {
		dy = p.Y - r.YMin
	} else if p.Y > r.YMax {
		dy = p.Y - r.YMax
	}
	return dx*dx + dy*dy
}

func (r Rect) DistanceTo(p Point) float64 {
	return math.Sqrt(r.DistanceSquaredTo(p))
}

// SplitLow keeps the part of r at or below v on the given axis.
func (r Rect) SplitLow(axis int, v float64) Rect {
	if axis == 0 {
		r.XMax = v
	} else {
		r.YMax = v
	}
	return r
}

// SplitHigh keeps the part of r at or above v on the given axis.
func (r Rect) SplitHigh(axis int, v float64) Rect {
	if axis == 0 {
		r.XMin = v
	} else {
		r.YMin = v
	}
	return r
}

func (r Rect) String() string {
	return "[" + strconv.FormatFloat(r.XMin, 'f', -1, 64) + ", " + strconv.FormatFloat(r.XMax, 'f', -1, 64) +
		"] x [" + strconv.FormatFloat(r.YMin, 'f', -1, 64) + ", " + strconv.FormatFloat(r.YMax, 'f', -1, 64) + "]"
}
