package kdtree

import (
	"github.com/go-sod/kdst/internal/geom"
)

const (
	axisX = 0
	axisY = 1
)

func nextAxis(axis int) int {
	return 1 - axis
}

type node[V any] struct {
	Key   geom.Point
	Val   V
	Rect  geom.Rect
	Left  *node[V]
	Right *node[V]
}

// put returns the subtree rooted at n with p stored in it. rect is the region a new node
// created in this slot would own; created reports whether a node was added.
func put[V any](n *node[V], p geom.Point, val V, rect geom.Rect, axis int) (root *node[V], created bool) {
	if n == nil {
		return &node[V]{Key: p, Val: val, Rect: rect}, true
	}
	split := n.Key.Dim(axis)
	switch {
	case p.Dim(axis) < split:
		n.Left, created = put(n.Left, p, val, n.Rect.SplitLow(axis, split), nextAxis(axis))
	case p.Equal(n.Key):
		n.Val = val
	default:
		n.Right, created = put(n.Right, p, val, n.Rect.SplitHigh(axis, split), nextAxis(axis))
	}
	return n, created
}

func (n *node[V]) get(p geom.Point) (*node[V], bool) {
	axis := axisX
	for n != nil {
		switch {
		case p.Dim(axis) < n.Key.Dim(axis):
			n = n.Left
		case p.Equal(n.Key):
			return n, true
		default:
			n = n.Right
		}
		axis = nextAxis(axis)
	}
	return nil, false
}

func (n *node[V]) RangeSearch(r geom.Rect, points []geom.Point) []geom.Point {
	if n == nil || !r.Intersects(n.Rect) {
		return points
	}
	if r.Contains(n.Key) {
		points = append(points, n.Key)
	}
	points = n.Left.RangeSearch(r, points)
	return n.Right.RangeSearch(r, points)
}

// nearest returns the better of best and the closest point under n, bestDist being the
// squared distance from p to best.
func (n *node[V]) nearest(p geom.Point, best geom.Point, bestDist float64) (geom.Point, float64) {
	if n == nil || n.Rect.DistanceSquaredTo(p) > bestDist {
		return best, bestDist
	}
	if d := p.DistanceSquaredTo(n.Key); d < bestDist {
		best, bestDist = n.Key, d
	}
	if n.Left != nil && n.Left.Rect.Contains(p) {
		best, bestDist = n.Left.nearest(p, best, bestDist)
		return n.Right.nearest(p, best, bestDist)
	}
	best, bestDist = n.Right.nearest(p, best, bestDist)
	return n.Left.nearest(p, best, bestDist)
}

func (n *node[V]) height() int {
	if n == nil {
		return 0
	}
	l, r := n.Left.height(), n.Right.height()
	if l > r {
		return l + 1
	}
	return r + 1
}
