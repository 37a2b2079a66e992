// Package pointst is a brute-force point symbol table. Range and Nearest scan every key,
// which makes it slow but obviously correct; it serves as the reference the 2d-tree is
// checked against.
package pointst

import (
	"fmt"
	"math"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/pkg/container/avltree"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

var _ symtab.Table[struct{}] = (*Table[struct{}])(nil)

func New[V any]() *Table[V] {
	return &Table[V]{data: avltree.New[geom.Point, V](geom.Compare)}
}

type Table[V any] struct {
	data *avltree.Tree[geom.Point, V]
}

func (t *Table[V]) Len() int {
	return t.data.Len()
}

func (t *Table[V]) IsEmpty() bool {
	return t.Len() == 0
}

func (t *Table[V]) Put(p geom.Point, val V) error {
	if err := symtab.CheckPoint(p); err != nil {
		return fmt.Errorf("pointst put: %w", err)
	}
	if err := symtab.CheckValue(val); err != nil {
		return fmt.Errorf("pointst put %s: %w", p, err)
	}
	t.data.Put(p, val)
	return nil
}

func (t *Table[V]) Get(p geom.Point) (V, bool, error) {
	if err := symtab.CheckPoint(p); err != nil {
		var zero V
		return zero, false, fmt.Errorf("pointst get: %w", err)
	}
	val, ok := t.data.Get(p)
	return val, ok, nil
}

func (t *Table[V]) Contains(p geom.Point) (bool, error) {
	if err := symtab.CheckPoint(p); err != nil {
		return false, fmt.Errorf("pointst contains: %w", err)
	}
	return t.data.Contains(p), nil
}

// Height reports the height of the ordered map holding the keys.
func (t *Table[V]) Height() int {
	return t.data.Height()
}

// Points returns the keys ordered by y, then x.
func (t *Table[V]) Points() []geom.Point {
	return t.data.Keys()
}

func (t *Table[V]) Range(r geom.Rect) ([]geom.Point, error) {
	if err := symtab.CheckRect(r); err != nil {
		return nil, fmt.Errorf("pointst range: %w", err)
	}
	points := []geom.Point{}
	t.data.Walk(func(p geom.Point, _ V) bool {
		if r.Contains(p) {
			points = append(points, p)
		}
		return true
	})
	return points, nil
}

// Nearest keeps the first key, in y-then-x order, among equally close keys. Keys whose
// squared distance overflows to +Inf still count as found.
func (t *Table[V]) Nearest(p geom.Point) (geom.Point, bool, error) {
	if err := symtab.CheckPoint(p); err != nil {
		return geom.Point{}, false, fmt.Errorf("pointst nearest: %w", err)
	}
	var (
		nearest geom.Point
		found   bool
		best    = math.Inf(1)
	)
	t.data.Walk(func(key geom.Point, _ V) bool {
		if d := p.DistanceSquaredTo(key); !found || d < best {
			nearest, best, found = key, d, true
		}
		return true
	})
	return nearest, found, nil
}
