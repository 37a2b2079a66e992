/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package kdtree implements a 2d-tree symbol table keyed by points in the plane.
//
// Levels alternate between comparing x (at the root) and y. A key strictly below the node
// on the active axis goes left, anything else goes right. Every node remembers the
// rectangle of the plane its subtree covers, which lets Range and Nearest skip subtrees
// that cannot hold an answer.
package kdtree

import (
	"fmt"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

var _ symtab.Table[struct{}] = (*Tree[struct{}])(nil)

func New[V any]() *Tree[V] {
	return &Tree[V]{
		root: nil,
		len:  0,
	}
}

// Tree is not safe for concurrent mutation. Readers may run concurrently with each other
// as long as no Put is in flight.
type Tree[V any] struct {
	root *node[V]
	len  int
}

func (t *Tree[V]) Len() int {
	return t.len
}

func (t *Tree[V]) IsEmpty() bool {
	return t.len == 0
}

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree[V]) Height() int {
	return t.root.height()
}

// Put associates val with p, replacing the value if p is already stored.
func (t *Tree[V]) Put(p geom.Point, val V) error {
	if err := symtab.CheckPoint(p); err != nil {
		return fmt.Errorf("kdtree put: %w", err)
	}
	if err := symtab.CheckValue(val); err != nil {
		return fmt.Errorf("kdtree put %s: %w", p, err)
	}
	var created bool
	t.root, created = put(t.root, p, val, geom.Universe(), axisX)
	if created {
		t.len += 1
	}
	return nil
}

func (t *Tree[V]) Get(p geom.Point) (V, bool, error) {
	var zero V
	if err := symtab.CheckPoint(p); err != nil {
		return zero, false, fmt.Errorf("kdtree get: %w", err)
	}
	n, ok := t.root.get(p)
	if !ok {
		return zero, false, nil
	}
	return n.Val, true, nil
}

func (t *Tree[V]) Contains(p geom.Point) (bool, error) {
	if err := symtab.CheckPoint(p); err != nil {
		return false, fmt.Errorf("kdtree contains: %w", err)
	}
	_, ok := t.root.get(p)
	return ok, nil
}

// Points returns every key in level order, left before right within a level.
func (t *Tree[V]) Points() []geom.Point {
	if t.root == nil {
		return []geom.Point{}
	}
	points := make([]geom.Point, 0, t.len)
	queue := make([]*node[V], 0, t.len)
	queue = append(queue, t.root)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		points = append(points, n.Key)
		if n.Left != nil {
			queue = append(queue, n.Left)
		}
		if n.Right != nil {
			queue = append(queue, n.Right)
		}
	}
	return points
}

// Range returns the keys inside r, boundary included, in no particular order.
func (t *Tree[V]) Range(r geom.Rect) ([]geom.Point, error) {
	if err := symtab.CheckRect(r); err != nil {
		return nil, fmt.Errorf("kdtree range: %w", err)
	}
	return t.root.RangeSearch(r, []geom.Point{}), nil
}

// Nearest returns a key closest to p. ok is false when the tree is empty.
func (t *Tree[V]) Nearest(p geom.Point) (nearest geom.Point, ok bool, err error) {
	if err := symtab.CheckPoint(p); err != nil {
		return geom.Point{}, false, fmt.Errorf("kdtree nearest: %w", err)
	}
	if t.root == nil {
		return geom.Point{}, false, nil
	}
	nearest, _ = t.root.nearest(p, t.root.Key, p.DistanceSquaredTo(t.root.Key))
	return nearest, true, nil
}
