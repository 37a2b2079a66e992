// Package avltree is an ordered map backed by a height-balanced binary search tree.
package avltree

// New creates an empty map ordered by cmp, which returns a negative number, zero or a
// positive number when a sorts before, equal to or after b.
func New[K, V any](cmp func(a, b K) int) *Tree[K, V] {
	return &Tree[K, V]{cmp: cmp}
}

type Tree[K, V any] struct {
	root *node[K, V]
	cmp  func(a, b K) int
	len  int
}

func (t *Tree[K, V]) Len() int {
	return t.len
}

func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}
	return t.root.height + 1
}

// Put inserts key or replaces its value.
func (t *Tree[K, V]) Put(key K, val V) {
	var created bool
	t.root, created = add(t.root, key, val, t.cmp)
	if created {
		t.len += 1
	}
}

func (t *Tree[K, V]) Get(key K) (V, bool) {
	n := t.root
	for n != nil {
		c := t.cmp(key, n.key)
		if c == 0 {
			return n.val, true
		}
		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	var zero V
	return zero, false
}

func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Walk visits the keys in ascending order until fn returns false.
func (t *Tree[K, V]) Walk(fn func(key K, val V) bool) {
	t.root.walk(fn)
}

// Keys returns the keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.len)
	t.Walk(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
