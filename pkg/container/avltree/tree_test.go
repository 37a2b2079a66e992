package avltree

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func intCmp(a, b int) int {
	return a - b
}

func checkBalanced[K, V any](t *testing.T, n *node[K, V]) int {
	t.Helper()
	if n == nil {
		return -1
	}
	l, r := checkBalanced(t, n.left), checkBalanced(t, n.right)
	if l-r > 1 || r-l > 1 {
		t.Fatalf("node is out of balance, left height %d, right height %d", l, r)
	}
	h := l
	if r > h {
		h = r
	}
	if n.height != h+1 {
		t.Fatalf("stored height got: %d, expected: %d", n.height, h+1)
	}
	return h + 1
}

func TestTree_Put(t *testing.T) {
	tests := []struct {
		name     string
		keys     []int
		expected []int
	}{
		{name: "ascending", keys: []int{1, 2, 3, 4, 5, 6, 7}, expected: []int{1, 2, 3, 4, 5, 6, 7}},
		{name: "descending", keys: []int{7, 6, 5, 4, 3, 2, 1}, expected: []int{1, 2, 3, 4, 5, 6, 7}},
		{name: "zigzag", keys: []int{10, 2, 6, 14, 12, 4, 8}, expected: []int{2, 4, 6, 8, 10, 12, 14}},
		{name: "duplicates", keys: []int{3, 1, 3, 2, 1}, expected: []int{1, 2, 3}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			tree := New[int, string](intCmp)
			for _, k := range test.keys {
				tree.Put(k, "v")
			}
			checkBalanced(t, tree.root)
			keys := tree.Keys()
			if len(keys) != len(test.expected) || tree.Len() != len(test.expected) {
				t.Fatalf("keys got: %v (len %d), expected: %v", keys, tree.Len(), test.expected)
			}
			for i := range keys {
				if keys[i] != test.expected[i] {
					t.Errorf("keys got: %v, expected: %v", keys, test.expected)
					break
				}
			}
		})
	}
}

func TestTree_GetReplace(t *testing.T) {
	tree := New[int, string](intCmp)
	tree.Put(5, "five")
	tree.Put(3, "three")
	tree.Put(5, "FIVE")
	if v, ok := tree.Get(5); !ok || v != "FIVE" {
		t.Errorf("get got: (%q, %v), expected: (%q, true)", v, ok, "FIVE")
	}
	if _, ok := tree.Get(4); ok {
		t.Errorf("get of a missing key got: true, expected: false")
	}
	if !tree.Contains(3) || tree.Contains(9) {
		t.Errorf("contains is inconsistent with the stored keys")
	}
	if tree.Len() != 2 {
		t.Errorf("len got: %d, expected: %d", tree.Len(), 2)
	}
}

func TestTree_RandomKeys(t *testing.T) {
	empty := New[int, int](intCmp)
	if empty.Height() != 0 || len(empty.Keys()) != 0 {
		t.Errorf("empty tree got height %d and keys %v", empty.Height(), empty.Keys())
	}

	rnd := rand.New(rand.NewSource(3))
	tree := New[int, int](intCmp)
	var keys []int
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		k := rnd.Intn(5000)
		tree.Put(k, i)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	checkBalanced(t, tree.root)
	sort.Ints(keys)
	got := tree.Keys()
	if len(got) != len(keys) {
		t.Fatalf("keys len got: %d, expected: %d", len(got), len(keys))
	}
	for i := range keys {
		if got[i] != keys[i] {
			t.Fatalf("keys differ at %d, got: %d, expected: %d", i, got[i], keys[i])
		}
	}
	limit := int(1.45*math.Log2(float64(len(keys)+2))) + 1
	if tree.Height() > limit {
		t.Errorf("height got: %d, expected at most: %d", tree.Height(), limit)
	}
}

func TestTree_WalkStops(t *testing.T) {
	tree := New[int, int](intCmp)
	for i := 0; i < 10; i++ {
		tree.Put(i, i)
	}
	var visited []int
	tree.Walk(func(key, _ int) bool {
		visited = append(visited, key)
		return key < 3
	})
	if len(visited) != 4 {
		t.Errorf("walk visited got: %v, expected: [0 1 2 3]", visited)
	}
}
