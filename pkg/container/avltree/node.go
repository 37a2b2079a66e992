package avltree

const needBalanceHeight = 2

type node[K, V any] struct {
	key    K
	val    V
	left   *node[K, V]
	right  *node[K, V]
	height int
}

// add stores key in the subtree rooted at n and returns the new subtree root. created is
// false when key was already present and only its value was replaced.
func add[K, V any](n *node[K, V], key K, val V, cmp func(a, b K) int) (root *node[K, V], created bool) {
	if n == nil {
		return &node[K, V]{key: key, val: val}, true
	}
	switch c := cmp(key, n.key); {
	case c == 0:
		n.val = val
		return n, false
	case c < 0:
		n.left, created = add(n.left, key, val, cmp)
	default:
		n.right, created = add(n.right, key, val, cmp)
	}
	if !created {
		return n, false
	}
	return n.rebalance(), true
}

func (n *node[K, V]) rebalance() *node[K, V] {
	n.computeHeight()
	switch diff := n.heightDiff(); {
	case diff == needBalanceHeight:
		if n.left.heightDiff() < 0 {
			return n.rotateLeftThenRight()
		}
		return n.rotateRight()
	case diff == -needBalanceHeight:
		if n.right.heightDiff() > 0 {
			return n.rotateRightThenLeft()
		}
		return n.rotateLeft()
	}
	return n
}

func (n *node[K, V]) rotateRight() *node[K, V] {
	root := n.left
	n.left = root.right
	root.right = n
	n.computeHeight()
	root.computeHeight()
	return root
}

func (n *node[K, V]) rotateLeft() *node[K, V] {
	root := n.right
	n.right = root.left
	root.left = n
	n.computeHeight()
	root.computeHeight()
	return root
}

func (n *node[K, V]) rotateLeftThenRight() *node[K, V] {
	n.left = n.left.rotateLeft()
	return n.rotateRight()
}

func (n *node[K, V]) rotateRightThenLeft() *node[K, V] {
	n.right = n.right.rotateRight()
	return n.rotateLeft()
}

func (n *node[K, V]) computeHeight() {
	height := -1
	if n.left != nil && n.left.height > height {
		height = n.left.height
	}
	if n.right != nil && n.right.height > height {
		height = n.right.height
	}
	n.height = height + 1
}

func (n *node[K, V]) heightDiff() int {
	leftTarget, rightTarget := 0, 0
	if n.left != nil {
		leftTarget = 1 + n.left.height
	}
	if n.right != nil {
		rightTarget = 1 + n.right.height
	}
	return leftTarget - rightTarget
}

func (n *node[K, V]) walk(fn func(key K, val V) bool) bool {
	if n == nil {
		return true
	}
	return n.left.walk(fn) && fn(n.key, n.val) && n.right.walk(fn)
}
