package splaytree

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"
)

// testSetup defines a configuration for creating a Tree for testing.
type testSetup[K cmp.Ordered, V any] struct {
	name        string
	constructor func(compare Comparator[K], opts ...Option[K, V]) *Tree[K, V]
}

// getTestSetups returns a slice of test setups for a given key and value type.
// This allows all tests to be run against both the pool-based and arena-based allocators.
func getTestSetups[K cmp.Ordered, V any]() []testSetup[K, V] {
	return []testSetup[K, V]{
		{
			name: "WithPool",
			constructor: func(compare Comparator[K], opts ...Option[K, V]) *Tree[K, V] {
				if compare == nil {
					return New[K, V](opts...)
				}
				return NewWithComparator[K, V](compare, opts...)
			},
		},
		{
			name: "WithArena",
			constructor: func(compare Comparator[K], opts ...Option[K, V]) *Tree[K, V] {
				// Small first chunk so that tests also cover arena growth.
				allOpts := append([]Option[K, V]{WithArena[K, V](1024)}, opts...)
				if compare == nil {
					return New[K, V](allOpts...)
				}
				return NewWithComparator[K, V](compare, allOpts...)
			},
		},
	}
}

// requireValid checks the structural invariants of tr: BST order, mutual
// parent/child links, sentinel placement, the begin cache and the size.
func requireValid[K any, V any](t *testing.T, tr *Tree[K, V]) {
	t.Helper()

	if tr.root == nil {
		require.Zero(t, tr.size, "empty tree must have size 0")
		require.Same(t, tr.end, tr.begin, "empty tree must begin at the sentinel")
		require.Nil(t, tr.end.parent, "sentinel must be detached in an empty tree")
		return
	}

	require.Nil(t, tr.root.parent, "root must not have a parent")
	require.NotSame(t, tr.end, tr.root, "sentinel must never be the root")

	reachable := 0
	stack := []*node[K, V]{tr.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == tr.end {
			require.Nil(t, n.left, "sentinel must be a leaf")
			require.Nil(t, n.right, "sentinel must be a leaf")
			continue
		}
		reachable++
		require.NotSame(t, tr.end, n.left, "sentinel must never be a left child")
		for _, c := range []*node[K, V]{n.left, n.right} {
			if c != nil {
				require.Same(t, n, c.parent, "child must point back at its parent")
				stack = append(stack, c)
			}
		}
	}
	require.Equal(t, tr.size, reachable, "size must match reachable nodes")

	maxNode := tr.end.parent
	require.NotNil(t, maxNode, "sentinel must hang under the maximum")
	require.Same(t, tr.end, maxNode.right)
	require.Same(t, tr.end, rightmost(tr.root))
	require.Same(t, leftmost(tr.root), tr.begin, "begin must be the minimum")

	var prev *node[K, V]
	walked := 0
	for n := tr.begin; n != tr.end; n = successor(n) {
		if prev != nil {
			require.Negative(t, tr.compare(prev.key, n.key), "in-order keys must strictly increase")
		}
		prev = n
		walked++
	}
	require.Same(t, maxNode, prev)
	require.Equal(t, tr.size, walked)
}

func collectKeys[K any, V any](tr *Tree[K, V]) []K {
	var keys []K
	for k := range tr.All() {
		keys = append(keys, k)
	}
	return keys
}

// shape describes a hand-built tree for rotation tests.
type shape struct {
	key         int
	left, right *shape
}

func sh(key int, left, right *shape) *shape {
	return &shape{key: key, left: left, right: right}
}

func leaf(key int) *shape {
	return &shape{key: key}
}

// buildTree links the nodes described by s without any splaying.
func buildTree(t *testing.T, s *shape) *Tree[int, int] {
	t.Helper()
	tr := New[int, int]()
	var link func(s *shape, parent *node[int, int]) *node[int, int]
	link = func(s *shape, parent *node[int, int]) *node[int, int] {
		if s == nil {
			return nil
		}
		n := tr.newNode(s.key, s.key)
		n.parent = parent
		n.left = link(s.left, n)
		n.right = link(s.right, n)
		tr.size++
		return n
	}
	tr.root = link(s, nil)
	m := rightmost(tr.root)
	m.right = tr.end
	tr.end.parent = m
	tr.begin = leftmost(tr.root)
	requireValid(t, tr)
	return tr
}

// nodeOf returns the node holding key without restructuring the tree.
func nodeOf[K any, V any](t *testing.T, tr *Tree[K, V], key K) *node[K, V] {
	t.Helper()
	n, _ := tr.locate(key)
	require.NotNil(t, n, "key %v not in tree", key)
	return n
}

// preorder lists the keys of real nodes in pre-order.
func preorder[K any, V any](tr *Tree[K, V]) []K {
	var keys []K
	var walk func(n *node[K, V])
	walk = func(n *node[K, V]) {
		if n == nil || n == tr.end {
			return
		}
		keys = append(keys, n.key)
		walk(n.left)
		walk(n.right)
	}
	walk(tr.root)
	return keys
}
