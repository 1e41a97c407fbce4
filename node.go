package splaytree

import (
	"sync"
)

// node คือโหนดแต่ละตัวใน splay tree
type node[K any, V any] struct {
	key    K
	value  V
	parent *node[K, V] // back-reference, ไม่ได้เป็นเจ้าของ
	left   *node[K, V]
	right  *node[K, V]
}

// reset clears the node's data so it can be safely reused by an allocator.
// It clears pointers so an erased node cannot keep its old neighbours alive.
// reset เคลียร์ข้อมูลในโหนดเพื่อให้ allocator นำกลับมาใช้ใหม่ได้อย่างปลอดภัย
func (n *node[K, V]) reset() {
	*n = node[K, V]{}
}

// leftmost returns the node with the smallest key in the subtree rooted at n.
func leftmost[K any, V any](n *node[K, V]) *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// rightmost returns the last node of the subtree rooted at n. When the subtree
// holds the maximum of the tree this is the sentinel.
func rightmost[K any, V any](n *node[K, V]) *node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the in-order successor of n. For the maximum it is the
// sentinel; for the sentinel it is nil.
func successor[K any, V any](n *node[K, V]) *node[K, V] {
	if n.right != nil {
		return leftmost(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// predecessor mirrors successor. It returns nil for the minimum.
func predecessor[K any, V any](n *node[K, V]) *node[K, V] {
	if n.left != nil {
		return rightmost(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

// --- Node Allocator Abstraction ---

// nodeAllocator defines the interface for memory allocation strategies for nodes.
// This allows swapping between sync.Pool, memory arenas, or other strategies.
// Get returns nil when no memory is available.
// nodeAllocator คือ interface สำหรับกลยุทธ์การจัดสรรหน่วยความจำสำหรับโหนด
type nodeAllocator[K any, V any] interface {
	Get() *node[K, V]
	Put(*node[K, V])
	Reset()
}

// --- sync.Pool Implementation ---

// poolAllocator implements nodeAllocator using a sync.Pool.
type poolAllocator[K any, V any] struct {
	pool sync.Pool
}

func newPoolAllocator[K any, V any]() *poolAllocator[K, V] {
	return &poolAllocator[K, V]{
		pool: sync.Pool{
			New: func() any { return &node[K, V]{} },
		},
	}
}

func (p *poolAllocator[K, V]) Get() *node[K, V] {
	return p.pool.Get().(*node[K, V])
}

func (p *poolAllocator[K, V]) Put(n *node[K, V]) {
	n.reset()
	p.pool.Put(n)
}

// Reset is a no-op: a sync.Pool cannot be drained. Tree.Clear replaces the
// whole pool instead.
func (p *poolAllocator[K, V]) Reset() {}

// --- Arena Implementation ---

// arenaAllocator implements nodeAllocator on top of a nodeArena.
// Erased nodes go to a free list and are handed out again before the arena
// is asked for a new slot, so a tree of steady size stops growing the arena.
type arenaAllocator[K any, V any] struct {
	arena *nodeArena[K, V]
	free  []*node[K, V]
}

func newArenaAllocator[K any, V any](cfg arenaConfig) *arenaAllocator[K, V] {
	return &arenaAllocator[K, V]{
		arena: newNodeArena[K, V](cfg),
	}
}

// Get returns a zeroed node, reusing an erased one when possible.
// It returns nil if the free list is empty and the arena has reached its limit.
func (a *arenaAllocator[K, V]) Get() *node[K, V] {
	if last := len(a.free) - 1; last >= 0 {
		n := a.free[last]
		a.free[last] = nil
		a.free = a.free[:last]
		return n
	}
	return a.arena.alloc()
}

// Put clears the node and keeps it for the next Get.
// A node may come from another tree's arena after Merge; it stays reachable
// through the free list, so reusing it is safe.
func (a *arenaAllocator[K, V]) Put(n *node[K, V]) {
	n.reset()
	a.free = append(a.free, n)
}

// Reset reclaims all memory in the arena, making it available for new allocations.
// The free list is dropped: its nodes are either arena slots that are now
// free again or foreign nodes left to the garbage collector.
func (a *arenaAllocator[K, V]) Reset() {
	clear(a.free)
	a.free = a.free[:0]
	a.arena.reset()
}
