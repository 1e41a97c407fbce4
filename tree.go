// Package splaytree implements a generic ordered map backed by a splay tree.
// A splay tree is a self-adjusting binary search tree: every access rotates
// the touched node to the root, which gives amortized O(log n) operations and
// keeps recently used keys cheap to reach again.
//
// Lookups restructure the tree too, so a Tree is never safe for concurrent
// use, not even by readers only. Callers that share a Tree between goroutines
// must serialize every call.
package splaytree

import (
	"cmp"
	"fmt"
	"iter"
)

// Comparator is a function that compares two keys.
// It should return:
//   - a negative value if a < b
//   - zero if a == b
//   - a positive value if a > b
//
// Comparator คือฟังก์ชันสำหรับเปรียบเทียบ key สองตัว
type Comparator[K any] func(a, b K) int

// Tree is an ordered map backed by a splay tree.
// The zero value for a Tree is not ready to use; one of the New functions must be called.
// Tree คือโครงสร้างหลักของ splay tree
// ค่า zero value ของ Tree จะยังไม่พร้อมใช้งาน, ต้องสร้างผ่านฟังก์ชัน New... เท่านั้น
type Tree[K any, V any] struct {
	root      *node[K, V]         // nil iff the tree is empty
	begin     *node[K, V]         // minimum node, or end when empty
	end       *node[K, V]         // sentinel, right child of the maximum
	size      int                 // จำนวนรายการทั้งหมดใน tree
	compare   Comparator[K]       // ฟังก์ชันสำหรับเปรียบเทียบ key
	allocator nodeAllocator[K, V] // Abstraction สำหรับการจัดสรรหน่วยความจำ
	arena     arenaConfig         // zero unless WithArena was given
}

// Option is a function that configures a Tree.
// Option คือฟังก์ชันสำหรับกำหนดค่าของ Tree
type Option[K any, V any] func(*Tree[K, V])

// WithArena configures the Tree to allocate nodes from a memory arena.
// sizeInBytes is the size of the first chunk; the arena grows by further
// chunks when it runs out of space.
// WithArena กำหนดให้ Tree ใช้ memory arena ตามขนาดที่ระบุ (เป็น byte)
func WithArena[K any, V any](sizeInBytes int) Option[K, V] {
	return func(t *Tree[K, V]) {
		if sizeInBytes > 0 {
			t.arena.initialSize = sizeInBytes
		}
	}
}

// WithArenaGrowthFactor configures the arena to grow by a factor of the previous chunk's size.
// This option is only effective when used with WithArena.
func WithArenaGrowthFactor[K any, V any](factor float64) Option[K, V] {
	return func(t *Tree[K, V]) {
		if factor > 1.0 {
			t.arena.growthFactor = factor
		}
	}
}

// WithArenaGrowthBytes configures the arena to grow by a fixed number of bytes.
// It takes precedence over WithArenaGrowthFactor.
// This option is only effective when used with WithArena.
func WithArenaGrowthBytes[K any, V any](bytes int) Option[K, V] {
	return func(t *Tree[K, V]) {
		if bytes > 0 {
			t.arena.growthBytes = bytes
		}
	}
}

// WithArenaGrowthThreshold configures the arena's proactive growth threshold (e.g., 0.9 for 90%).
// If an allocation would push a chunk's usage past this threshold, the arena
// moves on to a new chunk. This option is only effective when used with WithArena.
func WithArenaGrowthThreshold[K any, V any](threshold float64) Option[K, V] {
	return func(t *Tree[K, V]) {
		if threshold > 0.0 && threshold < 1.0 {
			t.arena.growthThreshold = threshold
		}
	}
}

// WithArenaLimit caps the total bytes the arena may reserve. Once the cap is
// reached, inserting a new key panics with ErrArenaExhausted before the tree
// is modified. This option is only effective when used with WithArena.
func WithArenaLimit[K any, V any](maxBytes int) Option[K, V] {
	return func(t *Tree[K, V]) {
		if maxBytes > 0 {
			t.arena.limit = maxBytes
		}
	}
}

// New creates a new tree for key types that implement cmp.Ordered (e.g., int, string).
// It uses cmp.Compare as the comparator.
// New สร้าง tree ใหม่สำหรับ key type ที่รองรับ `cmp.Ordered`
func New[K cmp.Ordered, V any](opts ...Option[K, V]) *Tree[K, V] {
	return NewWithComparator(cmp.Compare[K], opts...)
}

// NewWithComparator creates a new tree with a custom comparator function.
// The comparator function must not be nil.
// NewWithComparator สร้าง tree ใหม่พร้อมกับฟังก์ชันเปรียบเทียบที่กำหนดเอง
func NewWithComparator[K any, V any](compare Comparator[K], opts ...Option[K, V]) *Tree[K, V] {
	if compare == nil {
		panic("splaytree: comparator cannot be nil")
	}

	t := &Tree[K, V]{compare: compare}
	for _, opt := range opts {
		opt(t)
	}
	t.init()
	return t
}

// FromSeq creates a tree holding the pairs produced by seq. When a key
// repeats, the first value wins.
func FromSeq[K any, V any](compare Comparator[K], seq iter.Seq2[K, V], opts ...Option[K, V]) *Tree[K, V] {
	t := NewWithComparator(compare, opts...)
	t.InsertAll(seq)
	return t
}

func (t *Tree[K, V]) init() {
	// The sentinel lives outside the allocator so that resetting an arena
	// never recycles it.
	t.end = &node[K, V]{}
	t.begin = t.end
	t.allocator = t.newAllocator()
}

func (t *Tree[K, V]) newAllocator() nodeAllocator[K, V] {
	if t.arena.initialSize > 0 {
		return newArenaAllocator[K, V](t.arena)
	}
	return newPoolAllocator[K, V]()
}

// newNode allocates a detached node. It runs before any relinking so a
// failed allocation leaves the tree untouched.
func (t *Tree[K, V]) newNode(key K, value V) *node[K, V] {
	n := t.allocator.Get()
	if n == nil {
		panic(ErrArenaExhausted)
	}
	n.key = key
	n.value = value
	return n
}

// Len returns the number of items in the tree.
// Len คืนค่าจำนวนรายการทั้งหมดใน tree
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Empty reports whether the tree holds no items.
func (t *Tree[K, V]) Empty() bool {
	return t.size == 0
}

// locate descends from the root looking for key. It returns the matching node,
// if any, and the last real node visited. Without a match, last is the node
// under which key would be inserted. Both are nil only for an empty tree.
func (t *Tree[K, V]) locate(key K) (match, last *node[K, V]) {
	current := t.root
	for current != nil && current != t.end {
		last = current
		c := t.compare(key, current.key)
		switch {
		case c < 0:
			current = current.left
		case c > 0:
			current = current.right
		default:
			return current, last
		}
	}
	return nil, last
}

// lookup finds key and splays it to the root. On a miss the last visited node
// is splayed instead, so nearby keys are cheap on the next access.
func (t *Tree[K, V]) lookup(key K) *node[K, V] {
	match, last := t.locate(key)
	if match != nil {
		t.splay(match)
		return match
	}
	if last != nil {
		t.splay(last)
	}
	return nil
}

// plant makes n the only node of an empty tree.
func (t *Tree[K, V]) plant(n *node[K, V]) {
	n.parent, n.left = nil, nil
	n.right = t.end
	t.end.parent = n
	t.root = n
	t.begin = n
	t.size = 1
}

// link hangs n below parent, the last node visited by locate, and moves the
// sentinel or the begin cache when n becomes the new maximum or minimum.
func (t *Tree[K, V]) link(n, parent *node[K, V]) {
	n.parent = parent
	if t.compare(n.key, parent.key) < 0 {
		parent.left = n
		if parent == t.begin {
			t.begin = n
		}
	} else {
		if parent.right == t.end {
			n.right = t.end
			t.end.parent = n
		}
		parent.right = n
	}
	t.size++
}

// place attaches a fresh node at the position found by locate and splays it.
func (t *Tree[K, V]) place(n, last *node[K, V]) {
	if last == nil {
		t.plant(n)
		return
	}
	t.link(n, last)
	t.splay(n)
}

// Insert adds a key-value pair to the tree.
// If the key already exists, the stored value is kept and inserted is false.
// In both cases the node holding key becomes the root.
// Insert เพิ่ม key-value คู่ใหม่เข้าไปใน tree
// หาก key มีอยู่แล้วจะไม่เขียนทับ value เดิม
func (t *Tree[K, V]) Insert(key K, value V) (it Iterator[K, V], inserted bool) {
	match, last := t.locate(key)
	if match != nil {
		t.splay(match)
		return t.iter(match), false
	}
	n := t.newNode(key, value)
	t.place(n, last)
	return t.iter(n), true
}

// InsertAll inserts every pair produced by seq. Existing keys are kept.
func (t *Tree[K, V]) InsertAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		t.Insert(k, v)
	}
}

// GetOrInsert returns a pointer to the value stored for key, inserting the
// zero value first if the key is absent. The pointer stays valid until the key
// is erased.
func (t *Tree[K, V]) GetOrInsert(key K) *V {
	var zero V
	it, _ := t.Insert(key, zero)
	return &it.node.value
}

// Find returns an iterator to key, or End() if the key is absent.
// Find splays the node it visited last, so even a miss changes the shape of the tree.
// Find ค้นหา key และคืนค่า Iterator หากไม่พบจะคืนค่า End()
func (t *Tree[K, V]) Find(key K) Iterator[K, V] {
	if n := t.lookup(key); n != nil {
		return t.iter(n)
	}
	return t.End()
}

// At returns the value stored for key. If the key is absent it returns an
// error wrapping ErrKeyNotFound.
func (t *Tree[K, V]) At(key K) (V, error) {
	if n := t.lookup(key); n != nil {
		return n.value, nil
	}
	var zero V
	return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}

// Contains reports whether key is in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.lookup(key) != nil
}

// Erase removes key from the tree.
// It returns true if the key was found and removed, otherwise false.
// Erase ลบ key-value ออกจาก tree
// คืนค่า true หากลบสำเร็จ, false หากไม่พบ key
func (t *Tree[K, V]) Erase(key K) bool {
	n := t.lookup(key)
	if n == nil {
		return false
	}
	t.eraseNode(n)
	return true
}

// EraseAt removes the item it points to and returns an iterator to the next item.
// it must point to an item of this tree; erasing End() is a no-op.
func (t *Tree[K, V]) EraseAt(it Iterator[K, V]) Iterator[K, V] {
	if it.node == t.end {
		return it
	}
	next := successor(it.node)
	t.eraseNode(it.node)
	return t.iter(next)
}

// EraseRange removes the items in [first, last) and returns last.
func (t *Tree[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	current := first.node
	for current != last.node && current != t.end {
		next := successor(current)
		t.eraseNode(current)
		current = next
	}
	return last
}

// eraseNode splays n to the root, joins its two subtrees and releases n.
//
// When n is the maximum its right child is the sentinel. The sentinel is then
// treated as an empty right subtree and re-hung under the new maximum.
func (t *Tree[K, V]) eraseNode(n *node[K, V]) {
	t.splay(n)

	left, right := n.left, n.right
	if right == t.end {
		right = nil
		t.end.parent = nil
	}

	switch {
	case left == nil && right == nil:
		t.root = nil
		t.begin = t.end
	case left == nil:
		right.parent = nil
		t.root = right
		m := leftmost(right)
		t.splay(m)
		m.left = nil
		t.begin = m
	case right == nil:
		left.parent = nil
		t.root = left
		m := rightmost(left)
		t.splay(m)
		m.right = t.end
		t.end.parent = m
	default:
		left.parent = nil
		t.root = left
		m := rightmost(left)
		t.splay(m)
		m.right = right
		right.parent = m
	}

	t.allocator.Put(n)
	t.size--
}

// Merge moves every item of other into t. Keys already present in t keep
// t's value and the duplicate items of other are dropped. other is left
// empty and ready to use.
//
// Nodes are moved, not copied: each one is detached from other and inserted
// into t as if it were new. Both trees must order keys the same way.
func (t *Tree[K, V]) Merge(other *Tree[K, V]) {
	if other == t || other.root == nil {
		return
	}

	if m := other.end.parent; m != nil {
		m.right = nil
		other.end.parent = nil
	}

	queue := []*node[K, V]{other.root}
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		queue[head] = nil
		if n.right != nil {
			queue = append(queue, n.right)
		}
		if n.left != nil {
			queue = append(queue, n.left)
		}
		n.parent, n.left, n.right = nil, nil, nil
		t.adopt(n)
	}

	other.root = nil
	other.begin = other.end
	other.size = 0
	// Moved nodes may live in other's arena; a fresh allocator keeps a later
	// reset of other from recycling them.
	other.allocator = other.newAllocator()
}

// adopt inserts a detached node taken from another tree.
func (t *Tree[K, V]) adopt(n *node[K, V]) {
	match, last := t.locate(n.key)
	if match != nil {
		t.splay(match)
		t.allocator.Put(n)
		return
	}
	t.place(n, last)
}

// MoveFrom replaces the contents of t with the contents of other in O(1).
// other is left empty. Both trees must order keys the same way.
func (t *Tree[K, V]) MoveFrom(other *Tree[K, V]) {
	if other == t {
		return
	}
	t.Clear()
	if other.root == nil {
		return
	}

	m := other.end.parent
	m.right = t.end
	t.end.parent = m
	other.end.parent = nil

	t.root, t.begin, t.size = other.root, other.begin, other.size
	t.allocator, other.allocator = other.allocator, t.allocator
	t.arena, other.arena = other.arena, t.arena

	other.root = nil
	other.begin = other.end
	other.size = 0
}

// Clone returns a deep copy of t with its own nodes and the same shape.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	c := &Tree[K, V]{compare: t.compare, arena: t.arena}
	c.init()
	if t.root == nil {
		return c
	}

	type pair struct{ src, dst *node[K, V] }
	c.root = c.newNode(t.root.key, t.root.value)
	stack := []pair{{t.root, c.root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if l := p.src.left; l != nil {
			d := c.newNode(l.key, l.value)
			d.parent = p.dst
			p.dst.left = d
			stack = append(stack, pair{l, d})
		}
		switch r := p.src.right; {
		case r == t.end:
			p.dst.right = c.end
			c.end.parent = p.dst
		case r != nil:
			d := c.newNode(r.key, r.value)
			d.parent = p.dst
			p.dst.right = d
			stack = append(stack, pair{r, d})
		}
	}
	c.begin = leftmost(c.root)
	c.size = t.size
	return c
}

// Clear removes all items from the tree, resetting it to an empty state.
// An arena is reset for reuse; a pool is replaced so the garbage collector can
// reclaim the old nodes.
// Clear ลบรายการทั้งหมดออกจาก tree และรีเซ็ตให้อยู่ในสถานะว่างเปล่า
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.begin = t.end
	t.end.parent = nil
	t.size = 0

	if _, ok := t.allocator.(*arenaAllocator[K, V]); ok {
		t.allocator.Reset()
	} else {
		t.allocator = newPoolAllocator[K, V]()
	}
}

// Min returns the smallest key and its value without restructuring the tree.
// ok is false if the tree is empty.
// Min คืนค่า key-value คู่แรก (น้อยที่สุด) ใน tree
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	if t.size == 0 {
		return key, value, false
	}
	return t.begin.key, t.begin.value, true
}

// Max returns the largest key and its value without restructuring the tree.
// ok is false if the tree is empty.
// Max คืนค่า key-value คู่สุดท้าย (มากที่สุด) ใน tree
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	if t.size == 0 {
		return key, value, false
	}
	m := t.end.parent
	return m.key, m.value, true
}

// PopMin removes and returns the smallest key-value pair.
// ok is false if the tree is empty.
func (t *Tree[K, V]) PopMin() (key K, value V, ok bool) {
	if t.size == 0 {
		return key, value, false
	}
	n := t.begin
	key, value = n.key, n.value
	t.eraseNode(n)
	return key, value, true
}

// PopMax removes and returns the largest key-value pair.
// ok is false if the tree is empty.
func (t *Tree[K, V]) PopMax() (key K, value V, ok bool) {
	if t.size == 0 {
		return key, value, false
	}
	n := t.end.parent
	key, value = n.key, n.value
	t.eraseNode(n)
	return key, value, true
}

// seek returns the first node whose key is >= key (inclusive) or > key, or
// the sentinel if there is none. The result, or the last visited node when
// there is no result, is splayed to the root.
func (t *Tree[K, V]) seek(key K, inclusive bool) *node[K, V] {
	var found, last *node[K, V]
	current := t.root
	for current != nil && current != t.end {
		last = current
		c := t.compare(current.key, key)
		if c > 0 || (c == 0 && inclusive) {
			found = current
			current = current.left
		} else {
			current = current.right
		}
	}
	switch {
	case found != nil:
		t.splay(found)
		return found
	case last != nil:
		t.splay(last)
	}
	return t.end
}

// LowerBound returns an iterator to the first item whose key is greater than
// or equal to key, or End() if there is none.
func (t *Tree[K, V]) LowerBound(key K) Iterator[K, V] {
	return t.iter(t.seek(key, true))
}

// UpperBound returns an iterator to the first item whose key is strictly
// greater than key, or End() if there is none.
func (t *Tree[K, V]) UpperBound(key K) Iterator[K, V] {
	return t.iter(t.seek(key, false))
}

// Predecessor returns an iterator to the last item whose key is strictly
// less than key, or End() if there is none. Like LowerBound it splays the
// returned node, or the last visited node when there is none.
// Predecessor คืนค่า Iterator ของรายการที่ key น้อยกว่า key ที่ระบุมากที่สุด
func (t *Tree[K, V]) Predecessor(key K) Iterator[K, V] {
	var found, last *node[K, V]
	current := t.root
	for current != nil && current != t.end {
		last = current
		if t.compare(current.key, key) < 0 {
			found = current
			current = current.right
		} else {
			current = current.left
		}
	}
	switch {
	case found != nil:
		t.splay(found)
		return t.iter(found)
	case last != nil:
		t.splay(last)
	}
	return t.End()
}

// Range iterates over all items in ascending key order.
// The iteration stops if f returns false. Range does not restructure the tree.
// Range วนลูปไปตามรายการทั้งหมดใน tree ตามลำดับ key
func (t *Tree[K, V]) Range(f func(key K, value V) bool) {
	for n := t.begin; n != t.end; n = successor(n) {
		if !f(n.key, n.value) {
			return
		}
	}
}

// RangeQuery iterates over items where the key is between start and end (inclusive).
// The iteration stops if f returns false.
// RangeQuery วนลูปไปตามรายการที่ key อยู่ระหว่าง start และ end (รวมทั้งสองค่า)
func (t *Tree[K, V]) RangeQuery(start, end K, f func(key K, value V) bool) {
	for n := t.seek(start, true); n != t.end && t.compare(n.key, end) <= 0; n = successor(n) {
		if !f(n.key, n.value) {
			return
		}
	}
}

// CountRange counts the items where the key is between start and end (inclusive).
func (t *Tree[K, V]) CountRange(start, end K) int {
	if t.compare(start, end) > 0 {
		return 0
	}
	count := 0
	t.RangeQuery(start, end, func(K, V) bool {
		count++
		return true
	})
	return count
}
