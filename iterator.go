package splaytree

import "iter"

// Iterator points at an item of a Tree, or at the past-the-end position.
// The typical use is:
//
//	for it := t.Begin(); !it.IsEnd(); it.Next() {
//		key := it.Key()
//		value := it.Value()
//		// ...
//	}
//
// An Iterator stays valid while the tree is restructured by splaying; it is
// invalidated only when its item is erased or the tree is cleared.
// Calling Key, Value or SetValue at End() is a contract violation.
//
// Iterator ใช้สำหรับวนลูปผ่านรายการใน Tree ทั้งไปข้างหน้าและย้อนกลับ
// Iterator จะใช้ไม่ได้เมื่อรายการที่ชี้อยู่ถูกลบ
type Iterator[K any, V any] struct {
	tree *Tree[K, V]
	node *node[K, V]
}

func (t *Tree[K, V]) iter(n *node[K, V]) Iterator[K, V] {
	return Iterator[K, V]{tree: t, node: n}
}

// Begin returns an iterator to the smallest item, or End() if the tree is empty.
func (t *Tree[K, V]) Begin() Iterator[K, V] {
	return t.iter(t.begin)
}

// End returns the past-the-end iterator.
func (t *Tree[K, V]) End() Iterator[K, V] {
	return t.iter(t.end)
}

// Last returns an iterator to the largest item, or End() if the tree is empty.
func (t *Tree[K, V]) Last() Iterator[K, V] {
	if t.size == 0 {
		return t.End()
	}
	return t.iter(t.end.parent)
}

// Key returns the key of the item at the current iterator position.
func (it Iterator[K, V]) Key() K {
	return it.node.key
}

// Value returns the value of the item at the current iterator position.
func (it Iterator[K, V]) Value() V {
	return it.node.value
}

// SetValue replaces the value of the item at the current iterator position.
func (it Iterator[K, V]) SetValue(value V) {
	it.node.value = value
}

// IsEnd reports whether the iterator is at the past-the-end position.
// The zero Iterator is considered to be at the end.
func (it Iterator[K, V]) IsEnd() bool {
	return it.tree == nil || it.node == it.tree.end
}

// Equal reports whether both iterators point at the same position.
// Every end position is equal to every other one, including the zero Iterator.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	if end := it.IsEnd(); end || other.IsEnd() {
		return end && other.IsEnd()
	}
	return it.node == other.node
}

// Next moves the iterator to the next item in key order and returns true if
// it now points at an item. From the last item it moves to End() and returns
// false. At End() it stays in place.
// Next เลื่อน Iterator ไปยังรายการถัดไป
func (it *Iterator[K, V]) Next() bool {
	if it.IsEnd() {
		return false
	}
	it.node = successor(it.node)
	return it.node != it.tree.end
}

// Prev moves the iterator to the previous item and returns true if the move
// was successful. From End() it moves to the largest item. At Begin() (or on
// an empty tree) it stays in place and returns false.
// Prev เลื่อน Iterator ไปยังรายการก่อนหน้า
func (it *Iterator[K, V]) Prev() bool {
	if it.tree == nil {
		return false
	}
	p := predecessor(it.node)
	if p == nil {
		return false
	}
	it.node = p
	return true
}

// All returns an iterator over all items in ascending key order.
// It does not restructure the tree; the tree must not be modified while the
// sequence is being consumed.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := t.begin; n != t.end; n = successor(n) {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Backward returns an iterator over all items in descending key order.
func (t *Tree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.size == 0 {
			return
		}
		for n := t.end.parent; n != nil; n = predecessor(n) {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}
