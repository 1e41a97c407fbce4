package splaytree

import (
	"unsafe"
)

// arenaConfig holds the arena settings collected from the Tree options.
// All sizes are in bytes.
type arenaConfig struct {
	initialSize     int
	growthFactor    float64
	growthBytes     int
	growthThreshold float64
	limit           int
}

// nodeArena hands out nodes from large pre-allocated chunks.
// This reduces GC overhead and improves data locality for rotations, which
// touch three nodes at a time. Memory is only reclaimed when the entire arena
// is reset; chunks are kept and reused after a reset.
//
// The chunks are typed slices, so the garbage collector still sees every
// pointer stored in a node.
// nodeArena จัดสรรโหนดจากหน่วยความจำก้อนใหญ่ที่จองไว้ล่วงหน้า
// หน่วยความจำจะถูกนำกลับมาใช้ใหม่ได้ก็ต่อเมื่อมีการ reset ทั้ง arena เท่านั้น
type nodeArena[K any, V any] struct {
	cfg      arenaConfig
	nodeSize int
	chunks   [][]node[K, V]
	cur      int // index of the active chunk
	used     int // nodes handed out from the active chunk
	reserved int // bytes reserved by all chunks
}

func newNodeArena[K any, V any](cfg arenaConfig) *nodeArena[K, V] {
	return &nodeArena[K, V]{
		cfg:      cfg,
		nodeSize: int(unsafe.Sizeof(node[K, V]{})),
	}
}

// alloc returns a zeroed node, or nil if the arena limit has been reached.
func (a *nodeArena[K, V]) alloc() *node[K, V] {
	if len(a.chunks) == 0 || a.full() {
		if !a.advance() {
			return nil
		}
	}
	n := &a.chunks[a.cur][a.used]
	a.used++
	*n = node[K, V]{}
	return n
}

// full reports whether the active chunk should not serve the next node,
// either because it is exhausted or because the allocation would push its
// usage past the growth threshold.
func (a *nodeArena[K, V]) full() bool {
	capacity := len(a.chunks[a.cur])
	if a.used >= capacity {
		return true
	}
	if t := a.cfg.growthThreshold; t > 0 && a.used > 0 && float64(a.used+1) > t*float64(capacity) {
		return true
	}
	return false
}

// advance moves to the next chunk, reusing one kept from before a reset if
// possible, and grows the arena otherwise.
func (a *nodeArena[K, V]) advance() bool {
	if a.cur+1 < len(a.chunks) {
		a.cur++
		a.used = 0
		return true
	}
	return a.grow(a.nextChunkBytes())
}

func (a *nodeArena[K, V]) nextChunkBytes() int {
	if len(a.chunks) == 0 {
		return a.cfg.initialSize
	}
	last := len(a.chunks[len(a.chunks)-1]) * a.nodeSize
	switch {
	case a.cfg.growthBytes > 0:
		return a.cfg.growthBytes
	case a.cfg.growthFactor > 1.0:
		return int(float64(last) * a.cfg.growthFactor)
	default:
		return last
	}
}

// grow appends a chunk of roughly size bytes, clamped to the configured limit.
func (a *nodeArena[K, V]) grow(size int) bool {
	nodes := max(size/a.nodeSize, 1)
	if a.cfg.limit > 0 {
		remaining := (a.cfg.limit - a.reserved) / a.nodeSize
		if remaining < 1 {
			return false
		}
		nodes = min(nodes, remaining)
	}
	a.chunks = append(a.chunks, make([]node[K, V], nodes))
	a.reserved += nodes * a.nodeSize
	a.cur = len(a.chunks) - 1
	a.used = 0
	return true
}

// reset makes every chunk available again. Slots are zeroed so that keys and
// values held by discarded nodes can be collected.
func (a *nodeArena[K, V]) reset() {
	for i := 0; i < len(a.chunks) && i <= a.cur; i++ {
		clear(a.chunks[i])
	}
	a.cur = 0
	a.used = 0
}
