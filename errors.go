package splaytree

import "errors"

var (
	// ErrKeyNotFound is returned by At when the key is not in the tree.
	// ErrKeyNotFound คือ error ที่คืนจาก At เมื่อไม่พบ key
	ErrKeyNotFound = errors.New("splaytree: key not found")

	// ErrArenaExhausted is the panic value raised when an arena configured with
	// WithArenaLimit cannot allocate another node. The tree is left unchanged.
	ErrArenaExhausted = errors.New("splaytree (arena): out of memory")
)
