package splaytree

// rotation names one step of the splay loop. The step is fully determined by
// whether the node has a grandparent and on which side of its parent (and the
// parent of its grandparent) it hangs.
type rotation uint8

const (
	rotateZig    rotation = iota // x is p.left, no grandparent
	rotateZag                    // x is p.right, no grandparent
	rotateZigZig                 // x is p.left, p is g.left
	rotateZagZag                 // x is p.right, p is g.right
	rotateZigZag                 // x is p.left, p is g.right
	rotateZagZig                 // x is p.right, p is g.left
)

func (r rotation) String() string {
	switch r {
	case rotateZig:
		return "zig"
	case rotateZag:
		return "zag"
	case rotateZigZig:
		return "zig-zig"
	case rotateZagZag:
		return "zag-zag"
	case rotateZigZag:
		return "zig-zag"
	case rotateZagZig:
		return "zag-zig"
	}
	return "unknown"
}

// classify picks the rotation for x. x must have a parent.
func classify[K any, V any](x *node[K, V]) rotation {
	p := x.parent
	g := p.parent
	xLeft := p.left == x
	if g == nil {
		if xLeft {
			return rotateZig
		}
		return rotateZag
	}
	pLeft := g.left == p
	switch {
	case xLeft && pLeft:
		return rotateZigZig
	case !xLeft && !pLeft:
		return rotateZagZag
	case xLeft:
		return rotateZigZag
	default:
		return rotateZagZig
	}
}

// splay moves x to the root with a sequence of rotations.
// splay เลื่อนโหนด x ขึ้นไปเป็น root ด้วยการหมุนทีละขั้น
//
// Each rotation keeps the in-order sequence intact and only rewrites the
// links of the nodes it touches, so iterators stay valid. A detached subtree
// (root.parent == nil) can be splayed on its own; its new top then becomes
// t.root, which callers rely on while erasing.
func (t *Tree[K, V]) splay(x *node[K, V]) {
	for x.parent != nil {
		switch classify(x) {
		case rotateZig:
			t.zig(x)
		case rotateZag:
			t.zag(x)
		case rotateZigZig:
			t.zigZig(x)
		case rotateZagZag:
			t.zagZag(x)
		case rotateZigZag:
			t.zigZag(x)
		case rotateZagZig:
			t.zagZig(x)
		}
	}
}

// replaceChild hangs x where old used to hang under parent, or makes x the
// root when old had no parent.
func (t *Tree[K, V]) replaceChild(parent, old, x *node[K, V]) {
	x.parent = parent
	switch {
	case parent == nil:
		t.root = x
	case parent.left == old:
		parent.left = x
	default:
		parent.right = x
	}
}

// zig rotates x over its parent p, which is the root and has x on the left.
//
//	    p          x
//	   / \        / \
//	  x   C  =>  A   p
//	 / \            / \
//	A   B          B   C
func (t *Tree[K, V]) zig(x *node[K, V]) {
	p := x.parent
	b := x.right

	p.left = b
	if b != nil {
		b.parent = p
	}
	x.right = p
	p.parent = x
	x.parent = nil
	t.root = x
}

// zag mirrors zig: p is the root and has x on the right.
func (t *Tree[K, V]) zag(x *node[K, V]) {
	p := x.parent
	b := x.left

	p.right = b
	if b != nil {
		b.parent = p
	}
	x.left = p
	p.parent = x
	x.parent = nil
	t.root = x
}

// zigZig lifts x two levels when x is p.left and p is g.left. The parent is
// rotated over the grandparent first, then x over the parent.
//
//	      g        x
//	     / \      / \
//	    p   D    A   p
//	   / \   =>     / \
//	  x   C        B   g
//	 / \              / \
//	A   B            C   D
func (t *Tree[K, V]) zigZig(x *node[K, V]) {
	p := x.parent
	g := p.parent
	above := g.parent
	b, c := x.right, p.right

	g.left = c
	if c != nil {
		c.parent = g
	}
	p.left = b
	if b != nil {
		b.parent = p
	}
	p.right = g
	g.parent = p
	x.right = p
	p.parent = x
	t.replaceChild(above, g, x)
}

// zagZag mirrors zigZig: x is p.right and p is g.right.
func (t *Tree[K, V]) zagZag(x *node[K, V]) {
	p := x.parent
	g := p.parent
	above := g.parent
	b, c := x.left, p.left

	g.right = c
	if c != nil {
		c.parent = g
	}
	p.right = b
	if b != nil {
		b.parent = p
	}
	p.left = g
	g.parent = p
	x.left = p
	p.parent = x
	t.replaceChild(above, g, x)
}

// zigZag lifts x two levels when x is p.left and p is g.right. x ends up
// with g on its left and p on its right.
//
//	  g              x
//	 / \           /   \
//	A   p         g     p
//	   / \   =>  / \   / \
//	  x   D     A   B C   D
//	 / \
//	B   C
func (t *Tree[K, V]) zigZag(x *node[K, V]) {
	p := x.parent
	g := p.parent
	above := g.parent
	b, c := x.left, x.right

	g.right = b
	if b != nil {
		b.parent = g
	}
	p.left = c
	if c != nil {
		c.parent = p
	}
	x.left = g
	g.parent = x
	x.right = p
	p.parent = x
	t.replaceChild(above, g, x)
}

// zagZig mirrors zigZag: x is p.right and p is g.left. x ends up with p on
// its left and g on its right.
func (t *Tree[K, V]) zagZig(x *node[K, V]) {
	p := x.parent
	g := p.parent
	above := g.parent
	b, c := x.left, x.right

	p.right = b
	if b != nil {
		b.parent = p
	}
	g.left = c
	if c != nil {
		c.parent = g
	}
	x.left = p
	p.parent = x
	x.right = g
	g.parent = x
	t.replaceChild(above, g, x)
}
