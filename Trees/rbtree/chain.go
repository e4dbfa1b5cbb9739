package rbtree

// The equality chain is a doubly-linked list threaded through prev/next
// that preserves a caller-chosen order among nodes that compare equal.
// It is inert unless Trees.Options.Multiple is set: insertAfterChain and
// insertBeforeChain never run, and chainUnlink, which Remove always calls,
// finds prev and next nil and changes nothing.

func (t *Tree[T]) insertAfterChain(pred, n *T) {
	ln := t.link(n)
	lp := t.link(pred)
	ln.next = lp.next
	ln.prev = pred
	if lp.next != nil {
		t.link(lp.next).prev = n
	}
	lp.next = n
}

func (t *Tree[T]) insertBeforeChain(succ, n *T) {
	ln := t.link(n)
	ls := t.link(succ)
	ln.prev = ls.prev
	ln.next = succ
	if ls.prev != nil {
		t.link(ls.prev).next = n
	}
	ls.prev = n
}

func (t *Tree[T]) chainUnlink(n *T) {
	ln := t.link(n)
	if ln.prev != nil {
		t.link(ln.prev).next = ln.next
	}
	if ln.next != nil {
		t.link(ln.next).prev = ln.prev
	}
	ln.prev, ln.next = nil, nil
}

// ChainNext returns the next node in n's equality chain (the node inserted
// immediately after n among keys comparing equal to it), or nil.
func (t *Tree[T]) ChainNext(n *T) *T { return t.link(n).next }

// ChainPrev returns the previous node in n's equality chain, or nil.
func (t *Tree[T]) ChainPrev(n *T) *T { return t.link(n).prev }

// ChainFirst walks ChainPrev until it finds the earliest node inserted
// among those comparing equal to n. If n is unique-keyed this returns n.
func (t *Tree[T]) ChainFirst(n *T) *T {
	for t.link(n).prev != nil {
		n = t.link(n).prev
	}
	return n
}

// Before reports whether a was inserted before b, given that they compare
// equal. Requires Trees.Options.OrderQueries. Walks the chain from a
// forward; O(k) in the size of the equal-cluster.
func (t *Tree[T]) Before(a, b *T) bool {
	if !t.opts.OrderQueries {
		panic("rbtree: Before requires Trees.Options.OrderQueries")
	}
	for cur := t.link(a).next; cur != nil; cur = t.link(cur).next {
		if cur == b {
			return true
		}
	}
	return false
}
