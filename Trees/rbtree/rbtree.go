package rbtree

import "github.com/g-m-twostay/intrusive-trees/Trees"

// Tree is an intrusive red-black tree over *T. The zero value is not
// usable; construct one with New.
type Tree[T any] struct {
	root   *T
	link   Accessor[T]
	cmp    Comparator[T]
	traits Trees.Traits[T]
	opts   Trees.Options
	size   int
}

// New builds an empty Tree. traits may be nil, in which case structural
// events are simply dropped (equivalent to Trees.NopTraits[T]).
func New[T any](link Accessor[T], cmp Comparator[T], traits Trees.Traits[T], opts ...Trees.Option) *Tree[T] {
	o := Trees.Build(opts...)
	if traits == nil {
		traits = Trees.NopTraits[T]{}
	}
	return &Tree[T]{link: link, cmp: cmp, traits: traits, opts: o}
}

func (t *Tree[T]) l(n *T) *T         { return t.link(n).left }
func (t *Tree[T]) r(n *T) *T         { return t.link(n).right }
func (t *Tree[T]) p(n *T) *T         { return t.link(n).parent }
func (t *Tree[T]) setL(n, v *T)      { t.link(n).left = v }
func (t *Tree[T]) setR(n, v *T)      { t.link(n).right = v }
func (t *Tree[T]) setP(n, v *T)      { t.link(n).parent = v }
func (t *Tree[T]) col(n *T) color    { return t.link(n).color }
func (t *Tree[T]) setCol(n *T, c color) { t.link(n).color = c }

func (t *Tree[T]) colorOrBlack(n *T) color {
	if n == nil {
		return black
	}
	return t.col(n)
}

// Size returns the number of nodes in the tree. It is O(1) if
// Trees.Options.ConstantTimeSize was set at construction, and O(N)
// otherwise.
func (t *Tree[T]) Size() int {
	if t.opts.ConstantTimeSize {
		return t.size
	}
	return t.countSize(t.root)
}

func (t *Tree[T]) countSize(n *T) int {
	if n == nil {
		return 0
	}
	return 1 + t.countSize(t.l(n)) + t.countSize(t.r(n))
}

// Empty reports whether the tree has no nodes.
func (t *Tree[T]) Empty() bool { return t.root == nil }

// Root returns the current root node, or nil if the tree is empty.
func (t *Tree[T]) Root() *T { return t.root }

// Left returns n's left child, or nil. Meant for code that augments the
// tree from outside the package, such as interval-tree traits.
func (t *Tree[T]) Left(n *T) *T { return t.l(n) }

// Right returns n's right child, or nil.
func (t *Tree[T]) Right(n *T) *T { return t.r(n) }

// Parent returns n's parent, or nil if n is the root.
func (t *Tree[T]) Parent(n *T) *T { return t.p(n) }

func (t *Tree[T]) replaceChild(parent, oldChild, newChild *T) {
	if parent == nil {
		t.root = newChild
		return
	}
	if t.l(parent) == oldChild {
		t.setL(parent, newChild)
	} else {
		t.setR(parent, newChild)
	}
}

// rotateLeft rotates the subtree rooted at x to the left: x's right child
// takes x's place and x becomes that child's left child. Traits.RotatedLeft
// fires with x, the node that was rotated about (it ends up lower).
func (t *Tree[T]) rotateLeft(x *T) {
	y := t.r(x)
	t.setR(x, t.l(y))
	if l := t.l(y); l != nil {
		t.setP(l, x)
	}
	t.setP(y, t.p(x))
	t.replaceChild(t.p(x), x, y)
	t.setL(y, x)
	t.setP(x, y)
	t.traits.RotatedLeft(x)
}

// rotateRight mirrors rotateLeft.
func (t *Tree[T]) rotateRight(x *T) {
	y := t.l(x)
	t.setL(x, t.r(y))
	if r := t.r(y); r != nil {
		t.setP(r, x)
	}
	t.setP(y, t.p(x))
	t.replaceChild(t.p(x), x, y)
	t.setR(y, x)
	t.setP(x, y)
	t.traits.RotatedRight(x)
}

func (t *Tree[T]) resetLink(n *T) {
	*t.link(n) = Link[T]{}
}

// Insert attaches n to the tree. If an equal-keyed node already exists and
// Trees.Options.Multiple is not set, Insert leaves the tree unchanged and
// returns false. Insert does not check whether n is already linked: it
// resets n's link block, so callers must not pass a node that is still a
// member of any tree.
func (t *Tree[T]) Insert(n *T) bool {
	t.resetLink(n)
	if t.root == nil {
		t.root = n
		t.setCol(n, black)
		t.size++
		t.traits.LeafInserted(n)
		return true
	}
	cur := t.root
	// eq is the deepest equal-keyed node on the descent: the in-order-first
	// node of n's equal cluster, which is also that cluster's chain tail.
	var eq *T
	for {
		c := t.cmp(n, cur)
		switch {
		case c < 0:
			if l := t.l(cur); l != nil {
				cur = l
				continue
			}
			t.setL(cur, n)
			t.setP(n, cur)
		case c > 0:
			if rr := t.r(cur); rr != nil {
				cur = rr
				continue
			}
			t.setR(cur, n)
			t.setP(n, cur)
		default:
			if !t.opts.Multiple {
				return false
			}
			eq = cur
			if l := t.l(cur); l != nil {
				cur = l
				continue
			}
			t.setL(cur, n)
			t.setP(n, cur)
		}
		break
	}
	if eq != nil {
		t.insertAfterChain(eq, n)
	}
	t.setCol(n, red)
	t.size++
	t.traits.LeafInserted(n)
	t.fixupAfterInsert(n)
	return true
}

// InsertAfter inserts n as an equal-keyed neighbor of hint, placing n
// immediately after hint in chain order (the order ChainNext and Before
// follow). Within an equal cluster in-order iteration runs opposite to
// chain order, so n becomes hint's in-order predecessor. hint must
// already be a member of the tree and must compare equal to n; it panics
// otherwise. Requires Trees.Options.Multiple.
func (t *Tree[T]) InsertAfter(hint, n *T) {
	t.insertNear(hint, n, true)
}

// InsertBefore is the mirror of InsertAfter: n is placed immediately
// before hint in chain order and becomes hint's in-order successor.
func (t *Tree[T]) InsertBefore(hint, n *T) {
	t.insertNear(hint, n, false)
}

func (t *Tree[T]) insertNear(hint, n *T, after bool) {
	if !t.opts.Multiple {
		panic("rbtree: InsertAfter/InsertBefore require Trees.Options.Multiple")
	}
	if t.cmp(n, hint) != 0 {
		panic("rbtree: InsertAfter/InsertBefore hint must compare equal to the inserted node")
	}
	t.resetLink(n)
	cur := hint
	if after {
		if t.l(cur) == nil {
			t.setL(cur, n)
		} else {
			for cur = t.l(cur); t.r(cur) != nil; cur = t.r(cur) {
			}
			t.setR(cur, n)
		}
		t.insertAfterChain(hint, n)
	} else {
		if t.r(cur) == nil {
			t.setR(cur, n)
		} else {
			for cur = t.r(cur); t.l(cur) != nil; cur = t.l(cur) {
			}
			t.setL(cur, n)
		}
		t.insertBeforeChain(hint, n)
	}
	t.setP(n, cur)
	t.setCol(n, red)
	t.size++
	t.traits.LeafInserted(n)
	t.fixupAfterInsert(n)
}

func (t *Tree[T]) fixupAfterInsert(n *T) {
	for t.p(n) != nil && t.col(t.p(n)) == red {
		par := t.p(n)
		gp := t.p(par)
		if par == t.l(gp) {
			u := t.r(gp)
			if u != nil && t.col(u) == red {
				t.setCol(par, black)
				t.setCol(u, black)
				t.setCol(gp, red)
				n = gp
				continue
			}
			if n == t.r(par) {
				// folded case: n and par sit on opposite sides; rotate at par
				// to straighten the path before the final rotation.
				n = par
				t.rotateLeft(n)
				par = t.p(n)
				gp = t.p(par)
			}
			t.setCol(par, black)
			t.setCol(gp, red)
			t.rotateRight(gp)
			break
		} else {
			u := t.l(gp)
			if u != nil && t.col(u) == red {
				t.setCol(par, black)
				t.setCol(u, black)
				t.setCol(gp, red)
				n = gp
				continue
			}
			if n == t.l(par) {
				n = par
				t.rotateRight(n)
				par = t.p(n)
				gp = t.p(par)
			}
			t.setCol(par, black)
			t.setCol(gp, red)
			t.rotateLeft(gp)
			break
		}
	}
	t.setCol(t.root, black)
}

// swapNodes exchanges the tree positions of a and b — parent, children and
// (unless skipColorSwap) color — without touching any other node's
// identity. Used by delete to relocate the node being removed into a
// position with at most one child. Traits.Swapped fires with (a, b).
func (t *Tree[T]) swapNodes(a, b *T, skipColorSwap bool) {
	switch {
	case t.p(a) == b:
		t.swapNeighbors(b, a)
	case t.p(b) == a:
		t.swapNeighbors(a, b)
	default:
		t.swapUnrelated(a, b)
	}
	if !skipColorSwap {
		ca, cb := t.col(a), t.col(b)
		t.setCol(a, cb)
		t.setCol(b, ca)
	}
	t.traits.Swapped(a, b)
}

func (t *Tree[T]) swapUnrelated(a, b *T) {
	pa, la, ra := t.p(a), t.l(a), t.r(a)
	pb, lb, rb := t.p(b), t.l(b), t.r(b)

	t.replaceChild(pa, a, b)
	t.replaceChild(pb, b, a)

	t.setP(b, pa)
	t.setL(b, la)
	t.setR(b, ra)
	t.setP(a, pb)
	t.setL(a, lb)
	t.setR(a, rb)

	if la != nil {
		t.setP(la, b)
	}
	if ra != nil {
		t.setP(ra, b)
	}
	if lb != nil {
		t.setP(lb, a)
	}
	if rb != nil {
		t.setP(rb, a)
	}
}

// swapNeighbors swaps p and one of its direct children c.
func (t *Tree[T]) swapNeighbors(p, c *T) {
	gp := t.p(p)
	pl, pr := t.l(p), t.r(p)
	cl, cr := t.l(c), t.r(c)

	t.replaceChild(gp, p, c)
	t.setP(c, gp)

	if pl == c {
		t.setL(c, p)
		t.setR(c, pr)
		if pr != nil {
			t.setP(pr, c)
		}
	} else {
		t.setR(c, p)
		t.setL(c, pl)
		if pl != nil {
			t.setP(pl, c)
		}
	}
	t.setP(p, c)
	t.setL(p, cl)
	t.setR(p, cr)
	if cl != nil {
		t.setP(cl, p)
	}
	if cr != nil {
		t.setP(cr, p)
	}
}

// Remove detaches n from the tree. It panics with Trees.ErrNotAMember if n
// is not the root and has no parent link (the cheap membership check this
// package can do without a full search).
func (t *Tree[T]) Remove(n *T) {
	if n != t.root && t.p(n) == nil {
		panic(Trees.ErrNotAMember)
	}
	t.chainUnlink(n)

	switch {
	case t.l(n) != nil && t.r(n) != nil:
		succ := t.r(n)
		for t.l(succ) != nil {
			succ = t.l(succ)
		}
		t.swapNodes(n, succ, false)
	case t.l(n) != nil:
		t.swapNodes(n, t.l(n), false)
	}

	if rc := t.r(n); rc != nil {
		// n now has no left child; if it has a right child, that child must
		// be a single red leaf (otherwise black-height would be unbalanced).
		t.swapNodes(n, rc, true)
		t.setCol(rc, black)
		t.setR(rc, nil)
		// n was swapped to sit below rc (as rc's right child, just cleared
		// above), so rc — not rc's own parent — is the node n was spliced
		// out from under.
		par := rc
		t.traits.DeletedBelow(par)
		t.size--
		return
	}

	par := t.p(n)
	wasBlack := t.col(n) == black
	wasLeft := par != nil && t.l(par) == n
	t.replaceChild(par, n, nil)
	t.traits.DeletedBelow(par)
	t.size--
	if wasBlack && par != nil {
		t.fixupAfterDelete(par, wasLeft)
	}
}

// fixupAfterDelete restores the red-black invariants after a black node
// was spliced out from under par, on the side named by deletedLeft. par's
// child on that side (x below) carries the missing black unit and may be
// nil, which is why the caller passes par/side instead of x itself.
func (t *Tree[T]) fixupAfterDelete(par *T, deletedLeft bool) {
	var x *T
	if deletedLeft {
		x = t.l(par)
	} else {
		x = t.r(par)
	}
	for x != t.root && t.colorOrBlack(x) == black {
		if deletedLeft {
			sib := t.r(par)
			if t.col(sib) == red {
				t.setCol(sib, black)
				t.setCol(par, red)
				t.rotateLeft(par)
				sib = t.r(par)
			}
			if t.colorOrBlack(t.l(sib)) == black && t.colorOrBlack(t.r(sib)) == black {
				t.setCol(sib, red)
				x = par
				par = t.p(par)
				if par != nil {
					deletedLeft = t.l(par) == x
				}
				continue
			}
			if t.colorOrBlack(t.r(sib)) == black {
				if l := t.l(sib); l != nil {
					t.setCol(l, black)
				}
				t.setCol(sib, red)
				t.rotateRight(sib)
				sib = t.r(par)
			}
			t.setCol(sib, t.col(par))
			t.setCol(par, black)
			if r := t.r(sib); r != nil {
				t.setCol(r, black)
			}
			t.rotateLeft(par)
			x = t.root
			break
		}

		sib := t.l(par)
		if t.col(sib) == red {
			t.setCol(sib, black)
			t.setCol(par, red)
			t.rotateRight(par)
			sib = t.l(par)
		}
		if t.colorOrBlack(t.r(sib)) == black && t.colorOrBlack(t.l(sib)) == black {
			t.setCol(sib, red)
			x = par
			par = t.p(par)
			if par != nil {
				deletedLeft = t.l(par) == x
			}
			continue
		}
		if t.colorOrBlack(t.l(sib)) == black {
			if r := t.r(sib); r != nil {
				t.setCol(r, black)
			}
			t.setCol(sib, red)
			t.rotateLeft(sib)
			sib = t.l(par)
		}
		t.setCol(sib, t.col(par))
		t.setCol(par, black)
		if l := t.l(sib); l != nil {
			t.setCol(l, black)
		}
		t.rotateRight(par)
		x = t.root
		break
	}
	if x != nil {
		t.setCol(x, black)
	}
}

// Find returns the node comparing equal to probe, or nil. probe need not
// be attached to any tree; only the key fields cmp reads need be set. When
// Trees.Options.Multiple is set and several nodes compare equal, Find
// rewinds to the chain head (the first-inserted of the cluster) — use
// ChainNext to walk the rest.
func (t *Tree[T]) Find(probe *T) *T {
	cur := t.root
	for cur != nil {
		c := t.cmp(probe, cur)
		switch {
		case c < 0:
			cur = t.l(cur)
		case c > 0:
			cur = t.r(cur)
		default:
			return t.ChainFirst(cur)
		}
	}
	return nil
}

// LowerBound returns the first node not less than probe, or nil.
func (t *Tree[T]) LowerBound(probe *T) *T {
	cur := t.root
	var best *T
	for cur != nil {
		if t.cmp(cur, probe) >= 0 {
			best = cur
			cur = t.l(cur)
		} else {
			cur = t.r(cur)
		}
	}
	return best
}

// UpperBound returns the first node strictly greater than probe, or nil.
func (t *Tree[T]) UpperBound(probe *T) *T {
	cur := t.root
	var best *T
	for cur != nil {
		if t.cmp(cur, probe) > 0 {
			best = cur
			cur = t.l(cur)
		} else {
			cur = t.r(cur)
		}
	}
	return best
}

// Begin returns the smallest node, or nil if the tree is empty.
func (t *Tree[T]) Begin() *T {
	if t.root == nil {
		return nil
	}
	cur := t.root
	for t.l(cur) != nil {
		cur = t.l(cur)
	}
	return cur
}

// RBegin returns the largest node, or nil if the tree is empty.
func (t *Tree[T]) RBegin() *T {
	if t.root == nil {
		return nil
	}
	cur := t.root
	for t.r(cur) != nil {
		cur = t.r(cur)
	}
	return cur
}

// Next returns the in-order successor of n, or nil if n is the largest.
func (t *Tree[T]) Next(n *T) *T {
	if r := t.r(n); r != nil {
		for t.l(r) != nil {
			r = t.l(r)
		}
		return r
	}
	cur, par := n, t.p(n)
	for par != nil && cur == t.r(par) {
		cur = par
		par = t.p(par)
	}
	return par
}

// Prev returns the in-order predecessor of n, or nil if n is the smallest.
func (t *Tree[T]) Prev(n *T) *T {
	if l := t.l(n); l != nil {
		for t.r(l) != nil {
			l = t.r(l)
		}
		return l
	}
	cur, par := n, t.p(n)
	for par != nil && cur == t.l(par) {
		cur = par
		par = t.p(par)
	}
	return par
}
