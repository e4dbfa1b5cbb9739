package ziptree

import "github.com/g-m-twostay/intrusive-trees/Trees"

// Tree is an intrusive zip tree over *T. The zero value is not usable;
// construct one with New.
type Tree[T any] struct {
	root   *T
	link   Accessor[T]
	cmp    Comparator[T]
	rank   RankSource[T]
	traits Trees.Traits[T]
	opts   Trees.Options
	size   int
}

// New builds an empty Tree. traits may be nil. Trees.Options.Multiple is
// not supported here — the equality chain that backs it lives in rbtree,
// which zip/unzip has no equivalent hook for — so New panics if it is set.
func New[T any](link Accessor[T], cmp Comparator[T], rank RankSource[T], traits Trees.Traits[T], opts ...Trees.Option) *Tree[T] {
	o := Trees.Build(opts...)
	if o.Multiple {
		panic("ziptree: Trees.Options.Multiple is not supported")
	}
	if rank == nil {
		panic("ziptree: a RankSource is required")
	}
	if traits == nil {
		traits = Trees.NopTraits[T]{}
	}
	return &Tree[T]{link: link, cmp: cmp, rank: rank, traits: traits, opts: o}
}

func (t *Tree[T]) l(n *T) *T      { return t.link(n).left }
func (t *Tree[T]) r(n *T) *T      { return t.link(n).right }
func (t *Tree[T]) p(n *T) *T      { return t.link(n).parent }
func (t *Tree[T]) rnk(n *T) uint8 { return t.link(n).rank }

func (t *Tree[T]) setL(x, c *T) {
	t.link(x).left = c
	if c != nil {
		t.link(c).parent = x
	}
}

func (t *Tree[T]) setR(x, c *T) {
	t.link(x).right = c
	if c != nil {
		t.link(c).parent = x
	}
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

// zip merges two trees x and y, where every key in x compares less than
// every key in y, into one. Ties in rank favor y as the parent: x (and
// everything zip folds into its place) then sits to y's left, where the
// rank discipline only requires rank(y) >= rank(left(y)) rather than the
// strict rank(parent) > rank(right(parent)) a tie on the right would
// violate.
func (t *Tree[T]) zip(x, y *T) *T {
	if x == nil {
		return y
	}
	if y == nil {
		return x
	}
	if t.rnk(x) <= t.rnk(y) {
		t.setL(y, t.zip(x, t.l(y)))
		return y
	}
	t.setR(x, t.zip(t.r(x), y))
	return x
}

// unzip splits x into (left, right) around probe's key: left holds every
// node comparing less than probe, right every node comparing greater.
// probe itself, if present, is excluded from both.
func (t *Tree[T]) unzip(x, probe *T) (*T, *T) {
	if x == nil {
		return nil, nil
	}
	switch c := t.cmp(x, probe); {
	case c < 0:
		l, rr := t.unzip(t.r(x), probe)
		t.setR(x, l)
		return x, rr
	case c > 0:
		ll, rr := t.unzip(t.l(x), probe)
		t.setL(x, rr)
		return ll, x
	default:
		return t.l(x), t.r(x)
	}
}

// insert descends past x while n's rank keeps it strictly below x, with one
// exception: on a rank tie, descending left is still safe (n ends up in
// x's left subtree, where an equal rank is allowed) but descending right is
// not (n would end up in x's right subtree with an equal rank, violating the
// strict right-rank rule) — so a tie only continues the descent when n is
// headed left. On a tie with n headed right, n takes x's place and unzip
// lands x in n's left part, where the tie is allowed.
func (t *Tree[T]) insert(x, n *T) *T {
	if x == nil {
		return n
	}
	rn, rx := t.rnk(n), t.rnk(x)
	c := t.cmp(n, x)
	if rn < rx || (rn == rx && c < 0) {
		if c < 0 {
			t.setL(x, t.insert(t.l(x), n))
		} else {
			t.setR(x, t.insert(t.r(x), n))
		}
		return x
	}
	l, r := t.unzip(x, n)
	t.setL(n, l)
	t.setR(n, r)
	return n
}

// Insert attaches n to the tree. If an equal-keyed node already exists,
// Insert leaves the tree unchanged and returns false.
func (t *Tree[T]) Insert(n *T) bool {
	if t.Find(n) != nil {
		return false
	}
	*t.link(n) = Link[T]{}
	t.link(n).rank = t.rank(n)
	t.root = t.insert(t.root, n)
	t.link(t.root).parent = nil
	t.size++
	t.traits.LeafInserted(n)
	return true
}

func (t *Tree[T]) remove(x, probe *T) *T {
	if x == nil {
		return nil
	}
	switch c := t.cmp(probe, x); {
	case c < 0:
		t.setL(x, t.remove(t.l(x), probe))
		return x
	case c > 0:
		t.setR(x, t.remove(t.r(x), probe))
		return x
	default:
		return t.zip(t.l(x), t.r(x))
	}
}

// Remove detaches n from the tree. It panics with Trees.ErrNotAMember if n
// is not the root and has no parent link.
func (t *Tree[T]) Remove(n *T) {
	if n != t.root && t.p(n) == nil {
		panic(Trees.ErrNotAMember)
	}
	par := t.p(n)
	t.root = t.remove(t.root, n)
	if t.root != nil {
		t.link(t.root).parent = nil
	}
	t.size--
	t.traits.DeletedBelow(par)
}

// Find returns the node comparing equal to probe, or nil. probe need not
// be attached to any tree; only the key fields cmp reads need be set.
func (t *Tree[T]) Find(probe *T) *T {
	cur := t.root
	for cur != nil {
		switch c := t.cmp(probe, cur); {
		case c < 0:
			cur = t.l(cur)
		case c > 0:
			cur = t.r(cur)
		default:
			return cur
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
	if rr := t.r(n); rr != nil {
		for t.l(rr) != nil {
			rr = t.l(rr)
		}
		return rr
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
