// Package intervaltree builds an augmented interval tree on top of rbtree:
// every node additionally caches the maximum upper bound across its own
// subtree, kept up to date through rbtree's Trees.Traits hooks, so Query
// can prune whole subtrees that cannot possibly overlap the probe range.
package intervaltree

import (
	"github.com/g-m-twostay/intrusive-trees/Trees"
	"github.com/g-m-twostay/intrusive-trees/Trees/rbtree"
	"golang.org/x/exp/constraints"
)

// Bounds exposes the interval each node carries. Query treats both bounds
// as inclusive. Lower and Upper must be stable for as long as a node is
// attached to the tree.
type Bounds[T any, K constraints.Ordered] struct {
	Lower func(*T) K
	Upper func(*T) K
}

// Tree is an intrusive interval tree over *T, ordered primarily by lower
// bound and secondarily by upper bound. It forwards Insert, Remove, Find,
// Size, Empty, Root and the Begin/RBegin/Next/Prev traversal to the
// underlying rbtree, and adds Query and MaxUpper.
type Tree[T any, K constraints.Ordered] struct {
	rb     *rbtree.Tree[T]
	bounds Bounds[T, K]
	maxUp  func(*T) *K
}

// augmentor implements Trees.Traits[T] by keeping maxUp correct after every
// structural change rbtree makes. It needs a handle back to the rbtree.Tree
// to read sibling subtrees, which isn't available until after rbtree.New
// returns — so New wires it in as a second step.
type augmentor[T any, K constraints.Ordered] struct {
	tree  *rbtree.Tree[T]
	upper func(*T) K
	maxUp func(*T) *K
}

// fix recomputes n's cached maximum and reports whether it changed.
func (a *augmentor[T, K]) fix(n *T) bool {
	m := a.upper(n)
	if l := a.tree.Left(n); l != nil {
		if v := *a.maxUp(l); v > m {
			m = v
		}
	}
	if r := a.tree.Right(n); r != nil {
		if v := *a.maxUp(r); v > m {
			m = v
		}
	}
	if *a.maxUp(n) == m {
		return false
	}
	*a.maxUp(n) = m
	return true
}

// fixUp recomputes n and walks upward, stopping as soon as an ancestor's
// cached maximum turns out not to need updating — once that happens
// every ancestor above it is already correct too.
func (a *augmentor[T, K]) fixUp(n *T) {
	if n == nil {
		return
	}
	a.fix(n)
	for p := a.tree.Parent(n); p != nil; p = a.tree.Parent(p) {
		if !a.fix(p) {
			return
		}
	}
}

func (a *augmentor[T, K]) LeafInserted(n *T)  { a.fixUp(n) }
func (a *augmentor[T, K]) RotatedLeft(n *T)   { a.fixUp(n) }
func (a *augmentor[T, K]) RotatedRight(n *T)  { a.fixUp(n) }
func (a *augmentor[T, K]) DeletedBelow(n *T)  { a.fixUp(n) }
func (a *augmentor[T, K]) Swapped(n1, n2 *T)  { a.fixUp(n1); a.fixUp(n2) }

// New builds an empty Tree. maxUp must return the address of a per-node
// field the caller reserves to hold the cached subtree maximum; it is
// written by the tree and should not be written by the caller.
// Trees.Options.Multiple must be set if intervals with an identical
// (lower, upper) pair may coexist; otherwise inserting a duplicate is
// rejected the same way rbtree rejects it.
func New[T any, K constraints.Ordered](link rbtree.Accessor[T], bounds Bounds[T, K], maxUp func(*T) *K, opts ...Trees.Option) *Tree[T, K] {
	aug := &augmentor[T, K]{upper: bounds.Upper, maxUp: maxUp}
	cmp := func(a, b *T) int {
		switch la, lb := bounds.Lower(a), bounds.Lower(b); {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		switch ua, ub := bounds.Upper(a), bounds.Upper(b); {
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		default:
			return 0
		}
	}
	rb := rbtree.New[T](link, cmp, aug, opts...)
	aug.tree = rb
	return &Tree[T, K]{rb: rb, bounds: bounds, maxUp: maxUp}
}

// Size returns the number of intervals in the tree.
func (t *Tree[T, K]) Size() int { return t.rb.Size() }

// Empty reports whether the tree holds no intervals.
func (t *Tree[T, K]) Empty() bool { return t.rb.Empty() }

// Root returns the current root node, or nil if the tree is empty.
func (t *Tree[T, K]) Root() *T { return t.rb.Root() }

// Insert attaches n to the tree. It returns false, leaving the tree
// unchanged, if an interval with the same (lower, upper) pair already
// exists and Trees.Options.Multiple was not set.
func (t *Tree[T, K]) Insert(n *T) bool { return t.rb.Insert(n) }

// Remove detaches n from the tree.
func (t *Tree[T, K]) Remove(n *T) { t.rb.Remove(n) }

// Find returns a node with the same (lower, upper) pair as probe, or nil.
func (t *Tree[T, K]) Find(probe *T) *T { return t.rb.Find(probe) }

// Begin returns the interval with the smallest (lower, upper) pair.
func (t *Tree[T, K]) Begin() *T { return t.rb.Begin() }

// RBegin returns the interval with the largest (lower, upper) pair.
func (t *Tree[T, K]) RBegin() *T { return t.rb.RBegin() }

// Next returns the in-order successor of n.
func (t *Tree[T, K]) Next(n *T) *T { return t.rb.Next(n) }

// Prev returns the in-order predecessor of n.
func (t *Tree[T, K]) Prev(n *T) *T { return t.rb.Prev(n) }

// MaxUpper returns the cached maximum upper bound across n's subtree.
func (t *Tree[T, K]) MaxUpper(n *T) K { return *t.maxUp(n) }
