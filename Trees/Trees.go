// Package Trees holds the pieces shared by every balanced-tree variant in
// this module: the construction-time options bundle, the trait hooks
// structural mutations are reported through, and the small set of errors
// a caller can hit by violating a precondition.
//
// Individual tree cores (rbtree, ziptree, energytree, intervaltree) live
// in subpackages; this package only carries what all of them need.
package Trees

import "errors"

// Errors returned by VerifyIntegrity, or panicked with when a caller
// violates a precondition documented on the offending method. Per the
// error-handling design, precondition violations have no recoverable
// path: Insert of an already-attached node and Remove of a non-member
// are programmer errors, not runtime conditions to handle.
var (
	// ErrAlreadyAttached names the precondition that Insert is not called
	// on a node already linked into a tree. No tree in this module checks
	// it: Insert resets the node's link block, and nothing panics with
	// this value.
	ErrAlreadyAttached = errors.New("Trees: node is already attached to a tree")
	// ErrNotAMember is panicked with when Remove is called on a node that
	// is not linked into the tree it's being removed from.
	ErrNotAMember = errors.New("Trees: node is not a member of this tree")
	// ErrIntegrity is returned by VerifyIntegrity, never panicked with.
	ErrIntegrity = errors.New("Trees: structural invariant violated")
)

// Options is the construction-time configuration bundle described by the
// options table. Zero value is every option off. Trees that don't support
// a given option ignore it (e.g. CompressColor), except that ziptree.New
// panics if Multiple is set.
type Options struct {
	// Multiple allows keys that compare equal to coexist. In rbtree this
	// activates the equality chain; without it, inserting an equal key is
	// a no-op.
	Multiple bool
	// OrderQueries requires Multiple. It enables asking whether one
	// equal-key node was inserted before another, answered via the chain.
	OrderQueries bool
	// ConstantTimeSize keeps a running counter updated on Insert/Remove so
	// Size is O(1) instead of O(N).
	ConstantTimeSize bool
	// CompressColor is accepted by every tree and has no effect: rbtree
	// always stores the color in its own field of Link and does not pack
	// it into the low bit of the parent pointer.
	CompressColor bool
}

// Option mutates an Options bundle. Constructors take a variadic list of
// Options so callers write New(cmp, WithMultiple(), WithConstantTimeSize()).
type Option func(*Options)

// WithMultiple turns on Options.Multiple.
func WithMultiple() Option { return func(o *Options) { o.Multiple = true } }

// WithOrderQueries turns on Options.OrderQueries. Callers must also pass
// WithMultiple; constructors panic otherwise, since order queries are only
// meaningful over an equality chain.
func WithOrderQueries() Option { return func(o *Options) { o.OrderQueries = true } }

// WithConstantTimeSize turns on Options.ConstantTimeSize.
func WithConstantTimeSize() Option { return func(o *Options) { o.ConstantTimeSize = true } }

// WithCompressedColor turns on Options.CompressColor.
func WithCompressedColor() Option { return func(o *Options) { o.CompressColor = true } }

// Build applies opts to a zero Options and validates the ORDER_QUERIES/
// MULTIPLE constraint from the options table.
func Build(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.OrderQueries && !o.Multiple {
		panic("Trees: OrderQueries requires Multiple")
	}
	return o
}

// Traits is the capability bundle a caller injects at tree construction to
// be notified of structural events, and from which the interval tree
// augmentation is built. Every method has a default no-op via NopTraits,
// so trees without augmentation pay nothing.
type Traits[T any] interface {
	// LeafInserted is called once, right after a new node is attached as a
	// leaf and colored red (rbtree) or placed (ziptree/energytree).
	LeafInserted(n *T)
	// RotatedLeft is called after a left rotation with n set to the node
	// that was rotated about — it is now the lower of the two.
	RotatedLeft(n *T)
	// RotatedRight is the mirror of RotatedLeft.
	RotatedRight(n *T)
	// DeletedBelow is called with the parent of the node that was spliced
	// out, after the splice but before any fixup.
	DeletedBelow(n *T)
	// Swapped is called after two nodes exchange tree positions, e.g. when
	// a two-child delete swaps the victim with its in-order successor.
	Swapped(a, b *T)
}

// NopTraits is the zero-cost default Traits implementation: every hook is
// empty. Embed it to implement only the hooks an augmentation cares about.
type NopTraits[T any] struct{}

func (NopTraits[T]) LeafInserted(*T) {}
func (NopTraits[T]) RotatedLeft(*T)  {}
func (NopTraits[T]) RotatedRight(*T) {}
func (NopTraits[T]) DeletedBelow(*T) {}
func (NopTraits[T]) Swapped(*T, *T)  {}
