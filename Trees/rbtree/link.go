// Package rbtree implements an intrusive red-black tree: a binary search
// tree balanced by node color with bottom-up insert/delete fixup, in the style of
// CLRS but following the folded/straight case naming of the reference this
// module was built against. The tree never allocates or owns node storage;
// callers embed Link in their own struct and hand the tree an accessor that
// reaches into it.
package rbtree

type color uint8

const (
	red color = iota
	black
)

// Link is the structural state a red-black tree needs per node. Embed it
// in the struct you want to store, and pass an accessor that returns its
// address to New. prev/next thread the equality chain; they sit unused
// when Trees.Options.Multiple is off, since Go has no way to size a field
// out of a struct at runtime.
type Link[T any] struct {
	left, right, parent *T
	color                color
	prev, next           *T
}

// Accessor reaches into a caller-owned T and returns the embedded Link.
type Accessor[T any] func(*T) *Link[T]

// Comparator orders two nodes by whatever key they carry. Zero means equal.
type Comparator[T any] func(a, b *T) int
