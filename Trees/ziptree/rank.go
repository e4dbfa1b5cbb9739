package ziptree

import (
	"math/bits"
	_ "runtime"
	"unsafe"
)

//go:linkname memhash64 runtime.memhash64
//go:noescape
func memhash64(p unsafe.Pointer, seed uint) uint

//go:linkname cheaprandn runtime.cheaprandn
//go:nosplit
func cheaprandn(n uint32) uint32

// RankSource supplies the rank a node balances on. It is read exactly
// once, right before the node is attached, and cached in its Link — so an
// implementation that derives the rank from the node's key only pays that
// cost once even though the tree consults the cached value many times
// afterward during zips and unzips.
type RankSource[T any] func(n *T) uint8

// HashRank builds a RankSource from the trailing-zero count of hash(n),
// which reproduces the geometric distribution a zip tree needs for its
// expected O(log n) height without drawing from a random source at all —
// two equal keys always hash to the same rank. coefficient and modulus
// apply universal hashing the same way the reference this package was
// built against exposes it (h = (x*coefficient) % modulus); pass 0 for
// either argument to skip universalizing.
func HashRank[T any](hash func(*T) uint64, coefficient, modulus uint64) RankSource[T] {
	return func(n *T) uint8 {
		x := hash(n)
		if coefficient != 0 && modulus != 0 {
			x = (x * coefficient) % modulus
		}
		if x == 0 {
			return 63
		}
		if tz := bits.TrailingZeros64(x); tz < 255 {
			return uint8(tz)
		}
		return 255
	}
}

// MemHash64 hashes the leading 8 bytes of *n's memory representation with
// the runtime's own 64-bit hash primitive, runtime.memhash64, reached via
// the go:linkname declaration above. It fits node types whose comparison key is an
// 8-byte scalar in the first field; a string or slice key should instead
// be hashed through its own accessor.
func MemHash64[T any](seed uint) func(n *T) uint64 {
	return func(n *T) uint64 {
		return uint64(memhash64(unsafe.Pointer(n), seed))
	}
}

// GeometricRank builds a RankSource that draws a fresh rank by flipping
// coins against the runtime's scheduler-grade random source, independent
// of the node's key, so the tree balances like a random BST rather than
// depending on how keys happen to hash.
func GeometricRank[T any]() RankSource[T] {
	return func(*T) uint8 {
		var rnk uint8
		for cheaprandn(2) == 0 {
			rnk++
		}
		return rnk
	}
}
