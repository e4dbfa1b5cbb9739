// Package comparisons cross-checks rbtree against a few well-known
// ordered-container implementations and benchmarks them side by side,
// using a shared setup function plus one Benchmark<Op><Impl> function per
// implementation.
package comparisons

import (
	"math/rand"
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"

	"github.com/g-m-twostay/intrusive-trees/Trees/rbtree"
)

const benchmarkItemCount = 4096

type rbItem struct {
	key int
	lnk rbtree.Link[rbItem]
}

func rbLink(n *rbItem) *rbtree.Link[rbItem] { return &n.lnk }
func rbCmp(a, b *rbItem) int                { return a.key - b.key }

func newRBTree() *rbtree.Tree[rbItem] {
	return rbtree.New[rbItem](rbLink, rbCmp, nil)
}

// llrbItem adapts int to GoLLRB's pre-generics Item interface.
type llrbItem int

func (a llrbItem) Less(other llrb.Item) bool { return a < other.(llrbItem) }

func setupOrdering() []int {
	rg := rand.New(rand.NewSource(4))
	keys := make([]int, benchmarkItemCount)
	for i := range keys {
		keys[i] = i
	}
	rg.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}

// TestTree_AgreesWithReferenceImplementations inserts and removes the same
// sequence of keys into rbtree, GoLLRB, google/btree, and gods'
// redblacktree, checks that all four agree on membership and ordering once
// every key is inserted, and then removes half the keys and checks that
// rbtree and GoLLRB no longer hold them.
func TestTree_AgreesWithReferenceImplementations(t *testing.T) {
	keys := setupOrdering()

	ours := newRBTree()
	ourNodes := make(map[int]*rbItem, len(keys))

	ref := llrb.New()
	bt := btree.NewG[int](32, func(a, b int) bool { return a < b })
	gt := redblacktree.NewWithIntComparator()

	for _, k := range keys {
		n := &rbItem{key: k}
		ours.Insert(n)
		ourNodes[k] = n
		ref.InsertNoReplace(llrbItem(k))
		bt.ReplaceOrInsert(k)
		gt.Put(k, k)
	}

	if ok, err := ours.VerifyIntegrity(); !ok {
		t.Fatalf("rbtree integrity violated: %v", err)
	}

	for _, k := range keys {
		if ours.Find(&rbItem{key: k}) == nil {
			t.Fatalf("rbtree missing key %d", k)
		}
		if !ref.Has(llrbItem(k)) {
			t.Fatalf("GoLLRB missing key %d", k)
		}
		if _, ok := bt.Get(k); !ok {
			t.Fatalf("google/btree missing key %d", k)
		}
		if _, ok := gt.Get(k); !ok {
			t.Fatalf("gods redblacktree missing key %d", k)
		}
	}

	var oursOrder, refOrder, btOrder, gtOrder []int
	for n := ours.Begin(); n != nil; n = ours.Next(n) {
		oursOrder = append(oursOrder, n.key)
	}
	ref.AscendGreaterOrEqual(ref.Min(), func(i llrb.Item) bool {
		refOrder = append(refOrder, int(i.(llrbItem)))
		return true
	})
	bt.Ascend(func(v int) bool {
		btOrder = append(btOrder, v)
		return true
	})
	for _, k := range gt.Keys() {
		gtOrder = append(gtOrder, k.(int))
	}

	if !equalInts(oursOrder, refOrder) {
		t.Fatalf("rbtree order disagrees with GoLLRB")
	}
	if !equalInts(oursOrder, btOrder) {
		t.Fatalf("rbtree order disagrees with google/btree")
	}
	if !equalInts(oursOrder, gtOrder) {
		t.Fatalf("rbtree order disagrees with gods redblacktree")
	}

	half := keys[:len(keys)/2]
	for _, k := range half {
		ours.Remove(ourNodes[k])
		ref.Delete(llrbItem(k))
		bt.Delete(k)
		gt.Remove(k)
	}
	if ok, err := ours.VerifyIntegrity(); !ok {
		t.Fatalf("rbtree integrity violated after removes: %v", err)
	}
	for _, k := range half {
		if ours.Find(&rbItem{key: k}) != nil {
			t.Fatalf("rbtree still has removed key %d", k)
		}
		if ref.Has(llrbItem(k)) {
			t.Fatalf("GoLLRB still has removed key %d", k)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func BenchmarkInsertRBTree(b *testing.B) {
	keys := setupOrdering()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := newRBTree()
		nodes := make([]rbItem, len(keys))
		for j, k := range keys {
			nodes[j].key = k
			tree.Insert(&nodes[j])
		}
	}
}

func BenchmarkInsertGoLLRB(b *testing.B) {
	keys := setupOrdering()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := llrb.New()
		for _, k := range keys {
			tree.InsertNoReplace(llrbItem(k))
		}
	}
}

func BenchmarkInsertGoogleBTree(b *testing.B) {
	keys := setupOrdering()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := btree.NewG[int](32, func(a, c int) bool { return a < c })
		for _, k := range keys {
			tree.ReplaceOrInsert(k)
		}
	}
}

func BenchmarkInsertGodsRedBlackTree(b *testing.B) {
	keys := setupOrdering()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := redblacktree.NewWith(utils.IntComparator)
		for _, k := range keys {
			tree.Put(k, k)
		}
	}
}

func BenchmarkFindRBTree(b *testing.B) {
	keys := setupOrdering()
	tree := newRBTree()
	nodes := make([]rbItem, len(keys))
	for j, k := range keys {
		nodes[j].key = k
		tree.Insert(&nodes[j])
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, k := range keys {
			if tree.Find(&rbItem{key: k}) == nil {
				b.Fatal("missing key")
			}
		}
	}
}

func BenchmarkFindGoogleBTree(b *testing.B) {
	keys := setupOrdering()
	tree := btree.NewG[int](32, func(a, c int) bool { return a < c })
	for _, k := range keys {
		tree.ReplaceOrInsert(k)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, k := range keys {
			if _, ok := tree.Get(k); !ok {
				b.Fatal("missing key")
			}
		}
	}
}
