package ziptree

import (
	"math/rand"
	"slices"
	"testing"
)

var rg = rand.New(rand.NewSource(1))

type item struct {
	key int
	lnk Link[item]
}

func itemLink(n *item) *Link[item] { return &n.lnk }
func itemCmp(a, b *item) int       { return a.key - b.key }

func newTestTree() *Tree[item] {
	return New[item](itemLink, itemCmp, GeometricRank[item](), nil)
}

const testN = 4000

func TestTree_InsertFind(t *testing.T) {
	tree := newTestTree()
	content := make(map[int]bool)
	for i := 0; i < testN; i++ {
		k := rg.Intn(2 * testN)
		ok := tree.Insert(&item{key: k})
		if ok == content[k] {
			t.Fatalf("Insert(%d) returned %v, already present %v", k, ok, content[k])
		}
		content[k] = true
		if ok, err := tree.VerifyIntegrity(); !ok {
			t.Fatalf("integrity violated after insert of %d: %v", k, err)
		}
	}
	if tree.Size() != len(content) {
		t.Fatalf("size is %d, want %d", tree.Size(), len(content))
	}
	for k := range content {
		if got := tree.Find(&item{key: k}); got == nil || got.key != k {
			t.Fatalf("Find(%d) failed", k)
		}
	}
}

func TestTree_InsertDelete(t *testing.T) {
	tree := newTestTree()
	content := make(map[int]*item)
	for i := 0; i < testN; i++ {
		k := rg.Intn(2 * testN)
		if _, ok := content[k]; ok {
			continue
		}
		n := &item{key: k}
		tree.Insert(n)
		content[k] = n
	}
	var all []*item
	for _, n := range content {
		all = append(all, n)
	}
	rg.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	for _, n := range all[:len(all)/2] {
		tree.Remove(n)
		delete(content, n.key)
		if ok, err := tree.VerifyIntegrity(); !ok {
			t.Fatalf("integrity violated after removing %d: %v", n.key, err)
		}
	}
	if tree.Size() != len(content) {
		t.Fatalf("size is %d, want %d", tree.Size(), len(content))
	}
	for k := range content {
		if got := tree.Find(&item{key: k}); got == nil {
			t.Fatalf("lost key %d after delete pass", k)
		}
	}
}

func TestTree_InOrder(t *testing.T) {
	tree := newTestTree()
	var keys []int
	for i := 0; i < testN; i++ {
		k := rg.Intn(2 * testN)
		n := &item{key: k}
		if tree.Insert(n) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var walked []int
	for n := tree.Begin(); n != nil; n = tree.Next(n) {
		walked = append(walked, n.key)
	}
	if !slices.Equal(walked, keys) {
		t.Fatalf("forward walk out of order")
	}
}

func TestTree_HashRank(t *testing.T) {
	tree := New[item](itemLink, itemCmp, HashRank[item](MemHash64[item](1), 1103515245, 0), nil)
	for i := 0; i < 500; i++ {
		tree.Insert(&item{key: i})
	}
	if ok, err := tree.VerifyIntegrity(); !ok {
		t.Fatalf("integrity violated: %v", err)
	}
	if tree.Size() != 500 {
		t.Fatalf("size is %d, want 500", tree.Size())
	}
}
