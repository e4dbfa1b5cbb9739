package energytree

import (
	"math/rand"
	"slices"
	"testing"
)

var rg = rand.New(rand.NewSource(2))

type item struct {
	key int
	lnk Link[item]
}

func itemLink(n *item) *Link[item] { return &n.lnk }
func itemCmp(a, b *item) int       { return a.key - b.key }

func newTestTree() *Tree[item] {
	return New[item](itemLink, itemCmp, nil)
}

const testN = 4000

func TestTree_InsertFind(t *testing.T) {
	tree := newTestTree()
	count := make(map[int]int)
	for i := 0; i < testN; i++ {
		k := rg.Intn(testN)
		tree.Insert(&item{key: k})
		count[k]++
		if ok, err := tree.VerifyIntegrity(); !ok {
			t.Fatalf("integrity violated after insert of %d: %v", k, err)
		}
	}
	total := 0
	for _, c := range count {
		total += c
	}
	if tree.Size() != total {
		t.Fatalf("size is %d, want %d", tree.Size(), total)
	}
	for k := range count {
		if got := tree.Find(&item{key: k}); got == nil || got.key != k {
			t.Fatalf("Find(%d) failed", k)
		}
	}
}

func TestTree_InsertDelete(t *testing.T) {
	tree := newTestTree()
	var all []*item
	count := make(map[int]int)
	for i := 0; i < testN; i++ {
		k := rg.Intn(testN / 2)
		n := &item{key: k}
		tree.Insert(n)
		all = append(all, n)
		count[k]++
	}
	rg.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	for _, n := range all[:len(all)/2] {
		tree.Remove(n)
		count[n.key]--
		if ok, err := tree.VerifyIntegrity(); !ok {
			t.Fatalf("integrity violated after removing %d: %v", n.key, err)
		}
	}
	remaining := all[len(all)/2:]
	if tree.Size() != len(remaining) {
		t.Fatalf("size is %d, want %d", tree.Size(), len(remaining))
	}
	for k, c := range count {
		if c < 0 {
			t.Fatalf("removed more copies of %d than inserted", k)
		}
	}
}

func TestTree_InOrder(t *testing.T) {
	tree := newTestTree()
	var keys []int
	for i := 0; i < testN; i++ {
		k := rg.Intn(testN)
		tree.Insert(&item{key: k})
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var walked []int
	for n := tree.Begin(); n != nil; n = tree.Next(n) {
		walked = append(walked, n.key)
	}
	if !slices.Equal(walked, keys) {
		t.Fatalf("forward walk out of order")
	}

	var back []int
	for n := tree.RBegin(); n != nil; n = tree.Prev(n) {
		back = append(back, n.key)
	}
	slices.Reverse(back)
	if !slices.Equal(back, keys) {
		t.Fatalf("reverse walk out of order")
	}
}

func TestTree_RebuildsOnHeavyChurn(t *testing.T) {
	tree := newTestTree()
	var live []*item
	for i := 0; i < testN; i++ {
		switch {
		case len(live) == 0 || rg.Intn(3) != 0:
			n := &item{key: rg.Intn(testN)}
			tree.Insert(n)
			live = append(live, n)
		default:
			idx := rg.Intn(len(live))
			tree.Remove(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}
		if ok, err := tree.VerifyIntegrity(); !ok {
			t.Fatalf("integrity violated at step %d: %v", i, err)
		}
	}
	if tree.Size() != len(live) {
		t.Fatalf("size is %d, want %d", tree.Size(), len(live))
	}
}

func TestTree_WithAlpha(t *testing.T) {
	tree := New[item](itemLink, itemCmp, nil, WithAlpha(1, 3))
	for i := 0; i < 500; i++ {
		tree.Insert(&item{key: rg.Intn(500)})
	}
	if ok, err := tree.VerifyIntegrity(); !ok {
		t.Fatalf("integrity violated: %v", err)
	}
}
