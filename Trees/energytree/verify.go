package energytree

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/intrusive-trees/Trees"
)

// VerifyIntegrity walks the whole tree and checks binary-search-tree
// ordering, parent-pointer consistency, that every node's cached size
// equals one plus the sizes of its children, and that every node's energy
// stays within the rebuild threshold (energy <= alphaNum/alphaDen * size).
// It never panics.
func (t *Tree[T]) VerifyIntegrity() (bool, error) {
	if t.root == nil {
		return true, nil
	}
	if _, err := t.verifyNode(t.root, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tree[T]) verifyNode(n, parent *T) (uint64, error) {
	if t.p(n) != parent {
		return 0, fmt.Errorf("%w: parent pointer mismatch", Trees.ErrIntegrity)
	}
	var leftSize, rightSize uint64
	if l := t.l(n); l != nil {
		if t.cmp(l, n) > 0 {
			return 0, fmt.Errorf("%w: left child out of order", Trees.ErrIntegrity)
		}
		sz, err := t.verifyNode(l, n)
		if err != nil {
			return 0, err
		}
		leftSize = sz
	}
	if r := t.r(n); r != nil {
		if t.cmp(r, n) < 0 {
			return 0, fmt.Errorf("%w: right child out of order", Trees.ErrIntegrity)
		}
		sz, err := t.verifyNode(r, n)
		if err != nil {
			return 0, err
		}
		rightSize = sz
	}
	want := leftSize + rightSize + 1
	if t.link(n).size != want {
		return 0, fmt.Errorf("%w: cached size %d, want %d", Trees.ErrIntegrity, t.link(n).size, want)
	}
	if t.overEnergy(n) {
		return 0, fmt.Errorf("%w: energy %d exceeds %d/%d of size %d", Trees.ErrIntegrity,
			t.link(n).energy, t.cfg.alphaNum, t.cfg.alphaDen, t.link(n).size)
	}
	return want, nil
}

// DumpDot writes the tree as a Graphviz dot graph. label formats a node's
// payload for display.
func (t *Tree[T]) DumpDot(w io.Writer, label func(*T) string) error {
	if _, err := fmt.Fprintln(w, "digraph energytree {"); err != nil {
		return err
	}
	if err := t.dumpNode(w, t.root, label); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func (t *Tree[T]) dumpNode(w io.Writer, n *T, label func(*T) string) error {
	if n == nil {
		return nil
	}
	lc := t.link(n)
	if _, err := fmt.Fprintf(w, "  %p [label=%q];\n", n, fmt.Sprintf("%s (size %d, energy %d)", label(n), lc.size, lc.energy)); err != nil {
		return err
	}
	if l := t.l(n); l != nil {
		if _, err := fmt.Fprintf(w, "  %p -> %p;\n", n, l); err != nil {
			return err
		}
		if err := t.dumpNode(w, l, label); err != nil {
			return err
		}
	}
	if r := t.r(n); r != nil {
		if _, err := fmt.Fprintf(w, "  %p -> %p;\n", n, r); err != nil {
			return err
		}
		if err := t.dumpNode(w, r, label); err != nil {
			return err
		}
	}
	return nil
}
