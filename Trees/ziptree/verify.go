package ziptree

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/intrusive-trees/Trees"
)

// VerifyIntegrity walks the whole tree and checks binary-search-tree
// ordering, parent-pointer consistency, and the rank max-heap property
// that zip/unzip rely on (a node's rank is at least as great as its left
// child's and strictly greater than its right child's — the same
// tie-breaking zip() applies). It never panics.
func (t *Tree[T]) VerifyIntegrity() (bool, error) {
	if t.root == nil {
		return true, nil
	}
	if err := t.verifyNode(t.root, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tree[T]) verifyNode(n, parent *T) error {
	if t.p(n) != parent {
		return fmt.Errorf("%w: parent pointer mismatch", Trees.ErrIntegrity)
	}
	if l := t.l(n); l != nil {
		if t.cmp(l, n) >= 0 {
			return fmt.Errorf("%w: left child out of order", Trees.ErrIntegrity)
		}
		if t.rnk(l) > t.rnk(n) {
			return fmt.Errorf("%w: left child rank violates heap order", Trees.ErrIntegrity)
		}
		if err := t.verifyNode(l, n); err != nil {
			return err
		}
	}
	if r := t.r(n); r != nil {
		if t.cmp(r, n) <= 0 {
			return fmt.Errorf("%w: right child out of order", Trees.ErrIntegrity)
		}
		if t.rnk(r) >= t.rnk(n) {
			return fmt.Errorf("%w: right child rank violates heap order", Trees.ErrIntegrity)
		}
		if err := t.verifyNode(r, n); err != nil {
			return err
		}
	}
	return nil
}

// DumpDot writes the tree as a Graphviz dot graph. label formats a node's
// payload for display.
func (t *Tree[T]) DumpDot(w io.Writer, label func(*T) string) error {
	if _, err := fmt.Fprintln(w, "digraph ziptree {"); err != nil {
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
	if _, err := fmt.Fprintf(w, "  %p [label=%q];\n", n, fmt.Sprintf("%s (rank %d)", label(n), t.rnk(n))); err != nil {
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
