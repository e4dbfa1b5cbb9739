package rbtree

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/intrusive-trees/Trees"
)

// VerifyIntegrity walks the whole tree and checks the binary-search-tree
// ordering, the red-black color invariants (red nodes have only black
// children, every root-to-leaf path has the same black height) and, when
// Trees.Options.Multiple is set, that the equality chain only links nodes
// that compare equal and that all nodes of an equal-keyed run share one
// chain. It
// never panics; it reports the first violation found via the returned
// error.
func (t *Tree[T]) VerifyIntegrity() (bool, error) {
	if t.root == nil {
		return true, nil
	}
	if t.col(t.root) != black {
		return false, fmt.Errorf("%w: root is not black", Trees.ErrIntegrity)
	}
	if _, err := t.verifyNode(t.root, nil); err != nil {
		return false, err
	}
	if t.opts.Multiple {
		if err := t.verifyChains(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// verifyNode checks the subtree rooted at n and returns its black height.
func (t *Tree[T]) verifyNode(n, parent *T) (int, error) {
	if t.p(n) != parent {
		return 0, fmt.Errorf("%w: parent pointer mismatch", Trees.ErrIntegrity)
	}
	var leftBH, rightBH int
	var err error
	if l := t.l(n); l != nil {
		if t.cmp(l, n) > 0 {
			return 0, fmt.Errorf("%w: left child out of order", Trees.ErrIntegrity)
		}
		if t.col(n) == red && t.col(l) == red {
			return 0, fmt.Errorf("%w: red node has red left child", Trees.ErrIntegrity)
		}
		if leftBH, err = t.verifyNode(l, n); err != nil {
			return 0, err
		}
	}
	if r := t.r(n); r != nil {
		if t.cmp(r, n) < 0 {
			return 0, fmt.Errorf("%w: right child out of order", Trees.ErrIntegrity)
		}
		if t.col(n) == red && t.col(r) == red {
			return 0, fmt.Errorf("%w: red node has red right child", Trees.ErrIntegrity)
		}
		if rightBH, err = t.verifyNode(r, n); err != nil {
			return 0, err
		}
	}
	if leftBH != rightBH {
		return 0, fmt.Errorf("%w: unequal black heights (%d vs %d)", Trees.ErrIntegrity, leftBH, rightBH)
	}
	if t.col(n) == black {
		return leftBH + 1, nil
	}
	return leftBH, nil
}

// verifyChains walks every node once in order and checks that its prev and
// next compare equal to it, that next points back to it through prev, and
// that in-order neighbors comparing equal have the same chain head.
func (t *Tree[T]) verifyChains() error {
	var last *T
	return t.walkInOrder(t.root, func(n *T) error {
		ln := t.link(n)
		if ln.prev != nil && t.cmp(ln.prev, n) != 0 {
			return fmt.Errorf("%w: chain prev does not compare equal", Trees.ErrIntegrity)
		}
		if ln.next != nil && t.cmp(ln.next, n) != 0 {
			return fmt.Errorf("%w: chain next does not compare equal", Trees.ErrIntegrity)
		}
		if ln.next != nil && t.link(ln.next).prev != n {
			return fmt.Errorf("%w: chain next/prev asymmetry", Trees.ErrIntegrity)
		}
		if last != nil && t.cmp(last, n) == 0 && t.ChainFirst(last) != t.ChainFirst(n) {
			return fmt.Errorf("%w: equal nodes on separate chains", Trees.ErrIntegrity)
		}
		last = n
		return nil
	})
}

func (t *Tree[T]) walkInOrder(n *T, f func(*T) error) error {
	if n == nil {
		return nil
	}
	if err := t.walkInOrder(t.l(n), f); err != nil {
		return err
	}
	if err := f(n); err != nil {
		return err
	}
	return t.walkInOrder(t.r(n), f)
}

// DumpDot writes the tree as a Graphviz dot graph, coloring nodes by their
// red-black color. label formats a node's payload for display.
func (t *Tree[T]) DumpDot(w io.Writer, label func(*T) string) error {
	if _, err := fmt.Fprintln(w, "digraph rbtree {"); err != nil {
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
	fillColor := "white"
	if t.col(n) == black {
		fillColor = "gray"
	}
	if _, err := fmt.Fprintf(w, "  %p [label=%q style=filled fillcolor=%s];\n", n, label(n), fillColor); err != nil {
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
