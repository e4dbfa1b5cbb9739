package intervaltree

import "fmt"

// VerifyIntegrity checks the underlying rbtree's red-black invariants and
// that every node's cached maximum upper bound matches its own upper bound
// and its children's cached maxima.
func (t *Tree[T, K]) VerifyIntegrity() (bool, error) {
	if ok, err := t.rb.VerifyIntegrity(); !ok {
		return false, err
	}
	if t.rb.Empty() {
		return true, nil
	}
	if err := t.verifyMaxima(t.rb.Root()); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tree[T, K]) verifyMaxima(n *T) error {
	want := t.bounds.Upper(n)
	if l := t.rb.Left(n); l != nil {
		if err := t.verifyMaxima(l); err != nil {
			return err
		}
		if v := *t.maxUp(l); v > want {
			want = v
		}
	}
	if r := t.rb.Right(n); r != nil {
		if err := t.verifyMaxima(r); err != nil {
			return err
		}
		if v := *t.maxUp(r); v > want {
			want = v
		}
	}
	if got := *t.maxUp(n); got != want {
		return fmt.Errorf("maxUpper cached as %v, want %v", got, want)
	}
	return nil
}
