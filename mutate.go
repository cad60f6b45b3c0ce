package socow

import (
	"fmt"

	"github.com/rawbytedev/socow/internal/common"
)

// PushBack appends x. With spare room in private storage it is O(1); otherwise
// the vector is rebuilt with 2*Cap()+1 slots (or its current capacity when it
// is merely shared). On error v is unchanged.
func (v *Vector[T, S]) PushBack(x T) error {
	if v.size < v.Cap() && !v.shared() {
		v.slots()[v.size] = x
		v.size++
		return nil
	}
	var tmp Vector[T, S]
	tmp.allocate(v.nextCap())
	dst := tmp.slots()
	if err := v.transfer(dst, 0, v.size); err != nil {
		tmp.Release()
		return err
	}
	dst[v.size] = x
	tmp.size = v.size + 1
	v.adopt(&tmp)
	return nil
}

// PopBack removes the last element. A shared vector is rebuilt privately
// without it so the other sharers keep theirs.
func (v *Vector[T, S]) PopBack() error {
	if v.size == 0 {
		return fmt.Errorf("%w: pop from empty vector", ErrOutOfRange)
	}
	if v.shared() {
		return v.rebuildWithout(v.size-1, v.size)
	}
	s := v.slots()
	common.Dispose(s[v.size-1])
	var zero T
	s[v.size-1] = zero
	v.size--
	return nil
}

// Insert places x before position pos (0 <= pos <= Len()), shifting the
// following elements right. Either the insert fully succeeds or v is left as
// it was.
func (v *Vector[T, S]) Insert(pos int, x T) error {
	if pos < 0 || pos > v.size {
		return fmt.Errorf("%w: insert at %d with length %d", ErrOutOfRange, pos, v.size)
	}
	if v.size < v.Cap() && !v.shared() {
		v.slots()[v.size] = x
		v.size++
		s := v.live()
		for i := pos + 1; i < len(s); i++ {
			s[pos], s[i] = s[i], s[pos]
		}
		return nil
	}
	var tmp Vector[T, S]
	tmp.allocate(v.nextCap())
	dst := tmp.slots()
	if err := v.transfer(dst[:pos], 0, pos); err != nil {
		tmp.Release()
		return err
	}
	if err := v.transfer(dst[pos+1:], pos, v.size); err != nil {
		common.DropCopied(dst[:pos])
		tmp.Release()
		return err
	}
	dst[pos] = x
	tmp.size = v.size + 1
	v.adopt(&tmp)
	return nil
}

// Erase removes the element at pos.
func (v *Vector[T, S]) Erase(pos int) error {
	if err := common.CheckIndex(pos, v.size); err != nil {
		return err
	}
	return v.EraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last), keeping the order of the
// others.
func (v *Vector[T, S]) EraseRange(first, last int) error {
	if err := common.CheckRange(first, last, v.size); err != nil {
		return err
	}
	if first == last {
		return nil
	}
	if v.shared() {
		return v.rebuildWithout(first, last)
	}
	s := v.live()
	n := last - first
	for i := first; i+n < len(s); i++ {
		s[i], s[i+n] = s[i+n], s[i]
	}
	common.DisposeRange(s[len(s)-n:])
	v.size -= n
	return nil
}

// Clear removes every element. A shared vector just lets go of its buffer
// and returns to inline storage.
func (v *Vector[T, S]) Clear() {
	if v.shared() {
		v.detach()
		return
	}
	common.DisposeRange(v.live())
	v.size = 0
}

// Reserve makes room for at least n elements. A shared vector asked for more
// than Len() slots is given private storage even when Cap() already suffices.
func (v *Vector[T, S]) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: reserve %d", ErrCapacity, n)
	}
	if n > v.Cap() || (n > v.size && v.shared()) {
		return v.expand(n)
	}
	return nil
}

// ShrinkToFit reallocates to exactly Len() slots, moving back inline when
// the elements fit.
func (v *Vector[T, S]) ShrinkToFit() error {
	if v.IsSmall() || v.size == v.Cap() {
		return nil
	}
	return v.expand(v.size)
}

func (v *Vector[T, S]) nextCap() int {
	if v.size == v.Cap() {
		return common.Grow(v.Cap())
	}
	return v.Cap()
}

// rebuildWithout replaces a shared buffer with a private copy of every
// element outside [first, last).
func (v *Vector[T, S]) rebuildWithout(first, last int) error {
	var tmp Vector[T, S]
	tmp.allocate(v.Cap())
	dst := tmp.slots()
	src := v.live()
	if err := common.CopyInto(dst, src[:first]); err != nil {
		tmp.Release()
		return err
	}
	if err := common.CopyInto(dst[first:], src[last:]); err != nil {
		common.DropCopied(dst[:first])
		tmp.Release()
		return err
	}
	tmp.size = v.size - (last - first)
	v.adopt(&tmp)
	return nil
}
