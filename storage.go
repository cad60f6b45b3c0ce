package socow

import "github.com/rawbytedev/socow/internal/common"

// Storage transitions. Every rebuild follows the same shape: allocate a
// temporary vector, populate it from v (moving when v owns its elements
// alone, copying when the buffer is shared), and adopt it only once it is
// complete. A failed copy leaves v as it was.

func (v *Vector[T, S]) shared() bool {
	return v.buf != nil && v.buf.refs > 1
}

// allocate gives an empty vector storage for capacity elements: inline when
// it fits, otherwise a fresh buffer holding one reference.
func (v *Vector[T, S]) allocate(capacity int) {
	if capacity <= len(v.inline) {
		return
	}
	v.buf = &buffer[T]{
		capacity: capacity,
		refs:     1,
		data:     make([]T, capacity),
	}
}

// transfer fills dst with v's live elements [lo, hi).
func (v *Vector[T, S]) transfer(dst []T, lo, hi int) error {
	src := v.live()[lo:hi]
	if v.shared() {
		return common.CopyInto(dst, src)
	}
	common.MoveInto(dst, src)
	return nil
}

// detach drops v's storage after its elements were moved or copied out.
// Nothing is disposed: moved slots are already empty and copied ones still
// belong to the other sharers.
func (v *Vector[T, S]) detach() {
	if v.buf != nil {
		v.buf.refs--
		if v.buf.refs == 0 {
			v.buf.data = nil
		}
		v.buf = nil
	} else {
		clear(v.small()[:v.size])
	}
	v.size = 0
}

// adopt commits a fully built temporary.
func (v *Vector[T, S]) adopt(tmp *Vector[T, S]) {
	v.detach()
	v.Swap(tmp)
}

// expand rebuilds v with exactly capacity slots.
func (v *Vector[T, S]) expand(capacity int) error {
	var tmp Vector[T, S]
	tmp.allocate(capacity)
	if err := v.transfer(tmp.slots(), 0, v.size); err != nil {
		tmp.Release()
		return err
	}
	tmp.size = v.size
	v.adopt(&tmp)
	return nil
}

// unshare gives v a private copy of a buffer other vectors still reference.
func (v *Vector[T, S]) unshare() error {
	if !v.shared() {
		return nil
	}
	return v.expand(v.Cap())
}
