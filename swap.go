package socow

import "github.com/rawbytedev/socow/internal/common"

// Swap exchanges the contents of v and other. Buffer references change hands
// but reference counts do not: each buffer is still held by exactly one of
// the two vectors.
//
// Inline elements are physically relocated, so Swap costs O(N) in the
// small size and O(1) once both sides are on the heap.
func (v *Vector[T, S]) Swap(other *Vector[T, S]) {
	if v == other {
		return
	}
	// lhs is the simpler side: inline before heap, then the shorter one.
	lhs, rhs := v, other
	if (!lhs.IsSmall() && rhs.IsSmall()) || (lhs.IsSmall() == rhs.IsSmall() && lhs.size > rhs.size) {
		lhs, rhs = rhs, lhs
	}
	switch {
	case lhs.IsSmall() && rhs.IsSmall():
		a, b := lhs.small(), rhs.small()
		n := lhs.size
		for i := 0; i < n; i++ {
			a[i], b[i] = b[i], a[i]
		}
		common.MoveInto(a[n:rhs.size], b[n:rhs.size])
	case lhs.IsSmall():
		buf := rhs.buf
		common.MoveInto(rhs.small(), lhs.small()[:lhs.size])
		rhs.buf = nil
		lhs.buf = buf
	default:
		lhs.buf, rhs.buf = rhs.buf, lhs.buf
	}
	lhs.size, rhs.size = rhs.size, lhs.size
}
