package socow

import (
	"iter"
	"unsafe"

	"github.com/rawbytedev/socow/internal/common"
)

// Inline is the set of array types usable as inline storage. The array length
// is the small size of the vector.
type Inline[T any] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[8]T | ~[16]T | ~[32]T | ~[64]T
}

// buffer is the heap storage shared by vectors that were copied from one another.
type buffer[T any] struct {
	capacity int
	refs     int
	data     []T // len(data) == capacity
}

// noCopy lets go vet's copylocks check flag vectors copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Vector is a small-buffer, copy-on-write sequence of T. S fixes the inline
// capacity, e.g. Vector[int, [4]int] keeps up to 4 ints inline.
//
// The zero value is an empty inline vector ready to use.
type Vector[T any, S Inline[T]] struct {
	noCopy noCopy

	size   int
	buf    *buffer[T] // nil while inline
	inline S
}

// New returns an empty inline vector.
func New[T any, S Inline[T]]() *Vector[T, S] {
	return &Vector[T, S]{}
}

// Of builds a vector holding values in order.
func Of[S Inline[T], T any](values ...T) *Vector[T, S] {
	v := New[T, S]()
	if len(values) > len(v.inline) {
		v.allocate(len(values))
	}
	copy(v.slots(), values)
	v.size = len(values)
	return v
}

// Collect builds a vector from the values of seq.
func Collect[S Inline[T], T any](seq iter.Seq[T]) *Vector[T, S] {
	v := New[T, S]()
	for x := range seq {
		// an exclusive vector only moves on growth, so this cannot fail
		_ = v.PushBack(x)
	}
	return v
}

// Len returns the number of elements.
func (v *Vector[T, S]) Len() int { return v.size }

// Cap returns the number of elements the current storage can hold.
func (v *Vector[T, S]) Cap() int {
	if v.buf == nil {
		return len(v.inline)
	}
	return v.buf.capacity
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T, S]) Empty() bool { return v.size == 0 }

// IsSmall reports whether the elements are stored inline.
func (v *Vector[T, S]) IsSmall() bool { return v.buf == nil }

// Shared reports whether the buffer is referenced by more than one vector.
func (v *Vector[T, S]) Shared() bool { return v.shared() }

// RefCount returns the reference count of the heap buffer, or 0 while inline.
func (v *Vector[T, S]) RefCount() int {
	if v.buf == nil {
		return 0
	}
	return v.buf.refs
}

// Aliases reports whether v and other point at the same heap buffer.
func (v *Vector[T, S]) Aliases(other *Vector[T, S]) bool {
	return v.buf != nil && v.buf == other.buf
}

// At returns the element at i without unsharing. It panics if i is out of range.
func (v *Vector[T, S]) At(i int) T {
	return v.live()[i]
}

// Front returns the first element. It panics on an empty vector.
func (v *Vector[T, S]) Front() T {
	return v.live()[0]
}

// Back returns the last element. It panics on an empty vector.
func (v *Vector[T, S]) Back() T {
	return v.live()[v.size-1]
}

// View returns the live elements without unsharing. The slice may alias a
// buffer shared with other vectors and must not be written through; it is
// invalidated by the next mutation of v.
func (v *Vector[T, S]) View() []T {
	return v.live()[:v.size:v.size]
}

// All yields index/value pairs in order. It never unshares.
func (v *Vector[T, S]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.live() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Ref returns a pointer to the element at i. It unshares first, since the
// caller may write through the pointer.
func (v *Vector[T, S]) Ref(i int) (*T, error) {
	if err := common.CheckIndex(i, v.size); err != nil {
		return nil, err
	}
	if err := v.unshare(); err != nil {
		return nil, err
	}
	return &v.slots()[i], nil
}

// Data returns the live elements for writing, unsharing first.
func (v *Vector[T, S]) Data() ([]T, error) {
	if err := v.unshare(); err != nil {
		return nil, err
	}
	return v.live()[:v.size:v.size], nil
}

// Set replaces the element at i, disposing the previous value.
func (v *Vector[T, S]) Set(i int, x T) error {
	p, err := v.Ref(i)
	if err != nil {
		return err
	}
	common.Dispose(*p)
	*p = x
	return nil
}

// Clone returns a copy of v. A shared or promoted vector is copied in O(1) by
// taking another reference to its buffer; an inline vector copies its
// elements.
func (v *Vector[T, S]) Clone() (*Vector[T, S], error) {
	c := New[T, S]()
	if err := c.copyConstruct(v); err != nil {
		return nil, err
	}
	return c, nil
}

// CopyFrom replaces the contents of v with a copy of src. On error v is unchanged.
func (v *Vector[T, S]) CopyFrom(src *Vector[T, S]) error {
	if v == src {
		return nil
	}
	var tmp Vector[T, S]
	if err := tmp.copyConstruct(src); err != nil {
		return err
	}
	v.Clear()
	v.Swap(&tmp)
	tmp.Release()
	return nil
}

// MoveFrom transfers the contents of src to v, leaving src empty and inline.
func (v *Vector[T, S]) MoveFrom(src *Vector[T, S]) {
	if v == src {
		return
	}
	v.Clear()
	v.Swap(src)
	// src now holds v's emptied storage
	src.Release()
}

// Release destroys v's contents: a shared buffer loses one reference and is
// freed, disposing its elements, when that was the last one. v is left empty
// and inline and may be reused.
func (v *Vector[T, S]) Release() {
	if v.buf == nil {
		common.DisposeRange(v.live())
		v.size = 0
		return
	}
	v.buf.refs--
	if v.buf.refs == 0 {
		common.DisposeRange(v.live())
		v.buf.data = nil
	}
	v.buf = nil
	v.size = 0
}

func (v *Vector[T, S]) copyConstruct(src *Vector[T, S]) error {
	if src.buf != nil {
		src.buf.refs++
		v.buf = src.buf
		v.size = src.size
		return nil
	}
	if err := common.CopyInto(v.small(), src.live()); err != nil {
		return err
	}
	v.size = src.size
	return nil
}

func (v *Vector[T, S]) small() []T {
	return unsafe.Slice(&v.inline[0], len(v.inline))
}

// slots returns every slot of the current storage, live or not.
func (v *Vector[T, S]) slots() []T {
	if v.buf == nil {
		return v.small()
	}
	return v.buf.data
}

func (v *Vector[T, S]) live() []T {
	return v.slots()[:v.size]
}
