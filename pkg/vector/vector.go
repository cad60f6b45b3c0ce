// Package vector is a plain single-owner dynamic array with the same growth
// policy and element hooks as socow.Vector, without inline storage or sharing.
package vector

import (
	"fmt"
	"iter"

	"github.com/rawbytedev/socow/internal/common"
)

var (
	// ErrOutOfRange is returned by positional mutators given a bad index or range.
	ErrOutOfRange = common.ErrOutOfRange
	// ErrElementCopy wraps the error of a failed Cloner.Clone.
	ErrElementCopy = common.ErrElementCopy
	// ErrCapacity is returned by Reserve for a negative capacity.
	ErrCapacity = common.ErrCapacity
)

// Vector owns a heap array of Cap() slots, the first Len() of which are live.
// The zero value is an empty vector with no allocation.
type Vector[T any] struct {
	size int
	data []T // len(data) == capacity
}

// New returns an empty vector.
func New[T any]() *Vector[T] { return &Vector[T]{} }

// Of builds a vector of exactly len(values) capacity.
func Of[T any](values ...T) *Vector[T] {
	v := &Vector[T]{data: make([]T, len(values)), size: len(values)}
	copy(v.data, values)
	return v
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the number of slots of the current array.
func (v *Vector[T]) Cap() int { return len(v.data) }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// At, Front and Back panic if the position is out of range, like slice
// indexing.
func (v *Vector[T]) At(i int) T { return v.data[:v.size][i] }
func (v *Vector[T]) Front() T   { return v.At(0) }
func (v *Vector[T]) Back() T    { return v.At(v.size - 1) }

// View returns the live elements; it is invalidated by the next reallocation.
func (v *Vector[T]) View() []T { return v.data[:v.size:v.size] }

// All yields index/value pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.data[:v.size] {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Ref returns a pointer to the element at i, valid until the next reallocation.
func (v *Vector[T]) Ref(i int) (*T, error) {
	if err := common.CheckIndex(i, v.size); err != nil {
		return nil, err
	}
	return &v.data[i], nil
}

// Set replaces the element at i, disposing the previous value.
func (v *Vector[T]) Set(i int, x T) error {
	p, err := v.Ref(i)
	if err != nil {
		return err
	}
	common.Dispose(*p)
	*p = x
	return nil
}

// PushBack is amortized O(1). When full, the elements go to a 2*Cap()+1
// array which replaces the old one only after every Clone succeeded.
func (v *Vector[T]) PushBack(x T) error {
	if v.size < len(v.data) {
		v.data[v.size] = x
		v.size++
		return nil
	}
	tmp, err := v.copyReserve(common.Grow(len(v.data)))
	if err != nil {
		return err
	}
	tmp.data[tmp.size] = x
	tmp.size++
	v.adopt(tmp)
	return nil
}

// PopBack disposes and removes the last element.
func (v *Vector[T]) PopBack() error {
	if v.size == 0 {
		return fmt.Errorf("%w: pop from empty vector", ErrOutOfRange)
	}
	common.DisposeRange(v.data[v.size-1 : v.size])
	v.size--
	return nil
}

// Insert places x before pos and rotates it into place with adjacent swaps.
// When the array is full the rotation happens on the new copy, so a failed
// copy leaves v unchanged.
func (v *Vector[T]) Insert(pos int, x T) error {
	if pos < 0 || pos > v.size {
		return fmt.Errorf("%w: insert at %d with length %d", ErrOutOfRange, pos, v.size)
	}
	if err := v.PushBack(x); err != nil {
		return err
	}
	s := v.data[:v.size]
	for i := pos + 1; i < len(s); i++ {
		s[pos], s[i] = s[i], s[pos]
	}
	return nil
}

// Erase removes the element at pos.
func (v *Vector[T]) Erase(pos int) error {
	if err := common.CheckIndex(pos, v.size); err != nil {
		return err
	}
	return v.EraseRange(pos, pos+1)
}

// EraseRange shifts the survivors over [first, last) and disposes the tail.
func (v *Vector[T]) EraseRange(first, last int) error {
	if err := common.CheckRange(first, last, v.size); err != nil {
		return err
	}
	s := v.data[:v.size]
	n := last - first
	for i := first; i+n < len(s); i++ {
		s[i], s[i+n] = s[i+n], s[i]
	}
	common.DisposeRange(s[len(s)-n:])
	v.size -= n
	return nil
}

// Clear disposes every element, keeping the array.
func (v *Vector[T]) Clear() {
	common.DisposeRange(v.data[:v.size])
	v.size = 0
}

// Reserve grows the array to at least n slots. On error v is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: reserve %d", ErrCapacity, n)
	}
	if n <= len(v.data) {
		return nil
	}
	tmp, err := v.copyReserve(n)
	if err != nil {
		return err
	}
	v.adopt(tmp)
	return nil
}

// ShrinkToFit moves the elements into an array of exactly Len() slots.
// Moving cannot fail, so no copies are made.
func (v *Vector[T]) ShrinkToFit() {
	if v.size == len(v.data) {
		return
	}
	data := make([]T, v.size)
	common.MoveInto(data, v.data[:v.size])
	v.data = data
}

// Clone copies every element into a new vector of exactly Len() capacity.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.copyReserve(v.size)
}

// CopyFrom replaces v's contents with a copy of src. On error v is unchanged.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	tmp, err := src.Clone()
	if err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Release()
	return nil
}

// MoveFrom takes src's array, leaving src empty.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Release()
	v.Swap(src)
}

// Swap exchanges the contents of v and other.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.size, other.size = other.size, v.size
	v.data, other.data = other.data, v.data
}

// Release disposes every element and drops the array.
func (v *Vector[T]) Release() {
	v.Clear()
	v.data = nil
}

// copyReserve builds a vector of capacity slots holding copies of v's
// elements. Elements without a Clone method are carried over as they are.
func (v *Vector[T]) copyReserve(capacity int) (*Vector[T], error) {
	tmp := &Vector[T]{data: make([]T, capacity)}
	if err := common.CopyInto(tmp.data, v.data[:v.size]); err != nil {
		return nil, err
	}
	tmp.size = v.size
	return tmp, nil
}

// adopt replaces v's storage with tmp's, built by copyReserve. Originals
// that were cloned are destroyed; the rest moved into tmp untouched.
func (v *Vector[T]) adopt(tmp *Vector[T]) {
	old := v.data[:v.size]
	v.Swap(tmp)
	common.DropCopied(old)
}
