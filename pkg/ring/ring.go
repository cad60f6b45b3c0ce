// Package ring implements a growable circular buffer with wrap-around
// indexing. Elements can be added and removed at both ends in O(1); inserts
// and erases in the middle shift whichever side is shorter.
package ring

import (
	"fmt"
	"iter"

	"github.com/rawbytedev/socow/internal/common"
)

var (
	// ErrOutOfRange is returned by positional mutators given a bad index.
	ErrOutOfRange = common.ErrOutOfRange
	// ErrElementCopy wraps the error of a failed Cloner.Clone.
	ErrElementCopy = common.ErrElementCopy
	// ErrCapacity is returned by Reserve for a negative capacity.
	ErrCapacity = common.ErrCapacity
)

// Buffer holds Len() elements starting at physical slot offset and wrapping
// past the end of data. The zero value is an empty buffer.
type Buffer[T any] struct {
	offset int
	size   int
	data   []T
}

// New returns an empty buffer.
func New[T any]() *Buffer[T] { return &Buffer[T]{} }

// Of builds a buffer holding values, filled to capacity.
func Of[T any](values ...T) *Buffer[T] {
	b := &Buffer[T]{data: make([]T, len(values)), size: len(values)}
	copy(b.data, values)
	return b
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the number of slots before the buffer has to grow.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return b.size == 0 }

// slot maps a logical index to its physical position.
func (b *Buffer[T]) slot(i int) int {
	j := b.offset + i
	if j >= len(b.data) {
		j -= len(b.data)
	}
	return j
}

// segments returns the live elements as the run up to the end of data and
// the wrapped run from its start.
func (b *Buffer[T]) segments() (head, tail []T) {
	end := b.offset + b.size
	if end <= len(b.data) {
		return b.data[b.offset:end], nil
	}
	return b.data[b.offset:], b.data[:end-len(b.data)]
}

// At returns the element at logical index i. It panics if i is out of range.
func (b *Buffer[T]) At(i int) T {
	if err := common.CheckIndex(i, b.size); err != nil {
		panic(err)
	}
	return b.data[b.slot(i)]
}

// Front and Back panic on an empty buffer.
func (b *Buffer[T]) Front() T { return b.At(0) }
func (b *Buffer[T]) Back() T  { return b.At(b.size - 1) }

// Ref returns a pointer to the element at i, valid until the buffer grows.
func (b *Buffer[T]) Ref(i int) (*T, error) {
	if err := common.CheckIndex(i, b.size); err != nil {
		return nil, err
	}
	return &b.data[b.slot(i)], nil
}

// Set replaces the element at i, disposing the previous value.
func (b *Buffer[T]) Set(i int, x T) error {
	p, err := b.Ref(i)
	if err != nil {
		return err
	}
	common.Dispose(*p)
	*p = x
	return nil
}

// All yields the elements front to back.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(i, b.data[b.slot(i)]) {
				return
			}
		}
	}
}

// Backward yields the elements back to front.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.size - 1; i >= 0; i-- {
			if !yield(i, b.data[b.slot(i)]) {
				return
			}
		}
	}
}

// PushBack appends x, growing to 2*Cap()+1 when full.
func (b *Buffer[T]) PushBack(x T) { b.insert(b.size, x) }

// PushFront prepends x, growing to 2*Cap()+1 when full.
func (b *Buffer[T]) PushFront(x T) { b.insert(0, x) }

// PopBack disposes and removes the last element.
func (b *Buffer[T]) PopBack() error {
	if b.size == 0 {
		return fmt.Errorf("%w: pop from empty buffer", ErrOutOfRange)
	}
	common.DisposeRange(b.data[b.slot(b.size-1):][:1])
	b.size--
	return nil
}

// PopFront disposes and removes the first element.
func (b *Buffer[T]) PopFront() error {
	if b.size == 0 {
		return fmt.Errorf("%w: pop from empty buffer", ErrOutOfRange)
	}
	common.DisposeRange(b.data[b.offset : b.offset+1])
	b.offset = b.slot(1)
	b.size--
	if b.size == 0 {
		b.offset = 0
	}
	return nil
}

// Insert places x before logical position pos.
func (b *Buffer[T]) Insert(pos int, x T) error {
	if pos < 0 || pos > b.size {
		return fmt.Errorf("%w: insert at %d with length %d", ErrOutOfRange, pos, b.size)
	}
	b.insert(pos, x)
	return nil
}

func (b *Buffer[T]) insert(pos int, x T) {
	if b.size == len(b.data) {
		b.relocate(common.Grow(len(b.data)), pos)
		b.data[pos] = x
		b.size++
		return
	}
	if pos < b.size-pos {
		// open a slot in front and shift the prefix down
		if b.offset == 0 {
			b.offset = len(b.data) - 1
		} else {
			b.offset--
		}
		b.size++
		for i := 0; i < pos; i++ {
			b.data[b.slot(i)] = b.data[b.slot(i+1)]
		}
	} else {
		b.size++
		for i := b.size - 1; i > pos; i-- {
			b.data[b.slot(i)] = b.data[b.slot(i-1)]
		}
	}
	b.data[b.slot(pos)] = x
}

// Erase removes the element at pos, shifting the shorter side over it.
func (b *Buffer[T]) Erase(pos int) error {
	if err := common.CheckIndex(pos, b.size); err != nil {
		return err
	}
	common.Dispose(b.data[b.slot(pos)])
	var zero T
	if pos < b.size-pos-1 {
		for i := pos; i > 0; i-- {
			b.data[b.slot(i)] = b.data[b.slot(i-1)]
		}
		b.data[b.offset] = zero
		b.offset = b.slot(1)
	} else {
		for i := pos; i < b.size-1; i++ {
			b.data[b.slot(i)] = b.data[b.slot(i+1)]
		}
		b.data[b.slot(b.size-1)] = zero
	}
	b.size--
	if b.size == 0 {
		b.offset = 0
	}
	return nil
}

// Reserve grows the buffer to hold at least n elements, straightening the
// wrapped contents.
func (b *Buffer[T]) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: reserve %d", ErrCapacity, n)
	}
	if n > len(b.data) {
		b.relocate(n, b.size)
	}
	return nil
}

// relocate moves the elements into a fresh array of capacity slots starting
// at slot 0, leaving a one-slot gap before logical position gap when
// gap < Len().
func (b *Buffer[T]) relocate(capacity, gap int) {
	data := make([]T, capacity)
	for i := 0; i < b.size; i++ {
		j := i
		if i >= gap {
			j++
		}
		data[j] = b.data[b.slot(i)]
	}
	b.data = data
	b.offset = 0
}

// Clear disposes every element, keeping the storage.
func (b *Buffer[T]) Clear() {
	head, tail := b.segments()
	common.DisposeRange(head)
	common.DisposeRange(tail)
	b.size = 0
	b.offset = 0
}

// Clone copies the elements, front first, into a buffer of the same capacity.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	c := &Buffer[T]{data: make([]T, len(b.data))}
	head, tail := b.segments()
	if err := common.CopyInto(c.data, head); err != nil {
		return nil, err
	}
	if err := common.CopyInto(c.data[len(head):], tail); err != nil {
		common.DropCopied(c.data[:len(head)])
		return nil, err
	}
	c.size = b.size
	return c, nil
}

// CopyFrom replaces b's contents with a copy of src. On error b is unchanged.
func (b *Buffer[T]) CopyFrom(src *Buffer[T]) error {
	if b == src {
		return nil
	}
	tmp, err := src.Clone()
	if err != nil {
		return err
	}
	b.Swap(tmp)
	tmp.Release()
	return nil
}

// MoveFrom takes src's storage, leaving src empty.
func (b *Buffer[T]) MoveFrom(src *Buffer[T]) {
	if b == src {
		return
	}
	b.Release()
	b.Swap(src)
}

// Swap exchanges the contents of b and other.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	*b, *other = *other, *b
}

// Release disposes every element and drops the storage.
func (b *Buffer[T]) Release() {
	b.Clear()
	b.data = nil
}
