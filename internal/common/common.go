package common

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange  = errors.New("index out of range")
	ErrElementCopy = errors.New("element copy failed")
	ErrCapacity    = errors.New("invalid capacity")
)

// Cloner is implemented by element types whose copies can fail or must be deep.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Disposer is implemented by element types that need to know when a slot is destroyed.
type Disposer interface {
	Dispose()
}

// Grow returns the capacity a full container moves to. It always makes
// progress, including from a capacity of 0.
func Grow(capacity int) int {
	return 2*capacity + 1
}

// CopyValue copies x, going through Clone when T provides it.
func CopyValue[T any](x T) (T, error) {
	if c, ok := any(x).(Cloner[T]); ok {
		y, err := c.Clone()
		if err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %w", ErrElementCopy, err)
		}
		return y, nil
	}
	return x, nil
}

// Dispose runs the Dispose hook of x, if any.
func Dispose[T any](x T) {
	if d, ok := any(x).(Disposer); ok {
		d.Dispose()
	}
}

// DisposeRange destroys every slot of s and zeroes it.
func DisposeRange[T any](s []T) {
	var zero T
	for i := range s {
		Dispose(s[i])
		s[i] = zero
	}
}

// IsCloner reports whether copies of x go through Clone.
func IsCloner[T any](x T) bool {
	_, ok := any(x).(Cloner[T])
	return ok
}

// DropCopied clears s after its elements were copied elsewhere. Elements
// that were cloned are disposed; the others are the very values now held by
// the copy, so they are only cleared.
func DropCopied[T any](s []T) {
	var zero T
	for i := range s {
		if IsCloner(s[i]) {
			Dispose(s[i])
		}
		s[i] = zero
	}
}

// CopyInto copies src into the head of dst. On failure the copies already
// built in dst are dropped before the error is returned, so dst holds no
// live elements.
func CopyInto[T any](dst, src []T) error {
	for i := range src {
		x, err := CopyValue(src[i])
		if err != nil {
			DropCopied(dst[:i])
			return err
		}
		dst[i] = x
	}
	return nil
}

// MoveInto relocates src into the head of dst and zeroes the vacated source
// slots. Moves never call Clone or Dispose.
func MoveInto[T any](dst, src []T) {
	n := copy(dst, src)
	clear(src[:n])
}

// CheckIndex reports whether i addresses one of size live elements.
func CheckIndex(i, size int) error {
	if i < 0 || i >= size {
		return fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, i, size)
	}
	return nil
}

// CheckRange reports whether [first, last) is a valid range over size elements.
func CheckRange(first, last, size int) error {
	if first < 0 || last > size || first > last {
		return fmt.Errorf("%w: range [%d:%d] with length %d", ErrOutOfRange, first, last, size)
	}
	return nil
}
