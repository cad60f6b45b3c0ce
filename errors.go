package socow

import "github.com/rawbytedev/socow/internal/common"

var (
	// ErrOutOfRange is returned by positional mutators given a bad index or range.
	// The vector is left untouched.
	ErrOutOfRange = common.ErrOutOfRange

	// ErrElementCopy wraps the error of a failed Cloner.Clone.
	ErrElementCopy = common.ErrElementCopy

	// ErrCapacity is returned by Reserve for a negative capacity.
	ErrCapacity = common.ErrCapacity
)
