package socow

import "github.com/rawbytedev/socow/internal/common"

// Cloner is implemented by element types that need a real copy when a vector
// duplicates its elements (unshare, copying an inline vector, rebuilding a
// shared buffer). Clone may fail; the operation that triggered it then undoes
// its partial work and returns the error wrapped with ErrElementCopy.
//
// Moves between storages never call Clone.
type Cloner[T any] = common.Cloner[T]

// Disposer is implemented by element types that must observe the destruction
// of an element: pop, erase, clear, Set overwriting a value, and the release
// of the last reference to a shared buffer. When a rebuild fails, only the
// copies made by Clone are disposed; without Clone a copy is the element
// itself.
//
// The hook is looked up on the element value, so for pointer receivers the
// element type itself must be a pointer.
type Disposer = common.Disposer
