// Package socow provides Vector, a sequence container that keeps up to N
// elements inline and moves larger contents into a reference counted heap
// buffer shared copy-on-write between clones.
//
// Storage modes:
//
//   - Inline: the elements live in a fixed array embedded in the Vector
//     (capacity N, where the array type S is [N]T).
//   - Shared: the elements live in a buffer {capacity, refs, elements} that
//     one or more vectors point at.
//
// Clone and CopyFrom of a shared vector are O(1): they only bump the
// reference count. Any mutating call on a vector whose buffer has more than
// one reference first copies the elements into private storage (unshare).
// Read accessors (At, Front, Back, View, All) never unshare; mutable
// accessors (Ref, Data, Set) always do.
//
// Go copies structs bitwise, so a Vector must not be copied by assignment.
// Use Clone or CopyFrom for copies, MoveFrom for moves, and Release once a
// vector is no longer needed so buffer reference counts stay exact.
//
// Positional mutators report bad positions with ErrOutOfRange. Read accessors
// follow slice semantics and panic on an out-of-range index.
//
// A Vector is not safe for concurrent use, and neither are clones that share
// a buffer with it: callers must serialize access to every vector that may
// alias the same buffer.
package socow
