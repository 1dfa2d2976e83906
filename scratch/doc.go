// Package scratch stages fixed-size values in the engine's scratch region
// around boundary calls.
//
// The scratch region is the artifact's C stack: a single bump pointer with
// save/restore semantics. A Scope bump-allocates typed cells (doubles,
// booleans, 64-bit counters, 3-vectors, 3x3 matrices, counted arrays, short
// strings), records a tagged Ref for each, and decodes the bytes back into
// host values after the call. The enclosing engine session restores the
// saved position on every exit path, normal return or error, so repeated
// calls never leak scratch space.
//
// Allocation requests are checked immediately: a counted array without a
// count and an unknown cell kind are programmer errors, reported before any
// boundary call and never retried.
//
// Growing string buffers use a double-and-retry loop (GrowString): start at
// an initial byte size, invoke the native call, and when the returned string
// was not NUL-terminated strictly inside the buffer, roll back to the saved
// position, double the size, and try again.
package scratch
