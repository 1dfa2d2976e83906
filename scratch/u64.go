package scratch

// The engine ABI stores 64-bit unsigned counters as two 32-bit words with
// the low word first. On a little-endian wasm32 guest that is exactly the
// in-memory layout of a uint64, so split and join are plain shifts; the
// wire format is what must stay fixed.

// SplitU64 splits a value into its two 32-bit words, low word first.
func SplitU64(v uint64) (lo, hi uint32) {
	return uint32(v), uint32(v >> 32)
}

// JoinU64 recombines two 32-bit words, low word first.
func JoinU64(lo, hi uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}
