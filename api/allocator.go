// File: api/allocator.go
// Author: momentics <momentics@gmail.com>
//
// Capability allocator contract consumed by the router. The allocator
// owns all pool bookkeeping; callers never learn more about a buffer
// than what the query methods re-derive on demand.

package api

// CapAllocator allocates, resizes, releases and classifies memory
// tagged by capability flags. A nil return from any allocating method
// means the request could not be satisfied; no method panics on
// degenerate input.
//
// All methods must be individually safe for concurrent use. No
// cross-call atomicity is promised: a FreeSize observed by one caller
// may be stale by the time that caller allocates.
type CapAllocator interface {
	// Alloc returns a buffer of exactly size bytes satisfying caps,
	// or nil. Contents are unspecified.
	Alloc(size int, caps Caps) []byte

	// AllocZeroed returns a zero-initialized buffer of n*elemSize
	// bytes satisfying caps, or nil.
	AllocZeroed(n, elemSize int, caps Caps) []byte

	// Realloc resizes buf to size bytes in memory satisfying caps,
	// migrating across pools when necessary. The prefix up to
	// min(old, new) size is preserved. On failure it returns nil and
	// leaves buf valid and untouched. A nil buf behaves like Alloc.
	Realloc(buf []byte, size int, caps Caps) []byte

	// Free releases buf regardless of which pool it came from.
	// Buffers not owned by this allocator are ignored.
	Free(buf []byte)

	// AllocatedSize reports the usable size of buf's block, which may
	// exceed the requested size. Unknown buffers report 0.
	AllocatedSize(buf []byte) int

	// FreeSize reports the bytes currently free in the pool selected
	// by caps, 0 if that pool is absent.
	FreeSize(caps Caps) int

	// TotalSize reports the capacity of the pool selected by caps,
	// 0 if that pool is absent.
	TotalSize(caps Caps) int

	// Contains reports whether buf was allocated from a pool
	// satisfying caps. A nil buf is never contained.
	Contains(buf []byte, caps Caps) bool
}

// AllocatorStats is a point-in-time capacity snapshot across pools.
type AllocatorStats struct {
	FreeInternal  int
	TotalInternal int
	FreeExternal  int
	TotalExternal int
}
