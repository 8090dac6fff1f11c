// File: heapcaps/region.go
// Author: momentics <momentics@gmail.com>
//
// First-fit allocation over one contiguous arena. The free list is
// address-ordered and adjacent spans merge on release, so a fully
// drained region collapses back to a single span. Blocks are tracked
// by their byte offset into the arena; callers identify a block by the
// address of its first byte, so only block-base slices round-trip.

package heapcaps

import "unsafe"

// blockAlign is the block size granularity. Every block is a multiple
// of blockAlign bytes; zero-size requests still occupy one granule so
// they have a distinct, classifiable address.
const blockAlign = 8

// span is one free extent, in arena byte offsets.
type span struct {
	off  int
	size int
}

type region struct {
	mem  []byte
	base uintptr

	free []span      // address-ordered
	used map[int]int // block offset -> block size

	freeBytes int
}

func newRegion(mem []byte) *region {
	r := &region{
		mem:       mem,
		base:      uintptr(unsafe.Pointer(unsafe.SliceData(mem))),
		used:      make(map[int]int),
		freeBytes: len(mem),
	}
	if len(mem) > 0 {
		r.free = []span{{off: 0, size: len(mem)}}
	}
	return r
}

func alignUp(n int) int {
	return (n + blockAlign - 1) &^ (blockAlign - 1)
}

// blockSize is the granule count a request occupies.
func blockSize(size int) int {
	if a := alignUp(size); a > 0 {
		return a
	}
	return blockAlign
}

// alloc carves a block of at least size bytes and returns the caller's
// slice: length size, capacity the full block. Returns nil when no
// free span fits.
func (r *region) alloc(size int) []byte {
	if size < 0 {
		return nil
	}
	blk := blockSize(size)
	for i, s := range r.free {
		if s.size < blk {
			continue
		}
		off := s.off
		if rest := s.size - blk; rest > 0 {
			r.free[i] = span{off: off + blk, size: rest}
		} else {
			r.free = append(r.free[:i], r.free[i+1:]...)
		}
		r.used[off] = blk
		r.freeBytes -= blk
		return r.mem[off : off+size : off+blk]
	}
	return nil
}

// release returns the block at off to the free list, merging with
// adjacent spans. Unknown offsets are ignored.
func (r *region) release(off int) {
	blk, ok := r.used[off]
	if !ok {
		return
	}
	delete(r.used, off)
	r.insertFree(span{off: off, size: blk})
	r.freeBytes += blk
}

// insertFree places s into the address-ordered free list and coalesces
// with its neighbors.
func (r *region) insertFree(s span) {
	i := 0
	for i < len(r.free) && r.free[i].off < s.off {
		i++
	}
	r.free = append(r.free, span{})
	copy(r.free[i+1:], r.free[i:])
	r.free[i] = s

	// merge with successor first so the predecessor merge sees the
	// combined span
	if i+1 < len(r.free) && r.free[i].off+r.free[i].size == r.free[i+1].off {
		r.free[i].size += r.free[i+1].size
		r.free = append(r.free[:i+1], r.free[i+2:]...)
	}
	if i > 0 && r.free[i-1].off+r.free[i-1].size == r.free[i].off {
		r.free[i-1].size += r.free[i].size
		r.free = append(r.free[:i], r.free[i+1:]...)
	}
}

// resize grows or shrinks the block at off in place. Growth succeeds
// only when the immediately following span covers the difference.
func (r *region) resize(off, newSize int) bool {
	blk, ok := r.used[off]
	if !ok || newSize < 0 {
		return false
	}
	newBlk := blockSize(newSize)
	switch {
	case newBlk == blk:
		return true
	case newBlk < blk:
		r.used[off] = newBlk
		r.insertFree(span{off: off + newBlk, size: blk - newBlk})
		r.freeBytes += blk - newBlk
		return true
	}
	need := newBlk - blk
	for i, s := range r.free {
		if s.off != off+blk {
			continue
		}
		if s.size < need {
			return false
		}
		if rest := s.size - need; rest > 0 {
			r.free[i] = span{off: s.off + need, size: rest}
		} else {
			r.free = append(r.free[:i], r.free[i+1:]...)
		}
		r.used[off] = newBlk
		r.freeBytes -= need
		return true
	}
	return false
}

// contains reports whether p points into the arena.
func (r *region) contains(p uintptr) bool {
	return len(r.mem) > 0 && p >= r.base && p < r.base+uintptr(len(r.mem))
}

// offsetOf resolves buf to its block offset. Only slices whose data
// pointer is a block base resolve; interior pointers do not.
func (r *region) offsetOf(buf []byte) (int, bool) {
	if cap(buf) == 0 {
		return 0, false
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	if !r.contains(p) {
		return 0, false
	}
	off := int(p - r.base)
	_, ok := r.used[off]
	return off, ok
}

// slice re-derives the caller view of the block at off.
func (r *region) slice(off, size int) []byte {
	return r.mem[off : off+size : off+r.used[off]]
}
