// File: heapcaps/heap.go
// Author: momentics <momentics@gmail.com>
//
// Dual-region capability allocator. One mutex covers both regions:
// operations are short and the router above performs no locking of its
// own, so per-operation exclusion lives here.

package heapcaps

import (
	"math"
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// Config sizes the two pools. ExternalSize 0 builds a single-pool heap
// on which every external-seeking request fails and external size
// queries report 0.
type Config struct {
	InternalSize int
	ExternalSize int
}

// DefaultConfig approximates a stock target: 512 KiB of internal SRAM
// and 4 MiB of external SPIRAM.
func DefaultConfig() Config {
	return Config{
		InternalSize: 512 * 1024,
		ExternalSize: 4 * 1024 * 1024,
	}
}

// Heap implements api.CapAllocator over one or two arena-backed
// regions.
type Heap struct {
	mu       sync.Mutex
	internal *region
	external *region // nil when the external pool is absent
}

var _ api.CapAllocator = (*Heap)(nil)

// New builds a heap per cfg, mapping each region through the platform
// arena backend.
func New(cfg Config) (*Heap, error) {
	if cfg.InternalSize <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "internal pool size must be positive").
			WithContext("size", cfg.InternalSize)
	}
	if cfg.ExternalSize < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "external pool size must not be negative").
			WithContext("size", cfg.ExternalSize)
	}
	imem, err := allocArena(cfg.InternalSize)
	if err != nil {
		return nil, err
	}
	h := &Heap{internal: newRegion(imem)}
	if cfg.ExternalSize > 0 {
		emem, err := allocArena(cfg.ExternalSize)
		if err != nil {
			releaseArena(imem)
			return nil, err
		}
		h.external = newRegion(emem)
	}
	return h, nil
}

// NewSinglePool builds the platform-unsupported variant: internal only.
func NewSinglePool(internalSize int) (*Heap, error) {
	return New(Config{InternalSize: internalSize})
}

// Close releases the backing arenas. The heap must not be used after.
func (h *Heap) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := releaseArena(h.internal.mem); err != nil {
		return err
	}
	h.internal = newRegion(nil)
	if h.external != nil {
		if err := releaseArena(h.external.mem); err != nil {
			return err
		}
		h.external = nil
	}
	return nil
}

// regionFor selects the pool a request's caps name. External wins when
// both bits are set; a mask with neither pool bit defaults to internal.
func (h *Heap) regionFor(caps api.Caps) *region {
	if caps.Has(api.CapExternal) {
		return h.external
	}
	return h.internal
}

// ownerOf resolves buf to its region and block offset.
func (h *Heap) ownerOf(buf []byte) (*region, int, bool) {
	if off, ok := h.internal.offsetOf(buf); ok {
		return h.internal, off, true
	}
	if h.external != nil {
		if off, ok := h.external.offsetOf(buf); ok {
			return h.external, off, true
		}
	}
	return nil, 0, false
}

// Alloc implements api.CapAllocator. Contents are unspecified; reused
// blocks keep their previous bytes.
func (h *Heap) Alloc(size int, caps api.Caps) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	reg := h.regionFor(caps)
	if reg == nil {
		return nil
	}
	return reg.alloc(size)
}

// AllocZeroed implements api.CapAllocator. The product is
// overflow-checked; wrapping would quietly under-allocate.
func (h *Heap) AllocZeroed(n, elemSize int, caps api.Caps) []byte {
	total, ok := mulSize(n, elemSize)
	if !ok {
		return nil
	}
	buf := h.Alloc(total, caps)
	if buf != nil {
		clear(buf)
	}
	return buf
}

// Realloc implements api.CapAllocator. Same-region resizes happen in
// place when the free list allows; everything else is alloc, copy of
// min(old block, new size), release. On failure buf is left untouched.
func (h *Heap) Realloc(buf []byte, size int, caps api.Caps) []byte {
	if buf == nil {
		return h.Alloc(size, caps)
	}
	if size < 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	target := h.regionFor(caps)
	if target == nil {
		return nil
	}
	owner, off, ok := h.ownerOf(buf)
	if !ok {
		return nil
	}
	if owner == target && owner.resize(off, size) {
		return owner.slice(off, size)
	}
	nb := target.alloc(size)
	if nb == nil {
		return nil
	}
	n := owner.used[off]
	if n > size {
		n = size
	}
	copy(nb, owner.mem[off:off+n])
	owner.release(off)
	return nb
}

// Free implements api.CapAllocator: pool-agnostic release. Buffers this
// heap does not own are ignored.
func (h *Heap) Free(buf []byte) {
	if buf == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if owner, off, ok := h.ownerOf(buf); ok {
		owner.release(off)
	}
}

// AllocatedSize implements api.CapAllocator.
func (h *Heap) AllocatedSize(buf []byte) int {
	if buf == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if owner, off, ok := h.ownerOf(buf); ok {
		return owner.used[off]
	}
	return 0
}

// FreeSize implements api.CapAllocator.
func (h *Heap) FreeSize(caps api.Caps) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	reg := h.regionFor(caps)
	if reg == nil {
		return 0
	}
	return reg.freeBytes
}

// TotalSize implements api.CapAllocator.
func (h *Heap) TotalSize(caps api.Caps) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	reg := h.regionFor(caps)
	if reg == nil {
		return 0
	}
	return len(reg.mem)
}

// Contains implements api.CapAllocator: buf matches when the owning
// pool's capabilities cover every bit in caps.
func (h *Heap) Contains(buf []byte, caps api.Caps) bool {
	if buf == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	owner, _, ok := h.ownerOf(buf)
	if !ok {
		return false
	}
	have := api.CapInternal | api.Cap8Bit
	if owner == h.external {
		have = api.CapExternal | api.Cap8Bit
	}
	return have&caps == caps
}

// Stats snapshots capacity across both pools.
func (h *Heap) Stats() api.AllocatorStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := api.AllocatorStats{
		FreeInternal:  h.internal.freeBytes,
		TotalInternal: len(h.internal.mem),
	}
	if h.external != nil {
		st.FreeExternal = h.external.freeBytes
		st.TotalExternal = len(h.external.mem)
	}
	return st
}

func mulSize(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}
