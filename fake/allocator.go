// File: fake/allocator.go
// Author: momentics <momentics@gmail.com>
//
// Scriptable capability allocator double. Capacity accounting is exact
// (free space decreases by the requested size, no alignment), which
// lets tests pin the reserve boundary to the byte.

package fake

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-mem/api"
)

// Call is one recorded allocator invocation.
type Call struct {
	Method string
	Size   int
	Caps   api.Caps
}

type blockInfo struct {
	size     int
	external bool
}

// Allocator implements api.CapAllocator with scripted capacities.
// External capacity 0 with HasExternal false models a platform without
// the external pool.
type Allocator struct {
	mu sync.Mutex

	freeInternal  int
	totalInternal int
	freeExternal  int
	totalExternal int
	hasExternal   bool

	// FailExternal forces every external-pool allocation to fail
	// regardless of capacity.
	failExternal bool

	calls  []Call
	blocks map[*byte]blockInfo
}

var _ api.CapAllocator = (*Allocator)(nil)

// New builds a double with the given pool capacities. externalSize < 0
// models an absent external pool.
func New(internalSize, externalSize int) *Allocator {
	a := &Allocator{
		freeInternal:  internalSize,
		totalInternal: internalSize,
		blocks:        make(map[*byte]blockInfo),
	}
	if externalSize >= 0 {
		a.freeExternal = externalSize
		a.totalExternal = externalSize
		a.hasExternal = true
	}
	return a
}

// FailExternal toggles unconditional external allocation failure.
func (a *Allocator) FailExternal(fail bool) {
	a.mu.Lock()
	a.failExternal = fail
	a.mu.Unlock()
}

// Calls returns a copy of the recorded call log.
func (a *Allocator) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// CallsTo returns the recorded calls whose caps include the given pool
// bit.
func (a *Allocator) CallsTo(pool api.Caps) []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []Call
	for _, c := range a.calls {
		if c.Caps.Has(pool) {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the call log, keeping pool state.
func (a *Allocator) ResetCalls() {
	a.mu.Lock()
	a.calls = nil
	a.mu.Unlock()
}

func (a *Allocator) record(method string, size int, caps api.Caps) {
	a.calls = append(a.calls, Call{Method: method, Size: size, Caps: caps})
}

// grab takes size bytes from the pool caps select, returning the new
// buffer or nil. Caller holds the lock.
func (a *Allocator) grab(size int, caps api.Caps) []byte {
	if size < 0 {
		return nil
	}
	external := caps.Has(api.CapExternal)
	if external {
		if !a.hasExternal || a.failExternal || a.freeExternal < size {
			return nil
		}
		a.freeExternal -= size
	} else {
		if a.freeInternal < size {
			return nil
		}
		a.freeInternal -= size
	}
	buf := make([]byte, size, max(size, 1))
	a.blocks[unsafe.SliceData(buf)] = blockInfo{size: size, external: external}
	return buf
}

func (a *Allocator) put(buf []byte) {
	key := unsafe.SliceData(buf)
	info, ok := a.blocks[key]
	if !ok {
		return
	}
	delete(a.blocks, key)
	if info.external {
		a.freeExternal += info.size
	} else {
		a.freeInternal += info.size
	}
}

// Alloc implements api.CapAllocator.
func (a *Allocator) Alloc(size int, caps api.Caps) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("Alloc", size, caps)
	return a.grab(size, caps)
}

// AllocZeroed implements api.CapAllocator. make already zeroes, so the
// zero contract holds by construction.
func (a *Allocator) AllocZeroed(n, elemSize int, caps api.Caps) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("AllocZeroed", n*elemSize, caps)
	return a.grab(n*elemSize, caps)
}

// Realloc implements api.CapAllocator with copy-and-release semantics,
// bridging pools like the real heap's universal path.
func (a *Allocator) Realloc(buf []byte, size int, caps api.Caps) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("Realloc", size, caps)
	if buf == nil {
		return a.grab(size, caps)
	}
	nb := a.grab(size, caps)
	if nb == nil {
		return nil
	}
	copy(nb, buf)
	a.put(buf)
	return nb
}

// Free implements api.CapAllocator.
func (a *Allocator) Free(buf []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("Free", len(buf), 0)
	a.put(buf)
}

// AllocatedSize implements api.CapAllocator.
func (a *Allocator) AllocatedSize(buf []byte) int {
	if buf == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if info, ok := a.blocks[unsafe.SliceData(buf)]; ok {
		return info.size
	}
	return 0
}

// FreeSize implements api.CapAllocator.
func (a *Allocator) FreeSize(caps api.Caps) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if caps.Has(api.CapExternal) {
		return a.freeExternal
	}
	return a.freeInternal
}

// TotalSize implements api.CapAllocator.
func (a *Allocator) TotalSize(caps api.Caps) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if caps.Has(api.CapExternal) {
		return a.totalExternal
	}
	return a.totalInternal
}

// Contains implements api.CapAllocator.
func (a *Allocator) Contains(buf []byte, caps api.Caps) bool {
	if buf == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	info, ok := a.blocks[unsafe.SliceData(buf)]
	if !ok {
		return false
	}
	have := api.CapInternal | api.Cap8Bit
	if info.external {
		have = api.CapExternal | api.Cap8Bit
	}
	return have&caps == caps
}
