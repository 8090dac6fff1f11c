// File: extram/extram.go
// Author: momentics <momentics@gmail.com>
//
// Startup placement of statically sized objects in external memory,
// standing in for link-time external-RAM section attributes. Reserve
// what the program needs once at initialization; when the external
// pool is absent the reservations degrade to ordinary Go storage and
// only the placement guarantee is lost.

package extram

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// extCaps matches the placement target of the reservations.
const extCaps = api.CapExternal | api.Cap8Bit

// Pool hands out external-resident reservations and releases them as a
// unit.
type Pool struct {
	heap api.CapAllocator

	mu    sync.Mutex
	owned [][]byte // reservations the allocator backs; degraded ones are not tracked
}

// NewPool binds a reservation pool to heap.
func NewPool(heap api.CapAllocator) *Pool {
	return &Pool{heap: heap}
}

// ReserveZeroed returns a zero-initialized reservation of size bytes,
// placed externally when possible. The BSS-section analog.
func (p *Pool) ReserveZeroed(size int) []byte {
	if buf := p.heap.AllocZeroed(1, size, extCaps); buf != nil {
		p.track(buf)
		return buf
	}
	return make([]byte, size)
}

// ReserveData returns a reservation pre-initialized with a copy of
// init, placed externally when possible. The data-section analog.
func (p *Pool) ReserveData(init []byte) []byte {
	if buf := p.heap.Alloc(len(init), extCaps); buf != nil {
		copy(buf, init)
		p.track(buf)
		return buf
	}
	out := make([]byte, len(init))
	copy(out, init)
	return out
}

// ReserveNoinit returns a reservation with unspecified contents,
// placed externally when possible. The noinit-section analog; the
// degraded path is zeroed because ordinary Go storage always is.
func (p *Pool) ReserveNoinit(size int) []byte {
	if buf := p.heap.Alloc(size, extCaps); buf != nil {
		p.track(buf)
		return buf
	}
	return make([]byte, size)
}

func (p *Pool) track(buf []byte) {
	p.mu.Lock()
	p.owned = append(p.owned, buf)
	p.mu.Unlock()
}

// Placed reports how many reservations actually landed in external
// memory.
func (p *Pool) Placed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.owned)
}

// ReleaseAll returns every external-resident reservation to the heap.
// Degraded reservations are left to the garbage collector.
func (p *Pool) ReleaseAll() {
	p.mu.Lock()
	owned := p.owned
	p.owned = nil
	p.mu.Unlock()
	for _, buf := range owned {
		p.heap.Free(buf)
	}
}
