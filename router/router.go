// File: router/router.go
// Author: momentics <momentics@gmail.com>
//
// Pool routing core. Every operation is a one-shot decision over the
// request size and, for reallocation, the buffer's current pool; the
// router keeps no bookkeeping across calls and re-derives pool
// membership from the allocator on every query.

package router

import (
	"math"

	"github.com/momentics/hioload-mem/api"
)

// Capability pairings used for routed requests. External and internal
// requests both demand byte-addressable memory; the fallback headroom
// check deliberately matches the internal pool alone.
const (
	extCaps = api.CapExternal | api.Cap8Bit
	intCaps = api.CapInternal | api.Cap8Bit
)

// Config fixes the routing policy for the lifetime of a Router.
// There is no runtime mutation; tests construct routers with the
// values they need instead of rebuilding.
type Config struct {
	// Threshold is the minimum request size, in bytes, eligible for
	// external routing. Smaller requests stay internal.
	Threshold int

	// Reserve is the internal headroom, in bytes, that must remain
	// free after any request redirected to internal as a fallback
	// from external. The reserve is a hard floor: a fallback that
	// would leave free internal space at or below Reserve is refused.
	Reserve int
}

// DefaultConfig mirrors the stock tuning: 16-byte threshold, 32 KiB
// internal reserve.
func DefaultConfig() Config {
	return Config{Threshold: 16, Reserve: 32 * 1024}
}

// Router routes allocation requests between the two pools of a
// capability allocator. The zero value is not usable; construct with New.
type Router struct {
	heap api.CapAllocator
	cfg  Config
	obs  api.Observer

	// observed gates the extra classification queries made on Free
	// solely for the observer's benefit.
	observed bool
}

// Option customizes router initialization.
type Option func(*Router)

// WithObserver attaches an observer receiving one event per operation.
func WithObserver(obs api.Observer) Option {
	return func(r *Router) {
		if obs == nil {
			return
		}
		r.obs = obs
		r.observed = true
	}
}

// New creates a Router over heap with the given policy.
func New(heap api.CapAllocator, cfg Config, opts ...Option) *Router {
	r := &Router{
		heap: heap,
		cfg:  cfg,
		obs:  api.NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the fixed routing policy.
func (r *Router) Config() Config { return r.cfg }

// Alloc returns a buffer of size bytes, or nil when no pool can satisfy
// the request under the reserve constraint. Requests below the
// threshold are served from internal memory only; larger requests try
// external first and fall back to internal while the reserve holds.
func (r *Router) Alloc(size int) []byte {
	return r.route(api.OpAlloc, size, func(caps api.Caps) []byte {
		return r.heap.Alloc(size, caps)
	})
}

// AllocZeroed returns a zero-initialized buffer of count*elemSize
// bytes, routed by the product size. A product that overflows the int
// range fails with nil rather than wrapping.
func (r *Router) AllocZeroed(count, elemSize int) []byte {
	total, ok := mulSize(count, elemSize)
	if !ok {
		r.emit(api.AllocEvent{Op: api.OpAllocZeroed, Size: -1})
		return nil
	}
	return r.route(api.OpAllocZeroed, total, func(caps api.Caps) []byte {
		return r.heap.AllocZeroed(count, elemSize, caps)
	})
}

// Realloc resizes buf to newSize bytes. A nil buf behaves like
// Alloc(newSize). Large targets keep external buffers external when
// possible, otherwise migrate by copy; small targets fall through to
// the internal default path. On failure the caller's buf remains valid.
func (r *Router) Realloc(buf []byte, newSize int) []byte {
	if buf == nil {
		return r.route(api.OpRealloc, newSize, func(caps api.Caps) []byte {
			return r.heap.Alloc(newSize, caps)
		})
	}
	if newSize >= r.cfg.Threshold {
		if r.heap.Contains(buf, api.CapExternal) {
			if nb := r.heap.Realloc(buf, newSize, extCaps); nb != nil {
				r.emit(api.AllocEvent{Op: api.OpRealloc, Size: newSize, Pool: api.PoolExternal, OK: true})
				return nb
			}
		}
		if nb := r.heap.Alloc(newSize, extCaps); nb != nil {
			n := r.heap.AllocatedSize(buf)
			if n > newSize {
				n = newSize
			}
			if n > len(buf) {
				n = len(buf)
			}
			copy(nb, buf[:n])
			r.heap.Free(buf)
			r.emit(api.AllocEvent{Op: api.OpRealloc, Size: newSize, Pool: api.PoolExternal, OK: true})
			return nb
		}
	}
	// Internal default path. The allocator bridges pools itself here,
	// preserving data and leaving buf untouched on failure.
	nb := r.heap.Realloc(buf, newSize, intCaps)
	ev := api.AllocEvent{Op: api.OpRealloc, Size: newSize, OK: nb != nil}
	if nb != nil {
		ev.Pool = api.PoolInternal
	}
	r.emit(ev)
	return nb
}

// Free releases buf through the universal, pool-agnostic path.
// A nil buf is a no-op and never reaches the allocator.
func (r *Router) Free(buf []byte) {
	if buf == nil {
		return
	}
	if r.observed {
		ev := api.AllocEvent{Op: api.OpFree, Size: r.heap.AllocatedSize(buf), Pool: api.PoolInternal, OK: true}
		if r.heap.Contains(buf, api.CapExternal) {
			ev.Pool = api.PoolExternal
		}
		r.heap.Free(buf)
		r.obs.OnEvent(ev)
		return
	}
	r.heap.Free(buf)
}

// IsExternal reports whether buf resides in the external pool.
// A nil buf is never external.
func (r *Router) IsExternal(buf []byte) bool {
	if buf == nil {
		return false
	}
	return r.heap.Contains(buf, api.CapExternal)
}

// FreeExternalBytes reports free external capacity, 0 when the pool is
// absent.
func (r *Router) FreeExternalBytes() int {
	return r.heap.FreeSize(api.CapExternal)
}

// TotalExternalBytes reports total external capacity, 0 when the pool
// is absent.
func (r *Router) TotalExternalBytes() int {
	return r.heap.TotalSize(api.CapExternal)
}

// route applies the threshold/fallback decision shared by Alloc,
// AllocZeroed and nil-buffer Realloc. attempt performs the actual
// allocation against the pool selected by caps.
func (r *Router) route(op api.Op, size int, attempt func(api.Caps) []byte) []byte {
	if size < r.cfg.Threshold {
		buf := attempt(intCaps)
		ev := api.AllocEvent{Op: op, Size: size, OK: buf != nil}
		if buf != nil {
			ev.Pool = api.PoolInternal
		}
		r.emit(ev)
		return buf
	}

	if buf := attempt(extCaps); buf != nil {
		r.emit(api.AllocEvent{Op: op, Size: size, Pool: api.PoolExternal, OK: true})
		return buf
	}

	// External exhausted or absent. Degrade to internal only while the
	// reserve stays intact after the request; strict > keeps the floor.
	if r.heap.FreeSize(api.CapInternal) > size+r.cfg.Reserve {
		buf := attempt(intCaps)
		ev := api.AllocEvent{Op: op, Size: size, Fallback: true, OK: buf != nil}
		if buf != nil {
			ev.Pool = api.PoolInternal
		}
		r.emit(ev)
		return buf
	}

	r.emit(api.AllocEvent{Op: op, Size: size})
	return nil
}

func (r *Router) emit(ev api.AllocEvent) {
	r.obs.OnEvent(ev)
}

// mulSize multiplies two non-negative sizes, reporting overflow.
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
