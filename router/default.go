// File: router/default.go
// Author: momentics <momentics@gmail.com>
//
// Opt-in process-wide router, the analog of hooking the default
// allocation operators: components that want routed allocation without
// plumbing a Router reach for these package-level calls.

package router

import (
	"sync"

	"github.com/momentics/hioload-mem/heapcaps"
)

var (
	defaultMu sync.RWMutex
	defaultR  *Router
	initOnce  sync.Once
)

// Default returns the process-wide router, lazily built over a
// platform heap with stock sizing and policy.
func Default() *Router {
	initOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultR != nil {
			return
		}
		heap, err := heapcaps.New(heapcaps.DefaultConfig())
		if err != nil {
			// Arena mapping can only fail under address-space
			// pressure; degrade to a heap the runtime backs.
			heap, _ = heapcaps.NewSinglePool(heapcaps.DefaultConfig().InternalSize)
		}
		defaultR = New(heap, DefaultConfig())
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultR
}

// SetDefault replaces the process-wide router. Pass the router before
// any component has allocated through the old one; buffers must be
// freed by the router that produced them.
func SetDefault(r *Router) {
	defaultMu.Lock()
	defaultR = r
	defaultMu.Unlock()
	initOnce.Do(func() {})
}

// Malloc allocates through the default router.
func Malloc(size int) []byte { return Default().Alloc(size) }

// Calloc allocates zeroed memory through the default router.
func Calloc(count, elemSize int) []byte { return Default().AllocZeroed(count, elemSize) }

// ReallocDefault resizes through the default router.
func ReallocDefault(buf []byte, newSize int) []byte { return Default().Realloc(buf, newSize) }

// FreeDefault releases through the default router.
func FreeDefault(buf []byte) { Default().Free(buf) }
