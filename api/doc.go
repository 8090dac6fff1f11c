// Package api
// Author: momentics <momentics@gmail.com>
//
// Public contracts for hioload-mem: capability flags, the capability
// allocator interface, routing events, and common error types.
// Implementations live in heapcaps (real dual-pool heap) and fake
// (instrumented test double); the routing policy lives in router.
package api
