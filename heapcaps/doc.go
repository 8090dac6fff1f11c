// Package heapcaps
// Author: momentics <momentics@gmail.com>
//
// Capability-tagged heap backing the router. A Heap manages up to two
// fixed-size regions modeling the internal and external pools of an
// embedded target, each with a first-fit free list, and implements the
// api.CapAllocator contract including cross-pool reallocation and
// pointer classification. Region backing is OS pages on Linux and
// Windows and plain Go slices elsewhere; see arena_linux.go,
// arena_windows.go, arena_other.go.
package heapcaps
