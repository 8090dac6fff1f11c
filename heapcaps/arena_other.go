//go:build !linux && !windows
// +build !linux,!windows

// File: heapcaps/arena_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback region backing on the Go heap for platforms without a mmap
// or VirtualAlloc path.

package heapcaps

func allocArena(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func releaseArena([]byte) error {
	return nil
}
