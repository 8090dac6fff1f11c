//go:build linux
// +build linux

// File: heapcaps/arena_linux.go
// Author: momentics <momentics@gmail.com>
//
// Region backing via anonymous mmap, keeping pool arenas off the Go
// heap the way device RAM sits outside the runtime's view.

package heapcaps

import "golang.org/x/sys/unix"

func allocArena(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}
	return mem, nil
}

func releaseArena(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	return unix.Munmap(mem)
}
