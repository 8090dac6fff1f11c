//go:build windows
// +build windows

// File: heapcaps/arena_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Region backing via VirtualAlloc committed pages.

package heapcaps

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func allocArena(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func releaseArena(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
