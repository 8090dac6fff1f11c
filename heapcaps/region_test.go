// File: heapcaps/region_test.go
// Author: momentics <momentics@gmail.com>

package heapcaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_AllocCarvesFirstFit(t *testing.T) {
	r := newRegion(make([]byte, 64))

	a := r.alloc(16)
	b := r.alloc(16)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, 32, r.freeBytes)

	offA, ok := r.offsetOf(a)
	require.True(t, ok)
	assert.Equal(t, 0, offA)
	offB, ok := r.offsetOf(b)
	require.True(t, ok)
	assert.Equal(t, 16, offB)
}

func TestRegion_ReleaseMergesNeighbors(t *testing.T) {
	r := newRegion(make([]byte, 96))

	a := r.alloc(32)
	b := r.alloc(32)
	c := r.alloc(32)
	require.NotNil(t, c)
	require.Nil(t, r.alloc(1), "region is full")

	// Free the middle, then the sides: spans must coalesce back into
	// one extent so a full-size allocation fits again.
	offB, _ := r.offsetOf(b)
	offA, _ := r.offsetOf(a)
	offC, _ := r.offsetOf(c)
	r.release(offB)
	r.release(offA)
	r.release(offC)

	assert.Equal(t, 96, r.freeBytes)
	assert.Len(t, r.free, 1, "all spans must merge")
	require.NotNil(t, r.alloc(96))
}

func TestRegion_AlignmentRoundsBlockUp(t *testing.T) {
	r := newRegion(make([]byte, 64))

	buf := r.alloc(5)
	require.NotNil(t, buf)
	assert.Len(t, buf, 5)
	assert.Equal(t, 8, cap(buf), "block capacity rounds to the granule")
	assert.Equal(t, 64-8, r.freeBytes)
}

func TestRegion_ZeroSizeOccupiesGranule(t *testing.T) {
	r := newRegion(make([]byte, 64))

	buf := r.alloc(0)
	require.NotNil(t, buf)
	assert.Len(t, buf, 0)
	assert.Equal(t, blockAlign, cap(buf))

	off, ok := r.offsetOf(buf)
	require.True(t, ok, "zero-size block must still resolve by address")
	r.release(off)
	assert.Equal(t, 64, r.freeBytes)
}

func TestRegion_ResizeShrinkReleasesTail(t *testing.T) {
	r := newRegion(make([]byte, 64))

	buf := r.alloc(32)
	off, _ := r.offsetOf(buf)
	require.True(t, r.resize(off, 8))
	assert.Equal(t, 64-8, r.freeBytes)

	// The released tail is immediately reusable.
	require.NotNil(t, r.alloc(24))
}

func TestRegion_ResizeGrowConsumesAdjacentSpan(t *testing.T) {
	r := newRegion(make([]byte, 64))

	buf := r.alloc(16)
	off, _ := r.offsetOf(buf)
	require.True(t, r.resize(off, 48), "the rest of the region is one adjacent span")
	assert.Equal(t, 16, r.freeBytes)

	// Blocked growth: a second block sits right behind.
	r2 := newRegion(make([]byte, 64))
	first := r2.alloc(16)
	r2.alloc(16)
	offFirst, _ := r2.offsetOf(first)
	assert.False(t, r2.resize(offFirst, 32))
}

func TestRegion_InteriorPointerDoesNotResolve(t *testing.T) {
	r := newRegion(make([]byte, 64))

	buf := r.alloc(32)
	_, ok := r.offsetOf(buf[8:])
	assert.False(t, ok, "only block-base slices round-trip")
}
