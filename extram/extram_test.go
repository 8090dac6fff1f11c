// File: extram/extram_test.go
// Author: momentics <momentics@gmail.com>

package extram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/extram"
	"github.com/momentics/hioload-mem/heapcaps"
)

func TestPool_ReservationsLandExternal(t *testing.T) {
	h, err := heapcaps.New(heapcaps.Config{InternalSize: 1024, ExternalSize: 8192})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	p := extram.NewPool(h)

	bss := p.ReserveZeroed(256)
	require.NotNil(t, bss)
	assert.True(t, h.Contains(bss, api.CapExternal))
	for _, b := range bss {
		require.Zero(t, b)
	}

	data := p.ReserveData([]byte("lookup-table"))
	require.NotNil(t, data)
	assert.True(t, h.Contains(data, api.CapExternal))
	assert.Equal(t, "lookup-table", string(data))

	noinit := p.ReserveNoinit(64)
	require.NotNil(t, noinit)
	assert.True(t, h.Contains(noinit, api.CapExternal))

	assert.Equal(t, 3, p.Placed())
}

func TestPool_ReleaseAllReturnsCapacity(t *testing.T) {
	h, err := heapcaps.New(heapcaps.Config{InternalSize: 1024, ExternalSize: 8192})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	p := extram.NewPool(h)
	p.ReserveZeroed(1024)
	p.ReserveNoinit(512)
	require.Less(t, h.FreeSize(api.CapExternal), 8192)

	p.ReleaseAll()
	assert.Equal(t, 8192, h.FreeSize(api.CapExternal))
	assert.Zero(t, p.Placed())
}

func TestPool_DegradesWithoutExternal(t *testing.T) {
	h, err := heapcaps.NewSinglePool(4096)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	p := extram.NewPool(h)

	bss := p.ReserveZeroed(128)
	require.Len(t, bss, 128)
	assert.False(t, h.Contains(bss, api.CapExternal))

	data := p.ReserveData([]byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, data)

	assert.Zero(t, p.Placed(), "degraded reservations are plain storage")
	p.ReleaseAll()
}
