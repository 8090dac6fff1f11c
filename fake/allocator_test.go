// File: fake/allocator_test.go
// Author: momentics <momentics@gmail.com>

package fake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/fake"
)

func TestAllocator_ExactCapacityAccounting(t *testing.T) {
	a := fake.New(100, 200)

	buf := a.Alloc(60, api.CapInternal|api.Cap8Bit)
	require.NotNil(t, buf)
	assert.Equal(t, 40, a.FreeSize(api.CapInternal))
	assert.Nil(t, a.Alloc(41, api.CapInternal), "no rounding slack in the double")

	a.Free(buf)
	assert.Equal(t, 100, a.FreeSize(api.CapInternal))
}

func TestAllocator_RecordsCalls(t *testing.T) {
	a := fake.New(1024, 1024)

	buf := a.Alloc(32, api.CapExternal|api.Cap8Bit)
	a.Free(buf)

	calls := a.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Alloc", calls[0].Method)
	assert.Equal(t, 32, calls[0].Size)
	assert.True(t, calls[0].Caps.Has(api.CapExternal))
	assert.Equal(t, "Free", calls[1].Method)

	require.Len(t, a.CallsTo(api.CapExternal), 1)
	a.ResetCalls()
	assert.Empty(t, a.Calls())
}

func TestAllocator_AbsentExternalPool(t *testing.T) {
	a := fake.New(1024, -1)

	assert.Nil(t, a.Alloc(16, api.CapExternal|api.Cap8Bit))
	assert.Zero(t, a.FreeSize(api.CapExternal))
	assert.Zero(t, a.TotalSize(api.CapExternal))
}

func TestAllocator_ReallocBridgesPools(t *testing.T) {
	a := fake.New(1024, 1024)

	ex := a.Alloc(64, api.CapExternal|api.Cap8Bit)
	require.NotNil(t, ex)
	copy(ex, "payload")

	in := a.Realloc(ex, 32, api.CapInternal|api.Cap8Bit)
	require.NotNil(t, in)
	assert.True(t, a.Contains(in, api.CapInternal))
	assert.Equal(t, "payload", string(in[:7]))
	assert.Equal(t, 1024, a.FreeSize(api.CapExternal), "old external block returned")
}

func TestAllocator_FailExternalForcesFallbackPath(t *testing.T) {
	a := fake.New(1024, 1024)
	a.FailExternal(true)

	assert.Nil(t, a.Alloc(16, api.CapExternal|api.Cap8Bit))
	require.NotNil(t, a.Alloc(16, api.CapInternal|api.Cap8Bit))
}
