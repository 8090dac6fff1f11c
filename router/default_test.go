// File: router/default_test.go
// Author: momentics <momentics@gmail.com>

package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/fake"
	"github.com/momentics/hioload-mem/router"
)

func TestDefault_PackageLevelCalls(t *testing.T) {
	heap := fake.New(1<<20, 1<<20)
	router.SetDefault(router.New(heap, router.Config{Threshold: 16, Reserve: 0}))

	buf := router.Malloc(4096)
	require.NotNil(t, buf)
	assert.True(t, router.Default().IsExternal(buf))

	zeroed := router.Calloc(8, 8)
	require.NotNil(t, zeroed)
	for _, b := range zeroed {
		require.Zero(t, b)
	}

	grown := router.ReallocDefault(buf, 8192)
	require.NotNil(t, grown)
	router.FreeDefault(grown)
	router.FreeDefault(zeroed)
}

func TestDefault_LazyInitialization(t *testing.T) {
	// After any SetDefault the process-wide router is whatever was
	// installed; Default never overwrites it.
	heap := fake.New(1024, 1024)
	installed := router.New(heap, router.DefaultConfig())
	router.SetDefault(installed)
	assert.Same(t, installed, router.Default())
}
