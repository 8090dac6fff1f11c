// File: api/caps.go
// Author: momentics <momentics@gmail.com>
//
// Capability flags classifying memory by pool and addressing properties.

package api

import "strings"

// Caps is a bitmask of memory capabilities. A request carries the
// capabilities the returned memory must satisfy; a query carries the
// capabilities to match against.
type Caps uint32

const (
	// CapInternal selects the fast on-chip pool with guaranteed
	// availability for critical allocations.
	CapInternal Caps = 1 << iota

	// CapExternal selects the larger, slower off-chip pool.
	CapExternal

	// Cap8Bit requires byte-addressable memory.
	Cap8Bit
)

// CapSPIRAM is the conventional name for the external pool on targets
// where it is attached over SPI.
const CapSPIRAM = CapExternal

// Has reports whether all capabilities in f are set.
func (c Caps) Has(f Caps) bool { return c&f == f }

// String renders the mask for diagnostics.
func (c Caps) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(CapInternal) {
		parts = append(parts, "internal")
	}
	if c.Has(CapExternal) {
		parts = append(parts, "external")
	}
	if c.Has(Cap8Bit) {
		parts = append(parts, "8bit")
	}
	return strings.Join(parts, "|")
}
