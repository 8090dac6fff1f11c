// Package fake
// Author: momentics <momentics@gmail.com>
//
// Instrumented test doubles. Allocator is a scriptable CapAllocator
// recording every call it receives, with byte-accurate copy and zero
// semantics so routing tests can assert on data as well as on the call
// pattern.
package fake
