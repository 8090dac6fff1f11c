// File: api/observer.go
// Author: momentics <momentics@gmail.com>
//
// Routing observation contract. Observers receive one event per router
// operation and must not block; the default observer discards events.

package api

// Op identifies a router operation.
type Op uint8

const (
	OpAlloc Op = iota
	OpAllocZeroed
	OpRealloc
	OpFree
)

// String returns the operation name for diagnostics.
func (o Op) String() string {
	switch o {
	case OpAlloc:
		return "alloc"
	case OpAllocZeroed:
		return "alloc_zeroed"
	case OpRealloc:
		return "realloc"
	case OpFree:
		return "free"
	}
	return "unknown"
}

// Pool identifies where a routed request ended up.
type Pool uint8

const (
	// PoolNone means no pool satisfied the request.
	PoolNone Pool = iota
	PoolInternal
	PoolExternal
)

// String returns the pool name for diagnostics.
func (p Pool) String() string {
	switch p {
	case PoolInternal:
		return "internal"
	case PoolExternal:
		return "external"
	}
	return "none"
}

// AllocEvent describes one completed router operation.
type AllocEvent struct {
	Op   Op
	Size int
	Pool Pool

	// Fallback is set when an external-eligible request was redirected
	// to the internal pool after external failure.
	Fallback bool

	// OK is false when the operation returned no memory.
	OK bool
}

// Observer receives routing events. Implementations must be safe for
// concurrent use and should return quickly; heavy work belongs on the
// observer's side of the fence.
type Observer interface {
	OnEvent(AllocEvent)
}

// NopObserver discards all events.
type NopObserver struct{}

// OnEvent implements Observer.
func (NopObserver) OnEvent(AllocEvent) {}
