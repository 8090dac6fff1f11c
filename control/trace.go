// File: control/trace.go
// Author: momentics <momentics@gmail.com>
//
// Bounded trace of recent allocation events for post-mortem
// diagnostics, the runtime counterpart of compile-time allocation
// logging on the original targets.

package control

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-mem/api"
)

// TraceRecorder is an api.Observer retaining the most recent events in
// a FIFO of fixed capacity.
type TraceRecorder struct {
	mu       sync.Mutex
	events   *queue.Queue
	capacity int
}

// NewTraceRecorder creates a recorder keeping up to capacity events.
func NewTraceRecorder(capacity int) *TraceRecorder {
	if capacity < 1 {
		capacity = 1
	}
	return &TraceRecorder{
		events:   queue.New(),
		capacity: capacity,
	}
}

// OnEvent implements api.Observer.
func (t *TraceRecorder) OnEvent(ev api.AllocEvent) {
	t.mu.Lock()
	t.events.Add(ev)
	for t.events.Length() > t.capacity {
		t.events.Remove()
	}
	t.mu.Unlock()
}

// Snapshot returns the retained events, oldest first.
func (t *TraceRecorder) Snapshot() []api.AllocEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]api.AllocEvent, 0, t.events.Length())
	for i := 0; i < t.events.Length(); i++ {
		out = append(out, t.events.Get(i).(api.AllocEvent))
	}
	return out
}

// Len reports how many events are retained.
func (t *TraceRecorder) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.events.Length()
}
