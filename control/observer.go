// File: control/observer.go
// Author: momentics <momentics@gmail.com>
//
// Observers translating router events into metrics, plus composition.

package control

import "github.com/momentics/hioload-mem/api"

// Metric keys maintained by RouterMetrics.
const (
	MetricRoutedExternal   = "alloc.routed.external"
	MetricRoutedInternal   = "alloc.routed.internal"
	MetricFallbackInternal = "alloc.fallback.internal"
	MetricFailed           = "alloc.failed"
	MetricFreed            = "free.count"
	MetricBytesRequested   = "alloc.bytes.requested"
)

// RouterMetrics is an api.Observer that keeps routing counters in a
// MetricsRegistry.
type RouterMetrics struct {
	reg *MetricsRegistry
}

// NewRouterMetrics wires an observer to reg.
func NewRouterMetrics(reg *MetricsRegistry) *RouterMetrics {
	return &RouterMetrics{reg: reg}
}

// OnEvent implements api.Observer.
func (m *RouterMetrics) OnEvent(ev api.AllocEvent) {
	if ev.Op == api.OpFree {
		m.reg.Add(MetricFreed, 1)
		return
	}
	if !ev.OK {
		m.reg.Add(MetricFailed, 1)
		return
	}
	m.reg.Add(MetricBytesRequested, int64(ev.Size))
	switch {
	case ev.Pool == api.PoolExternal:
		m.reg.Add(MetricRoutedExternal, 1)
	case ev.Fallback:
		m.reg.Add(MetricFallbackInternal, 1)
	default:
		m.reg.Add(MetricRoutedInternal, 1)
	}
}

// MultiObserver fans one event out to several observers in order.
type MultiObserver []api.Observer

// OnEvent implements api.Observer.
func (mo MultiObserver) OnEvent(ev api.AllocEvent) {
	for _, obs := range mo {
		obs.OnEvent(ev)
	}
}
