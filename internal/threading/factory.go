package threading

import (
	"raycastmaze/internal/threading/monitoring"
	"raycastmaze/internal/threading/rendering"
)

// ThreadingComponents holds the frame scheduler and performance monitor
type ThreadingComponents struct {
	ColumnScheduler    *rendering.ColumnScheduler // nil when casting stays on the calling goroutine
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the threading components. workers <= 1
// disables the column scheduler.
func NewThreadingComponents(workers int) *ThreadingComponents {
	tc := &ThreadingComponents{
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
	if workers > 1 {
		tc.ColumnScheduler = rendering.NewColumnScheduler(workers)
	}
	return tc
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.ColumnScheduler != nil {
		tc.ColumnScheduler.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.GetDetailedStats()
	}
	return nil
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.CheckPerformanceAlerts()
	}
	return nil
}
