package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame and render-phase timings. All methods are
// safe for concurrent use.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	// Rendering metrics (nanoseconds, last frame)
	raycastTime      atomic.Uint64
	spriteRenderTime atomic.Uint64
	minimapTime      atomic.Uint64

	// Per-frame work counters
	columnsCast   atomic.Uint64
	spritesDrawn  atomic.Uint64
	spritesCulled atomic.Uint64

	// Statistics
	mutex            sync.RWMutex
	totalFrameTime   float64
	totalRaycastTime float64
	raycastSamples   uint64
	startTime        time.Time

	// Configuration
	enableDetailed bool
	lowFPSWarning  float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		lowFPSWarning:  30,
	}
}

// SetLowFPSWarning sets the frame rate below which CheckPerformanceAlerts
// reports low_fps.
func (pm *PerformanceMonitor) SetLowFPSWarning(fps float64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.lowFPSWarning = fps
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	if ft.monitor.enableDetailed {
		ft.monitor.totalFrameTime += float64(frameTime.Nanoseconds())
	}
	ft.monitor.mutex.Unlock()
}

// RaycastTimer measures the wall-column phase of a frame
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing and records how many columns were cast
func (rt *RaycastTimer) EndRaycast(columns int) {
	raycastTime := time.Since(rt.startTime)
	rt.monitor.raycastTime.Store(uint64(raycastTime.Nanoseconds()))
	rt.monitor.columnsCast.Store(uint64(columns))

	rt.monitor.mutex.Lock()
	if rt.monitor.enableDetailed {
		rt.monitor.totalRaycastTime += float64(raycastTime.Nanoseconds())
		rt.monitor.raycastSamples++
	}
	rt.monitor.mutex.Unlock()
}

// RecordSprites stores the billboard counts of the last frame
func (pm *PerformanceMonitor) RecordSprites(drawn, culled int) {
	pm.spritesDrawn.Store(uint64(drawn))
	pm.spritesCulled.Store(uint64(culled))
}

// FrameMetrics is a snapshot of the last frame
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	SpriteTime      time.Duration
	MinimapTime     time.Duration
	ColumnsCast     uint64
	SpritesDrawn    uint64
	SpritesCulled   uint64
	MemoryUsageMB   uint64
}

func fpsFromNanos(frameTime uint64) float64 {
	if frameTime == 0 {
		return 0
	}
	return float64(time.Second) / float64(frameTime)
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	frameTime := pm.frameTime.Load()
	return FrameMetrics{
		FramesPerSecond: fpsFromNanos(frameTime),
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		SpriteTime:      time.Duration(pm.spriteRenderTime.Load()),
		MinimapTime:     time.Duration(pm.minimapTime.Load()),
		ColumnsCast:     pm.columnsCast.Load(),
		SpritesDrawn:    pm.spritesDrawn.Load(),
		SpritesCulled:   pm.spritesCulled.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// AverageFrameTime returns the mean frame duration since the last reset
func (pm *PerformanceMonitor) AverageFrameTime() time.Duration {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	count := pm.frameCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(pm.totalFrameTime / float64(count))
}

// AverageRaycastTime returns the mean wall-column phase duration
func (pm *PerformanceMonitor) AverageRaycastTime() time.Duration {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	if pm.raycastSamples == 0 {
		return 0
	}
	return time.Duration(pm.totalRaycastTime / float64(pm.raycastSamples))
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	pm.mutex.RLock()
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":      uptime.Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   float64(pm.AverageFrameTime()) / float64(time.Millisecond),
		"avg_raycast_time_ms": float64(pm.AverageRaycastTime()) / float64(time.Millisecond),
		"current_fps":         fpsFromNanos(pm.frameTime.Load()),
		"columns_cast":        pm.columnsCast.Load(),
		"sprites_drawn":       pm.spritesDrawn.Load(),
		"sprites_culled":      pm.spritesCulled.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"memory_sys_mb":       memStats.Sys / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	pm.mutex.RLock()
	threshold := pm.lowFPSWarning
	pm.mutex.RUnlock()

	if fps := fpsFromNanos(pm.frameTime.Load()); fps > 0 && fps < threshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below the warning threshold",
			Value:     fps,
			Threshold: threshold,
			Timestamp: currentTime,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables accumulation of averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.minimapTime.Store(0)
	pm.columnsCast.Store(0)
	pm.spritesDrawn.Store(0)
	pm.spritesCulled.Store(0)

	pm.mutex.Lock()
	pm.totalFrameTime = 0
	pm.totalRaycastTime = 0
	pm.raycastSamples = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "raycast":
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case "sprite_render":
		pm.spriteRenderTime.Store(uint64(duration.Nanoseconds()))
	case "minimap":
		pm.minimapTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}
