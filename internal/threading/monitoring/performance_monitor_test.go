package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"raycastmaze/internal/threading/core"
	"raycastmaze/internal/threading/rendering"
)

// =============================================================================
// PERFORMANCE MONITOR TESTS
// =============================================================================

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}
	if !pm.enableDetailed {
		t.Error("Expected enableDetailed to be true")
	}
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
	if pm.AverageFrameTime() != 0 {
		t.Error("Average frame time should be zero before any frame")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond)
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	minExpectedTime := uint64(10 * time.Millisecond)
	if frameTime := pm.frameTime.Load(); frameTime < minExpectedTime {
		t.Errorf("Expected frame time to be at least %d ns, got %d ns", minExpectedTime, frameTime)
	}
	if avg := pm.AverageFrameTime(); avg < 10*time.Millisecond {
		t.Errorf("Expected average frame time >= 10ms, got %v", avg)
	}
}

func TestPerformanceMonitorRaycastAndSprites(t *testing.T) {
	pm := NewPerformanceMonitor()

	rt := pm.StartRaycast()
	time.Sleep(time.Millisecond)
	rt.EndRaycast(640)
	pm.RecordSprites(3, 2)
	pm.ProfiledFunction("sprite_render", func() { time.Sleep(time.Millisecond) })

	m := pm.GetCurrentMetrics()
	if m.ColumnsCast != 640 {
		t.Errorf("Expected 640 columns, got %d", m.ColumnsCast)
	}
	if m.SpritesDrawn != 3 || m.SpritesCulled != 2 {
		t.Errorf("Expected 3 drawn / 2 culled, got %d / %d", m.SpritesDrawn, m.SpritesCulled)
	}
	if m.RaycastTime < time.Millisecond || m.SpriteTime < time.Millisecond {
		t.Errorf("Phase timings not recorded: %+v", m)
	}
	if pm.AverageRaycastTime() < time.Millisecond {
		t.Errorf("Expected average raycast time >= 1ms, got %v", pm.AverageRaycastTime())
	}

	stats := pm.GetDetailedStats()
	for _, key := range []string{"frame_count", "avg_raycast_time_ms", "columns_cast", "sprites_drawn", "goroutines"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("Detailed stats missing %q", key)
		}
	}

	pm.Reset()
	if pm.GetCurrentMetrics().ColumnsCast != 0 || pm.AverageRaycastTime() != 0 {
		t.Error("Reset should clear counters")
	}
}

func TestPerformanceMonitorLowFPSAlert(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.SetLowFPSWarning(1000)
	pm.frameTime.Store(uint64(20 * time.Millisecond)) // 50 fps

	found := false
	for _, alert := range pm.CheckPerformanceAlerts() {
		if alert.Type == "low_fps" {
			found = true
			if alert.Threshold != 1000 {
				t.Errorf("Expected threshold 1000, got %v", alert.Threshold)
			}
		}
	}
	if !found {
		t.Error("Expected low_fps alert")
	}
}

func TestPerformanceMonitorConcurrency(t *testing.T) {
	pm := NewPerformanceMonitor()
	done := make(chan bool, 5)

	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				frameTimer := pm.StartFrame()
				time.Sleep(time.Microsecond * 100)
				frameTimer.EndFrame()
				pm.RecordSprites(j, 0)
			}
			done <- true
		}()
	}

	for i := 0; i < 5; i++ {
		<-done
	}

	if pm.frameCount.Load() != 100 {
		t.Errorf("Expected 100 frames, got %d", pm.frameCount.Load())
	}
}

// =============================================================================
// WORKER POOL TESTS
// =============================================================================

func TestWorkerPoolCreation(t *testing.T) {
	wp := core.NewWorkerPool(0)
	if wp.GetNumWorkers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers (CPU count), got %d", runtime.NumCPU(), wp.GetNumWorkers())
	}

	wp2 := core.NewWorkerPool(4)
	if wp2.GetNumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", wp2.GetNumWorkers())
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	wp := core.NewWorkerPool(3)
	wp.Start()
	defer wp.Stop()

	var results [10]int32
	wp.ParallelFor(0, 10, 1, func(i int) {
		atomic.StoreInt32(&results[i], int32(i*2))
		time.Sleep(time.Millisecond)
	})

	for i := 0; i < 10; i++ {
		expected := int32(i * 2)
		if atomic.LoadInt32(&results[i]) != expected {
			t.Errorf("Expected results[%d] = %d, got %d", i, expected, results[i])
		}
	}
}

func TestWorkerPoolConcurrentAccess(t *testing.T) {
	wp := core.NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	var counter int64
	numGoroutines := 10
	jobsPerGoroutine := 50

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < jobsPerGoroutine; j++ {
				wp.Submit(func() {
					atomic.AddInt64(&counter, 1)
				})
			}
		}()
	}

	wg.Wait()
	wp.Wait()

	expected := int64(numGoroutines * jobsPerGoroutine)
	if atomic.LoadInt64(&counter) != expected {
		t.Errorf("Expected counter to be %d, got %d", expected, counter)
	}
}

func TestWorkerPoolStopTwice(t *testing.T) {
	wp := core.NewWorkerPool(0)
	wp.Start()
	wp.Stop()
	wp.Stop()
}

func TestWorkerPoolParallelForChunks(t *testing.T) {
	wp := core.NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	for _, tc := range []struct{ start, end, minChunk int }{
		{0, 0, 4}, {3, 4, 4}, {0, 7, 4}, {0, 100, 4}, {10, 1310, 32},
	} {
		visits := make([]int32, tc.end)
		wp.ParallelFor(tc.start, tc.end, tc.minChunk, func(i int) {
			atomic.AddInt32(&visits[i], 1)
		})
		for i, v := range visits {
			want := int32(0)
			if i >= tc.start {
				want = 1
			}
			if v != want {
				t.Fatalf("[%d,%d): index %d visited %d times", tc.start, tc.end, i, v)
			}
		}
	}
}

// =============================================================================
// COLUMN SCHEDULER TESTS
// =============================================================================

func TestColumnSchedulerVisitsEveryColumnOnce(t *testing.T) {
	cs := rendering.NewColumnScheduler(4)
	defer cs.Stop()

	for _, n := range []int{0, 1, 8, 9, 100, 1300} {
		visits := make([]int32, n)
		cs.Columns(n, func(column int) {
			atomic.AddInt32(&visits[column], 1)
		})
		for i, v := range visits {
			if v != 1 {
				t.Fatalf("n=%d: column %d visited %d times", n, i, v)
			}
		}
	}
}

func TestColumnSchedulerConcurrentFrames(t *testing.T) {
	cs := rendering.NewColumnScheduler(4)
	defer cs.Stop()

	var wg sync.WaitGroup
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(renderID int) {
			defer wg.Done()
			n := 50 + renderID*10
			var count atomic.Int32
			cs.Columns(n, func(int) { count.Add(1) })
			if int(count.Load()) != n {
				t.Errorf("Render %d: expected %d columns, got %d", renderID, n, count.Load())
			}
		}(r)
	}
	wg.Wait()
}
