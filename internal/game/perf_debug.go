package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const perfLowFpsDuration = 3 * time.Second

func (g *MazeGame) togglePerfDebug() {
	g.perfDebugEnabled = !g.perfDebugEnabled
	g.threading.PerformanceMonitor.EnableDetailedLogging(g.perfDebugEnabled)
	g.perfLowFpsSince = time.Time{}
	g.perfLastPerfLog = time.Time{}
	g.logger.Info("perf logging", "enabled", g.perfDebugEnabled)
	if g.perfDebugEnabled {
		g.logPerfSnapshot(ebiten.ActualFPS())
	}
}

func (g *MazeGame) perfLogInterval() time.Duration {
	if g.config.Perf.LogIntervalSec <= 0 {
		return perfLowFpsDuration
	}
	return time.Duration(g.config.Perf.LogIntervalSec) * time.Second
}

// maybeLogPerfDrop logs a snapshot once the frame rate has stayed under the
// warning threshold for perfLowFpsDuration, then at most once per interval.
func (g *MazeGame) maybeLogPerfDrop() {
	if !g.perfDebugEnabled {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= g.config.Perf.LowFPSWarning {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return
	}
	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return
	}
	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < g.perfLogInterval() {
		return
	}

	g.perfLastPerfLog = now
	g.logPerfSnapshot(fps)
}

func (g *MazeGame) logPerfSnapshot(fps float64) {
	stats := g.threading.GetDetailedPerformanceStats()
	metrics := g.threading.PerformanceMonitor.GetCurrentMetrics()

	workers := 1
	if g.threading.ColumnScheduler != nil {
		workers = g.threading.ColumnScheduler.Workers()
	}

	perf := g.logger.WithPrefix("perf")
	perf.Info("frame",
		"fps", fps,
		"tps", ebiten.ActualTPS(),
		"update_ms", durationMs(g.lastUpdateDuration),
		"draw_ms", durationMs(g.lastDrawDuration),
		"raycast_ms", durationMs(metrics.RaycastTime),
		"sprites_ms", durationMs(metrics.SpriteTime),
		"minimap_ms", durationMs(metrics.MinimapTime),
		"avg_frame_ms", stats["avg_frame_time_ms"],
		"top_down", g.showTopDown,
	)
	perf.Info("scene",
		"columns", metrics.ColumnsCast,
		"sprites_drawn", metrics.SpritesDrawn,
		"sprites_culled", metrics.SpritesCulled,
		"workers", workers,
		"goroutines", stats["goroutines"],
		"mem_alloc_mb", stats["memory_alloc_mb"],
		"gc_cycles", stats["gc_cycles"],
	)
	for _, alert := range g.threading.CheckPerformanceAlerts() {
		perf.Warn(alert.Message, "type", alert.Type, "value", alert.Value, "threshold", alert.Threshold)
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
