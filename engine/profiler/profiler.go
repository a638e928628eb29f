package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Logs stats through zerolog at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logger zerolog.Logger
	now    func() time.Time
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets how often stats are logged (default 1 second).
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger sets the logger stats are written to (default the global zerolog logger).
func WithLogger(l zerolog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// withClock replaces time.Now, for tests.
func withClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		logger:         log.Logger,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Info().
		Float64("fps", fps).
		Float64("heap_mb", allocMB).
		Float64("alloc_rate_mb_s", allocRateMB).
		Uint32("gc", gcCount).
		Uint64("gc_last_us", lastPauseUs).
		Uint64("gc_max_us", maxPauseUs).
		Float64("sys_mb", sysMB).
		Msg("profiler")

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
