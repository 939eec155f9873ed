package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Profiler tracks frame rate, memory statistics and the camera pose for performance monitoring.
// Outputs one line to the log per update interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logger *log.Logger
	now    func() time.Time
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second
// and output goes to log.Default().
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		logger:         log.Default(),
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the current camera pose.
// When the update interval has elapsed it logs FPS, heap usage, allocation rate,
// GC count and pause times, and the camera position and view direction.
//
// Parameters:
//   - position: the camera's world-space position
//   - forward: the camera's view direction
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(position, forward mgl32.Vec3) bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
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

	if p.logger != nil {
		p.logger.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max: %d µs) | Pos: (%.2f, %.2f, %.2f) | Fwd: (%.2f, %.2f, %.2f)",
			fps, allocMB, allocRateMB, gcCount, maxPauseUs,
			position[0], position[1], position[2],
			forward[0], forward[1], forward[2])
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
