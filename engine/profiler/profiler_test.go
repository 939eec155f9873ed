package profiler_test

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-freefly/engine/profiler"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	var out bytes.Buffer
	p := profiler.NewProfiler(
		profiler.WithClock(clock.now),
		profiler.WithInterval(time.Second),
		profiler.WithLogger(log.New(&out, "", 0)),
	)

	pos := mgl32.Vec3{1, 2, 3}
	fwd := mgl32.Vec3{0, 0, -1}

	// 49 frames at 20ms stay inside the interval.
	for i := 0; i < 49; i++ {
		clock.advance(20 * time.Millisecond)
		if p.Tick(pos, fwd) {
			t.Fatalf("frame %d should not log yet", i)
		}
	}

	clock.advance(20 * time.Millisecond)
	if !p.Tick(pos, fwd) {
		t.Fatal("50th frame should log")
	}

	line := out.String()
	for _, want := range []string{
		"[Profiler] FPS: 50.00",
		"Pos: (1.00, 2.00, 3.00)",
		"Fwd: (0.00, 0.00, -1.00)",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q should contain %q", line, want)
		}
	}

	// The counter restarts after logging.
	clock.advance(time.Second / 2)
	if p.Tick(pos, fwd) {
		t.Error("half an interval after logging should not log")
	}
}

func TestTickWithoutLogger(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := profiler.NewProfiler(
		profiler.WithClock(clock.now),
		profiler.WithInterval(10*time.Millisecond),
		profiler.WithLogger(nil),
	)

	clock.advance(20 * time.Millisecond)
	if !p.Tick(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}) {
		t.Error("tick past the interval should report a sample even without a logger")
	}
}
