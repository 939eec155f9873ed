package engine

import (
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-freefly/engine/camera"
	"github.com/Carmen-Shannon/oxy-freefly/engine/input"
	"github.com/Carmen-Shannon/oxy-freefly/engine/profiler"
	"github.com/Carmen-Shannon/oxy-freefly/engine/renderer"
	"github.com/Carmen-Shannon/oxy-freefly/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the thread that owns the window: GLFW delivers input callbacks there,
// and the free-fly controller is stepped, uploaded and drawn there.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	tracker  input.Tracker

	profiler         *profiler.Profiler
	profilingEnabled bool

	logger *log.Logger

	frameCallback    func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	scrollSpeedStep  float64

	quitRequested atomic.Bool
}

// Engine drives the free-fly viewer: it feeds window input into the camera once per frame,
// renders, and reports frame statistics.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera stepped each frame.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Tracker returns the input tracker fed by the window callbacks.
	//
	// Returns:
	//   - input.Tracker: the tracker
	Tracker() input.Tracker

	// Renderer returns the renderer, or nil when the engine does not draw.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers a function called at the end of every frame.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frame runs one iteration: input snapshot, camera step (or reset), upload, draw, profiling.
	// A camera step error leaves the camera unchanged; the frame is still drawn.
	// An empty viewport (minimized window) skips the step and the draw.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - error: the camera step error, if any
	Frame(deltaTime float32, width, height int) error

	// Run starts the frame loop on the calling goroutine and blocks until the window closes.
	// Releases the renderer and closes the window on return.
	Run()

	// Quit asks the frame loop to stop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine. Missing pieces get defaults: a camera with a free-fly
// controller, an input tracker and a profiler. When a window is supplied its input callbacks
// are routed into the tracker and resizes reach the renderer and the camera aspect.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:          log.Default(),
		scrollSpeedStep: 1.1,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.tracker == nil {
		e.tracker = input.NewTracker()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil {
		e.bindWindow()
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Tracker() input.Tracker {
	return e.tracker
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) Frame(deltaTime float32, width, height int) error {
	f := e.tracker.Snapshot(deltaTime, int32(width), int32(height))
	if f.Reset {
		e.camera.ResetTransforms()
		e.logf("[Engine] camera reset")
	}

	// A minimized window has no viewport: the camera holds still and nothing is drawn.
	var stepErr error
	if width > 0 && height > 0 {
		stepErr = e.camera.Step(f.FrameInput)

		// Lost surfaces are skipped silently.
		if e.renderer != nil {
			e.renderer.WriteCamera(e.camera.Uniform())
			_ = e.renderer.RenderFrame()
		}
	}

	if e.frameCallback != nil {
		e.frameCallback(deltaTime)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.camera.Position(), e.camera.Forward())
	}

	return stepErr
}

func (e *engine) Run() {
	if e.window == nil {
		e.logf("[Engine] no window to run")
		return
	}

	lastFrame := time.Now()
	closed := false
	e.window.SetUpdateCallback(func() {
		if e.quitRequested.Load() {
			_ = e.window.Close()
			closed = true
			return
		}

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if err := e.Frame(dt, e.window.Width(), e.window.Height()); err != nil {
			e.logf("[Engine] camera step failed: %v", err)
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})

	e.window.ProcessMessages()

	if e.renderer != nil {
		e.renderer.Release()
	}
	if !closed {
		_ = e.window.Close()
	}
}

func (e *engine) Quit() {
	e.quitRequested.Store(true)
}

// bindWindow routes window callbacks into the tracker, renderer and camera.
func (e *engine) bindWindow() {
	w := e.window

	w.SetKeyDownCallback(e.tracker.KeyDown)
	w.SetKeyUpCallback(e.tracker.KeyUp)
	w.SetMouseDownCallback(e.tracker.MouseDown)
	w.SetMouseUpCallback(e.tracker.MouseUp)
	w.SetMouseMoveCallback(e.tracker.MouseMove)

	// Scroll scales the move speed geometrically.
	w.SetScrollCallback(func(delta float32) {
		speed := e.tracker.MoveSpeed() * float32(math.Pow(e.scrollSpeedStep, float64(delta)))
		e.tracker.SetMoveSpeed(speed)
	})

	w.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		if height > 0 {
			e.camera.SetAspect(float32(width) / float32(height))
		}
	})

	// Seed the tracker so the first pointer delta is measured from the real cursor.
	e.tracker.MouseMove(w.CursorPos())
	if w.Height() > 0 {
		e.camera.SetAspect(float32(w.Width()) / float32(w.Height()))
	}
}

func (e *engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// frameDuration converts a frame rate cap into a minimum frame duration. Non-positive rates uncap.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
