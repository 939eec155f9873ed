package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/oxy-freefly/engine"
	"github.com/Carmen-Shannon/oxy-freefly/engine/camera"
	"github.com/Carmen-Shannon/oxy-freefly/engine/input"
	"github.com/Carmen-Shannon/oxy-freefly/engine/renderer"
	"github.com/Carmen-Shannon/oxy-freefly/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

var Arguments = struct {
	Width       int
	Height      int
	Sensitivity float64
	MoveSpeed   float64
	VSync       bool
	Relative    bool
	NoMSAA      bool
	Software    bool
	Profile     bool
	FrameLimit  float64
}{
	Width:       1280,
	Height:      720,
	Sensitivity: 0.23,
	MoveSpeed:   5,
	VSync:       true,
}

func main() {
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "window width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "window height")
	flag.Float64Var(&Arguments.Sensitivity, "sensitivity", Arguments.Sensitivity, "mouse sensitivity")
	flag.Float64Var(&Arguments.MoveSpeed, "speed", Arguments.MoveSpeed, "move speed in units per second")
	flag.BoolVar(&Arguments.VSync, "vsync", Arguments.VSync, "wait for vertical blank")
	flag.BoolVar(&Arguments.Relative, "relative", Arguments.Relative, "feed the controller viewport-relative pointer coordinates")
	flag.BoolVar(&Arguments.NoMSAA, "no-msaa", Arguments.NoMSAA, "disable multisampling")
	flag.BoolVar(&Arguments.Software, "software", Arguments.Software, "force the software fallback adapter")
	flag.BoolVar(&Arguments.Profile, "profile", Arguments.Profile, "log frame stats once per second")
	flag.Float64Var(&Arguments.FrameLimit, "fps", Arguments.FrameLimit, "frame rate cap (0 = uncapped)")
	flag.Parse()

	w := window.NewWindow(
		window.WithTitle("oxy freefly"),
		window.WithSize(Arguments.Width, Arguments.Height),
	)

	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithForceSoftwareRenderer(Arguments.Software),
		renderer.WithGrid(25, 1),
	}
	if !Arguments.VSync {
		rendererOptions = append(rendererOptions, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	if Arguments.NoMSAA {
		rendererOptions = append(rendererOptions, renderer.WithMSAA(renderer.MSAAOff))
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w, rendererOptions...)
	if err != nil {
		log.Fatalf("[FreeFly] failed to create renderer: %v", err)
	}

	ctrl := camera.NewFreeFlyController(
		camera.WithMouseSensitivity(float32(Arguments.Sensitivity)),
		camera.WithPosition(mgl32.Vec3{0, 2, 8}),
		camera.WithLookAt(mgl32.Vec3{0, 0, 0}),
	)
	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithNear(0.05),
		camera.WithFar(500),
	)

	mode := camera.PointerModePixel
	if Arguments.Relative {
		mode = camera.PointerModeRelative
	}
	tracker := input.NewTracker(
		input.WithMoveSpeed(float32(Arguments.MoveSpeed)),
		input.WithPointerMode(mode),
	)

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithTracker(tracker),
		engine.WithProfiling(Arguments.Profile),
		engine.WithRenderFrameLimit(Arguments.FrameLimit),
	)

	log.Printf("[FreeFly] %s pointer mode, %d grid vertices; drag LMB to look, RMB to roll, WASD/QE to move, R to reset", mode, r.VertexCount())
	eng.Run()
}
