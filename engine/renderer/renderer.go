package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-freefly/engine/camera"
	"github.com/Carmen-Shannon/oxy-freefly/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	vertexCount uint32

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *wgpu.Color
	gridHalfLines        int
	gridSpacing          float32
}

// Renderer draws a world-space reference grid through the camera uniform.
//
// Each frame the caller uploads the current camera with WriteCamera and then calls RenderFrame,
// which clears the surface, draws the grid and world axes and presents.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	SetClearColor(r, g, b, a float64)

	// WriteCamera uploads the camera uniform for the next frame.
	//
	// Parameters:
	//   - u: the packed camera uniform
	WriteCamera(u camera.GPUCameraUniform)

	// RenderFrame clears the surface, draws the grid and presents.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired; the frame is dropped
	RenderFrame() error

	// VertexCount returns the number of line vertices drawn each frame.
	//
	// Returns:
	//   - uint32: the vertex count
	VertexCount() uint32

	// Release frees all GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given window, configures its surface and uploads the grid.
// Adapter and device acquisition failures panic; pipeline and buffer failures are returned.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the line pipeline or grid buffer could not be created
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		gridHalfLines: 20,
		gridSpacing:   1,
	}

	// Options first so forceFallbackAdapter is known before the adapter request.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}
	r.backend.ConfigureSurface(w.Width(), w.Height())

	uniform := camera.GPUCameraUniform{}
	if err := r.backend.RegisterLinePipeline(lineShaderSource, uint64(uniform.Size())); err != nil {
		r.backend.Release()
		return nil, err
	}

	vertices := GridVertices(r.gridHalfLines, r.gridSpacing)
	if err := r.backend.InitVertexBuffer(MarshalLineVertices(vertices), uint32(len(vertices))); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to upload grid: %w", err)
	}
	r.vertexCount = uint32(len(vertices))

	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.backend.SetClearColor(wgpu.Color{R: red, G: green, B: blue, A: alpha})
}

func (r *renderer) WriteCamera(u camera.GPUCameraUniform) {
	r.backend.WriteCameraUniform(u.Marshal())
}

func (r *renderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.backend.DrawLines()
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) VertexCount() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vertexCount
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
