package renderer

import "github.com/Carmen-Shannon/oxy-freefly/engine/camera"

const (
	lineVertexEntryPoint   = "vs_main"
	lineFragmentEntryPoint = "fs_main"
)

// lineShaderSource draws colored line lists through the camera uniform at group 0, binding 0.
const lineShaderSource = camera.GPUCameraUniformSource + `
@group(0) @binding(0) var<uniform> camera: CameraUniform;

struct VertexOut {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec3<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) color: vec3<f32>) -> VertexOut {
    var out: VertexOut;
    out.clip_position = camera.view_proj * vec4<f32>(position, 1.0);
    out.color = color;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color, 1.0);
}
`
