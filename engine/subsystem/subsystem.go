// Package subsystem contains the render subsystems that turn scene content
// into GPU work. Subsystems are registered with the engine in a fixed order;
// every frame the engine runs all Update methods in registration order,
// uploads the shared global state once, then runs all Render methods in the
// same order inside the frame's render pass. Update order therefore equals
// render order, and neither changes after startup.
package subsystem

import (
	"github.com/Carmen-Shannon/prism-go/engine/frame"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderSubsystem is one stage of the per-frame pipeline. Implementations
// prepare CPU-side work during Update and record draw commands during Render.
//
// The point light subsystem is the designated writer of the shared global
// state; every other subsystem must treat the state argument as read-only so
// the uploaded state is the same no matter where the writer sits in the
// registration order.
type RenderSubsystem interface {
	// Name returns the subsystem's name, used in log output.
	//
	// Returns:
	//   - string: the subsystem name
	Name() string

	// Init creates the subsystem's GPU resources: pipelines, uniform buffers,
	// and anything else that outlives a single frame. Called once by the
	// engine before the first frame.
	//
	// Parameters:
	//   - r: the renderer to create GPU resources with
	//   - slotCount: the number of frame-resource slots in flight
	//
	// Returns:
	//   - error: an error if resource creation fails
	Init(r renderer.Renderer, slotCount int) error

	// Update runs the subsystem's CPU work for the frame: culling, transform
	// builds, uniform staging. ctx.Pass is nil here; recording draw commands
	// during Update is a contract violation.
	//
	// Parameters:
	//   - ctx: the frame context for this frame
	//   - state: the shared global state, writable only by the designated writer
	Update(ctx *frame.Context, state *frame.GPUGlobalState)

	// Render records the subsystem's draw commands into ctx.Pass. The shared
	// state has already been uploaded; Render must not modify it.
	//
	// Parameters:
	//   - ctx: the frame context, with Pass set to the open render pass
	Render(ctx *frame.Context)

	// Release frees the subsystem's GPU resources. The engine calls this at
	// shutdown after the GPU has gone idle.
	Release()
}

// globalStateLayout is the bind group layout for the per-frame global uniform
// at group 0. It matches the layout the renderer creates for the frame ring's
// uniform bindings; WebGPU treats structurally identical layouts as compatible,
// so pipelines built against this descriptor accept the ring's bind groups.
func globalStateLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Global State Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64((&frame.GPUGlobalState{}).Size()),
				},
			},
		},
	}
}

// objectDataLayout is the bind group layout for the per-object dynamic uniform
// at group 1, matching the layout created by CreateDynamicUniformBinding.
func objectDataLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Object Data Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   ObjectStride,
				},
			},
		},
	}
}
