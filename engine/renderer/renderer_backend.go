package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// ErrSurfaceUnavailable is returned by BeginFrame when the surface texture could not be
// acquired this frame (swapchain outdated after a resize, window minimized, surface lost).
// The condition is transient: the caller should skip the frame entirely and try again on
// the next iteration rather than treat it as fatal. Check with errors.Is.
var ErrSurfaceUnavailable = errors.New("surface unavailable")

// CommandHandle is an opaque token representing one frame's command recording session.
// It is produced by BeginFrame and must be passed back to BeginTargetPass and EndFrame
// for the same frame. The concrete type is backend-specific.
type CommandHandle any

// RenderPass records draw commands into the frame's render target between BeginTargetPass
// and EndTargetPass. All methods encode immediately into the underlying pass; the order of
// calls is the order of GPU work.
type RenderPass interface {
	// SetPipeline binds the given render pipeline for subsequent draw calls.
	//
	// Parameters:
	//   - p: the registered Pipeline to bind
	SetPipeline(p pipeline.Pipeline)

	// SetBindGroup binds a bind group at the given group index for subsequent draw calls.
	// Dynamic offsets apply, in order, to the bindings declared with dynamic offsets in
	// the group's layout; pass nil when the group has none.
	//
	// Parameters:
	//   - index: the bind group index to bind at
	//   - group: the bind group to bind
	//   - dynamicOffsets: byte offsets for dynamic bindings, or nil
	SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)

	// SetVertexBuffer binds a vertex buffer to the given slot.
	//
	// Parameters:
	//   - slot: the vertex buffer slot to bind at
	//   - buf: the vertex buffer to bind
	SetVertexBuffer(slot uint32, buf *wgpu.Buffer)

	// SetIndexBuffer binds the index buffer for subsequent indexed draw calls.
	//
	// Parameters:
	//   - buf: the index buffer to bind
	//   - format: the index element format (Uint16 or Uint32)
	SetIndexBuffer(buf *wgpu.Buffer, format wgpu.IndexFormat)

	// DrawIndexed encodes an indexed, instanced draw call using the bound pipeline,
	// bind groups, vertex buffer, and index buffer.
	//
	// Parameters:
	//   - indexCount: the number of indices to draw
	//   - instanceCount: the number of instances to draw
	//   - firstIndex: the offset into the index buffer to start at
	//   - baseVertex: the value added to each index before indexing the vertex buffer
	//   - firstInstance: the first instance to draw
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)

	// Draw encodes a non-indexed, instanced draw call using the bound pipeline and
	// bind groups. Used by shaders that synthesize geometry from the vertex index.
	//
	// Parameters:
	//   - vertexCount: the number of vertices to draw
	//   - instanceCount: the number of instances to draw
	//   - firstVertex: the first vertex to draw
	//   - firstInstance: the first instance to draw
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend is the backend contract implemented on top of the wgpu bindings.
type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface
	SetDevice(device *wgpu.Device)
	SetQueue(queue *wgpu.Queue)
	SetInstance(instance *wgpu.Instance)
	SetAdapter(adapter *wgpu.Adapter)
	SetSurface(surface *wgpu.Surface)

	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// AspectRatio returns the current surface width divided by height. Used to build
	// projection matrices that track the window size across resizes.
	//
	// Returns:
	//   - float32: the surface aspect ratio, or 1 before the surface is configured
	AspectRatio() float32

	// RegisterRenderPipeline is a high-level function that creates a render pipeline based on the provided pipeline.
	// It handles creating the shader modules, bind group layouts, pipeline layout, and render pipeline
	// from the pipeline's configuration.
	//
	// Parameters:
	//   - p: the pipeline object containing the shaders and configuration for the pipeline
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// CreateUniformProvider creates a uniform buffer of the given size together with a
	// single-binding bind group layout and bind group, wired into a binding.Provider whose
	// staged writes upload through the GPU queue on Flush.
	//
	// Parameters:
	//   - label: the debug label for the created GPU objects
	//   - size: the uniform buffer size in bytes
	//
	// Returns:
	//   - binding.Provider: the provider holding the buffer, layout, and bind group
	//   - error: an error if buffer or bind group creation fails
	CreateUniformProvider(label string, size uint64) (binding.Provider, error)

	// CreateDynamicUniformProvider creates a uniform buffer holding count elements of the
	// given stride, bound with a dynamic offset so one bind group serves every element.
	// The stride must satisfy the device's dynamic offset alignment (256 bytes).
	//
	// Parameters:
	//   - label: the debug label for the created GPU objects
	//   - stride: the aligned size of one element in bytes
	//   - count: the number of elements the buffer holds
	//
	// Returns:
	//   - binding.Provider: the provider holding the buffer, layout, and bind group
	//   - error: an error if buffer or bind group creation fails
	CreateDynamicUniformProvider(label string, stride uint64, count int) (binding.Provider, error)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given Provider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the Provider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider binding.Provider, vertexData, indexData []byte, indexCount int) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a Provider's uniform buffer at a given offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []binding.BufferWrite)

	// BeginFrame acquires the surface texture and opens a command recording session for
	// the frame. Returns ErrSurfaceUnavailable (wrapped) when the surface texture cannot
	// be acquired; the frame should be skipped and retried next iteration.
	//
	// Returns:
	//   - CommandHandle: the opaque handle for this frame's recording session
	//   - error: an error if the surface texture or command encoder could not be created
	BeginFrame() (CommandHandle, error)

	// BeginTargetPass opens the main render pass targeting the frame's surface view.
	// Must be called exactly once per frame, after BeginFrame and any buffer uploads
	// for the frame, and paired with EndTargetPass.
	//
	// Parameters:
	//   - cmd: the CommandHandle returned by BeginFrame
	//
	// Returns:
	//   - RenderPass: the pass to record draw commands into
	BeginTargetPass(cmd CommandHandle) RenderPass

	// EndTargetPass closes a render pass opened by BeginTargetPass.
	//
	// Parameters:
	//   - pass: the RenderPass returned by BeginTargetPass
	EndTargetPass(pass RenderPass)

	// EndFrame finishes the frame's command recording, submits it to the GPU queue, and
	// presents the surface. Must be called after EndTargetPass.
	//
	// Parameters:
	//   - cmd: the CommandHandle returned by BeginFrame
	EndFrame(cmd CommandHandle)

	// WaitIdle blocks until the GPU has finished all submitted work. Called before
	// releasing resources at shutdown so no in-flight frame still references them.
	WaitIdle()

	// Release waits for the GPU to go idle and releases the backend's own GPU objects.
	// Resources created for callers (providers, mesh buffers, pipelines) are released
	// by their owners, not here.
	Release()
}
