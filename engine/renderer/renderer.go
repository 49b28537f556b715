package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism-go/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines, allowing for easy retrieval and management of these
// resources. The Renderer also implements a backend which allows for multiple backend API
// implementations to exist.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// SetPipeline adds or updates a Pipeline in the cache with the given key.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to add or update in the cache
	//   - p: the Pipeline to add or update in the cache
	SetPipeline(key string, p pipeline.Pipeline)

	// SetPipelines replaces the entire pipeline cache with the provided map of Pipelines.
	//
	// Parameters:
	//   - pipelines: a map of pipeline keys to their corresponding Pipeline objects to set as the new cache
	SetPipelines(pipelines map[string]pipeline.Pipeline)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// AspectRatio returns the current surface width divided by height. Used to keep
	// projection matrices in step with the window size across resizes.
	//
	// Returns:
	//   - float32: the surface aspect ratio
	AspectRatio() float32

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// CreateUniformBinding creates a uniform buffer of the given size together with a
	// single-binding bind group, wired into a binding.Provider. Data staged on the
	// Provider with Write or WriteAt reaches the GPU when Flush is called.
	//
	// Parameters:
	//   - label: the debug label for the created GPU objects
	//   - size: the uniform buffer size in bytes
	//
	// Returns:
	//   - binding.Provider: the provider holding the buffer, layout, and bind group
	//   - error: an error if buffer or bind group creation fails
	CreateUniformBinding(label string, size uint64) (binding.Provider, error)

	// CreateDynamicUniformBinding creates a uniform buffer holding count elements of the
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
	CreateDynamicUniformBinding(label string, stride uint64, count int) (binding.Provider, error)

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
	// the frame. Returns an error wrapping ErrSurfaceUnavailable when the surface texture
	// cannot be acquired; callers should skip the frame entirely and retry next iteration.
	//
	// Returns:
	//   - CommandHandle: the opaque handle for this frame's recording session
	//   - error: an error if the surface texture or command encoder could not be created
	BeginFrame() (CommandHandle, error)

	// BeginTargetPass opens the main render pass targeting the frame's surface view.
	// Must be called after BeginFrame and any buffer uploads for the frame, and paired
	// with EndTargetPass.
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
	// presents the surface. Must be called once per frame after EndTargetPass.
	//
	// Parameters:
	//   - cmd: the CommandHandle returned by BeginFrame
	EndFrame(cmd CommandHandle)

	// WaitIdle blocks until the GPU has finished all submitted work. Call before
	// releasing GPU resources that an in-flight frame may still reference.
	WaitIdle()

	// Release waits for the GPU to go idle and releases the renderer's GPU objects.
	// Providers, mesh buffers, and other caller-created resources are released by
	// their owners before this is called.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and window.
// The window provides the platform-specific surface descriptor for surface creation.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window supplying the surface descriptor and initial surface size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) AspectRatio() float32 {
	return r.backend.AspectRatio()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if _, ok := r.pipelineCache[p.PipelineKey()]; ok {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	return nil
}

func (r *renderer) SetPipeline(key string, p pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelineCache[key] = p
}

func (r *renderer) SetPipelines(pipelines map[string]pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelineCache = pipelines
}

func (r *renderer) CreateUniformBinding(label string, size uint64) (binding.Provider, error) {
	return r.backend.CreateUniformProvider(label, size)
}

func (r *renderer) CreateDynamicUniformBinding(label string, stride uint64, count int) (binding.Provider, error) {
	return r.backend.CreateDynamicUniformProvider(label, stride, count)
}

func (r *renderer) InitMeshBuffers(provider binding.Provider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) WriteBuffers(writes []binding.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() (CommandHandle, error) {
	return r.backend.BeginFrame()
}

func (r *renderer) BeginTargetPass(cmd CommandHandle) RenderPass {
	return r.backend.BeginTargetPass(cmd)
}

func (r *renderer) EndTargetPass(pass RenderPass) {
	r.backend.EndTargetPass(pass)
}

func (r *renderer) EndFrame(cmd CommandHandle) {
	r.backend.EndFrame(cmd)
}

func (r *renderer) WaitIdle() {
	r.backend.WaitIdle()
}

func (r *renderer) Release() {
	r.backend.Release()
}
