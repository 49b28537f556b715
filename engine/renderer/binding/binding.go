package binding

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// provider is the unexported implementation of Provider.
type provider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when
	// no longer needed. They are populated by the Renderer during initialization,
	// not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffer is the uniform buffer backing the bind group, or nil for mesh-only providers.
	buffer *wgpu.Buffer

	// shadow is the CPU staging copy of the uniform buffer. Writes land here
	// first and reach the GPU on Flush.
	shadow []byte
	// dirty is the staged byte watermark since the last Flush.
	dirty int
	// upload pushes staged bytes to the GPU buffer. Installed by the Renderer
	// when the buffer is created; nil until then, which makes Flush a no-op.
	upload func(offset uint64, data []byte)

	// The following fields stage mesh geometry for draw calls.

	// vertexBuffer is the GPU vertex buffer created for this provider, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer created for this provider, or nil if not initialized with the Renderer.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices for draw calls, used to issue drawIndexed calls for this provider.
	indexCount int
}

// Provider defines the interface for components that own GPU buffer resources.
// Components (frame slots, subsystems, meshes) hold a Provider to describe
// their GPU binding requirements. The Renderer initializes the GPU resources
// and installs the upload path; the component then writes through the staging
// API each frame.
//
// Usage pattern:
//  1. The Renderer creates a Provider sized for the component's uniform data
//  2. The component stages bytes with Write or WriteAt during the update phase
//  3. The component calls Flush once to push staged bytes to the GPU
//  4. The component passes BindGroup() to render pass bindings for draw calls
type Provider interface {
	// Release releases any GPU resources held by this provider.
	// It will clean up all buffers and bind groups held by the provider.
	Release()

	// Label returns the debug label for this provider.
	// Used for debugging and profiling purposes.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout for this provider.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer backing the bind group.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer() *wgpu.Buffer

	// Size returns the staging capacity in bytes. Writes beyond this size fail.
	//
	// Returns:
	//   - uint64: the staging buffer size in bytes
	Size() uint64

	// Write stages data at the start of the staging buffer. The bytes reach the
	// GPU on the next Flush.
	//
	// Parameters:
	//   - data: the bytes to stage
	//
	// Returns:
	//   - error: an error if the data exceeds the staging capacity
	Write(data []byte) error

	// WriteAt stages data at a byte offset into the staging buffer. The bytes
	// reach the GPU on the next Flush.
	//
	// Parameters:
	//   - offset: destination byte offset
	//   - data: the bytes to stage
	//
	// Returns:
	//   - error: an error if the write extends past the staging capacity
	WriteAt(offset uint64, data []byte) error

	// Flush pushes all bytes staged since the last Flush to the GPU buffer.
	// A no-op when nothing is staged or no GPU buffer exists yet.
	Flush()

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup sets the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer sets the uniform buffer after GPU initialization.
	//
	// Parameters:
	//   - buf: the created buffer
	SetBuffer(buf *wgpu.Buffer)

	// SetUploadFunc installs the GPU upload path used by Flush.
	//
	// Parameters:
	//   - fn: callback receiving the destination offset and staged bytes
	SetUploadFunc(fn func(offset uint64, data []byte))

	// SetVertexBuffer stores the GPU vertex buffer after creation.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the GPU index buffer after creation.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

// Compile-time check that provider implements Provider
var _ Provider = &provider{}

func (p *provider) Label() string {
	return p.label
}

func (p *provider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *provider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *provider) Buffer() *wgpu.Buffer {
	return p.buffer
}

func (p *provider) Size() uint64 {
	return uint64(len(p.shadow))
}

func (p *provider) Write(data []byte) error {
	return p.WriteAt(0, data)
}

func (p *provider) WriteAt(offset uint64, data []byte) error {
	end := offset + uint64(len(data))
	if end > uint64(len(p.shadow)) {
		return fmt.Errorf("binding %q: write of %d bytes at offset %d exceeds staging size %d", p.label, len(data), offset, len(p.shadow))
	}
	copy(p.shadow[offset:end], data)
	if int(end) > p.dirty {
		p.dirty = int(end)
	}
	return nil
}

func (p *provider) Flush() {
	if p.dirty == 0 || p.upload == nil {
		return
	}
	p.upload(0, p.shadow[:p.dirty])
	p.dirty = 0
}

func (p *provider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *provider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *provider) IndexCount() int {
	return p.indexCount
}

func (p *provider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *provider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *provider) SetBuffer(buf *wgpu.Buffer) {
	p.buffer = buf
}

func (p *provider) SetUploadFunc(fn func(offset uint64, data []byte)) {
	p.upload = fn
}

func (p *provider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *provider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *provider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *provider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.buffer != nil {
		p.buffer.Release()
		p.buffer = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.upload = nil
	p.dirty = 0
}
