package binding

import "github.com/cogentcore/webgpu/wgpu"

// ProviderOption is a functional option used to configure a Provider during construction.
type ProviderOption func(*provider)

// NewProvider creates a new Provider with the provided options.
// Providers start GPU-less; the Renderer attaches buffers, bind groups, and the
// upload path when it initializes the provider.
//
// Parameters:
//   - label: a debug label identifying the provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - Provider: a new instance of Provider configured with the provided options
func NewProvider(label string, options ...ProviderOption) Provider {
	p := &provider{
		label: label,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// WithSize is an option builder that allocates the CPU staging area for the
// provider's uniform data.
//
// Parameters:
//   - size: the staging capacity in bytes
//
// Returns:
//   - ProviderOption: a function that allocates the staging area
func WithSize(size uint64) ProviderOption {
	return func(p *provider) {
		p.shadow = make([]byte, size)
	}
}

// WithBuffer is an option builder that sets the uniform buffer for this provider.
//
// Parameters:
//   - buf: the buffer to associate with this provider
//
// Returns:
//   - ProviderOption: a function that sets the buffer for this provider
func WithBuffer(buf *wgpu.Buffer) ProviderOption {
	return func(p *provider) {
		p.buffer = buf
	}
}

// WithBindGroup is an option builder that sets the bind group for this provider.
//
// Parameters:
//   - bg: the bind group to set for this provider
//
// Returns:
//   - ProviderOption: a function that sets the bind group for this provider
func WithBindGroup(bg *wgpu.BindGroup) ProviderOption {
	return func(p *provider) {
		p.bindGroup = bg
	}
}

// WithBindGroupLayout is an option builder that sets the bind group layout for this provider.
//
// Parameters:
//   - bgl: the bind group layout to use for this provider
//
// Returns:
//   - ProviderOption: a function that sets the bind group layout for this provider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) ProviderOption {
	return func(p *provider) {
		p.bindGroupLayout = bgl
	}
}

// WithUploadFunc is an option builder that installs the GPU upload path used by
// Flush.
//
// Parameters:
//   - fn: callback receiving the destination offset and staged bytes
//
// Returns:
//   - ProviderOption: a function that installs the upload path
func WithUploadFunc(fn func(offset uint64, data []byte)) ProviderOption {
	return func(p *provider) {
		p.upload = fn
	}
}
