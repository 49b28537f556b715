package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint is an option builder that overrides the default entry point name.
//
// Parameters:
//   - name: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point on a shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayoutDescriptor is an option builder that declares the bind
// group layout for a group index referenced by the shader source.
//
// Parameters:
//   - group: the bind group index
//   - desc: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that stores the descriptor on a shader
func WithBindGroupLayoutDescriptor(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayouts is an option builder that declares the vertex buffer
// layouts consumed by a vertex shader.
//
// Parameters:
//   - layouts: the vertex buffer layouts in slot order
//
// Returns:
//   - ShaderBuilderOption: a function that stores the layouts on a shader
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}
