package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name.
//
// Parameters:
//   - name: the WGSL function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroup declares the layout of one bind group. Entry visibility is set to the shader's stage.
//
// Parameters:
//   - group: the @group index
//   - entries: the binding entries of the group
//
// Returns:
//   - ShaderBuilderOption: a function that records the bind group layout
func WithBindGroup(group int, entries ...wgpu.BindGroupLayoutEntry) ShaderBuilderOption {
	return func(s *shader) {
		vis := s.shaderType.Visibility()
		out := make([]wgpu.BindGroupLayoutEntry, len(entries))
		for i, e := range entries {
			e.Visibility = vis
			out[i] = e
		}
		s.bindGroupLayoutDescriptors[group] = wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s group %d", s.key, group),
			Entries: out,
		}
	}
}

// WithVertexLayouts sets the vertex buffer layouts consumed by a vertex shader, in slot order.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

// UniformEntry describes a uniform buffer binding.
//
// Parameters:
//   - binding: the @binding index
//   - minSize: the size of the WGSL struct in bytes
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the layout entry
func UniformEntry(binding uint32, minSize uint64) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Binding = binding
	e.Buffer.Type = wgpu.BufferBindingTypeUniform
	e.Buffer.MinBindingSize = minSize
	return e
}

// ReadOnlyStorageEntry describes a var<storage, read> buffer binding.
//
// Parameters:
//   - binding: the @binding index
//   - minSize: the size of one array element in bytes
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the layout entry
func ReadOnlyStorageEntry(binding uint32, minSize uint64) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Binding = binding
	e.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
	e.Buffer.MinBindingSize = minSize
	return e
}

// TextureEntry describes a texture_2d<f32> binding.
//
// Parameters:
//   - binding: the @binding index
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the layout entry
func TextureEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Binding = binding
	e.Texture.SampleType = wgpu.TextureSampleTypeFloat
	e.Texture.ViewDimension = wgpu.TextureViewDimension2D
	e.Texture.Multisampled = false
	return e
}

// SamplerEntry describes a filtering sampler binding.
//
// Parameters:
//   - binding: the @binding index
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the layout entry
func SamplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Binding = binding
	e.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	return e
}
