package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShaderDefaults(t *testing.T) {
	vs := NewShader("a", ShaderTypeVertex, "src")
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, "src", vs.Module().WGSLDescriptor.Code)
	assert.Equal(t, "a", vs.Module().Label)

	fs := NewShader("b", ShaderTypeFragment, "src", WithEntryPoint("main"))
	assert.Equal(t, "main", fs.EntryPoint())
	assert.Empty(t, fs.VertexLayouts())
}

func TestWithBindGroupSetsVisibility(t *testing.T) {
	fs := NewShader("f", ShaderTypeFragment, "", WithBindGroup(1, TextureEntry(0), SamplerEntry(1)))
	desc, ok := fs.BindGroupLayoutDescriptors()[1]
	require.True(t, ok)
	require.Len(t, desc.Entries, 2)
	for _, e := range desc.Entries {
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[1].Sampler.Type)
}

func TestLatticeShaders(t *testing.T) {
	vs, fs := LatticeShaders()
	assert.Contains(t, vs.Source(), "fn vs_main")
	assert.Contains(t, fs.Source(), "fn fs_main")
	require.Len(t, vs.VertexLayouts(), 1)

	g0 := vs.BindGroupLayoutDescriptors()[0]
	require.Len(t, g0.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, g0.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(LatticeGlobalsSize), g0.Entries[0].Buffer.MinBindingSize)

	g1 := vs.BindGroupLayoutDescriptors()[1]
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, g1.Entries[0].Buffer.Type)

	_, ok := fs.BindGroupLayoutDescriptors()[1]
	assert.False(t, ok)
}

func TestCompositeShaders(t *testing.T) {
	vs, fs := CompositeShaders()
	assert.True(t, strings.Contains(fs.Source(), "textureSample"))
	assert.Contains(t, vs.BindGroupLayoutDescriptors(), 0)
	assert.Contains(t, fs.BindGroupLayoutDescriptors(), 1)
	assert.Equal(t, uint64(CompositeQuadSize), vs.BindGroupLayoutDescriptors()[0].Entries[0].Buffer.MinBindingSize)
}
