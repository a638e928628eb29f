package shader

import (
	_ "embed"

	"github.com/Carmen-Shannon/pixelcube/engine/geometry"
)

//go:embed wgsl/lattice.wgsl
var latticeSource string

//go:embed wgsl/composite.wgsl
var compositeSource string

const (
	LatticeKey   = "lattice"
	CompositeKey = "composite"

	// LatticeGlobalsSize is the byte size of the lattice Globals uniform struct.
	LatticeGlobalsSize = 256
	// LatticeOffsetStride is the byte size of one per-instance offset (vec4<f32>).
	LatticeOffsetStride = 16
	// CompositeQuadSize is the byte size of the composite Quad uniform struct.
	CompositeQuadSize = 128
)

// LatticeShaders returns the vertex and fragment stages of the instanced cube shader.
//
// Group 0 binding 0 is the scene uniform, read by both stages. Group 1 binding 0 is the
// read-only array of per-instance cell offsets.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func LatticeShaders() (Shader, Shader) {
	vs := NewShader(LatticeKey+"_vs", ShaderTypeVertex, latticeSource,
		WithVertexLayouts(geometry.VertexBufferLayout()),
		WithBindGroup(0, UniformEntry(0, LatticeGlobalsSize)),
		WithBindGroup(1, ReadOnlyStorageEntry(0, LatticeOffsetStride)),
	)
	fs := NewShader(LatticeKey+"_fs", ShaderTypeFragment, latticeSource,
		WithBindGroup(0, UniformEntry(0, LatticeGlobalsSize)),
	)
	return vs, fs
}

// CompositeShaders returns the vertex and fragment stages of the pass-through quad shader.
//
// Group 0 binding 0 is the quad transform uniform. Group 1 holds the sampled scene texture at
// binding 0 and its sampler at binding 1.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func CompositeShaders() (Shader, Shader) {
	vs := NewShader(CompositeKey+"_vs", ShaderTypeVertex, compositeSource,
		WithVertexLayouts(geometry.VertexBufferLayout()),
		WithBindGroup(0, UniformEntry(0, CompositeQuadSize)),
	)
	fs := NewShader(CompositeKey+"_fs", ShaderTypeFragment, compositeSource,
		WithBindGroup(1, TextureEntry(0), SamplerEntry(1)),
	)
	return vs, fs
}
