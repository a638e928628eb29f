package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader entry point runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// Visibility returns the wgpu shader stage matching the shader type.
func (t ShaderType) Visibility() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	default:
		return wgpu.ShaderStageNone
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is one WGSL entry point together with the resource layout it expects.
//
// Layouts are declared by the caller rather than derived from the source. A vertex and a fragment
// Shader may share one WGSL module; the renderer merges their bind group layouts per group.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage this shader runs in.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// BindGroupLayoutDescriptors retrieves the declared bind group layouts keyed by group index.
	// Every entry's visibility is this shader's stage.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts retrieves the vertex buffer layouts, in slot order. Empty for fragment shaders.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the shader module descriptor built from the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader creates a new Shader from WGSL source.
//
// The entry point defaults to "vs_main" for vertex shaders and "fs_main" for fragment shaders.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the entry point runs in
//   - source: the WGSL source code
//   - options: a variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: a new Shader instance with the provided configuration
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	s := &shader{
		key:                        key,
		source:                     source,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
	}
	switch shaderType {
	case ShaderTypeVertex:
		s.entryPoint = "vs_main"
	case ShaderTypeFragment:
		s.entryPoint = "fs_main"
	}
	for _, opt := range options {
		opt(s)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
