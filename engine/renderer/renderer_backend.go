package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
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

var (
	// ErrPipelineNotFound is returned when a pipeline key has not been registered.
	ErrPipelineNotFound = errors.New("pipeline not found")
	// ErrNoActivePass is returned when drawing or ending a pass outside BeginPass/EndPass.
	ErrNoActivePass = errors.New("no active render pass")
	// ErrPassInProgress is returned when a pass is begun, or the frame presented, while a pass is open.
	ErrPassInProgress = errors.New("render pass already in progress")
)

// RendererBackend is the GPU API specific half of the Renderer. The Renderer owns the pipeline
// cache and argument checks; the backend owns every GPU object.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules, bind group layouts, pipeline layout and
	// render pipeline for p, storing the result with p.SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// CreateColorTarget creates an offscreen color texture, its depth texture and its sampler.
	CreateColorTarget(t *ColorTarget) error

	// ResizeColorTarget recreates the textures of t at t.Width × t.Height, keeping the sampler.
	ResizeColorTarget(t *ColorTarget) error

	// CreateMesh uploads vertex and index data into new GPU buffers stored on m.
	CreateMesh(m *Mesh, vertexData, indexData []byte) error

	// UpdateMesh overwrites the vertex buffer of m from offset 0.
	UpdateMesh(m *Mesh, vertexData []byte)

	// CreateBuffer creates the GPU buffer for b, optionally uploading initial data.
	CreateBuffer(b *Buffer, data []byte) error

	// WriteBuffer queues a write into b at offset.
	WriteBuffer(b *Buffer, offset uint64, data []byte)

	// CreateBindGroup creates a bind group for group g of pipeline p.
	CreateBindGroup(bg *BindGroup, p pipeline.Pipeline, entries []BindingResource) error

	// BeginPass begins a render pass into target, or into the window surface when target is nil,
	// clearing it to clear. The frame command encoder is created on the first pass of a frame.
	BeginPass(target *ColorTarget, clear common.Color) error

	// Draw encodes an indexed, instanced draw in the current pass.
	Draw(p pipeline.Pipeline, mesh *Mesh, instances uint32, groups []*BindGroup) error

	// EndPass ends the current pass.
	EndPass() error

	// Present submits the frame's commands and presents the surface texture if one was acquired.
	Present() error

	// Release frees every GPU object owned by the backend.
	Release()
}
