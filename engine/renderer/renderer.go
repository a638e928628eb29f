package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/pixelcube/engine/window"
	"github.com/google/uuid"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// A frame is a sequence of passes: BeginPass, any number of Draw calls, EndPass, repeated per
// target, then Present. Passes into offscreen ColorTargets and the window surface may be mixed in
// one frame; all of them are submitted together by Present.
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

	// RegisterPipelines creates the GPU pipeline objects for one or more pipelines and caches them
	// by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new size. Zero or negative sizes (a minimized
	// window) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be configured
	Resize(width, height int) error

	// SurfaceSize returns the size the surface was last configured with.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	SurfaceSize() (int, int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// CreateColorTarget creates an offscreen color target that can be rendered into and sampled.
	//
	// Parameters:
	//   - label: a debug label
	//   - width, height: the texture size in pixels, at least 1
	//   - sampler: the filtering used when the target is sampled
	//
	// Returns:
	//   - *ColorTarget: the new target
	//   - error: an error if the size is invalid or creation fails
	CreateColorTarget(label string, width, height int, sampler common.SamplerConfig) (*ColorTarget, error)

	// ResizeColorTarget recreates the textures of t at a new size. Bind groups that sample t
	// must be recreated afterwards.
	//
	// Parameters:
	//   - t: the target to resize
	//   - width, height: the new size in pixels, at least 1
	//
	// Returns:
	//   - error: an error if the size is invalid or creation fails
	ResizeColorTarget(t *ColorTarget, width, height int) error

	// CreateMesh uploads vertex and index data.
	//
	// Parameters:
	//   - label: a debug label
	//   - vertexData: packed vertices
	//   - indexData: packed uint32 indices
	//   - indexCount: the number of indices drawn
	//
	// Returns:
	//   - *Mesh: the new mesh
	//   - error: an error if creation fails
	CreateMesh(label string, vertexData, indexData []byte, indexCount int) (*Mesh, error)

	// UpdateMesh replaces the vertex data of a mesh. The new data must not be larger than the original.
	//
	// Parameters:
	//   - m: the mesh to update
	//   - vertexData: packed vertices
	//
	// Returns:
	//   - error: an error if the data does not fit
	UpdateMesh(m *Mesh, vertexData []byte) error

	// CreateBuffer creates a uniform or storage buffer of the given size, uploading data when it
	// is not nil.
	//
	// Parameters:
	//   - label: a debug label
	//   - kind: uniform or storage
	//   - size: the buffer size in bytes
	//   - data: optional initial contents
	//
	// Returns:
	//   - *Buffer: the new buffer
	//   - error: an error if creation fails
	CreateBuffer(label string, kind BufferKind, size uint64, data []byte) (*Buffer, error)

	// WriteBuffer queues a write of data into b at offset.
	//
	// Parameters:
	//   - b: the destination buffer
	//   - offset: the byte offset
	//   - data: the bytes to write
	//
	// Returns:
	//   - error: an error if the write would overflow the buffer
	WriteBuffer(b *Buffer, offset uint64, data []byte) error

	// CreateBindGroup binds resources at one group index of a registered pipeline.
	//
	// Parameters:
	//   - label: a debug label
	//   - pipelineKey: the pipeline whose layout is used
	//   - group: the @group index
	//   - entries: the resources, see BufferBinding, TextureBinding and SamplerBinding
	//
	// Returns:
	//   - *BindGroup: the new bind group
	//   - error: ErrPipelineNotFound, or an error if creation fails
	CreateBindGroup(label, pipelineKey string, group int, entries ...BindingResource) (*BindGroup, error)

	// BeginPass begins a render pass into target, or into the window surface when target is nil.
	//
	// Parameters:
	//   - target: the offscreen target, or nil for the surface
	//   - clear: the clear color
	//
	// Returns:
	//   - error: ErrPassInProgress, or an error if the surface texture cannot be acquired
	BeginPass(target *ColorTarget, clear common.Color) error

	// Draw encodes an indexed, instanced draw with the given pipeline in the current pass.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline to draw with
	//   - mesh: the vertex and index buffers
	//   - instances: the instance count
	//   - groups: the bind groups, each set at its own group index
	//
	// Returns:
	//   - error: ErrPipelineNotFound, ErrNoActivePass, or a target mismatch
	Draw(pipelineKey string, mesh *Mesh, instances uint32, groups ...*BindGroup) error

	// EndPass ends the current pass.
	//
	// Returns:
	//   - error: ErrNoActivePass, or an encoder error
	EndPass() error

	// Present submits the frame and presents the surface.
	//
	// Returns:
	//   - error: ErrPassInProgress, or a submission error
	Present() error

	// Release frees the pipelines and device. Resources created through the Renderer are released
	// by their owners.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing into the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the new Renderer
//   - error: an error if the adapter, device or surface cannot be set up
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.Resize(w.Width(), w.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return nil
}

func (r *renderer) SurfaceSize() (int, int) {
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) CreateColorTarget(label string, width, height int, sampler common.SamplerConfig) (*ColorTarget, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("color target %q: invalid size %dx%d", label, width, height)
	}
	t := &ColorTarget{
		ID:      uuid.New(),
		Label:   label,
		Width:   width,
		Height:  height,
		Sampler: sampler,
	}
	if err := r.backend.CreateColorTarget(t); err != nil {
		return nil, fmt.Errorf("create color target %q: %w", label, err)
	}
	return t, nil
}

func (r *renderer) ResizeColorTarget(t *ColorTarget, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("color target %q: invalid size %dx%d", t.Label, width, height)
	}
	if t.Width == width && t.Height == height {
		return nil
	}
	t.Width, t.Height = width, height
	if err := r.backend.ResizeColorTarget(t); err != nil {
		return fmt.Errorf("resize color target %q: %w", t.Label, err)
	}
	return nil
}

func (r *renderer) CreateMesh(label string, vertexData, indexData []byte, indexCount int) (*Mesh, error) {
	m := &Mesh{
		ID:         uuid.New(),
		Label:      label,
		IndexCount: indexCount,
		VertexSize: uint64(len(vertexData)),
	}
	if err := r.backend.CreateMesh(m, vertexData, indexData); err != nil {
		return nil, fmt.Errorf("create mesh %q: %w", label, err)
	}
	return m, nil
}

func (r *renderer) UpdateMesh(m *Mesh, vertexData []byte) error {
	if uint64(len(vertexData)) > m.VertexSize {
		return fmt.Errorf("mesh %q: %d bytes exceed vertex buffer of %d", m.Label, len(vertexData), m.VertexSize)
	}
	r.backend.UpdateMesh(m, vertexData)
	return nil
}

func (r *renderer) CreateBuffer(label string, kind BufferKind, size uint64, data []byte) (*Buffer, error) {
	if uint64(len(data)) > size {
		return nil, fmt.Errorf("buffer %q: %d bytes of data exceed size %d", label, len(data), size)
	}
	b := &Buffer{
		ID:    uuid.New(),
		Label: label,
		Kind:  kind,
		Size:  size,
	}
	if err := r.backend.CreateBuffer(b, data); err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", label, err)
	}
	return b, nil
}

func (r *renderer) WriteBuffer(b *Buffer, offset uint64, data []byte) error {
	if offset+uint64(len(data)) > b.Size {
		return fmt.Errorf("buffer %q: write of %d bytes at %d exceeds size %d", b.Label, len(data), offset, b.Size)
	}
	r.backend.WriteBuffer(b, offset, data)
	return nil
}

func (r *renderer) CreateBindGroup(label, pipelineKey string, group int, entries ...BindingResource) (*BindGroup, error) {
	p, exists := r.pipelineCache[pipelineKey]
	if !exists {
		return nil, fmt.Errorf("bind group %q: %w: %q", label, ErrPipelineNotFound, pipelineKey)
	}
	bg := &BindGroup{
		ID:          uuid.New(),
		Label:       label,
		PipelineKey: pipelineKey,
		Group:       group,
	}
	if err := r.backend.CreateBindGroup(bg, p, entries); err != nil {
		return nil, fmt.Errorf("create bind group %q: %w", label, err)
	}
	return bg, nil
}

func (r *renderer) BeginPass(target *ColorTarget, clear common.Color) error {
	return r.backend.BeginPass(target, clear)
}

func (r *renderer) Draw(pipelineKey string, mesh *Mesh, instances uint32, groups ...*BindGroup) error {
	p, exists := r.pipelineCache[pipelineKey]
	if !exists {
		return fmt.Errorf("draw: %w: %q", ErrPipelineNotFound, pipelineKey)
	}
	return r.backend.Draw(p, mesh, instances, groups)
}

func (r *renderer) EndPass() error {
	return r.backend.EndPass()
}

func (r *renderer) Present() error {
	return r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
	r.pipelineCache = make(map[string]pipeline.Pipeline)
}
