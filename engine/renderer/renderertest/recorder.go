// Package renderertest provides a Renderer that records calls instead of talking to a GPU.
package renderertest

import (
	"fmt"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/google/uuid"
)

// Op names a recorded Renderer call.
type Op string

const (
	OpBeginPass   Op = "begin_pass"
	OpDraw        Op = "draw"
	OpEndPass     Op = "end_pass"
	OpPresent     Op = "present"
	OpWriteBuffer Op = "write_buffer"
	OpUpdateMesh  Op = "update_mesh"
	OpResize      Op = "resize_target"
)

// SurfaceLabel is the Target recorded for passes into the window surface.
const SurfaceLabel = "<surface>"

// Call is one recorded Renderer call. Only the fields relevant to Op are set.
type Call struct {
	Op        Op
	Target    string
	Clear     common.Color
	Pipeline  string
	Mesh      string
	Instances uint32
	Groups    []string
	Buffer    string
	Offset    uint64
	Data      []byte
	Width     int
	Height    int
}

// Recorder is an in-memory renderer.Renderer. It validates pass ordering the way the GPU backend
// does and keeps every frame call in Calls.
type Recorder struct {
	Calls []Call

	Pipelines  map[string]pipeline.Pipeline
	Targets    []*renderer.ColorTarget
	Meshes     []*renderer.Mesh
	Buffers    []*renderer.Buffer
	BindGroups []*renderer.BindGroup

	// Buffer contents after all writes, keyed by buffer label.
	Contents map[string][]byte

	// FailBeginPass makes the next BeginPass fail once, the way a lost surface does.
	FailBeginPass bool

	width, height int
	inPass        bool
	passTarget    pipeline.TargetKind
	released      bool
}

var _ renderer.Renderer = &Recorder{}

// NewRecorder creates a Recorder with the given surface size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		Pipelines: make(map[string]pipeline.Pipeline),
		Contents:  make(map[string][]byte),
		width:     width,
		height:    height,
	}
}

// Reset forgets recorded calls, keeping resources.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Ops returns the recorded call names in order.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// CallsOf returns the recorded calls with the given Op.
func (r *Recorder) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Released reports whether Release was called.
func (r *Recorder) Released() bool {
	return r.released
}

func (r *Recorder) Pipeline(key string) pipeline.Pipeline {
	return r.Pipelines[key]
}

func (r *Recorder) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if _, ok := r.Pipelines[p.PipelineKey()]; !ok {
			r.Pipelines[p.PipelineKey()] = p
		}
	}
	return nil
}

func (r *Recorder) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = width, height
	return nil
}

func (r *Recorder) SurfaceSize() (int, int) {
	return r.width, r.height
}

func (r *Recorder) SetPresentMode(renderer.PresentMode) {}

func (r *Recorder) CreateColorTarget(label string, width, height int, sampler common.SamplerConfig) (*renderer.ColorTarget, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("color target %q: invalid size %dx%d", label, width, height)
	}
	t := &renderer.ColorTarget{ID: uuid.New(), Label: label, Width: width, Height: height, Sampler: sampler}
	r.Targets = append(r.Targets, t)
	return t, nil
}

func (r *Recorder) ResizeColorTarget(t *renderer.ColorTarget, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("color target %q: invalid size %dx%d", t.Label, width, height)
	}
	t.Width, t.Height = width, height
	r.Calls = append(r.Calls, Call{Op: OpResize, Target: t.Label, Width: width, Height: height})
	return nil
}

func (r *Recorder) CreateMesh(label string, vertexData, indexData []byte, indexCount int) (*renderer.Mesh, error) {
	m := &renderer.Mesh{ID: uuid.New(), Label: label, IndexCount: indexCount, VertexSize: uint64(len(vertexData))}
	r.Meshes = append(r.Meshes, m)
	r.Contents[label] = append([]byte(nil), vertexData...)
	return m, nil
}

func (r *Recorder) UpdateMesh(m *renderer.Mesh, vertexData []byte) error {
	if uint64(len(vertexData)) > m.VertexSize {
		return fmt.Errorf("mesh %q: %d bytes exceed vertex buffer of %d", m.Label, len(vertexData), m.VertexSize)
	}
	r.Contents[m.Label] = append([]byte(nil), vertexData...)
	r.Calls = append(r.Calls, Call{Op: OpUpdateMesh, Mesh: m.Label})
	return nil
}

func (r *Recorder) CreateBuffer(label string, kind renderer.BufferKind, size uint64, data []byte) (*renderer.Buffer, error) {
	if uint64(len(data)) > size {
		return nil, fmt.Errorf("buffer %q: %d bytes of data exceed size %d", label, len(data), size)
	}
	b := &renderer.Buffer{ID: uuid.New(), Label: label, Kind: kind, Size: size}
	r.Buffers = append(r.Buffers, b)
	contents := make([]byte, size)
	copy(contents, data)
	r.Contents[label] = contents
	return b, nil
}

func (r *Recorder) WriteBuffer(b *renderer.Buffer, offset uint64, data []byte) error {
	if offset+uint64(len(data)) > b.Size {
		return fmt.Errorf("buffer %q: write of %d bytes at %d exceeds size %d", b.Label, len(data), offset, b.Size)
	}
	copy(r.Contents[b.Label][offset:], data)
	r.Calls = append(r.Calls, Call{Op: OpWriteBuffer, Buffer: b.Label, Offset: offset, Data: append([]byte(nil), data...)})
	return nil
}

func (r *Recorder) CreateBindGroup(label, pipelineKey string, group int, entries ...renderer.BindingResource) (*renderer.BindGroup, error) {
	if _, ok := r.Pipelines[pipelineKey]; !ok {
		return nil, fmt.Errorf("bind group %q: %w: %q", label, renderer.ErrPipelineNotFound, pipelineKey)
	}
	for _, e := range entries {
		if e.Buffer == nil && e.Texture == nil && e.Sampler == nil {
			return nil, fmt.Errorf("bind group %q: binding %d: no resource set", label, e.Binding)
		}
	}
	bg := &renderer.BindGroup{ID: uuid.New(), Label: label, PipelineKey: pipelineKey, Group: group}
	r.BindGroups = append(r.BindGroups, bg)
	return bg, nil
}

func (r *Recorder) BeginPass(target *renderer.ColorTarget, clear common.Color) error {
	if r.inPass {
		return renderer.ErrPassInProgress
	}
	if r.FailBeginPass {
		r.FailBeginPass = false
		return fmt.Errorf("acquire surface texture: surface lost")
	}
	label := SurfaceLabel
	r.passTarget = pipeline.TargetSurface
	if target != nil {
		label = target.Label
		r.passTarget = pipeline.TargetOffscreen
	}
	r.inPass = true
	r.Calls = append(r.Calls, Call{Op: OpBeginPass, Target: label, Clear: clear})
	return nil
}

func (r *Recorder) Draw(pipelineKey string, mesh *renderer.Mesh, instances uint32, groups ...*renderer.BindGroup) error {
	p, ok := r.Pipelines[pipelineKey]
	if !ok {
		return fmt.Errorf("draw: %w: %q", renderer.ErrPipelineNotFound, pipelineKey)
	}
	if !r.inPass {
		return renderer.ErrNoActivePass
	}
	if p.Target() != r.passTarget {
		return fmt.Errorf("pipeline %q renders to %s but the current pass targets %s", pipelineKey, p.Target(), r.passTarget)
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Label
	}
	r.Calls = append(r.Calls, Call{Op: OpDraw, Pipeline: pipelineKey, Mesh: mesh.Label, Instances: instances, Groups: names})
	return nil
}

func (r *Recorder) EndPass() error {
	if !r.inPass {
		return renderer.ErrNoActivePass
	}
	r.inPass = false
	r.Calls = append(r.Calls, Call{Op: OpEndPass})
	return nil
}

func (r *Recorder) Present() error {
	if r.inPass {
		return renderer.ErrPassInProgress
	}
	r.Calls = append(r.Calls, Call{Op: OpPresent})
	return nil
}

func (r *Recorder) Release() {
	r.released = true
}
