package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// BufferKind selects the usage of a Buffer created through the Renderer.
type BufferKind int

const (
	// BufferUniform is a uniform buffer (var<uniform>).
	BufferUniform BufferKind = iota
	// BufferStorage is a read-only storage buffer (var<storage, read>).
	BufferStorage
)

func (k BufferKind) usage() wgpu.BufferUsage {
	switch k {
	case BufferStorage:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	default:
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	}
}

// ColorTarget is an offscreen color texture with a matching depth attachment and a sampler,
// usable both as a render pass target and as a sampled texture.
type ColorTarget struct {
	ID      uuid.UUID
	Label   string
	Width   int
	Height  int
	Sampler common.SamplerConfig

	texture      *wgpu.Texture
	view         *wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
	sampler      *wgpu.Sampler
}

// Release frees the GPU objects held by the target. Safe to call on a target without GPU objects.
func (t *ColorTarget) Release() {
	if t == nil {
		return
	}
	t.releaseTextures()
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
}

func (t *ColorTarget) releaseTextures() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
	if t.depthView != nil {
		t.depthView.Release()
		t.depthView = nil
	}
	if t.depthTexture != nil {
		t.depthTexture.Release()
		t.depthTexture = nil
	}
}

// Mesh is a pair of vertex and index buffers drawn with an indexed draw call.
type Mesh struct {
	ID         uuid.UUID
	Label      string
	IndexCount int
	VertexSize uint64

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
}

// Release frees the mesh buffers.
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// Buffer is a uniform or storage buffer.
type Buffer struct {
	ID    uuid.UUID
	Label string
	Kind  BufferKind
	Size  uint64

	buffer *wgpu.Buffer
}

// Release frees the buffer.
func (b *Buffer) Release() {
	if b == nil || b.buffer == nil {
		return
	}
	b.buffer.Release()
	b.buffer = nil
}

// BindGroup is a set of resources bound at one group index of one pipeline.
type BindGroup struct {
	ID          uuid.UUID
	Label       string
	PipelineKey string
	Group       int

	bindGroup *wgpu.BindGroup
}

// Release frees the bind group.
func (g *BindGroup) Release() {
	if g == nil || g.bindGroup == nil {
		return
	}
	g.bindGroup.Release()
	g.bindGroup = nil
}

// BindingResource is one entry of a bind group. Exactly one of Buffer, Texture or Sampler is set.
type BindingResource struct {
	Binding uint32
	Buffer  *Buffer
	Texture *ColorTarget
	Sampler *ColorTarget
}

// BufferBinding binds a whole buffer.
func BufferBinding(binding uint32, b *Buffer) BindingResource {
	return BindingResource{Binding: binding, Buffer: b}
}

// TextureBinding binds the color texture of a target.
func TextureBinding(binding uint32, t *ColorTarget) BindingResource {
	return BindingResource{Binding: binding, Texture: t}
}

// SamplerBinding binds the sampler of a target.
func SamplerBinding(binding uint32, t *ColorTarget) BindingResource {
	return BindingResource{Binding: binding, Sampler: t}
}

func (r BindingResource) entry() (wgpu.BindGroupEntry, error) {
	switch {
	case r.Buffer != nil:
		if r.Buffer.buffer == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("binding %d: buffer %q has no GPU buffer", r.Binding, r.Buffer.Label)
		}
		return wgpu.BindGroupEntry{
			Binding: r.Binding,
			Buffer:  r.Buffer.buffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}, nil
	case r.Texture != nil:
		if r.Texture.view == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("binding %d: target %q has no texture view", r.Binding, r.Texture.Label)
		}
		return wgpu.BindGroupEntry{Binding: r.Binding, TextureView: r.Texture.view}, nil
	case r.Sampler != nil:
		if r.Sampler.sampler == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("binding %d: target %q has no sampler", r.Binding, r.Sampler.Label)
		}
		return wgpu.BindGroupEntry{Binding: r.Binding, Sampler: r.Sampler.sampler}, nil
	default:
		return wgpu.BindGroupEntry{}, fmt.Errorf("binding %d: no resource set", r.Binding)
	}
}

func gpuLabel(label string, id uuid.UUID, kind string) string {
	return fmt.Sprintf("%s %s (%s)", label, kind, id.String()[:8])
}
