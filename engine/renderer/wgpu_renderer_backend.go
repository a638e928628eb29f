package renderer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// offscreenFormat is the color format of every ColorTarget.
const offscreenFormat = wgpu.TextureFormatRGBA8UnormSrgb

// depthFormat is the format of the depth attachment paired with each ColorTarget.
const depthFormat = wgpu.TextureFormatDepth24Plus

type wgpuRendererBackendImpl struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode // defaults to PresentModeFifo (VSync)

	// bind group layouts created per pipeline key, indexed by group
	layouts   map[string][]*wgpu.BindGroupLayout
	pipelines []*wgpu.RenderPipeline

	// Frame state shared by every pass until Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	passTarget   pipeline.TargetKind
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackendImpl, error) {
	b := &wgpuRendererBackendImpl{
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		layouts:     make(map[string][]*wgpu.BindGroupLayout),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "pixelcube device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = pickSurfaceFormat(capabilities.Formats)

	return b, nil
}

// pickSurfaceFormat prefers an sRGB swapchain so the sRGB offscreen texture is copied through unchanged.
func pickSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f
		}
	}
	return formats[0]
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.AlphaModes) == 0 {
		return errors.New("surface reports no alpha modes")
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("vertex shader %q: %w", vertexShader.Key(), err)
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("fragment shader %q: %w", fragmentShader.Key(), err)
	}
	defer fs.Release()

	merged := mergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())
	maxGroup := -1
	for g := range merged {
		if g > maxGroup {
			maxGroup = g
		}
	}
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	registered := false
	defer func() {
		if !registered {
			releaseBindGroupLayouts(bindGroupLayouts)
		}
	}()
	for g := 0; g <= maxGroup; g++ {
		desc := merged[g]
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	colorState := wgpu.ColorTargetState{
		Format:    offscreenFormat,
		WriteMask: p.WriteMask(),
	}
	var depthStencil *wgpu.DepthStencilState
	switch p.Target() {
	case pipeline.TargetSurface:
		colorState.Format = b.surfaceFormat
	default:
		depthCompare := wgpu.CompareFunctionLess
		if !p.DepthTestEnabled() {
			depthCompare = wgpu.CompareFunctionAlways
		}
		depthStencil = &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	if p.BlendEnabled() {
		colorState.Blend = p.BlendState()
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{colorState},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: depthStencil,
	})
	if err != nil {
		return err
	}

	registered = true
	b.layouts[p.PipelineKey()] = bindGroupLayouts
	b.pipelines = append(b.pipelines, created)
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) CreateColorTarget(t *ColorTarget) error {
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         gpuLabel(t.Label, t.ID, "sampler"),
		AddressModeU:  common.Coalesce(t.Sampler.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(t.Sampler.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(t.Sampler.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(t.Sampler.MagFilter, wgpu.FilterModeNearest),
		MinFilter:     common.Coalesce(t.Sampler.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(t.Sampler.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	t.sampler = samp
	return b.createTargetTextures(t)
}

func (b *wgpuRendererBackendImpl) ResizeColorTarget(t *ColorTarget) error {
	t.releaseTextures()
	return b.createTargetTextures(t)
}

func (b *wgpuRendererBackendImpl) createTargetTextures(t *ColorTarget) error {
	size := wgpu.Extent3D{
		Width:              uint32(t.Width),
		Height:             uint32(t.Height),
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         gpuLabel(t.Label, t.ID, "color"),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        offscreenFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return err
	}
	t.texture = tex
	if t.view, err = tex.CreateView(nil); err != nil {
		return err
	}

	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         gpuLabel(t.Label, t.ID, "depth"),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	t.depthTexture = depth
	if t.depthView, err = depth.CreateView(nil); err != nil {
		return err
	}
	return nil
}

func (b *wgpuRendererBackendImpl) CreateMesh(m *Mesh, vertexData, indexData []byte) error {
	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            gpuLabel(m.Label, m.ID, "vertex"),
			Size:             uint64(len(vertexData)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		m.vertexBuffer = buf
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            gpuLabel(m.Label, m.ID, "index"),
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		m.indexBuffer = buf
	}
	return nil
}

func (b *wgpuRendererBackendImpl) UpdateMesh(m *Mesh, vertexData []byte) {
	if m.vertexBuffer == nil || len(vertexData) == 0 {
		return
	}
	b.queue.WriteBuffer(m.vertexBuffer, 0, vertexData)
}

func (b *wgpuRendererBackendImpl) CreateBuffer(buf *Buffer, data []byte) error {
	created, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: gpuLabel(buf.Label, buf.ID, "buffer"),
		Size:  buf.Size,
		Usage: buf.Kind.usage(),
	})
	if err != nil {
		return err
	}
	buf.buffer = created
	if len(data) > 0 {
		b.queue.WriteBuffer(created, 0, data)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf *Buffer, offset uint64, data []byte) {
	if buf.buffer == nil {
		return
	}
	b.queue.WriteBuffer(buf.buffer, offset, data)
}

func (b *wgpuRendererBackendImpl) CreateBindGroup(bg *BindGroup, p pipeline.Pipeline, entries []BindingResource) error {
	layouts := b.layouts[p.PipelineKey()]
	if bg.Group < 0 || bg.Group >= len(layouts) {
		return fmt.Errorf("pipeline %q has no bind group %d", p.PipelineKey(), bg.Group)
	}

	bindGroupEntries := make([]wgpu.BindGroupEntry, len(entries))
	for i, e := range entries {
		entry, err := e.entry()
		if err != nil {
			return err
		}
		bindGroupEntries[i] = entry
	}

	created, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   gpuLabel(bg.Label, bg.ID, "bind group"),
		Layout:  layouts[bg.Group],
		Entries: bindGroupEntries,
	})
	if err != nil {
		return err
	}
	bg.bindGroup = created
	return nil
}

func (b *wgpuRendererBackendImpl) BeginPass(target *ColorTarget, clear common.Color) error {
	if b.framePass != nil {
		return ErrPassInProgress
	}
	if b.frameEncoder == nil {
		encoder, err := b.device.CreateCommandEncoder(nil)
		if err != nil {
			return err
		}
		b.frameEncoder = encoder
	}

	attachment := wgpu.RenderPassColorAttachment{
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear.Linear().WGPU(),
	}
	desc := &wgpu.RenderPassDescriptor{}

	if target == nil {
		if b.frameSurface == nil {
			surfaceTexture, err := b.surface.GetCurrentTexture()
			if err != nil {
				b.abortFrame()
				return fmt.Errorf("acquire surface texture: %w", err)
			}
			view, err := surfaceTexture.CreateView(nil)
			if err != nil {
				surfaceTexture.Release()
				b.abortFrame()
				return err
			}
			b.frameSurface = surfaceTexture
			b.frameView = view
		}
		attachment.View = b.frameView
		b.passTarget = pipeline.TargetSurface
	} else {
		if target.view == nil {
			return fmt.Errorf("color target %q has no texture", target.Label)
		}
		attachment.View = target.view
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            target.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		}
		b.passTarget = pipeline.TargetOffscreen
	}
	desc.ColorAttachments = []wgpu.RenderPassColorAttachment{attachment}

	b.framePass = b.frameEncoder.BeginRenderPass(desc)
	return nil
}

func (b *wgpuRendererBackendImpl) Draw(p pipeline.Pipeline, mesh *Mesh, instances uint32, groups []*BindGroup) error {
	if b.framePass == nil {
		return ErrNoActivePass
	}
	if p.Target() != b.passTarget {
		return fmt.Errorf("pipeline %q renders to %s but the current pass targets %s", p.PipelineKey(), p.Target(), b.passTarget)
	}
	if mesh.vertexBuffer == nil || mesh.indexBuffer == nil {
		return fmt.Errorf("mesh %q has no buffers", mesh.Label)
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	for _, bg := range groups {
		b.framePass.SetBindGroup(uint32(bg.Group), bg.bindGroup, nil)
	}
	b.framePass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(mesh.IndexCount), instances, 0, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndPass() error {
	if b.framePass == nil {
		return ErrNoActivePass
	}
	err := b.framePass.End()
	b.framePass.Release()
	b.framePass = nil
	return err
}

func (b *wgpuRendererBackendImpl) Present() error {
	if b.framePass != nil {
		return ErrPassInProgress
	}
	if b.frameEncoder == nil {
		return nil
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.abortFrame()
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil

	if b.frameSurface == nil {
		return nil
	}
	b.surface.Present()
	b.releaseSurfaceTexture()
	return nil
}

// abortFrame drops the frame encoder and any acquired surface texture without submitting.
func (b *wgpuRendererBackendImpl) abortFrame() {
	if b.framePass != nil {
		b.framePass.Release()
		b.framePass = nil
	}
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	b.releaseSurfaceTexture()
}

func (b *wgpuRendererBackendImpl) releaseSurfaceTexture() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.abortFrame()
	for key, layouts := range b.layouts {
		releaseBindGroupLayouts(layouts)
		delete(b.layouts, key)
	}
	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// mergeBindGroupLayouts combines the vertex and fragment stage layouts of one pipeline. Groups
// declared by both stages are merged by binding number, OR-ing the visibility of shared bindings.
//
// Parameters:
//   - vertexLayouts: the vertex stage descriptors keyed by group index
//   - fragmentLayouts: the fragment stage descriptors keyed by group index
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func mergeBindGroupLayouts(
	vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor,
) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)

	groupIndices := make(map[int]bool)
	for g := range vertexLayouts {
		groupIndices[g] = true
	}
	for g := range fragmentLayouts {
		groupIndices[g] = true
	}

	for g := range groupIndices {
		vDesc, hasV := vertexLayouts[g]
		fDesc, hasF := fragmentLayouts[g]

		switch {
		case hasV && !hasF:
			merged[g] = vDesc
		case hasF && !hasV:
			merged[g] = fDesc
		default:
			entryMap := make(map[uint32]wgpu.BindGroupLayoutEntry)
			for _, e := range vDesc.Entries {
				entryMap[e.Binding] = e
			}
			for _, e := range fDesc.Entries {
				if existing, ok := entryMap[e.Binding]; ok {
					existing.Visibility |= e.Visibility
					entryMap[e.Binding] = existing
				} else {
					entryMap[e.Binding] = e
				}
			}

			entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
			for _, e := range entryMap {
				entries = append(entries, e)
			}
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Binding < entries[j].Binding
			})

			merged[g] = wgpu.BindGroupLayoutDescriptor{
				Label:   vDesc.Label,
				Entries: entries,
			}
		}
	}

	return merged
}

// releaseBindGroupLayouts frees every layout created so far. Entries past a failed creation are nil.
func releaseBindGroupLayouts(layouts []*wgpu.BindGroupLayout) {
	for i, l := range layouts {
		if l != nil {
			l.Release()
			layouts[i] = nil
		}
	}
}
