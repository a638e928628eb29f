// Package compositor renders a scene at a fraction of the window size and scales it back up onto
// the window with a fullscreen textured quad.
package compositor

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/camera"
	"github.com/Carmen-Shannon/pixelcube/engine/geometry"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrFrameNotBegun is returned by Composite when BeginFrame was not called first.
	ErrFrameNotBegun = errors.New("compositor: frame not begun")
	// ErrFrameInProgress is returned by BeginFrame and Resize while a frame is open.
	ErrFrameInProgress = errors.New("compositor: frame already in progress")
)

const (
	// TargetLabel is the debug label of the offscreen target.
	TargetLabel = "compositor_target"
	// QuadLabel is the debug label of the fullscreen quad mesh.
	QuadLabel = "compositor_quad"
	// UniformLabel is the debug label of the quad uniform buffer.
	UniformLabel = "compositor_quad_uniform"
)

// compositorImpl is the implementation of the Compositor interface.
type compositorImpl struct {
	r renderer.Renderer

	resolution int
	clearColor common.Color
	sampler    common.SamplerConfig
	quadDepth  float32

	width, height int

	camera       camera.Camera
	target       *renderer.ColorTarget
	quad         *renderer.Mesh
	uniform      *renderer.Buffer
	quadGroup    *renderer.BindGroup
	textureGroup *renderer.BindGroup

	inFrame bool
}

// Compositor owns a low resolution offscreen color target and the fullscreen quad that displays it.
//
// A frame is BeginFrame, any number of scene draws into the offscreen target, then Composite.
// The target is not double buffered, so the scene draws must be recorded before Composite.
type Compositor interface {
	// Resize sizes the offscreen target to (width/resolution, height/resolution), at least 1x1,
	// the quad to (width, height) and the orthographic frustum to ±width/2, ±height/2.
	// Zero or negative sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	//
	// Returns:
	//   - error: ErrFrameInProgress, or an error if GPU resources cannot be recreated
	Resize(width, height int) error

	// BeginFrame begins a pass into the offscreen target, cleared to the clear color. Scene draws
	// issued through the renderer until Composite land in the target.
	//
	// Returns:
	//   - error: ErrFrameInProgress, or an error from the renderer
	BeginFrame() error

	// Composite ends the offscreen pass, draws the quad sampling the target into the window surface
	// and presents it. The frame is closed even when an error is returned.
	//
	// Returns:
	//   - error: ErrFrameNotBegun, or an error from the renderer
	Composite() error

	// InFrame reports whether BeginFrame was called without a matching Composite.
	InFrame() bool

	// Target returns the offscreen color target the scene renders into.
	Target() *renderer.ColorTarget

	// TargetSize returns the current offscreen target size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	TargetSize() (int, int)

	// QuadSize returns the current composite quad size, which equals the viewport size.
	//
	// Returns:
	//   - int: width
	//   - int: height
	QuadSize() (int, int)

	// Resolution returns the downsample divisor.
	Resolution() int

	// ClearColor returns the color both passes clear to.
	ClearColor() common.Color

	// Camera returns the orthographic camera the quad is drawn with.
	Camera() camera.Camera

	// Release frees the target, quad, uniform buffer and bind groups.
	Release()
}

var _ Compositor = &compositorImpl{}

// Pipeline returns the composite pipeline description: the pass-through quad shader drawing into
// the window surface without depth.
//
// Returns:
//   - pipeline.Pipeline: the pipeline to register with a renderer
func Pipeline() pipeline.Pipeline {
	vs, fs := shader.CompositeShaders()
	return pipeline.NewPipeline(shader.CompositeKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithTarget(pipeline.TargetSurface),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
}

// NewCompositor registers the composite pipeline with r and creates the offscreen target and
// quad for a viewport of width x height.
//
// Parameters:
//   - r: the renderer used for every GPU call
//   - width, height: the initial viewport size in pixels
//   - options: functional options to configure the compositor
//
// Returns:
//   - Compositor: the new compositor
//   - error: an error if pipeline registration or resource creation fails
func NewCompositor(r renderer.Renderer, width, height int, options ...CompositorBuilderOption) (Compositor, error) {
	c := &compositorImpl{
		r:          r,
		resolution: 8,
		clearColor: common.White,
		sampler:    common.PixelatedSampler,
		quadDepth:  -100,
		width:      common.AtLeast(width, 1),
		height:     common.AtLeast(height, 1),
	}
	for _, option := range options {
		option(c)
	}

	hw, hh := float32(c.width)/2, float32(c.height)/2
	c.camera = camera.NewOrthographicCamera(-hw, hw, -hh, hh,
		camera.WithPosition(0, 0, 1),
		camera.WithNear(-10000),
		camera.WithFar(10000),
	)

	if err := c.init(); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

func (c *compositorImpl) init() error {
	if err := c.r.RegisterPipelines(Pipeline()); err != nil {
		return err
	}

	tw, th := c.targetSizeFor(c.width, c.height)
	target, err := c.r.CreateColorTarget(TargetLabel, tw, th, c.sampler)
	if err != nil {
		return err
	}
	c.target = target

	plane := geometry.NewPlane(float32(c.width), float32(c.height))
	quad, err := c.r.CreateMesh(QuadLabel, plane.VertexBytes(), plane.IndexBytes(), plane.IndexCount())
	if err != nil {
		return err
	}
	c.quad = quad

	u := c.uniformData()
	uniform, err := c.r.CreateBuffer(UniformLabel, renderer.BufferUniform, uint64(u.Size()), u.Marshal())
	if err != nil {
		return err
	}
	c.uniform = uniform

	c.quadGroup, err = c.r.CreateBindGroup("compositor_quad_group", shader.CompositeKey, 0,
		renderer.BufferBinding(0, c.uniform),
	)
	if err != nil {
		return err
	}
	return c.rebuildTextureGroup()
}

// targetSizeFor divides a viewport size by the resolution, truncating, with a 1x1 minimum.
func (c *compositorImpl) targetSizeFor(width, height int) (int, int) {
	return common.AtLeast(width/c.resolution, 1), common.AtLeast(height/c.resolution, 1)
}

func (c *compositorImpl) uniformData() *GPUQuadUniform {
	return &GPUQuadUniform{
		ViewProj: c.camera.ViewProjectionMatrix(),
		Model:    mgl32.Translate3D(0, 0, c.quadDepth),
	}
}

// rebuildTextureGroup recreates the bind group sampling the target. Required after the target's
// textures are recreated.
func (c *compositorImpl) rebuildTextureGroup() error {
	group, err := c.r.CreateBindGroup("compositor_texture_group", shader.CompositeKey, 1,
		renderer.TextureBinding(0, c.target),
		renderer.SamplerBinding(1, c.target),
	)
	if err != nil {
		return err
	}
	c.textureGroup.Release()
	c.textureGroup = group
	return nil
}

func (c *compositorImpl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if c.inFrame {
		return ErrFrameInProgress
	}

	tw, th := c.targetSizeFor(width, height)
	if tw != c.target.Width || th != c.target.Height {
		if err := c.r.ResizeColorTarget(c.target, tw, th); err != nil {
			return fmt.Errorf("resize compositor target: %w", err)
		}
		if err := c.rebuildTextureGroup(); err != nil {
			return fmt.Errorf("rebind compositor target: %w", err)
		}
	}

	if width != c.width || height != c.height {
		plane := geometry.NewPlane(float32(width), float32(height))
		if err := c.r.UpdateMesh(c.quad, plane.VertexBytes()); err != nil {
			return fmt.Errorf("resize compositor quad: %w", err)
		}
		c.width, c.height = width, height
	}

	hw, hh := float32(width)/2, float32(height)/2
	c.camera.SetOrthoBounds(-hw, hw, -hh, hh)
	if err := c.r.WriteBuffer(c.uniform, 0, c.uniformData().Marshal()); err != nil {
		return fmt.Errorf("write compositor uniform: %w", err)
	}
	return nil
}

func (c *compositorImpl) BeginFrame() error {
	if c.inFrame {
		return ErrFrameInProgress
	}
	if err := c.r.BeginPass(c.target, c.clearColor); err != nil {
		return fmt.Errorf("begin offscreen pass: %w", err)
	}
	c.inFrame = true
	return nil
}

func (c *compositorImpl) Composite() error {
	if !c.inFrame {
		return ErrFrameNotBegun
	}
	c.inFrame = false

	if err := c.r.EndPass(); err != nil {
		return fmt.Errorf("end offscreen pass: %w", err)
	}
	if err := c.r.BeginPass(nil, c.clearColor); err != nil {
		return fmt.Errorf("begin composite pass: %w", err)
	}
	drawErr := c.r.Draw(shader.CompositeKey, c.quad, 1, c.quadGroup, c.textureGroup)
	if err := c.r.EndPass(); err != nil {
		return fmt.Errorf("end composite pass: %w", err)
	}
	if drawErr != nil {
		return fmt.Errorf("draw composite quad: %w", drawErr)
	}
	if err := c.r.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (c *compositorImpl) InFrame() bool {
	return c.inFrame
}

func (c *compositorImpl) Target() *renderer.ColorTarget {
	return c.target
}

func (c *compositorImpl) TargetSize() (int, int) {
	if c.target == nil {
		return 0, 0
	}
	return c.target.Width, c.target.Height
}

func (c *compositorImpl) QuadSize() (int, int) {
	return c.width, c.height
}

func (c *compositorImpl) Resolution() int {
	return c.resolution
}

func (c *compositorImpl) ClearColor() common.Color {
	return c.clearColor
}

func (c *compositorImpl) Camera() camera.Camera {
	return c.camera
}

func (c *compositorImpl) Release() {
	c.textureGroup.Release()
	c.quadGroup.Release()
	c.uniform.Release()
	c.quad.Release()
	c.target.Release()
	c.textureGroup, c.quadGroup, c.uniform, c.quad, c.target = nil, nil, nil, nil, nil
}
