// Package app composes the lattice, orientation strategy, cameras, light and compositor into the
// running program and routes window input to them.
package app

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/config"
	"github.com/Carmen-Shannon/pixelcube/engine/camera"
	"github.com/Carmen-Shannon/pixelcube/engine/compositor"
	"github.com/Carmen-Shannon/pixelcube/engine/geometry"
	"github.com/Carmen-Shannon/pixelcube/engine/lattice"
	"github.com/Carmen-Shannon/pixelcube/engine/light"
	"github.com/Carmen-Shannon/pixelcube/engine/orientation"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/material"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/shader"
	"github.com/Carmen-Shannon/pixelcube/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

const (
	// BoxLabel is the debug label of the unit cube mesh.
	BoxLabel = "lattice_box"
	// SceneUniformLabel is the debug label of the scene uniform buffer.
	SceneUniformLabel = "lattice_scene_uniform"
	// OffsetsLabel is the debug label of the per-cell offset buffer.
	OffsetsLabel = "lattice_offsets"
)

// appImpl is the implementation of the App interface.
type appImpl struct {
	cfg *config.Config
	r   renderer.Renderer

	width, height int

	lattice    lattice.Lattice
	updater    orientation.Updater
	camera     camera.Camera
	controller camera.CameraController
	light      light.Light
	compositor compositor.Compositor

	box          *renderer.Mesh
	sceneUniform *renderer.Buffer
	offsets      *renderer.Buffer
	sceneGroup   *renderer.BindGroup
	offsetsGroup *renderer.BindGroup
}

// App owns every component of the program. It is built once and its handlers are attached to the
// window with Bind; the engine then calls Frame once per loop iteration and Resize on framebuffer
// changes. All methods run on the window thread.
type App interface {
	// Frame advances the orientation and renders one frame: the lattice into the offscreen target,
	// then the composite quad onto the window.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame, unused by the per-frame rotation
	//
	// Returns:
	//   - error: an error from the renderer; the next frame may still succeed
	Frame(deltaTime float32) error

	// Resize reconfigures the surface and the compositor for a new viewport size. Zero or negative
	// sizes are ignored.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	//
	// Returns:
	//   - error: an error if GPU resources cannot be resized
	Resize(width, height int) error

	// KeyUp handles a key release, applying a rotation step in keystep mode.
	KeyUp(key uint32)

	// MouseDown starts an orbit drag on a left press in drag mode.
	MouseDown(button window.MouseButton, x, y float32)

	// MouseUp ends an orbit drag on a left release in drag mode.
	MouseUp(button window.MouseButton, x, y float32)

	// MouseMove orbits the camera while a drag is active.
	MouseMove(x, y float32)

	// Scroll zooms the orbit camera in drag mode.
	Scroll(delta float32)

	// Bind attaches the input handlers to w.
	//
	// Parameters:
	//   - w: the window delivering input events
	Bind(w window.Window)

	// Config returns the configuration the app was built with.
	Config() *config.Config

	// Lattice returns the cube lattice.
	Lattice() lattice.Lattice

	// Updater returns the orientation strategy.
	Updater() orientation.Updater

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Controller returns the orbit controller, or nil outside drag mode.
	Controller() camera.CameraController

	// Light returns the directional light.
	Light() light.Light

	// Compositor returns the two-pass compositor.
	Compositor() compositor.Compositor

	// Release frees every GPU resource the app created, including the compositor's.
	Release()
}

var _ App = &appImpl{}

// Pipeline returns the lattice pipeline description: instanced Lambert-shaded cubes drawn into the
// offscreen target with depth testing and back-face culling.
//
// Returns:
//   - pipeline.Pipeline: the pipeline to register with a renderer
func Pipeline() pipeline.Pipeline {
	vs, fs := shader.LatticeShaders()
	return pipeline.NewPipeline(shader.LatticeKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithTarget(pipeline.TargetOffscreen),
		pipeline.WithDepthTestEnabled(true),
		pipeline.WithDepthWriteEnabled(true),
		pipeline.WithBlendEnabled(false),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
	)
}

// NewApp builds every component from the configuration and creates their GPU resources on r.
//
// Parameters:
//   - r: the renderer
//   - width, height: the initial framebuffer size in pixels
//   - options: functional options, see WithConfig
//
// Returns:
//   - App: the composed application
//   - error: config.ErrInvalidConfig, or an error if GPU resources cannot be created
func NewApp(r renderer.Renderer, width, height int, options ...AppBuilderOption) (App, error) {
	a := &appImpl{
		cfg:    config.Default(),
		r:      r,
		width:  common.AtLeast(width, 1),
		height: common.AtLeast(height, 1),
	}
	for _, opt := range options {
		opt(a)
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	if err := a.buildScene(); err != nil {
		return nil, err
	}
	if err := a.buildGPU(); err != nil {
		a.Release()
		return nil, err
	}

	log.Info().
		Str("mode", a.updater.Mode().String()).
		Int("size", a.lattice.Size()).
		Int("cells", len(a.lattice.Cells())).
		Int("resolution", a.compositor.Resolution()).
		Msg("app ready")
	return a, nil
}

// buildScene creates the CPU-side components. The config has been validated, so parse errors
// cannot happen here.
func (a *appImpl) buildScene() error {
	cfg := a.cfg
	mode, err := cfg.OrientationMode()
	if err != nil {
		return err
	}
	colors, err := cfg.FaceColors()
	if err != nil {
		return err
	}
	lightColor, err := cfg.LightColor()
	if err != nil {
		return err
	}

	a.lattice = lattice.NewLattice(
		lattice.WithSize(cfg.Lattice.Size),
		lattice.WithSpacing(cfg.Lattice.Spacing),
		lattice.WithScale(cfg.Lattice.Scale),
		lattice.WithFaceMaterials(material.NewFaceSetFromColors(colors)),
	)

	d := cfg.Rotation.AutoDelta
	a.updater = orientation.NewUpdater(mode,
		orientation.WithAutoDelta(d[0], d[1], d[2]),
		orientation.WithKeyStep(cfg.Rotation.KeyStep),
	)

	dist := float32(cfg.Camera.Distance)
	camOpts := []camera.CameraBuilderOption{
		camera.WithFovDegrees(float32(cfg.Camera.FovDegrees)),
		camera.WithAspect(float32(a.width) / float32(a.height)),
		camera.WithNear(float32(cfg.Camera.Near)),
		camera.WithFar(float32(cfg.Camera.Far)),
		camera.WithPosition(0, 0, dist),
	}
	if mode == orientation.ModeDragDelegated {
		a.controller = camera.NewCameraController(
			camera.WithRadius(dist),
			camera.WithMouseSensitivity(float32(cfg.Orbit.MouseSensitivity)),
			camera.WithZoomSpeed(float32(cfg.Orbit.ZoomSpeed)),
		)
		a.controller.SetInteractionCallbacks(a.updater.InteractionStarted, a.updater.InteractionEnded)
		camOpts = append(camOpts, camera.WithController(a.controller))
	}
	a.camera = camera.NewCamera(camOpts...)

	a.light = light.NewLight(
		light.WithColor(lightColor),
		light.WithIntensity(float32(cfg.Light.Intensity)),
	)
	return nil
}

// buildGPU registers the lattice pipeline, uploads the cube mesh and per-cell offsets, and creates
// the compositor.
func (a *appImpl) buildGPU() error {
	cfg := a.cfg
	clearColor, err := cfg.ClearColor()
	if err != nil {
		return err
	}

	a.compositor, err = compositor.NewCompositor(a.r, a.width, a.height,
		compositor.WithResolution(cfg.Compositor.Resolution),
		compositor.WithClearColor(clearColor),
		compositor.WithQuadDepth(float32(cfg.Compositor.QuadDepth)),
	)
	if err != nil {
		return fmt.Errorf("create compositor: %w", err)
	}

	if err := a.r.RegisterPipelines(Pipeline()); err != nil {
		return err
	}

	box := geometry.NewBox(1)
	if a.box, err = a.r.CreateMesh(BoxLabel, box.VertexBytes(), box.IndexBytes(), box.IndexCount()); err != nil {
		return err
	}

	u := a.sceneData()
	if a.sceneUniform, err = a.r.CreateBuffer(SceneUniformLabel, renderer.BufferUniform, uint64(u.Size()), u.Marshal()); err != nil {
		return err
	}

	offsets := lattice.OffsetBytes(a.lattice.Offsets())
	if a.offsets, err = a.r.CreateBuffer(OffsetsLabel, renderer.BufferStorage, uint64(len(offsets)), offsets); err != nil {
		return err
	}

	if a.sceneGroup, err = a.r.CreateBindGroup("lattice_scene_group", shader.LatticeKey, 0,
		renderer.BufferBinding(0, a.sceneUniform),
	); err != nil {
		return err
	}
	if a.offsetsGroup, err = a.r.CreateBindGroup("lattice_offsets_group", shader.LatticeKey, 1,
		renderer.BufferBinding(0, a.offsets),
	); err != nil {
		return err
	}
	return nil
}

// sceneData packs the camera, container transform, light and face colors for upload.
func (a *appImpl) sceneData() *lattice.GPUSceneUniform {
	return &lattice.GPUSceneUniform{
		ViewProj: a.camera.ViewProjectionMatrix(),
		Model:    a.lattice.Container().WorldMatrix32(),
		Light:    a.light.GPU(),
		Colors:   a.lattice.FaceMaterials().LinearColors(),
	}
}

func (a *appImpl) Frame(deltaTime float32) error {
	a.camera.SetAspect(float32(a.width) / float32(a.height))
	if a.controller != nil {
		a.camera.Update()
	} else {
		a.camera.LookAt(mgl32.Vec3{})
	}
	a.light.SetPosition(a.camera.Position())
	a.light.SetTarget(common.Vec3To32(a.lattice.Container().Position()))

	a.updater.Frame(a.lattice)

	if err := a.r.WriteBuffer(a.sceneUniform, 0, a.sceneData().Marshal()); err != nil {
		return fmt.Errorf("write scene uniform: %w", err)
	}

	if err := a.compositor.BeginFrame(); err != nil {
		return err
	}
	drawErr := a.r.Draw(shader.LatticeKey, a.box, uint32(len(a.lattice.Cells())), a.sceneGroup, a.offsetsGroup)
	if drawErr != nil {
		drawErr = fmt.Errorf("draw lattice: %w", drawErr)
	}
	return errors.Join(drawErr, a.compositor.Composite())
}

func (a *appImpl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := a.r.Resize(width, height); err != nil {
		return err
	}
	if err := a.compositor.Resize(width, height); err != nil {
		return err
	}
	a.width, a.height = width, height
	return nil
}

func (a *appImpl) KeyUp(key uint32) {
	if a.updater.KeyReleased(key, a.lattice) {
		log.Debug().Str("key", common.KeyName(key)).Msg("rotation step")
	}
}

func (a *appImpl) MouseDown(button window.MouseButton, x, y float32) {
	if a.controller == nil || button != window.MouseButtonLeft {
		return
	}
	a.controller.BeginDrag(x, y)
}

func (a *appImpl) MouseUp(button window.MouseButton, x, y float32) {
	if a.controller == nil || button != window.MouseButtonLeft {
		return
	}
	a.controller.Drag(x, y)
	a.controller.EndDrag()
}

func (a *appImpl) MouseMove(x, y float32) {
	if a.controller == nil {
		return
	}
	a.controller.Drag(x, y)
}

func (a *appImpl) Scroll(delta float32) {
	if a.controller == nil {
		return
	}
	a.controller.Zoom(delta)
}

func (a *appImpl) Bind(w window.Window) {
	w.SetKeyUpCallback(a.KeyUp)
	w.SetMouseDownCallback(a.MouseDown)
	w.SetMouseUpCallback(a.MouseUp)
	w.SetMouseMoveCallback(a.MouseMove)
	w.SetScrollCallback(a.Scroll)
}

func (a *appImpl) Config() *config.Config {
	return a.cfg
}

func (a *appImpl) Lattice() lattice.Lattice {
	return a.lattice
}

func (a *appImpl) Updater() orientation.Updater {
	return a.updater
}

func (a *appImpl) Camera() camera.Camera {
	return a.camera
}

func (a *appImpl) Controller() camera.CameraController {
	return a.controller
}

func (a *appImpl) Light() light.Light {
	return a.light
}

func (a *appImpl) Compositor() compositor.Compositor {
	return a.compositor
}

func (a *appImpl) Release() {
	a.offsetsGroup.Release()
	a.sceneGroup.Release()
	a.offsets.Release()
	a.sceneUniform.Release()
	a.box.Release()
	a.offsetsGroup, a.sceneGroup, a.offsets, a.sceneUniform, a.box = nil, nil, nil, nil, nil
	if a.compositor != nil {
		a.compositor.Release()
	}
}
