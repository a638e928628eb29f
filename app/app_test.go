package app

import (
	"testing"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/config"
	"github.com/Carmen-Shannon/pixelcube/engine/compositor"
	"github.com/Carmen-Shannon/pixelcube/engine/lattice"
	"github.com/Carmen-Shannon/pixelcube/engine/orientation"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/shader"
	"github.com/Carmen-Shannon/pixelcube/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg *config.Config) (App, *renderertest.Recorder) {
	t.Helper()
	rec := renderertest.NewRecorder(800, 600)
	a, err := NewApp(rec, 800, 600, WithConfig(cfg))
	require.NoError(t, err)
	return a, rec
}

func presetConfig(t *testing.T, name string) *config.Config {
	t.Helper()
	cfg, err := config.Preset(name)
	require.NoError(t, err)
	return cfg
}

func TestNewAppCreatesResources(t *testing.T) {
	a, rec := newTestApp(t, config.Default())

	assert.Len(t, a.Lattice().Cells(), 27)
	assert.Equal(t, orientation.ModeAuto, a.Updater().Mode())
	assert.Nil(t, a.Controller())

	p := rec.Pipeline(shader.LatticeKey)
	require.NotNil(t, p)
	assert.Equal(t, pipeline.TargetOffscreen, p.Target())
	assert.True(t, p.DepthTestEnabled())
	require.NotNil(t, rec.Pipeline(shader.CompositeKey))

	assert.Len(t, rec.Contents[SceneUniformLabel], shader.LatticeGlobalsSize)
	assert.Len(t, rec.Contents[OffsetsLabel], 27*shader.LatticeOffsetStride)
	assert.Equal(t, lattice.OffsetBytes(a.Lattice().Offsets()), rec.Contents[OffsetsLabel])

	tw, th := a.Compositor().TargetSize()
	assert.Equal(t, 100, tw)
	assert.Equal(t, 75, th)
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Lattice.Size = 0
	_, err := NewApp(renderertest.NewRecorder(800, 600), 800, 600, WithConfig(cfg))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestFrameOrder(t *testing.T) {
	a, rec := newTestApp(t, config.Default())
	require.NoError(t, a.Frame(1.0/60))

	assert.Equal(t, []renderertest.Op{
		renderertest.OpWriteBuffer,
		renderertest.OpBeginPass,
		renderertest.OpDraw,
		renderertest.OpEndPass,
		renderertest.OpBeginPass,
		renderertest.OpDraw,
		renderertest.OpEndPass,
		renderertest.OpPresent,
	}, rec.Ops())

	passes := rec.CallsOf(renderertest.OpBeginPass)
	assert.Equal(t, compositor.TargetLabel, passes[0].Target)
	assert.Equal(t, renderertest.SurfaceLabel, passes[1].Target)
	assert.Equal(t, common.White, passes[0].Clear)

	draws := rec.CallsOf(renderertest.OpDraw)
	assert.Equal(t, shader.LatticeKey, draws[0].Pipeline)
	assert.Equal(t, BoxLabel, draws[0].Mesh)
	assert.Equal(t, uint32(27), draws[0].Instances)
	assert.Equal(t, shader.CompositeKey, draws[1].Pipeline)
}

func TestAutoModeRotatesEveryFrame(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	for range 100 {
		require.NoError(t, a.Frame(0))
	}
	rot := a.Lattice().Rotation()
	assert.InDelta(t, 0.5, rot[0], 1e-9)
	assert.InDelta(t, 0.5, rot[1], 1e-9)
	assert.InDelta(t, 1.0, rot[2], 1e-9)
}

func TestFrameUploadsCameraAndLight(t *testing.T) {
	a, rec := newTestApp(t, config.Default())
	require.NoError(t, a.Frame(0))

	assert.Equal(t, a.Camera().Position(), a.Light().Position())
	assert.InDelta(t, 600, a.Camera().Position()[2], 1e-4)

	writes := rec.CallsOf(renderertest.OpWriteBuffer)
	require.Len(t, writes, 1)
	assert.Equal(t, SceneUniformLabel, writes[0].Buffer)
	assert.Len(t, writes[0].Data, shader.LatticeGlobalsSize)
}

func TestKeyStepMode(t *testing.T) {
	a, _ := newTestApp(t, presetConfig(t, "keystep"))

	for range 10 {
		require.NoError(t, a.Frame(0))
	}
	assert.Zero(t, a.Lattice().Rotation().Len())

	a.KeyUp(common.KeyRight)
	a.KeyUp(common.KeyUp)
	a.KeyUp(common.KeyW)
	rot := a.Lattice().Rotation()
	assert.InDelta(t, -0.4, rot[0], 1e-12)
	assert.InDelta(t, 0.4, rot[1], 1e-12)
	assert.Zero(t, rot[2])
}

func TestDragModeSuspendsAutoRotation(t *testing.T) {
	a, _ := newTestApp(t, presetConfig(t, "drag"))
	require.NotNil(t, a.Controller())

	require.NoError(t, a.Frame(0))
	before := a.Lattice().Rotation()
	assert.InDelta(t, 0.005, before[0], 1e-12)

	a.MouseDown(window.MouseButtonRight, 10, 10)
	assert.Equal(t, orientation.StateIdle, a.Updater().State())

	a.MouseDown(window.MouseButtonLeft, 100, 100)
	assert.Equal(t, orientation.StateInteracting, a.Updater().State())
	a.MouseMove(150, 100)
	for range 5 {
		require.NoError(t, a.Frame(0))
	}
	assert.Equal(t, before, a.Lattice().Rotation())
	assert.InDelta(t, -0.25, a.Controller().Azimuth(), 1e-6)
	assert.NotEqual(t, float32(0), a.Camera().Position()[0])

	a.MouseUp(window.MouseButtonLeft, 150, 100)
	assert.Equal(t, orientation.StateIdle, a.Updater().State())
	require.NoError(t, a.Frame(0))
	assert.InDelta(t, 0.010, a.Lattice().Rotation()[0], 1e-12)
}

func TestScrollZoomsOnlyInDragMode(t *testing.T) {
	a, _ := newTestApp(t, presetConfig(t, "drag"))
	a.Scroll(2)
	assert.InDelta(t, 570, a.Controller().Radius(), 1e-4)

	b, _ := newTestApp(t, config.Default())
	assert.NotPanics(t, func() {
		b.Scroll(2)
		b.MouseDown(window.MouseButtonLeft, 0, 0)
		b.MouseMove(5, 5)
		b.MouseUp(window.MouseButtonLeft, 5, 5)
	})
}

func TestResize(t *testing.T) {
	a, rec := newTestApp(t, presetConfig(t, "classic"))
	require.NoError(t, a.Resize(1920, 1080))

	w, h := rec.SurfaceSize()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
	tw, th := a.Compositor().TargetSize()
	assert.Equal(t, 192, tw)
	assert.Equal(t, 108, th)

	require.NoError(t, a.Resize(0, 0))
	tw, _ = a.Compositor().TargetSize()
	assert.Equal(t, 192, tw)

	require.NoError(t, a.Frame(0))
	assert.InDelta(t, 1920.0/1080.0, a.Camera().Aspect(), 1e-6)
}

func TestReleaseIsIdempotent(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a.Release()
	assert.NotPanics(t, a.Release)
}
