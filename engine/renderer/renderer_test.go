package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend records backend calls without touching a GPU.
type stubBackend struct {
	configured [][2]int
	registered []string
	resized    int
	writes     int
	draws      int
	failConfig bool
}

func (s *stubBackend) ConfigureSurface(width, height int) error {
	if s.failConfig {
		return errors.New("boom")
	}
	s.configured = append(s.configured, [2]int{width, height})
	return nil
}
func (s *stubBackend) SetPresentMode(PresentMode) {}
func (s *stubBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	s.registered = append(s.registered, p.PipelineKey())
	return nil
}
func (s *stubBackend) CreateColorTarget(*ColorTarget) error { return nil }
func (s *stubBackend) ResizeColorTarget(*ColorTarget) error {
	s.resized++
	return nil
}
func (s *stubBackend) CreateMesh(*Mesh, []byte, []byte) error { return nil }
func (s *stubBackend) UpdateMesh(*Mesh, []byte)               { s.writes++ }
func (s *stubBackend) CreateBuffer(*Buffer, []byte) error     { return nil }
func (s *stubBackend) WriteBuffer(*Buffer, uint64, []byte)    { s.writes++ }
func (s *stubBackend) CreateBindGroup(*BindGroup, pipeline.Pipeline, []BindingResource) error {
	return nil
}
func (s *stubBackend) BeginPass(*ColorTarget, common.Color) error { return nil }
func (s *stubBackend) Draw(pipeline.Pipeline, *Mesh, uint32, []*BindGroup) error {
	s.draws++
	return nil
}
func (s *stubBackend) EndPass() error { return nil }
func (s *stubBackend) Present() error { return nil }
func (s *stubBackend) Release()       {}

func newStubRenderer() (*renderer, *stubBackend) {
	b := &stubBackend{}
	return &renderer{pipelineCache: make(map[string]pipeline.Pipeline), backend: b}, b
}

func testPipeline(key string) pipeline.Pipeline {
	vs, fs := shader.CompositeShaders()
	return pipeline.NewPipeline(key, pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))
}

func TestRegisterPipelinesSkipsDuplicates(t *testing.T) {
	r, b := newStubRenderer()
	require.NoError(t, r.RegisterPipelines(testPipeline("a"), testPipeline("b")))
	require.NoError(t, r.RegisterPipelines(testPipeline("a")))
	assert.Equal(t, []string{"a", "b"}, b.registered)
	assert.NotNil(t, r.Pipeline("a"))
	assert.Nil(t, r.Pipeline("missing"))
}

func TestResizeIgnoresEmptySizes(t *testing.T) {
	r, b := newStubRenderer()
	require.NoError(t, r.Resize(800, 600))
	require.NoError(t, r.Resize(0, 600))
	require.NoError(t, r.Resize(800, -1))
	assert.Equal(t, [][2]int{{800, 600}}, b.configured)
	w, h := r.SurfaceSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	b.failConfig = true
	assert.Error(t, r.Resize(10, 10))
	w, _ = r.SurfaceSize()
	assert.Equal(t, 800, w)
}

func TestDrawAndBindGroupNeedRegisteredPipeline(t *testing.T) {
	r, b := newStubRenderer()
	err := r.Draw("nope", &Mesh{}, 1)
	assert.True(t, errors.Is(err, ErrPipelineNotFound))

	_, err = r.CreateBindGroup("bg", "nope", 0)
	assert.ErrorIs(t, err, ErrPipelineNotFound)

	require.NoError(t, r.RegisterPipelines(testPipeline("ok")))
	require.NoError(t, r.Draw("ok", &Mesh{}, 27))
	bg, err := r.CreateBindGroup("bg", "ok", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, bg.Group)
	assert.Equal(t, "ok", bg.PipelineKey)
	assert.Equal(t, 1, b.draws)
}

func TestColorTargetSizes(t *testing.T) {
	r, b := newStubRenderer()
	_, err := r.CreateColorTarget("t", 0, 10, common.PixelatedSampler)
	assert.Error(t, err)

	ct, err := r.CreateColorTarget("t", 160, 90, common.PixelatedSampler)
	require.NoError(t, err)
	assert.NotEqual(t, ct.ID.String(), "")
	assert.Equal(t, 160, ct.Width)

	require.NoError(t, r.ResizeColorTarget(ct, 160, 90))
	assert.Zero(t, b.resized)
	require.NoError(t, r.ResizeColorTarget(ct, 100, 50))
	assert.Equal(t, 1, b.resized)
	assert.Equal(t, 100, ct.Width)
	assert.Equal(t, 50, ct.Height)
	assert.Error(t, r.ResizeColorTarget(ct, 100, 0))
}

func TestBufferBounds(t *testing.T) {
	r, b := newStubRenderer()
	_, err := r.CreateBuffer("u", BufferUniform, 4, make([]byte, 8))
	assert.Error(t, err)

	buf, err := r.CreateBuffer("u", BufferUniform, 16, nil)
	require.NoError(t, err)
	require.NoError(t, r.WriteBuffer(buf, 8, make([]byte, 8)))
	assert.Error(t, r.WriteBuffer(buf, 12, make([]byte, 8)))

	m, err := r.CreateMesh("m", make([]byte, 36), make([]byte, 12), 3)
	require.NoError(t, err)
	assert.Error(t, r.UpdateMesh(m, make([]byte, 72)))
	require.NoError(t, r.UpdateMesh(m, make([]byte, 36)))
	assert.Equal(t, 2, b.writes)
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vs, fs := shader.LatticeShaders()
	merged := mergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	require.Len(t, merged, 2)
	require.Len(t, merged[0].Entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, merged[0].Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex, merged[1].Entries[0].Visibility)
}

func TestBindingResourceEntryRequiresGPUObjects(t *testing.T) {
	_, err := BufferBinding(0, &Buffer{Label: "x"}).entry()
	assert.Error(t, err)
	_, err = TextureBinding(0, &ColorTarget{Label: "x"}).entry()
	assert.Error(t, err)
	_, err = SamplerBinding(1, &ColorTarget{Label: "x"}).entry()
	assert.Error(t, err)
	_, err = BindingResource{Binding: 2}.entry()
	assert.Error(t, err)
}

func TestReleaseIsNilSafe(t *testing.T) {
	var ct *ColorTarget
	var m *Mesh
	var b *Buffer
	var g *BindGroup
	assert.NotPanics(t, func() {
		ct.Release()
		m.Release()
		b.Release()
		g.Release()
		(&ColorTarget{}).Release()
		(&Buffer{}).Release()
	})
}

func TestReleaseBindGroupLayoutsSkipsUncreatedGroups(t *testing.T) {
	// a failed registration leaves the slots after the failing group unset
	layouts := make([]*wgpu.BindGroupLayout, 3)
	assert.NotPanics(t, func() { releaseBindGroupLayouts(layouts) })
	assert.Equal(t, make([]*wgpu.BindGroupLayout, 3), layouts)
	assert.NotPanics(t, func() { releaseBindGroupLayouts(nil) })
}
