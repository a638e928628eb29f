package lattice

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/light"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCount(t *testing.T) {
	for n := 1; n <= 6; n++ {
		l := NewLattice(WithSize(n))
		assert.Len(t, l.Cells(), n*n*n, "size %d", n)
		assert.Len(t, l.Container().Children(), n*n*n)
		assert.Len(t, l.Offsets(), n*n*n)
	}
}

func TestCoordinateRange(t *testing.T) {
	cases := []struct {
		n        int
		min, max int
	}{
		{1, 0, 0},
		{2, -1, 0},
		{3, -1, 1},
		{4, -2, 1},
		{5, -2, 2},
	}
	for _, tc := range cases {
		l := NewLattice(WithSize(tc.n))
		first := l.Cells()[0].Coord
		last := l.Cells()[len(l.Cells())-1].Coord
		assert.Equal(t, Coord{tc.min, tc.min, tc.min}, first, "size %d", tc.n)
		assert.Equal(t, Coord{tc.max, tc.max, tc.max}, last, "size %d", tc.n)
	}
}

func TestIterationOrderZInner(t *testing.T) {
	l := NewLattice(WithSize(3))
	cells := l.Cells()
	assert.Equal(t, Coord{-1, -1, -1}, cells[0].Coord)
	assert.Equal(t, Coord{-1, -1, 0}, cells[1].Coord)
	assert.Equal(t, Coord{-1, 0, -1}, cells[3].Coord)
	assert.Equal(t, Coord{0, -1, -1}, cells[9].Coord)
}

func TestOriginCellIndependentOfSpacing(t *testing.T) {
	for _, s := range []float64{0, 0.05, 0.1, 1.5} {
		l := NewLattice(WithSize(3), WithSpacing(s))
		c, ok := l.Cell(0, 0, 0)
		require.True(t, ok)
		assert.Equal(t, mgl64.Vec3{0, 0, 0}, c.Position())
	}
}

func TestScenarioThreeByThree(t *testing.T) {
	l := NewLattice(WithSize(3), WithSpacing(0.05))
	assert.Len(t, l.Cells(), 27)

	c, ok := l.Cell(1, 1, 1)
	require.True(t, ok)
	assert.True(t, c.Position().ApproxEqualThreshold(mgl64.Vec3{1.05, 1.05, 1.05}, 1e-12))

	c, ok = l.Cell(-1, 0, 1)
	require.True(t, ok)
	assert.True(t, c.Position().ApproxEqualThreshold(mgl64.Vec3{-1.05, 0, 1.05}, 1e-12))

	pos := l.Container().Position()
	for i := range 3 {
		assert.InDelta(t, -0.575, pos[i], 1e-12)
	}
	assert.Equal(t, mgl64.Vec3{}, l.Rotation())
	assert.Equal(t, mgl64.Vec3{50, 50, 50}, l.Container().Scale())

	_, ok = l.Cell(2, 0, 0)
	assert.False(t, ok)
}

func TestContainerTranslation(t *testing.T) {
	cases := []struct {
		n       int
		spacing float64
	}{
		{1, 0}, {2, 0.05}, {3, 0.1}, {4, 0.05}, {7, 0.25},
	}
	for _, tc := range cases {
		l := NewLattice(WithSize(tc.n), WithSpacing(tc.spacing), WithScale(60))
		want := -0.5 * (float64(tc.n) + tc.spacing*float64(tc.n) - 2)
		got := l.Container().Position()
		assert.InDelta(t, want, got.X(), 1e-12)
		assert.InDelta(t, want, got.Y(), 1e-12)
		assert.InDelta(t, want, got.Z(), 1e-12)
		assert.Equal(t, mgl64.Vec3{60, 60, 60}, l.Container().Scale())
	}
}

func TestEveryCellSharesFaceMaterials(t *testing.T) {
	colors := DefaultColors
	colors[2] = common.MustParseHexColor("#123456")
	faces := material.NewFaceSetFromColors(colors)
	l := NewLattice(WithSize(2), WithFaceMaterials(faces))

	assert.Same(t, faces, l.FaceMaterials())
	for _, c := range l.Cells() {
		require.Same(t, faces, c.Faces)
		for i := range material.FaceCount {
			assert.Equal(t, colors[i], c.Faces.Face(i).Color())
		}
	}
}

func TestDefaultFaceMaterials(t *testing.T) {
	l := NewLattice()
	require.NotNil(t, l.FaceMaterials())
	assert.Equal(t, DefaultColors[0], l.FaceMaterials().Face(0).Color())
	assert.Equal(t, 3, l.Size())
	assert.Equal(t, 0.05, l.Spacing())
}

func TestRotateOnlyTouchesContainer(t *testing.T) {
	l := NewLattice(WithSize(3))
	before := l.Offsets()
	l.Rotate(0.1, 0.2, 0.3)
	l.Rotate(0.1, 0.2, 0.3)
	assert.True(t, l.Rotation().ApproxEqual(mgl64.Vec3{0.2, 0.4, 0.6}))
	assert.Equal(t, before, l.Offsets())
	for _, c := range l.Cells() {
		assert.Equal(t, mgl64.Vec3{}, c.Node.Rotation())
	}
}

func TestOffsetsMatchCells(t *testing.T) {
	l := NewLattice(WithSize(2), WithSpacing(0.5))
	offsets := l.Offsets()
	for i, c := range l.Cells() {
		p := c.Position()
		assert.Equal(t, mgl32.Vec4{float32(p.X()), float32(p.Y()), float32(p.Z()), 1}, offsets[i])
	}

	buf := OffsetBytes(offsets)
	require.Len(t, buf, len(offsets)*16)
	assert.Equal(t, float32(-1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
}

func TestSceneUniformLayout(t *testing.T) {
	l := NewLattice()
	u := GPUSceneUniform{
		ViewProj: mgl32.Ident4(),
		Model:    l.Container().WorldMatrix32(),
		Light:    light.NewLight(light.WithIntensity(2)).GPU(),
		Colors:   l.FaceMaterials().LinearColors(),
	}
	assert.Equal(t, 256, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 256)
	readF := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, float32(1), readF(0))
	assert.Equal(t, float32(50), readF(64))
	assert.InDelta(t, -0.575, readF(64+48), 1e-6)
	assert.Equal(t, float32(2), readF(128+12))
	assert.InDelta(t, 1, readF(160+5*16), 1e-6)
}
