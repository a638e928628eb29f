package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#C41E3A")
	require.NoError(t, err)
	assert.InDelta(t, 0xC4/255.0, c.R, 1e-9)
	assert.InDelta(t, 0x1E/255.0, c.G, 1e-9)
	assert.InDelta(t, 0x3A/255.0, c.B, 1e-9)
	assert.Equal(t, 1.0, c.A)
	assert.Equal(t, "#C41E3A", c.Hex())

	c, err = ParseHexColor("ffffff80")
	require.NoError(t, err)
	assert.InDelta(t, 0x80/255.0, c.A, 1e-9)
	assert.Equal(t, "#FFFFFF80", c.Hex())

	for _, bad := range []string{"", "#12345", "#GGGGGG", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorLinear(t *testing.T) {
	assert.Equal(t, White, White.Linear())

	black := Color{A: 1}.Linear()
	assert.Equal(t, 0.0, black.R)

	mid := Color{R: 0.5, G: 0.5, B: 0.5, A: 0.25}.Linear()
	assert.InDelta(t, 0.214, mid.R, 1e-3)
	assert.Equal(t, 0.25, mid.A)
}

func TestDepthZeroToOne(t *testing.T) {
	proj := DepthZeroToOne(mgl32.Perspective(mgl32.DegToRad(60), 1, 1, 100))

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
}

func TestMat4To32(t *testing.T) {
	m := mgl64.Translate3D(1.5, -2, 3)
	m32 := Mat4To32(m)
	assert.Equal(t, mgl32.Translate3D(1.5, -2, 3), m32)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, Vec3To32(mgl64.Vec3{1, 2, 3}))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]mgl32.Vec4{{}, {}}), 32)

	v := struct{ A, B uint32 }{1, 2}
	assert.Len(t, StructToBytes(&v), 8)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, 1, AtLeast(0, 1))
	assert.Equal(t, 5, AtLeast(5, 1))
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "up", KeyName(KeyUp))
	assert.Equal(t, "W", KeyName(KeyW))
	assert.Equal(t, "unknown", KeyName(999))
}
