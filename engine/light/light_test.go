package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight()
	assert.Equal(t, common.White, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, l.Direction())
}

func TestLightDirectionFollowsPosition(t *testing.T) {
	l := NewLight(WithPosition(0, 0, 600), WithTarget(0, 0, 0), WithIntensity(2))
	assert.True(t, l.Direction().ApproxEqual(mgl32.Vec3{0, 0, 1}))

	l.SetPosition(mgl32.Vec3{600, 0, 0})
	assert.True(t, l.Direction().ApproxEqual(mgl32.Vec3{1, 0, 0}))

	l.SetTarget(mgl32.Vec3{600, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, l.Direction(), "degenerate direction falls back to +Z")
}

func TestLightGPU(t *testing.T) {
	l := NewLight(WithPosition(0, 10, 0), WithIntensity(2), WithColor(common.White))
	g := l.GPU()
	assert.Equal(t, 32, g.Size())
	assert.InDelta(t, 1, g.Direction.Y(), 1e-6)
	assert.Equal(t, float32(2), g.Direction.W())

	buf := g.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
}
