package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixColors() [FaceCount]common.Color {
	return [FaceCount]common.Color{
		common.MustParseHexColor("#C41E3A"),
		common.MustParseHexColor("#009E60"),
		common.MustParseHexColor("#0051BA"),
		common.MustParseHexColor("#FF5800"),
		common.MustParseHexColor("#FFD500"),
		common.MustParseHexColor("#FFFFFF"),
	}
}

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, common.White, m.Color())
	assert.Empty(t, m.Name())

	m = NewMaterial(WithName("red"), WithColor(common.Color{R: 1, A: 1}))
	assert.Equal(t, "red", m.Name())
	assert.Equal(t, 1.0, m.Color().R)
}

func TestNewFaceSet(t *testing.T) {
	_, err := NewFaceSet(NewMaterial())
	assert.Error(t, err)

	mats := make([]Material, FaceCount)
	for i := range mats {
		mats[i] = NewMaterial()
	}
	mats[3] = nil
	_, err = NewFaceSet(mats...)
	assert.Error(t, err)

	mats[3] = NewMaterial()
	fs, err := NewFaceSet(mats...)
	require.NoError(t, err)
	for i := range FaceCount {
		assert.Same(t, mats[i], fs.Face(i))
	}
}

func TestFaceSetFromColorsKeepsOrder(t *testing.T) {
	colors := sixColors()
	fs := NewFaceSetFromColors(colors)
	faces := fs.Faces()
	for i := range FaceCount {
		assert.Equal(t, colors[i], faces[i].Color())
	}
}

func TestLinearColorsMarshal(t *testing.T) {
	fs := NewFaceSetFromColors(sixColors())
	block := fs.LinearColors()
	assert.Equal(t, 96, block.Size())

	buf := block.Marshal()
	require.Len(t, buf, 96)

	// face 5 is white
	for j := range 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(buf[(5*4+j)*4:]))
		assert.InDelta(t, 1, v, 1e-6)
	}
	// face 1 (#009E60) has no red
	assert.Equal(t, float32(0), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
}
