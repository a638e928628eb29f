package material

import (
	"fmt"

	"github.com/Carmen-Shannon/pixelcube/common"
)

// material is the implementation of the Material interface.
type material struct {
	name  string
	color common.Color
}

// Material defines the interface for a diffuse (Lambert) surface material.
//
// Materials are immutable once built. A single Material value may be shared by any number of
// meshes; the lattice shares one FaceSet between every cell.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the sRGB diffuse color of the material.
	//
	// Returns:
	//   - common.Color: the diffuse color
	Color() common.Color
}

var _ Material = &material{}

// NewMaterial creates a Material. Without options the material is white.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: the new material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color: common.White,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	return m.color
}

// FaceCount is the number of materials in a FaceSet, one per box side.
const FaceCount = 6

// FaceSet is an ordered, immutable set of six materials applied to the six faces of a box
// (+X, -X, +Y, -Y, +Z, -Z).
type FaceSet struct {
	faces [FaceCount]Material
}

// NewFaceSet builds a FaceSet from exactly six materials.
//
// Parameters:
//   - materials: the six face materials in face order
//
// Returns:
//   - *FaceSet: the face set
//   - error: an error if the count is not six or a material is nil
func NewFaceSet(materials ...Material) (*FaceSet, error) {
	if len(materials) != FaceCount {
		return nil, fmt.Errorf("face set needs %d materials, got %d", FaceCount, len(materials))
	}
	fs := &FaceSet{}
	for i, m := range materials {
		if m == nil {
			return nil, fmt.Errorf("face material %d is nil", i)
		}
		fs.faces[i] = m
	}
	return fs, nil
}

// NewFaceSetFromColors builds a FaceSet of Lambert materials from six colors.
//
// Parameters:
//   - colors: the six face colors in face order
//
// Returns:
//   - *FaceSet: the face set
func NewFaceSetFromColors(colors [FaceCount]common.Color) *FaceSet {
	fs := &FaceSet{}
	for i, c := range colors {
		fs.faces[i] = NewMaterial(WithName(fmt.Sprintf("face_%d", i)), WithColor(c))
	}
	return fs
}

// Face returns the material for face index i (0..5).
func (fs *FaceSet) Face(i int) Material {
	return fs.faces[i]
}

// Faces returns a copy of all six materials in face order.
func (fs *FaceSet) Faces() [FaceCount]Material {
	return fs.faces
}

// LinearColors returns the six face colors converted to linear space, ready for the shader.
//
// Returns:
//   - GPUFaceColors: the packed color block
func (fs *FaceSet) LinearColors() GPUFaceColors {
	var out GPUFaceColors
	for i, m := range fs.faces {
		c := m.Color().Linear()
		out.Colors[i] = [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	}
	return out
}
