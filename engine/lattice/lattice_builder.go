package lattice

import (
	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/material"
)

// DefaultColors are the classic puzzle cube face colors in face order (+X, -X, +Y, -Y, +Z, -Z).
var DefaultColors = [material.FaceCount]common.Color{
	common.MustParseHexColor("#C41E3A"), // red
	common.MustParseHexColor("#009E60"), // green
	common.MustParseHexColor("#0051BA"), // blue
	common.MustParseHexColor("#FF5800"), // orange
	common.MustParseHexColor("#FFD500"), // yellow
	common.MustParseHexColor("#FFFFFF"), // white
}

// LatticeBuilderOption is a functional option for configuring a Lattice.
type LatticeBuilderOption func(l *latticeImpl)

// WithSize sets N, the number of cells along each axis (default 3).
//
// Parameters:
//   - n: the edge cell count
//
// Returns:
//   - LatticeBuilderOption: option function to apply
func WithSize(n int) LatticeBuilderOption {
	return func(l *latticeImpl) {
		l.size = n
	}
}

// WithSpacing sets the multiplicative gap factor between cells (default 0.05).
//
// Parameters:
//   - s: the spacing factor
//
// Returns:
//   - LatticeBuilderOption: option function to apply
func WithSpacing(s float64) LatticeBuilderOption {
	return func(l *latticeImpl) {
		l.spacing = s
	}
}

// WithScale sets the uniform container scale (default 50).
//
// Parameters:
//   - k: the scale factor
//
// Returns:
//   - LatticeBuilderOption: option function to apply
func WithScale(k float64) LatticeBuilderOption {
	return func(l *latticeImpl) {
		l.scale = k
	}
}

// WithFaceMaterials sets the face material set shared by every cell.
//
// Parameters:
//   - faces: the six face materials
//
// Returns:
//   - LatticeBuilderOption: option function to apply
func WithFaceMaterials(faces *material.FaceSet) LatticeBuilderOption {
	return func(l *latticeImpl) {
		l.faces = faces
	}
}
