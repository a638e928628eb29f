package material

import "github.com/Carmen-Shannon/pixelcube/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - color: the sRGB diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}
