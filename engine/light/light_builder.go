package light

import (
	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget is an option builder that sets the point the light shines toward.
//
// Parameters:
//   - x, y, z: the target components
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = mgl32.Vec3{x, y, z}
	}
}

// WithColor is an option builder that sets the color of the light.
//
// Parameters:
//   - c: the sRGB light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity is an option builder that sets the intensity multiplier of the light.
//
// Parameters:
//   - intensity: the scalar intensity
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}
