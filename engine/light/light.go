package light

import (
	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position  mgl32.Vec3
	target    mgl32.Vec3
	color     common.Color
	intensity float32
}

// Light defines the interface for a directional light.
//
// A directional light shines uniformly along the line from its position toward its target; the
// distance between them does not matter, only the direction. Both points are mutable so the light
// can follow the camera each frame.
type Light interface {
	// Position returns the world-space position the light shines from.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Target returns the world-space point the light shines toward.
	//
	// Returns:
	//   - mgl32.Vec3: target as (x, y, z)
	Target() mgl32.Vec3

	// Direction returns the normalized vector from the target toward the light, which is the
	// L vector of the Lambert term. When position and target coincide it points along +Z.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the sRGB color of the light.
	//
	// Returns:
	//   - common.Color: the light color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// SetPosition moves the light.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// SetTarget changes the point the light shines toward.
	//
	// Parameters:
	//   - t: the new world-space target
	SetTarget(t mgl32.Vec3)

	// SetIntensity changes the intensity multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// GPU packs the light for the scene uniform block.
	//
	// Returns:
	//   - GPULight: the GPU representation
	GPU() GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a white directional light of intensity 1 shining from +Z toward the origin.
//
// Parameters:
//   - options: a variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the new light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		position:  mgl32.Vec3{0, 0, 1},
		color:     common.White,
		intensity: 1,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.position.Sub(l.target)
	if d.Len() < 1e-8 {
		return mgl32.Vec3{0, 0, 1}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetTarget(t mgl32.Vec3) {
	l.target = t
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) GPU() GPULight {
	c := l.color.Linear()
	return GPULight{
		Direction: l.Direction().Vec4(l.intensity),
		Color:     mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1},
	}
}
