package compositor

import "github.com/Carmen-Shannon/pixelcube/common"

// CompositorBuilderOption is a functional option for configuring a Compositor.
type CompositorBuilderOption func(c *compositorImpl)

// WithResolution sets the downsample divisor applied to the viewport size to get the offscreen
// target size (default 8). Values below 1 are treated as 1.
//
// Parameters:
//   - divisor: the integer divisor
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithResolution(divisor int) CompositorBuilderOption {
	return func(c *compositorImpl) {
		c.resolution = common.AtLeast(divisor, 1)
	}
}

// WithClearColor sets the color both passes clear to (default white).
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithClearColor(color common.Color) CompositorBuilderOption {
	return func(c *compositorImpl) {
		c.clearColor = color
	}
}

// WithSampler sets the filtering used when the quad samples the offscreen target
// (default common.PixelatedSampler).
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithSampler(sampler common.SamplerConfig) CompositorBuilderOption {
	return func(c *compositorImpl) {
		c.sampler = sampler
	}
}

// WithQuadDepth sets the Z position of the composite quad in front of the orthographic camera
// (default -100).
//
// Parameters:
//   - z: the quad depth
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithQuadDepth(z float32) CompositorBuilderOption {
	return func(c *compositorImpl) {
		c.quadDepth = z
	}
}
