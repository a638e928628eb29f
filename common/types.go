// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is an sRGB encoded RGBA color with components in the [0, 1] range.
type Color struct {
	R, G, B, A float64
}

// White is opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// ParseHexColor parses a CSS style hex color ("#RRGGBB", "#RRGGBBAA", or the same without the leading '#').
//
// Parameters:
//   - s: the hex string to parse
//
// Returns:
//   - Color: the parsed color, alpha defaults to 1 when omitted
//   - error: an error if the string is not a valid hex color
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q: expected 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return Color{
		R: float64((v>>24)&0xFF) / 255,
		G: float64((v>>16)&0xFF) / 255,
		B: float64((v>>8)&0xFF) / 255,
		A: float64(v&0xFF) / 255,
	}, nil
}

// MustParseHexColor is ParseHexColor for compile-time constants; it panics on malformed input.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#RRGGBB", or "#RRGGBBAA" when it is not fully opaque.
func (c Color) Hex() string {
	to8 := func(f float64) uint8 { return uint8(math.Round(clamp01(f) * 255)) }
	if to8(c.A) == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B))
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

// Linear converts the sRGB encoded color channels to linear light. Alpha is unchanged.
//
// Returns:
//   - Color: the color in linear space
func (c Color) Linear() Color {
	return Color{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B), A: c.A}
}

// Vec4 returns the color as an mgl32.Vec4 (r, g, b, a).
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// WGPU returns the color as a clear value for render pass attachments.
func (c Color) WGPU() wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func srgbToLinear(v float64) float64 {
	v = clamp01(v)
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// SamplerConfig holds the configuration for a texture sampler pending GPU creation.
// Zero values fall back to clamp-to-edge addressing and linear filtering.
type SamplerConfig struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
}

// PixelatedSampler minifies linearly and magnifies with nearest-neighbour filtering,
// which is what gives an upscaled low resolution target its blocky look.
var PixelatedSampler = SamplerConfig{
	AddressModeU: wgpu.AddressModeClampToEdge,
	AddressModeV: wgpu.AddressModeClampToEdge,
	AddressModeW: wgpu.AddressModeClampToEdge,
	MagFilter:    wgpu.FilterModeNearest,
	MinFilter:    wgpu.FilterModeLinear,
	MipmapFilter: wgpu.MipmapFilterModeNearest,
}
