package lattice

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/pixelcube/engine/light"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUSceneUniform is the GPU-aligned uniform block read by the lattice shader.
// Size: 256 bytes, matching the WGSL Globals struct.
type GPUSceneUniform struct {
	ViewProj mgl32.Mat4             // offset   0: camera view-projection
	Model    mgl32.Mat4             // offset  64: container world matrix
	Light    light.GPULight         // offset 128: direction + intensity, color
	Colors   material.GPUFaceColors // offset 160: six linear face colors
}

// Size returns the size of the GPUSceneUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (256)
func (g *GPUSceneUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 256-byte buffer ready for GPU upload
func (g *GPUSceneUniform) Marshal() []byte {
	buf := make([]byte, 0, 256)
	buf = appendMat4(buf, g.ViewProj)
	buf = appendMat4(buf, g.Model)
	buf = append(buf, g.Light.Marshal()...)
	buf = append(buf, g.Colors.Marshal()...)
	return buf
}

// OffsetBytes packs per-instance cell offsets for the lattice storage buffer.
//
// Parameters:
//   - offsets: the values returned by Lattice.Offsets
//
// Returns:
//   - []byte: 16 bytes per offset
func OffsetBytes(offsets []mgl32.Vec4) []byte {
	buf := make([]byte, 0, len(offsets)*16)
	for _, o := range offsets {
		for i := range 4 {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(o[i]))
		}
	}
	return buf
}

func appendMat4(buf []byte, m mgl32.Mat4) []byte {
	for i := range 16 {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(m[i]))
	}
	return buf
}
