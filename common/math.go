package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// clipDepthFix remaps OpenGL style clip depth [-w, w] (what mgl32.Perspective and mgl32.Ortho
// produce) to the WebGPU clip depth range [0, w].
var clipDepthFix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// DepthZeroToOne converts a projection matrix built for [-1, 1] NDC depth into one that
// targets the [0, 1] NDC depth range used by WebGPU.
//
// Parameters:
//   - proj: a projection matrix from mgl32.Perspective, mgl32.Ortho or mgl32.Frustum
//
// Returns:
//   - mgl32.Mat4: the corrected projection matrix
func DepthZeroToOne(proj mgl32.Mat4) mgl32.Mat4 {
	return clipDepthFix.Mul4(proj)
}

// Mat4To32 narrows a double precision matrix to single precision for GPU upload.
//
// Parameters:
//   - m: the source matrix
//
// Returns:
//   - mgl32.Mat4: the same matrix in float32
func Mat4To32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// Vec3To32 narrows a double precision vector to single precision.
func Vec3To32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}
