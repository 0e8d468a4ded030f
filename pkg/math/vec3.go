package math

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is a packed 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Mgl returns v as an mgl32 vector.
func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Vec3FromMgl converts an mgl32 vector to storage form.
func Vec3FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Array returns the components as an array.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Vec4 is a packed 4-component vector. Camera vectors use W = 0.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mgl returns v as an mgl32 vector.
func (v Vec4) Mgl() mgl32.Vec4 {
	return mgl32.Vec4{v.X, v.Y, v.Z, v.W}
}

// XYZ returns the first three components as an mgl32 vector.
func (v Vec4) XYZ() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Vec4FromMgl3 stores a 3D mgl32 vector with the given W.
func Vec4FromMgl3(v mgl32.Vec3, w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Array returns the components as an array.
func (v Vec4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
