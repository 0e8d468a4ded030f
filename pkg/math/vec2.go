// Package math provides plain storage types for vectors and matrices.
//
// The types here are packed float32 values meant to be stored in meshes,
// camera state and GPU-bound buffers. Arithmetic is done on mgl32 values;
// convert at component boundaries with the Mgl and FromMgl helpers.
package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 is a packed 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Mgl returns v as an mgl32 vector.
func (v Vec2) Mgl() mgl32.Vec2 {
	return mgl32.Vec2{v.X, v.Y}
}

// Vec2FromMgl converts an mgl32 vector to storage form.
func Vec2FromMgl(v mgl32.Vec2) Vec2 {
	return Vec2{v[0], v[1]}
}

// Array returns the components as an array.
func (v Vec2) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}
