package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 matrix in column-major order (mgl32 and OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromMgl converts an mgl32 matrix to storage form. Both are column-major.
func Mat4FromMgl(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}

// Mgl returns m as an mgl32 matrix.
func (m Mat4) Mgl() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// At returns the element at row, col.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Transpose returns the transposed matrix. Row-major consumers, such as HLSL
// constant buffers with default packing, upload the transpose.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// TransformVec3 transforms a point (w = 1) by m.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	r := m.Mgl().Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, 1})
	if r[3] != 0 && r[3] != 1 {
		return Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return Vec3{r[0], r[1], r[2]}
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
