// Package model loads OBJ meshes into validated, immutable values and packs
// them into GPU-ready vertex and index arrays.
package model

import "github.com/Faultbox/meshcam/pkg/math"

// Face is one triangle as 0-based indices into the mesh positions.
type Face [3]uint32

// Vertex is the interleaved vertex layout handed to the renderer:
// position at offset 0, normal at 12, texcoord at 24.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 32

// DrawRange locates one mesh inside shared buffers.
type DrawRange struct {
	BaseVertex uint32 // First vertex of the mesh
	StartIndex uint32 // First index of the mesh
	IndexCount uint32
}

// Buffers holds vertex and index data for one or more meshes, ready for GPU upload.
// Indices are absolute: they already include each mesh's BaseVertex.
type Buffers struct {
	Vertices []Vertex
	Indices  []uint32
	Ranges   []DrawRange
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3FromMgl(b.Min.Mgl().Add(b.Max.Mgl()).Mul(0.5))
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return math.Vec3FromMgl(b.Max.Mgl().Sub(b.Min.Mgl()))
}

// BuildOptions contains options for buffer building.
type BuildOptions struct {
	// GenerateNormals computes smooth normals for meshes that have none.
	GenerateNormals bool
	// FlipV stores 1-v instead of v, for images whose first row is the top.
	FlipV bool
}
