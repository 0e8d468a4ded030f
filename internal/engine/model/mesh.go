package model

import (
	"slices"

	"github.com/Faultbox/meshcam/pkg/formats"
	"github.com/Faultbox/meshcam/pkg/math"
)

// Mesh is a validated triangle mesh. It is built once by Load or Parse and
// never changes afterwards; accessors return copies.
//
// Normals and texture coordinates are either absent or aligned one-to-one
// with positions.
type Mesh struct {
	name        string
	positions   []math.Vec3
	normals     []math.Vec3
	texCoords   []math.Vec2
	faces       []Face
	texturePath string
	material    formats.Material
	hasMaterial bool
}

// Name returns the object name, or the file name when the source has none.
func (m *Mesh) Name() string {
	return m.name
}

// Positions returns the vertex positions in source order.
func (m *Mesh) Positions() []math.Vec3 {
	return slices.Clone(m.positions)
}

// Normals returns the per-vertex normals, empty if the source had none.
func (m *Mesh) Normals() []math.Vec3 {
	return slices.Clone(m.normals)
}

// TexCoords returns the per-vertex texture coordinates, empty if the source had none.
func (m *Mesh) TexCoords() []math.Vec2 {
	return slices.Clone(m.texCoords)
}

// Faces returns the triangles.
func (m *Mesh) Faces() []Face {
	return slices.Clone(m.faces)
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.positions)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// HasNormals reports whether the mesh carries normals.
func (m *Mesh) HasNormals() bool {
	return len(m.normals) > 0
}

// HasTexCoords reports whether the mesh carries texture coordinates.
func (m *Mesh) HasTexCoords() bool {
	return len(m.texCoords) > 0
}

// TexturePath returns the diffuse texture named by the mesh material, unresolved.
func (m *Mesh) TexturePath() (string, bool) {
	return m.texturePath, m.texturePath != ""
}

// Material returns the material selected for the mesh.
func (m *Mesh) Material() (formats.Material, bool) {
	return m.material, m.hasMaterial
}

// Bounds returns the bounding box of the positions.
func (m *Mesh) Bounds() Bounds {
	var b Bounds
	for i, p := range m.positions {
		if i == 0 {
			b = Bounds{Min: p, Max: p}
			continue
		}
		b.extend(p)
	}
	return b
}

func (b *Bounds) extend(p math.Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}
