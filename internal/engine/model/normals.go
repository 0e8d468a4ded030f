package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshcam/pkg/math"
)

// GenerateNormals computes smooth per-vertex normals from the faces.
// Each face contributes its unnormalized cross product, so larger triangles
// weigh more. Vertices not used by a non-degenerate face get a zero normal.
func GenerateNormals(positions []math.Vec3, faces []Face) []math.Vec3 {
	sums := make([]mgl32.Vec3, len(positions))
	for _, f := range faces {
		v0 := positions[f[0]].Mgl()
		v1 := positions[f[1]].Mgl()
		v2 := positions[f[2]].Mgl()
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range f {
			sums[idx] = sums[idx].Add(n)
		}
	}

	normals := make([]math.Vec3, len(positions))
	for i, s := range sums {
		// Degenerate or unused
		if s.Len() < 1e-12 {
			continue
		}
		normals[i] = math.Vec3FromMgl(s.Normalize())
	}
	return normals
}
