package lighting

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshcam/pkg/math"
)

// SunDirection converts angles in degrees to a unit light direction.
// Azimuth rotates around Y starting at +Z; elevation is measured from the
// horizon, negative values pointing downward.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	x := float32(gomath.Cos(el) * gomath.Sin(az))
	y := float32(gomath.Sin(el))
	z := float32(gomath.Cos(el) * gomath.Cos(az))

	return math.Vec3FromMgl(mgl32.Vec3{x, y, z}.Normalize())
}
