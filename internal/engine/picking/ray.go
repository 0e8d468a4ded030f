// Package picking provides ray casting against mesh bounds.
package picking

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshcam/internal/engine/model"
	"github.com/Faultbox/meshcam/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts pixel coordinates to a world-space ray starting on
// the near plane. Pixel Y grows downward.
func ScreenToRay(screenX, screenY float32, viewportW, viewportH int, view, proj math.Mat4) (Ray, error) {
	// Window coordinates have Y up.
	winY := float32(viewportH) - screenY

	near, err := mgl32.UnProject(mgl32.Vec3{screenX, winY, 0}, view.Mgl(), proj.Mgl(), 0, 0, viewportW, viewportH)
	if err != nil {
		return Ray{}, fmt.Errorf("unproject near point: %w", err)
	}
	far, err := mgl32.UnProject(mgl32.Vec3{screenX, winY, 1}, view.Mgl(), proj.Mgl(), 0, 0, viewportW, viewportH)
	if err != nil {
		return Ray{}, fmt.Errorf("unproject far point: %w", err)
	}

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}, nil
}

// IntersectBounds tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(box model.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	lo := box.Min.Mgl()
	hi := box.Max.Mgl()

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			// Parallel to the slab
			if o < lo[axis] || o > hi[axis] {
				return 0, false
			}
			continue
		}

		t1 := (lo[axis] - o) / d
		t2 := (hi[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y())) < 0.001 {
		return 0, 0, false
	}

	t := (planeY - r.Origin.Y()) / r.Direction.Y()
	if t < 0 {
		return 0, 0, false
	}

	p := r.At(t)
	return p.X(), p.Z(), true
}
