// Package lighting prepares per-frame light and material parameters for
// upload to a constant buffer. Shading itself happens on the GPU.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/meshcam/pkg/formats"
	"github.com/Faultbox/meshcam/pkg/math"
)

// Material describes surface response. Specular.W is the specular power.
type Material struct {
	Ambient  math.Vec4
	Diffuse  math.Vec4
	Specular math.Vec4
}

// DirectionalLight is a light at infinity.
type DirectionalLight struct {
	Ambient   math.Vec4
	Diffuse   math.Vec4
	Specular  math.Vec4
	Direction math.Vec3 // Direction the light travels
}

// PointLight radiates from a position with distance attenuation.
type PointLight struct {
	Ambient  math.Vec4
	Diffuse  math.Vec4
	Specular math.Vec4
	Position math.Vec3
	Range    float32
	Att      math.Vec3 // Constant, linear and quadratic attenuation
}

// SpotLight is a point light restricted to a cone.
type SpotLight struct {
	Ambient   math.Vec4
	Diffuse   math.Vec4
	Specular  math.Vec4
	Position  math.Vec3
	Range     float32
	Direction math.Vec3
	Spot      float32 // Cone exponent
	Att       math.Vec3
}

// Frame holds everything the lighting constant buffer needs for one frame.
type Frame struct {
	Material Material
	Dir      DirectionalLight
	Point    PointLight
	Spot     SpotLight
	EyePos   math.Vec3
}

// FloatCount is the length of Frame.Floats.
const FloatCount = 12 + 16 + 20 + 24 + 4

// DefaultFrame returns a green-tinted material lit by a red directional
// light, a green point light and a yellow spot light.
func DefaultFrame() Frame {
	return Frame{
		Material: Material{
			Ambient:  math.Vec4{X: 0.48, Y: 0.77, Z: 0.46, W: 1},
			Diffuse:  math.Vec4{X: 0.48, Y: 0.77, Z: 0.46, W: 1},
			Specular: math.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 16},
		},
		Dir: DirectionalLight{
			Ambient:   math.Vec4{X: 0.2, W: 1},
			Diffuse:   math.Vec4{X: 0.5, W: 1},
			Specular:  math.Vec4{X: 0.5, W: 1},
			Direction: math.Vec3{X: 0.57735, Y: -0.57735, Z: 0.57735},
		},
		Point: PointLight{
			Ambient:  math.Vec4{Y: 0.3, W: 1},
			Diffuse:  math.Vec4{Y: 0.7, W: 1},
			Specular: math.Vec4{Y: 0.7, W: 1},
			Att:      math.Vec3{Y: 0.1},
			Range:    25,
		},
		Spot: SpotLight{
			Ambient:  math.Vec4{W: 1},
			Diffuse:  math.Vec4{X: 1, Y: 1, W: 1},
			Specular: math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
			Att:      math.Vec3{X: 1},
			Spot:     96,
			Range:    10000,
		},
	}
}

// FollowCamera moves the eye and the spot light to the camera.
func (f *Frame) FollowCamera(pos, forward math.Vec4) {
	f.EyePos = pos.Vec3()
	f.Spot.Position = pos.Vec3()
	f.Spot.Direction = forward.Vec3()
}

// OrbitPointLight places the point light on a circle of the given radius,
// at height radius, at angle t radians.
func (f *Frame) OrbitPointLight(t, radius float32) {
	s, c := gomath.Sincos(float64(t))
	f.Point.Position = math.Vec3{
		X: radius * float32(s),
		Y: radius,
		Z: radius * float32(c),
	}
}

// MaterialFromMTL converts a parsed material. Alpha is the dissolve value.
func MaterialFromMTL(m formats.Material) Material {
	shininess := m.Shininess
	if shininess <= 0 {
		shininess = 1
	}
	return Material{
		Ambient:  math.Vec4{X: m.Ambient.X, Y: m.Ambient.Y, Z: m.Ambient.Z, W: m.Dissolve},
		Diffuse:  math.Vec4{X: m.Diffuse.X, Y: m.Diffuse.Y, Z: m.Diffuse.Z, W: m.Dissolve},
		Specular: math.Vec4{X: m.Specular.X, Y: m.Specular.Y, Z: m.Specular.Z, W: shininess},
	}
}

// Floats packs the frame in 16-byte register order: every vector starts a
// new register and scalars fill the fourth lane of the preceding vec3.
func (f *Frame) Floats() []float32 {
	out := make([]float32, 0, FloatCount)
	vec4 := func(v math.Vec4) {
		out = append(out, v.X, v.Y, v.Z, v.W)
	}
	vec3 := func(v math.Vec3, w float32) {
		out = append(out, v.X, v.Y, v.Z, w)
	}

	vec4(f.Material.Ambient)
	vec4(f.Material.Diffuse)
	vec4(f.Material.Specular)

	vec4(f.Dir.Ambient)
	vec4(f.Dir.Diffuse)
	vec4(f.Dir.Specular)
	vec3(f.Dir.Direction, 0)

	vec4(f.Point.Ambient)
	vec4(f.Point.Diffuse)
	vec4(f.Point.Specular)
	vec3(f.Point.Position, f.Point.Range)
	vec3(f.Point.Att, 0)

	vec4(f.Spot.Ambient)
	vec4(f.Spot.Diffuse)
	vec4(f.Spot.Specular)
	vec3(f.Spot.Position, f.Spot.Range)
	vec3(f.Spot.Direction, f.Spot.Spot)
	vec3(f.Spot.Att, 0)

	vec3(f.EyePos, 0)
	return out
}
