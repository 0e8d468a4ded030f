package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshcam/pkg/formats"
	"github.com/Faultbox/meshcam/pkg/math"
)

func TestDefaultFrame(t *testing.T) {
	f := DefaultFrame()

	assert.Equal(t, math.Vec4{X: 0.48, Y: 0.77, Z: 0.46, W: 1}, f.Material.Diffuse)
	assert.Equal(t, float32(16), f.Material.Specular.W)
	assert.Equal(t, math.Vec4{X: 0.5, W: 1}, f.Dir.Diffuse)
	assert.Equal(t, float32(25), f.Point.Range)
	assert.Equal(t, math.Vec3{Y: 0.1}, f.Point.Att)
	assert.Equal(t, float32(96), f.Spot.Spot)
	assert.Equal(t, float32(10000), f.Spot.Range)

	d := f.Dir.Direction.Mgl()
	assert.InDelta(t, 1, d.Len(), 1e-4)
}

func TestFollowCamera(t *testing.T) {
	f := DefaultFrame()
	pos := math.Vec4{X: 1, Y: 2, Z: 3}
	fwd := math.Vec4{Z: -1}

	f.FollowCamera(pos, fwd)

	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, f.EyePos)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, f.Spot.Position)
	assert.Equal(t, math.Vec3{Z: -1}, f.Spot.Direction)
}

func TestOrbitPointLight(t *testing.T) {
	tests := []struct {
		name string
		t    float32
		want math.Vec3
	}{
		{"start", 0, math.Vec3{X: 0, Y: 5, Z: 5}},
		{"quarter", 1.5707964, math.Vec3{X: 5, Y: 5, Z: 0}},
		{"half", 3.1415927, math.Vec3{X: 0, Y: 5, Z: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFrame()
			f.OrbitPointLight(tt.t, 5)
			assert.InDelta(t, tt.want.X, f.Point.Position.X, 1e-5)
			assert.InDelta(t, tt.want.Y, f.Point.Position.Y, 1e-5)
			assert.InDelta(t, tt.want.Z, f.Point.Position.Z, 1e-5)
		})
	}
}

func TestMaterialFromMTL(t *testing.T) {
	m := MaterialFromMTL(formats.Material{
		Name:      "Textured",
		Ambient:   math.Vec3{X: 0.1, Y: 0.2, Z: 0.3},
		Diffuse:   math.Vec3{X: 0.4, Y: 0.5, Z: 0.6},
		Specular:  math.Vec3{X: 0.7, Y: 0.8, Z: 0.9},
		Shininess: 32,
		Dissolve:  0.5,
	})

	assert.Equal(t, math.Vec4{X: 0.1, Y: 0.2, Z: 0.3, W: 0.5}, m.Ambient)
	assert.Equal(t, math.Vec4{X: 0.4, Y: 0.5, Z: 0.6, W: 0.5}, m.Diffuse)
	assert.Equal(t, math.Vec4{X: 0.7, Y: 0.8, Z: 0.9, W: 32}, m.Specular)

	// Zero shininess would make the specular term degenerate.
	assert.Equal(t, float32(1), MaterialFromMTL(formats.Material{}).Specular.W)
}

func TestFloats(t *testing.T) {
	f := DefaultFrame()
	f.FollowCamera(math.Vec4{X: 7, Y: 8, Z: 9}, math.Vec4{X: 1})
	f.OrbitPointLight(0, 2)

	v := f.Floats()
	require.Len(t, v, FloatCount)
	require.Zero(t, len(v)%4, "not register aligned")

	// Material
	assert.Equal(t, []float32{0.2, 0.2, 0.2, 16}, v[8:12])
	// Directional light direction
	assert.Equal(t, []float32{0.57735, -0.57735, 0.57735, 0}, v[24:28])
	// Point light position and range
	assert.InDeltaSlice(t, []float32{0, 2, 2, 25}, v[40:44], 1e-6)
	// Spot light position/range and direction/cone
	assert.Equal(t, []float32{7, 8, 9, 10000}, v[60:64])
	assert.Equal(t, []float32{1, 0, 0, 96}, v[64:68])
	// Eye
	assert.Equal(t, []float32{7, 8, 9, 0}, v[72:76])
}

func TestSunDirection(t *testing.T) {
	d := SunDirection(45, -35.26439)
	assert.InDelta(t, 0.57735, d.X, 1e-4)
	assert.InDelta(t, -0.57735, d.Y, 1e-4)
	assert.InDelta(t, 0.57735, d.Z, 1e-4)

	down := SunDirection(0, -90)
	assert.InDelta(t, -1, down.Y, 1e-6)
}
