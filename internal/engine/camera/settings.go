package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshcam/pkg/math"
)

// Settings is the persisted camera configuration. Angles are in degrees.
type Settings struct {
	Sensitivity float32    `yaml:"sensitivity"`
	MoveSpeed   float32    `yaml:"move_speed"`
	Position    [3]float32 `yaml:"position"`
	YawDeg      float32    `yaml:"yaw"`
	PitchDeg    float32    `yaml:"pitch"`
}

// DefaultSettings returns the settings matching New with no options.
func DefaultSettings() Settings {
	return Settings{
		Sensitivity: DefaultSensitivity,
		MoveSpeed:   DefaultMoveSpeed,
		Position:    DefaultPosition.Array(),
		YawDeg:      -90,
		PitchDeg:    0,
	}
}

// FromSettings creates a controller from settings. Extra options are applied
// after the settings.
func FromSettings(s Settings, opts ...Option) *Controller {
	base := []Option{
		WithSensitivity(s.Sensitivity),
		WithMoveSpeed(s.MoveSpeed),
		WithPosition(math.Vec3{X: s.Position[0], Y: s.Position[1], Z: s.Position[2]}),
		WithOrientation(mgl32.DegToRad(s.YawDeg), mgl32.DegToRad(s.PitchDeg)),
	}
	return New(append(base, opts...)...)
}
