// Package camera provides a first-person camera controller driven by mouse
// and keyboard input.
package camera

import (
	gomath "math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshcam/pkg/math"
)

// Pitch is kept this far away from straight up or down so that forward never
// becomes parallel to the world up axis.
const pitchMargin = 0.01

// MaxPitch is the largest pitch magnitude in radians.
const MaxPitch = gomath.Pi/2 - pitchMargin

// Defaults used by New.
const (
	DefaultSensitivity = 0.1
	DefaultMoveSpeed   = 3.0
	DefaultYaw         = -gomath.Pi / 2
	DefaultPitch       = 0.0
	DefaultLogInterval = time.Second
)

// DefaultPosition is the starting eye position used by New.
var DefaultPosition = math.Vec3{X: 0, Y: 1, Z: 10}

var worldUp = mgl32.Vec3{0, 1, 0}

// KeyState holds the movement keys held during an update.
type KeyState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Any reports whether any movement key is held.
func (k KeyState) Any() bool {
	return k.Forward || k.Back || k.Left || k.Right
}

// MouseDelta is the relative pointer movement since the previous update.
// Screen Y grows downward.
type MouseDelta struct {
	X, Y int
}

// IsZero reports whether the pointer did not move.
func (d MouseDelta) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// Controller is a free-flying first-person camera.
//
// Orientation is stored as yaw and pitch in radians. Yaw is measured from +X
// toward +Z and stays in (-pi, pi]; pitch is clamped to [-MaxPitch, MaxPitch].
// The coordinate system is right-handed with Y up.
type Controller struct {
	position math.Vec4
	forward  math.Vec4
	right    math.Vec4
	up       math.Vec4

	yaw   float32
	pitch float32

	lastMouseX float32
	lastMouseY float32

	// Cursor baseline for UpdateCursor
	haveCursor bool
	cursorX    float64
	cursorY    float64

	sensitivity float32
	moveSpeed   float32

	log         *zap.Logger
	logInterval time.Duration
	lastReport  time.Time
	now         func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithSensitivity sets the mouse sensitivity in radians per pixel-second.
func WithSensitivity(s float32) Option {
	return func(c *Controller) {
		c.sensitivity = s
	}
}

// WithMoveSpeed sets the movement speed in units per second.
func WithMoveSpeed(speed float32) Option {
	return func(c *Controller) {
		c.moveSpeed = speed
	}
}

// WithPosition sets the starting eye position.
func WithPosition(p math.Vec3) Option {
	return func(c *Controller) {
		c.position = math.Vec4{X: p.X, Y: p.Y, Z: p.Z}
	}
}

// WithOrientation sets the starting yaw and pitch in radians.
// Out of range values are wrapped and clamped.
func WithOrientation(yaw, pitch float32) Option {
	return func(c *Controller) {
		c.yaw = yaw
		c.pitch = pitch
	}
}

// WithLogger reports orientation and position at debug level, at most once
// per interval. A zero interval uses DefaultLogInterval.
func WithLogger(l *zap.Logger, interval time.Duration) Option {
	return func(c *Controller) {
		c.log = l
		if interval <= 0 {
			interval = DefaultLogInterval
		}
		c.logInterval = interval
	}
}

// New creates a controller at DefaultPosition looking toward the origin.
func New(opts ...Option) *Controller {
	c := &Controller{
		position:    math.Vec4{X: DefaultPosition.X, Y: DefaultPosition.Y, Z: DefaultPosition.Z},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		sensitivity: DefaultSensitivity,
		moveSpeed:   DefaultMoveSpeed,
		logInterval: DefaultLogInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.pitch = clampPitch(c.pitch)
	c.yaw = wrapYaw(c.yaw)
	c.rebuildBasis()
	return c
}

// Update advances the camera by dt seconds.
//
// A non-zero mouse delta turns the camera: positive X turns right and
// positive Y (pointer moving down) looks down. Held keys then move the
// eye along the new forward and right vectors.
func (c *Controller) Update(dt float32, mouse MouseDelta, keys KeyState) {
	if !mouse.IsZero() {
		dx := float32(mouse.X)
		dy := float32(mouse.Y)

		c.yaw += dt * dx * c.sensitivity
		c.pitch -= dt * dy * c.sensitivity

		c.pitch = clampPitch(c.pitch)
		c.yaw = wrapYaw(c.yaw)
		c.rebuildBasis()

		c.lastMouseX = dx
		c.lastMouseY = dy
	}

	if keys.Any() {
		c.move(dt, keys)
	}

	c.report()
}

// UpdateCursor is Update for absolute cursor positions. The first call only
// records the cursor as a baseline; later calls turn by the difference.
func (c *Controller) UpdateCursor(dt float32, x, y float64, keys KeyState) {
	if !c.haveCursor {
		c.cursorX, c.cursorY = x, y
		c.haveCursor = true
		c.Update(dt, MouseDelta{}, keys)
		return
	}

	delta := MouseDelta{
		X: int(gomath.Round(x - c.cursorX)),
		Y: int(gomath.Round(y - c.cursorY)),
	}
	// Only the applied whole pixels move the baseline, so sub-pixel motion accumulates.
	c.cursorX += float64(delta.X)
	c.cursorY += float64(delta.Y)
	c.Update(dt, delta, keys)
}

func (c *Controller) move(dt float32, keys KeyState) {
	step := dt * c.moveSpeed
	pos := c.position.XYZ()
	fwd := c.forward.XYZ()
	right := c.right.XYZ()

	// Each key contributes on its own, so diagonals are the plain vector sum.
	if keys.Forward {
		pos = pos.Add(fwd.Mul(step))
	}
	if keys.Back {
		pos = pos.Sub(fwd.Mul(step))
	}
	if keys.Right {
		pos = pos.Add(right.Mul(step))
	}
	if keys.Left {
		pos = pos.Sub(right.Mul(step))
	}

	c.position = math.Vec4FromMgl3(pos, 0)
}

func (c *Controller) rebuildBasis() {
	cy := float32(gomath.Cos(float64(c.yaw)))
	sy := float32(gomath.Sin(float64(c.yaw)))
	cp := float32(gomath.Cos(float64(c.pitch)))
	sp := float32(gomath.Sin(float64(c.pitch)))

	fwd := mgl32.Vec3{cp * cy, sp, cp * sy}.Normalize()
	right := fwd.Cross(worldUp).Normalize()
	up := right.Cross(fwd).Normalize()

	c.forward = math.Vec4FromMgl3(fwd, 0)
	c.right = math.Vec4FromMgl3(right, 0)
	c.up = math.Vec4FromMgl3(up, 0)
}

// ViewMatrix returns the right-handed, column-major view matrix.
func (c *Controller) ViewMatrix() math.Mat4 {
	eye := c.position.XYZ()
	return math.Mat4FromMgl(mgl32.LookAtV(eye, eye.Add(c.forward.XYZ()), c.up.XYZ()))
}

// Position returns the eye position. W is 0.
func (c *Controller) Position() math.Vec4 {
	return c.position
}

// Forward returns the unit view direction.
func (c *Controller) Forward() math.Vec4 {
	return c.forward
}

// Right returns the unit right vector.
func (c *Controller) Right() math.Vec4 {
	return c.right
}

// Up returns the unit camera up vector.
func (c *Controller) Up() math.Vec4 {
	return c.up
}

// Yaw returns the yaw in radians.
func (c *Controller) Yaw() float32 {
	return c.yaw
}

// Pitch returns the pitch in radians.
func (c *Controller) Pitch() float32 {
	return c.pitch
}

// LastMouse returns the last non-zero mouse delta applied.
func (c *Controller) LastMouse() (x, y float32) {
	return c.lastMouseX, c.lastMouseY
}

// Sensitivity returns the mouse sensitivity.
func (c *Controller) Sensitivity() float32 {
	return c.sensitivity
}

// MoveSpeed returns the movement speed in units per second.
func (c *Controller) MoveSpeed() float32 {
	return c.moveSpeed
}

// report logs the current state. It only reads the controller.
func (c *Controller) report() {
	if c.log == nil {
		return
	}
	now := c.now()
	if !c.lastReport.IsZero() && now.Sub(c.lastReport) < c.logInterval {
		return
	}
	c.lastReport = now

	c.log.Debug("camera",
		zap.Float32("yaw_deg", mgl32.RadToDeg(c.yaw)),
		zap.Float32("pitch_deg", mgl32.RadToDeg(c.pitch)),
		zap.Float32("x", c.position.X),
		zap.Float32("y", c.position.Y),
		zap.Float32("z", c.position.Z))
}

func clampPitch(p float32) float32 {
	const limit = float32(MaxPitch)
	if p > limit {
		return limit
	}
	if p < -limit {
		return -limit
	}
	return p
}

// wrapYaw maps yaw into (-pi, pi].
func wrapYaw(y float32) float32 {
	const pi = float32(gomath.Pi)
	const twoPi = 2 * pi

	if y > pi {
		y -= twoPi
	} else if y <= -pi {
		y += twoPi
	}
	if y > pi || y <= -pi {
		// More than a full turn in one step.
		r := float32(gomath.Remainder(float64(y), 2*gomath.Pi))
		if r <= -pi {
			r += twoPi
		}
		if r > pi {
			r = pi
		}
		y = r
	}
	return y
}
