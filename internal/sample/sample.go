// Package sample runs the camera and mesh pipeline headlessly: a fixed
// timestep loop that turns input frames into the matrices and lighting a
// renderer would upload.
package sample

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshcam/internal/assets"
	"github.com/Faultbox/meshcam/internal/config"
	"github.com/Faultbox/meshcam/internal/engine/camera"
	"github.com/Faultbox/meshcam/internal/engine/input"
	"github.com/Faultbox/meshcam/internal/engine/lighting"
	"github.com/Faultbox/meshcam/internal/engine/model"
	"github.com/Faultbox/meshcam/internal/engine/picking"
	"github.com/Faultbox/meshcam/internal/engine/texture"
	"github.com/Faultbox/meshcam/internal/logger"
	"github.com/Faultbox/meshcam/pkg/math"
)

// Snapshot is the per-frame output handed to a renderer.
type Snapshot struct {
	Frame      int
	View       math.Mat4
	Projection math.Mat4
	World      math.Mat4
	Lights     lighting.Frame

	// Mesh bounds under the screen center, if any.
	Targeted       bool
	TargetDistance float32
}

// Sample owns one camera and one mesh.
type Sample struct {
	cfg     *config.Config
	log     *zap.Logger
	camera  *camera.Controller
	input   *input.Input
	assets  *assets.Manager
	mesh    *model.Mesh
	buffers *model.Buffers
	texture *texture.Image
	mips    []*texture.Image

	lights     lighting.Frame
	projection math.Mat4
	world      math.Mat4

	frame   int
	elapsed float32
}

// New loads the configured mesh and its texture and prepares the camera.
func New(cfg *config.Config) (*Sample, error) {
	log := logger.Named("sample")
	log.Info("initializing sample",
		zap.String("model", cfg.Model.Path),
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height))

	s := &Sample{
		cfg:    cfg,
		log:    log,
		camera: camera.FromSettings(cfg.Camera, camera.WithLogger(logger.Named("camera"), cfg.Logging.CameraInterval)),
		input:  input.New(cfg.Input.Bindings),
		assets: assets.NewManager(cfg.Assets.SearchPaths...),
		world:  math.Identity(),
	}

	if err := s.loadMesh(); err != nil {
		return nil, err
	}

	s.lights = lighting.DefaultFrame()
	s.lights.Dir.Direction = lighting.SunDirection(cfg.Render.SunAzimuth, cfg.Render.SunElevation)
	if mat, ok := s.mesh.Material(); ok {
		s.lights.Material = lighting.MaterialFromMTL(mat)
	}
	s.lights.FollowCamera(s.camera.Position(), s.camera.Forward())

	r := cfg.Render
	s.projection = math.Mat4FromMgl(mgl32.Perspective(mgl32.DegToRad(r.FOV), r.Aspect(), r.Near, r.Far))

	log.Info("sample initialized",
		zap.Int("vertices", len(s.buffers.Vertices)),
		zap.Int("indices", len(s.buffers.Indices)),
		zap.Bool("textured", s.texture != nil))
	return s, nil
}

func (s *Sample) loadMesh() error {
	opts := []model.LoadOption{model.WithLogger(logger.Named("model"))}
	if s.cfg.Model.SkipMaterials {
		opts = append(opts, model.WithoutMaterials())
	}

	mesh, err := model.Load(s.cfg.Model.Path, opts...)
	if err != nil {
		return fmt.Errorf("loading mesh: %w", err)
	}
	s.mesh = mesh
	s.buffers = model.BuildBuffers(model.BuildOptions{
		GenerateNormals: s.cfg.Model.GenerateNormals,
		FlipV:           s.cfg.Model.FlipV,
	}, mesh)

	name, ok := mesh.TexturePath()
	if !ok {
		return nil
	}

	// The mesh directory wins over configured paths.
	s.assets.AddSearchPath(filepath.Dir(s.cfg.Model.Path))
	data, err := s.assets.Load(name)
	if err != nil {
		return fmt.Errorf("loading texture %s: %w", name, err)
	}
	img, err := texture.Decode(data, filepath.Ext(name))
	if err != nil {
		return fmt.Errorf("decoding texture %s: %w", name, err)
	}
	s.texture = img
	s.mips = texture.MipChain(img)
	return nil
}

// Step advances the camera by dt seconds and returns the frame state.
func (s *Sample) Step(dt float32, in input.Frame) Snapshot {
	s.camera.Update(dt, in.Mouse, in.Keys)
	s.elapsed += dt
	s.frame++

	s.lights.FollowCamera(s.camera.Position(), s.camera.Forward())
	s.lights.OrbitPointLight(s.elapsed*s.cfg.Render.LightOrbitSpeed, s.cfg.Render.LightOrbitRadius)

	return s.snapshot()
}

func (s *Sample) snapshot() Snapshot {
	snap := Snapshot{
		Frame:      s.frame,
		View:       s.camera.ViewMatrix(),
		Projection: s.projection,
		World:      s.world,
		Lights:     s.lights,
	}

	r := s.cfg.Render
	ray, err := picking.ScreenToRay(float32(r.Width)/2, float32(r.Height)/2, r.Width, r.Height, snap.View, snap.Projection)
	if err != nil {
		s.log.Debug("center ray unavailable", zap.Error(err))
		return snap
	}
	snap.TargetDistance, snap.Targeted = ray.IntersectBounds(s.buffers.Bounds)
	return snap
}

// Run replays a script at the configured frame rate and returns the last
// snapshot. A quit event ends the replay after its frame.
func (s *Sample) Run(script *input.Script) Snapshot {
	dt := 1 / float32(s.cfg.Render.TargetFPS)
	last := s.snapshot()

	s.log.Info("replaying input", zap.Int("frames", script.Len()), zap.Float32("dt", dt))
	script.Play(s.input, func(f input.Frame) bool {
		last = s.Step(dt, f)
		return !f.Quit
	})

	pos := s.camera.Position()
	s.log.Info("replay finished",
		zap.Int("frames", s.frame),
		zap.Float32("x", pos.X),
		zap.Float32("y", pos.Y),
		zap.Float32("z", pos.Z))
	return last
}

// Camera returns the sample camera.
func (s *Sample) Camera() *camera.Controller {
	return s.camera
}

// Input returns the input aggregator fed by Run.
func (s *Sample) Input() *input.Input {
	return s.input
}

// Mesh returns the loaded mesh.
func (s *Sample) Mesh() *model.Mesh {
	return s.mesh
}

// Buffers returns the packed vertex and index data.
func (s *Sample) Buffers() *model.Buffers {
	return s.buffers
}

// Texture returns the decoded texture and its mip levels, or nil when the
// mesh has none.
func (s *Sample) Texture() (*texture.Image, []*texture.Image) {
	return s.texture, s.mips
}

// Assets returns the asset manager used for textures.
func (s *Sample) Assets() *assets.Manager {
	return s.assets
}
