// Package config handles configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/meshcam/internal/assets"
	"github.com/Faultbox/meshcam/internal/engine/camera"
	"github.com/Faultbox/meshcam/internal/engine/input"
)

// Config holds all settings of the sample and tools.
type Config struct {
	Camera  camera.Settings `yaml:"camera"`
	Model   ModelConfig     `yaml:"model"`
	Assets  AssetsConfig    `yaml:"assets"`
	Render  RenderConfig    `yaml:"render"`
	Input   InputConfig     `yaml:"input"`
	Logging LoggingConfig   `yaml:"logging"`
}

// ModelConfig selects the mesh and how it is prepared.
type ModelConfig struct {
	Path            string `yaml:"path"`
	SkipMaterials   bool   `yaml:"skip_materials"`
	GenerateNormals bool   `yaml:"generate_normals"`
	FlipV           bool   `yaml:"flip_v"`
}

// AssetsConfig holds texture search paths. Later entries take priority.
type AssetsConfig struct {
	SearchPaths []string `yaml:"search_paths"`
}

// RenderConfig holds projection, timing and lighting settings.
type RenderConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	FOV       float32 `yaml:"fov"` // Vertical, degrees
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	TargetFPS int     `yaml:"target_fps"`

	LightOrbitRadius float32 `yaml:"light_orbit_radius"`
	LightOrbitSpeed  float32 `yaml:"light_orbit_speed"` // Radians per second
	SunAzimuth       float32 `yaml:"sun_azimuth"`
	SunElevation     float32 `yaml:"sun_elevation"`
}

// InputConfig holds key bindings and the optional replay script.
type InputConfig struct {
	Script   string         `yaml:"script"`
	Bindings input.Bindings `yaml:"bindings"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level          string        `yaml:"level"`
	LogFile        string        `yaml:"log_file"`
	JSON           bool          `yaml:"json"`
	CameraInterval time.Duration `yaml:"camera_interval"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: camera.DefaultSettings(),
		Model: ModelConfig{
			Path: "assets/cube.obj",
		},
		Assets: AssetsConfig{
			SearchPaths: []string{assets.DefaultSearchPath},
		},
		Render: RenderConfig{
			Width:            1280,
			Height:           720,
			FOV:              45,
			Near:             0.01,
			Far:              100,
			TargetFPS:        60,
			LightOrbitRadius: 5,
			LightOrbitSpeed:  1,
			SunAzimuth:       45,
			SunElevation:     -35.26439,
		},
		Input: InputConfig{
			Bindings: input.DefaultBindings(),
		},
		Logging: LoggingConfig{
			Level:          "info",
			LogFile:        "",
			CameraInterval: time.Second,
		},
	}
}

// Aspect returns the viewport aspect ratio.
func (r RenderConfig) Aspect() float32 {
	if r.Height == 0 {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}
