package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the camera or projection unusable.
func (c *Config) Validate() error {
	switch {
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size %dx%d must be positive", ErrInvalid, c.Render.Width, c.Render.Height)
	case c.Camera.Sensitivity < 0:
		return fmt.Errorf("%w: camera.sensitivity %v is negative", ErrInvalid, c.Camera.Sensitivity)
	case c.Camera.MoveSpeed < 0:
		return fmt.Errorf("%w: camera.move_speed %v is negative", ErrInvalid, c.Camera.MoveSpeed)
	case c.Render.TargetFPS <= 0:
		return fmt.Errorf("%w: render.target_fps must be positive", ErrInvalid)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return fmt.Errorf("%w: render.near %v and render.far %v", ErrInvalid, c.Render.Near, c.Render.Far)
	case c.Render.FOV <= 0 || c.Render.FOV >= 180:
		return fmt.Errorf("%w: render.fov %v out of range", ErrInvalid, c.Render.FOV)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MeshCam")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MeshCam")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshcam")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshcam")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
