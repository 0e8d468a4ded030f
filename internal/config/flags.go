package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagModel       = flag.String("model", "", "Path to the OBJ model")
	flagScript      = flag.String("script", "", "Path to an input script to replay")
	flagSensitivity = flag.Float64("sensitivity", 0, "Mouse sensitivity")
	flagSpeed       = flag.Float64("speed", 0, "Camera movement speed in units per second")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Model.Path = *flagModel
	}
	if *flagScript != "" {
		cfg.Input.Script = *flagScript
	}
	if *flagSensitivity > 0 {
		cfg.Camera.Sensitivity = float32(*flagSensitivity)
	}
	if *flagSpeed > 0 {
		cfg.Camera.MoveSpeed = float32(*flagSpeed)
	}
}
