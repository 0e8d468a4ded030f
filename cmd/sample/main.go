// Package main runs the headless camera sample over an input script.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshcam/internal/config"
	"github.com/Faultbox/meshcam/internal/engine/input"
	"github.com/Faultbox/meshcam/internal/logger"
	"github.com/Faultbox/meshcam/internal/sample"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: true, JSON: cfg.Logging.JSON}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== meshcam sample ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := sample.New(cfg)
	if err != nil {
		logger.Error("failed to create sample", zap.Error(err))
		os.Exit(1)
	}

	script := &input.Script{}
	if cfg.Input.Script != "" {
		script, err = input.LoadScript(cfg.Input.Script)
		if err != nil {
			logger.Error("failed to load input script", zap.Error(err))
			os.Exit(1)
		}
	}

	last := s.Run(script)

	cam := s.Camera()
	pos := cam.Position()
	fwd := cam.Forward()
	fmt.Printf("Frames:   %d\n", last.Frame)
	fmt.Printf("Position: %.4f %.4f %.4f\n", pos.X, pos.Y, pos.Z)
	fmt.Printf("Forward:  %.4f %.4f %.4f\n", fwd.X, fwd.Y, fwd.Z)
	fmt.Printf("Yaw:      %.2f deg\n", mgl32.RadToDeg(cam.Yaw()))
	fmt.Printf("Pitch:    %.2f deg\n", mgl32.RadToDeg(cam.Pitch()))
	fmt.Println("View:")
	for row := 0; row < 4; row++ {
		fmt.Printf("  %9.4f %9.4f %9.4f %9.4f\n",
			last.View.At(row, 0), last.View.At(row, 1), last.View.At(row, 2), last.View.At(row, 3))
	}
}
