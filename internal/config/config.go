// Package config resolves runtime settings from STRUM_* environment
// variables and command-line flags. Flags win over the environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
)

// Config holds the runtime settings.
type Config struct {
	AssetDir  string
	FPS       int
	CellWidth float64 // pixel-equivalents per terminal column
	Volume    float64 // 0.0 to 1.0
	LogPath   string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AssetDir:  "assets",
		FPS:       60,
		CellWidth: 8,
		Volume:    0.8,
	}
}

const (
	envAssets    = "STRUM_ASSETS"
	envFPS       = "STRUM_FPS"
	envCellWidth = "STRUM_CELL_WIDTH"
	envVolume    = "STRUM_VOLUME"
	envLog       = "STRUM_LOG"
)

// Load builds a Config from getenv and args (without the program name).
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	volume := int(cfg.Volume * 100)

	if v := getenv(envAssets); v != "" {
		cfg.AssetDir = v
	}
	if v := getenv(envLog); v != "" {
		cfg.LogPath = v
	}
	if v := getenv(envFPS); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envFPS, err)
		}
		cfg.FPS = n
	}
	if v := getenv(envCellWidth); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envCellWidth, err)
		}
		cfg.CellWidth = f
	}
	if v := getenv(envVolume); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envVolume, err)
		}
		volume = n
	}

	fs := flag.NewFlagSet("strumspace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "directory holding the six string assets")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	fs.Float64Var(&cfg.CellWidth, "cell-width", cfg.CellWidth, "pixel width of one terminal column")
	fs.IntVar(&volume, "volume", volume, "playback volume, 0-100")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "write logs to this file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if cfg.FPS < 1 || cfg.FPS > 240 {
		return Config{}, fmt.Errorf("fps: %d out of range 1-240", cfg.FPS)
	}
	if cfg.CellWidth <= 0 {
		return Config{}, fmt.Errorf("cell-width: must be positive, got %v", cfg.CellWidth)
	}
	if volume < 0 || volume > 100 {
		return Config{}, fmt.Errorf("volume: %d out of range 0-100", volume)
	}
	cfg.Volume = float64(volume) / 100
	return cfg, nil
}
