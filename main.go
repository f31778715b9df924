package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/strumspace/internal/audio"
	"github.com/olivier-w/strumspace/internal/config"
	"github.com/olivier-w/strumspace/internal/instrument"
	"github.com/olivier-w/strumspace/internal/media"
	"github.com/olivier-w/strumspace/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Println("Usage: strumspace [-assets dir] [-fps n] [-cell-width px] [-volume 0-100] [-log file]")
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the log file when one is configured. The terminal
// belongs to the TUI, so logs are discarded otherwise.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "strumspace")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), func() { f.Close() }, nil
}

func run(cfg config.Config, logger *slog.Logger) error {
	out, err := audio.NewOutput(cfg.Volume)
	if err != nil {
		logger.Warn("no audio device, strings will be silent", "err", err)
		out = audio.Silent{}
	}

	specs := instrument.DefaultStrings(cfg.AssetDir)
	checkAssets(cfg.AssetDir, specs, logger)

	unlock := new(audio.Unlock)
	rig := instrument.New(specs, func(spec instrument.StringSpec) instrument.Cue {
		return audio.NewCue(spec.Asset, out, unlock,
			audio.WithLogger(logger.With("string", spec.ID)))
	}, instrument.WithLogger(logger), instrument.WithUnlock(unlock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rig.Mount(ctx)
	defer rig.Close()

	model := ui.New(rig, ui.Options{
		FPS:       cfg.FPS,
		CellWidth: cfg.CellWidth,
		Volume:    cfg.Volume,
	}, logger)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// checkAssets logs strings whose asset is missing from the asset directory.
// Those strings still vibrate; their cues report the decode failure.
func checkAssets(dir string, specs []instrument.StringSpec, logger *slog.Logger) {
	found, err := media.ScanAssets(dir)
	if err != nil {
		logger.Warn("scanning assets", "dir", dir, "err", err)
		return
	}
	have := make(map[string]bool, len(found))
	for _, f := range found {
		have[filepath.Base(f)] = true
	}
	for _, s := range specs {
		if !have[filepath.Base(s.Asset)] {
			logger.Warn("missing asset", "string", s.ID, "path", s.Asset, "supported", media.SupportedExtsList())
		}
	}
}
