//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"

	"glyphlight/app"
	"glyphlight/config"
	"glyphlight/hal"
	"glyphlight/internal/buildinfo"
)

func main() {
	var (
		cfgPath  string
		headless bool
		hz       int
		ticks    uint64
		snapshot string
		level    string
	)
	flag.StringVar(&cfgPath, "config", "", "TOML settings file.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error); overrides the settings file.")
	flag.Parse()

	if err := run(cfgPath, headless, hz, ticks, snapshot, level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string, headless bool, hz int, ticks uint64, snapshot, level string) error {
	s, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if level != "" {
		s.Log.Level = level
	}
	lvl, err := s.LogLevel()
	if err != nil {
		return err
	}
	log := slog.New(hal.NewSlogHandler(hal.NewWriterLogger(os.Stderr), lvl))
	log.Info("glyphlight", "build", buildinfo.Short(), "headless", headless)

	newApp := app.Factory(s, log)

	if !headless {
		err := hal.RunWindow(hal.WindowConfig{
			Title:  s.Window.Title + " " + buildinfo.Short(),
			Width:  s.Window.Width,
			Height: s.Window.Height,
			Scale:  s.Window.Scale,
		}, newApp)
		if errors.Is(err, hal.ErrWindowClosed) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	h, err := hal.RunHeadless(ctx, hal.HeadlessConfig{
		Width:  s.Window.Width,
		Height: s.Window.Height,
		Hz:     hz,
		Ticks:  ticks,
	}, newApp)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if snapshot == "" || h == nil {
		return nil
	}
	return writeSnapshot(h, snapshot)
}

func writeSnapshot(h hal.HAL, path string) error {
	img, err := hal.SnapshotRGBA(h.Display().Framebuffer())
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
