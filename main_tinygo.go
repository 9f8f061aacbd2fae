//go:build tinygo && baremetal && picocalc

package main

import (
	"log/slog"
	"time"

	"glyphlight/app"
	"glyphlight/config"
	"glyphlight/hal"
)

func main() {
	h := hal.New(0, 0)
	s := config.Default()
	log := slog.New(hal.NewSlogHandler(h.Logger(), slog.LevelInfo))

	step, err := app.Factory(s, log)(h)
	if err != nil {
		select {}
	}

	t := time.NewTicker(time.Second / 30)
	defer t.Stop()
	for range t.C {
		if err := step(); err != nil {
			log.Error("stopped", "err", err)
			select {}
		}
	}
}
