//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Hz     int
	Ticks  uint64 // stop after this many steps; 0 runs until ctx ends
}

// RunHeadless drives the application from a ticker without opening a window.
// It returns the HAL so callers can inspect the last frame.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp AppFactory) (HAL, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return nil, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := New(cfg.Width, cfg.Height).(*hostHAL)
	return h, runTicker(ctx, h, d, cfg.Ticks, newApp)
}

func runTicker(ctx context.Context, h *hostHAL, d time.Duration, limit uint64, newApp AppFactory) error {
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
		}
	}
}
