package app

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"glyphlight/config"
	"glyphlight/hal"
	"glyphlight/ui"
)

// ErrPanic wraps a panic recovered from a frame.
var ErrPanic = errors.New("panic")

// Factory adapts New to the host runners.
func Factory(s config.Settings, log *slog.Logger) hal.AppFactory {
	if log == nil {
		log = slog.Default()
	}
	return func(h hal.HAL) (func() error, error) {
		a, err := New(h, s, log)
		if err != nil {
			if !errors.Is(err, ErrUnsupported) {
				ShowFatal(h, "setup failed:", err.Error())
			}
			return nil, err
		}
		return Guard(h, log, a.Step), nil
	}
}

// Guard runs step and turns a panic into ErrPanic after logging the stack
// and showing the message on the framebuffer.
func Guard(h hal.HAL, log *slog.Logger, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
			log.Error("frame panicked", "panic", v)
			if l := h.Logger(); l != nil {
				for _, line := range stack {
					if line != "" {
						l.WriteLineString(line)
					}
				}
			}
			ShowFatal(h, append([]string{"panic:", fmt.Sprint(v), "stack:"}, stack...)...)
			err = fmt.Errorf("%w: %v", ErrPanic, v)
		}()
		return step()
	}
}

// ShowFatal clears the framebuffer to white and writes lines in black,
// wrapping long lines and dropping what does not fit.
func ShowFatal(h hal.HAL, lines ...string) {
	if h == nil || h.Display() == nil {
		return
	}
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(255, 255, 255)

	d := ui.FramebufferDisplay{FB: fb}
	fg := color.RGBA{A: 255}
	cols := max(fb.Width()/max(ui.TextWidth("0"), 1), 1)

	y := 0
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", "  ")
		for line != "" {
			if y+ui.LineHeight > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			ui.DrawText(d, 0, y, chunk, fg)
			y += ui.LineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
