package ui

import (
	"fmt"
	"image/color"

	"glyphlight/hal"
	"glyphlight/scene"
)

// HUD is the status overlay in the top-left corner.
type HUD struct {
	Color    color.RGBA
	Bindings scene.Bindings
}

// Lines returns the text rows for st.
func (h HUD) Lines(st scene.State) []string {
	status := fmt.Sprintf("speed %.3f", st.Speed)
	switch {
	case st.Paused:
		status += " paused"
	case !st.AutoRotate:
		status += " manual"
	}
	return []string{
		fmt.Sprintf("angle %.1f", scene.RadToDeg(st.Angle)),
		status,
		fmt.Sprintf("%s pause %s faster %s slower",
			keyLabel(h.Bindings.Pause), keyLabel(h.Bindings.SpeedUp), keyLabel(h.Bindings.SlowDown)),
	}
}

func (h HUD) Draw(fb hal.Framebuffer, st scene.State) {
	d := FramebufferDisplay{FB: fb}
	y := 2
	for _, line := range h.Lines(st) {
		DrawText(d, 2, y, line, h.Color)
		y += LineHeight
	}
}

func keyLabel(r rune) string {
	if r == ' ' {
		return "space"
	}
	return string(r)
}
