package ui

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font is the overlay font. TomThumb is 3x5 with a 6px advance.
var Font = &tinyfont.TomThumb

const (
	// LineHeight is the vertical distance between text lines.
	LineHeight = 7

	baseline = 5
)

// DrawText writes s with its top-left corner at (x, y).
func DrawText(d drivers.Displayer, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, int16(x), int16(y+baseline), s, c)
}

// TextWidth is the horizontal advance of s in pixels.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(Font, s)
	return int(w)
}
