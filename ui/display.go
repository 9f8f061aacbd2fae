// Package ui draws the overlay on top of the 3D frame: status text and the
// rotation slider.
package ui

import (
	"image"
	"image/color"

	"glyphlight/hal"
)

// FramebufferDisplay adapts an RGB565 framebuffer to drivers.Displayer so
// tinyfont can draw into it. Out-of-range pixels are dropped.
type FramebufferDisplay struct {
	FB hal.Framebuffer
}

func (d FramebufferDisplay) Size() (x, y int16) {
	if d.FB == nil {
		return 0, 0
	}
	return int16(d.FB.Width()), int16(d.FB.Height())
}

func (d FramebufferDisplay) SetPixel(x, y int16, c color.RGBA) {
	off, ok := d.offset(int(x), int(y))
	if !ok {
		return
	}
	put565(d.FB.Buffer(), off, c.R, c.G, c.B)
}

func (d FramebufferDisplay) Display() error { return nil }

// Blend composites img over the framebuffer with its top-left corner at
// (x, y). img holds alpha-premultiplied colours.
func (d FramebufferDisplay) Blend(x, y int, img image.Image) {
	if d.FB == nil || img == nil {
		return
	}
	buf := d.FB.Buffer()
	b := img.Bounds()
	for iy := b.Min.Y; iy < b.Max.Y; iy++ {
		for ix := b.Min.X; ix < b.Max.X; ix++ {
			off, ok := d.offset(x+ix-b.Min.X, y+iy-b.Min.Y)
			if !ok {
				continue
			}
			sr, sg, sb, sa := img.At(ix, iy).RGBA()
			if sa == 0 {
				continue
			}
			sr, sg, sb = min(sr, sa), min(sg, sa), min(sb, sa)
			dr, dg, db := get565(buf, off)
			inv := 0xFFFF - sa
			put565(buf, off,
				uint8((sr+uint32(dr)*0x101*inv/0xFFFF)>>8),
				uint8((sg+uint32(dg)*0x101*inv/0xFFFF)>>8),
				uint8((sb+uint32(db)*0x101*inv/0xFFFF)>>8),
			)
		}
	}
}

func (d FramebufferDisplay) offset(x, y int) (int, bool) {
	if d.FB == nil || d.FB.Format() != hal.PixelFormatRGB565 {
		return 0, false
	}
	if x < 0 || y < 0 || x >= d.FB.Width() || y >= d.FB.Height() {
		return 0, false
	}
	off := y*d.FB.StrideBytes() + x*2
	if off+1 >= len(d.FB.Buffer()) {
		return 0, false
	}
	return off, true
}

func put565(buf []byte, off int, r, g, b uint8) {
	p := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func get565(buf []byte, off int) (r, g, b uint8) {
	p := uint16(buf[off]) | uint16(buf[off+1])<<8
	r5 := uint8(p >> 11 & 0x1F)
	g6 := uint8(p >> 5 & 0x3F)
	b5 := uint8(p & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}
