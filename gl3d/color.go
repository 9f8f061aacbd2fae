package gl3d

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// ColorFromVec4 converts a [0,1] float color to 8-bit channels, clamping
// out-of-range components.
func ColorFromVec4(v Vec4) Color {
	ch := func(s Scalar) uint8 {
		return uint8(Clamp01(s)*255 + 0.5)
	}
	return Color{R: ch(v.X), G: ch(v.Y), B: ch(v.Z), A: ch(v.W)}
}

// Vec4 returns c as a [0,1] float color.
func (c Color) Vec4() Vec4 {
	return Vec4{
		X: Scalar(c.R) / 255,
		Y: Scalar(c.G) / 255,
		Z: Scalar(c.B) / 255,
		W: Scalar(c.A) / 255,
	}
}
