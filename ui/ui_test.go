package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphlight/hal"
	"glyphlight/scene"
)

type memFB struct {
	w, h int
	buf  []byte
}

func newMemFB(w, h int) *memFB {
	fb := &memFB{w: w, h: h, buf: make([]byte, w*h*2)}
	fb.ClearRGB(255, 255, 255)
	return fb
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { return nil }

func (f *memFB) ClearRGB(r, g, b uint8) {
	for off := 0; off+1 < len(f.buf); off += 2 {
		put565(f.buf, off, r, g, b)
	}
}

func (f *memFB) at(x, y int) (r, g, b uint8) {
	return get565(f.buf, y*f.w*2+x*2)
}

func (f *memFB) countNonWhite(r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if cr, cg, cb := f.at(x, y); cr != 255 || cg != 255 || cb != 255 {
				n++
			}
		}
	}
	return n
}

func TestFramebufferDisplaySetPixel(t *testing.T) {
	fb := newMemFB(4, 3)
	d := FramebufferDisplay{FB: fb}

	w, h := d.Size()
	assert.Equal(t, int16(4), w)
	assert.Equal(t, int16(3), h)

	d.SetPixel(1, 2, color.RGBA{R: 255, A: 255})
	r, g, b := fb.at(1, 2)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	d.SetPixel(-1, 0, color.RGBA{A: 255})
	d.SetPixel(4, 0, color.RGBA{A: 255})
	d.SetPixel(0, 3, color.RGBA{A: 255})
	assert.Equal(t, 1, fb.countNonWhite(image.Rect(0, 0, 4, 3)))

	var empty FramebufferDisplay
	w, h = empty.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
	empty.SetPixel(0, 0, color.RGBA{})
}

func TestBlend(t *testing.T) {
	fb := newMemFB(2, 1)
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	img.SetRGBA(1, 0, color.RGBA{})

	FramebufferDisplay{FB: fb}.Blend(0, 0, img)

	r, g, b := fb.at(0, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b}, "opaque pixel replaces")
	r, g, b = fb.at(1, 0)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b}, "transparent pixel keeps")

	half := image.NewRGBA(image.Rect(0, 0, 1, 1))
	half.SetRGBA(0, 0, color.RGBA{A: 128})
	FramebufferDisplay{FB: fb}.Blend(1, 0, half)
	r, _, _ = fb.at(1, 0)
	assert.InDelta(t, 127, int(r), 8)
}

func TestDrawText(t *testing.T) {
	fb := newMemFB(40, 10)
	DrawText(FramebufferDisplay{FB: fb}, 0, 0, "A0", color.RGBA{A: 255})

	assert.Positive(t, fb.countNonWhite(image.Rect(0, 0, 40, LineHeight)))
	assert.Zero(t, fb.countNonWhite(image.Rect(0, LineHeight, 40, 10)))
	assert.Positive(t, TextWidth("A0"))
	assert.Greater(t, TextWidth("A0A0"), TextWidth("A0"))
}

func TestHUDLines(t *testing.T) {
	hud := HUD{Bindings: scene.DefaultBindings()}

	lines := hud.Lines(scene.State{Angle: scene.DegToRad(90), Speed: 0.01, AutoRotate: true})
	assert.Equal(t, []string{"angle 90.0", "speed 0.010", "space pause + faster - slower"}, lines)

	lines = hud.Lines(scene.State{Speed: 0.015, AutoRotate: true, Paused: true})
	assert.Equal(t, "speed 0.015 paused", lines[1])

	fb := newMemFB(120, 30)
	hud.Draw(fb, scene.State{})
	assert.Positive(t, fb.countNonWhite(image.Rect(0, 0, 120, 3*LineHeight+2)))
}

func newTestSlider(t *testing.T, got *[]float64) *Slider {
	t.Helper()
	s, err := NewSlider(SliderConfig{
		Min:  -360,
		Max:  360,
		Step: 1,
		OnSlide: func(v float64) {
			*got = append(*got, v)
		},
	})
	require.NoError(t, err)
	s.Layout(200, 100)
	return s
}

func TestNewSliderRejectsEmptyRange(t *testing.T) {
	_, err := NewSlider(SliderConfig{Min: 1, Max: 1})
	require.Error(t, err)

	s, err := NewSlider(SliderConfig{Min: 0, Max: 10, Value: 99})
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Value(), "initial value clamps")
}

func TestSliderLayout(t *testing.T) {
	var got []float64
	s := newTestSlider(t, &got)
	assert.Equal(t, image.Rect(4, 84, 196, 96), s.Bounds())

	s.Layout(8, 8)
	assert.True(t, s.Bounds().Empty())
}

func TestSliderPointerDrag(t *testing.T) {
	var got []float64
	s := newTestSlider(t, &got)
	b := s.Bounds()
	y := b.Min.Y + b.Dy()/2

	assert.False(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: 100, Y: 10}), "press outside")
	assert.False(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: 100, Y: 10}), "move without press")

	require.True(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: b.Max.X - knobRadius, Y: y}))
	assert.Equal(t, 360.0, s.Value())

	require.True(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: -50, Y: 0}))
	assert.Equal(t, -360.0, s.Value(), "drag clamps to min")

	require.True(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: 1000, Y: 0}))
	assert.Equal(t, 360.0, s.Value(), "drag clamps to max")

	require.True(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp}))
	assert.False(t, s.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: 100, Y: y}))
	assert.Equal(t, []float64{360, -360, 360}, got)
}

func TestSliderValueIsQuantized(t *testing.T) {
	var got []float64
	s := newTestSlider(t, &got)
	b := s.Bounds()
	s.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: b.Min.X + b.Dx()/3, Y: b.Min.Y + 1})
	v := s.Value()
	assert.Equal(t, float64(int(v)), v)
}

func TestSliderArrowNudge(t *testing.T) {
	var got []float64
	s, err := NewSlider(SliderConfig{Value: 359, Min: -360, Max: 360, Step: 1, OnSlide: func(v float64) { got = append(got, v) }})
	require.NoError(t, err)

	assert.True(t, s.HandleKey(hal.KeyEvent{Code: hal.KeyRight, Press: true}))
	assert.True(t, s.HandleKey(hal.KeyEvent{Code: hal.KeyRight, Press: true}))
	assert.Equal(t, 360.0, s.Value())
	assert.True(t, s.HandleKey(hal.KeyEvent{Code: hal.KeyLeft, Press: true}))
	assert.False(t, s.HandleKey(hal.KeyEvent{Code: hal.KeyLeft}), "releases ignored")
	assert.False(t, s.HandleKey(hal.KeyEvent{Rune: '+', Press: true}))

	assert.Equal(t, []float64{360, 359}, got, "no callback when clamped value is unchanged")
}

func TestSliderDraw(t *testing.T) {
	var got []float64
	s := newTestSlider(t, &got)
	fb := newMemFB(200, 100)

	require.NoError(t, s.Draw(fb))
	assert.Positive(t, fb.countNonWhite(s.Bounds()))
	assert.Zero(t, fb.countNonWhite(image.Rect(0, 0, 200, s.Bounds().Min.Y)))

	var empty Slider
	require.NoError(t, empty.Draw(fb))
}
