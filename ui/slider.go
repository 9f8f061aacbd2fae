package ui

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"glyphlight/hal"
)

// SliderConfig configures a Slider. Step is both the pointer quantum and the
// arrow-key nudge; zero means 1.
type SliderConfig struct {
	Value   float64
	Min     float64
	Max     float64
	Step    float64
	OnSlide func(value float64)
}

const (
	sliderHeight = 12
	sliderMargin = 4
	knobRadius   = 5
)

// Slider is a horizontal value slider laid out along the bottom edge of the
// framebuffer. It calls OnSlide whenever the user changes its value.
type Slider struct {
	cfg   SliderConfig
	value float64

	bounds   image.Rectangle
	dragging bool

	dc       *gg.Context
	rendered float64
	dirty    bool
}

func NewSlider(cfg SliderConfig) (*Slider, error) {
	if math.IsNaN(cfg.Min) || math.IsNaN(cfg.Max) || cfg.Min >= cfg.Max {
		return nil, fmt.Errorf("ui: slider range [%v, %v] is empty", cfg.Min, cfg.Max)
	}
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	s := &Slider{cfg: cfg, dirty: true}
	s.value = s.clamp(cfg.Value)
	return s, nil
}

func (s *Slider) Value() float64 { return s.value }

// Bounds is the slider area in framebuffer pixels, empty before Layout.
func (s *Slider) Bounds() image.Rectangle { return s.bounds }

// Layout places the slider for a w×h framebuffer.
func (s *Slider) Layout(w, h int) {
	r := image.Rect(sliderMargin, h-sliderMargin-sliderHeight, w-sliderMargin, h-sliderMargin)
	if r.Dx() <= 2*knobRadius || r.Min.Y < 0 {
		r = image.Rectangle{}
	}
	if r != s.bounds {
		s.bounds = r
		s.dirty = true
	}
}

// HandlePointer reports whether the event was consumed.
func (s *Slider) HandlePointer(ev hal.PointerEvent) bool {
	switch ev.Kind {
	case hal.PointerDown:
		if !image.Pt(ev.X, ev.Y).In(s.bounds) {
			return false
		}
		s.dragging = true
		s.set(s.valueAt(ev.X))
		return true
	case hal.PointerMove:
		if !s.dragging {
			return false
		}
		s.set(s.valueAt(ev.X))
		return true
	case hal.PointerUp:
		was := s.dragging
		s.dragging = false
		return was
	}
	return false
}

// HandleKey nudges the value with the left and right arrows.
func (s *Slider) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		return false
	}
	switch ev.Code {
	case hal.KeyLeft:
		s.set(s.value - s.cfg.Step)
	case hal.KeyRight:
		s.set(s.value + s.cfg.Step)
	default:
		return false
	}
	return true
}

func (s *Slider) set(v float64) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.cfg.OnSlide != nil {
		s.cfg.OnSlide(v)
	}
}

func (s *Slider) clamp(v float64) float64 {
	return min(max(v, s.cfg.Min), s.cfg.Max)
}

// travel is the x range the knob centre moves across.
func (s *Slider) travel() (x0, x1 float64) {
	return float64(s.bounds.Min.X + knobRadius), float64(s.bounds.Max.X - knobRadius)
}

func (s *Slider) valueAt(x int) float64 {
	x0, x1 := s.travel()
	t := (float64(x) - x0) / (x1 - x0)
	t = min(max(t, 0), 1)
	v := s.cfg.Min + t*(s.cfg.Max-s.cfg.Min)
	return s.cfg.Min + math.Round((v-s.cfg.Min)/s.cfg.Step)*s.cfg.Step
}

// Draw composites the slider onto fb. The widget image is only redrawn when
// the value or layout changed.
func (s *Slider) Draw(fb hal.Framebuffer) error {
	if s.bounds.Empty() {
		return nil
	}
	if err := s.render(); err != nil {
		return err
	}
	FramebufferDisplay{FB: fb}.Blend(s.bounds.Min.X, s.bounds.Min.Y, s.dc.Image())
	return nil
}

func (s *Slider) render() error {
	w, h := s.bounds.Dx(), s.bounds.Dy()
	switch {
	case s.dc == nil:
		s.dc = gg.NewContext(w, h)
		s.dirty = true
	case s.dc.Width() != w || s.dc.Height() != h:
		if err := s.dc.Resize(w, h); err != nil {
			return fmt.Errorf("ui: resize slider: %w", err)
		}
		s.dirty = true
	}
	if !s.dirty && s.rendered == s.value {
		return nil
	}

	dc := s.dc
	dc.Clear()
	cy := float64(h) / 2

	dc.SetRGBA(0.55, 0.55, 0.55, 0.9)
	dc.DrawRoundedRectangle(1, cy-2, float64(w-2), 4, 2)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("ui: slider track: %w", err)
	}

	x0, x1 := s.travel()
	t := (s.value - s.cfg.Min) / (s.cfg.Max - s.cfg.Min)
	kx := x0 + t*(x1-x0) - float64(s.bounds.Min.X)
	dc.SetRGBA(0.15, 0.35, 0.85, 1)
	dc.DrawCircle(kx, cy, knobRadius)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("ui: slider knob: %w", err)
	}

	s.rendered = s.value
	s.dirty = false
	return nil
}
