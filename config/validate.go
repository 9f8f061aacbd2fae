package config

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"glyphlight/gl3d"
	"glyphlight/glyphs"
	"glyphlight/scene"
)

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	if name, ok := s.firstNonFinite(); ok {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalid, name)
	}

	w := s.Window
	if w.Width <= 0 || w.Height <= 0 || w.Scale < 1 {
		return fmt.Errorf("%w: window %dx%d scale %d", ErrInvalid, w.Width, w.Height, w.Scale)
	}

	c := s.Camera
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("%w: camera.fov %v out of (0,180)", ErrInvalid, c.FOV)
	}
	if c.Near <= 0 || c.Near >= c.Far {
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalid, c.Near, c.Far)
	}
	dir := vec3(c.Target).Sub(vec3(c.Position))
	if gl3d.Len(dir) == 0 {
		return fmt.Errorf("%w: camera.position equals camera.target", ErrInvalid)
	}
	if gl3d.Len(gl3d.Cross(gl3d.Normalize(dir), gl3d.Normalize(vec3(c.Up)))) < 1e-6 {
		return fmt.Errorf("%w: camera.up is parallel to the view direction", ErrInvalid)
	}

	if gl3d.Len(vec3(s.Light.Direction)) == 0 {
		return fmt.Errorf("%w: light.direction is zero", ErrInvalid)
	}
	for name, col := range map[string][4]float32{
		"light.color": s.Light.Color,
		"glyphs.d":    s.Glyphs.D,
		"glyphs.a":    s.Glyphs.A,
		"glyphs.zero": s.Glyphs.Zero,
	} {
		for _, v := range col {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: %s component %v out of [0,1]", ErrInvalid, name, v)
			}
		}
	}

	for _, v := range s.Render.Background {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: render.background component %d out of [0,255]", ErrInvalid, v)
		}
	}

	a := s.Animation
	if a.MinSpeed <= 0 || a.Step < 0 || a.Speed < a.MinSpeed {
		return fmt.Errorf("%w: animation speed %v step %v min_speed %v", ErrInvalid, a.Speed, a.Step, a.MinSpeed)
	}

	sl := s.Slider
	if sl.Min >= sl.Max || sl.Step <= 0 || sl.Value < sl.Min || sl.Value > sl.Max {
		return fmt.Errorf("%w: slider min %v max %v step %v value %v", ErrInvalid, sl.Min, sl.Max, sl.Step, sl.Value)
	}

	if _, err := s.Bindings(); err != nil {
		return err
	}
	if _, err := s.LogLevel(); err != nil {
		return err
	}
	return nil
}

// firstNonFinite names the first NaN or infinite float setting.
func (s Settings) firstNonFinite() (string, bool) {
	named := []struct {
		name string
		vals []float64
	}{
		{"camera.position", f32s(s.Camera.Position[:])},
		{"camera.target", f32s(s.Camera.Target[:])},
		{"camera.up", f32s(s.Camera.Up[:])},
		{"camera.fov", []float64{s.Camera.FOV}},
		{"camera.near", []float64{s.Camera.Near}},
		{"camera.far", []float64{s.Camera.Far}},
		{"light.direction", f32s(s.Light.Direction[:])},
		{"light.color", f32s(s.Light.Color[:])},
		{"animation.speed", []float64{s.Animation.Speed}},
		{"animation.step", []float64{s.Animation.Step}},
		{"animation.min_speed", []float64{s.Animation.MinSpeed}},
		{"slider", []float64{s.Slider.Min, s.Slider.Max, s.Slider.Step, s.Slider.Value}},
		{"glyphs.d", f32s(s.Glyphs.D[:])},
		{"glyphs.a", f32s(s.Glyphs.A[:])},
		{"glyphs.zero", f32s(s.Glyphs.Zero[:])},
	}
	for _, n := range named {
		for _, v := range n.vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return n.name, true
			}
		}
	}
	return "", false
}

func f32s(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Bindings converts the key settings.
func (s Settings) Bindings() (scene.Bindings, error) {
	var b scene.Bindings
	for _, k := range []struct {
		name string
		val  string
		dst  *rune
	}{
		{"keys.pause", s.Keys.Pause, &b.Pause},
		{"keys.speed_up", s.Keys.SpeedUp, &b.SpeedUp},
		{"keys.slow_down", s.Keys.SlowDown, &b.SlowDown},
		{"keys.reset", s.Keys.Reset, &b.Reset},
	} {
		if utf8.RuneCountInString(k.val) != 1 {
			return b, fmt.Errorf("%w: %s must be one character, got %q", ErrInvalid, k.name, k.val)
		}
		*k.dst, _ = utf8.DecodeRuneInString(k.val)
	}
	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return b, nil
}

// LogLevel parses log.level (debug, info, warn, error).
func (s Settings) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalid, s.Log.Level)
	}
	return l, nil
}

func (s Settings) SceneCamera() scene.Camera {
	c := s.Camera
	return scene.Camera{
		Eye:    vec3(c.Position),
		Target: vec3(c.Target),
		Up:     vec3(c.Up),
		FOVDeg: c.FOV,
		Near:   c.Near,
		Far:    c.Far,
	}
}

func (s Settings) SceneAnimation() scene.Animation {
	a := s.Animation
	return scene.Animation{
		Speed:       a.Speed,
		Step:        a.Step,
		MinSpeed:    a.MinSpeed,
		AutoRotate:  a.AutoRotate,
		FrameLocked: a.FrameLocked,
	}
}

func (s Settings) SceneLight() scene.Light {
	return scene.Light{Direction: vec3(s.Light.Direction), Color: vec4(s.Light.Color)}
}

// GlyphColor returns the flat color of a glyph by range name.
func (s Settings) GlyphColor(name string) (gl3d.Vec4, bool) {
	switch name {
	case glyphs.NameD:
		return vec4(s.Glyphs.D), true
	case glyphs.NameA:
		return vec4(s.Glyphs.A), true
	case glyphs.NameZero:
		return vec4(s.Glyphs.Zero), true
	}
	return gl3d.Vec4{}, false
}

func (s Settings) Background() gl3d.Color {
	b := s.Render.Background
	return gl3d.RGB(uint8(b[0]), uint8(b[1]), uint8(b[2]))
}

func vec3(v [3]float32) gl3d.Vec3 { return gl3d.V3(v[0], v[1], v[2]) }
func vec4(v [4]float32) gl3d.Vec4 { return gl3d.V4(v[0], v[1], v[2], v[3]) }
