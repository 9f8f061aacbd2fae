// Package config loads the TOML settings of glyphlight.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalid = errors.New("config: invalid settings")

type Settings struct {
	Window    WindowSettings    `toml:"window"`
	Camera    CameraSettings    `toml:"camera"`
	Light     LightSettings     `toml:"light"`
	Animation AnimationSettings `toml:"animation"`
	Slider    SliderSettings    `toml:"slider"`
	Keys      KeySettings       `toml:"keys"`
	Render    RenderSettings    `toml:"render"`
	Glyphs    GlyphSettings     `toml:"glyphs"`
	Log       LogSettings       `toml:"log"`
}

type WindowSettings struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Scale  int    `toml:"scale"`
}

type CameraSettings struct {
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
	Up       [3]float32 `toml:"up"`
	FOV      float64    `toml:"fov"` // degrees
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
}

type LightSettings struct {
	Direction [3]float32 `toml:"direction"`
	Color     [4]float32 `toml:"color"`
}

type AnimationSettings struct {
	Speed       float64 `toml:"speed"`
	Step        float64 `toml:"step"`
	MinSpeed    float64 `toml:"min_speed"`
	AutoRotate  bool    `toml:"auto_rotate"`
	FrameLocked bool    `toml:"frame_locked"`
}

type SliderSettings struct {
	Min   float64 `toml:"min"` // degrees
	Max   float64 `toml:"max"`
	Step  float64 `toml:"step"`
	Value float64 `toml:"value"`
}

// KeySettings holds one single-character string per binding.
type KeySettings struct {
	Pause    string `toml:"pause"`
	SpeedUp  string `toml:"speed_up"`
	SlowDown string `toml:"slow_down"`
	Reset    string `toml:"reset"`
}

type RenderSettings struct {
	Background [3]int `toml:"background"` // 0..255
	Wireframe  bool   `toml:"wireframe"`
	HUD        bool   `toml:"hud"`
}

type GlyphSettings struct {
	D    [4]float32 `toml:"d"`
	A    [4]float32 `toml:"a"`
	Zero [4]float32 `toml:"zero"`
}

type LogSettings struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: WindowSettings{Title: "glyphlight", Width: 320, Height: 240, Scale: 2},
		Camera: CameraSettings{
			Position: [3]float32{80, -500, 550},
			Target:   [3]float32{0, 35, 0},
			Up:       [3]float32{0, 1, 0},
			FOV:      60,
			Near:     1,
			Far:      2000,
		},
		Light: LightSettings{
			Direction: [3]float32{0.5, 0.7, 1},
			Color:     [4]float32{0.2, 1, 0.2, 1},
		},
		Animation: AnimationSettings{Speed: 0.01, Step: 0.005, MinSpeed: 0.001, AutoRotate: true},
		Slider:    SliderSettings{Min: -360, Max: 360, Step: 1},
		Keys:      KeySettings{Pause: " ", SpeedUp: "+", SlowDown: "-", Reset: "r"},
		Render:    RenderSettings{Background: [3]int{255, 255, 255}, HUD: true},
		Glyphs: GlyphSettings{
			D:    [4]float32{1, 0.2, 0.2, 1},
			A:    [4]float32{0.2, 1, 0.2, 1},
			Zero: [4]float32{0.2, 0.2, 1, 1},
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load reads settings from path on top of Default. An empty path or a missing
// file yields the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("no settings file, using defaults", "path", path)
			return Default(), nil
		}
		return Settings{}, err
	}
	s, err := Decode(bytes.NewReader(b))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads TOML from r on top of Default and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Settings{}, fmt.Errorf("%w: %s", ErrInvalid, strings.TrimSpace(strict.String()))
		}
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Encode writes s as TOML.
func Encode(w io.Writer, s Settings) error {
	return toml.NewEncoder(w).Encode(s)
}
