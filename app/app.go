// Package app wires the glyph scene to a HAL: it builds the software GL
// context, uploads the glyph geometry and runs one frame per step.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"glyphlight/config"
	"glyphlight/gl3d"
	"glyphlight/glyphs"
	"glyphlight/hal"
	"glyphlight/scene"
	"glyphlight/ui"
)

// ErrUnsupported means the HAL has no framebuffer the renderer can draw into.
var ErrUnsupported = errors.New("3D rendering not supported")

// App is one running glyph scene.
type App struct {
	h   hal.HAL
	log *slog.Logger

	gl       *gl3d.Context
	target   gl3d.RGB565Target
	renderer *scene.Renderer
	loop     *scene.Loop
	bindings scene.Bindings

	slider  *ui.Slider
	hud     ui.HUD
	showHUD bool

	vertices  int
	lastTick  uint64
	haveTick  bool
	frame     scene.Frame
	drawFault bool
}

// New builds the scene on h. Setup failures are logged once and returned.
func New(h hal.HAL, s config.Settings, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	a, err := build(h, s, log)
	if err != nil {
		log.Error("setup failed", "err", err)
		return nil, err
	}
	log.Info("scene ready", "vertices", a.vertices, "width", a.target.W, "height", a.target.H)
	return a, nil
}

func build(h hal.HAL, s config.Settings, log *slog.Logger) (*App, error) {
	if h == nil || h.Display() == nil {
		return nil, ErrUnsupported
	}
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, ErrUnsupported
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	bindings, err := s.Bindings()
	if err != nil {
		return nil, err
	}

	a := &App{
		h:        h,
		log:      log,
		bindings: bindings,
		loop:     scene.NewLoop(s.SceneAnimation(), log),
		showHUD:  s.Render.HUD,
		hud:      ui.HUD{Color: color.RGBA{R: 40, G: 40, B: 40, A: 255}, Bindings: bindings},
	}
	a.bindTarget(fb)

	a.gl, err = gl3d.NewContext(&a.target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	if s.Render.Wireframe {
		a.gl.SetPolygonMode(gl3d.PolygonLine)
	}

	prog, err := gl3d.NewDirectionalLightProgram()
	if err != nil {
		return nil, fmt.Errorf("link program: %w", err)
	}
	set := glyphs.Build()
	a.vertices = set.VertexCount()
	items := make([]scene.Item, 0, len(set.Ranges))
	for _, r := range set.Ranges {
		c, ok := s.GlyphColor(r.Name)
		if !ok {
			return nil, fmt.Errorf("no colour for glyph %q", r.Name)
		}
		items = append(items, scene.Item{Range: r, Color: c})
	}
	a.renderer, err = scene.NewRenderer(a.gl, prog, set, scene.RenderConfig{
		Camera:     s.SceneCamera(),
		Light:      s.SceneLight(),
		Background: s.Background(),
		Items:      items,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	a.slider, err = ui.NewSlider(ui.SliderConfig{
		Value: s.Slider.Value,
		Min:   s.Slider.Min,
		Max:   s.Slider.Max,
		Step:  s.Slider.Step,
		OnSlide: func(deg float64) {
			a.loop.QueueRotation(scene.DegToRad(deg))
		},
	})
	if err != nil {
		return nil, err
	}
	if v := a.slider.Value(); v != 0 {
		a.loop.QueueRotation(scene.DegToRad(v))
	}
	return a, nil
}

// State is the scene state after the last step.
func (a *App) State() scene.State { return a.loop.State() }

// Frame holds the matrices of the last drawn frame.
func (a *App) Frame() scene.Frame { return a.frame }

// Step runs one frame: measure elapsed time, take input, advance, draw and
// present.
func (a *App) Step() error {
	dt, measured := a.elapsed()
	a.pollInput()
	var st scene.State
	if measured {
		st = a.loop.Tick(dt)
	} else {
		st = a.loop.TickFrame()
	}

	disp := a.h.Display()
	if _, err := hal.ResizeToDisplaySize(disp); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return ErrUnsupported
	}
	a.bindTarget(fb)
	if err := a.gl.SetTarget(&a.target); err != nil {
		return err
	}

	frame, err := a.renderer.Draw(a.gl, a.target.W, a.target.H, st.Angle)
	a.frame = frame
	a.fault(err)

	a.slider.Layout(a.target.W, a.target.H)
	if a.showHUD {
		a.hud.Draw(fb, st)
	}
	a.fault(a.slider.Draw(fb))

	if err := fb.Present(); err != nil && !errors.Is(err, hal.ErrNotImplemented) {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// fault logs the first draw error; later ones are dropped.
func (a *App) fault(err error) {
	if err == nil || a.drawFault {
		return
	}
	a.drawFault = true
	a.log.Error("draw failed", "err", err)
}

func (a *App) bindTarget(fb hal.Framebuffer) {
	a.target = gl3d.RGB565Target{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
}

// elapsed drains the millisecond tick stream. It reports false until there
// is a previous tick to measure from, including when the HAL has no clock.
// Steps closer together than a millisecond measure zero; the ticks they did
// not see are counted by the next step.
func (a *App) elapsed() (time.Duration, bool) {
	t := a.h.Time()
	if t == nil {
		return 0, false
	}
	ch := t.Ticks()
	latest, got := a.lastTick, false
drain:
	for {
		select {
		case seq := <-ch:
			latest, got = seq, true
		default:
			break drain
		}
	}
	if !a.haveTick {
		a.lastTick, a.haveTick = latest, got
		return 0, false
	}
	var dt time.Duration
	if latest > a.lastTick {
		dt = time.Duration(latest-a.lastTick) * time.Millisecond
	}
	a.lastTick = latest
	return dt, true
}

func (a *App) pollInput() {
	in := a.h.Input()
	if in == nil {
		return
	}
	if kbd := in.Keyboard(); kbd != nil {
		ch := kbd.Events()
	keys:
		for {
			select {
			case ev := <-ch:
				a.handleKey(ev)
			default:
				break keys
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		ch := ptr.Events()
	pointer:
		for {
			select {
			case ev := <-ch:
				a.slider.HandlePointer(ev)
			default:
				break pointer
			}
		}
	}
}

func (a *App) handleKey(ev hal.KeyEvent) {
	if a.slider.HandleKey(ev) || !ev.Press || ev.Rune == 0 {
		return
	}
	a.loop.Queue(a.bindings.Lookup(ev.Rune))
}
