//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int // framebuffer pixels
	Height int
	Scale  int // window pixels per framebuffer pixel
}

// ErrWindowClosed is returned by a step to close the window cleanly.
var ErrWindowClosed = ebiten.Termination

// RunWindow starts a resizable desktop window that displays the framebuffer
// and forwards keyboard and pointer input. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp AppFactory) error {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	h := New(cfg.Width, cfg.Height).(*hostHAL)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, scale: cfg.Scale}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	scale   int
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.ptr.poll()
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	fb.mu.Lock()
	w, h := fb.width, fb.height
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	copy(g.scratch, fb.buf)
	stride := fb.stride
	fb.mu.Unlock()

	expandRGB565(g.img.Pix, g.scratch, w, h, stride)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout maps the window to framebuffer pixels and records the resulting
// logical size as the display size.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth/g.scale, outsideHeight/g.scale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.h.disp.setDisplaySize(w, h)
	return w, h
}
