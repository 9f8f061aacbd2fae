//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch     chan PointerEvent
	lastX  int
	lastY  int
	active bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(kind PointerKind, x, y int) {
	select {
	case p.ch <- PointerEvent{Kind: kind, X: x, Y: y}:
	default:
	}
}

func (p *hostPointer) poll() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		p.active = true
		p.emit(PointerDown, x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if p.active {
			p.emit(PointerUp, x, y)
		}
		p.active = false
	case p.active && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if x != p.lastX || y != p.lastY {
			p.emit(PointerMove, x, y)
		}
	}
	p.lastX, p.lastY = x, y
}
