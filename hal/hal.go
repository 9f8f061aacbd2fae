package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoFramebuffer  = errors.New("no framebuffer")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// ResizableFramebuffer is a framebuffer whose backing store can follow the
// displayed size.
type ResizableFramebuffer interface {
	Framebuffer
	Resize(w, h int) error
}

// Display provides access to the framebuffer (if available) and to the size it
// is displayed at, in framebuffer pixels.
type Display interface {
	Framebuffer() Framebuffer
	DisplaySize() (w, h int)
}

// KeyCode identifies a non-text key.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Text keys carry a Rune and KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind is the phase of a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
)

// PointerEvent is a primary-button pointer event in framebuffer pixels.
// Moves are only reported while the button is held.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// Pointer provides pointer events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Input provides access to input devices. Either may be nil.
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream with one tick per millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the only contact point between the program and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

// AppFactory builds an application on a HAL and returns its per-frame step.
type AppFactory func(HAL) (step func() error, err error)
