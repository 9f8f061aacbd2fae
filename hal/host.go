//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	disp   *hostDisplay
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
}

// New returns a host HAL with a w×h framebuffer logging to stdout.
func New(w, h int) HAL {
	return newHost(w, h, os.Stdout)
}

func newHost(w, h int, logOut io.Writer) *hostHAL {
	fb := newHostFramebuffer(w, h)
	return &hostHAL{
		logger: &hostLogger{w: logOut},
		fb:     fb,
		disp:   &hostDisplay{fb: fb},
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

// hostDisplay reports the window's logical size once the window has laid
// itself out, and the framebuffer size before that.
type hostDisplay struct {
	fb   *hostFramebuffer
	size atomic.Uint64 // w<<32 | h
}

func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }

func (d *hostDisplay) DisplaySize() (w, h int) {
	v := d.size.Load()
	if v == 0 {
		return d.fb.Width(), d.fb.Height()
	}
	return int(v >> 32), int(uint32(v))
}

func (d *hostDisplay) setDisplaySize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	d.size.Store(uint64(w)<<32 | uint64(uint32(h)))
}

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// NewWriterLogger returns a Logger writing lines to w.
func NewWriterLogger(w io.Writer) Logger { return &hostLogger{w: w} }
