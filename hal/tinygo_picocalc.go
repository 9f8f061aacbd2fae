//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
	"time"
)

const (
	picoCalcWidth  = 320
	picoCalcHeight = 320
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     *picoCalcFramebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns the PicoCalc HAL (Pico/Pico2 on the PicoCalc carrier). The
// size arguments are ignored; the panel is fixed at 320x320.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New(_, _ int) HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	fb := &picoCalcFramebuffer{
		w:      picoCalcWidth,
		h:      picoCalcHeight,
		stride: picoCalcWidth * 2,
		buf:    make([]byte, picoCalcWidth*picoCalcHeight*2),
	}
	if lcd, err := initILI9488(); err == nil {
		fb.lcd = lcd
	} else {
		logger.WriteLineString("lcd: " + err.Error())
	}

	var kbd Keyboard = stubKeyboard{}
	if kb, err := newPicoCalcKeyboard(); err == nil {
		kbd = kb
	} else {
		logger.WriteLineString("keyboard: " + err.Error())
	}

	return &picoCalcHAL{
		logger: logger,
		fb:     fb,
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return picoCalcDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return picoCalcInput{kbd: h.kbd} }
func (h *picoCalcHAL) Time() Time       { return h.t }

type picoCalcDisplay struct {
	fb *picoCalcFramebuffer
}

func (d picoCalcDisplay) Framebuffer() Framebuffer { return d.fb }
func (d picoCalcDisplay) DisplaySize() (int, int)  { return d.fb.w, d.fb.h }

// picoCalcInput has no pointer; the slider is driven by arrow keys.
type picoCalcInput struct {
	kbd Keyboard
}

func (in picoCalcInput) Keyboard() Keyboard { return in.kbd }
func (in picoCalcInput) Pointer() Pointer   { return nil }

type stubKeyboard struct{}

func (stubKeyboard) Events() <-chan KeyEvent { return nil }

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd *ili9488
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(pixel)
		f.buf[i+1] = byte(pixel >> 8)
	}
}

func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	return f.lcd.blit(f.buf, f.w, f.h)
}

type picoCalcKeyboard struct {
	ch chan KeyEvent
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

func newPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}
	dev := &picoCalcKeyboard{ch: make(chan KeyEvent, 64)}
	go func() {
		for {
			if ev, ok := kbd.readEvent(); ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
	return dev, nil
}

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 64)}
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
