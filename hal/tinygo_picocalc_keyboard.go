//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdFIFO byte   = 0x09
)

const (
	kbdStatePressed  byte = 0x01
	kbdStateReleased byte = 0x03
)

// Scan codes of the non-text keys the program uses.
var picoCalcKeys = map[byte]KeyCode{
	0xB1: KeyEscape,
	0xB4: KeyLeft,
	0xB5: KeyUp,
	0xB6: KeyDown,
	0xB7: KeyRight,
	'\r': KeyEnter,
	'\n': KeyEnter,
}

// picoCalcModifiers never produce events of their own (Alt, Ctrl, Shift).
var picoCalcModifiers = map[byte]bool{0xA1: true, 0xA2: true, 0xA3: true, 0xA5: true}

type i2cKeyboard struct {
	i2c *machine.I2C
	req [1]byte
	res [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	// The board wires I2C1; some TinyGo targets only expose I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		if err := bus.Configure(machine.I2CConfig{
			SCL:       machine.GP7,
			SDA:       machine.GP6,
			Frequency: 100_000,
		}); err != nil {
			continue
		}
		k := &i2cKeyboard{i2c: bus, req: [1]byte{picoCalcKbdFIFO}}
		// The keyboard MCU is slow to answer right after power-up.
		for i := 0; i < 50; i++ {
			if err := k.i2c.Tx(picoCalcKbdAddr, k.req[:], k.res[:]); err == nil {
				return k, nil
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
	return nil, errors.New("I2C keyboard not found")
}

// readEvent pops one entry from the keyboard FIFO.
func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.req[:], k.res[:]); err != nil {
		return KeyEvent{}, false
	}
	state, code := k.res[0], k.res[1]
	if code == 0 || picoCalcModifiers[code] {
		return KeyEvent{}, false
	}
	var press bool
	switch state {
	case kbdStatePressed:
		press = true
	case kbdStateReleased:
	default:
		return KeyEvent{}, false
	}

	if kc, ok := picoCalcKeys[code]; ok {
		return KeyEvent{Code: kc, Press: press}, true
	}
	if !press || code >= 0x80 {
		return KeyEvent{}, false
	}
	return KeyEvent{Press: true, Rune: rune(code)}, true
}
