//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"tinygo.org/x/drivers"
)

// Host panel size, matching the ST7735 on the lab board.
const (
	hostWidth  = 128
	hostHeight = 160
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	sw1    *virtualPin
	sw2    *virtualPin
	fb     *hostFramebuffer
	disp   *FramebufferDisplay
	kpd    *switchKeypad
	kbd    *hostKeyboard
	timer  *hostTimer
}

// New returns a host HAL implementation logging to stdout.
func New() HAL {
	return newHost(os.Stdout)
}

func newHost(w io.Writer) *hostHAL {
	logger := &hostLogger{w: w}
	led := &hostLED{}
	sw1 := newVirtualPin(PinSW1, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)
	sw2 := newVirtualPin(PinSW2, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)
	gpio := newPinTable(newLEDPin(led), sw1, sw2)
	fb := newHostFramebuffer(hostWidth, hostHeight)
	h := &hostHAL{
		logger: logger,
		led:    led,
		gpio:   gpio,
		sw1:    sw1,
		sw2:    sw2,
		fb:     fb,
		disp:   NewFramebufferDisplay(fb),
		kpd:    newSwitchKeypad(gpio.Lookup(PinSW1), gpio.Lookup(PinSW2), GPIOPullDown, false, logger),
		timer:  newHostTimer(),
	}
	h.kbd = newHostKeyboard(h)
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb, d: h.disp} }
func (h *hostHAL) Keypad() Keypad   { return h.kpd }
func (h *hostHAL) Timer() Timer     { return h.timer }

// press drives the virtual switches to match a keypad code.
func (h *hostHAL) press(code uint32) {
	h.sw1.drive(code&SW1 != 0)
	h.sw2.drive(code&SW2 != 0)
}

type hostDisplay struct {
	fb *hostFramebuffer
	d  *FramebufferDisplay
}

func (d hostDisplay) Framebuffer() Framebuffer     { return d.fb }
func (d hostDisplay) Displayer() drivers.Displayer { return d.d }

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

type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
