package hal

import "tinygo.org/x/drivers"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is the board LED driver behind the PinLED entry of the GPIO table.
type LED interface {
	High()
	Low()
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
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

// Display gives access to the panel.
//
// Framebuffer returns nil for panels that are drawn directly over the bus.
type Display interface {
	Framebuffer() Framebuffer
	Displayer() drivers.Displayer
}

// Keypad samples the speed switches.
//
// Read returns a bit per switch: bit 0 is SW1 (increase), bit 1 is SW2
// (decrease).
type Keypad interface {
	Init()
	Read() uint32
}

// Keypad switch bits.
const (
	SW1 uint32 = 1 << iota
	SW2
)

// Timer is a periodic interrupt source.
//
// The handler runs once per period until the timer is stopped. A handler that
// does not call Acknowledge is invoked again as soon as possible.
type Timer interface {
	Init(rateHz uint32, priority uint8, handler func())
	Start()
	Acknowledge()
}

// HAL provides the only contact point between the firmware and the board.
//
// GPIO always carries PinLED, PinSW1 and PinSW2; the keypad reads the two
// switch pins from it.
type HAL interface {
	Logger() Logger
	Display() Display
	Keypad() Keypad
	Timer() Timer
	GPIO() GPIO
}
