package hal

import (
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// Board pin names. Every HAL registers these in its GPIO table.
const (
	PinLED = "LED"
	PinSW1 = "SW1"
	PinSW2 = "SW2"
)

// GPIO is the board's table of named digital pins.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
	// Lookup returns the pin registered under name, or nil.
	Lookup(name string) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

type pinTable struct {
	pins []GPIOPin
}

// newPinTable skips nil entries so boards can pass optional pins directly.
func newPinTable(pins ...GPIOPin) *pinTable {
	t := &pinTable{}
	for _, p := range pins {
		if p != nil {
			t.pins = append(t.pins, p)
		}
	}
	return t
}

func (t *pinTable) PinCount() int { return len(t.pins) }

func (t *pinTable) Pin(id int) GPIOPin {
	if id < 0 || id >= len(t.pins) {
		return nil
	}
	return t.pins[id]
}

func (t *pinTable) Lookup(name string) GPIOPin {
	for _, p := range t.pins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// virtualPin is a host-side pin. Inputs are driven from outside with drive,
// the way a switch or probe would pull the line.
type virtualPin struct {
	mu    sync.Mutex
	name  string
	caps  GPIOCaps
	mode  GPIOMode
	pull  GPIOPull
	level bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{name: name, caps: caps}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkCaps(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.pull = pull
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// drive sets the level seen by Read, as an external source would.
func (p *virtualPin) drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// checkCaps rejects a mode or pull the pin cannot provide.
func checkCaps(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	var need GPIOCaps
	switch mode {
	case GPIOModeInput:
		need = GPIOCapInput
	case GPIOModeOutput:
		need = GPIOCapOutput
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}
	if caps&need == 0 {
		if mode == GPIOModeInput {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
		return fmt.Errorf("gpio: pin %s: output unsupported", name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// ledPin exposes the board LED as an output-only pin, so the heartbeat goes
// through the same GPIO table as the switches.
type ledPin struct {
	mu    sync.Mutex
	led   LED
	level bool
}

func newLEDPin(led LED) GPIOPin {
	if led == nil {
		return nil
	}
	return &ledPin{led: led}
}

func (p *ledPin) Name() string   { return PinLED }
func (p *ledPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *ledPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: pull unsupported", PinLED)
	}
	return checkCaps(PinLED, GPIOCapOutput, mode, pull)
}

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if level {
		p.led.High()
	} else {
		p.led.Low()
	}
	return nil
}
