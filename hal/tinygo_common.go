//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"sync/atomic"
	"time"
)

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
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin exposes a board pin as an input-only GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp | GPIOCapPullDown }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", p.name)
	}
	m := machine.PinInput
	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		m = machine.PinInputPullup
	case GPIOPullDown:
		m = machine.PinInputPulldown
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// tickerTimer runs the handler from a goroutine paced by time.Ticker. TinyGo
// has no portable timer IRQ, so the scheduler stands in for the NVIC.
type tickerTimer struct {
	period   time.Duration
	priority uint8
	handler  func()

	started atomic.Bool
	pending atomic.Bool
}

func newTickerTimer() *tickerTimer {
	return &tickerTimer{}
}

func (t *tickerTimer) Init(rateHz uint32, priority uint8, handler func()) {
	if rateHz == 0 {
		rateHz = 1
	}
	t.period = time.Second / time.Duration(rateHz)
	t.priority = priority
	t.handler = handler
}

func (t *tickerTimer) Start() {
	if t.handler == nil || t.started.Swap(true) {
		return
	}
	go func() {
		ticker := time.NewTicker(t.period)
		defer ticker.Stop()
		for range ticker.C {
			if t.pending.Load() {
				t.fire()
			}
			t.fire()
		}
	}()
}

func (t *tickerTimer) Acknowledge() { t.pending.Store(false) }

func (t *tickerTimer) fire() {
	t.pending.Store(true)
	t.handler()
}
