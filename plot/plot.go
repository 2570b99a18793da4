// Package plot draws the motor-speed strip chart and readouts, and owns the
// desired-speed setpoint adjusted from the keypad by a periodic timer
// interrupt.
//
// The main loop calls PrintSpeed and PlotSpeed whenever TakeRedraw reports a
// pending redraw. TimerHandler runs in interrupt context: it never touches the
// display and only exchanges state with the main loop through atomics.
package plot

import (
	"image/color"
	"strconv"
	"sync/atomic"
)

// Display is the text and strip-chart surface the plot renders to.
type Display interface {
	Fill(c color.RGBA)
	SetCursor(col, row int16)
	OutString(s string)
	PlotClear(min, max int32)
	PlotPoint(v int32)
	PlotNextErase()
}

// Timer is a periodic interrupt source.
type Timer interface {
	Init(rateHz uint32, priority uint8, handler func())
	Start()
	Acknowledge()
}

// Keypad samples the raw switch code.
type Keypad interface {
	Init()
	Read() uint32
}

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// Raw keypad codes understood by TimerHandler.
const (
	KeyNone     uint32 = 0x00
	KeyIncrease uint32 = 0x01
	KeyDecrease uint32 = 0x02
)

// Defaults for the lab board.
const (
	DefaultStep     = 500
	DefaultRateHz   = 1
	DefaultPriority = 2
)

// Screen rows used by the renderers.
const (
	rowTitle   = 0
	rowDesired = 1
	rowActual  = 2
	rowMax     = 3
	rowMin     = 15
)

var black = color.RGBA{A: 0xff}

// Plot is the speed chart plus its setpoint state.
type Plot struct {
	disp   Display
	timer  Timer
	keypad Keypad
	logger Logger

	rateHz    uint32
	priority  uint8
	step      int32
	edgeLatch bool

	min int32
	max int32

	desired atomic.Uint32
	redraw  atomic.Bool
	frames  atomic.Uint32

	// last is only touched from TimerHandler.
	last uint32

	buf []byte
}

// Option configures a Plot.
type Option func(*Plot)

// WithStep sets the setpoint increment, in tenths.
func WithStep(step int32) Option {
	return func(p *Plot) { p.step = step }
}

// WithRate sets the timer rate and interrupt priority.
func WithRate(hz uint32, priority uint8) Option {
	return func(p *Plot) {
		p.rateHz = hz
		p.priority = priority
	}
}

// WithEdgeLatch makes TimerHandler remember the last keypad code, so a held
// key adjusts the setpoint once per press instead of once per tick.
func WithEdgeLatch(on bool) Option {
	return func(p *Plot) { p.edgeLatch = on }
}

// WithLogger sets the logger used outside interrupt context.
func WithLogger(l Logger) Option {
	return func(p *Plot) { p.logger = l }
}

// New returns a Plot that renders to disp and polls keypad from timer's
// interrupt once Init has run.
func New(disp Display, timer Timer, keypad Keypad, opts ...Option) *Plot {
	p := &Plot{
		disp:     disp,
		timer:    timer,
		keypad:   keypad,
		rateHz:   DefaultRateHz,
		priority: DefaultPriority,
		step:     DefaultStep,
		buf:      make([]byte, 0, 32),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init sets the chart range, clears the screen, draws the title and starts
// the keypad timer. minData and maxData must satisfy minData <= maxData.
func (p *Plot) Init(title string, minData, maxData int32) {
	p.min = mapValue(minData)
	p.max = mapValue(maxData)
	p.timer.Init(p.rateHz, p.priority, p.TimerHandler)
	p.keypad.Init()

	p.disp.Fill(black)
	p.disp.SetCursor(0, rowTitle)
	p.disp.PlotClear(p.min, p.max)
	p.disp.OutString(title + " \n")

	if p.logger != nil {
		p.logger.WriteLineString("plot: init title=" + strconv.Quote(title) +
			" min=" + strconv.Itoa(int(p.min)) +
			" max=" + strconv.Itoa(int(p.max)) +
			" rate=" + strconv.Itoa(int(p.rateHz)) + "Hz")
	}
	p.timer.Start()
}

// PrintSpeed writes the desired and actual readouts above the chart.
func (p *Plot) PrintSpeed(desired, actual uint16) {
	d := mapValue(int32(desired))
	a := mapValue(int32(actual))

	p.disp.SetCursor(0, rowDesired)
	p.printLine("desired: ", d, " rps  ")

	p.disp.SetCursor(0, rowActual)
	p.printLine("actual: ", a, " rps  ")

	p.frames.Add(1)
}

// PlotSpeed appends one sample to the chart and redraws the bound labels.
func (p *Plot) PlotSpeed(speed uint16) {
	p.disp.PlotPoint(mapValue(int32(speed)))
	p.disp.PlotNextErase()

	p.disp.SetCursor(0, rowMax)
	p.printLine("", p.max, "")
	p.disp.SetCursor(0, rowMin)
	p.printLine("", p.min, "")
}

func (p *Plot) printLine(prefix string, v int32, suffix string) {
	b := append(p.buf[:0], prefix...)
	if v < 0 {
		b = append(b, InvalidMarker...)
	} else {
		b = AppendFixed(b, uint32(v))
	}
	b = append(b, suffix...)
	p.buf = b
	p.disp.OutString(string(b))
}

// TimerHandler is the periodic interrupt callback. It acknowledges the
// interrupt, samples the keypad, flags a redraw and steps the setpoint.
func (p *Plot) TimerHandler() {
	p.timer.Acknowledge()

	code := p.keypad.Read()
	p.redraw.Store(true)

	if code == p.last {
		return
	}
	desired := int32(p.desired.Load())
	switch code {
	case KeyIncrease:
		if desired+p.step < p.max {
			desired += p.step
		} else {
			desired = p.max
		}
		p.desired.Store(uint32(desired))
	case KeyDecrease:
		if desired > p.min+p.step {
			desired -= p.step
		} else {
			desired = p.min
		}
		p.desired.Store(uint32(desired))
	}
	if p.edgeLatch {
		p.last = code
	}
}

// Desired returns the current setpoint in tenths.
func (p *Plot) Desired() uint16 { return uint16(p.desired.Load()) }

// SetDesired overwrites the setpoint. Call it before Init starts the timer.
func (p *Plot) SetDesired(v uint16) { p.desired.Store(uint32(v)) }

// TakeRedraw reports whether a redraw was requested and clears the request.
func (p *Plot) TakeRedraw() bool { return p.redraw.Swap(false) }

// Redraw reports whether a redraw is pending without clearing it.
func (p *Plot) Redraw() bool { return p.redraw.Load() }

// Frames counts PrintSpeed calls.
func (p *Plot) Frames() uint32 { return p.frames.Load() }

// Range returns the mapped chart bounds.
func (p *Plot) Range() (min, max int32) { return p.min, p.max }

// mapValue converts a raw sample to display units. The board feeds speeds
// already in tenths, so it is the identity.
func mapValue(v int32) int32 { return v }
