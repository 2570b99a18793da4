package plot

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	ops []string
}

func (d *fakeDisplay) Fill(c color.RGBA)        { d.ops = append(d.ops, fmt.Sprintf("fill %d,%d,%d", c.R, c.G, c.B)) }
func (d *fakeDisplay) SetCursor(col, row int16) { d.ops = append(d.ops, fmt.Sprintf("cursor %d,%d", col, row)) }
func (d *fakeDisplay) OutString(s string)       { d.ops = append(d.ops, "out "+s) }
func (d *fakeDisplay) PlotClear(min, max int32) { d.ops = append(d.ops, fmt.Sprintf("clear %d,%d", min, max)) }
func (d *fakeDisplay) PlotPoint(v int32)        { d.ops = append(d.ops, fmt.Sprintf("point %d", v)) }
func (d *fakeDisplay) PlotNextErase()           { d.ops = append(d.ops, "next") }

func (d *fakeDisplay) reset() { d.ops = nil }

type fakeTimer struct {
	events   *[]string
	rate     uint32
	priority uint8
	handler  func()
	started  bool
	acks     int
}

func (t *fakeTimer) Init(rateHz uint32, priority uint8, handler func()) {
	t.rate = rateHz
	t.priority = priority
	t.handler = handler
	t.record("timer init")
}

func (t *fakeTimer) Start() {
	t.started = true
	t.record("timer start")
}

func (t *fakeTimer) Acknowledge() {
	t.acks++
	t.record("ack")
}

func (t *fakeTimer) record(s string) {
	if t.events != nil {
		*t.events = append(*t.events, s)
	}
}

type fakeKeypad struct {
	events *[]string
	code   uint32
	inits  int
}

func (k *fakeKeypad) Init() { k.inits++ }

func (k *fakeKeypad) Read() uint32 {
	if k.events != nil {
		*k.events = append(*k.events, "read")
	}
	return k.code
}

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }

func newTestPlot(t *testing.T, opts ...Option) (*Plot, *fakeDisplay, *fakeTimer, *fakeKeypad) {
	t.Helper()
	d := &fakeDisplay{}
	tm := &fakeTimer{}
	kp := &fakeKeypad{}
	p := New(d, tm, kp, opts...)
	p.Init("Motor", 0, 5000)
	d.reset()
	return p, d, tm, kp
}

func TestInit(t *testing.T) {
	d := &fakeDisplay{}
	tm := &fakeTimer{}
	kp := &fakeKeypad{}
	var log lines
	p := New(d, tm, kp, WithLogger(&log))

	p.Init("Motor speed", 100, 4000)

	assert.Equal(t, []string{
		"fill 0,0,0",
		"cursor 0,0",
		"clear 100,4000",
		"out Motor speed \n",
	}, d.ops)
	assert.Equal(t, uint32(DefaultRateHz), tm.rate)
	assert.Equal(t, uint8(DefaultPriority), tm.priority)
	assert.True(t, tm.started)
	require.NotNil(t, tm.handler)
	assert.Equal(t, 1, kp.inits)

	min, max := p.Range()
	assert.Equal(t, int32(100), min)
	assert.Equal(t, int32(4000), max)

	require.Len(t, log, 1)
	assert.Contains(t, log[0], `title="Motor speed"`)
	assert.Contains(t, log[0], "min=100")
	assert.Contains(t, log[0], "max=4000")
}

func TestInitHandlerDrivesSetpoint(t *testing.T) {
	p, _, tm, kp := newTestPlot(t)
	kp.code = KeyIncrease
	tm.handler()
	assert.Equal(t, uint16(DefaultStep), p.Desired())
}

func TestPrintSpeed(t *testing.T) {
	p, d, _, _ := newTestPlot(t)

	p.PrintSpeed(2345, 31)

	assert.Equal(t, []string{
		"cursor 0,1",
		"out desired: 234.5 rps  ",
		"cursor 0,2",
		"out actual: 3.1 rps  ",
	}, d.ops)
	assert.Equal(t, uint32(1), p.Frames())
}

func TestPrintSpeedIdempotent(t *testing.T) {
	p, d, _, _ := newTestPlot(t)

	p.PrintSpeed(1200, 1185)
	first := append([]string(nil), d.ops...)
	d.reset()
	p.PrintSpeed(1200, 1185)

	assert.Equal(t, first, d.ops)
	assert.Equal(t, uint32(2), p.Frames())
}

func TestPrintSpeedInvalid(t *testing.T) {
	p, d, _, _ := newTestPlot(t)

	p.PrintSpeed(6000, 0)

	assert.Equal(t, "out desired: "+InvalidMarker+" rps  ", d.ops[1])
	assert.Equal(t, "out actual: 0.0 rps  ", d.ops[3])
}

func TestPlotSpeed(t *testing.T) {
	p, d, _, _ := newTestPlot(t)

	p.PlotSpeed(1500)

	assert.Equal(t, []string{
		"point 1500",
		"next",
		"cursor 0,3",
		"out 500.0",
		"cursor 0,15",
		"out 0.0",
	}, d.ops)
}

func TestTimerHandlerOrder(t *testing.T) {
	var events []string
	d := &fakeDisplay{}
	tm := &fakeTimer{events: &events}
	kp := &fakeKeypad{events: &events}
	p := New(d, tm, kp)
	p.Init("Motor", 0, 5000)
	events = nil
	d.reset()

	p.TimerHandler()

	assert.Equal(t, []string{"ack", "read"}, events)
	assert.Empty(t, d.ops, "interrupt handler must not draw")
}

func TestTimerHandlerSetsRedraw(t *testing.T) {
	p, _, _, kp := newTestPlot(t)

	for _, code := range []uint32{KeyNone, KeyIncrease, KeyDecrease, 0x03, 0xff} {
		kp.code = code
		require.False(t, p.Redraw())
		p.TimerHandler()
		assert.True(t, p.TakeRedraw(), "code=%#x", code)
		assert.False(t, p.TakeRedraw())
	}
}

func TestTimerHandlerIncrease(t *testing.T) {
	tests := []struct {
		name    string
		desired uint16
		want    uint16
	}{
		{name: "step", desired: 0, want: 500},
		{name: "mid", desired: 2000, want: 2500},
		{name: "below max", desired: 4499, want: 4999},
		{name: "reaches max", desired: 4500, want: 5000},
		{name: "clamps", desired: 4700, want: 5000},
		{name: "at max", desired: 5000, want: 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _, kp := newTestPlot(t)
			p.SetDesired(tt.desired)
			kp.code = KeyIncrease
			p.TimerHandler()
			assert.Equal(t, tt.want, p.Desired())
		})
	}
}

func TestTimerHandlerDecrease(t *testing.T) {
	tests := []struct {
		name    string
		desired uint16
		want    uint16
	}{
		{name: "step", desired: 3000, want: 2500},
		{name: "above min+step", desired: 501, want: 1},
		{name: "at min+step", desired: 500, want: 0},
		{name: "clamps", desired: 200, want: 0},
		{name: "at min", desired: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _, kp := newTestPlot(t)
			p.SetDesired(tt.desired)
			kp.code = KeyDecrease
			p.TimerHandler()
			assert.Equal(t, tt.want, p.Desired())
		})
	}
}

func TestTimerHandlerDecreaseNonZeroMin(t *testing.T) {
	d := &fakeDisplay{}
	kp := &fakeKeypad{code: KeyDecrease}
	p := New(d, &fakeTimer{}, kp, WithStep(100))
	p.Init("Motor", 1000, 3000)

	p.SetDesired(1150)
	p.TimerHandler()
	assert.Equal(t, uint16(1050), p.Desired())

	p.TimerHandler()
	assert.Equal(t, uint16(1000), p.Desired())
}

func TestTimerHandlerOtherCodes(t *testing.T) {
	for _, code := range []uint32{KeyNone, 0x03, 0x04, 0x80} {
		p, _, _, kp := newTestPlot(t)
		p.SetDesired(2500)
		kp.code = code
		p.TimerHandler()
		assert.Equal(t, uint16(2500), p.Desired(), "code=%#x", code)
	}
}

func TestTimerHandlerHeldKeyRepeats(t *testing.T) {
	p, _, _, kp := newTestPlot(t)
	kp.code = KeyIncrease

	for i := 0; i < 3; i++ {
		p.TimerHandler()
	}
	assert.Equal(t, uint16(1500), p.Desired())
}

func TestTimerHandlerEdgeLatch(t *testing.T) {
	p, _, _, kp := newTestPlot(t, WithEdgeLatch(true))
	kp.code = KeyIncrease

	for i := 0; i < 3; i++ {
		p.TimerHandler()
	}
	assert.Equal(t, uint16(500), p.Desired())

	kp.code = KeyNone
	p.TimerHandler()
	kp.code = KeyIncrease
	p.TimerHandler()
	assert.Equal(t, uint16(1000), p.Desired())

	kp.code = KeyDecrease
	p.TimerHandler()
	p.TimerHandler()
	assert.Equal(t, uint16(500), p.Desired())
}

func TestWithOptions(t *testing.T) {
	tm := &fakeTimer{}
	p := New(&fakeDisplay{}, tm, &fakeKeypad{}, WithRate(10, 5), WithStep(50))
	p.Init("x", 0, 1000)

	assert.Equal(t, uint32(10), tm.rate)
	assert.Equal(t, uint8(5), tm.priority)

	p.SetDesired(100)
	tm.handler()
	assert.Equal(t, uint16(100), p.Desired())
}

func TestPrintSpeedNoStaleBuffer(t *testing.T) {
	p, d, _, _ := newTestPlot(t)

	p.PrintSpeed(5000, 5000)
	p.PrintSpeed(0, 0)

	last := d.ops[len(d.ops)-1]
	assert.True(t, strings.HasPrefix(last, "out actual: 0.0 rps"), last)
}
