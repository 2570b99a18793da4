package app

import (
	"strconv"
	"time"

	"speedplot/config"
	"speedplot/hal"
	"speedplot/internal/buildinfo"
	"speedplot/lcd"
	"speedplot/motor"
	"speedplot/plot"
)

// loopDelay paces the bare-metal main loop between redraw checks.
const loopDelay = 10 * time.Millisecond

// statsEvery is how many readout refreshes pass between frame-count log lines.
const statsEvery = 60

type system struct {
	log   hal.Logger
	lcd   *lcd.Device
	plot  *plot.Plot
	motor *motor.Sim
	shown uint16

	led   hal.GPIOPin
	ledOn bool

	logBuf []byte
}

// New initializes the board with the default config and returns the main-loop
// step.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// Run starts the firmware and loops forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, config.Default())
}

func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	return newSystem(h, cfg).step
}

func RunWithConfig(h hal.HAL, cfg config.Config) {
	step := NewWithConfig(h, cfg)
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
		}
		time.Sleep(loopDelay)
	}
}

func newSystem(h hal.HAL, cfg config.Config) *system {
	log := h.Logger()
	log.WriteLineString("speedplot " + buildinfo.String())

	dev := lcd.New(h.Display().Displayer())
	p := plot.New(dev, h.Timer(), h.Keypad(),
		plot.WithStep(cfg.Step),
		plot.WithRate(cfg.RateHz, cfg.Priority),
		plot.WithEdgeLatch(cfg.EdgeLatch),
		plot.WithLogger(log),
	)
	p.SetDesired(cfg.Desired)

	s := &system{
		log:    log,
		lcd:    dev,
		plot:   p,
		motor:  motor.NewSim(cfg.Motor.Tau, cfg.Motor.Start),
		shown:  cfg.Desired,
		led:    heartbeatPin(h),
		logBuf: make([]byte, 0, 48),
	}

	p.Init(cfg.Title, cfg.Min, cfg.Max)
	p.PrintSpeed(p.Desired(), s.motor.Speed())
	if err := dev.Flush(); err != nil {
		log.WriteLineString("app: flush: " + err.Error())
	}
	return s
}

// step is one pass of the main loop: when the timer has flagged a redraw it
// advances the motor, refreshes the readouts and appends a chart sample.
func (s *system) step() error {
	if !s.plot.TakeRedraw() {
		return nil
	}
	desired := s.plot.Desired()
	if desired != s.shown {
		s.log.WriteLineString("app: setpoint " + plot.FormatFixed(uint32(s.shown)) +
			" -> " + plot.FormatFixed(uint32(desired)) + " rps")
		s.shown = desired
	}

	actual := s.motor.Step(desired)
	s.plot.PrintSpeed(desired, actual)
	s.plot.PlotSpeed(actual)
	if n := s.plot.Frames(); n%statsEvery == 0 {
		b := append(s.logBuf[:0], "app: frames="...)
		b = strconv.AppendUint(b, uint64(n), 10)
		b = append(b, " actual="...)
		b = plot.AppendFixed(b, uint32(actual))
		s.logBuf = b
		s.log.WriteLineBytes(b)
	}

	if s.led != nil {
		s.ledOn = !s.ledOn
		if err := s.led.Write(s.ledOn); err != nil {
			return err
		}
	}
	return s.lcd.Flush()
}

// heartbeatPin returns the LED pin configured as an output, or nil when the
// board has none.
func heartbeatPin(h hal.HAL) hal.GPIOPin {
	g := h.GPIO()
	if g == nil {
		return nil
	}
	pin := g.Lookup(hal.PinLED)
	if pin == nil {
		return nil
	}
	if err := pin.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
		h.Logger().WriteLineString("app: led: " + err.Error())
		return nil
	}
	return pin
}
