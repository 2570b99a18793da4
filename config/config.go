// Package config holds the speed-plot settings and their lab defaults.
package config

// MaxSpeed is the largest setpoint representable, in tenths of rps.
const MaxSpeed = 0xFFFF

// Config is the full firmware configuration.
type Config struct {
	// Title is drawn on the first text row.
	Title string `yaml:"title"`

	// Min and Max bound the chart and the setpoint, in tenths of rps. The
	// setpoint is a uint16, so both must lie in 0..MaxSpeed.
	Min int32 `yaml:"min"`
	Max int32 `yaml:"max"`

	// Step is the setpoint change per accepted key press, in tenths of rps.
	Step int32 `yaml:"step"`

	// RateHz is the keypad timer rate; Priority is passed to the timer driver.
	RateHz   uint32 `yaml:"rate_hz"`
	Priority uint8  `yaml:"priority"`

	// EdgeLatch adjusts the setpoint once per press instead of once per tick.
	EdgeLatch bool `yaml:"edge_latch"`

	// Desired is the setpoint at boot.
	Desired uint16 `yaml:"desired"`

	Motor    Motor    `yaml:"motor"`
	Headless Headless `yaml:"headless"`
}

// Motor configures the simulated plant.
type Motor struct {
	// Tau is the lag in sample periods.
	Tau   int    `yaml:"tau"`
	Start uint16 `yaml:"start"`
}

// Headless configures the host runner without a window.
type Headless struct {
	Hz     int       `yaml:"hz"`
	Ticks  uint64    `yaml:"ticks"`
	Script []KeyStep `yaml:"script"`
}

// KeyStep presses the switches in Code from Tick on (0 releases them).
type KeyStep struct {
	Tick uint64 `yaml:"tick"`
	Code uint32 `yaml:"code"`
}

// Default returns the lab board settings.
func Default() Config {
	return Config{
		Title:    "Motor speed",
		Min:      0,
		Max:      5000,
		Step:     500,
		RateHz:   1,
		Priority: 2,
		Motor: Motor{
			Tau: 3,
		},
		Headless: Headless{
			Hz: 60,
		},
	}
}
