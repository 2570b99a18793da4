//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// KeyStep sets the switch code from a given tick on.
type KeyStep struct {
	Tick uint64
	Code uint32
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Fast runs ticks back to back instead of pacing them in real time.
	// The timer still advances by 1/Hz per tick.
	Fast bool

	// Script presses switches at given ticks, in tick order.
	Script []KeyStep

	// Output receives log lines (stdout when nil).
	Output io.Writer
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	w := cfg.Output
	if w == nil {
		w = stdout()
	}
	h := newHost(w)
	step := newApp(h)

	var pace <-chan time.Time
	if !cfg.Fast {
		t := time.NewTicker(d)
		defer t.Stop()
		pace = t.C
	}

	script := cfg.Script
	var tick uint64
	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		for len(script) > 0 && script[0].Tick <= tick {
			h.press(script[0].Code)
			script = script[1:]
		}

		h.timer.advance(d)
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return nil
		}
	}
}

func stdout() io.Writer { return os.Stdout }
