//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"speedplot/app"
	"speedplot/config"
	"speedplot/hal"

	"github.com/jessevdk/go-flags"
)

type options struct {
	Config    string `short:"c" long:"config" description:"YAML config file" default:"speedplot.yaml"`
	Headless  bool   `long:"headless" description:"Run without a window"`
	Hz        int    `long:"hz" description:"Tick rate in headless mode (overrides config)"`
	Ticks     uint64 `long:"ticks" description:"Stop after N ticks in headless mode, 0 runs forever (overrides config)"`
	EdgeLatch bool   `long:"edge-latch" description:"Adjust the setpoint once per key press instead of once per timer tick"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if opts.EdgeLatch {
		cfg.EdgeLatch = true
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if opts.Headless {
		hc := headlessConfig(cfg.Headless)
		if opts.Hz > 0 {
			hc.Hz = opts.Hz
		}
		if opts.Ticks > 0 {
			hc.Ticks = opts.Ticks
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hc); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func headlessConfig(c config.Headless) hal.HeadlessConfig {
	hc := hal.HeadlessConfig{Enabled: true, Hz: c.Hz, Ticks: c.Ticks}
	for _, s := range c.Script {
		hc.Script = append(hc.Script, hal.KeyStep{Tick: s.Tick, Code: s.Code})
	}
	return hc
}
