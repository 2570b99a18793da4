//go:build !tinygo

// Command plotshot runs the firmware headless for a fixed number of ticks and
// writes the final screen to a PNG.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"

	"speedplot/app"
	"speedplot/config"
	"speedplot/hal"

	"github.com/jessevdk/go-flags"
)

type options struct {
	Config string `short:"c" long:"config" description:"YAML config file" default:"speedplot.yaml"`
	Ticks  uint64 `short:"n" long:"ticks" description:"Ticks to run before capturing" default:"600"`
	Out    string `short:"o" long:"out" description:"Output PNG" required:"true"`
	Quiet  bool   `short:"q" long:"quiet" description:"Discard firmware log output"`
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

	if err := run(opts); err != nil {
		fatalf("plotshot: %v", err)
	}
}

// run renders the screen in memory and only writes opts.Out on success.
func run(opts options) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	var log io.Writer = os.Stdout
	if opts.Quiet {
		log = io.Discard
	}

	var buf bytes.Buffer
	if err := shot(&buf, cfg, opts.Ticks, log); err != nil {
		return err
	}
	return os.WriteFile(opts.Out, buf.Bytes(), 0o644)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// shot runs cfg for ticks headless ticks and encodes the framebuffer to w.
func shot(w io.Writer, cfg config.Config, ticks uint64, log io.Writer) error {
	if ticks == 0 {
		return errors.New("ticks must be > 0")
	}

	hc := hal.HeadlessConfig{
		Enabled: true,
		Hz:      cfg.Headless.Hz,
		Ticks:   ticks,
		Fast:    true,
		Output:  log,
	}
	for _, s := range cfg.Headless.Script {
		hc.Script = append(hc.Script, hal.KeyStep{Tick: s.Tick, Code: s.Code})
	}

	var board hal.HAL
	err := hal.RunHeadless(context.Background(), func(h hal.HAL) func() error {
		board = h
		return app.NewWithConfig(h, cfg)
	}, hc)
	if err != nil {
		return err
	}

	img := hal.FramebufferImage(board.Display().Framebuffer())
	if img == nil {
		return errors.New("no framebuffer")
	}
	return png.Encode(w, img)
}
