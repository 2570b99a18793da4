//go:build !tinygo

package hal

import (
	"sync/atomic"
	"time"
)

// hostTimer is a virtual periodic interrupt. The run loop advances it; due
// handlers run synchronously on the loop goroutine, ahead of the app step.
type hostTimer struct {
	period   time.Duration
	priority uint8
	handler  func()
	running  bool

	pending atomic.Bool

	acc time.Duration
}

func newHostTimer() *hostTimer {
	return &hostTimer{}
}

func (t *hostTimer) Init(rateHz uint32, priority uint8, handler func()) {
	if rateHz == 0 {
		rateHz = 1
	}
	t.period = time.Second / time.Duration(rateHz)
	t.priority = priority
	t.handler = handler
	t.running = false
	t.acc = 0
	t.pending.Store(false)
}

func (t *hostTimer) Start() { t.running = true }

func (t *hostTimer) Acknowledge() { t.pending.Store(false) }

func (t *hostTimer) advance(d time.Duration) {
	if !t.running || t.handler == nil || t.period <= 0 {
		return
	}
	if t.pending.Load() {
		t.fire()
	}
	t.acc += d
	for t.acc >= t.period {
		t.acc -= t.period
		t.fire()
	}
}

func (t *hostTimer) fire() {
	t.pending.Store(true)
	t.handler()
}
