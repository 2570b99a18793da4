//go:build !tinygo && !cgo

package hal

type hostKeyboard struct{}

func newHostKeyboard(h *hostHAL) *hostKeyboard {
	_ = h
	return &hostKeyboard{}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
