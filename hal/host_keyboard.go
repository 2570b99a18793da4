//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// hostKeyboard maps desktop keys onto the SW1/SW2 switches.
type hostKeyboard struct {
	h    *hostHAL
	last uint32
}

func newHostKeyboard(h *hostHAL) *hostKeyboard {
	return &hostKeyboard{h: h}
}

var (
	increaseKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowRight, ebiten.KeyEqual, ebiten.KeyNumpadAdd}
	decreaseKeys = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyMinus, ebiten.KeyNumpadSubtract}
)

func (k *hostKeyboard) poll() {
	var code uint32
	if anyPressed(increaseKeys) {
		code |= SW1
	}
	if anyPressed(decreaseKeys) {
		code |= SW2
	}
	if code == k.last {
		return
	}
	k.last = code
	k.h.press(code)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
