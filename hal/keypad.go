package hal

// switchKeypad reads SW1/SW2 from two GPIO inputs.
type switchKeypad struct {
	inc       GPIOPin
	dec       GPIOPin
	pull      GPIOPull
	activeLow bool
	logger    Logger
}

func newSwitchKeypad(inc, dec GPIOPin, pull GPIOPull, activeLow bool, logger Logger) *switchKeypad {
	return &switchKeypad{inc: inc, dec: dec, pull: pull, activeLow: activeLow, logger: logger}
}

func (k *switchKeypad) Init() {
	for _, p := range []GPIOPin{k.inc, k.dec} {
		if p == nil {
			continue
		}
		if err := p.Configure(GPIOModeInput, k.pull); err != nil && k.logger != nil {
			k.logger.WriteLineString("keypad: " + err.Error())
		}
	}
}

// Read must stay cheap: it runs from the timer handler.
func (k *switchKeypad) Read() uint32 {
	var code uint32
	if k.pressed(k.inc) {
		code |= SW1
	}
	if k.pressed(k.dec) {
		code |= SW2
	}
	return code
}

func (k *switchKeypad) pressed(p GPIOPin) bool {
	if p == nil {
		return false
	}
	level, err := p.Read()
	if err != nil {
		return false
	}
	return level != k.activeLow
}
