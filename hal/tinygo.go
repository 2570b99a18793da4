//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7735"
)

// Panel wiring on the lab carrier (Pico/Pico2).
const (
	panelWidth  = 128
	panelHeight = 160
)

var (
	pinLCDSCK = machine.GP10
	pinLCDSDO = machine.GP11
	pinLCDSDI = machine.GP12
	pinLCDCS  = machine.GP13
	pinLCDDC  = machine.GP14
	pinLCDRST = machine.GP15
	pinLCDBL  = machine.GP16

	pinSW1 = machine.GP2
	pinSW2 = machine.GP3
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	lcd    *st7735.Device
	kpd    *switchKeypad
	timer  *tickerTimer
}

// New returns the bare-metal HAL: ST7735 on SPI1, SW1/SW2 on GP2/GP3 (active
// low, pulled up), UART0 logging on GP0 (TX) / GP1 (RX) at 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	gpio := newPinTable(
		newLEDPin(&pinLED{pin: ledPin}),
		&machinePin{name: PinSW1, pin: pinSW1},
		&machinePin{name: PinSW2, pin: pinSW2},
	)

	return &tinyGoHAL{
		logger: logger,
		gpio:   gpio,
		lcd:    initST7735(),
		kpd:    newSwitchKeypad(gpio.Lookup(PinSW1), gpio.Lookup(PinSW2), GPIOPullUp, true, logger),
		timer:  newTickerTimer(),
	}
}

func initST7735() *st7735.Device {
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       pinLCDSCK,
		SDO:       pinLCDSDO,
		SDI:       pinLCDSDI,
		Frequency: 16_000_000,
	})

	lcd := st7735.New(machine.SPI1, pinLCDRST, pinLCDDC, pinLCDCS, pinLCDBL)
	lcd.Configure(st7735.Config{
		Width:  panelWidth,
		Height: panelHeight,
		Model:  st7735.GREENTAB,
	})
	lcd.EnableBacklight(true)
	return &lcd
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{lcd: h.lcd} }
func (h *tinyGoHAL) Keypad() Keypad   { return h.kpd }
func (h *tinyGoHAL) Timer() Timer     { return h.timer }

type tinyGoDisplay struct {
	lcd *st7735.Device
}

// Framebuffer is nil: the ST7735 is drawn directly over SPI.
func (d tinyGoDisplay) Framebuffer() Framebuffer     { return nil }
func (d tinyGoDisplay) Displayer() drivers.Displayer { return d.lcd }
