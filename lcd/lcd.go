// Package lcd is a small ST7735-style text and strip-chart driver on top of
// any drivers.Displayer.
//
// Text is laid out on a fixed grid of 6x10 cells (21x16 on a 128x160 panel).
// The chart occupies the full width below PlotTop and behaves like a ring:
// each sample is drawn at the current column, then the column advances and
// the next one is erased.
package lcd

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	CharWidth  = 6
	CharHeight = 10

	// PlotTop is the first pixel row of the chart area.
	PlotTop = 32

	pointSize      = 2
	baselineOffset = 8
)

var (
	Black  = color.RGBA{A: 0xff}
	White  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Yellow = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	Blue   = color.RGBA{B: 0xff, A: 0xff}
)

type filler interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Device draws text and the speed chart.
type Device struct {
	d    drivers.Displayer
	fill filler
	font tinyfont.Fonter

	w    int16
	h    int16
	cols int16
	rows int16

	col int16
	row int16

	TextColor  color.RGBA
	TextBG     color.RGBA
	PlotBG     color.RGBA
	PlotColor  color.RGBA
	plotX      int16
	ymin, ymax int32
}

// New wraps d, using its FillRectangle when it has one.
func New(d drivers.Displayer) *Device {
	w, h := d.Size()
	dev := &Device{
		d:         d,
		font:      &proggy.TinySZ8pt7b,
		w:         w,
		h:         h,
		cols:      w / CharWidth,
		rows:      h / CharHeight,
		TextColor: Yellow,
		TextBG:    Black,
		PlotBG:    White,
		PlotColor: Blue,
		ymax:      1,
	}
	if f, ok := d.(filler); ok {
		dev.fill = f
	}
	return dev
}

// Size returns the text grid dimensions.
func (dev *Device) Size() (cols, rows int16) { return dev.cols, dev.rows }

// Cursor returns the current text position.
func (dev *Device) Cursor() (col, row int16) { return dev.col, dev.row }

// PlotX returns the column the next sample is drawn at.
func (dev *Device) PlotX() int16 { return dev.plotX }

// Fill paints the whole screen.
func (dev *Device) Fill(c color.RGBA) {
	dev.fillRect(0, 0, dev.w, dev.h, c)
}

// SetCursor moves the text cursor. Out-of-grid positions are ignored.
func (dev *Device) SetCursor(col, row int16) {
	if col < 0 || col >= dev.cols || row < 0 || row >= dev.rows {
		return
	}
	dev.col = col
	dev.row = row
}

// OutString writes s at the cursor, erasing each cell first. A newline moves
// to the start of the next row; text wraps at the right edge and the bottom.
func (dev *Device) OutString(s string) {
	for _, r := range s {
		if r == '\n' {
			dev.newline()
			continue
		}
		if dev.col >= dev.cols {
			dev.newline()
		}
		x := dev.col * CharWidth
		y := dev.row * CharHeight
		dev.fillRect(x, y, CharWidth, CharHeight, dev.TextBG)
		if r != ' ' {
			tinyfont.DrawChar(dev.d, dev.font, x, y+baselineOffset, r, dev.TextColor)
		}
		dev.col++
	}
}

func (dev *Device) newline() {
	dev.col = 0
	dev.row++
	if dev.row >= dev.rows {
		dev.row = 0
	}
}

// PlotClear erases the chart area and sets its vertical range.
func (dev *Device) PlotClear(min, max int32) {
	dev.ymin = min
	dev.ymax = max
	dev.plotX = 0
	dev.fillRect(0, PlotTop, dev.w, dev.h-PlotTop, dev.PlotBG)
}

// PlotPoint draws v at the current chart column. Values outside the range
// are pinned to the nearest edge.
func (dev *Device) PlotPoint(v int32) {
	dev.fillRect(dev.plotX, dev.plotY(v), pointSize, pointSize, dev.PlotColor)
}

// PlotNextErase advances the chart column, wrapping at the right edge, and
// erases the new column.
func (dev *Device) PlotNextErase() {
	dev.plotX++
	if dev.plotX >= dev.w {
		dev.plotX = 0
	}
	dev.fillRect(dev.plotX, PlotTop, 1, dev.h-PlotTop, dev.PlotBG)
}

func (dev *Device) plotY(v int32) int16 {
	if v < dev.ymin {
		v = dev.ymin
	}
	if v > dev.ymax {
		v = dev.ymax
	}
	span := dev.ymax - dev.ymin
	height := int32(dev.h - PlotTop - pointSize)
	if span <= 0 || height <= 0 {
		return dev.h - pointSize
	}
	return PlotTop + int16(height*(dev.ymax-v)/span)
}

// Flush pushes buffered pixels to the panel.
func (dev *Device) Flush() error {
	return dev.d.Display()
}

func (dev *Device) fillRect(x, y, width, height int16, c color.RGBA) {
	if dev.fill != nil {
		_ = dev.fill.FillRectangle(x, y, width, height, c)
		return
	}
	x1 := x + width
	y1 := y + height
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x1 > dev.w {
		x1 = dev.w
	}
	if y1 > dev.h {
		y1 = dev.h
	}
	for py := y; py < y1; py++ {
		for px := x; px < x1; px++ {
			dev.d.SetPixel(px, py, c)
		}
	}
}
