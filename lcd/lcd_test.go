package lcd

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageDisplay struct {
	img      *image.RGBA
	displays int
}

func newImageDisplay(w, h int) *imageDisplay {
	return &imageDisplay{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (d *imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.img.SetRGBA(int(x), int(y), c)
}

func (d *imageDisplay) Display() error {
	d.displays++
	return nil
}

func (d *imageDisplay) at(x, y int) color.RGBA { return d.img.RGBAAt(x, y) }

// fillDisplay also offers the FillRectangle fast path.
type fillDisplay struct {
	*imageDisplay
	fills int
}

func (d *fillDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fills++
	for py := int(y); py < int(y+height); py++ {
		for px := int(x); px < int(x+width); px++ {
			d.img.SetRGBA(px, py, c)
		}
	}
	return nil
}

func countColor(d *imageDisplay, r image.Rectangle, c color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if d.at(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewGrid(t *testing.T) {
	dev := New(newImageDisplay(128, 160))
	cols, rows := dev.Size()
	assert.Equal(t, int16(21), cols)
	assert.Equal(t, int16(16), rows)
}

func TestFill(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.Fill(White)
	assert.Equal(t, 128*160, countColor(d, d.img.Bounds(), White))
}

func TestOutStringAdvancesCursor(t *testing.T) {
	dev := New(newImageDisplay(128, 160))

	dev.SetCursor(2, 3)
	dev.OutString("abc")
	col, row := dev.Cursor()
	assert.Equal(t, int16(5), col)
	assert.Equal(t, int16(3), row)

	dev.OutString("x\ny")
	col, row = dev.Cursor()
	assert.Equal(t, int16(1), col)
	assert.Equal(t, int16(4), row)
}

func TestOutStringWraps(t *testing.T) {
	dev := New(newImageDisplay(128, 160))

	dev.SetCursor(20, 15)
	dev.OutString("ab")
	col, row := dev.Cursor()
	assert.Equal(t, int16(1), col)
	assert.Equal(t, int16(0), row)
}

func TestSetCursorOutOfGrid(t *testing.T) {
	dev := New(newImageDisplay(128, 160))
	dev.SetCursor(4, 5)
	dev.SetCursor(21, 0)
	dev.SetCursor(0, -1)
	col, row := dev.Cursor()
	assert.Equal(t, int16(4), col)
	assert.Equal(t, int16(5), row)
}

func TestOutStringDrawsAndErases(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.Fill(Black)

	cell := image.Rect(0, 10, CharWidth*5, 20)
	dev.SetCursor(0, 1)
	dev.OutString("88888")
	require.NotZero(t, countColor(d, cell, dev.TextColor), "glyphs not drawn")

	dev.SetCursor(0, 1)
	dev.OutString("     ")
	assert.Zero(t, countColor(d, cell, dev.TextColor), "cells not erased")
}

func TestPlotClear(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.Fill(Black)
	dev.PlotNextErase()

	dev.PlotClear(0, 5000)

	assert.Equal(t, int16(0), dev.PlotX())
	area := image.Rect(0, PlotTop, 128, 160)
	assert.Equal(t, area.Dx()*area.Dy(), countColor(d, area, White))
	assert.Zero(t, countColor(d, image.Rect(0, 0, 128, PlotTop), White))
}

func TestPlotPointMapping(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.PlotClear(0, 5000)

	dev.PlotPoint(5000)
	assert.Equal(t, Blue, d.at(0, PlotTop))

	dev.PlotNextErase()
	dev.PlotPoint(0)
	assert.Equal(t, Blue, d.at(1, 159))

	dev.PlotNextErase()
	dev.PlotPoint(2500)
	col := image.Rect(2, PlotTop, 3, 160)
	require.Equal(t, pointSize, countColor(d, col, Blue))
	assert.Equal(t, Blue, d.at(2, PlotTop+63))
}

func TestPlotPointClamps(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.PlotClear(1000, 2000)

	dev.PlotPoint(9000)
	assert.Equal(t, Blue, d.at(0, PlotTop))

	dev.PlotNextErase()
	dev.PlotPoint(-5)
	assert.Equal(t, Blue, d.at(1, 159))
}

func TestPlotPointEmptyRange(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.PlotClear(100, 100)

	dev.PlotPoint(100)
	assert.Equal(t, Blue, d.at(0, 158))
}

func TestPlotNextEraseWraps(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	dev.PlotClear(0, 100)

	for i := 0; i < 127; i++ {
		dev.PlotNextErase()
	}
	assert.Equal(t, int16(127), dev.PlotX())

	dev.PlotPoint(50)
	dev.PlotNextErase()
	assert.Equal(t, int16(0), dev.PlotX())

	dev.PlotPoint(50)
	for i := 0; i < 127; i++ {
		dev.PlotNextErase()
	}
	// Landing on column 0 again erases the old sample.
	dev.PlotNextErase()
	assert.Zero(t, countColor(d, image.Rect(0, PlotTop, 1, 160), Blue))
}

func TestFillRectangleFastPath(t *testing.T) {
	d := &fillDisplay{imageDisplay: newImageDisplay(128, 160)}
	dev := New(d)

	dev.PlotClear(0, 100)
	dev.PlotPoint(100)
	dev.PlotNextErase()

	assert.Equal(t, 3, d.fills)
	assert.Equal(t, Blue, d.at(0, PlotTop))
}

func TestFlush(t *testing.T) {
	d := newImageDisplay(128, 160)
	dev := New(d)
	require.NoError(t, dev.Flush())
	assert.Equal(t, 1, d.displays)
}
