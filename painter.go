package pixsketch

import (
	"fmt"
	"io"
	"log/slog"

	"libdb.so/pixsketch/internal/grid"
	"libdb.so/pixsketch/matrix"
)

// Mode is how Painter.Apply changes the pixel under the cursor.
type Mode uint8

const (
	ModeSet Mode = iota
	ModeReset
	ModeToggle
)

func (m Mode) String() string {
	switch m {
	case ModeSet:
		return "set"
	case ModeReset:
		return "reset"
	case ModeToggle:
		return "toggle"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Painter changes pixels under the cursor and keeps the display in sync with
// the pixel buffer.
type Painter struct {
	grid    *grid.Grid
	cursor  *grid.Cursor
	display Display
	export  Switch
	out     io.Writer
	logger  *slog.Logger
}

// Apply changes the pixel under the cursor according to mode, mirrors it to
// the display and, if the export switch is on, writes the exported region to
// the output. It returns the new pixel value.
func (p *Painter) Apply(mode Mode) bool {
	pos := p.cursor.Pos()

	var on bool
	switch mode {
	case ModeSet:
		on = true
	case ModeReset:
		on = false
	case ModeToggle:
		on = !p.grid.Get(pos.X, pos.Y)
	default:
		panic("invalid paint mode " + mode.String())
	}

	p.grid.Set(pos.X, pos.Y, on)

	c := ColorOff
	if on {
		c = ColorOn
	}
	p.display.SetPixel(int16(pos.X), int16(pos.Y), c)
	if err := p.display.Display(); err != nil {
		p.logger.Warn(
			"failed to update display",
			"pos", pos,
			"error", err)
	}

	p.logger.Debug(
		"painted pixel",
		"mode", mode,
		"pos", pos,
		"on", on)

	if p.export != nil && p.export.Get() {
		p.exportSketch()
	}

	return on
}

func (p *Painter) exportSketch() {
	b := matrix.From(p.grid)
	if err := matrix.Write(p.out, &b); err != nil {
		p.logger.Warn(
			"failed to export sketch",
			"error", err)
	}
}
