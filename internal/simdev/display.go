// Package simdev provides in-memory devices for running the sketcher on a
// host without hardware.
package simdev

import (
	"image/color"
	"sync"

	"libdb.so/pixsketch"
)

// Display is a monochrome framebuffer. SetPixel draws into a back buffer that
// Display copies to the shown frame, like a real display controller.
type Display struct {
	mu      sync.Mutex
	w, h    int16
	back    []bool
	shown   []bool
	updates int
	err     error
}

var _ pixsketch.Display = (*Display)(nil)

// NewDisplay creates a blank display of w×h pixels.
func NewDisplay(w, h int16) *Display {
	return &Display{
		w:     w,
		h:     h,
		back:  make([]bool, int(w)*int(h)),
		shown: make([]bool, int(w)*int(h)),
	}
}

// Size implements pixsketch.Display.
func (d *Display) Size() (x, y int16) { return d.w, d.h }

// SetPixel implements pixsketch.Display. Pixels outside the display are
// ignored. Any color other than black lights the pixel.
func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}

	d.mu.Lock()
	d.back[int(y)*int(d.w)+int(x)] = c.R|c.G|c.B != 0
	d.mu.Unlock()
}

// Display implements pixsketch.Display. If an error was injected with
// FailWith, the frame is not shown and the error is returned.
func (d *Display) Display() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return d.err
	}

	copy(d.shown, d.back)
	d.updates++
	return nil
}

// FailWith makes every following Display call fail with err. A nil err
// restores normal operation.
func (d *Display) FailWith(err error) {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

// Pixel reports whether the shown pixel at (x, y) is lit.
func (d *Display) Pixel(x, y int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown[y*int(d.w)+x]
}

// Updates returns the number of frames shown so far.
func (d *Display) Updates() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updates
}

// AcquireFrame passes the shown frame, row by row, to f. f must not keep the
// slice after it returns.
func (d *Display) AcquireFrame(f func(w, h int, pix []bool)) {
	d.mu.Lock()
	f(int(d.w), int(d.h), d.shown)
	d.mu.Unlock()
}

// Width implements matrix.Getter over the shown frame.
func (d *Display) Width() int { return int(d.w) }

// Height implements matrix.Getter over the shown frame.
func (d *Display) Height() int { return int(d.h) }

// Get implements matrix.Getter over the shown frame.
func (d *Display) Get(x, y int) bool { return d.Pixel(x, y) }
