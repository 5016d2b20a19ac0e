package pixsketch

import (
	"image/color"
	"io"

	"github.com/pkg/errors"
)

// Display is the pixel display the sketch is mirrored to. Its shape matches
// the displayer interface of the TinyGo drivers, so an SSD1306 device from
// tinygo.org/x/drivers can be used as is.
type Display interface {
	// Size returns the display size in pixels.
	Size() (x, y int16)
	// SetPixel sets a pixel in the display buffer.
	SetPixel(x, y int16, c color.RGBA)
	// Display pushes the buffer to the physical display.
	Display() error
}

// Buttons is the debounced button pad.
type Buttons interface {
	// Poll returns the next button transition, or EventNone. It is called
	// once per fast tick.
	Poll() ButtonEvent
}

// Analog is the potentiometer input.
type Analog interface {
	// Changed reports whether the raw reading changed since the last call.
	Changed() bool
	// Read returns the current raw reading.
	Read() uint16
}

// Switch is an on/off input. A TinyGo machine.Pin implements it.
type Switch interface {
	Get() bool
}

// StaticSwitch is a Switch that never moves.
type StaticSwitch bool

// Get implements Switch.
func (s StaticSwitch) Get() bool { return bool(s) }

// Colors used for lit and dark pixels.
var (
	ColorOn  = color.RGBA{255, 255, 255, 255}
	ColorOff = color.RGBA{0, 0, 0, 255}
)

// Devices bundles the collaborators a Sketcher drives.
type Devices struct {
	Display Display
	Buttons Buttons
	Analog  Analog
	// Export is the export switch. If nil, the sketch is never exported.
	Export Switch
	// Output receives exported sketches. It is required if Export is set.
	Output io.Writer
}

// Validate checks that all required devices are present.
func (d Devices) Validate() error {
	switch {
	case d.Display == nil:
		return errors.New("missing display")
	case d.Buttons == nil:
		return errors.New("missing buttons")
	case d.Analog == nil:
		return errors.New("missing analog input")
	case d.Export != nil && d.Output == nil:
		return errors.New("export switch given without an output")
	}

	w, h := d.Display.Size()
	if w <= 0 || h <= 0 {
		return errors.Errorf("invalid display size %dx%d", w, h)
	}

	return nil
}
