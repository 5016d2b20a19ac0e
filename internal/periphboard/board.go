// Package periphboard runs the sketcher on a Linux single board computer
// through periph.io: an SSD1306 OLED and an ADS1115 converter on I2C, and
// GPIO buttons wired active low.
package periphboard

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"libdb.so/pixsketch"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// analogPeriod is the minimum time between two converter reads.
const analogPeriod = 10 * time.Millisecond

// Board is the set of devices on the computer.
type Board struct {
	logger *slog.Logger
	bus    i2c.BusCloser

	display *ssd1306.Dev
	frame   *image1bit.VerticalLSB

	buttons [pixsketch.NumButtons]gpio.PinIO
	deb     pixsketch.Debouncer
	export  gpio.PinIO

	adc      analog.PinADC
	mu       sync.Mutex
	lastRead time.Time
	raw      uint16
}

// Open initializes the host drivers and opens all devices.
func Open(cfg pixsketch.PeriphConfig, w, h int, logger *slog.Logger) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize periph host")
	}

	bus, err := i2creg.Open(cfg.I2C)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open I2C bus")
	}

	b := &Board{logger: logger, bus: bus}
	if err := b.open(cfg, w, h); err != nil {
		b.Close()
		return nil, err
	}

	return b, nil
}

func (b *Board) open(cfg pixsketch.PeriphConfig, w, h int) error {
	display, err := ssd1306.NewI2C(b.bus, &ssd1306.Opts{W: w, H: h})
	if err != nil {
		return errors.Wrap(err, "failed to open SSD1306")
	}
	b.display = display
	b.frame = image1bit.NewVerticalLSB(display.Bounds())

	if len(cfg.Buttons) != pixsketch.NumButtons {
		return errors.Errorf("need %d button pins, got %d", pixsketch.NumButtons, len(cfg.Buttons))
	}
	for i, name := range cfg.Buttons {
		pin, err := inputPin(name)
		if err != nil {
			return errors.Wrapf(err, "button %d", i+1)
		}
		b.buttons[i] = pin
	}

	if cfg.Switch != "" {
		pin, err := inputPin(cfg.Switch)
		if err != nil {
			return errors.Wrap(err, "export switch")
		}
		b.export = pin
	}

	adc, err := ads1x15.NewADS1115(b.bus, &ads1x15.DefaultOpts)
	if err != nil {
		return errors.Wrap(err, "failed to open ADS1115")
	}
	pin, err := adc.PinForChannel(ads1x15.Channel0, 5*physic.Volt, 1*physic.KiloHertz, ads1x15.BestQuality)
	if err != nil {
		return errors.Wrap(err, "failed to open ADS1115 channel 0")
	}
	b.adc = pin

	return nil
}

func inputPin(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errors.Errorf("GPIO pin %s not found", name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, errors.Wrapf(err, "failed to configure %s", name)
	}
	return pin, nil
}

// Close releases all devices. It tries every device and returns the first
// error.
func (b *Board) Close() error {
	var errs []error
	if b.adc != nil {
		if err := b.adc.Halt(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to halt ADS1115"))
		}
	}
	if b.display != nil {
		if err := b.display.Halt(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to halt SSD1306"))
		}
	}
	if err := b.bus.Close(); err != nil {
		errs = append(errs, errors.Wrap(err, "failed to close I2C bus"))
	}

	for _, err := range errs {
		b.logger.Warn(
			"failed to release device",
			"error", err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Devices returns the board devices, exporting sketches to out. Without an
// export switch pin, the export follows enabled.
func (b *Board) Devices(out io.Writer, enabled bool) pixsketch.Devices {
	var export pixsketch.Switch = pixsketch.StaticSwitch(enabled)
	if b.export != nil {
		export = exportSwitch{b.export}
	}

	return pixsketch.Devices{
		Display: (*boardDisplay)(b),
		Buttons: (*boardButtons)(b),
		Analog:  (*boardAnalog)(b),
		Export:  export,
		Output:  out,
	}
}

type boardDisplay Board

func (d *boardDisplay) Size() (x, y int16) {
	r := d.frame.Bounds()
	return int16(r.Dx()), int16(r.Dy())
}

func (d *boardDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.frame.SetBit(int(x), int(y), image1bit.Bit(c.R|c.G|c.B != 0))
}

func (d *boardDisplay) Display() error {
	return d.display.Draw(d.frame.Bounds(), d.frame, image.Point{})
}

type boardButtons Board

func (bb *boardButtons) Poll() pixsketch.ButtonEvent {
	var levels [pixsketch.NumButtons]bool
	for i, pin := range bb.buttons {
		levels[i] = pin.Read() == gpio.Low
	}
	return bb.deb.Update(levels)
}

type boardAnalog Board

// Changed samples the converter at most once per analogPeriod.
func (a *boardAnalog) Changed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if time.Since(a.lastRead) < analogPeriod {
		return false
	}
	a.lastRead = time.Now()

	s, err := a.adc.Read()
	if err != nil {
		a.logger.Warn(
			"failed to read potentiometer",
			"error", err)
		return false
	}

	raw := uint16(max(s.Raw, 0))
	if raw == a.raw {
		return false
	}
	a.raw = raw
	return true
}

func (a *boardAnalog) Read() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.raw
}

// exportSwitch reads an active low switch.
type exportSwitch struct{ pin gpio.PinIO }

func (s exportSwitch) Get() bool { return s.pin.Read() == gpio.Low }
