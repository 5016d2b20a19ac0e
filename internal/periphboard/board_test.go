package periphboard

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"libdb.so/pixsketch"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c"
)

func newPins() (*Board, [pixsketch.NumButtons]*gpiotest.Pin) {
	var b Board
	var pins [pixsketch.NumButtons]*gpiotest.Pin
	for i := range pins {
		pins[i] = &gpiotest.Pin{N: "BTN", L: gpio.High}
		b.buttons[i] = pins[i]
	}
	return &b, pins
}

func TestButtonsActiveLow(t *testing.T) {
	b, pins := newPins()
	buttons := (*boardButtons)(b)

	pins[1].L = gpio.Low

	var events []pixsketch.ButtonEvent
	for i := 0; i < pixsketch.DebounceSamples; i++ {
		if ev := buttons.Poll(); ev != pixsketch.EventNone {
			events = append(events, ev)
		}
	}
	if len(events) != 1 || events[0] != pixsketch.Button2Down {
		t.Fatalf("got events %v, want [btn2-down]", events)
	}

	pins[1].L = gpio.High
	events = events[:0]
	for i := 0; i < pixsketch.DebounceSamples; i++ {
		if ev := buttons.Poll(); ev != pixsketch.EventNone {
			events = append(events, ev)
		}
	}
	if len(events) != 1 || events[0] != pixsketch.Button2Up {
		t.Fatalf("got events %v, want [btn2-up]", events)
	}
}

func TestExportSwitch(t *testing.T) {
	b, _ := newPins()

	if got := b.Devices(nil, true).Export.Get(); !got {
		t.Error("static export switch should follow the config")
	}

	pin := &gpiotest.Pin{N: "SW", L: gpio.High}
	b.export = pin
	sw := b.Devices(nil, true).Export

	if sw.Get() {
		t.Error("switch pin high should read as off")
	}
	pin.L = gpio.Low
	if !sw.Get() {
		t.Error("switch pin low should read as on")
	}
}

type haltADC struct {
	analog.PinADC
	err error
}

func (a haltADC) Halt() error { return a.err }

type closeBus struct {
	i2c.BusCloser
	closed bool
	err    error
}

func (b *closeBus) Close() error {
	b.closed = true
	return b.err
}

func TestClose(t *testing.T) {
	adcErr := errors.New("adc stuck")
	busErr := errors.New("bus stuck")

	tests := []struct {
		name    string
		adcErr  error
		busErr  error
		wantErr error
	}{
		{"clean", nil, nil, nil},
		{"adc", adcErr, nil, adcErr},
		{"bus", nil, busErr, busErr},
		{"first wins", adcErr, busErr, adcErr},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bus := &closeBus{err: test.busErr}
			b := &Board{
				logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
				bus:    bus,
				adc:    haltADC{err: test.adcErr},
			}

			err := b.Close()
			if !errors.Is(err, test.wantErr) || (err == nil) != (test.wantErr == nil) {
				t.Errorf("Close() = %v, want %v", err, test.wantErr)
			}
			if !bus.closed {
				t.Error("bus left open")
			}
		})
	}
}
