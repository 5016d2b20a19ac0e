//go:build rp2040

package main

import (
	"machine"
	"runtime/interrupt"

	"libdb.so/pixsketch"
	"tinygo.org/x/drivers/ssd1306"
)

// display pushes frames with interrupts off so the timer goroutines cannot
// split an I2C transfer.
type display struct {
	*ssd1306.Device
}

func (d display) Display() error {
	var err error
	critical(func() { err = d.Device.Display() })
	return err
}

// buttons debounces the pull-up button pins.
type buttons struct {
	pins [pixsketch.NumButtons]machine.Pin
	deb  pixsketch.Debouncer
}

func newButtons(pins [pixsketch.NumButtons]machine.Pin) *buttons {
	for _, pin := range pins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return &buttons{pins: pins}
}

func (b *buttons) Poll() pixsketch.ButtonEvent {
	var levels [pixsketch.NumButtons]bool
	for i, pin := range b.pins {
		levels[i] = !pin.Get()
	}
	return b.deb.Update(levels)
}

// knob reads the potentiometer as a 10-bit value.
type knob struct {
	adc machine.ADC
	raw uint16
}

func newKnob(pin machine.Pin) *knob {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &knob{adc: adc}
}

func (k *knob) Changed() bool {
	raw := k.adc.Get() >> 6
	if raw == k.raw {
		return false
	}
	k.raw = raw
	return true
}

func (k *knob) Read() uint16 { return k.raw }

// exportSwitch is on while its pin is pulled low.
type exportSwitch machine.Pin

func newExportSwitch(pin machine.Pin) exportSwitch {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return exportSwitch(pin)
}

func (s exportSwitch) Get() bool { return !machine.Pin(s).Get() }

func critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
