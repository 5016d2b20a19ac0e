//go:build rp2040

package main

import "machine"

// Pin assignments for a Seeed XIAO RP2040.
var (
	DisplaySDA = machine.GPIO6
	DisplaySCL = machine.GPIO7

	// Buttons 1 to 4, wired to ground.
	ButtonPins = [4]machine.Pin{
		machine.GPIO0,
		machine.GPIO1,
		machine.GPIO2,
		machine.GPIO4,
	}

	// ExportPin is the export switch, wired to ground when on.
	ExportPin = machine.GPIO3

	KnobPin = machine.ADC0 // GPIO26

	DisplayWidth  int16 = 128
	DisplayHeight int16 = 32
)
