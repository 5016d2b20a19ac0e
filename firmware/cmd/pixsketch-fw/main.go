//go:build rp2040

package main

import (
	"context"
	"fmt"
	"log/slog"
	"machine"
	"time"

	"libdb.so/pixsketch"
	"tinygo.org/x/drivers/ssd1306"
)

func main() {
	machine.InitADC()

	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       DisplaySDA,
		SCL:       DisplaySCL,
	})
	// The display needs a moment after a cold boot.
	time.Sleep(100 * time.Millisecond)

	oled := ssd1306.NewI2C(machine.I2C0)
	oled.Configure(ssd1306.Config{
		Address:  ssd1306.Address_128_32,
		Width:    DisplayWidth,
		Height:   DisplayHeight,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	oled.ClearDisplay()

	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	s, err := pixsketch.NewSketcher(pixsketch.Devices{
		Display: display{&oled},
		Buttons: newButtons(ButtonPins),
		Analog:  newKnob(KnobPin),
		Export:  newExportSwitch(ExportPin),
		Output:  machine.Serial,
	}, logger)
	if err != nil {
		halt(err)
	}

	halt(s.Run(context.Background(), pixsketch.DefaultConfig().Timing))
}

// halt reports err over serial forever.
func halt(err error) {
	for range time.Tick(time.Second) {
		fmt.Fprintln(machine.Serial, "pixsketch:", err)
	}
}
