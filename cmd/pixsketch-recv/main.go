// Command pixsketch-recv listens on a serial port for sketches exported by a
// board and prints each one as it arrives.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"
	"libdb.so/pixsketch/matrix"
)

var (
	device  = "/dev/ttyUSB0"
	baud    = 115200
	art     = false
	verbose = false
)

func init() {
	pflag.StringVarP(&device, "device", "d", device, "serial device")
	pflag.IntVarP(&baud, "baud", "b", baud, "baud rate")
	pflag.BoolVarP(&art, "art", "a", art, "print sketches as ASCII art instead of literals")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open serial port")
	}
	defer port.Close()

	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		return errors.Wrap(err, "failed to reset read timeout")
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		<-ctx.Done()
		slog.Debug("closing serial port")
		if err := port.Close(); err != nil {
			return errors.Wrap(err, "failed to close serial port")
		}
		return ctx.Err()
	})
	errg.Go(func() error {
		err := receive(port, os.Stdout)
		if ctx.Err() != nil {
			// Closing the port ends the read with an error.
			return ctx.Err()
		}
		return err
	})

	return errg.Wait()
}

// receive prints every sketch read from r to w until r ends.
func receive(r io.Reader, w io.Writer) error {
	s := matrix.NewScanner(r)

	for n := 1; s.Scan(); n++ {
		b := s.Bitmap()

		slog.Info(
			"received sketch",
			"n", n,
			"pixels", b.Count(),
			"skipped", s.Skipped())

		var err error
		if art {
			_, err = fmt.Fprintln(w, b.String())
		} else {
			err = matrix.Write(w, &b)
		}
		if err != nil {
			return errors.Wrap(err, "failed to print sketch")
		}
	}

	if err := s.Err(); err != nil {
		return errors.Wrap(err, "failed to read sketch")
	}

	// The port closed on its own.
	return errors.New("serial port closed")
}
