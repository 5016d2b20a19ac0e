//go:build !tinygo

package pixsketch

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// OpenExport opens the output exported sketches are written to: the
// configured serial device, or stdout if there is none. The caller must
// close it.
func OpenExport(cfg ExportConfig) (io.WriteCloser, error) {
	if cfg.Device == "" {
		return nopCloser{os.Stdout}, nil
	}

	port, err := serial.Open(cfg.Device, &serial.Mode{
		BaudRate: cfg.Baud,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open serial port")
	}

	return port, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
