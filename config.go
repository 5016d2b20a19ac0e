package pixsketch

import (
	"encoding"
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the configuration for running the sketcher on a host.
type Config struct {
	// Width is the number of pixel columns of the display.
	Width int `toml:"width"`
	// Height is the number of pixel rows of the display.
	Height int `toml:"height"`
	// Backend selects the devices the sketcher runs on.
	Backend Backend `toml:"backend"`
	// Timing is the tick configuration.
	Timing TimingConfig `toml:"timing"`
	// Export is the configuration for the sketch export.
	Export ExportConfig `toml:"export"`
	// Window is the configuration for the window backend.
	Window WindowConfig `toml:"window"`
	// Periph is the configuration for the periph backend.
	Periph PeriphConfig `toml:"periph"`
}

// Backend is the set of devices the sketcher runs on.
type Backend string

const (
	// HeadlessBackend runs on in-memory devices driven by a script on stdin.
	HeadlessBackend Backend = "headless"
	// WindowBackend runs in a desktop window with keyboard and mouse input.
	WindowBackend Backend = "window"
	// PeriphBackend runs on a Linux board with an SSD1306 display, an
	// ADS1115 converter and GPIO buttons.
	PeriphBackend Backend = "periph"
)

// TimingConfig is the configuration for the periodic tasks.
type TimingConfig struct {
	// Fast is the button polling period.
	Fast TOMLDuration `toml:"fast"`
	// Slow is the press duration period.
	Slow TOMLDuration `toml:"slow"`
	// Loop is how long the main loop idles between iterations.
	Loop TOMLDuration `toml:"loop"`
}

// ExportConfig is the configuration for the sketch export.
type ExportConfig struct {
	// Enabled is the export switch position for backends without a switch,
	// and the initial position for the others.
	Enabled bool `toml:"enabled"`
	// Device is the serial device the export is written to. If empty, the
	// export goes to stdout.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
}

// WindowConfig is the configuration for the window backend.
type WindowConfig struct {
	// Scale is the window size in screen pixels per display pixel.
	Scale int `toml:"scale"`
}

// PeriphConfig is the configuration for the periph backend.
type PeriphConfig struct {
	// I2C is the I2C bus name. If empty, the first bus is used.
	I2C string `toml:"i2c"`
	// Buttons are the GPIO names of buttons 1 to 4.
	Buttons []string `toml:"buttons"`
	// Switch is the GPIO name of the export switch. If empty, the export
	// follows Export.Enabled.
	Switch string `toml:"switch"`
}

// DefaultConfig returns the configuration of the reference board: a 128×32
// display, a 100 Hz button poll and a 5 Hz press timer.
func DefaultConfig() *Config {
	return &Config{
		Width:   128,
		Height:  32,
		Backend: HeadlessBackend,
		Timing: TimingConfig{
			Fast: TOMLDuration(10 * time.Millisecond),
			Slow: TOMLDuration(200 * time.Millisecond),
			Loop: TOMLDuration(time.Millisecond),
		},
		Export: ExportConfig{
			Baud: 115200,
		},
		Window: WindowConfig{
			Scale: 6,
		},
		Periph: PeriphConfig{
			Buttons: []string{"GPIO17", "GPIO27", "GPIO22", "GPIO23"},
		},
	}
}

// fillDefaults sets every zero field to its default.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.Timing.Fast == 0 {
		c.Timing.Fast = def.Timing.Fast
	}
	if c.Timing.Slow == 0 {
		c.Timing.Slow = def.Timing.Slow
	}
	if c.Timing.Loop == 0 {
		c.Timing.Loop = def.Timing.Loop
	}
	if c.Export.Baud == 0 {
		c.Export.Baud = def.Export.Baud
	}
	if c.Window.Scale == 0 {
		c.Window.Scale = def.Window.Scale
	}
	if c.Periph.Buttons == nil {
		c.Periph.Buttons = def.Periph.Buttons
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid display size %dx%d", c.Width, c.Height)
	}
	if c.Width > 1<<15-1 || c.Height > 1<<15-1 {
		return errors.Errorf("display size %dx%d is too large", c.Width, c.Height)
	}

	switch c.Backend {
	case HeadlessBackend, WindowBackend:
	case PeriphBackend:
		if len(c.Periph.Buttons) != NumButtons {
			return errors.Errorf("periph backend needs %d buttons, got %d",
				NumButtons, len(c.Periph.Buttons))
		}
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}

	if err := c.Timing.Validate(); err != nil {
		return errors.Wrap(err, "invalid timing")
	}

	if c.Export.Device != "" && c.Export.Baud <= 0 {
		return errors.Errorf("invalid export baud rate %d", c.Export.Baud)
	}

	if c.Window.Scale <= 0 {
		return errors.Errorf("invalid window scale %d", c.Window.Scale)
	}

	return nil
}

// Validate validates the timing configuration.
func (t TimingConfig) Validate() error {
	if t.Fast <= 0 || t.Slow <= 0 || t.Loop <= 0 {
		return errors.New("periods must be positive")
	}
	if t.Fast >= t.Slow {
		return errors.Errorf("fast period %s must be shorter than slow period %s", t.Fast, t.Slow)
	}
	return nil
}

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d TOMLDuration) String() string {
	return time.Duration(d).String()
}

// ParseConfig parses a configuration from a reader. Missing fields take
// their default values.
func ParseConfig(r io.Reader) (*Config, error) {
	var config Config
	if err := toml.NewDecoder(r).Decode(&config); err != nil {
		return nil, err
	}
	config.fillDefaults()
	return &config, nil
}
