// Package pixsketch implements an interactive pixel sketcher for small
// monochrome displays. A cursor is moved over the display with four buttons,
// pixels are toggled with a long press, and a potentiometer paints runs of
// pixels while a button is held. The sketch can be exported as a literal
// for pasting into source code.
package pixsketch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"libdb.so/pixsketch/internal/grid"
)

const (
	// LongPress is the number of slow ticks after which a held button counts
	// as a long press.
	LongPress = 2
	// AnalogBuffer is how far the analog reading must move before it counts
	// as a change.
	AnalogBuffer = 3
)

// Axis is the axis the potentiometer slides the cursor along.
type Axis uint8

const (
	AxisX Axis = iota // horizontal
	AxisY             // vertical
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", a)
	}
}

// Sketcher is the sketcher control loop. FastTick and SlowTick are meant to
// be called from periodic tasks or timer interrupts, and Clear, Place and
// Idle from any goroutine; every other method must be called from the
// goroutine running the main loop.
type Sketcher struct {
	dev    Devices
	logger *slog.Logger
	state  State

	grid    *grid.Grid
	cursor  *grid.Cursor
	painter Painter

	held [NumButtons + 1]bool // 1-based, only buttons 2 and 3 are tracked
	axis Axis

	analogRef uint16    // last reading that passed the buffer
	samples   [2]uint16 // previous, new

	// Requests from other goroutines, applied by the main loop.
	clearReq atomic.Bool
	placeReq atomic.Pointer[grid.Point]
}

const (
	samplePrevious = iota
	sampleNew
)

// NewSketcher creates a new sketcher over the given devices. The pixel
// buffer takes the size of the display. A nil logger discards all logs.
func NewSketcher(dev Devices, logger *slog.Logger) (*Sketcher, error) {
	if err := dev.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid devices")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w, h := dev.Display.Size()
	g := grid.New(int(w), int(h))
	c := grid.NewCursor(g)

	return &Sketcher{
		dev:    dev,
		logger: logger,
		grid:   g,
		cursor: c,
		painter: Painter{
			grid:    g,
			cursor:  c,
			display: dev.Display,
			export:  dev.Export,
			out:     dev.Output,
			logger:  logger,
		},
	}, nil
}

// FastTick polls the buttons and leaves any event in the mailbox for the
// main loop.
func (s *Sketcher) FastTick() {
	s.state.Deposit(s.dev.Buttons.Poll())
}

// SlowTick advances the press duration counter.
func (s *Sketcher) SlowTick() {
	s.state.Tick()
}

// Step runs one iteration of the main loop. It never blocks.
func (s *Sketcher) Step() {
	// Requests are dropped only once applied, so Idle stays false meanwhile.
	if s.clearReq.Load() {
		s.clear()
		s.clearReq.Store(false)
	}
	if p := s.placeReq.Load(); p != nil {
		s.cursor.Place(*p)
		s.logger.Debug("placed cursor", "pos", *p)
		s.placeReq.CompareAndSwap(p, nil)
	}

	if s.analogChanged() && (s.held[3] || s.held[2]) {
		s.slide()
	}

	if ev := s.state.Pending(); ev != EventNone {
		s.handleEvent(ev)
		s.state.Drain(ev)
	}
}

// analogChanged reports whether the analog reading moved further than
// AnalogBuffer from the last reading that did.
func (s *Sketcher) analogChanged() bool {
	if !s.dev.Analog.Changed() {
		return false
	}

	v := s.dev.Analog.Read()
	if delta := int(s.analogRef) - int(v); delta > AnalogBuffer || delta < -AnalogBuffer {
		s.analogRef = v
		s.samples[sampleNew] = v
		return true
	}

	return false
}

// slide paints the pixel under the cursor and moves it along the slide axis
// in the direction the potentiometer turned.
func (s *Sketcher) slide() {
	if s.held[3] {
		s.painter.Apply(ModeSet)
	} else {
		s.painter.Apply(ModeReset)
	}

	forward := int(s.samples[sampleNew])-int(s.samples[samplePrevious]) > 0

	var dir grid.Direction
	switch {
	case forward && s.axis == AxisX:
		dir = grid.East
	case forward:
		dir = grid.South
	case s.axis == AxisX:
		dir = grid.West
	default:
		dir = grid.North
	}

	s.move(dir)
	s.samples[samplePrevious] = s.samples[sampleNew]
}

func (s *Sketcher) handleEvent(ev ButtonEvent) {
	short := s.state.PressTicks() < LongPress

	s.logger.Debug(
		"handling button event",
		"event", ev,
		"press_ticks", s.state.PressTicks())

	switch ev {
	case Button4Down:
		s.state.ResetPress()
	case Button4Up:
		if short {
			s.move(grid.North)
		} else {
			s.painter.Apply(ModeToggle)
		}

	case Button3Down:
		s.state.ResetPress()
		s.held[3] = true
	case Button3Up:
		if short {
			s.move(grid.East)
		}
		s.held[3] = false

	case Button2Down:
		s.state.ResetPress()
		s.held[2] = true
	case Button2Up:
		if short {
			s.move(grid.South)
		}
		s.held[2] = false

	case Button1Down:
		s.state.ResetPress()
	case Button1Up:
		if short {
			s.move(grid.West)
		} else {
			s.flipAxis()
		}

	default:
		panic("invalid button event " + ev.String())
	}
}

func (s *Sketcher) move(dir grid.Direction) {
	s.cursor.Move(dir)
	s.logger.Debug(
		"moved cursor",
		"direction", dir,
		"pos", s.cursor.Pos())
}

func (s *Sketcher) flipAxis() {
	if s.axis == AxisX {
		s.axis = AxisY
	} else {
		s.axis = AxisX
	}
	s.logger.Debug("flipped slide axis", "axis", s.axis)
}

// Clear asks the main loop to turn every pixel off. It is safe to call from
// any goroutine.
func (s *Sketcher) Clear() {
	s.clearReq.Store(true)
}

// Place asks the main loop to move the cursor to (x, y). It is safe to call
// from any goroutine.
func (s *Sketcher) Place(x, y int) error {
	p := grid.Point{X: x, Y: y}
	if !s.grid.Contains(p) {
		return errors.Errorf("%v is outside the %dx%d display", p, s.grid.Width(), s.grid.Height())
	}
	s.placeReq.Store(&p)
	return nil
}

// Idle reports whether the main loop has nothing left to handle: no event
// in the mailbox and no pending Clear or Place. It is safe to call from any
// goroutine.
func (s *Sketcher) Idle() bool {
	return s.state.Pending() == EventNone && !s.clearReq.Load() && s.placeReq.Load() == nil
}

func (s *Sketcher) clear() {
	s.grid.Clear()
	for x := 0; x < s.grid.Width(); x++ {
		for y := 0; y < s.grid.Height(); y++ {
			s.dev.Display.SetPixel(int16(x), int16(y), ColorOff)
		}
	}
	if err := s.dev.Display.Display(); err != nil {
		s.logger.Warn(
			"failed to update display",
			"error", err)
	}
	s.logger.Debug("cleared sketch")
}

// Cursor returns the cursor position.
func (s *Sketcher) Cursor() grid.Point { return s.cursor.Pos() }

// Axis returns the current slide axis.
func (s *Sketcher) Axis() Axis { return s.axis }

// Pixel returns the state of the pixel at (x, y) in the pixel buffer.
func (s *Sketcher) Pixel(x, y int) bool { return s.grid.Get(x, y) }

// Run starts the sketcher. The button poll runs every fast period, the press
// timer every slow period, and the main loop idles for the loop period
// between iterations. It blocks until the given context is canceled.
func (s *Sketcher) Run(ctx context.Context, timing TimingConfig) error {
	if err := timing.Validate(); err != nil {
		return errors.Wrap(err, "invalid timing")
	}

	s.logger.Debug(
		"starting sketcher",
		"width", s.grid.Width(),
		"height", s.grid.Height(),
		"fast", timing.Fast,
		"slow", timing.Slow)

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return RunPeriodic(ctx, time.Duration(timing.Fast), s.FastTick)
	})
	errg.Go(func() error {
		return RunPeriodic(ctx, time.Duration(timing.Slow), s.SlowTick)
	})
	errg.Go(func() error {
		return RunPeriodic(ctx, time.Duration(timing.Loop), s.Step)
	})

	return errg.Wait()
}

// RunPeriodic calls f every period until the context is canceled, then
// returns the context error.
func RunPeriodic(ctx context.Context, period time.Duration, f func()) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f()
		}
	}
}
