package simdev

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"libdb.so/pixsketch"
)

// Board is a complete set of in-memory devices.
type Board struct {
	Display *Display
	Buttons *EventQueue
	Knob    *Knob
	Switch  *Switch
}

// NewBoard creates a board with a w×h display.
func NewBoard(w, h int16) *Board {
	return &Board{
		Display: NewDisplay(w, h),
		Buttons: &EventQueue{},
		Knob:    &Knob{},
		Switch:  &Switch{},
	}
}

// Devices returns the board devices, exporting sketches to out.
func (b *Board) Devices(out io.Writer) pixsketch.Devices {
	return pixsketch.Devices{
		Display: b.Display,
		Buttons: b.Buttons,
		Analog:  b.Knob,
		Export:  b.Switch,
		Output:  out,
	}
}

// Console drives a Board from a line-based script. Each line is one command:
//
//	down N          press button N
//	up N            release button N
//	press N [D]     press button N, hold it for duration D, release it
//	knob V          turn the knob to V
//	turn D          turn the knob by D
//	export on|off   set the export switch
//	clear           turn every pixel off
//	place X Y       move the cursor to (X, Y)
//	wait D          sleep for duration D
//	dump            wait until the sketcher handled everything, then print
//	                the display
//	quit            stop reading
//
// Empty lines and lines starting with # are ignored.
type Console struct {
	board  *Board
	sketch Sketch
	out    io.Writer
	logger *slog.Logger
}

// Sketch is the sketcher running on the board. *pixsketch.Sketcher
// implements it.
type Sketch interface {
	Idle() bool
	Clear()
	Place(x, y int) error
}

// NewConsole creates a console for the sketch running on board. dump writes
// to out.
func NewConsole(board *Board, sketch Sketch, out io.Writer, logger *slog.Logger) *Console {
	return &Console{
		board:  board,
		sketch: sketch,
		out:    out,
		logger: logger,
	}
}

var errQuit = errors.New("quit")

// Run executes commands from r until r ends, a quit command is read or the
// context is canceled. Invalid commands are logged and skipped.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		err := c.exec(ctx, strings.Fields(text))
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			c.logger.Warn(
				"skipping invalid command",
				"line", line,
				"command", text,
				"error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read script")
	}

	return nil
}

func (c *Console) exec(ctx context.Context, args []string) error {
	c.logger.Debug("running command", "args", args)

	switch cmd := args[0]; cmd {
	case "down", "up":
		button, err := buttonArg(args)
		if err != nil {
			return err
		}
		c.board.Buttons.Push(pixsketch.MakeButtonEvent(button, cmd == "down"))

	case "press":
		button, err := buttonArg(args)
		if err != nil {
			return err
		}
		var hold time.Duration
		if len(args) > 2 {
			if hold, err = time.ParseDuration(args[2]); err != nil {
				return errors.Wrap(err, "invalid hold duration")
			}
		}
		c.board.Buttons.Push(pixsketch.MakeButtonEvent(button, true))
		if err := sleep(ctx, hold); err != nil {
			return err
		}
		c.board.Buttons.Push(pixsketch.MakeButtonEvent(button, false))

	case "knob", "turn":
		if len(args) != 2 {
			return errors.Errorf("%s needs one value", cmd)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "invalid knob value")
		}
		if cmd == "knob" {
			c.board.Knob.Set(v)
		} else {
			c.board.Knob.Turn(v)
		}

	case "export":
		if len(args) != 2 {
			return errors.New("export needs on or off")
		}
		switch args[1] {
		case "on":
			c.board.Switch.Set(true)
		case "off":
			c.board.Switch.Set(false)
		default:
			return errors.Errorf("invalid export position %q", args[1])
		}

	case "wait":
		if len(args) != 2 {
			return errors.New("wait needs a duration")
		}
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return errors.Wrap(err, "invalid wait duration")
		}
		return sleep(ctx, d)

	case "clear":
		c.sketch.Clear()

	case "place":
		if len(args) != 3 {
			return errors.New("place needs x and y")
		}
		x, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "invalid x")
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.Wrap(err, "invalid y")
		}
		return c.sketch.Place(x, y)

	case "dump":
		if err := c.settle(ctx); err != nil {
			return err
		}
		return WriteArt(c.out, c.board.Display)

	case "quit":
		return errQuit

	default:
		return errors.Errorf("unknown command %q", cmd)
	}

	return nil
}

// settle waits until the button queue is empty and the sketcher is idle.
// The fast tick polls the queue before it fills the mailbox, so one idle
// sample can fall between the two; two in a row cannot.
func (c *Console) settle(ctx context.Context) error {
	for quiet := 0; quiet < 2; {
		if c.board.Buttons.Len() == 0 && c.sketch.Idle() {
			quiet++
		} else {
			quiet = 0
		}
		if err := sleep(ctx, time.Millisecond); err != nil {
			return err
		}
	}
	return nil
}

func buttonArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, errors.Errorf("%s needs a button number", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > pixsketch.NumButtons {
		return 0, errors.Errorf("invalid button %q", args[1])
	}
	return n, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WriteArt writes the shown frame of d as ASCII art, '#' for lit pixels.
func WriteArt(w io.Writer, d *Display) error {
	var b strings.Builder
	d.AcquireFrame(func(width, height int, pix []bool) {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if pix[y*width+x] {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			b.WriteByte('\n')
		}
	})

	if _, err := fmt.Fprint(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write display")
	}
	return nil
}
