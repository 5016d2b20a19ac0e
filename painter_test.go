package pixsketch

import (
	"bytes"
	"image/color"
	"io"
	"log/slog"
	"strings"
	"testing"

	"libdb.so/pixsketch/internal/grid"
)

type recordingDisplay struct {
	w, h    int16
	pixels  map[grid.Point]color.RGBA
	updates int
}

func (d *recordingDisplay) Size() (x, y int16) { return d.w, d.h }
func (d *recordingDisplay) Display() error     { d.updates++; return nil }

func (d *recordingDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.pixels[grid.Point{X: int(x), Y: int(y)}] = c
}

func newTestPainter(export Switch, out io.Writer) (*Painter, *recordingDisplay) {
	g := grid.New(20, 20)
	d := &recordingDisplay{w: 20, h: 20, pixels: map[grid.Point]color.RGBA{}}
	return &Painter{
		grid:    g,
		cursor:  grid.NewCursor(g),
		display: d,
		export:  export,
		out:     out,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, d
}

func TestPainterModes(t *testing.T) {
	tests := []struct {
		name  string
		start bool
		mode  Mode
		want  bool
	}{
		{"set off", false, ModeSet, true},
		{"set on", true, ModeSet, true},
		{"reset off", false, ModeReset, false},
		{"reset on", true, ModeReset, false},
		{"toggle off", false, ModeToggle, true},
		{"toggle on", true, ModeToggle, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, d := newTestPainter(nil, nil)
			p.cursor.Place(grid.Point{X: 4, Y: 7})
			p.grid.Set(4, 7, tt.start)

			if got := p.Apply(tt.mode); got != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", tt.mode, got, tt.want)
			}
			if got := p.grid.Get(4, 7); got != tt.want {
				t.Errorf("buffer = %v, want %v", got, tt.want)
			}

			wantColor := ColorOff
			if tt.want {
				wantColor = ColorOn
			}
			if got := d.pixels[grid.Point{X: 4, Y: 7}]; got != wantColor {
				t.Errorf("display color = %v, want %v", got, wantColor)
			}
			if d.updates != 1 {
				t.Errorf("display updated %d times, want 1", d.updates)
			}
			if len(d.pixels) != 1 {
				t.Errorf("touched %d display pixels, want 1", len(d.pixels))
			}
		})
	}
}

func TestPainterToggleTwiceRestores(t *testing.T) {
	for _, start := range []bool{false, true} {
		p, _ := newTestPainter(nil, nil)
		p.grid.Set(0, 0, start)

		p.Apply(ModeToggle)
		p.Apply(ModeToggle)

		if got := p.grid.Get(0, 0); got != start {
			t.Errorf("start %v: toggle twice gave %v", start, got)
		}
	}
}

func TestPainterSetThenReset(t *testing.T) {
	for _, start := range []bool{false, true} {
		p, _ := newTestPainter(nil, nil)
		p.grid.Set(0, 0, start)

		p.Apply(ModeSet)
		p.Apply(ModeReset)

		if p.grid.Get(0, 0) {
			t.Errorf("start %v: pixel still on after set, reset", start)
		}
	}
}

func TestPainterExport(t *testing.T) {
	var out bytes.Buffer
	p, _ := newTestPainter(StaticSwitch(true), &out)
	p.cursor.Place(grid.Point{X: 0, Y: 1})

	p.Apply(ModeSet)
	p.Apply(ModeSet)

	exports := strings.Split(strings.TrimPrefix(out.String(), "\n\n"), "\n\n")
	if len(exports) != 2 {
		t.Fatalf("got %d exports, want 2", len(exports))
	}
	if !strings.HasPrefix(exports[0], `"{ {0, 1, 0,`) {
		t.Errorf("unexpected export %q", exports[0][:20])
	}
}

func TestPainterInvalidMode(t *testing.T) {
	p, _ := newTestPainter(nil, nil)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid mode")
		}
	}()
	p.Apply(Mode(3))
}
