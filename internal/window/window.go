//go:build !tinygo

// Package window runs the sketcher in a desktop window. Keys 1 to 4 are the
// buttons, the mouse wheel or the bracket keys turn the potentiometer and E
// flips the export switch.
package window

import (
	"context"
	"image"
	"io"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"libdb.so/pixsketch"
	"libdb.so/pixsketch/internal/simdev"
)

// Board is the set of devices the window drives.
type Board struct {
	Display *simdev.Display
	Buttons *simdev.Pad
	Knob    *simdev.Knob
	Switch  *simdev.Switch
}

// NewBoard creates a window board with a w×h display.
func NewBoard(w, h int16) *Board {
	return &Board{
		Display: simdev.NewDisplay(w, h),
		Buttons: &simdev.Pad{},
		Knob:    &simdev.Knob{},
		Switch:  &simdev.Switch{},
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

var buttonKeys = [pixsketch.NumButtons]ebiten.Key{
	ebiten.Key1,
	ebiten.Key2,
	ebiten.Key3,
	ebiten.Key4,
}

const (
	// wheelStep is the knob travel for one mouse wheel notch.
	wheelStep = 16
	// keyStep is the knob travel per frame while a bracket key is held.
	keyStep = 8
)

// Run opens the window and runs the sketcher through run until the window is
// closed, Escape is pressed or run fails. It must be called from the main
// goroutine.
func Run(ctx context.Context, b *Board, scale int, logger *slog.Logger, run func(context.Context) error) error {
	errg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errg.Go(func() error {
		return run(ctx)
	})

	w, h := b.Display.Size()
	ebiten.SetWindowTitle("pixsketch")
	ebiten.SetWindowSize(int(w)*scale, int(h)*scale)
	ebiten.SetTPS(60)

	g := &game{
		ctx:    ctx,
		board:  b,
		logger: logger,
		img:    image.NewRGBA(image.Rect(0, 0, int(w), int(h))),
	}

	err := ebiten.RunGame(g)
	cancel()

	if werr := errg.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
		return werr
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "window failed")
	}
	return nil
}

type game struct {
	ctx    context.Context
	board  *Board
	logger *slog.Logger
	img    *image.RGBA
	frame  *ebiten.Image
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for i, key := range buttonKeys {
		g.board.Buttons.Set(i+1, ebiten.IsKeyPressed(key))
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.board.Knob.Turn(int(dy * wheelStep))
	}
	if ebiten.IsKeyPressed(ebiten.KeyBracketRight) {
		g.board.Knob.Turn(keyStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyBracketLeft) {
		g.board.Knob.Turn(-keyStep)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		on := g.board.Switch.Toggle()
		g.logger.Info("export switch flipped", "on", on)
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.board.Display.AcquireFrame(func(w, h int, pix []bool) {
		dst := g.img.Pix
		for i, on := range pix {
			var v byte
			if on {
				v = 0xFF
			}
			j := i * 4
			dst[j+0] = v
			dst[j+1] = v
			dst[j+2] = v
			dst[j+3] = 0xFF
		}
	})

	if g.frame == nil {
		b := g.img.Bounds()
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(g.img.Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.img.Bounds()
	return b.Dx(), b.Dy()
}
