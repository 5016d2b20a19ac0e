// Package matrix implements the text export of a sketch. A sketch is
// exported as a quoted nested literal, ready to be pasted into source code:
//
//	"{ {0, 1, ...}, {1, 0, ...}, ... }"
//
// Each inner group holds one column of the sketch (fixed x, increasing y) so
// that the literal indexes the same way as the pixel buffer, [x][y].
package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Size is the width and height of the exported region.
const Size = 20

// Bitmap is an exported region, indexed [x][y].
type Bitmap [Size][Size]bool

// Getter is anything that can report pixel states over a width×height area.
type Getter interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// From copies the top-left Size×Size region of src. Cells that src does not
// cover are left off.
func From(src Getter) Bitmap {
	var b Bitmap
	w := min(src.Width(), Size)
	h := min(src.Height(), Size)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			b[x][y] = src.Get(x, y)
		}
	}
	return b
}

// Count returns the number of pixels that are on.
func (b *Bitmap) Count() int {
	var n int
	for x := range b {
		for y := range b[x] {
			if b[x][y] {
				n++
			}
		}
	}
	return n
}

// String renders the bitmap as ASCII art, one text line per y.
func (b *Bitmap) String() string {
	buf := make([]byte, 0, Size*(Size+1))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b[x][y] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// Separator is written before every literal so consecutive exports are easy
// to tell apart on a console.
const Separator = "\n\n"

// Write writes b to w as a literal, preceded by Separator.
func Write(w io.Writer, b *Bitmap) error {
	buf := make([]byte, 0, len(Separator)+4+Size*(Size*3+4))
	buf = append(buf, Separator...)
	buf = append(buf, `"{ `...)
	for x := 0; x < Size; x++ {
		buf = append(buf, '{')
		for y := 0; y < Size; y++ {
			if b[x][y] {
				buf = append(buf, '1')
			} else {
				buf = append(buf, '0')
			}
			if y != Size-1 {
				buf = append(buf, ", "...)
			}
		}
		buf = append(buf, '}')
		if x != Size-1 {
			buf = append(buf, ", "...)
		}
	}
	buf = append(buf, ` }"`...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write matrix: %w", err)
	}
	return nil
}

// Reader is a reader that can read and push back single bytes.
// *bufio.Reader implements it.
type Reader interface {
	io.Reader
	io.ByteScanner
}

var _ Reader = (*bufio.Reader)(nil)

// Read reads a single literal from r. Leading whitespace is skipped; anything
// else before the opening quote is an error.
func Read(r Reader) (Bitmap, error) {
	var b Bitmap

	c, err := skipSpace(r)
	if err != nil {
		return b, err
	}
	if c != '"' {
		return b, syntaxError("expected '\"', got %q", c)
	}
	if err := readBody(r, &b); err != nil {
		return b, err
	}
	return b, nil
}

// readBody reads everything after the opening quote.
func readBody(r Reader, b *Bitmap) error {
	if err := expect(r, '{'); err != nil {
		return err
	}

	for x := 0; x < Size; x++ {
		if x > 0 {
			if err := expect(r, ','); err != nil {
				return fmt.Errorf("column %d: %w", x, err)
			}
		}
		if err := expect(r, '{'); err != nil {
			return fmt.Errorf("column %d: %w", x, err)
		}
		for y := 0; y < Size; y++ {
			if y > 0 {
				if err := expect(r, ','); err != nil {
					return fmt.Errorf("cell %d,%d: %w", x, y, err)
				}
			}
			c, err := skipSpace(r)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", x, y, unexpectedEOF(err))
			}
			switch c {
			case '0':
				b[x][y] = false
			case '1':
				b[x][y] = true
			default:
				r.UnreadByte()
				return syntaxError("cell %d,%d: invalid value %q", x, y, c)
			}
		}
		if err := expect(r, '}'); err != nil {
			return fmt.Errorf("column %d: %w", x, err)
		}
	}

	if err := expect(r, '}'); err != nil {
		return err
	}
	return expect(r, '"')
}

func expect(r Reader, want byte) error {
	c, err := skipSpace(r)
	if err != nil {
		return unexpectedEOF(err)
	}
	if c != want {
		r.UnreadByte()
		return syntaxError("expected %q, got %q", want, c)
	}
	return nil
}

// ErrMalformed is returned when the input is not a valid literal.
var ErrMalformed = errors.New("malformed matrix literal")

func syntaxError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func skipSpace(r Reader) (byte, error) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c, nil
	}
}
