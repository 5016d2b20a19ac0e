package matrix

import (
	"bufio"
	"errors"
	"io"
)

// Scanner pulls successive literals out of a text stream, such as a serial
// console that also carries unrelated output. Malformed literals are skipped.
type Scanner struct {
	r       *bufio.Reader
	bitmap  Bitmap
	err     error
	skipped int
}

// NewScanner creates a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Scan advances to the next literal in the stream. It returns false when the
// stream ends or fails; Err tells which.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for {
		c, err := s.r.ReadByte()
		if err != nil {
			s.fail(err)
			return false
		}
		if c != '"' {
			continue
		}

		var b Bitmap
		if err := readBody(s.r, &b); err != nil {
			if errors.Is(err, ErrMalformed) {
				s.skipped++
				continue
			}
			s.fail(err)
			return false
		}

		s.bitmap = b
		return true
	}
}

func (s *Scanner) fail(err error) {
	// A stream that ends halfway through a literal is still a clean end.
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	s.err = err
}

// Bitmap returns the literal found by the last successful call to Scan.
func (s *Scanner) Bitmap() Bitmap { return s.bitmap }

// Skipped returns the number of malformed literals skipped so far.
func (s *Scanner) Skipped() int { return s.skipped }

// Err returns the first non-EOF error that stopped the scanner.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
