package main

import (
	"bytes"
	"strings"
	"testing"

	"libdb.so/pixsketch/matrix"
)

func TestReceive(t *testing.T) {
	var b matrix.Bitmap
	b[0][1] = true

	var lit strings.Builder
	if err := matrix.Write(&lit, &b); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		art  bool
		want string
	}{
		{"literal", false, lit.String() + lit.String()},
		{"art", true, b.String() + "\n" + b.String() + "\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			art = test.art
			defer func() { art = false }()

			in := strings.NewReader("boot\n" + lit.String() + "junk" + lit.String())

			var out bytes.Buffer
			if err := receive(in, &out); err == nil {
				t.Fatal("receive returned nil at the end of the stream")
			}
			if out.String() != test.want {
				t.Errorf("got %q, want %q", out.String(), test.want)
			}
		})
	}
}
