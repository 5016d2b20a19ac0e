package grid

import (
	"math/rand"
	"testing"
)

func TestCursorMove(t *testing.T) {
	tests := []struct {
		name  string
		start Point
		dir   Direction
		want  Point
	}{
		{"north", Point{5, 5}, North, Point{5, 4}},
		{"east", Point{5, 5}, East, Point{6, 5}},
		{"south", Point{5, 5}, South, Point{5, 6}},
		{"west", Point{5, 5}, West, Point{4, 5}},
		{"north at top", Point{5, 0}, North, Point{5, 0}},
		{"east at right edge", Point{19, 5}, East, Point{19, 5}},
		{"south at bottom", Point{5, 9}, South, Point{5, 9}},
		{"west at left edge", Point{0, 5}, West, Point{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(New(20, 10))
			if !c.Place(tt.start) {
				t.Fatalf("Place(%v) rejected", tt.start)
			}
			c.Move(tt.dir)
			if got := c.Pos(); got != tt.want {
				t.Errorf("Move(%v) from %v = %v, want %v", tt.dir, tt.start, got, tt.want)
			}
		})
	}
}

func TestCursorIdempotentAtEdges(t *testing.T) {
	c := NewCursor(New(4, 3))

	for i := 0; i < 10; i++ {
		c.Move(North)
		c.Move(West)
	}
	if got := c.Pos(); got != (Point{0, 0}) {
		t.Errorf("after pushing north-west: %v", got)
	}

	for i := 0; i < 10; i++ {
		c.Move(South)
		c.Move(East)
	}
	if got := c.Pos(); got != (Point{3, 2}) {
		t.Errorf("after pushing south-east: %v", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := New(7, 5)
	c := NewCursor(g)

	for i := 0; i < 10000; i++ {
		c.Move(Direction(rng.Intn(4)))
		if !g.Contains(c.Pos()) {
			t.Fatalf("cursor escaped the grid at step %d: %v", i, c.Pos())
		}
	}
}

func TestCursorPlaceOutside(t *testing.T) {
	c := NewCursor(New(4, 4))
	if c.Place(Point{4, 0}) {
		t.Error("Place accepted a point outside the grid")
	}
	if got := c.Pos(); got != (Point{0, 0}) {
		t.Errorf("rejected Place moved the cursor to %v", got)
	}
}

func TestCursorInvalidDirection(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid direction")
		}
	}()
	NewCursor(New(4, 4)).Move(Direction(4))
}
