package grid

import "fmt"

// Direction is one of the four compass directions the cursor can step in.
// North is towards y = 0 and west is towards x = 0.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Cursor is a position on a grid that can never leave it.
type Cursor struct {
	g   *Grid
	pos Point
}

// NewCursor creates a cursor at (0, 0) on g.
func NewCursor(g *Grid) *Cursor {
	return &Cursor{g: g}
}

// Pos returns the current cursor position.
func (c *Cursor) Pos() Point { return c.pos }

// Place moves the cursor to p. Positions outside the grid are ignored and
// false is returned.
func (c *Cursor) Place(p Point) bool {
	if !c.g.Contains(p) {
		return false
	}
	c.pos = p
	return true
}

// Move steps the cursor once in the given direction. Steps that would leave
// the grid are dropped. An unknown direction is a programming error and
// panics.
func (c *Cursor) Move(d Direction) {
	switch d {
	case North:
		if c.pos.Y > 0 {
			c.pos.Y--
		}
	case East:
		if c.pos.X < c.g.w-1 {
			c.pos.X++
		}
	case South:
		if c.pos.Y < c.g.h-1 {
			c.pos.Y++
		}
	case West:
		if c.pos.X > 0 {
			c.pos.X--
		}
	default:
		panic("invalid direction " + d.String())
	}
}
