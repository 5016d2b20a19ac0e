// Package grid holds the pixel buffer and the cursor that walks it.
package grid

import "fmt"

// Grid describes a monochrome pixel buffer. It is a preallocated arena of
// cells addressed as [x][y]. Cells are initialized to off.
type Grid struct {
	w, h  int
	cells []bool
}

// New creates a new grid of w columns and h rows.
func New(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", w, h))
	}
	return &Grid{
		w:     w,
		h:     h,
		cells: make([]bool, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Get returns the cell at (x, y). The caller must keep (x, y) in range.
func (g *Grid) Get(x, y int) bool {
	return g.cells[x*g.h+y]
}

// Set sets the cell at (x, y). The caller must keep (x, y) in range.
func (g *Grid) Set(x, y int, on bool) {
	g.cells[x*g.h+y] = on
}

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// Clear turns every cell off.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Point is an integer position in grid space.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
