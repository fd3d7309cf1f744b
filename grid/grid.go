// Package grid implements the playfield a Piet program executes on:
// an immutable matrix of classified colors addressed with x growing
// rightward and y growing downward, plus the directional geometry the
// walker needs (direction pointer, codel chooser side, color blocks).
package grid

import (
	"fmt"

	"github.com/bdwalton/gopiet/colors"
)

type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is the direction pointer (DP). The constants are in
// clockwise order so rotation is modular arithmetic.
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

var dirNames = map[Direction]string{
	Right: "right",
	Down:  "down",
	Left:  "left",
	Up:    "up",
}

func (d Direction) String() string {
	return dirNames[d]
}

// CW returns d rotated one step clockwise.
func (d Direction) CW() Direction {
	return (d + 1) % 4
}

// CCW returns d rotated one step counter-clockwise.
func (d Direction) CCW() Direction {
	return (d + 3) % 4
}

// Vector returns the unit step for d.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default: // Up
		return 0, -1
	}
}

// Move returns p advanced one cell in direction d.
func (p Pos) Move(d Direction) Pos {
	dx, dy := d.Vector()
	return Pos{p.X + dx, p.Y + dy}
}

// Side is the codel chooser (CC): a left or right preference relative
// to the direction pointer.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Toggle returns the other side.
func (s Side) Toggle() Side {
	return s ^ 1
}

// Grid is a height x width matrix of colors. Immutable after
// construction.
type Grid struct {
	cells [][]colors.Color // indexed [y][x]
	w, h  int
}

// New wraps a rectangular cell matrix. It panics on a ragged or empty
// matrix; loaders validate before calling.
func New(cells [][]colors.Color) *Grid {
	if len(cells) == 0 || len(cells[0]) == 0 {
		panic("grid: empty cell matrix")
	}
	w := len(cells[0])
	for y, row := range cells {
		if len(row) != w {
			panic(fmt.Sprintf("grid: ragged row %d (%d cells, wanted %d)", y, len(row), w))
		}
	}
	return &Grid{cells: cells, w: w, h: len(cells)}
}

func (g *Grid) W() int {
	return g.w
}

func (g *Grid) H() int {
	return g.h
}

// Contains reports whether p is inside the grid.
func (g *Grid) Contains(p Pos) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// At returns the color at p, which must be inside the grid.
func (g *Grid) At(p Pos) colors.Color {
	return g.cells[p.Y][p.X]
}
