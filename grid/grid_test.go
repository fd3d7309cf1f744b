package grid

import (
	"reflect"
	"sort"
	"testing"

	"github.com/bdwalton/gopiet/colors"
)

// gridFromArt builds a grid from rows of rune art. R/G/B are red,
// green and blue, '#' is black, '.' is white.
func gridFromArt(rows []string) *Grid {
	runeColors := map[rune]colors.Color{
		'R': colors.Red,
		'G': colors.Green,
		'B': colors.Blue,
		'#': colors.Black,
		'.': colors.White,
	}

	cells := make([][]colors.Color, len(rows))
	for y, row := range rows {
		cells[y] = make([]colors.Color, len(row))
		for x, r := range row {
			cells[y][x] = runeColors[r]
		}
	}
	return New(cells)
}

func TestDirectionRotation(t *testing.T) {
	cases := []struct {
		d       Direction
		cw, ccw Direction
	}{
		{Right, Down, Up},
		{Down, Left, Right},
		{Left, Up, Down},
		{Up, Right, Left},
	}

	for _, tc := range cases {
		if got := tc.d.CW(); got != tc.cw {
			t.Errorf("%s.CW() = %s, wanted %s", tc.d, got, tc.cw)
		}
		if got := tc.d.CCW(); got != tc.ccw {
			t.Errorf("%s.CCW() = %s, wanted %s", tc.d, got, tc.ccw)
		}
		if got := tc.d.CW().CCW(); got != tc.d {
			t.Errorf("%s.CW().CCW() = %s, wanted identity", tc.d, got)
		}
	}
}

func TestMove(t *testing.T) {
	cases := []struct {
		d    Direction
		want Pos
	}{
		{Right, Pos{3, 2}},
		{Down, Pos{2, 3}},
		{Left, Pos{1, 2}},
		{Up, Pos{2, 1}},
	}

	for _, tc := range cases {
		if got := (Pos{2, 2}).Move(tc.d); got != tc.want {
			t.Errorf("(2,2).Move(%s) = %s, wanted %s", tc.d, got, tc.want)
		}
	}
}

func TestSideToggle(t *testing.T) {
	if got := SideLeft.Toggle(); got != SideRight {
		t.Errorf("SideLeft.Toggle() = %s, wanted right", got)
	}
	if got := SideRight.Toggle(); got != SideLeft {
		t.Errorf("SideRight.Toggle() = %s, wanted left", got)
	}
}

func TestContains(t *testing.T) {
	g := gridFromArt([]string{"RRR", "RRR"})

	cases := []struct {
		p    Pos
		want bool
	}{
		{Pos{0, 0}, true},
		{Pos{2, 1}, true},
		{Pos{3, 0}, false},
		{Pos{0, 2}, false},
		{Pos{-1, 0}, false},
		{Pos{0, -1}, false},
	}

	for _, tc := range cases {
		if got := g.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%s) = %t, wanted %t", tc.p, got, tc.want)
		}
	}
}

func sortedCells(b *Block) []Pos {
	cells := append([]Pos(nil), b.cells...)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func TestFindBlock(t *testing.T) {
	g := gridFromArt([]string{
		"RRG",
		"RGG",
		"GGB",
	})

	cases := []struct {
		start Pos
		want  []Pos
	}{
		{Pos{0, 0}, []Pos{{0, 0}, {1, 0}, {0, 1}}},
		{Pos{2, 0}, []Pos{{2, 0}, {1, 1}, {2, 1}, {0, 2}, {1, 2}}},
		{Pos{2, 2}, []Pos{{2, 2}}},
	}

	for _, tc := range cases {
		b := g.FindBlock(tc.start)
		if got := sortedCells(b); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FindBlock(%s) = %v, wanted %v", tc.start, got, tc.want)
		}
		if got := b.Size(); got != len(tc.want) {
			t.Errorf("FindBlock(%s).Size() = %d, wanted %d", tc.start, got, len(tc.want))
		}
	}
}

func TestFindBlockDiagonalsExcluded(t *testing.T) {
	g := gridFromArt([]string{
		"RG",
		"GR",
	})

	if got := g.FindBlock(Pos{0, 0}).Size(); got != 1 {
		t.Errorf("diagonal cells joined a block; size = %d, wanted 1", got)
	}
}

func TestFindBlockDeterministic(t *testing.T) {
	g := gridFromArt([]string{
		"RRRR",
		"R..R",
		"RRRR",
	})

	first := sortedCells(g.FindBlock(Pos{0, 0}))
	for i := 0; i < 10; i++ {
		if got := sortedCells(g.FindBlock(Pos{0, 0})); !reflect.DeepEqual(got, first) {
			t.Errorf("FindBlock returned a different set on call %d", i)
		}
	}
}

func TestBlockExit(t *testing.T) {
	// The red block covers (0,0) (1,0) (2,0) (0,1) (1,1).
	g := gridFromArt([]string{
		"RRR",
		"RRG",
	})
	b := g.FindBlock(Pos{0, 0})

	cases := []struct {
		d    Direction
		s    Side
		want Pos
	}{
		{Right, SideLeft, Pos{2, 0}},
		{Right, SideRight, Pos{2, 0}},
		{Down, SideLeft, Pos{1, 1}},
		{Down, SideRight, Pos{0, 1}},
		{Left, SideLeft, Pos{0, 1}},
		{Left, SideRight, Pos{0, 0}},
		{Up, SideLeft, Pos{0, 0}},
		{Up, SideRight, Pos{2, 0}},
	}

	for _, tc := range cases {
		if got := b.Exit(tc.d, tc.s); got != tc.want {
			t.Errorf("Exit(%s, %s) = %s, wanted %s", tc.d, tc.s, got, tc.want)
		}
	}
}
