package grid

// Block is a maximal 4-connected region of same-colored cells. Blocks
// are transient values produced per walker step.
type Block struct {
	cells []Pos
}

// FindBlock flood fills the 4-connected same-color region containing
// start. The caller guarantees start is inside the grid. The result
// does not depend on traversal order.
func (g *Grid) FindBlock(start Pos) *Block {
	want := g.At(start)

	visited := make([]bool, g.w*g.h)
	visited[start.Y*g.w+start.X] = true

	work := []Pos{start}
	b := &Block{}

	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		b.cells = append(b.cells, p)

		for d := Right; d <= Up; d++ {
			n := p.Move(d)
			if !g.Contains(n) || g.At(n) != want {
				continue
			}
			if i := n.Y*g.w + n.X; !visited[i] {
				visited[i] = true
				work = append(work, n)
			}
		}
	}

	return b
}

// Size returns the cell count of the block. This is the "current
// value" the Push command captures.
func (b *Block) Size() int {
	return len(b.cells)
}

// Contains reports whether p is one of the block's cells.
func (b *Block) Contains(p Pos) bool {
	for _, c := range b.cells {
		if c == p {
			return true
		}
	}
	return false
}

// Exit returns the block's exit codel for the given DP and CC: first
// the subset of cells at the extreme coordinate along the DP axis,
// then the unique cell among those farthest to the CC's side. Exactly
// one cell extremizes the secondary axis on the edge, so there are no
// ties.
func (b *Block) Exit(d Direction, s Side) Pos {
	edge := b.edge(d)

	best := edge[0]
	for _, p := range edge[1:] {
		if better(p, best, d, s) {
			best = p
		}
	}
	return best
}

// edge returns the cells at the extreme coordinate along d's axis:
// max x for Right, max y for Down, min x for Left, min y for Up.
func (b *Block) edge(d Direction) []Pos {
	axis := func(p Pos) int {
		switch d {
		case Right:
			return p.X
		case Down:
			return p.Y
		case Left:
			return -p.X
		default: // Up
			return -p.Y
		}
	}

	ext := axis(b.cells[0])
	for _, p := range b.cells[1:] {
		if a := axis(p); a > ext {
			ext = a
		}
	}

	var edge []Pos
	for _, p := range b.cells {
		if axis(p) == ext {
			edge = append(edge, p)
		}
	}
	return edge
}

// better reports whether a beats b on the secondary axis for (d, s):
//
//	(Right, Left)  -> minimum y    (Right, Right) -> maximum y
//	(Down,  Left)  -> maximum x    (Down,  Right) -> minimum x
//	(Left,  Left)  -> maximum y    (Left,  Right) -> minimum y
//	(Up,    Left)  -> minimum x    (Up,    Right) -> maximum x
func better(a, b Pos, d Direction, s Side) bool {
	switch {
	case d == Right && s == SideLeft || d == Left && s == SideRight:
		return a.Y < b.Y
	case d == Right && s == SideRight || d == Left && s == SideLeft:
		return a.Y > b.Y
	case d == Down && s == SideLeft || d == Up && s == SideRight:
		return a.X > b.X
	default: // (Down, Right) and (Up, Left)
		return a.X < b.X
	}
}
