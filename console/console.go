// Package console wraps a Piet machine with its frontends: a plain
// headless run, a graphical viewer and an interactive debugger.
package console

import (
	"context"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bdwalton/gopiet/grid"
	"github.com/bdwalton/gopiet/interp"
)

// Window pixels per codel when the viewer opens. Ebiten rescales
// from there when the window is resized.
const CELL_SCALE = 8

type Machine struct {
	m     *interp.Machine
	g     *grid.Grid
	delay time.Duration

	// Viewer controls, touched from both the ebiten update loop and
	// the interpreter goroutine.
	paused  atomic.Bool
	stepReq atomic.Bool
}

func New(m *interp.Machine, g *grid.Grid) *Machine {
	c := &Machine{m: m, g: g}

	ebiten.SetWindowSize(g.W()*CELL_SCALE, g.H()*CELL_SCALE)
	ebiten.SetWindowTitle("gopiet")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return c
}

// SetStepDelay paces the walk, which keeps the viewer watchable. Zero
// runs flat out.
func (c *Machine) SetStepDelay(d time.Duration) {
	c.delay = d
}

// Run steps the machine until the program terminates or ctx is
// cancelled, honoring the viewer's pause state.
func (c *Machine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if c.paused.Load() && !c.stepReq.CompareAndSwap(true, false) {
				time.Sleep(10 * time.Millisecond)
				continue
			}

			if !c.m.Step() {
				return
			}

			if c.delay > 0 {
				time.Sleep(c.delay)
			}
		}
	}
}

// Layout returns the constant grid resolution and is part of the
// ebiten.Game interface. Returning constants here forces ebiten to
// scale the display when the window size changes.
func (c *Machine) Layout(w, h int) (int, int) {
	return c.g.W(), c.g.H()
}

// Draw paints one pixel per codel and inverts the walker's cell so
// it reads as a cursor.
func (c *Machine) Draw(screen *ebiten.Image) {
	cur := c.m.Pos()

	for y := 0; y < c.g.H(); y++ {
		for x := 0; x < c.g.W(); x++ {
			r, g, b := c.g.At(grid.Pos{X: x, Y: y}).RGB()
			if (grid.Pos{X: x, Y: y}) == cur {
				r, g, b = 0xFF-r, 0xFF-g, 0xFF-b
			}
			screen.Set(x, y, color.NRGBA{r, g, b, 0xFF})
		}
	}
}

// Update polls the viewer keys. The interpreter advances in its own
// goroutine, so there is no work to drive here; we're implemented and
// called because it's part of the required interface.
func (c *Machine) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		c.paused.Store(!c.paused.Load())
	}

	// N single-steps while paused.
	if c.paused.Load() && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		c.stepReq.Store(true)
	}

	return nil
}
