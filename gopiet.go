// gopiet interprets programs written in the Piet esoteric language
// and can translate a run into Forth.
// https://www.dangermouse.net/esoteric/piet.html
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/gopiet/console"
	"github.com/bdwalton/gopiet/emitters"
	_ "github.com/bdwalton/gopiet/forth"
	"github.com/bdwalton/gopiet/interp"
	"github.com/bdwalton/gopiet/pietimg"
)

var (
	codelSize   = flag.Int("codel-size", 1, "Pixels per codel edge in the input image.")
	translate   = flag.Bool("translate", false, "Emit a Forth translation of the run.")
	outputFile  = flag.String("output-file", "out.f", "Forth output destination (with --translate).")
	maxSteps    = flag.Int("max-steps", -1, "Step cap; -1 runs unbounded.")
	debug       = flag.Int("debug", 0, "Diagnostic verbosity on stderr (0..3).")
	display     = flag.Bool("display", false, "Show the program image while it runs.")
	interactive = flag.Bool("interactive", false, "Drop into the interactive debugger.")
)

// How fast the walker moves under --display. Full speed finishes
// before the window is even mapped.
const displayStepDelay = 25 * time.Millisecond

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: gopiet [flags] <program image>")
	}

	g, err := pietimg.Load(flag.Arg(0), *codelSize)
	if err != nil {
		log.Fatalf("Invalid program image: %v", err)
	}

	m := interp.New(g)
	m.SetMaxSteps(*maxSteps)
	m.SetDebug(*debug)

	var em emitters.Emitter
	if *translate {
		if em, err = emitters.Get("forth"); err != nil {
			log.Fatalf("Couldn't set up translation: %v", err)
		}
		m.SetEmitter(em)
	}

	gopiet := console.New(m, g)

	switch {
	case *interactive:
		if err := gopiet.BIOS(context.Background()); err != nil {
			log.Fatalf("%v", err)
		}
	case *display:
		gopiet.SetStepDelay(displayStepDelay)

		ctx, cancel := context.WithCancel(context.Background())
		go func(ctx context.Context) {
			gopiet.Run(ctx)
		}(ctx)

		if err := ebiten.RunGame(gopiet); err != nil {
			log.Fatal(err)
		}
		cancel()
	default:
		gopiet.Run(context.Background())
	}

	if em != nil {
		if err := em.Flush(*outputFile); err != nil {
			log.Fatalf("%v", err)
		}
	}

	os.Exit(0)
}
