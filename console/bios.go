package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/bdwalton/gopiet/grid"
)

func readPosition(prompt string) grid.Pos {
	var x, y int
	fmt.Printf(prompt)
	fmt.Scanf("%d,%d\n", &x, &y)
	return grid.Pos{X: x, Y: y}
}

// BIOS is the interactive debugger: a menu loop for stepping the
// walker, inspecting its state and running to breakpoints. It needs
// stdin to be a terminal.
func (c *Machine) BIOS(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("interactive mode requires a terminal on stdin")
	}

	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[grid.Pos]struct{})

	for {
		fmt.Printf("%s\n\n", c.m)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion or breakpoint")
		fmt.Println("(S)tep - step the walker one iteration")
		fmt.Println("S(t)ack - show the stack")
		fmt.Println("(G)rid - show the cell under the walker")
		fmt.Println("(Q)uit - shut down")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readPosition("Breakpoint (eg: 3,4): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[grid.Pos]struct{})
		case 'q', 'Q':
			return nil
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)
			c.runBreaks(cctx, breaks)
		case 's', 'S':
			c.m.Step()
		case 't', 'T':
			fmt.Printf("\n[%s]\n\n", c.m.StackString())
		case 'g', 'G':
			p := c.m.Pos()
			fmt.Printf("\n%s: %s\n\n", p, c.g.At(p))
		}

		if c.m.Done() {
			fmt.Printf("Program terminated: %s\n", c.m.Reason())
			return nil
		}
	}
}

// runBreaks steps until termination, cancellation or a breakpoint.
func (c *Machine) runBreaks(ctx context.Context, breaks map[grid.Pos]struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if !c.m.Step() {
				return
			}
		}

		if _, ok := breaks[c.m.Pos()]; ok {
			fmt.Printf("Hit breakpoint at %s\n", c.m.Pos())
			return
		}
	}
}
