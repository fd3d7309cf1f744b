package interp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bdwalton/gopiet/colors"
	"github.com/bdwalton/gopiet/grid"
	"github.com/bdwalton/gopiet/stack"
)

// The edge/black recovery protocol gets this many alternating CC
// toggles and clockwise DP rotations before the program terminates.
// After four of each the walker is back where it started.
const MAX_ATTEMPTS = 8

// Emitter receives every decoded command along with the cell count of
// the block the walker just left (the value Push would use).
type Emitter interface {
	Emit(c Command, currentValue int32)
}

// Machine holds all of the mutable walker state for one program run.
type Machine struct {
	g        *grid.Grid
	st       *stack.Stack
	pos      grid.Pos
	dp       grid.Direction
	cc       grid.Side
	attempts int // consecutive failed exit attempts
	steps    int
	maxSteps int // -1 = unbounded
	debug    int // 0..3
	started  bool
	done     bool
	reason   string
	in       *bufio.Reader
	out      io.Writer
	emit     Emitter
}

func New(g *grid.Grid) *Machine {
	return &Machine{
		g:        g,
		st:       stack.New(),
		dp:       grid.Right,
		cc:       grid.SideLeft,
		maxSteps: -1,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// SetMaxSteps caps the number of executed steps; negative means
// unbounded.
func (m *Machine) SetMaxSteps(n int) {
	m.maxSteps = n
}

// SetDebug sets the stderr diagnostic level (0..3).
func (m *Machine) SetDebug(level int) {
	m.debug = level
}

// SetEmitter attaches a translation emitter. Pass nil to detach.
func (m *Machine) SetEmitter(e Emitter) {
	m.emit = e
}

// SetIO redirects the program's standard input and output streams.
func (m *Machine) SetIO(in io.Reader, out io.Writer) {
	m.in = bufio.NewReader(in)
	m.out = out
}

func (m *Machine) Pos() grid.Pos {
	return m.pos
}

func (m *Machine) DP() grid.Direction {
	return m.dp
}

func (m *Machine) CC() grid.Side {
	return m.cc
}

func (m *Machine) Steps() int {
	return m.steps
}

// Done reports whether the program has terminated.
func (m *Machine) Done() bool {
	return m.done
}

// Reason describes why the program terminated.
func (m *Machine) Reason() string {
	return m.reason
}

// StackString renders the current stack top-first, for the debugger.
func (m *Machine) StackString() string {
	return m.st.String()
}

func (m *Machine) String() string {
	return fmt.Sprintf("pos: %s, DP: %s, CC: %s; steps: %d; stack: [%s]", m.pos, m.dp, m.cc, m.steps, m.st)
}

func (m *Machine) debugf(level int, format string, args ...interface{}) {
	if m.debug >= level {
		log.Printf(format, args...)
	}
}

func (m *Machine) terminate(reason string) {
	m.done = true
	m.reason = reason
	m.debugf(1, "terminating: %s", reason)
}

// Run steps the machine until the program terminates or ctx is
// cancelled.
func (m *Machine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if !m.Step() {
				return
			}
		}
	}
}

// Step executes one iteration of the main walk: find the current
// block, select its exit codel, move, and execute the decoded
// command. It returns false once the program has terminated.
func (m *Machine) Step() bool {
	if m.done {
		return false
	}

	if m.maxSteps >= 0 && m.steps >= m.maxSteps {
		m.terminate("step cap reached")
		return false
	}

	if !m.started {
		m.started = true
		switch m.g.At(m.pos) {
		case colors.White:
			// The walker glides before the first block is ever
			// formed.
			if !m.glide() {
				return false
			}
		case colors.Black:
			m.terminate("start codel is black")
			return false
		}
	}

	block := m.g.FindBlock(m.pos)
	value := int32(block.Size())

	for {
		exit := block.Exit(m.dp, m.cc)
		next := exit.Move(m.dp)

		if m.blocked(next) {
			if !m.retry() {
				return false
			}
			continue
		}

		if m.g.At(next) == colors.White {
			m.pos = exit
			if !m.glide() {
				return false
			}
			// Leaving white is a silent move; no command.
			m.attempts = 0
			m.steps++
			m.debugf(3, "%s", m)
			return true
		}

		cmd := Decode(colors.LightDiff(m.g.At(exit), m.g.At(next)), colors.HueDiff(m.g.At(exit), m.g.At(next)))
		m.pos = next
		m.attempts = 0
		m.exec(cmd, value)
		m.steps++
		m.debugf(3, "%s", m)
		return true
	}
}

// blocked reports whether the candidate next cell is unreachable.
func (m *Machine) blocked(p grid.Pos) bool {
	return !m.g.Contains(p) || m.g.At(p) == colors.Black
}

// retry advances the recovery protocol: even attempts toggle the CC,
// odd attempts rotate the DP clockwise. Once all eight updates have
// been tried in vain the program ends.
func (m *Machine) retry() bool {
	if m.attempts == MAX_ATTEMPTS {
		m.terminate("no reachable codel after 8 attempts")
		return false
	}

	if m.attempts%2 == 0 {
		m.cc = m.cc.Toggle()
	} else {
		m.dp = m.dp.CW()
	}
	m.attempts++
	m.debugf(2, "recovery attempt %d: DP %s, CC %s", m.attempts, m.dp, m.cc)

	return true
}

// glide slides the walker across white cells in the DP's direction
// until it lands on a chromatic cell. No blocks form and no commands
// execute while sliding. Striking an edge or a black cell runs the
// recovery protocol, which can terminate the program.
func (m *Machine) glide() bool {
	for {
		next := m.pos.Move(m.dp)

		switch {
		case m.blocked(next):
			if !m.retry() {
				return false
			}
		case m.g.At(next) == colors.White:
			m.pos = next
		default:
			m.pos = next
			m.attempts = 0
			m.debugf(2, "glide landed on %s at %s", m.g.At(next), next)
			return true
		}
	}
}

// exec runs a decoded command against the stack and walker state.
// value is the cell count of the block just exited. Commands that
// find insufficient or unusable operands are tolerated no-ops.
func (m *Machine) exec(c Command, value int32) {
	if c == None {
		return
	}

	m.debugf(2, "executing %s", c)
	if m.emit != nil {
		m.emit.Emit(c, value)
	}

	switch c {
	case Push:
		m.st.Push(value)
	case Pop:
		if _, ok := m.st.Pop(); !ok {
			m.debugf(1, "pop on empty stack, ignored")
		}
	case Add, Subtract, Multiply, Divide, Mod, Greater:
		m.binaryOp(c)
	case Not:
		a, ok := m.st.Pop()
		if !ok {
			m.debugf(1, "not on empty stack, ignored")
			return
		}
		if a == 0 {
			m.st.Push(1)
		} else {
			m.st.Push(0)
		}
	case Pointer:
		n, ok := m.st.Pop()
		if !ok {
			m.debugf(1, "pointer on empty stack, ignored")
			return
		}
		for r := n % 4; r != 0; {
			if r > 0 {
				m.dp = m.dp.CW()
				r--
			} else {
				m.dp = m.dp.CCW()
				r++
			}
		}
	case Switch:
		n, ok := m.st.Pop()
		if !ok {
			m.debugf(1, "switch on empty stack, ignored")
			return
		}
		if n%2 != 0 {
			m.cc = m.cc.Toggle()
		}
	case Duplicate:
		if v, ok := m.st.Peek(); ok {
			m.st.Push(v)
		} else {
			m.debugf(1, "duplicate on empty stack, ignored")
		}
	case Roll:
		m.st.Roll()
	case InNumber:
		m.inNumber()
	case InChar:
		m.inChar()
	case OutNumber:
		if v, ok := m.st.Pop(); ok {
			fmt.Fprintf(m.out, "%d", v)
		} else {
			m.debugf(1, "out-number on empty stack, ignored")
		}
	case OutChar:
		v, ok := m.st.Pop()
		if !ok {
			m.debugf(1, "out-char on empty stack, ignored")
			return
		}
		if v < 0 || v > 255 {
			m.debugf(1, "out-char value %d out of byte range, ignored", v)
			return
		}
		m.out.Write([]byte{byte(v)})
	}
}

// binaryOp pops a then b and pushes the result of b op a. With only
// one operand available it goes back; division or modulo by zero
// consumes both operands and pushes nothing.
func (m *Machine) binaryOp(c Command) {
	a, ok := m.st.Pop()
	if !ok {
		m.debugf(1, "%s on empty stack, ignored", c)
		return
	}

	b, ok := m.st.Pop()
	if !ok {
		m.st.Push(a)
		m.debugf(1, "%s with one value, ignored", c)
		return
	}

	switch c {
	case Add:
		m.st.Push(b + a)
	case Subtract:
		m.st.Push(b - a)
	case Multiply:
		m.st.Push(b * a)
	case Divide:
		if a == 0 {
			m.debugf(1, "divide by zero, ignored")
			return
		}
		m.st.Push(b / a)
	case Mod:
		if a == 0 {
			m.debugf(1, "modulo by zero, ignored")
			return
		}
		m.st.Push(b % a)
	case Greater:
		if b > a {
			m.st.Push(1)
		} else {
			m.st.Push(0)
		}
	}
}

// inNumber reads one line from standard input and pushes it as an
// integer. Unreadable or unparseable input ignores the command.
func (m *Machine) inNumber() {
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		m.debugf(1, "in-number: %v, ignored", err)
		return
	}

	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		m.debugf(1, "in-number: %v, ignored", err)
		return
	}
	m.st.Push(int32(n))
}

// inChar reads exactly one byte from standard input and pushes its
// unsigned value.
func (m *Machine) inChar() {
	b, err := m.in.ReadByte()
	if err != nil {
		m.debugf(1, "in-char: %v, ignored", err)
		return
	}
	m.st.Push(int32(b))
}
