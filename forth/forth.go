// Package forth translates an executed Piet program into a Forth
// postfix token stream. The translation is the trace of one concrete
// run: the walker still executes every command (I/O included) while
// this emitter observes it.
package forth

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/bdwalton/gopiet/emitters"
	"github.com/bdwalton/gopiet/interp"
)

// The preamble defines the words the token stream relies on
// (PIET-ROLL, INTEGER-INPUT, GREATER, ...) and is prepended verbatim.
//
//go:embed preamble.txt
var preamble string

func init() {
	emitters.Register("forth", func() emitters.Emitter { return &Translator{} })
}

// Token mapping. Push is absent: it renders as a numeric literal.
// Pointer and Switch discard their operand; the token stream does not
// try to preserve Piet's 2D control flow.
var tokens = map[interp.Command]string{
	interp.Pop:       "DROP",
	interp.Add:       "+",
	interp.Subtract:  "-",
	interp.Multiply:  "*",
	interp.Divide:    "/",
	interp.Mod:       "%",
	interp.Not:       "NOT",
	interp.Greater:   "GREATER",
	interp.Pointer:   "DROP",
	interp.Switch:    "DROP",
	interp.Duplicate: "DUP",
	interp.Roll:      "PIET-ROLL",
	interp.InNumber:  "INTEGER-INPUT",
	interp.InChar:    "KEY",
	interp.OutNumber: ".",
	interp.OutChar:   "EMIT",
}

// Translator buffers tokens in memory and writes the whole program
// out once, on termination.
type Translator struct {
	buf strings.Builder
}

func (t *Translator) Name() string {
	return "forth"
}

// Emit appends the token for c. Tokens are space separated; a token
// not ending in a digit also ends its line.
func (t *Translator) Emit(c interp.Command, currentValue int32) {
	var tok string
	if c == interp.Push {
		tok = fmt.Sprintf("%d", currentValue)
	} else {
		var ok bool
		if tok, ok = tokens[c]; !ok {
			return
		}
	}

	t.buf.WriteString(tok)
	if last := tok[len(tok)-1]; last >= '0' && last <= '9' {
		t.buf.WriteByte(' ')
	} else {
		t.buf.WriteByte('\n')
	}
}

// Program returns the preamble plus the buffered token stream.
func (t *Translator) Program() string {
	out := preamble + t.buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// Flush writes the translated program to path, creating or
// truncating it.
func (t *Translator) Flush(path string) error {
	if err := os.WriteFile(path, []byte(t.Program()), 0644); err != nil {
		return fmt.Errorf("couldn't write translation to %q: %w", path, err)
	}
	return nil
}
