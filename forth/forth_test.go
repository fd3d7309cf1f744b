package forth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/bdwalton/gopiet/emitters"
	"github.com/bdwalton/gopiet/interp"
)

func TestRegistered(t *testing.T) {
	c := qt.New(t)

	e, err := emitters.Get("forth")
	c.Assert(err, qt.IsNil)
	c.Assert(e.Name(), qt.Equals, "forth")
}

func TestEmitTokens(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		cmd   interp.Command
		value int32
		want  string
	}{
		{interp.Push, 42, "42 "},
		{interp.Push, -7, "-7 "},
		{interp.Pop, 0, "DROP\n"},
		{interp.Add, 0, "+\n"},
		{interp.Subtract, 0, "-\n"},
		{interp.Multiply, 0, "*\n"},
		{interp.Divide, 0, "/\n"},
		{interp.Mod, 0, "%\n"},
		{interp.Not, 0, "NOT\n"},
		{interp.Greater, 0, "GREATER\n"},
		{interp.Pointer, 0, "DROP\n"},
		{interp.Switch, 0, "DROP\n"},
		{interp.Duplicate, 0, "DUP\n"},
		{interp.Roll, 0, "PIET-ROLL\n"},
		{interp.InNumber, 0, "INTEGER-INPUT\n"},
		{interp.InChar, 0, "KEY\n"},
		{interp.OutNumber, 0, ".\n"},
		{interp.OutChar, 0, "EMIT\n"},
	}

	for _, tc := range cases {
		tr := &Translator{}
		tr.Emit(tc.cmd, tc.value)
		c.Assert(tr.buf.String(), qt.Equals, tc.want, qt.Commentf("%s", tc.cmd))
	}
}

func TestEmitNoneIsSilent(t *testing.T) {
	c := qt.New(t)

	tr := &Translator{}
	tr.Emit(interp.None, 3)
	c.Assert(tr.buf.String(), qt.Equals, "")
}

// No line may continue after a token that doesn't end in a digit.
func TestTokenLineRule(t *testing.T) {
	c := qt.New(t)

	tr := &Translator{}
	tr.Emit(interp.Push, 1)
	tr.Emit(interp.Push, 2)
	tr.Emit(interp.Add, 0)
	tr.Emit(interp.OutNumber, 0)

	body := strings.TrimPrefix(tr.Program(), preamble)
	c.Assert(body, qt.Equals, "1 2 +\n.\n")

	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		toks := strings.Fields(line)
		for i, tok := range toks[:len(toks)-1] {
			last := tok[len(tok)-1]
			c.Assert(last >= '0' && last <= '9', qt.IsTrue,
				qt.Commentf("token %d %q continues line %q", i, tok, line))
		}
	}
}

func TestProgramHasPreamble(t *testing.T) {
	c := qt.New(t)

	tr := &Translator{}
	tr.Emit(interp.Duplicate, 0)
	c.Assert(strings.HasPrefix(tr.Program(), preamble), qt.IsTrue)
	c.Assert(strings.Contains(preamble, "PIET-ROLL"), qt.IsTrue)
}

func TestFlush(t *testing.T) {
	c := qt.New(t)

	tr := &Translator{}
	tr.Emit(interp.Push, 5)
	tr.Emit(interp.OutNumber, 0)

	path := filepath.Join(t.TempDir(), "out.f")
	c.Assert(tr.Flush(path), qt.IsNil)

	got, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, tr.Program())
}
