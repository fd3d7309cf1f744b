package emitters

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/bdwalton/gopiet/interp"
)

type nullEmitter struct{}

func (n *nullEmitter) Name() string                       { return "null" }
func (n *nullEmitter) Emit(c interp.Command, value int32) {}
func (n *nullEmitter) Flush(path string) error            { return nil }

func TestRegisterGet(t *testing.T) {
	c := qt.New(t)

	Register("null", func() Emitter { return &nullEmitter{} })

	e, err := Get("null")
	c.Assert(err, qt.IsNil)
	c.Assert(e.Name(), qt.Equals, "null")
}

func TestGetUnknown(t *testing.T) {
	c := qt.New(t)

	_, err := Get("no-such-backend")
	c.Assert(err, qt.ErrorMatches, `unknown emitter .*`)
}

func TestReRegisterPanics(t *testing.T) {
	c := qt.New(t)

	Register("null-again", func() Emitter { return &nullEmitter{} })
	c.Assert(func() {
		Register("null-again", func() Emitter { return &nullEmitter{} })
	}, qt.PanicMatches, `Can't re-register emitter .*`)
}
