// Package emitters registers translation backends that observe a
// program run and render each executed command in a target language.
package emitters

import (
	"fmt"

	"github.com/bdwalton/gopiet/interp"
)

// Emitter is what a translation backend must provide. Emit receives
// every decoded command along with the current value (the cell count
// Push would use); Flush writes the accumulated program to path,
// creating or truncating it.
type Emitter interface {
	Name() string
	Emit(c interp.Command, currentValue int32)
	Flush(path string) error
}

// A global registry of emitter factories, keyed by backend name.
var allEmitters map[string]func() Emitter = map[string]func() Emitter{}

func Register(name string, f func() Emitter) {
	if _, ok := allEmitters[name]; ok {
		panic(fmt.Sprintf("Can't re-register emitter %q.", name))
	}
	allEmitters[name] = f
}

// Get returns a fresh emitter for the named backend or an error if no
// such backend is registered.
func Get(name string) (Emitter, error) {
	f, ok := allEmitters[name]
	if !ok {
		return nil, fmt.Errorf("unknown emitter %q", name)
	}

	return f(), nil
}
