package runk

import (
	"fmt"
	"io"
	"sort"
)

// ErrorVariable names the reserved variable that holds the message of the
// most recent failure recovered by an on-fail handler.
const ErrorVariable = "error"

// State is the mutable context of a running program.
type State struct {
	vars   map[string]Value
	funcs  map[string]*Function
	labels map[string]int

	input  Source
	stdout io.Writer
	stderr io.Writer
}

// NewState creates a state with the builtin functions and the reserved
// variables in place. input feeds the in builtin.
func NewState(input Source, stdout, stderr io.Writer) *State {
	state := &State{
		labels: make(map[string]int),
		input:  input,
		stdout: stdout,
		stderr: stderr,
	}
	state.reset()
	return state
}

// reset rebuilds the function table and the reserved variables.
func (state *State) reset() {
	if state.vars == nil {
		state.vars = make(map[string]Value)
	}
	state.funcs = builtins()
	state.vars[ErrorVariable] = Text("")
}

// Var returns the current value of a variable.
func (state *State) Var(name string) (Value, bool) {
	v, ok := state.vars[name]
	return v, ok
}

// Declare introduces name with the variant k and stores v coerced into it.
// Declaring an existing variable again is allowed only with the same
// variant.
func (state *State) Declare(name string, k Kind, v Value) error {
	if old, ok := state.vars[name]; ok && old.Kind() != k {
		return fmt.Errorf("Redefinition of variable \"%s\" with a different type (%s, was %s)!", name, k, old.Kind())
	}
	coerced, err := Coerce(v, k)
	if err != nil {
		return err
	}
	state.vars[name] = coerced
	return nil
}

// Assign overwrites an existing variable, keeping its variant.
func (state *State) Assign(name string, v Value) error {
	old, ok := state.vars[name]
	if !ok {
		return fmt.Errorf("Variable \"%s\" assigned before definition!", name)
	}
	coerced, err := Coerce(v, old.Kind())
	if err != nil {
		return fmt.Errorf("Cannot assign to \"%s\": %w", name, err)
	}
	state.vars[name] = coerced
	return nil
}

// Function looks up a function by name.
func (state *State) Function(name string) (*Function, bool) {
	fn, ok := state.funcs[name]
	return fn, ok
}

// DefineLabel binds a label to the index of the line declaring it. Binding
// a label to the index it already has is a no-op.
func (state *State) DefineLabel(name string, index int) error {
	if old, ok := state.labels[name]; ok && old != index {
		return fmt.Errorf("Redefinition of label \"%s\"!", name)
	}
	state.labels[name] = index
	return nil
}

// Label returns the line index a label was declared at.
func (state *State) Label(name string) (int, bool) {
	i, ok := state.labels[name]
	return i, ok
}

func (state *State) setLastError(msg string) {
	state.vars[ErrorVariable] = Text(msg)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
