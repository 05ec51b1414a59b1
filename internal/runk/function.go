package runk

import (
	"errors"
	"fmt"
	"strings"
)

// Contract declares which arguments a function accepts.
type Contract struct {
	// Variadic contracts take any number of arguments, each of which must be
	// (or coerce into) one of Kinds. Fixed contracts take exactly len(Kinds)
	// arguments, the i-th coerced into Kinds[i].
	Variadic bool
	Kinds    []Kind
	// Min is the least number of arguments a variadic contract takes.
	Min int
}

// AnyOf accepts any number of arguments of the given variants. The order of
// kinds decides which variant a mismatching argument is coerced into.
func AnyOf(kinds ...Kind) Contract {
	return Contract{Variadic: true, Kinds: kinds}
}

// AtLeast is AnyOf requiring at least n arguments.
func AtLeast(n int, kinds ...Kind) Contract {
	return Contract{Variadic: true, Kinds: kinds, Min: n}
}

// Exactly accepts one argument per kind, in order.
func Exactly(kinds ...Kind) Contract {
	return Contract{Variadic: false, Kinds: kinds}
}

// check validates args and returns them coerced into the contract's variants.
func (c Contract) check(args []Value) ([]Value, error) {
	out := make([]Value, len(args))
	if !c.Variadic {
		if len(args) != len(c.Kinds) {
			return nil, fmt.Errorf("Expected %d arguments, got %d!", len(c.Kinds), len(args))
		}
		for i, arg := range args {
			v, err := Coerce(arg, c.Kinds[i])
			if err != nil {
				return nil, fmt.Errorf("Argument %d: %w", i+1, err)
			}
			out[i] = v
		}
		return out, nil
	}

	if len(args) < c.Min {
		return nil, fmt.Errorf("Expected at least %d arguments, got %d!", c.Min, len(args))
	}
	for i, arg := range args {
		v, ok := c.fit(arg)
		if !ok {
			return nil, fmt.Errorf("Unsupported argument type %s at position %d!", arg.Kind(), i+1)
		}
		out[i] = v
	}
	return out, nil
}

// fit returns arg unchanged if its variant is allowed, otherwise the result
// of coercing it into the first allowed variant that accepts it.
func (c Contract) fit(arg Value) (Value, bool) {
	for _, k := range c.Kinds {
		if arg.Kind() == k {
			return arg, true
		}
	}
	for _, k := range c.Kinds {
		if v, err := Coerce(arg, k); err == nil {
			return v, true
		}
	}
	return nil, false
}

func (c Contract) String() string {
	kinds := make([]string, len(c.Kinds))
	for i, k := range c.Kinds {
		kinds[i] = k.String()
	}
	if c.Variadic && c.Min > 0 {
		return fmt.Sprintf("at least %d of [%s]", c.Min, strings.Join(kinds, " "))
	}
	if c.Variadic {
		return "any of [" + strings.Join(kinds, " ") + "]"
	}
	return "exactly [" + strings.Join(kinds, " ") + "]"
}

// Outcome is what evaluating an expression produces: a value and, for the
// jumping builtins, the label to continue at.
type Outcome struct {
	Value Value
	// JumpTo is empty when execution continues with the next line. Label
	// literals are never empty, so no valid jump is lost.
	JumpTo Label
}

// Builtin is the native implementation of a function. It receives
// arguments already validated against the function's contract.
type Builtin func(state *State, args []Value) (Outcome, error)

// Function pairs an argument contract with its implementation.
type Function struct {
	Args Contract
	Call Builtin
}

// callFunction dispatches the call named by tok.
func callFunction(state *State, tok *Token, args []Value) (Outcome, error) {
	fn, ok := state.Function(tok.Text)
	if !ok {
		return Outcome{}, NewRuntimeError(tok, fmt.Sprintf("Function \"%s\" not found!", tok.Text))
	}
	checked, err := fn.Args.check(args)
	if err != nil {
		return Outcome{}, NewRuntimeError(tok, err.Error())
	}
	out, err := fn.Call(state, checked)
	if err != nil {
		var exitErr *ExitError
		var ioErr *IOError
		if errors.As(err, &exitErr) || errors.As(err, &ioErr) {
			return Outcome{}, err
		}
		return Outcome{}, NewRuntimeError(tok, err.Error())
	}
	out.Value = Normalize(out.Value)
	return out, nil
}
