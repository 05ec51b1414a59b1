package runk

import (
	"fmt"
	"io"
	"strings"
)

var numeric = AnyOf(KindInteger, KindNatural)
var printable = AnyOf(KindInteger, KindNatural, KindText)

// builtins returns a fresh table of the primitive functions.
func builtins() map[string]*Function {
	return map[string]*Function{
		"+":     {numeric, fold(Add, Nat(0))},
		"-":     {numeric, fold(Sub, Nat(0))},
		"*":     {numeric, fold(Mul, Nat(1))},
		"/":     {numeric, divide},
		"<":     {Exactly(KindInteger, KindInteger), compare(func(c int) bool { return c < 0 })},
		">":     {Exactly(KindInteger, KindInteger), compare(func(c int) bool { return c > 0 })},
		"<=":    {Exactly(KindInteger, KindInteger), compare(func(c int) bool { return c <= 0 })},
		">=":    {Exactly(KindInteger, KindInteger), compare(func(c int) bool { return c >= 0 })},
		"=":     {AtLeast(2, KindInteger, KindText, KindLabel), equal},
		"and":   {AnyOf(KindInteger), and},
		"or":    {AnyOf(KindInteger), or},
		"not":   {Exactly(KindInteger), not},
		"in":    {Exactly(), input},
		"int":   {Exactly(KindText), parseInteger},
		"nat":   {Exactly(KindText), parseNatural},
		"num":   {Exactly(KindText), parseBestFit},
		"go":    {Exactly(KindLabel), jump},
		"goif":  {Exactly(KindInteger, KindLabel), jumpIf},
		"err":   {printable, printLine(func(s *State) io.Writer { return s.stderr })},
		"out":   {printable, printLine(func(s *State) io.Writer { return s.stdout })},
		"cat":   {printable, concat("", "")},
		"cats":  {printable, concat(" ", "")},
		"line":  {printable, concat("", "\n")},
		"lines": {printable, concat(" ", "\n")},
		"exit":  {Exactly(KindInteger), exit},
	}
}

func result(v Value) (Outcome, error) {
	return Outcome{Value: v}, nil
}

// fold applies op from left to right. Without arguments the result is empty.
func fold(op func(a, b Number) Number, empty Number) Builtin {
	return func(_ *State, args []Value) (Outcome, error) {
		if len(args) == 0 {
			return result(empty)
		}
		acc := args[0].(Number)
		for _, arg := range args[1:] {
			acc = op(acc, arg.(Number))
		}
		return result(acc)
	}
}

func divide(_ *State, args []Value) (Outcome, error) {
	if len(args) == 0 {
		return result(Nat(0))
	}
	acc := args[0].(Number)
	for _, arg := range args[1:] {
		var err error
		if acc, err = Div(acc, arg.(Number)); err != nil {
			return Outcome{}, err
		}
	}
	return result(acc)
}

func compare(holds func(int) bool) Builtin {
	return func(_ *State, args []Value) (Outcome, error) {
		return result(Bool(holds(Compare(args[0].(Number), args[1].(Number)))))
	}
}

func equal(_ *State, args []Value) (Outcome, error) {
	for i := 1; i < len(args); i++ {
		if !Equal(args[i-1], args[i]) {
			return result(Nat(0))
		}
	}
	return result(Nat(1))
}

func and(_ *State, args []Value) (Outcome, error) {
	for _, arg := range args {
		if !Truthy(arg.(Number)) {
			return result(Nat(0))
		}
	}
	return result(Nat(1))
}

func or(_ *State, args []Value) (Outcome, error) {
	for _, arg := range args {
		if Truthy(arg.(Number)) {
			return result(Nat(1))
		}
	}
	return result(Nat(0))
}

func not(_ *State, args []Value) (Outcome, error) {
	return result(Bool(!Truthy(args[0].(Number))))
}

func input(state *State, _ []Value) (Outcome, error) {
	line, err := state.input.ReadLine(0)
	if err == io.EOF {
		return Outcome{}, errEndOfInput
	}
	if err != nil {
		return Outcome{}, &IOError{err}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return result(Text(line))
}

func parseInteger(_ *State, args []Value) (Outcome, error) {
	n, ok := ParseNumber(string(args[0].(Text)))
	if !ok {
		return Outcome{}, fmt.Errorf("%q is not a number!", string(args[0].(Text)))
	}
	return result(NewInteger(n.Int()))
}

func parseNatural(_ *State, args []Value) (Outcome, error) {
	n, ok := ParseNumber(string(args[0].(Text)))
	if !ok {
		return Outcome{}, fmt.Errorf("%q is not a number!", string(args[0].(Text)))
	}
	nat, err := NewNatural(n.Int())
	if err != nil {
		return Outcome{}, fmt.Errorf("Cannot convert %q to a natural number!", string(args[0].(Text)))
	}
	return result(nat)
}

func parseBestFit(_ *State, args []Value) (Outcome, error) {
	n, ok := ParseNumber(string(args[0].(Text)))
	if !ok {
		return Outcome{}, fmt.Errorf("Cannot convert %q to a number!", string(args[0].(Text)))
	}
	return result(n)
}

func jump(_ *State, args []Value) (Outcome, error) {
	return Outcome{Value: Text(""), JumpTo: args[0].(Label)}, nil
}

func jumpIf(_ *State, args []Value) (Outcome, error) {
	if !Truthy(args[0].(Number)) {
		return result(Text(""))
	}
	return Outcome{Value: Text(""), JumpTo: args[1].(Label)}, nil
}

func printLine(writer func(*State) io.Writer) Builtin {
	return func(state *State, args []Value) (Outcome, error) {
		var b strings.Builder
		for _, arg := range args {
			b.WriteString(arg.String())
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(writer(state), b.String()); err != nil {
			return Outcome{}, &IOError{err}
		}
		return result(Text(""))
	}
}

func concat(sep, end string) Builtin {
	return func(_ *State, args []Value) (Outcome, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = arg.String()
		}
		return result(Text(strings.Join(parts, sep) + end))
	}
}

func exit(_ *State, args []Value) (Outcome, error) {
	code := args[0].(Number).Int()
	if !code.IsInt64() || code.Int64() < 0 || code.Int64() > 255 {
		return Outcome{}, fmt.Errorf("Number %s is out of range for an exit code!", code)
	}
	return Outcome{}, &ExitError{int(code.Int64())}
}
