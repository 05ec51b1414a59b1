package runk

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinValues(t *testing.T) {
	testCases := []struct {
		expr []string
		repr string
	}{
		// arithmetic
		{[]string{"(", "+", ")"}, "Nat(0)"},
		{[]string{"(", "+", "2", "3", ")"}, "Nat(5)"},
		{[]string{"(", "+", "-2", "3", ")"}, "Nat(1)"},
		{[]string{"(", "-", "5", ")"}, "Nat(5)"},
		{[]string{"(", "-", "2", "5", ")"}, "Int(-3)"},
		{[]string{"(", "-", "10", "1", "2", ")"}, "Nat(7)"},
		{[]string{"(", "*", ")"}, "Nat(1)"},
		{[]string{"(", "*", "-2", "3", "4", ")"}, "Int(-24)"},
		{[]string{"(", "/", ")"}, "Nat(0)"},
		{[]string{"(", "/", "7", "2", ")"}, "Nat(3)"},
		{[]string{"(", "/", "-7", "2", ")"}, "Int(-3)"},
		{[]string{"(", "/", "100", "5", "2", ")"}, "Nat(10)"},
		// comparison
		{[]string{"(", "<", "1", "2", ")"}, "Nat(1)"},
		{[]string{"(", "<", "2", "1", ")"}, "Nat(0)"},
		{[]string{"(", ">", "-1", "-2", ")"}, "Nat(1)"},
		{[]string{"(", "<=", "2", "2", ")"}, "Nat(1)"},
		{[]string{"(", ">=", "1", "2", ")"}, "Nat(0)"},
		{[]string{"(", "=", "1", "1", "1", ")"}, "Nat(1)"},
		{[]string{"(", "=", "1", "1", "2", ")"}, "Nat(0)"},
		{[]string{"(", "=", "5", "-5", ")"}, "Nat(0)"},
		{[]string{"(", "=", `"a"`, `"a"`, ")"}, "Nat(1)"},
		{[]string{"(", "=", `"a"`, `"b"`, ")"}, "Nat(0)"},
		{[]string{"(", "=", `"1"`, "1", ")"}, "Nat(0)"},
		{[]string{"(", "=", "!a", "!a", ")"}, "Nat(1)"},
		// logic
		{[]string{"(", "and", "1", "2", ")"}, "Nat(1)"},
		{[]string{"(", "and", "1", "0", ")"}, "Nat(0)"},
		{[]string{"(", "and", ")"}, "Nat(1)"},
		{[]string{"(", "or", "0", "0", ")"}, "Nat(0)"},
		{[]string{"(", "or", "0", "-3", ")"}, "Nat(1)"},
		{[]string{"(", "not", "0", ")"}, "Nat(1)"},
		{[]string{"(", "not", "7", ")"}, "Nat(0)"},
		// parsing
		{[]string{"(", "int", `"-12"`, ")"}, "Int(-12)"},
		{[]string{"(", "int", `"12"`, ")"}, "Nat(12)"},
		{[]string{"(", "nat", `"12"`, ")"}, "Nat(12)"},
		{[]string{"(", "num", `"-3"`, ")"}, "Int(-3)"},
		{[]string{"(", "num", `"3"`, ")"}, "Nat(3)"},
		// text
		{[]string{"(", "cat", `"a"`, "1", `"b"`, ")"}, `Txt("a1b")`},
		{[]string{"(", "cat", ")"}, `Txt("")`},
		{[]string{"(", "cats", `"a"`, "1", "-2", ")"}, `Txt("a 1 -2")`},
		{[]string{"(", "line", `"x"`, `"y"`, ")"}, `Txt("xy\n")`},
		{[]string{"(", "lines", "1", "2", ")"}, `Txt("1 2\n")`},
		{[]string{"(", "line", ")"}, `Txt("\n")`},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		state := newTestState("")
		out, err := eval(t, state.State, tc.expr...)
		expr := strings.Join(tc.expr, " ")
		if assert.NoError(err, expr) {
			assert.Equal(tc.repr, Describe(out.Value), expr)
			assert.Empty(out.JumpTo, expr)
		}
	}
}

func TestBuiltinErrors(t *testing.T) {
	testCases := []struct {
		expr    []string
		message string
	}{
		{[]string{"(", "/", "5", "0", ")"}, "Division by zero!"},
		{[]string{"(", "+", `"a"`, ")"}, "Unsupported argument type Txt at position 1!"},
		{[]string{"(", "+", "1", "!a", ")"}, "Unsupported argument type Lab at position 2!"},
		{[]string{"(", "<", "1", ")"}, "Expected 2 arguments, got 1!"},
		{[]string{"(", "=", "1", ")"}, "Expected at least 2 arguments, got 1!"},
		{[]string{"(", "=", ")"}, "Expected at least 2 arguments, got 0!"},
		{[]string{"(", "not", `"a"`, ")"}, `Argument 1: cannot convert Txt("a") to Int`},
		{[]string{"(", "int", `"x"`, ")"}, `"x" is not a number!`},
		{[]string{"(", "int", "5", ")"}, "Argument 1: cannot convert Nat(5) to Txt"},
		{[]string{"(", "nat", `"-1"`, ")"}, `Cannot convert "-1" to a natural number!`},
		{[]string{"(", "num", `"1.5"`, ")"}, `Cannot convert "1.5" to a number!`},
		{[]string{"(", "go", "1", ")"}, "Argument 1: cannot convert Nat(1) to Lab"},
		{[]string{"(", "goif", "!a", "1", ")"}, "Argument 1: cannot convert Lab(!a) to Int"},
		{[]string{"(", "cat", "!a", ")"}, "Unsupported argument type Lab at position 1!"},
		{[]string{"(", "exit", "256", ")"}, "Number 256 is out of range for an exit code!"},
		{[]string{"(", "exit", "-1", ")"}, "Number -1 is out of range for an exit code!"},
		{[]string{"(", "in", "1", ")"}, "Expected 0 arguments, got 1!"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		state := newTestState("")
		_, err := eval(t, state.State, tc.expr...)
		var runtimeErr *RuntimeError
		if assert.ErrorAs(err, &runtimeErr, strings.Join(tc.expr, " ")) {
			assert.Equal(tc.message, runtimeErr.Message)
			assert.Equal(tc.expr[1], runtimeErr.Token.Lexeme)
		}
	}
}

func TestBuiltinJumps(t *testing.T) {
	assert := assert.New(t)
	state := newTestState("")

	out, err := eval(t, state.State, "(", "go", "!end", ")")
	assert.NoError(err)
	assert.Equal(Label("end"), out.JumpTo)
	assert.Equal(`Txt("")`, Describe(out.Value))

	out, err = eval(t, state.State, "(", "goif", "1", "!end", ")")
	assert.NoError(err)
	assert.Equal(Label("end"), out.JumpTo)

	out, err = eval(t, state.State, "(", "goif", "0", "!end", ")")
	assert.NoError(err)
	assert.Empty(out.JumpTo)
	assert.Equal(`Txt("")`, Describe(out.Value))
}

func TestBuiltinExit(t *testing.T) {
	testCases := []struct {
		code string
		want int
	}{
		{"0", 0},
		{"3", 3},
		{"255", 255},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		state := newTestState("")
		_, err := eval(t, state.State, "(", "exit", tc.code, ")")
		var exitErr *ExitError
		if assert.ErrorAs(err, &exitErr) {
			assert.Equal(tc.want, exitErr.Code)
		}
	}
}

func TestBuiltinInput(t *testing.T) {
	assert := assert.New(t)
	state := newTestState("hello\r\n\nworld")

	for _, want := range []string{"hello", "", "world"} {
		out, err := eval(t, state.State, "(", "in", ")")
		if assert.NoError(err) {
			assert.Equal(Text(want), out.Value)
		}
	}

	_, err := eval(t, state.State, "(", "in", ")")
	var runtimeErr *RuntimeError
	if assert.ErrorAs(err, &runtimeErr) {
		assert.Equal("End of input reached!", runtimeErr.Message)
	}
}

type brokenSource struct{}

func (brokenSource) ReadLine(int) (string, error) {
	return "", errors.New("device gone")
}

func TestBuiltinInputFailure(t *testing.T) {
	state := NewState(brokenSource{}, &strings.Builder{}, &strings.Builder{})
	_, err := eval(t, state, "(", "in", ")")

	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.False(t, recoverable(err))
}

func TestBuiltinPrint(t *testing.T) {
	assert := assert.New(t)
	state := newTestState("")

	out, err := eval(t, state.State, "(", "out", `"a"`, "1", "-2", ")")
	assert.NoError(err)
	assert.Equal(Text(""), out.Value)

	_, err = eval(t, state.State, "(", "err", `"oops"`, ")")
	assert.NoError(err)

	_, err = eval(t, state.State, "(", "out", ")")
	assert.NoError(err)

	assert.Equal("a1-2\n\n", state.stdout.String())
	assert.Equal("oops\n", state.stderr.String())
}
