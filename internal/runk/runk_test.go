package runk

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

// words builds the tokens of a single-line statement, one token per word.
func words(ws ...string) []*Token {
	toks := make([]*Token, len(ws))
	column := 1
	for i, w := range ws {
		toks[i] = NewToken(w, 1, column)
		column += len(w) + 1
	}
	return toks
}

// scanAll reads every logical line of src.
func scanAll(src string) ([]*Line, error) {
	scanner := NewScanner(NewReaderSource(strings.NewReader(src)))
	var lines []*Line
	for {
		line, err := scanner.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
}

type testState struct {
	*State
	stdout strings.Builder
	stderr strings.Builder
}

func newTestState(input string) *testState {
	ts := &testState{}
	ts.State = NewState(NewReaderSource(strings.NewReader(input)), &ts.stdout, &ts.stderr)
	return ts
}

// eval resolves a single-line expression against state.
func eval(t *testing.T, state *State, ws ...string) (Outcome, error) {
	t.Helper()
	toks := words(ws...)
	out, n, err := NewResolver(state).Resolve(toks)
	if err == nil {
		require.LessOrEqual(t, n, len(toks))
	}
	return out, err
}

type testRun struct {
	interpreter *Interpreter
	reporter    *mockReporter
	stdout      strings.Builder
	stderr      strings.Builder
	err         error
}

// runProgram executes src with input feeding the in builtin.
func runProgram(src, input string, config Config) *testRun {
	run := &testRun{reporter: newMockReporter()}
	config.Stdout = &run.stdout
	config.Stderr = &run.stderr
	config.Input = NewReaderSource(strings.NewReader(input))
	if config.Name == "" {
		config.Name = "test.runk"
	}
	run.interpreter = NewInterpreter(NewReaderSource(strings.NewReader(src)), config, run.reporter)
	run.err = run.interpreter.Run()
	return run
}
