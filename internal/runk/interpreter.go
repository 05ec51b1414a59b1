package runk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Config describes a run of the interpreter. Zero values fall back to the
// process' standard streams.
type Config struct {
	// Name identifies the program in diagnostics, e.g. a file name or
	// "<stdin>".
	Name string
	// Debug traces every executed line and dumps the program state when
	// the run ends.
	Debug bool
	// Interactive makes sure printed values end with a line break.
	Interactive bool

	Stdout io.Writer
	Stderr io.Writer
	// Input feeds the in builtin.
	Input Source
}

type mode uint8

const (
	modeNormal mode = iota
	// Lines are read and recorded, but not executed, until the label being
	// sought is declared.
	modeSeeking
)

// assignment is the target of a line, if it has one.
type assignment struct {
	name     string
	declared bool
	kind     Kind
}

// Interpreter drives the read, parse and execute cycle. Lines are tokenized
// only when execution reaches them, so a program can be fed interactively,
// and are kept so that jumping back does not parse anything again.
type Interpreter struct {
	config   Config
	scanner  *Scanner
	state    *State
	resolver *Resolver
	reporter Reporter

	lines   []*Line
	mode    mode
	seeking Label
}

// NewInterpreter prepares a run of the program read from source.
func NewInterpreter(source Source, config Config, reporter Reporter) *Interpreter {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if config.Input == nil {
		config.Input = NewReaderSource(os.Stdin)
	}
	if config.Name == "" {
		config.Name = "<stdin>"
	}
	state := NewState(config.Input, config.Stdout, config.Stderr)
	return &Interpreter{
		config:   config,
		scanner:  NewScanner(source),
		state:    state,
		resolver: NewResolver(state),
		reporter: reporter,
	}
}

// State exposes the program state, mostly for inspection after a run.
func (in *Interpreter) State() *State {
	return in.state
}

// Run executes the program until the input ends or a fatal error occurs.
// Fatal errors are reported and returned; an exit request is returned as an
// *ExitError without being reported.
func (in *Interpreter) Run() error {
	in.state.reset()

	err := in.run()
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			in.reporter.Report(err)
		}
	}
	if in.config.Debug {
		fmt.Fprintln(in.config.Stderr, "DONE")
		if dumpErr := in.state.Dump(in.config.Stderr); dumpErr != nil && err == nil {
			err = dumpErr
		}
	}
	return err
}

func (in *Interpreter) run() error {
	index := 0
	for {
		if index >= len(in.lines) {
			line, err := in.scanner.Next()
			if err == io.EOF {
				if in.mode == modeSeeking {
					return in.fail(in.lastLine(), NewRuntimeError(nil, fmt.Sprintf("Label \"%s\" not found!", string(in.seeking))))
				}
				return nil
			}
			if err != nil {
				return in.fail(line, err)
			}
			in.lines = append(in.lines, line)
		}
		line := in.lines[index]

		if name, ok := line.Label(); ok {
			if err := in.state.DefineLabel(name, index); err != nil {
				return in.fail(line, NewRuntimeError(line.Tokens[0], err.Error()))
			}
			if in.mode == modeSeeking && Label(name) == in.seeking {
				in.mode = modeNormal
				in.seeking = ""
			}
			index++
			continue
		}

		if in.mode == modeSeeking {
			index++
			continue
		}

		jumpTo, err := in.execLine(line)
		if err != nil {
			return in.fail(line, err)
		}
		if jumpTo == "" {
			index++
			continue
		}
		if target, ok := in.state.Label(string(jumpTo)); ok {
			index = target
			continue
		}
		in.mode = modeSeeking
		in.seeking = jumpTo
		index++
	}
}

// execLine runs a single line and returns the label it asks to jump to.
func (in *Interpreter) execLine(line *Line) (Label, error) {
	if in.config.Debug {
		fmt.Fprintf(in.config.Stderr, "RUN %d\t| %s\n", line.Number, line)
	}

	assign, start, err := splitAssignment(line.Tokens)
	if err != nil {
		return "", err
	}

	if start >= len(line.Tokens) {
		return "", NewSyntaxError(line.Tokens[start-1], "Missing expression!")
	}
	out, n, err := in.resolver.Resolve(line.Tokens[start:])
	if err != nil {
		return "", err
	}
	end := start + n
	if end < len(line.Tokens) && line.Tokens[end].Typ == TokenOnFail {
		skip, err := skipHandler(line.Tokens[end:])
		if err != nil {
			return "", err
		}
		end += skip
	}
	if end < len(line.Tokens) {
		tok := line.Tokens[end]
		return "", NewSyntaxError(tok, fmt.Sprintf("Unexpected token \"%s\" after expression!", tok.Lexeme))
	}

	if err := in.assign(assign, out.Value, line); err != nil {
		return "", err
	}
	return out.JumpTo, nil
}

// splitAssignment separates the assignment target from the expression and
// returns the index the expression starts at.
//
//	line --> ( DATA_TYPE? PLAIN ":" )? expression ;
func splitAssignment(tokens []*Token) (*assignment, int, error) {
	at := -1
	for i, tok := range tokens {
		if tok.Typ == TokenAssign {
			at = i
			break
		}
	}

	switch at {
	case -1:
		return nil, 0, nil
	case 1:
		if tokens[0].Typ != TokenPlain {
			return nil, 0, NewSyntaxError(tokens[0], fmt.Sprintf("Variable name \"%s\" is invalid!", tokens[0].Lexeme))
		}
		return &assignment{name: tokens[0].Text}, 2, nil
	case 2:
		if tokens[0].Typ != TokenDataType {
			return nil, 0, NewSyntaxError(tokens[0], fmt.Sprintf("Variable type \"%s\" is invalid!", tokens[0].Lexeme))
		}
		if tokens[1].Typ != TokenPlain {
			return nil, 0, NewSyntaxError(tokens[1], fmt.Sprintf("Variable name \"%s\" is invalid!", tokens[1].Lexeme))
		}
		return &assignment{name: tokens[1].Text, declared: true, kind: tokens[0].DataType}, 3, nil
	}
	return nil, 0, NewSyntaxError(tokens[at], "Invalid assignment!")
}

// assign stores v into the target of the line, or prints it when the line
// has no target.
func (in *Interpreter) assign(target *assignment, v Value, line *Line) error {
	if target == nil {
		text := v.String()
		if in.config.Interactive && text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if _, err := io.WriteString(in.config.Stdout, text); err != nil {
			return &IOError{err}
		}
		return nil
	}

	var err error
	if target.declared {
		err = in.state.Declare(target.name, target.kind, v)
	} else {
		err = in.state.Assign(target.name, v)
	}
	if err != nil {
		return NewRuntimeError(line.Tokens[0], err.Error())
	}
	return nil
}

// fail wraps err with the position it was raised at.
func (in *Interpreter) fail(line *Line, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return newDiagnostic(in.config.Name, line, err)
}

func (in *Interpreter) lastLine() *Line {
	if len(in.lines) == 0 {
		return nil
	}
	return in.lines[len(in.lines)-1]
}
