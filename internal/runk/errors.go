package runk

import (
	"errors"
	"fmt"
)

var (
	errDivisionByZero = errors.New("Division by zero!")
	errEndOfInput     = errors.New("End of input reached!")
)

// SyntaxError is raised for a malformed token stream.
type SyntaxError struct {
	Token   *Token
	Message string
}

func NewSyntaxError(token *Token, message string) error {
	return &SyntaxError{token, message}
}

func (err *SyntaxError) Error() string {
	if err.Token == nil {
		return err.Message
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", err.Token.Line, err.Token.Lexeme, err.Message)
}

// RuntimeError is raised when a well-formed line cannot be executed.
type RuntimeError struct {
	Token   *Token
	Message string
}

func NewRuntimeError(token *Token, message string) error {
	return &RuntimeError{token, message}
}

func (err *RuntimeError) Error() string {
	if err.Token == nil {
		return err.Message
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", err.Token.Line, err.Token.Lexeme, err.Message)
}

// ExitError asks for the program to stop with the given status.
type ExitError struct {
	Code int
}

func (err *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", err.Code)
}

// IOError wraps a failure of the program's input or output streams.
type IOError struct {
	Err error
}

func (err *IOError) Error() string {
	return "I/O error: " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// recoverable reports whether an on-fail handler may take over after err.
// Only runtime errors qualify; syntax errors, exit requests and I/O failures
// always end the run.
func recoverable(err error) bool {
	var runtimeErr *RuntimeError
	return errors.As(err, &runtimeErr)
}

// Diagnostic places a fatal error in the source it was raised for.
type Diagnostic struct {
	File string
	// Line is the number of the physical line the error points at.
	Line int
	// Source is the text of that line.
	Source string
	// Column of the implicated token, 0 when no token is implicated.
	Column int
	Err    error
}

// newDiagnostic locates err within line. The implicated token, if any,
// decides which physical line of a multi-line statement is shown.
func newDiagnostic(file string, line *Line, err error) *Diagnostic {
	diag := &Diagnostic{File: file, Err: err}
	if line == nil {
		return diag
	}
	diag.Line = line.Number
	if len(line.Source) > 0 {
		diag.Source = line.Source[0]
	}
	if tok := errorToken(err); tok != nil {
		if src, ok := line.SourceLine(tok.Line); ok {
			diag.Line = tok.Line
			diag.Source = src
			diag.Column = tok.Column
		}
	}
	return diag
}

func errorToken(err error) *Token {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Token
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Token
	}
	return nil
}

// Message returns the error text without position information.
func (d *Diagnostic) Message() string {
	var syntaxErr *SyntaxError
	if errors.As(d.Err, &syntaxErr) {
		return syntaxErr.Message
	}
	var runtimeErr *RuntimeError
	if errors.As(d.Err, &runtimeErr) {
		return runtimeErr.Message
	}
	return d.Err.Error()
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message())
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}
