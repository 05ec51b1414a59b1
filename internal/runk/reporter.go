package runk

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reporter defines the interface for structures that display errors to the
// user. It separates the code raising errors from the code showing them.
type Reporter interface {
	Report(err error)
	HadError() bool
	HadRuntimeError() bool
}

// SimpleReporter writes each error with the offending source line and a
// caret under the implicated token.
type SimpleReporter struct {
	writer        io.Writer
	color         bool
	hadErr        bool
	hadRuntimeErr bool
}

// NewSimpleReporter creates a reporter writing to writer. With color set the
// error headings are highlighted using ANSI escapes.
func NewSimpleReporter(writer io.Writer, color bool) Reporter {
	return &SimpleReporter{writer: writer, color: color}
}

func (reporter *SimpleReporter) Report(err error) {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}

	var diag *Diagnostic
	if !errors.As(err, &diag) {
		fmt.Fprintf(reporter.writer, "%s%v\n", reporter.heading(err), err)
		return
	}

	fmt.Fprintf(reporter.writer, "%s%s\n", reporter.heading(err), diag)
	if diag.Source == "" {
		return
	}
	fmt.Fprintln(reporter.writer, diag.Source)
	if diag.Column > 0 {
		fmt.Fprintln(reporter.writer, caret(diag.Source, diag.Column))
	}
}

func (reporter *SimpleReporter) heading(err error) string {
	var syntaxErr *SyntaxError
	var runtimeErr *RuntimeError
	heading := "Error: "
	switch {
	case errors.As(err, &syntaxErr):
		heading = "Syntax Error: "
	case errors.As(err, &runtimeErr):
		heading = "Runtime Error: "
	}
	if reporter.color {
		return "\x1b[1;31m" + heading + "\x1b[0m"
	}
	return heading
}

// caret returns a line with '^' under the given column of source. Tabs are
// kept so the caret lines up however the terminal renders them.
func caret(source string, column int) string {
	var b strings.Builder
	i := 0
	for _, r := range source {
		i++
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteRune('^')
	return b.String()
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

