package main

// This is an interpreter for the runk programming language written in Go.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OndrejZobal/runk/internal/runk"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const banner = "runk interactive mode, Ctrl-D to quit"

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	status := 0
	var debug, interactive bool

	cmd := &cobra.Command{
		Use:           "runk [flags] [script]",
		Short:         "Interpreter for the runk language",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				status = runFile(args[0], debug, interactive)
				return
			}
			if !cmd.Flags().Changed("interactive") {
				interactive = isTerminal(os.Stdin)
			}
			status = runStdin(debug, interactive)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "trace every executed line and dump the program state at the end")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for input and end every printed value with a line break (default when stdin is a terminal)")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 64
	}
	return status
}

// Run the given file as script
func runFile(path string, debug, interactive bool) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read file %q: %v\n", path, err)
		return 1
	}
	defer f.Close()

	config := runk.Config{
		Name:        path,
		Debug:       debug,
		Interactive: interactive,
		Input:       runk.NewReaderSource(os.Stdin),
	}
	return run(runk.NewReaderSource(f), config)
}

// Run the program read from stdin, in REPL mode when stdin is a terminal
func runStdin(debug, interactive bool) int {
	config := runk.Config{
		Name:        "<stdin>",
		Debug:       debug,
		Interactive: interactive,
	}

	if !interactive || !isTerminal(os.Stdin) {
		// The program and the in builtin share the buffered reader, so
		// neither steals lines meant for the other.
		src := runk.NewReaderSource(os.Stdin)
		config.Input = src
		return run(src, config)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Fprintln(os.Stderr, banner)
	config.Input = &promptSource{ln, inputPrompt}
	return run(&promptSource{ln, codePrompt}, config)
}

func run(src runk.Source, config runk.Config) int {
	reporter := runk.NewSimpleReporter(os.Stderr, isTerminal(os.Stderr))
	interpreter := runk.NewInterpreter(src, config, reporter)
	return exitStatus(interpreter.Run(), reporter)
}

// exitStatus picks the process status for the outcome of a run: the code an
// exit request asked for, 65 after a syntax error and 70 after a runtime
// error.
func exitStatus(err error, reporter runk.Reporter) int {
	var exitErr *runk.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case reporter.HadError():
		return 65
	case reporter.HadRuntimeError():
		return 70
	case err != nil:
		return 1
	}
	return 0
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// promptSource reads lines through a line editor.
type promptSource struct {
	ln     *liner.State
	prompt func(depth int) string
}

func (src *promptSource) ReadLine(depth int) (string, error) {
	line, err := src.ln.Prompt(src.prompt(depth))
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		src.ln.AppendHistory(line)
	}
	return line + "\n", nil
}

func codePrompt(depth int) string {
	if depth == 0 {
		return "runk) "
	}
	return fmt.Sprintf("runk [nesting: %d]) ", depth)
}

func inputPrompt(int) string {
	return ""
}
