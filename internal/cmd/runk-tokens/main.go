package main

// runk-tokens prints the logical lines of a runk program the way the
// interpreter's scanner splits them, one token per row.

import (
	"fmt"
	"io"
	"os"

	"github.com/OndrejZobal/runk/internal/runk"
)

func main() {
	args := os.Args[1:]
	if len(args) > 1 {
		fmt.Println("Usage: runk-tokens [script]")
		os.Exit(64)
	}

	if len(args) == 0 {
		exitOnError(printTokens(os.Stdout, os.Stdin), 65)
		return
	}

	f, err := os.Open(args[0])
	exitOnError(err, 1)
	err = printTokens(os.Stdout, f)
	f.Close()
	exitOnError(err, 65)
}

// printTokens scans r and writes every logical line and its tokens to w.
// Lines read before a scan error are still written.
func printTokens(w io.Writer, r io.Reader) error {
	scanner := runk.NewScanner(runk.NewReaderSource(r))
	for {
		line, err := scanner.Next()
		if err == io.EOF {
			return nil
		}
		if line != nil {
			printLine(w, line)
		}
		if err != nil {
			return err
		}
	}
}

func printLine(w io.Writer, line *runk.Line) {
	fmt.Fprintf(w, "line %d: %s\n", line.Number, line)
	for _, tok := range line.Tokens {
		fmt.Fprintf(w, "\t%v\n", tok)
	}
}

func exitOnError(err error, status int) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(status)
	}
}
