package runk

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

type pushMode uint8

const (
	// The closing character ends the current word and becomes part of it.
	pushJoined pushMode = iota
	// The current word is flushed, then the closing character becomes a
	// token of its own.
	pushSeparately
)

// closer is an entry of the nesting stack: the character that has to appear
// in the source before the entry can be popped.
type closer struct {
	char    rune
	push    pushMode
	literal bool
	opener  *Token
}

// Scanner turns physical lines pulled from a Source into logical Lines.
// Brackets and quotes left open at the end of a physical line make the
// scanner keep reading into the same Line.
type Scanner struct {
	source  Source
	line    int
	stack   []closer
	escaped bool

	acc       strings.Builder
	accLine   int
	accColumn int
	current   *Line
}

// NewScanner creates a scanner reading from source.
func NewScanner(source Source) *Scanner {
	return &Scanner{source: source}
}

// Next returns the next non-empty logical line, or io.EOF when the input is
// exhausted. When an error is returned together with a Line, the Line holds
// the part of the statement read before the error.
func (scanner *Scanner) Next() (*Line, error) {
	scanner.current = &Line{}
	for {
		raw, err := scanner.source.ReadLine(len(scanner.stack))
		if err == io.EOF {
			if len(scanner.stack) > 0 {
				return scanner.current, scanner.nestingError()
			}
			return nil, io.EOF
		}
		if err != nil {
			return scanner.current, fmt.Errorf("cannot read line %d: %w", scanner.line+1, err)
		}

		scanner.line++
		text := strings.TrimRight(raw, "\r\n")
		if scanner.current.Number == 0 {
			scanner.current.Number = scanner.line
		}
		scanner.current.Source = append(scanner.current.Source, text)
		scanner.scanLine(text)

		if len(scanner.stack) != 0 {
			continue
		}
		if len(scanner.current.Tokens) == 0 {
			scanner.current = &Line{}
			continue
		}
		return scanner.current, nil
	}
}

func (scanner *Scanner) nestingError() error {
	top := scanner.stack[len(scanner.stack)-1]
	return NewSyntaxError(top.opener, fmt.Sprintf(
		"Nesting error, missing a closing %q for %q opened at line %d!",
		string(top.char), top.opener.Lexeme, top.opener.Line,
	))
}

// scanLine feeds every character of a physical line, and the line break
// after it, through the scanner.
func (scanner *Scanner) scanLine(text string) {
	column := 0
	for _, r := range text {
		column++
		if !scanner.scanRune(r, column) {
			break
		}
	}
	// Outside literals an escaped line break is only a word break.
	if scanner.escaped && !scanner.literal() {
		scanner.escaped = false
	}
	scanner.scanRune('\n', column+1)

	// A word never continues past the end of a complete statement.
	if len(scanner.stack) == 0 {
		scanner.flush()
	}
}

// scanRune handles a single character. It returns false when the rest of
// the physical line is a comment.
func (scanner *Scanner) scanRune(r rune, column int) bool {
	if scanner.escaped {
		scanner.escaped = false
		scanner.accumulate(r, column)
		return true
	}

	if n := len(scanner.stack); n > 0 && scanner.stack[n-1].char == r {
		switch scanner.stack[n-1].push {
		case pushJoined:
			scanner.accumulate(r, column)
			scanner.flush()
		case pushSeparately:
			scanner.flush()
			scanner.emit(string(r), column)
		}
		scanner.stack = scanner.stack[:n-1]
		return true
	}

	if r == '\\' {
		scanner.escaped = true
		return true
	}
	if scanner.literal() {
		scanner.accumulate(r, column)
		return true
	}

	switch {
	case r == '#':
		scanner.flush()
		return false
	case unicode.IsSpace(r):
		scanner.flush()
	case r == '(':
		scanner.flush()
		tok := scanner.emit(string(r), column)
		scanner.stack = append(scanner.stack, closer{
			char:   ')',
			push:   pushSeparately,
			opener: tok,
		})
	case r == ':':
		scanner.flush()
		scanner.emit(string(r), column)
	case r == '"':
		scanner.flush()
		scanner.accumulate(r, column)
		scanner.stack = append(scanner.stack, closer{
			char:    '"',
			push:    pushJoined,
			literal: true,
			opener:  &Token{Typ: TokenPlain, Lexeme: `"`, Text: `"`, Line: scanner.line, Column: column},
		})
	default:
		scanner.accumulate(r, column)
	}
	return true
}

// literal reports whether characters are currently taken verbatim, which is
// decided by the innermost open construct.
func (scanner *Scanner) literal() bool {
	n := len(scanner.stack)
	return n > 0 && scanner.stack[n-1].literal
}

func (scanner *Scanner) accumulate(r rune, column int) {
	if scanner.acc.Len() == 0 {
		scanner.accLine = scanner.line
		scanner.accColumn = column
	}
	scanner.acc.WriteRune(r)
}

// flush turns the accumulated word into a token.
func (scanner *Scanner) flush() {
	if scanner.acc.Len() == 0 {
		return
	}
	tok := NewToken(scanner.acc.String(), scanner.accLine, scanner.accColumn)
	scanner.current.Tokens = append(scanner.current.Tokens, tok)
	scanner.acc.Reset()
}

func (scanner *Scanner) emit(word string, column int) *Token {
	tok := NewToken(word, scanner.line, column)
	scanner.current.Tokens = append(scanner.current.Tokens, tok)
	return tok
}
