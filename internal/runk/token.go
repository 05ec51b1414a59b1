package runk

import (
	"fmt"
	"strings"
)

// TokenType classifies a word read from the source.
type TokenType uint8

const (
	// Structural tokens
	TokenAssign        TokenType = iota // :
	TokenFunctionStart                  // (
	TokenFunctionEnd                    // )
	TokenOnFail                         // ->

	// Type keyword of a declarative assignment
	TokenDataType

	// Literals
	TokenText
	TokenLabel
	TokenNumber

	// Names
	TokenVariable
	TokenPlain
)

func (tt TokenType) String() string {
	switch tt {
	case TokenAssign:
		return "ASSIGN"
	case TokenFunctionStart:
		return "FUNCTION_START"
	case TokenFunctionEnd:
		return "FUNCTION_END"
	case TokenOnFail:
		return "ON_FAIL"
	case TokenDataType:
		return "DATA_TYPE"
	case TokenText:
		return "TEXT"
	case TokenLabel:
		return "LABEL"
	case TokenNumber:
		return "NUMBER"
	case TokenVariable:
		return "VARIABLE"
	case TokenPlain:
		return "PLAIN"
	}
	return ""
}

// Token is a classified word together with where it was found.
type Token struct {
	Typ TokenType
	// Lexeme is the word exactly as it appeared in the source.
	Lexeme string
	// Text is the payload: the content of a text literal, the name of a
	// label or variable, the digits of a number, or the lexeme itself.
	Text string
	// DataType is set for TokenDataType tokens.
	DataType Kind
	Line     int
	Column   int
}

// NewToken classifies lexeme. It returns nil for an empty word.
func NewToken(lexeme string, line, column int) *Token {
	if lexeme == "" {
		return nil
	}
	tok := &Token{Typ: TokenPlain, Lexeme: lexeme, Text: lexeme, Line: line, Column: column}

	if _, ok := ParseNumber(lexeme); ok {
		tok.Typ = TokenNumber
		return tok
	}
	if len(lexeme) >= 2 {
		switch {
		case strings.HasPrefix(lexeme, `"`) && strings.HasSuffix(lexeme, `"`):
			tok.Typ = TokenText
			tok.Text = lexeme[1 : len(lexeme)-1]
			return tok
		case lexeme[0] == '!':
			tok.Typ = TokenLabel
			tok.Text = lexeme[1:]
			return tok
		case lexeme[0] == '$':
			tok.Typ = TokenVariable
			tok.Text = lexeme[1:]
			return tok
		}
	}

	switch lexeme {
	case ":":
		tok.Typ = TokenAssign
	case "(":
		tok.Typ = TokenFunctionStart
	case ")":
		tok.Typ = TokenFunctionEnd
	case "->":
		tok.Typ = TokenOnFail
	default:
		if k, ok := typeKeywords[lexeme]; ok {
			tok.Typ = TokenDataType
			tok.DataType = k
		}
	}
	return tok
}

func (t *Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Typ, t.Lexeme, t.Line, t.Column)
}

// Line is one logical statement. It may span several physical lines when a
// bracket or a quote was left open.
type Line struct {
	Tokens []*Token
	// Source holds the physical lines the statement was read from, without
	// line terminators.
	Source []string
	// Number is the number of the first physical line, starting at 1.
	Number int
}

// Label returns the label a line declares. Only a line made of a single
// label literal is a declaration.
func (l *Line) Label() (string, bool) {
	if len(l.Tokens) != 1 || l.Tokens[0].Typ != TokenLabel {
		return "", false
	}
	return l.Tokens[0].Text, true
}

// SourceLine returns the physical line with the given number, if it belongs
// to this statement.
func (l *Line) SourceLine(number int) (string, bool) {
	i := number - l.Number
	if i < 0 || i >= len(l.Source) {
		return "", false
	}
	return l.Source[i], true
}

func (l *Line) String() string {
	words := make([]string, len(l.Tokens))
	for i, tok := range l.Tokens {
		words[i] = tok.Lexeme
	}
	return strings.Join(words, " ")
}
