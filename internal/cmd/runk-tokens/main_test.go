package main

import (
	"strings"
	"testing"

	"github.com/OndrejZobal/runk/internal/runk"
	"github.com/stretchr/testify/assert"
)

func TestPrintTokens(t *testing.T) {
	var out strings.Builder
	err := printTokens(&out, strings.NewReader("Nat x : 5\n\n(out $x)\n"))

	assert.NoError(t, err)
	assert.Equal(t, "line 1: Nat x : 5\n"+
		"\tDATA_TYPE \"Nat\" 1:1\n"+
		"\tPLAIN \"x\" 1:5\n"+
		"\tASSIGN \":\" 1:7\n"+
		"\tNUMBER \"5\" 1:9\n"+
		"line 3: ( out $x )\n"+
		"\tFUNCTION_START \"(\" 3:1\n"+
		"\tPLAIN \"out\" 3:2\n"+
		"\tVARIABLE \"$x\" 3:6\n"+
		"\tFUNCTION_END \")\" 3:8\n", out.String())
}

func TestPrintTokensScanError(t *testing.T) {
	assert := assert.New(t)
	var out strings.Builder
	err := printTokens(&out, strings.NewReader("1\n(+ 1\n"))

	var syntaxErr *runk.SyntaxError
	assert.ErrorAs(err, &syntaxErr)
	assert.True(strings.HasPrefix(out.String(), "line 1: 1\n\tNUMBER \"1\" 1:1\nline 2: ( + 1\n"), out.String())
}
