/*
Package runk implements an interpreter for runk, a line oriented scripting
language written in prefix notation.

Grammar

	program    --> line* EOF ;
	line       --> LABEL
	             | ( DATA_TYPE? PLAIN ":" )? expression ;
	expression --> NUMBER | TEXT | LABEL | VARIABLE | call ;
	call       --> "(" PLAIN ( expression handler? )* ")" handler? ;
	handler    --> "->" ( LABEL | call ) ;

Lexical elements

	NUMBER     decimal integer, optionally signed: 42, -7
	TEXT       "..." ; may span lines, '\' escapes the next character
	LABEL      !name
	VARIABLE   $name
	DATA_TYPE  Nat | Int | Txt | Lab
	comment    # up to the end of the physical line

A line without an assignment prints the value of its expression. A line
made of a single label declares that label; jumps to it continue execution
there. Jumps to labels further down the input are allowed: the interpreter
keeps reading without executing until the label shows up.
*/
package runk
