package runk

import "fmt"

// Resolver evaluates expressions straight from the token stream. There is
// no syntax tree: every call works out how far its expression reaches while
// computing its value, and reports how many tokens it consumed so the caller
// can carry on after it.
//
//	expression --> NUMBER | TEXT | LABEL | VARIABLE | call ;
//	call       --> "(" PLAIN ( expression handler? )* ")" handler? ;
//	handler    --> "->" ( LABEL | call ) ;
type Resolver struct {
	state *State
}

func NewResolver(state *State) *Resolver {
	return &Resolver{state}
}

// Resolve evaluates the expression at the start of tokens. It returns the
// outcome of the expression and the number of tokens it spans. A failed
// evaluation still reports how far it got, so the failing position can be
// shown.
func (r *Resolver) Resolve(tokens []*Token) (Outcome, int, error) {
	if len(tokens) == 0 {
		return Outcome{}, 0, NewSyntaxError(nil, "Missing expression!")
	}

	tok := tokens[0]
	switch tok.Typ {
	case TokenFunctionStart:
		return r.resolveCall(tokens)
	case TokenVariable:
		v, ok := r.state.Var(tok.Text)
		if !ok {
			return Outcome{}, 1, NewRuntimeError(tok, fmt.Sprintf("Variable \"%s\" accessed while undefined!", tok.Text))
		}
		return Outcome{Value: v}, 1, nil
	case TokenNumber:
		n, ok := ParseNumber(tok.Text)
		if !ok {
			return Outcome{}, 1, NewSyntaxError(tok, "Invalid numeric literal!")
		}
		return Outcome{Value: n}, 1, nil
	case TokenText:
		return Outcome{Value: Text(tok.Text)}, 1, nil
	case TokenLabel:
		return Outcome{Value: Label(tok.Text)}, 1, nil
	}
	return Outcome{}, 1, NewSyntaxError(tok, "Invalid token in expression!")
}

// resolveCall evaluates a function call; tokens[0] is the opening bracket.
//
// A successful call consumes its tokens up to and including the closing
// bracket: the closing bracket's index in the scan that starts after "("
// plus two. An on-fail handler following a successful call is left for the
// caller to skip.
func (r *Resolver) resolveCall(tokens []*Token) (Outcome, int, error) {
	var name *Token
	var args []Value
	var jumpTo Label

	i := 1
	for i < len(tokens) {
		tok := tokens[i]

		if tok.Typ == TokenFunctionEnd {
			if name == nil {
				return Outcome{}, i + 1, NewSyntaxError(tok, "Function name is missing!")
			}
			out, err := callFunction(r.state, name, args)
			if err != nil {
				return r.recoverCall(tokens, i, err)
			}
			if out.JumpTo == "" {
				out.JumpTo = jumpTo
			}
			return out, i + 1, nil
		}

		if name == nil {
			if tok.Typ != TokenPlain {
				return Outcome{}, i + 1, NewSyntaxError(tok, fmt.Sprintf("\"%s\" is not a valid function name!", tok.Lexeme))
			}
			name = tok
			i++
			continue
		}

		// The handler of an operand that succeeded.
		if tok.Typ == TokenOnFail {
			n, err := skipHandler(tokens[i:])
			if err != nil {
				return Outcome{}, i + n, err
			}
			i += n
			continue
		}

		out, n, err := r.Resolve(tokens[i:])
		if err != nil {
			if end, ok := closingIndex(tokens); ok && recoverable(err) {
				return r.recoverCall(tokens, end, err)
			}
			return Outcome{}, i + n, err
		}
		if jumpTo == "" {
			jumpTo = out.JumpTo
		}
		args = append(args, out.Value)
		i += n
	}

	return Outcome{}, i, NewSyntaxError(tokens[0], "Expression ended abruptly!")
}

// recoverCall runs the on-fail handler of the call whose closing bracket is
// at tokens[end]. Without a handler err is returned as is. When a handler
// runs, the consumed count covers the failed call and the whole handler.
func (r *Resolver) recoverCall(tokens []*Token, end int, err error) (Outcome, int, error) {
	marker := end + 1
	if marker >= len(tokens) || tokens[marker].Typ != TokenOnFail {
		return Outcome{}, end + 1, err
	}
	if !recoverable(err) {
		return Outcome{}, end + 1, err
	}

	r.state.setLastError(failureMessage(err))

	h := marker + 1
	if h >= len(tokens) {
		return Outcome{}, h, NewSyntaxError(tokens[marker], "Missing handler after \"->\"!")
	}
	switch tokens[h].Typ {
	case TokenLabel:
		return Outcome{Value: Nat(0), JumpTo: Label(tokens[h].Text)}, h + 1, nil
	case TokenFunctionStart:
		out, n, herr := r.Resolve(tokens[h:])
		return out, h + n, herr
	}
	return Outcome{}, h + 1, NewSyntaxError(tokens[h], "Expected a label or a function after \"->\"!")
}

func failureMessage(err error) string {
	if rt, ok := err.(*RuntimeError); ok {
		return rt.Message
	}
	return err.Error()
}

// closingIndex returns the index of the bracket closing tokens[0].
func closingIndex(tokens []*Token) (int, bool) {
	depth := 0
	for i, tok := range tokens {
		switch tok.Typ {
		case TokenFunctionStart:
			depth++
		case TokenFunctionEnd:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// skipHandler returns the length of the on-fail handler starting at
// tokens[0] without evaluating it.
func skipHandler(tokens []*Token) (int, error) {
	if len(tokens) < 2 {
		return len(tokens), NewSyntaxError(tokens[0], "Missing handler after \"->\"!")
	}
	switch tokens[1].Typ {
	case TokenLabel:
		return 2, nil
	case TokenFunctionStart:
		if end, ok := closingIndex(tokens[1:]); ok {
			return end + 2, nil
		}
		return len(tokens), NewSyntaxError(tokens[1], "Expression ended abruptly!")
	}
	return 2, NewSyntaxError(tokens[1], "Expected a label or a function after \"->\"!")
}
