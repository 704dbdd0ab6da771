package wiql

// Context captures the parse state at a cursor position, as consumed by the
// completion filter: which grammar symbols the parser would accept next, the
// token immediately before the cursor, whether the cursor sits inside a
// condition's comparison, and the field being compared there.
type Context struct {
	Expected    map[Symbol]bool
	Prev        *Token // nil at start of input
	InCondition bool
	FieldName   string // field being compared; empty outside a condition
}

// Expects reports whether the parser accepts the given symbol at the cursor.
func (c *Context) Expects(sym Symbol) bool { return c.Expected[sym] }

// ContextAt derives the completion context for a byte offset into the parsed
// source. Offsets past the last token behave as end-of-input.
//
// The derivation is a single pass over the token stream: the previous token
// determines the expected-symbol set, and a running field/operator state
// determines the in-condition flag. This mirrors how the parser itself
// consumes tokens, without re-running it.
func ContextAt(result *ParseResult, offset int) *Context {
	ctx := &Context{Expected: map[Symbol]bool{}}

	var prev *Token
	var field string
	inCondition := false
	depth := 0         // open parens at cursor
	listDepth := -1    // paren depth at which an In-list opened, -1 when none

	for i := range result.Tokens {
		t := &result.Tokens[i]
		if t.Kind == TokEOF || t.Span.End > offset {
			break
		}
		prev = t

		switch t.Kind {
		case TokField:
			field = t.Text
			inCondition = false
		case TokIdent:
			switch lower(t.Text) {
			case "and", "or", "not":
				field = ""
				inCondition = false
			case "contains", "under", "ever", "was", "words", "group":
				if field != "" {
					inCondition = true
				}
			case "in":
				if field != "" {
					inCondition = true
				}
			case "true", "false":
				// boolean literal: comparison complete
			default:
				if field == "" {
					field = t.Text
				}
			}
		case TokEq, TokNe, TokGt, TokLt, TokGe, TokLe:
			if field != "" {
				inCondition = true
			}
		case TokLParen:
			depth++
			if inCondition && listDepth < 0 {
				listDepth = depth // the In-list opened
			} else {
				field = ""
				inCondition = false
			}
		case TokRParen:
			if depth == listDepth {
				listDepth = -1
				inCondition = false
				field = ""
			}
			if depth > 0 {
				depth--
			}
		}
	}

	ctx.Prev = prev
	ctx.InCondition = inCondition
	if inCondition {
		ctx.FieldName = field
	}
	ctx.Expected = expectedAfter(prev, inCondition, listDepth >= 0)
	return ctx
}

// expectedAfter computes the accepted grammar symbols given the previous
// token. inList refines behavior after commas and closing parens.
func expectedAfter(prev *Token, inCondition, inList bool) map[Symbol]bool {
	set := map[Symbol]bool{}
	if prev == nil {
		set[SymField] = true
		set[SymLParen] = true
		set[SymLogical] = true // not
		return set
	}

	switch prev.Kind {
	case TokField:
		set[SymOperator] = true

	case TokEq, TokNe, TokGt, TokLt, TokGe, TokLe:
		set[SymValue] = true
		set[SymVariable] = true
		set[SymField] = true

	case TokIdent:
		switch lower(prev.Text) {
		case "and", "or", "not":
			set[SymField] = true
			set[SymLParen] = true
			set[SymLogical] = true
		case "contains", "under", "ever", "group", "words":
			set[SymValue] = true
			set[SymVariable] = true
			set[SymField] = true
		case "in":
			// Either a list opens or a scalar value follows.
			set[SymLParen] = true
			set[SymValue] = true
			set[SymVariable] = true
		case "true", "false":
			set[SymLogical] = true
			if inList {
				set[SymComma] = true
				set[SymRParen] = true
			}
		default:
			// Bare identifier: a field when none is pending, a value otherwise.
			if inCondition {
				set[SymLogical] = true
				if inList {
					set[SymComma] = true
					set[SymRParen] = true
				}
			} else {
				set[SymOperator] = true
			}
		}

	case TokString, TokNumber, TokVariable:
		set[SymLogical] = true
		if inList {
			set[SymComma] = true
			set[SymRParen] = true
		}

	case TokLParen:
		if inList {
			set[SymValue] = true
			set[SymVariable] = true
			set[SymRParen] = true
		} else {
			set[SymField] = true
			set[SymLParen] = true
			set[SymLogical] = true
		}

	case TokComma:
		set[SymValue] = true
		set[SymVariable] = true

	case TokRParen:
		// A closed group: only a connective may follow. Notably the
		// variable symbol is NOT expected here.
		set[SymLogical] = true
	}

	return set
}
