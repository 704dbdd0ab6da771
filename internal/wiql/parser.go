package wiql

import "fmt"

// Parse tokenizes and parses filter-expression source.
//
// The parser recovers from partial input: a condition missing its operator or
// value is kept in the tree, and unexpected tokens produce a ParseError and
// are skipped. The semantic layer relies on this when deriving completion
// context from mid-edit queries.
func Parse(src string) *ParseResult {
	p := &parser{
		toks:   Lex(src),
		result: &ParseResult{Source: src},
	}
	p.result.Tokens = p.toks

	if p.peek().Kind != TokEOF {
		p.result.Root = p.parseOr()
	}
	if p.peek().Kind != TokEOF {
		p.errorf(p.peek().Span, "unexpected %q", p.peek().Text)
	}
	return p.result
}

type parser struct {
	toks   []Token
	pos    int
	result *ParseResult
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(sp Span, format string, args ...any) {
	p.result.Errors = append(p.result.Errors, ParseError{
		Span:    sp,
		Message: fmt.Sprintf(format, args...),
	})
}

// peekKeyword reports whether the current token is the given bare keyword.
func (p *parser) peekKeyword(kw string) bool {
	t := p.peek()
	return t.Kind == TokIdent && lower(t.Text) == kw
}

func (p *parser) parseOr() Expr {
	left := p.parseAnd()
	for p.peekKeyword("or") {
		p.next()
		right := p.parseAnd()
		if right == nil {
			return left
		}
		left = &BinaryExpr{Op: LogicalOr, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAnd() Expr {
	left := p.parseUnary()
	for p.peekKeyword("and") {
		p.next()
		right := p.parseUnary()
		if right == nil {
			return left
		}
		left = &BinaryExpr{Op: LogicalAnd, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseUnary() Expr {
	if p.peekKeyword("not") {
		not := p.next()
		inner := p.parseUnary()
		end := not.Span.End
		if inner != nil {
			end = inner.Span().End
		}
		return &NotExpr{Expr: inner, Sp: Span{not.Span.Start, end}}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() Expr {
	if p.peek().Kind == TokLParen {
		open := p.next()
		inner := p.parseOr()
		end := open.Span.End
		if inner != nil {
			end = inner.Span().End
		}
		if p.peek().Kind == TokRParen {
			end = p.next().Span.End
		} else {
			p.errorf(p.peek().Span, "expected )")
		}
		return &GroupExpr{Expr: inner, Sp: Span{open.Span.Start, end}}
	}
	return p.parseCondition()
}

func (p *parser) parseCondition() Expr {
	cond := &Condition{}

	// Optional link prefix: source.[Field] or target.[Field].
	if p.peekKeyword("source") || p.peekKeyword("target") {
		if p.toks[p.pos+1].Kind == TokDot {
			t := p.next()
			p.next() // dot
			if lower(t.Text) == "source" {
				cond.Prefix = PrefixSource
			} else {
				cond.Prefix = PrefixTarget
			}
			cond.Sp = t.Span
		}
	}

	switch t := p.peek(); t.Kind {
	case TokField:
		p.next()
		cond.Field = &FieldRef{Name: t.Text, Sp: t.Span}
	case TokIdent:
		if !IsKeyword(t.Text) {
			p.next()
			cond.Field = &FieldRef{Name: t.Text, Sp: t.Span}
		}
	}

	if cond.Field == nil {
		if cond.Prefix == PrefixNone {
			p.errorf(p.peek().Span, "expected field reference")
			// Skip one token so the parse loop makes progress.
			if p.peek().Kind != TokEOF {
				p.next()
			}
			return nil
		}
		return cond
	}
	if cond.Sp == (Span{}) {
		cond.Sp = cond.Field.Sp
	}
	cond.Sp.End = cond.Field.Sp.End

	op, ok := p.parseOperator()
	if !ok {
		return cond // bare field, mid-edit
	}
	cond.Op = &op
	cond.Sp.End = op.Sp.End

	if op.Kind == OpIn && p.peek().Kind == TokLParen {
		p.next()
		cond.List = p.parseValueList()
		if p.peek().Kind == TokRParen {
			cond.Sp.End = p.next().Span.End
		} else {
			p.errorf(p.peek().Span, "expected )")
		}
		return cond
	}

	v := p.parseValue()
	if v == nil {
		return cond // operator typed, value pending
	}
	cond.Value = v
	cond.Sp.End = v.Span().End
	return cond
}

// parseOperator consumes a comparison operator, merging the two-word forms
// "contains words", "in group", and "was ever".
func (p *parser) parseOperator() (Operator, bool) {
	t := p.peek()
	switch t.Kind {
	case TokEq:
		p.next()
		return Operator{Kind: OpEquals, Sp: t.Span}, true
	case TokNe:
		p.next()
		return Operator{Kind: OpNotEquals, Sp: t.Span}, true
	case TokGt:
		p.next()
		return Operator{Kind: OpGreater, Sp: t.Span}, true
	case TokLt:
		p.next()
		return Operator{Kind: OpLess, Sp: t.Span}, true
	case TokGe:
		p.next()
		return Operator{Kind: OpGreaterOrEqual, Sp: t.Span}, true
	case TokLe:
		p.next()
		return Operator{Kind: OpLessOrEqual, Sp: t.Span}, true
	case TokIdent:
		switch lower(t.Text) {
		case "contains":
			p.next()
			if p.peekKeyword("words") {
				w := p.next()
				return Operator{Kind: OpContainsWords, Sp: Span{t.Span.Start, w.Span.End}}, true
			}
			return Operator{Kind: OpContains, Sp: t.Span}, true
		case "in":
			p.next()
			if p.peekKeyword("group") {
				g := p.next()
				return Operator{Kind: OpInGroup, Sp: Span{t.Span.Start, g.Span.End}}, true
			}
			return Operator{Kind: OpIn, Sp: t.Span}, true
		case "under":
			p.next()
			return Operator{Kind: OpUnder, Sp: t.Span}, true
		case "ever":
			p.next()
			return Operator{Kind: OpEverWas, Sp: t.Span}, true
		case "was":
			p.next()
			if p.peekKeyword("ever") {
				e := p.next()
				return Operator{Kind: OpEverWas, Sp: Span{t.Span.Start, e.Span.End}}, true
			}
			return Operator{Kind: OpEverWas, Sp: t.Span}, true
		}
	}
	return Operator{}, false
}

func (p *parser) parseValue() Value {
	t := p.peek()
	switch t.Kind {
	case TokString:
		p.next()
		return &Literal{Kind: LitString, Text: t.Text, Sp: t.Span}
	case TokNumber:
		p.next()
		return &Literal{Kind: LitNumber, Text: t.Text, Sp: t.Span}
	case TokVariable:
		p.next()
		return &VariableRef{Name: t.Text, Sp: t.Span}
	case TokField:
		p.next()
		return &FieldRef{Name: t.Text, Sp: t.Span}
	case TokIdent:
		switch lower(t.Text) {
		case "true":
			p.next()
			return &Literal{Kind: LitTrue, Text: t.Text, Sp: t.Span}
		case "false":
			p.next()
			return &Literal{Kind: LitFalse, Text: t.Text, Sp: t.Span}
		}
		if !IsKeyword(t.Text) {
			p.next()
			return &FieldRef{Name: t.Text, Sp: t.Span}
		}
	}
	return nil
}

// parseValueList parses the comma-separated body of an In (...) group.
// The list may be empty. Order is preserved: elements are validated left to
// right and diagnostics follow list order.
func (p *parser) parseValueList() []Value {
	var list []Value
	if p.peek().Kind == TokRParen {
		return list
	}
	for {
		v := p.parseValue()
		if v == nil {
			p.errorf(p.peek().Span, "expected value in list")
			return list
		}
		list = append(list, v)
		if p.peek().Kind != TokComma {
			return list
		}
		p.next()
	}
}
