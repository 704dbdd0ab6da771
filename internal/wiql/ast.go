package wiql

// Expr is the sealed interface for filter-expression nodes.
type Expr interface {
	exprNode() // seals the interface to this package
	Span() Span
}

// Value is the sealed interface for a condition's right-hand side.
// Exactly three shapes exist: a typed literal, a field reference, and a
// variable reference.
type Value interface {
	valueNode() // seals the interface to this package
	Span() Span
}

// LiteralKind identifies the concrete shape of a literal value.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitTrue
	LitFalse
)

// Literal is a value written directly in the query.
type Literal struct {
	Kind LiteralKind
	Text string
	Sp   Span
}

func (Literal) valueNode() {}

// Span returns the literal's source extent, quotes included.
func (l *Literal) Span() Span { return l.Sp }

// FieldRef is a reference to a work-item field, with or without brackets.
type FieldRef struct {
	Name string // as written, brackets stripped
	Sp   Span
}

func (FieldRef) valueNode() {}

func (f *FieldRef) Span() Span { return f.Sp }

// VariableRef is a predefined placeholder reference such as @today.
// Name keeps the leading sentinel character.
type VariableRef struct {
	Name string
	Sp   Span
}

func (VariableRef) valueNode() {}

func (v *VariableRef) Span() Span { return v.Sp }

// Operator is an operator occurrence with its source span.
type Operator struct {
	Kind OperatorKind
	Sp   Span
}

// LinkPrefix qualifies a condition in a link query.
type LinkPrefix int

const (
	PrefixNone LinkPrefix = iota
	PrefixSource
	PrefixTarget
)

// Condition is a single comparison: field operator value, or the group form
// field In (value, ...). Field, Op, Value, and List are each optional; a
// partially typed condition keeps whatever the parser saw.
type Condition struct {
	Prefix LinkPrefix
	Field  *FieldRef
	Op     *Operator
	Value  Value      // scalar form; nil for the group form
	List   []Value    // group form; nil for the scalar form
	Sp     Span
}

func (*Condition) exprNode() {}

func (c *Condition) Span() Span { return c.Sp }

// IsLink reports whether the condition carries a Source/Target qualifier.
func (c *Condition) IsLink() bool { return c.Prefix != PrefixNone }

// LogicalOp is a boolean connective between expressions.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// BinaryExpr joins two expressions with and/or.
type BinaryExpr struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

func (b *BinaryExpr) Span() Span {
	return Span{Start: b.Left.Span().Start, End: b.Right.Span().End}
}

// NotExpr negates an expression.
type NotExpr struct {
	Expr Expr
	Sp   Span
}

func (*NotExpr) exprNode() {}

func (n *NotExpr) Span() Span { return n.Sp }

// GroupExpr is a parenthesized expression.
type GroupExpr struct {
	Expr Expr
	Sp   Span
}

func (*GroupExpr) exprNode() {}

func (g *GroupExpr) Span() Span { return g.Sp }

// ParseError is a syntax-level error. Syntax errors are reported separately
// from semantic diagnostics and never reach the validator.
type ParseError struct {
	Span    Span
	Message string
}

// ParseResult is the parser's output: the expression tree (possibly nil for
// empty input), the full token stream, and any syntax errors.
type ParseResult struct {
	Root   Expr
	Tokens []Token
	Errors []ParseError
	Source string
}

// Conditions returns every condition node, link conditions included, in
// left-to-right traversal order. Diagnostic order follows this order.
func (r *ParseResult) Conditions() []*Condition {
	var out []*Condition
	collectConditions(r.Root, &out)
	return out
}

func collectConditions(e Expr, out *[]*Condition) {
	switch n := e.(type) {
	case nil:
	case *Condition:
		*out = append(*out, n)
	case *BinaryExpr:
		collectConditions(n.Left, out)
		collectConditions(n.Right, out)
	case *NotExpr:
		collectConditions(n.Expr, out)
	case *GroupExpr:
		collectConditions(n.Expr, out)
	}
}
