// Package wiql defines the surface of the work-item query filter language:
// tokens, operator kinds, and the abstract syntax tree the semantic layer
// consumes, plus a small recursive-descent parser for the filter-expression
// subset.
//
// GRAMMAR (filter expressions only; SELECT/FROM framing is out of scope):
//
//	expr      = orExpr
//	orExpr    = andExpr { "or" andExpr }
//	andExpr   = unary { "and" unary }
//	unary     = "not" unary | primary
//	primary   = "(" expr ")" | condition
//	condition = [prefix "."] field [ operator value | "in" "(" list ")" ]
//	prefix    = "source" | "target"
//	value     = literal | field | variable
//	list      = [ value { "," value } ]
//
// SEALED INTERFACES:
//
// Value and Expr are sealed interfaces using the marker method pattern.
// Only types in this package implement them, which enables exhaustive type
// switches in the validator and completion filter.
//
// The parser is deliberately forgiving: a condition may stop after its field
// reference or its operator. Partial conditions are preserved in the AST so
// the completion context can be derived from them; the semantic validator
// skips conditions it cannot type-check.
package wiql
