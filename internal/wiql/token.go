package wiql

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokField    // bracketed field reference: [System.Title]
	TokIdent    // bare identifier or keyword: and, contains, title
	TokVariable // variable reference: @today
	TokString   // quoted string literal
	TokNumber   // integer or decimal literal
	TokEq       // =
	TokNe       // <>
	TokGt       // >
	TokLt       // <
	TokGe       // >=
	TokLe       // <=
	TokLParen   // (
	TokRParen   // )
	TokComma    // ,
	TokDot      // .
	TokError    // unrecognized input
)

// Token is a lexical token with its source span.
//
// Text holds the token as written, minus enclosing brackets for TokField and
// minus quotes for TokString. Span always covers the full source extent,
// brackets and quotes included.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

// Span is a half-open byte-offset range [Start, End) into the query source.
// Spans are stable and orderable; the consuming editor maps them to
// line/column ranges.
type Span struct {
	Start int
	End   int
}

// Symbol identifies a grammar symbol in the parser's expected-token set.
// The completion filter keys off these, not raw token kinds.
type Symbol int

const (
	SymField Symbol = iota
	SymOperator
	SymValue
	SymVariable
	SymLogical // and / or / not
	SymLParen
	SymRParen
	SymComma
)

// keywords maps lowercased bare identifiers that are reserved words.
var keywords = map[string]bool{
	"and": true, "or": true, "not": true,
	"in": true, "group": true, "under": true,
	"contains": true, "words": true,
	"ever": true, "was": true,
	"source": true, "target": true,
	"true": true, "false": true,
}

// IsKeyword reports whether a bare identifier is a reserved word.
func IsKeyword(text string) bool {
	return keywords[lower(text)]
}
