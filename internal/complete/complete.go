// Package complete filters the predefined-variable table into completion
// suggestions for a cursor position, using the parse context to decide
// whether variables are syntactically expected and which declared type they
// must match.
package complete

import (
	"strings"

	"github.com/querytools/wiqlint/internal/fields"
	"github.com/querytools/wiqlint/internal/vartab"
	"github.com/querytools/wiqlint/internal/wiql"
)

// Suggestion is one completion item. Label is what the editor displays;
// InsertText is what replaces or extends the token under the cursor.
type Suggestion struct {
	Label      string `json:"label"`
	InsertText string `json:"insertText"`
}

// ListVariables returns one suggestion per declared variable whose type
// equals expected, or every variable when expected is nil. Order follows the
// table's insertion order. Labels and insertion text both keep the sentinel;
// CurrentVariableCompletions strips it where replacement semantics apply.
func ListVariables(tab *vartab.Table, expected *fields.FieldType) []Suggestion {
	var out []Suggestion
	for _, e := range tab.Entries() {
		if expected != nil && e.Type != *expected {
			continue
		}
		out = append(out, Suggestion{Label: e.Name, InsertText: e.Name})
	}
	return out
}

// IncludeIfExpected appends variable suggestions to out when a variable is
// syntactically expected at the cursor. Two gates apply: the parser's
// expected-symbol set must include the variable symbol, and the previous
// token must not be a completed group — a variable directly after a closing
// parenthesis is never valid.
//
// Inside a condition's comparison the suggestions are filtered to the
// compared field's type; outside, no type restriction applies.
func IncludeIfExpected(tab *vartab.Table, lookup fields.Lookup, ctx *wiql.Context, out *[]Suggestion) {
	if !ctx.Expects(wiql.SymVariable) {
		return
	}
	if ctx.Prev != nil && ctx.Prev.Kind == wiql.TokRParen {
		return
	}
	*out = append(*out, ListVariables(tab, expectedType(lookup, ctx))...)
}

// CurrentVariableCompletions handles the mid-typed-variable case: the token
// before the cursor is itself a variable reference and the cursor sits
// exactly at its end. The returned insertion text has the sentinel stripped,
// since the editor replaces the in-progress token whose sentinel is already
// typed; labels keep it.
//
// The second return is false when this mode does not apply, so the caller
// can fall through to other completion sources. That signal is distinct
// from an applicable-but-empty suggestion list.
func CurrentVariableCompletions(tab *vartab.Table, lookup fields.Lookup, ctx *wiql.Context, cursor int) ([]Suggestion, bool) {
	prev := ctx.Prev
	if prev == nil || prev.Kind != wiql.TokVariable || cursor != prev.Span.End {
		return nil, false
	}
	list := ListVariables(tab, expectedType(lookup, ctx))
	for i := range list {
		list[i].InsertText = strings.TrimPrefix(list[i].InsertText, vartab.Sentinel)
	}
	return list, true
}

// expectedType resolves the type filter from the parse context: the compared
// field's declared type when the cursor is inside a condition, nil otherwise
// or when the field is unknown.
func expectedType(lookup fields.Lookup, ctx *wiql.Context) *fields.FieldType {
	if !ctx.InCondition || ctx.FieldName == "" {
		return nil
	}
	info, ok := lookup.Get(ctx.FieldName)
	if !ok {
		return nil
	}
	t := info.Type
	return &t
}
