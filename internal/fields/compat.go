package fields

import (
	"fmt"

	"github.com/querytools/wiqlint/internal/wiql"
)

// CompatibilityEntry records which operator kinds are legal for a field type
// against each right-hand-side shape. The slices are ordered; diagnostics
// join them in this order.
type CompatibilityEntry struct {
	LiteralOps []wiql.OperatorKind // RHS is a literal or variable
	FieldOps   []wiql.OperatorKind // RHS is another field
	GroupOps   []wiql.OperatorKind // RHS is a value list
}

// Allows reports whether op is a member of the given set.
func Allows(ops []wiql.OperatorKind, op wiql.OperatorKind) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

// compatTable is built once at init and never mutated. Types are grouped by
// comparison semantics: the ordered numeric-like types share one entry, the
// free-text types share another, and string, boolean, and tree-path each get
// their own.
var compatTable = buildCompatTable()

func buildCompatTable() map[FieldType]CompatibilityEntry {
	ordered := CompatibilityEntry{
		LiteralOps: []wiql.OperatorKind{
			wiql.OpEquals, wiql.OpNotEquals,
			wiql.OpGreater, wiql.OpLess,
			wiql.OpGreaterOrEqual, wiql.OpLessOrEqual,
			wiql.OpEverWas,
		},
		FieldOps: []wiql.OperatorKind{
			wiql.OpEquals, wiql.OpNotEquals,
			wiql.OpGreater, wiql.OpLess,
			wiql.OpGreaterOrEqual, wiql.OpLessOrEqual,
		},
		GroupOps: []wiql.OperatorKind{wiql.OpIn},
	}

	text := CompatibilityEntry{
		LiteralOps: []wiql.OperatorKind{wiql.OpContains, wiql.OpContainsWords},
	}

	str := CompatibilityEntry{
		LiteralOps: []wiql.OperatorKind{
			wiql.OpEquals, wiql.OpNotEquals,
			wiql.OpGreater, wiql.OpLess,
			wiql.OpGreaterOrEqual, wiql.OpLessOrEqual,
			wiql.OpContains, wiql.OpInGroup, wiql.OpEverWas,
		},
		FieldOps: []wiql.OperatorKind{
			wiql.OpEquals, wiql.OpNotEquals,
			wiql.OpGreater, wiql.OpLess,
			wiql.OpGreaterOrEqual, wiql.OpLessOrEqual,
		},
		GroupOps: []wiql.OperatorKind{wiql.OpIn},
	}

	tree := CompatibilityEntry{
		LiteralOps: []wiql.OperatorKind{wiql.OpEquals, wiql.OpNotEquals, wiql.OpUnder},
		GroupOps:   []wiql.OperatorKind{wiql.OpIn},
	}

	boolean := CompatibilityEntry{
		LiteralOps: []wiql.OperatorKind{wiql.OpEquals, wiql.OpNotEquals, wiql.OpEverWas},
		FieldOps:   []wiql.OperatorKind{wiql.OpEquals, wiql.OpNotEquals},
	}

	return map[FieldType]CompatibilityEntry{
		TypeInteger:  ordered,
		TypeDouble:   ordered,
		TypeDateTime: ordered,
		TypeGuid:     ordered,

		TypeText:      text,
		TypePlainText: text,
		TypeHistory:   text,

		TypeString:   str,
		TypeTreePath: tree,
		TypeBoolean:  boolean,
	}
}

// Compat returns the compatibility entry for a field type.
//
// Every FieldType has an entry; a miss means the table and the enum have
// diverged, which is a programming defect, so this panics rather than
// guessing a default.
func Compat(t FieldType) CompatibilityEntry {
	e, ok := compatTable[t]
	if !ok {
		panic(fmt.Sprintf("fields: no compatibility entry for field type %v", t))
	}
	return e
}
