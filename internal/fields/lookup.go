package fields

import (
	"github.com/querytools/wiqlint/internal/wiql"
	"golang.org/x/text/cases"
)

// LinkTypeField is the reference name of the link-type pseudo field. It has
// no place in the metadata type system and participates only in
// link-condition validation, so the lookup builder hard-codes its entry
// instead of consulting the compatibility table.
const LinkTypeField = "system.links.linktype"

// Info is a field's declared type together with its allowed operator sets.
type Info struct {
	Type FieldType
	CompatibilityEntry
}

// Lookup maps case-folded field names to their Info. Both the display name
// and the reference name of a field key the same entry. A Lookup is built
// once per metadata snapshot and then shared read-only; it is never mutated
// after BuildLookup returns.
type Lookup map[string]Info

var folder = cases.Fold()

// FoldName normalizes a field name for lookup keys.
func FoldName(name string) string { return folder.String(name) }

// BuildLookup builds the field lookup from a metadata snapshot.
//
// Name collisions after folding are resolved last-write-wins. That matches
// the upstream behavior for duplicate display names; it is flagged in tests
// rather than treated as an error.
func BuildLookup(descriptors []FieldDescriptor) Lookup {
	lookup := make(Lookup, 2*len(descriptors))
	for _, d := range descriptors {
		var info Info
		if FoldName(d.ReferenceName) == LinkTypeField {
			info = Info{
				Type: TypeString,
				CompatibilityEntry: CompatibilityEntry{
					LiteralOps: []wiql.OperatorKind{wiql.OpEquals, wiql.OpNotEquals},
				},
			}
		} else {
			info = Info{Type: d.Type, CompatibilityEntry: Compat(d.Type)}
		}
		lookup[FoldName(d.Name)] = info
		lookup[FoldName(d.ReferenceName)] = info
	}
	return lookup
}

// Get resolves a field by display or reference name, case-insensitively.
func (l Lookup) Get(name string) (Info, bool) {
	info, ok := l[FoldName(name)]
	return info, ok
}
