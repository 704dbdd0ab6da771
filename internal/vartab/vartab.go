// Package vartab holds the table of predefined query variables and their
// declared types. The table is static configuration: built once, ordered,
// and shared read-only by concurrent completion and validation requests.
package vartab

import (
	"strings"

	"github.com/querytools/wiqlint/internal/fields"
)

// Sentinel is the variable-name prefix marker.
const Sentinel = "@"

// Entry is one declared variable. Name keeps the leading sentinel and is
// stored lowercase.
type Entry struct {
	Name string
	Type fields.FieldType
}

// Table is an ordered variable table with case-insensitive lookup.
// Suggestion lists preserve the insertion order of entries.
type Table struct {
	entries []Entry
	index   map[string]fields.FieldType
}

// New builds a table from entries. Names are lowercased; the sentinel is
// prepended when missing. Duplicate names keep the first entry's position
// but take the last entry's type.
func New(entries ...Entry) *Table {
	t := &Table{index: make(map[string]fields.FieldType, len(entries))}
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if !strings.HasPrefix(name, Sentinel) {
			name = Sentinel + name
		}
		if _, seen := t.index[name]; !seen {
			t.entries = append(t.entries, Entry{Name: name, Type: e.Type})
		} else {
			for i := range t.entries {
				if t.entries[i].Name == name {
					t.entries[i].Type = e.Type
					break
				}
			}
		}
		t.index[name] = e.Type
	}
	return t
}

// Default returns the built-in variable table.
func Default() *Table {
	return New(
		Entry{Name: "@me", Type: fields.TypeString},
		Entry{Name: "@today", Type: fields.TypeDateTime},
		Entry{Name: "@currentiteration", Type: fields.TypeTreePath},
		Entry{Name: "@project", Type: fields.TypeString},
	)
}

// Entries returns the declared variables in insertion order.
// The returned slice must not be mutated.
func (t *Table) Entries() []Entry { return t.entries }

// TypeOf resolves a variable's declared type by name, case-insensitively.
// The name may be given with or without the sentinel.
func (t *Table) TypeOf(name string) (fields.FieldType, bool) {
	key := strings.ToLower(name)
	if !strings.HasPrefix(key, Sentinel) {
		key = Sentinel + key
	}
	ft, ok := t.index[key]
	return ft, ok
}

// Len returns the number of declared variables.
func (t *Table) Len() int { return len(t.entries) }
