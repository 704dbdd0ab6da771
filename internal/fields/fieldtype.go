// Package fields models work-item field metadata: the declared field types,
// the operator-compatibility table, and the case-insensitive field lookup
// the semantic layer reads.
package fields

import "strings"

// FieldType is the declared semantic type of a work-item field.
// The set is closed; field metadata never produces a type outside it.
type FieldType int

const (
	TypeText FieldType = iota
	TypePlainText
	TypeHistory
	TypeInteger
	TypeDouble
	TypeDateTime
	TypeGuid
	TypeTreePath
	TypeBoolean
	TypeString
)

// AllFieldTypes lists every FieldType. Every entry must resolve in the
// compatibility table; the table test enforces this.
var AllFieldTypes = []FieldType{
	TypeText, TypePlainText, TypeHistory,
	TypeInteger, TypeDouble, TypeDateTime, TypeGuid,
	TypeTreePath, TypeBoolean, TypeString,
}

// String returns the display name used in diagnostics.
func (t FieldType) String() string {
	switch t {
	case TypeText:
		return "Text"
	case TypePlainText:
		return "PlainText"
	case TypeHistory:
		return "History"
	case TypeInteger:
		return "Integer"
	case TypeDouble:
		return "Double"
	case TypeDateTime:
		return "DateTime"
	case TypeGuid:
		return "Guid"
	case TypeTreePath:
		return "TreePath"
	case TypeBoolean:
		return "Boolean"
	case TypeString:
		return "String"
	}
	return "unknown"
}

// typeNames maps the configuration spelling of each type. Both the CUE
// config and the SQLite catalog store these strings.
var typeNames = map[string]FieldType{
	"text":      TypeText,
	"plaintext": TypePlainText,
	"history":   TypeHistory,
	"integer":   TypeInteger,
	"double":    TypeDouble,
	"datetime":  TypeDateTime,
	"guid":      TypeGuid,
	"treepath":  TypeTreePath,
	"boolean":   TypeBoolean,
	"string":    TypeString,
}

// ParseFieldType resolves a configuration type string, case-insensitively.
func ParseFieldType(s string) (FieldType, bool) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// ConfigName returns the configuration spelling for a FieldType.
func (t FieldType) ConfigName() string {
	return strings.ToLower(t.String())
}

// FieldDescriptor describes one known field: display name, stable reference
// name, and declared type. Supplied externally per query session.
type FieldDescriptor struct {
	Name          string
	ReferenceName string
	Type          FieldType
}
