package wiql

import "strings"

// OperatorKind identifies a comparison or grouping operator.
//
// This is a closed set: every comparison node in the AST carries exactly one
// OperatorKind, and the compatibility table enumerates allowed kinds per
// field type. Membership tests are set membership on the enum, never type
// identity tests.
type OperatorKind int

const (
	OpEquals OperatorKind = iota
	OpNotEquals
	OpGreater
	OpLess
	OpGreaterOrEqual
	OpLessOrEqual
	OpInGroup
	OpEverWas
	OpContains
	OpContainsWords
	OpUnder
	OpIn
)

// String returns the operator as it is written in query text.
func (k OperatorKind) String() string {
	switch k {
	case OpEquals:
		return "="
	case OpNotEquals:
		return "<>"
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterOrEqual:
		return ">="
	case OpLessOrEqual:
		return "<="
	case OpInGroup:
		return "In Group"
	case OpEverWas:
		return "Ever"
	case OpContains:
		return "Contains"
	case OpContainsWords:
		return "Contains Words"
	case OpUnder:
		return "Under"
	case OpIn:
		return "In"
	}
	return "unknown"
}

// JoinOperators renders an operator set for diagnostics,
// e.g. "=, <>, Ever".
func JoinOperators(ops []OperatorKind) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, ", ")
}
