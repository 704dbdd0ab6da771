// Package semantic validates parsed work-item queries against field
// metadata: operator legality per field type and right-hand-side shape,
// value type checks, and group-list element checks.
//
// The validator reports user semantic errors as Diagnostics and never fails
// on them. Unknown fields and unknown variables are skipped, not reported:
// an earlier identifier check owns those errors, and reporting them here
// would duplicate messages. The only non-diagnostic failure mode is the
// deliberate panic on an unmapped FieldType, which indicates a registration
// gap in the compatibility table, not bad user input.
package semantic

import (
	"fmt"

	"github.com/querytools/wiqlint/internal/fields"
	"github.com/querytools/wiqlint/internal/vartab"
	"github.com/querytools/wiqlint/internal/wiql"
)

// Check validates every condition in the parse result, link conditions
// included, and returns the diagnostics in traversal order.
//
// Check is a pure function of its inputs: calling it twice on the same parse
// result and lookup yields identical diagnostic sequences.
func Check(parse *wiql.ParseResult, lookup fields.Lookup, vars *vartab.Table) []Diagnostic {
	c := &checker{lookup: lookup, vars: vars}
	for _, cond := range parse.Conditions() {
		c.checkCondition(cond)
	}
	return c.diags
}

type checker struct {
	lookup fields.Lookup
	vars   *vartab.Table
	diags  []Diagnostic
}

func (c *checker) report(sp wiql.Span, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Span: sp, Message: fmt.Sprintf(format, args...)})
}

// checkCondition validates one condition independently. A failure here never
// aborts the remaining conditions.
func (c *checker) checkCondition(cond *wiql.Condition) {
	if cond.Field == nil || cond.Op == nil {
		return // partial condition, the parser's concern
	}
	info, known := c.lookup.Get(cond.Field.Name)
	if !known {
		return // unknown field, reported by the identifier check
	}

	if cond.List != nil {
		c.checkGroup(cond, info)
		return
	}
	if cond.Value != nil {
		c.checkScalar(cond, info)
	}
}

// checkScalar validates the operator against the RHS-kind's allowed set and,
// only when the operator is legal, the right-hand side itself. The operator
// check short-circuits the RHS check so one mistake yields one message.
func (c *checker) checkScalar(cond *wiql.Condition, info fields.Info) {
	rhsField, isField := cond.Value.(*wiql.FieldRef)

	ops := info.LiteralOps
	rhsKind := "literal"
	if isField {
		ops = info.FieldOps
		rhsKind = "field"
	}

	if len(ops) == 0 {
		c.report(cond.Op.Sp, "no valid operation for %s and %s", cond.Field.Name, rhsKind)
		return
	}
	if !fields.Allows(ops, cond.Op.Kind) {
		c.report(cond.Op.Sp, "valid comparisons are %s", wiql.JoinOperators(ops))
		return
	}

	if isField {
		refInfo, known := c.lookup.Get(rhsField.Name)
		if !known {
			return // unknown field, reported by the identifier check
		}
		if refInfo.Type != info.Type {
			c.report(rhsField.Sp, "expected field of type %s", info.Type)
		}
		return
	}
	c.checkValueType(cond.Value, info.Type)
}

// checkGroup validates the group form: the operator against the group-ops
// set, then every list element left to right. The two checks are
// independent; a bad group operator does not suppress element diagnostics.
func (c *checker) checkGroup(cond *wiql.Condition, info fields.Info) {
	if len(info.GroupOps) == 0 {
		c.report(cond.Op.Sp, "%s does not support group comparisons", cond.Field.Name)
	} else if !fields.Allows(info.GroupOps, cond.Op.Kind) {
		c.report(cond.Op.Sp, "valid comparisons are %s", wiql.JoinOperators(info.GroupOps))
	}

	for _, v := range cond.List {
		if _, isField := v.(*wiql.FieldRef); isField {
			c.report(v.Span(), "values in list must be literals")
			continue
		}
		c.checkValueType(v, info.Type)
	}
}

// expectKind is the coarse value-shape expectation a declared type maps to.
// Many distinct field types collapse onto the string expectation; no value
// format validation (GUID or date syntax) happens at this layer.
type expectKind int

const (
	expectNumber expectKind = iota
	expectString
	expectBoolean
)

// expectationFor maps a declared field type to its value-shape expectation.
// The switch is exhaustive over the FieldType enum; the panic guards against
// a new type being added without a mapping.
func expectationFor(t fields.FieldType) expectKind {
	switch t {
	case fields.TypeInteger, fields.TypeDouble:
		return expectNumber
	case fields.TypeBoolean:
		return expectBoolean
	case fields.TypeText, fields.TypePlainText, fields.TypeHistory,
		fields.TypeDateTime, fields.TypeGuid, fields.TypeTreePath,
		fields.TypeString:
		return expectString
	}
	panic(fmt.Sprintf("semantic: no value expectation for field type %v", t))
}

// checkValueType validates a literal or variable value against the declared
// field type. A variable is checked through its declared type in the static
// table, not through its literal shape.
func (c *checker) checkValueType(v wiql.Value, declared fields.FieldType) {
	expected := expectationFor(declared)

	var actual expectKind
	switch val := v.(type) {
	case *wiql.Literal:
		switch val.Kind {
		case wiql.LitNumber:
			actual = expectNumber
		case wiql.LitTrue, wiql.LitFalse:
			actual = expectBoolean
		case wiql.LitString:
			actual = expectString
		}
	case *wiql.VariableRef:
		vt, known := c.vars.TypeOf(val.Name)
		if !known {
			return // unknown variable, reported by the identifier check
		}
		actual = expectationFor(vt)
	default:
		return // field refs are handled by the caller
	}

	if actual == expected {
		return
	}
	switch expected {
	case expectNumber:
		c.report(v.Span(), "Expected value of type NUMBER")
	case expectString:
		c.report(v.Span(), "Expected value of type STRING")
	case expectBoolean:
		c.report(v.Span(), "Expected true or false")
	}
}
