package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querytools/wiqlint/internal/fields"
	"github.com/querytools/wiqlint/internal/vartab"
	"github.com/querytools/wiqlint/internal/wiql"
)

func check(t *testing.T, query string) []Diagnostic {
	t.Helper()
	parse := wiql.Parse(query)
	require.Empty(t, parse.Errors, "query must be syntactically valid")
	return Check(parse, fields.BuildLookup(fields.Builtin()), vartab.Default())
}

func messages(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestCheckCleanQuery(t *testing.T) {
	queries := []string{
		"[Title] = 'Done' and [Id] > 5",
		"[Description] contains 'x'",
		"[Tags] contains words 'ui perf'",
		"[Id] ever 5",
		"[Blocked] = true",
		"[Created Date] = @today",
		"[Area Path] under 'Proj'",
		"[Id] in (1, 2, 3)",
		"[Title] = [State]",
		"[Title] in group 'everyone'",
		"[Title] in ('x', 'y')",
		"[System.Links.LinkType] = 'Child'",
	}
	for _, q := range queries {
		assert.Empty(t, check(t, q), "query %q", q)
	}
}

func TestCheckValueTypeMismatch(t *testing.T) {
	diags := check(t, "[Effort] = 'abc'")
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected value of type NUMBER", diags[0].Message)
	assert.Equal(t, wiql.Span{Start: 11, End: 16}, diags[0].Span)
}

func TestCheckBooleanValues(t *testing.T) {
	diags := check(t, "[Blocked] = 1")
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected true or false", diags[0].Message)

	diags = check(t, "[Title] = true")
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected value of type STRING", diags[0].Message)
}

func TestCheckOperatorNotAllowed(t *testing.T) {
	diags := check(t, "[Blocked] Contains 'x'")
	require.Len(t, diags, 1)
	assert.Equal(t, "valid comparisons are =, <>, Ever", diags[0].Message)
	assert.Equal(t, wiql.Span{Start: 10, End: 18}, diags[0].Span)

	diags = check(t, "[Description] = 'x'")
	require.Len(t, diags, 1)
	assert.Equal(t, "valid comparisons are Contains, Contains Words", diags[0].Message)
}

func TestCheckOperatorErrorSuppressesValueCheck(t *testing.T) {
	// One mistake, one message: the bad operator hides the value check.
	diags := check(t, "[Description] = 1")
	require.Len(t, diags, 1)
	assert.Equal(t, "valid comparisons are Contains, Contains Words", diags[0].Message)
}

func TestCheckFieldComparison(t *testing.T) {
	diags := check(t, "[Title] = [Id]")
	require.Len(t, diags, 1)
	assert.Equal(t, "expected field of type String", diags[0].Message)
	assert.Equal(t, wiql.Span{Start: 10, End: 14}, diags[0].Span)

	diags = check(t, "[Blocked] = [Id]")
	require.Len(t, diags, 1)
	assert.Equal(t, "expected field of type Boolean", diags[0].Message)
}

func TestCheckFieldComparisonWrongOperator(t *testing.T) {
	// The field-RHS set is consulted, not the literal set: Contains is legal
	// for an Integer field against nothing, and the field set is non-empty,
	// so the membership message lists the field-comparison operators.
	diags := check(t, "[Id] contains [Title]")
	require.Len(t, diags, 1)
	assert.Equal(t, "valid comparisons are =, <>, >, <, >=, <=", diags[0].Message)
}

func TestCheckFieldComparisonNotSupported(t *testing.T) {
	diags := check(t, "[Area Path] = [Iteration Path]")
	require.Len(t, diags, 1)
	assert.Equal(t, "no valid operation for Area Path and field", diags[0].Message)

	diags = check(t, "[Description] contains [Title]")
	require.Len(t, diags, 1)
	assert.Equal(t, "no valid operation for Description and field", diags[0].Message)
}

func TestCheckGroupComparisons(t *testing.T) {
	diags := check(t, "[Id] in (1, 2, 'x')")
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected value of type NUMBER", diags[0].Message)

	diags = check(t, "[Id] in (1, [Title])")
	require.Len(t, diags, 1)
	assert.Equal(t, "values in list must be literals", diags[0].Message)
}

func TestCheckGroupNotSupported(t *testing.T) {
	// The group-operator check and the element checks are independent.
	diags := check(t, "[Description] in (1)")
	require.Equal(t, []string{
		"Description does not support group comparisons",
		"Expected value of type STRING",
	}, messages(diags))
}

func TestCheckLinkTypeField(t *testing.T) {
	diags := check(t, "[System.Links.LinkType] contains 'x'")
	require.Len(t, diags, 1)
	assert.Equal(t, "valid comparisons are =, <>", diags[0].Message)

	diags = check(t, "[System.Links.LinkType] = [Title]")
	require.Len(t, diags, 1)
	assert.Equal(t, "no valid operation for System.Links.LinkType and field", diags[0].Message)

	diags = check(t, "[System.Links.LinkType] in ('Child')")
	require.Len(t, diags, 1)
	assert.Equal(t, "System.Links.LinkType does not support group comparisons", diags[0].Message)
}

func TestCheckVariableTypes(t *testing.T) {
	diags := check(t, "[Id] = @me")
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected value of type NUMBER", diags[0].Message)

	// An unknown variable is the identifier check's concern, not ours.
	assert.Empty(t, check(t, "[Id] = @nope"))
}

func TestCheckUnknownFieldSkipped(t *testing.T) {
	assert.Empty(t, check(t, "[No Such Field] = 1"))
	assert.Empty(t, check(t, "[Title] = [No Such Field]"))
}

func TestCheckPartialConditions(t *testing.T) {
	for _, q := range []string{"[Title]", "[Title] ="} {
		assert.Empty(t, check(t, q), "query %q", q)
	}
}

func TestCheckLinkConditionsValidated(t *testing.T) {
	diags := check(t, "source.[Blocked] contains 'x' and target.[Id] = 1")
	require.Len(t, diags, 1)
	assert.Equal(t, "valid comparisons are =, <>, Ever", diags[0].Message)
}

func TestCheckDiagnosticOrderAndIdempotence(t *testing.T) {
	parse := wiql.Parse("[Blocked] contains 'x' and [Effort] = 'abc'")
	require.Empty(t, parse.Errors)
	lookup := fields.BuildLookup(fields.Builtin())
	vars := vartab.Default()

	first := Check(parse, lookup, vars)
	require.Equal(t, []string{
		"valid comparisons are =, <>, Ever",
		"Expected value of type NUMBER",
	}, messages(first))

	second := Check(parse, lookup, vars)
	assert.Equal(t, first, second)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Span: wiql.Span{Start: 3, End: 9}, Message: "nope"}
	assert.Equal(t, "3-9: nope", d.String())
}
