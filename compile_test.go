package knit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRun(t *testing.T, src string) string {
	t.Helper()
	doc, err := FromString(src)
	require.NoError(t, err)
	b := NewBindings[string, any]()
	out, err := Execute(doc, b, nil)
	require.NoError(t, err)
	return out
}

func TestScenarioPlainText(t *testing.T) {
	require.Equal(t, "a", mustRun(t, "a"))
}

func TestScenarioHeredocDiscardedByStatementSeparator(t *testing.T) {
	require.Equal(t, " a", mustRun(t, "{| ; . |} a"))
}

func TestScenarioHeredocStdinConcat(t *testing.T) {
	require.Equal(t, " a a", mustRun(t, "{| . |} a"))
}

func TestScenarioTrailingStatementSeparatorDiscardsEverything(t *testing.T) {
	require.Equal(t, "", mustRun(t, "{| .; |} a"))
}

func TestScenarioHeredocAssignThenReference(t *testing.T) {
	require.Equal(t, "bb", mustRun(t, "{| a = |}b{| a |}"))
}

func TestScenarioEscapedDelimitersRoundTrip(t *testing.T) {
	require.Equal(t, "{|", mustRun(t, "{{|"))
	require.Equal(t, "|}", mustRun(t, "|}}"))
	require.Equal(t, "{$", mustRun(t, "{{$"))
	require.Equal(t, "$}", mustRun(t, "$}}"))
	require.Equal(t, "{#", mustRun(t, "{{#"))
	require.Equal(t, "#}", mustRun(t, "#}}"))
}

func TestScenarioUndefinedIdentifierIsADiagnostic(t *testing.T) {
	doc, err := FromString("{$ nope $}")
	require.NoError(t, err)
	b := NewBindings[string, any]()
	_, err = Execute(doc, b, nil)
	require.Error(t, err)
	d, ok := err.(*Diagnostic)
	require.True(t, ok)
	require.Equal(t, KindGeneric, d.Kind)
}

func TestScenarioAssignOverFunctionNameIsADiagnostic(t *testing.T) {
	doc, err := FromString(`{$ shout = "x" $}`)
	require.NoError(t, err)
	b := NewBindings[string, any]()
	b.RegisterPure("shout", func(args []Value[any]) (Value[any], error) {
		return TextValue[any]("SHOUT"), nil
	}, LIMITED, nil)
	_, err = Execute(doc, b, nil)
	require.Error(t, err)
}

func TestScenarioWrongArgumentTagIsPositional(t *testing.T) {
	doc, err := FromString(`{$ double("x") $}`)
	require.NoError(t, err)
	b := NewBindings[string, any]()
	b.RegisterPure("double", func(args []Value[any]) (Value[any], error) {
		return UsizeValue[any](args[0].Usize() * 2), nil
	}, LIMITED, []ValueKind{KindUsize})
	_, err = Execute(doc, b, nil)
	require.Error(t, err)
	d, ok := err.(*Diagnostic)
	require.True(t, ok)
	require.Equal(t, KindPositional, d.Kind)
}

func TestScenarioAdjacentQuotedStringsAreADiagnostic(t *testing.T) {
	_, err := FromString(`{$ "a" "b" $}`)
	require.Error(t, err)
	d, ok := err.(*Diagnostic)
	require.True(t, ok)
	require.Equal(t, KindGeneric, d.Kind)
}

func TestScenarioSingleQuotedStringStillConcatenatesItsOwnEscapes(t *testing.T) {
	require.Equal(t, "a\tb", mustRun(t, `{$ "a\tb" $}`))
}

// TestScenarioStatefulFunctionStaysWaitingAcrossPasses mirrors the cite
// three-pass idiom without shelling out to pandoc: a stateful counter,
// shared by both calls, that stays Waiting until it has been called twice
// in total, so the first call only becomes Ready on the second pass.
func TestScenarioStatefulFunctionStaysWaitingAcrossPasses(t *testing.T) {
	doc, err := FromString(`{$ tally() $} {$ tally() $}`)
	require.NoError(t, err)
	b := NewBindings[string, int]()
	b.RegisterStateful("tally", func(args []Value[int], old Value[int], storage *Variables[string, int]) (Dirty, Value[int], error) {
		n, _ := storage.Get("n")
		calls := n.Usize() + 1
		storage.Insert("n", UsizeValue[int](calls))
		if calls < 2 {
			return Waiting, UsizeValue[int](calls), nil
		}
		return Ready, UsizeValue[int](calls), nil
	}, LIMITED, nil)
	out, err := Execute(doc, b, nil)
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
