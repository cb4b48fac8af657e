package functions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knitlang/knit"
)

func textArgs(vals ...string) []knit.Value[CustomValue] {
	args := make([]knit.Value[CustomValue], len(vals))
	for i, v := range vals {
		args[i] = knit.TextValue[CustomValue](v)
	}
	return args
}

func TestConcatFn(t *testing.T) {
	out, err := concatFn(textArgs("a", "b", "c"))
	require.NoError(t, err)
	require.Equal(t, "abc", out.Text())
}

func TestEnvFnFound(t *testing.T) {
	t.Setenv("KNIT_TEST_VAR", "hello")
	out, err := envFn(textArgs("KNIT_TEST_VAR"))
	require.NoError(t, err)
	require.Equal(t, "hello", out.Text())
}

func TestEnvFnMissing(t *testing.T) {
	_, err := envFn(textArgs("KNIT_TEST_VAR_DOES_NOT_EXIST"))
	require.Error(t, err)
}

func TestIfEqualsFn(t *testing.T) {
	out, err := ifEqualsFn(textArgs("x", "x"))
	require.NoError(t, err)
	require.Equal(t, "x", out.Text())

	out, err = ifEqualsFn(textArgs("x", "y"))
	require.NoError(t, err)
	require.True(t, out.IsNull())
}

func TestRunFnUnrecognisedLanguage(t *testing.T) {
	_, err := runFn(textArgs("cobol", "body"))
	require.Error(t, err)
}

// TestCiteFirstPassCountsCalls drives cite() through the counting pass only:
// every call sees a Null previous output and claims the next citation index,
// without reaching the pandoc-shelling state.
func TestCiteFirstPassCountsCalls(t *testing.T) {
	storage := knit.NewVariables[CustomKey, CustomValue]()

	dirty, out, err := cite(textArgs("@knuth74"), knit.NullValue[CustomValue](), storage)
	require.NoError(t, err)
	require.Equal(t, knit.Waiting, dirty)
	require.True(t, out.IsUsize())
	require.Equal(t, 0, out.Usize())

	dirty, out, err = cite(textArgs("@lamport78"), knit.NullValue[CustomValue](), storage)
	require.NoError(t, err)
	require.Equal(t, knit.Waiting, dirty)
	require.Equal(t, 1, out.Usize())

	count, ok := storage.Get(KeyCiteCount)
	require.True(t, ok)
	require.Equal(t, 2, count.Usize())
}

// TestCiteSecondPassBuffersCitekeys feeds the counting pass's own output
// back in as oldOutput, the second pass's trigger: each call appends its
// citekey to the shared buffer instead of advancing the index.
func TestCiteSecondPassBuffersCitekeys(t *testing.T) {
	storage := knit.NewVariables[CustomKey, CustomValue]()
	storage.Insert(KeyCiteState, knit.UsizeValue[CustomValue](0))

	_, out0, err := cite(textArgs("@knuth74"), knit.UsizeValue[CustomValue](0), storage)
	require.NoError(t, err)
	require.Equal(t, 0, out0.Custom().Citation)

	buffered, ok := storage.Get(KeyCitations)
	require.True(t, ok)
	require.Contains(t, buffered.Text(), "@knuth74")
}

func TestReferencesBeforeAnyCiteIsEmpty(t *testing.T) {
	storage := knit.NewVariables[CustomKey, CustomValue]()
	dirty, out, err := references(nil, knit.Value[CustomValue]{}, storage)
	require.NoError(t, err)
	require.Equal(t, knit.Waiting, dirty)
	require.Equal(t, "", out.Text())
}
