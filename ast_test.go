package knit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// labelShape strips byte offsets down to what a reader actually cares about
// when checking the resolver's label discrimination: which kind, and
// (for the kinds that carry one) what text the span covers.
type labelShape struct {
	Kind LabelKind
	Text string
}

func shapeOf(commands []Command, source string) []labelShape {
	shapes := make([]labelShape, len(commands))
	for i, cmd := range commands {
		s := labelShape{Kind: cmd.Label.Kind}
		if cmd.Label.Kind != LabelConcat {
			s.Text = cmd.Label.Span.Slice(source)
		}
		shapes[i] = s
	}
	return shapes
}

func TestResolveASTLabelDiscrimination(t *testing.T) {
	const src = `{$ greeting = "hi" $}{$ greeting $}{$ shout(greeting) $}`

	lexemes, err := LexAll(src, DefaultDelimiters())
	require.NoError(t, err)
	sexprs, items, err := FormSexprs(lexemes, src)
	require.NoError(t, err)
	commands, gaplessArgs, _, err := ResolveAST(sexprs, items)
	require.NoError(t, err)

	got := shapeOf(commands, src)
	want := []labelShape{
		{Kind: LabelAssign, Text: "greeting"},
		{Kind: LabelIdent, Text: "greeting"},
		{Kind: LabelFunc, Text: "shout"},
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if cmp.Equal(w, g) {
				found = true
				break
			}
		}
		require.Truef(t, found, "expected a command shaped %+v among %+v", w, got)
	}

	// The document's final command concatenates every top-level result.
	require.Equal(t, LabelConcat, commands[len(commands)-1].Label.Kind)

	// The shout() call references the greeting lookup's output, so its
	// argument slot should carry a resolved reference rather than a raw
	// identifier item once ResolveAST has run.
	var shoutCmd Command
	for _, cmd := range commands {
		if cmd.Label.Kind == LabelFunc && cmd.Label.Span.Slice(src) == "shout" {
			shoutCmd = cmd
			break
		}
	}
	require.NotZero(t, shoutCmd.Args.End, "shout command not found")
	arg := gaplessArgs[shoutCmd.Args.Start]
	require.Equal(t, ItemReference, arg.Payload.Kind)
}
