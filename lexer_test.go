package knit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// reconstruct replays lexemes back into their source text: the lexer's
// round-trip property and its primary test oracle. Inter-token whitespace
// inside code cells is dropped by the lexer, so it is reinserted here by
// comparing the reconstruction cursor against the original source.
func reconstruct(t *testing.T, original string, d Delimiters, lexemes []Lexeme) string {
	t.Helper()
	var buf strings.Builder
	inCode := false

	reinsertGap := func() {
		if !inCode {
			return
		}
		rest := original[buf.Len():]
		gap := strings.IndexFunc(rest, func(r rune) bool { return !isSpaceRune(r) })
		if gap < 0 {
			gap = len(rest)
		}
		buf.WriteString(rest[:gap])
	}

	for _, lx := range lexemes {
		reinsertGap()
		switch lx.Payload {
		case LexText:
			buf.WriteString(original[lx.Span.Start:lx.Span.End])
		case LexBlockComment:
			buf.WriteString(d.CommentOpen)
			buf.WriteString(original[lx.Span.Start:lx.Span.End])
			buf.WriteString(d.CommentClose)
		case LexHereDocStart:
			inCode = true
			buf.WriteString(d.HereDocOpen)
		case LexHereDocClose:
			inCode = false
			buf.WriteString(d.HereDocClose)
		case LexInlineStart:
			inCode = true
			buf.WriteString(d.InlineOpen)
		case LexInlineClose:
			inCode = false
			buf.WriteString(d.InlineClose)
		case LexLiteral:
			for _, e := range d.escapes() {
				if e.into == lx.Text {
					buf.WriteString(e.from)
					break
				}
			}
		case LexQuoteLiteral:
			buf.WriteString(original[lx.Span.Start:lx.Span.End])
		default:
			buf.WriteString(original[lx.Span.Start:lx.Span.End])
		}
	}
	return buf.String()
}

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func TestLexerRoundTrip(t *testing.T) {
	delims := DefaultDelimiters()
	cases := []string{
		"",
		"plain text, no cells",
		"{# a comment #}",
		"{| . |}",
		"{$ cite(\"@k1\") $}",
		"{{| escaped heredoc open",
		"|}} escaped heredoc close",
		"{{$ escaped inline, $}} too, and {{# comment #}}",
		"{| a = |}b{| a |}",
		"{$ \"line1\\nline2\\ttab\\\"quote\\\"\" $}",
		"{| a(b, c) | d |}",
		"text before {| x = \"1\" |} text after",
	}
	for _, src := range cases {
		src := src
		t.Run(src, func(t *testing.T) {
			lexemes, err := LexAll(src, delims)
			require.NoError(t, err)
			got := reconstruct(t, src, delims, lexemes)
			require.Equal(t, src, got)
		})
	}
}

func TestLexerIdentParenSpanIncludesParen(t *testing.T) {
	const src = "{$ foo(a) $}"
	lexemes, err := LexAll(src, DefaultDelimiters())
	require.NoError(t, err)
	var found bool
	for _, lx := range lexemes {
		if lx.Payload == LexIdentParen {
			found = true
			require.Equal(t, "foo(", lx.Span.Slice(src))
			require.Equal(t, "foo", identParenName(lx.Span).Slice(src))
		}
	}
	require.True(t, found)
}

// diagnosticOpenerSpan requires err is a *Diagnostic pointing at a source
// range (not KindContextless) and returns the text that range covers.
func diagnosticOpenerSpan(t *testing.T, err error, source string) string {
	t.Helper()
	d, ok := err.(*Diagnostic)
	require.True(t, ok, "expected a *Diagnostic, got %T", err)
	require.NotEqual(t, KindContextless, d.Kind)
	return d.Span.Slice(source)
}

func TestLexerUnterminatedComment(t *testing.T) {
	const src = "{# never closed"
	_, err := LexAll(src, DefaultDelimiters())
	require.Error(t, err)
	require.Equal(t, "{#", diagnosticOpenerSpan(t, err, src))
}

func TestLexerUnterminatedQuote(t *testing.T) {
	const src = `{$ "never closed $}`
	_, err := LexAll(src, DefaultDelimiters())
	require.Error(t, err)
	require.Equal(t, `"`, diagnosticOpenerSpan(t, err, src))
}

func TestLexerUnterminatedCodeBlock(t *testing.T) {
	const src = "{| a = b"
	_, err := LexAll(src, DefaultDelimiters())
	require.Error(t, err)
	require.Equal(t, "{|", diagnosticOpenerSpan(t, err, src))
}
