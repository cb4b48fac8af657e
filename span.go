package knit

import "fmt"

// Span is a half-open byte range [Start, End) into a source document. Every
// token and diagnostic carries one. Both indices are expected to land on
// UTF-8 character boundaries; this is checked only in debug assertions
// (assertUTF8Boundary), never on the hot path.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span, panicking if the range is inverted. Producers are
// expected to maintain start <= end themselves; this just catches bugs early.
func NewSpan(start, end int) Span {
	if start > end {
		panic(fmt.Sprintf("knit: invalid span [%d, %d)", start, end))
	}
	return Span{Start: start, End: end}
}

// Len reports the byte length of the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Slice returns the bytes of src covered by s.
func (s Span) Slice(src string) string { return src[s.Start:s.End] }

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Token pairs a Span with a phase-specific payload (LexType, Item, Label,
// Param, ...).
type Token[T any] struct {
	Span    Span
	Payload T
}

// NewToken constructs a Token.
func NewToken[T any](span Span, payload T) Token[T] {
	return Token[T]{Span: span, Payload: payload}
}

func (t Token[T]) String() string {
	return fmt.Sprintf("%v@[%d,%d)", t.Payload, t.Span.Start, t.Span.End)
}
