package knit

// ItemKind classifies an Item (the sexpr-stage payload).
type ItemKind uint8

const (
	// ItemStr is a span of literal source text — either a text-cell run or
	// the content of a quoted string.
	ItemStr ItemKind = iota
	// ItemLiteral carries an expanded spelling: a delimiter escape
	// ("{{|" -> "{|") or a quote escape ("\n" -> newline).
	ItemLiteral
	ItemAssign
	// ItemIdent is a bare identifier: may name a variable or a function,
	// undetermined until the evaluator resolves it.
	ItemIdent
	// ItemFunc is an identifier immediately followed by '(': definitely a
	// function call head. Span excludes the trailing paren.
	ItemFunc
	ItemStdin
	// ItemPipedStdin is the implicit ".|" a heredoc header starts with: its
	// body (the text cell that follows the header) piped into it.
	ItemPipedStdin
	ItemReference
	ItemPipe
	// ItemKey is a lexed-but-undispatched ':' of key-value syntax: parsed,
	// never consumed by any evaluator dispatch.
	ItemKey

	// itemComma, itemParen, itemStmt are internal balance/separator
	// markers, consumed entirely within the sexpr former; they never
	// appear in a Sexpr's argument range.
	itemComma
	itemParen
	itemStmt
)

// Item is the sexpr-stage token payload (Token[Item]): the lexeme alphabet
// minus cell-framing tokens, plus Str, Literal, Reference, Func, and Key.
type Item struct {
	Kind ItemKind
	Ref  int    // valid for ItemReference: the producing sexpr's output_id
	Text string // valid for ItemLiteral: the expanded spelling
}

// identParenName trims the trailing '(' off a LexIdentParen lexeme's span,
// giving just the identifier for use as a function name.
func identParenName(span Span) Span {
	return Span{Start: span.Start, End: span.End - 1}
}
