package knit

// Delimiters configures the three cell-opening/closing pairs the lexer
// recognises: "{|" "|}" for heredoc/block code, "{$" "$}" for inline code,
// "{#" "#}" for comments, by default. Overridden via internal/config (a
// TOML document), never hard-coded beyond these defaults.
type Delimiters struct {
	HereDocOpen, HereDocClose string
	InlineOpen, InlineClose   string
	CommentOpen, CommentClose string
}

// DefaultDelimiters returns the built-in delimiter set.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		HereDocOpen:  "{|",
		HereDocClose: "|}",
		InlineOpen:   "{$",
		InlineClose:  "$}",
		CommentOpen:  "{#",
		CommentClose: "#}",
	}
}

// escapeLiteral is one of the six "doubled brace" escapes recognised in
// Text mode: the three-byte-or-more from spelling lexes as a Literal
// carrying the unescaped (two-character) into spelling.
type escapeLiteral struct {
	from, into string
}

// escapes returns the doubled-delimiter literal-escape table for d, in a
// fixed check order: heredoc, inline, comment; open then close of each.
func (d Delimiters) escapes() []escapeLiteral {
	return []escapeLiteral{
		{d.HereDocOpen[:1] + d.HereDocOpen, d.HereDocOpen},
		{d.HereDocClose + d.HereDocClose[len(d.HereDocClose)-1:], d.HereDocClose},
		{d.InlineOpen[:1] + d.InlineOpen, d.InlineOpen},
		{d.InlineClose + d.InlineClose[len(d.InlineClose)-1:], d.InlineClose},
		{d.CommentOpen[:1] + d.CommentOpen, d.CommentOpen},
		{d.CommentClose + d.CommentClose[len(d.CommentClose)-1:], d.CommentClose},
	}
}
