package knit

// LexType classifies a Lexeme (Token[LexType]).
type LexType uint8

const (
	LexText LexType = iota
	LexBlockComment
	LexHereDocStart
	LexHereDocClose
	LexInlineStart
	LexInlineClose

	LexIdent
	LexIdentParen
	LexPipe
	LexParenOpen
	LexParenClose
	LexStdin

	LexKeyValSep // ':'
	LexArgSep    // ','
	LexStmtSep   // ';'
	LexAssign    // '='

	LexLiteral // delimiter escape, e.g. "{{|" -> "{|"; Text holds the unescaped spelling

	LexQuoteOpen
	LexQuoteClose
	LexQuoteLiteral // escape expansion inside a quoted string, e.g. \n -> "\n"
)

func (t LexType) String() string {
	switch t {
	case LexText:
		return "Text"
	case LexBlockComment:
		return "BlockComment"
	case LexHereDocStart:
		return "HereDocStart"
	case LexHereDocClose:
		return "HereDocClose"
	case LexInlineStart:
		return "InlineStart"
	case LexInlineClose:
		return "InlineClose"
	case LexIdent:
		return "Ident"
	case LexIdentParen:
		return "IdentParen"
	case LexPipe:
		return "Pipe"
	case LexParenOpen:
		return "ParenOpen"
	case LexParenClose:
		return "ParenClose"
	case LexStdin:
		return "Stdin"
	case LexKeyValSep:
		return "KeyValSep"
	case LexArgSep:
		return "ArgSep"
	case LexStmtSep:
		return "StmtSep"
	case LexAssign:
		return "Assign"
	case LexLiteral:
		return "Literal"
	case LexQuoteOpen:
		return "QuoteOpen"
	case LexQuoteClose:
		return "QuoteClose"
	case LexQuoteLiteral:
		return "QuoteLiteral"
	default:
		return "?"
	}
}

// Lexeme is a Token[LexType]. For LexLiteral and LexQuoteLiteral, Text
// carries the expanded spelling (e.g. "{|" for the escape "{{|", or "\n"
// for the escape "\n"); for all other variants Text is empty and the token's
// Span indexes the source directly.
type Lexeme struct {
	Token[LexType]
	Text string
}
