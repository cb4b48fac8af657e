package knit

import (
	"strings"
	"unicode"
)

// cellMode is the outer FSM: Text | HereDoc | Inline | Comment |
// Transition | Finish. Transition and Finish are internal bookkeeping
// states — Transition staggers the two lexemes a cell-open produces (the
// preceding Text run, then the opening delimiter) across two Next() calls;
// Finish means the walker is exhausted.
type cellMode uint8

const (
	cellText cellMode = iota
	cellHereDoc
	cellInline
	cellComment
	cellTransition
	cellFinish
)

// codeMode is the inner FSM inside a code cell: Regular | Quote.
type codeMode uint8

const (
	codeRegular codeMode = iota
	codeQuote
)

// Lexer is a pull-style state machine: each call to Next produces exactly
// one Lexeme (or signals end-of-input / a diagnostic).
type Lexer struct {
	src    string
	delims Delimiters
	w      *walker
	sender string

	mode            cellMode
	afterTransition cellMode // mode to resume in once the pending lexeme is emitted
	pending         *Lexeme

	code codeMode

	// openerSpan tracks the span of whatever opening delimiter is
	// currently active (comment, heredoc or inline), and quoteOpener that
	// of an open quotation mark, so an unterminated-construct diagnostic
	// can point at it instead of only the point of failure.
	openerSpan  Span
	quoteOpener Span
}

// NewLexer constructs a Lexer over src using the given delimiter set.
func NewLexer(src string, delims Delimiters) *Lexer {
	return &Lexer{
		src:    src,
		delims: delims,
		w:      newWalker(src),
		sender: "lexer",
		mode:   cellText,
		code:   codeRegular,
	}
}

// Next produces the next Lexeme. ok is false with a nil error once the
// entire input has been consumed (Finish state). A non-nil error is always
// a *Diagnostic: it points at the opener of an unterminated construct (or
// of the quoted string holding an unrecognised escape), or at a character
// that is not valid in code.
func (l *Lexer) Next() (lex Lexeme, ok bool, err error) {
	switch l.mode {
	case cellFinish:
		return Lexeme{}, false, nil

	case cellTransition:
		lex = *l.pending
		l.pending = nil
		l.mode = l.afterTransition
		return lex, true, nil

	case cellText:
		return l.lexText()

	case cellComment:
		return l.lexComment()

	case cellHereDoc:
		return l.lexCodeBody(l.delims.HereDocClose, LexHereDocClose, cellText)

	case cellInline:
		return l.lexCodeBody(l.delims.InlineClose, LexInlineClose, cellText)
	}
	return Lexeme{}, false, nil
}

// stage arranges for the lexeme tok (with optional expanded Text, for
// LexLiteral) to be returned on the *next* Next() call, resuming in
// afterTransition once it has been emitted.
func (l *Lexer) stage(tok Token[LexType], text string, afterTransition cellMode) {
	l.mode = cellTransition
	l.afterTransition = afterTransition
	l.pending = &Lexeme{Token: tok, Text: text}
}

// lexText scans a Text run until a delimiter (or doubled-delimiter escape)
// is found, emitting the Text span first and staging the delimiter/literal
// token for the following call.
func (l *Lexer) lexText() (Lexeme, bool, error) {
	start := l.w.curr
	still := true
	for {
		_, curr, _, more := l.w.advance(still)
		still = false
		if !more {
			break
		}
		rest := l.src[curr:]

		if found, into, length := matchEscape(rest, l.delims); found {
			l.w.skip(length)
			l.stage(NewToken(Span{curr, curr + length}, LexLiteral), into, cellText)
			return Lexeme{Token: NewToken(Span{start, curr}, LexText)}, true, nil
		}
		if strings.HasPrefix(rest, l.delims.HereDocOpen) {
			l.openerSpan = Span{curr, curr + len(l.delims.HereDocOpen)}
			l.w.skip(len(l.delims.HereDocOpen))
			l.stage(NewToken(l.openerSpan, LexHereDocStart), "", cellHereDoc)
			return Lexeme{Token: NewToken(Span{start, curr}, LexText)}, true, nil
		}
		if strings.HasPrefix(rest, l.delims.InlineOpen) {
			l.openerSpan = Span{curr, curr + len(l.delims.InlineOpen)}
			l.w.skip(len(l.delims.InlineOpen))
			l.stage(NewToken(l.openerSpan, LexInlineStart), "", cellInline)
			return Lexeme{Token: NewToken(Span{start, curr}, LexText)}, true, nil
		}
		if strings.HasPrefix(rest, l.delims.CommentOpen) {
			l.openerSpan = Span{curr, curr + len(l.delims.CommentOpen)}
			l.w.skip(len(l.delims.CommentOpen))
			l.mode = cellComment
			return Lexeme{Token: NewToken(Span{start, curr}, LexText)}, true, nil
		}
	}
	if l.w.isEnd() {
		l.mode = cellFinish
	}
	return Lexeme{Token: NewToken(Span{start, l.w.curr}, LexText)}, true, nil
}

// lexComment scans a comment body until CommentClose, emitting a single
// BlockComment lexeme (the delimiters themselves are not part of the span).
func (l *Lexer) lexComment() (Lexeme, bool, error) {
	start := l.w.curr
	still := true
	for {
		_, curr, _, more := l.w.advance(still)
		still = false
		if !more {
			break
		}
		if strings.HasPrefix(l.src[curr:], l.delims.CommentClose) {
			l.w.skip(len(l.delims.CommentClose))
			l.mode = cellText
			return Lexeme{Token: NewToken(Span{start, curr}, LexBlockComment)}, true, nil
		}
	}
	return Lexeme{}, false, Generic(l.sender, l.openerSpan, l.src, "comment block has no ending tag")
}

func matchEscape(rest string, d Delimiters) (found bool, into string, length int) {
	for _, e := range d.escapes() {
		if strings.HasPrefix(rest, e.from) {
			return true, e.into, len(e.from)
		}
	}
	return false, "", 0
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '_'
}

// lexCodeBody is the inner code-mode FSM shared by HereDoc and Inline
// cells. It skips whitespace, then classifies the rune at the cursor,
// resuming in resumeTo once closer is matched.
func (l *Lexer) lexCodeBody(closer string, closerType LexType, resumeTo cellMode) (Lexeme, bool, error) {
	l.w.advanceUntil(func(r rune) bool { return !unicode.IsSpace(r) })

	ch, curr, _, more := l.w.advance(true)
	if !more {
		return Lexeme{}, false, Generic(l.sender, l.openerSpan, l.src, "unterminated code block")
	}
	rest := l.src[curr:]

	if l.code == codeRegular && strings.HasPrefix(rest, closer) {
		l.w.skip(len(closer))
		l.mode = resumeTo
		return Lexeme{Token: NewToken(Span{curr, l.w.curr}, closerType)}, true, nil
	}

	if l.code == codeRegular && isIdentStart(ch) {
		identLen := 0
		for _, r := range rest {
			if !isIdentContinue(r) {
				break
			}
			identLen += len(string(r))
		}
		if strings.HasPrefix(rest[identLen:], "(") {
			// The span includes the trailing '(' (needed for the lexer's
			// own round-trip property); the sexpr former strips it back
			// off via identParenName when it needs just the identifier
			// name.
			l.w.skip(identLen + 1)
			return Lexeme{Token: NewToken(Span{curr, l.w.curr}, LexIdentParen)}, true, nil
		}
		l.w.skip(identLen)
		return Lexeme{Token: NewToken(Span{curr, l.w.curr}, LexIdent)}, true, nil
	}

	if l.code == codeRegular {
		if typ, width, isOK := singleCharToken(ch); isOK {
			l.w.skip(width)
			tok := NewToken(Span{curr, l.w.curr}, typ)
			if ch == '"' {
				l.code = codeQuote
				l.quoteOpener = tok.Span
			}
			return Lexeme{Token: tok}, true, nil
		}
		return Lexeme{}, false, Generic(l.sender, Span{curr, curr + len(string(ch))}, l.src, "invalid syntax")
	}

	// codeQuote
	switch ch {
	case '"':
		l.code = codeRegular
		l.w.skip(1)
		return Lexeme{Token: NewToken(Span{curr, l.w.curr}, LexQuoteClose)}, true, nil
	case '\\':
		escCh, _, _, ok := l.w.advance(false)
		if !ok {
			return Lexeme{}, false, Generic(l.sender, l.quoteOpener, l.src, "missing closing quotation mark")
		}
		var literal string
		switch escCh {
		case 'n':
			literal = "\n"
		case 't':
			literal = "\t"
		case '"':
			literal = "\""
		case ' ', '\n':
			literal = ""
		default:
			return Lexeme{}, false, Generic(l.sender, l.quoteOpener, l.src, "missing closing quotation mark")
		}
		l.w.skip(len(string(escCh)))
		return Lexeme{Token: NewToken(Span{curr, l.w.curr}, LexQuoteLiteral), Text: literal}, true, nil
	default:
		still := true
		for {
			r, _, _, more := l.w.advance(still)
			still = false
			if !more {
				return Lexeme{}, false, Generic(l.sender, l.quoteOpener, l.src, "missing closing quotation mark")
			}
			if r == '"' || r == '\\' {
				break
			}
		}
		return Lexeme{Token: NewToken(Span{curr, l.w.curr}, LexText)}, true, nil
	}
}

func singleCharToken(ch rune) (LexType, int, bool) {
	width := len(string(ch))
	switch ch {
	case '|':
		return LexPipe, width, true
	case '(':
		return LexParenOpen, width, true
	case ')':
		return LexParenClose, width, true
	case '.':
		return LexStdin, width, true
	case ',':
		return LexArgSep, width, true
	case ';':
		return LexStmtSep, width, true
	case '=':
		return LexAssign, width, true
	case ':':
		return LexKeyValSep, width, true
	case '"':
		return LexQuoteOpen, width, true
	}
	return 0, 0, false
}
