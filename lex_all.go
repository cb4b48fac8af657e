package knit

// LexAll drains a Lexer into a slice, the shape the sexpr former consumes.
func LexAll(src string, delims Delimiters) ([]Lexeme, error) {
	l := NewLexer(src, delims)
	lexemes := make([]Lexeme, 0, len(src)/4+1)
	for {
		lex, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return lexemes, nil
		}
		lexemes = append(lexemes, lex)
	}
}
