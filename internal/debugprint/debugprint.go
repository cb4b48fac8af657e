// Package debugprint backs the CLI's --dump developer flag: pretty-printed
// intermediate representations (lexemes, s-expressions, the resolved
// command list) for inspecting a compile without running it.
package debugprint

import (
	"github.com/alecthomas/repr"

	"github.com/knitlang/knit"
)

// Stage names a --dump target.
type Stage string

const (
	StageLex   Stage = "lex"
	StageSexpr Stage = "sexpr"
	StageAST   Stage = "ast"
)

// Lexemes pretty-prints a lexer's full token stream.
func Lexemes(lexemes []knit.Lexeme) {
	repr.Println(lexemes)
}

// Sexprs pretty-prints the sexpr former's output.
func Sexprs(sexprs []knit.Sexpr, args []knit.Token[knit.Item]) {
	repr.Println(sexprs)
	repr.Println(args)
}

// Commands pretty-prints the resolved command list.
func Commands(commands []knit.Command, args []knit.Token[knit.Item]) {
	repr.Println(commands)
	repr.Println(args)
}
