// Command knit is a thin wrapper around the compiler-evaluator library: it
// is not the core, just file I/O, flag parsing, and exit-code translation.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/knitlang/knit"
	"github.com/knitlang/knit/internal/config"
	"github.com/knitlang/knit/internal/debugprint"
	"github.com/knitlang/knit/internal/functions"
	"github.com/knitlang/knit/internal/outline"
)

var (
	app = kingpin.New("knit", "Compile and evaluate literate knit documents.")

	configPath = app.Flag("config", "Path to a knit.toml delimiter override file.").Default("knit.toml").String()
	dump       = app.Flag("dump", "Print an intermediate representation instead of evaluating (lex, sexpr, ast).").Enum("lex", "sexpr", "ast")

	parseCmd      = app.Command("parse", "Compile a file to a file (or stdout).")
	parseInput    = parseCmd.Arg("input", "Input file.").Required().String()
	parseOutput   = parseCmd.Arg("output", "Output file; stdout if omitted.").String()
	parseInType   = parseCmd.Flag("input-type", "Input file type.").Short('i').String()
	parseOutType  = parseCmd.Flag("output-type", "Output file type.").Short('o').String()

	parseStdinCmd     = app.Command("parse-stdin", "Compile stdin.")
	parseStdinOutput  = parseStdinCmd.Arg("output", "Output file; stdout if omitted.").String()
	parseStdinOutType = parseStdinCmd.Flag("output-type", "Output file type.").Short('o').String()

	jsonCmd     = app.Command("parse-and-json", "Compile a file and emit a JSON heading outline to stdout.")
	jsonInput   = jsonCmd.Arg("input", "Input file.").Required().String()
	jsonOutput  = jsonCmd.Arg("output", "Output file.").Required().String()
	jsonInType  = jsonCmd.Flag("input-type", "Input file type.").Short('i').String()
	jsonOutType = jsonCmd.Flag("output-type", "Output file type.").Short('o').String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	delims, err := config.Load(*configPath)
	if err != nil {
		kingpin.Fatalf("%s", err)
	}

	var exitErr error
	switch command {
	case parseCmd.FullCommand():
		exitErr = runParse(*parseInput, *parseOutput, *parseInType, *parseOutType, delims, false)
	case parseStdinCmd.FullCommand():
		exitErr = runParseStdin(*parseStdinOutput, *parseStdinOutType, delims)
	case jsonCmd.FullCommand():
		exitErr = runParse(*jsonInput, *jsonOutput, *jsonInType, *jsonOutType, delims, true)
	}
	if exitErr != nil {
		fmt.Fprintln(os.Stderr, exitErr)
		os.Exit(1)
	}
}

func runParse(inputPath, outputPath, inType, outType string, delims knit.Delimiters, emitOutline bool) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	if _, err := parseFileTypes(inType, outType); err != nil {
		return err
	}
	return compileAndWrite(string(src), outputPath, delims, emitOutline)
}

func runParseStdin(outputPath, outType string, delims knit.Delimiters) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	if _, err := parseFileTypes("", outType); err != nil {
		return err
	}
	return compileAndWrite(string(src), outputPath, delims, false)
}

func compileAndWrite(src, outputPath string, delims knit.Delimiters, emitOutline bool) error {
	if *dump != "" {
		return runDump(src, delims)
	}

	doc, err := knit.FromNamedString("<input>", src, delims)
	if err != nil {
		return err
	}

	b := knit.NewBindings[functions.CustomKey, functions.CustomValue]()
	functions.Register(b)

	out, err := knit.Execute(doc, b, nil)
	if err != nil {
		return err
	}

	if err := writeOutput(outputPath, out); err != nil {
		return err
	}

	if emitOutline {
		entries := outline.Extract(out)
		encoded, err := json.Marshal(entries)
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
	}
	return nil
}

func runDump(src string, delims knit.Delimiters) error {
	lexemes, err := knit.LexAll(src, delims)
	if err != nil {
		return err
	}
	if *dump == "lex" {
		debugprint.Lexemes(lexemes)
		return nil
	}
	sexprs, items, err := knit.FormSexprs(lexemes, src)
	if err != nil {
		return err
	}
	if *dump == "sexpr" {
		debugprint.Sexprs(sexprs, items)
		return nil
	}
	commands, args, _, err := knit.ResolveAST(sexprs, items)
	if err != nil {
		return err
	}
	debugprint.Commands(commands, args)
	return nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func parseFileTypes(in, out string) (knit.Config, error) {
	inType, err := fileType(in, knit.FileTypeMarkdown)
	if err != nil {
		return knit.Config{}, err
	}
	outType, err := fileType(out, knit.FileTypeMarkdown)
	if err != nil {
		return knit.Config{}, err
	}
	return knit.Config{InputType: inType, OutputType: outType}, nil
}

func fileType(ext string, def knit.FileType) (knit.FileType, error) {
	switch ext {
	case "":
		return def, nil
	case "md", "markdown":
		return knit.FileTypeMarkdown, nil
	case "html", "htm":
		return knit.FileTypeHTML, nil
	case "tex", "latex":
		return knit.FileTypeLaTeX, nil
	case "txt", "plain":
		return knit.FileTypePlain, nil
	default:
		return 0, fmt.Errorf("unknown file type %q", ext)
	}
}
