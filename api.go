package knit

import "github.com/google/uuid"

// FileType names an input or output document shape for a compile run. The
// CLI picks these from a file extension; a library caller sets them
// explicitly.
type FileType uint8

const (
	FileTypeMarkdown FileType = iota
	FileTypeHTML
	FileTypeLaTeX
	FileTypePlain
)

// Config is the metadata an Api carries alongside the raw source: what
// shape the input is in and what shape the rendered output is. Evaluation
// itself does not read it.
type Config struct {
	InputType  FileType
	OutputType FileType
}

// Api is a single compile-and-evaluate run: it owns the lexed/formed/
// resolved pipeline stages and the eventual rendered text, tagged with a
// RunID so a host embedding multiple concurrent runs (or logging across
// them) can tell them apart.
type Api[K comparable, V any] struct {
	RunID uuid.UUID
	Meta  Config
	doc   *Document
	logger Logger

	Outline []OutlineEntry
	Output  string
}

// OutlineEntry is one heading extracted from the rendered output, used by
// the parse-and-json CLI subcommand.
type OutlineEntry struct {
	Level int
	Text  string
}

// NewApi compiles source under the given delimiters and wraps it with a
// fresh RunID. It does not evaluate; call Run for that.
func NewApi[K comparable, V any](source string, meta Config, delims Delimiters, logger Logger) (*Api[K, V], error) {
	doc, err := FromNamedString("<api>", source, delims)
	if err != nil {
		return nil, err
	}
	return &Api[K, V]{RunID: uuid.New(), Meta: meta, doc: doc, logger: logger}, nil
}

// Run evaluates the compiled document against b, storing the rendered text
// on Output and returning it.
func (a *Api[K, V]) Run(b *Bindings[K, V]) (string, error) {
	out, err := Execute(a.doc, b, a.logger)
	if err != nil {
		return "", err
	}
	a.Output = out
	return out, nil
}
