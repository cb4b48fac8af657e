package knit

// Document is a compiled source: lexed, formed into s-expressions, and
// resolved into a runnable command list. It carries no host functions or
// evaluation state, so one Document can be Execute'd against as many
// independent Bindings as the caller wants.
type Document struct {
	name   string
	source string

	commands []Command
	args     []Token[Item]
}

// FromString compiles src using the default delimiter set.
func FromString(src string) (*Document, error) {
	return FromNamedString("<string>", src, DefaultDelimiters())
}

// FromNamedString compiles src under name (used only in diagnostics) with
// an explicit delimiter set.
func FromNamedString(name, src string, delims Delimiters) (*Document, error) {
	lexemes, err := LexAll(src, delims)
	if err != nil {
		return nil, err
	}
	sexprs, items, err := FormSexprs(lexemes, src)
	if err != nil {
		return nil, err
	}
	commands, args, _, err := ResolveAST(sexprs, items)
	if err != nil {
		return nil, err
	}
	return &Document{name: name, source: src, commands: commands, args: args}, nil
}

// Execute evaluates a compiled Document against a host function registrar.
// Go does not allow a generic method to introduce type parameters beyond
// its receiver's, so this is a free function rather than *Document.Execute.
func Execute[K comparable, V any](d *Document, b *Bindings[K, V], logger Logger) (string, error) {
	return Run(b, d.commands, d.args, d.source, logger)
}
