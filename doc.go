// Package knit compiles and evaluates literate documents: source text
// interleaved with code cells that call host-registered functions and
// stdin-piped heredoc cells that feed them raw text.
//
// A tiny example with source strings:
//
//	doc, err := knit.FromString(`{$ greeting = "Hello"; $}{$ greeting $}, {$ name $}!`)
//	if err != nil {
//	    panic(err)
//	}
//
//	b := knit.NewBindings[string, any]()
//	b.RegisterPure("name", func(args []knit.Value[any]) (knit.Value[any], error) {
//	    return knit.TextValue[any]("Florian"), nil
//	}, knit.LIMITED, nil)
//
//	out, err := knit.Execute(doc, b, nil)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(out) // Output: Hello, Florian!
//
// The trailing ';' in the first cell discards the assignment's own value,
// which would otherwise be spliced into the output as well.
//
// Compiling a Document is independent of evaluating it: the same Document
// can be Execute'd against different Bindings, and a single Bindings can
// back many concurrent evaluations since it carries no per-run state of
// its own (that lives in the Variables each stateful function is handed).
package knit
