package functions

import (
	"github.com/knitlang/knit"
)

// CustomKey names a slot in the per-evaluation Variables store a stateful
// function reads and writes across fixed-point passes.
type CustomKey uint8

const (
	KeyCitations CustomKey = iota
	KeyCiteCount
	KeyCiteState
)

// CustomValue is the payload a stateful function can stash inside a
// Value.Custom slot; only cite's citation-index handoff needs one.
type CustomValue struct {
	Citation int
}

// Register installs the standard library into b: concat, env, shell, run,
// if_equals, plus the stateful cite/references pair.
func Register(b *knit.Bindings[CustomKey, CustomValue]) {
	b.RegisterPure("concat", concatFn, knit.UNLIMITED, nil)
	b.RegisterPure("env", envFn, knit.LIMITED, []knit.ValueKind{knit.KindText})
	b.RegisterPure("shell", shellFn, knit.UNLIMITED, []knit.ValueKind{knit.KindText})
	b.RegisterPure("run", runFn, knit.LIMITED, []knit.ValueKind{knit.KindText, knit.KindText})
	b.RegisterPure("if_equals", ifEqualsFn, knit.LIMITED, []knit.ValueKind{knit.KindText, knit.KindText})
	b.RegisterStateful("cite", cite, knit.LIMITED, []knit.ValueKind{knit.KindText})
	b.RegisterStateful("references", references, knit.LIMITED, nil)
}

func concatFn(args []knit.Value[CustomValue]) (knit.Value[CustomValue], error) {
	return knit.Concat(args)
}

func envFn(args []knit.Value[CustomValue]) (knit.Value[CustomValue], error) {
	v, err := fetchEnvVar(args[0].Text())
	if err != nil {
		return knit.Value[CustomValue]{}, knit.FuncError("%s", err)
	}
	return knit.TextValue[CustomValue](v), nil
}

// shellFn spawns args[0] with args[1:len-1] as argv and the last argument
// as stdin, matching the "external process I/O is synchronous" contract.
func shellFn(args []knit.Value[CustomValue]) (knit.Value[CustomValue], error) {
	last := len(args) - 1
	if last == 0 {
		return knit.Value[CustomValue]{}, knit.FuncError("missing a second argument to use as stdin")
	}
	argv := make([]string, 0, last-1)
	for i := 1; i < last; i++ {
		if !args[i].IsText() {
			return knit.Value[CustomValue]{}, knit.ArgError(i, "is not text")
		}
		argv = append(argv, args[i].Text())
	}
	out, err := runCommand(args[0].Text(), args[last].Text(), argv)
	if err != nil {
		return knit.Value[CustomValue]{}, knit.FuncError("%s", err)
	}
	return knit.TextValue[CustomValue](out), nil
}

// runFn dispatches on a language tag: "graphviz"/"dot" renders through
// Graphviz, "sh" runs as a shell body.
func runFn(args []knit.Value[CustomValue]) (knit.Value[CustomValue], error) {
	lang, body := args[0].Text(), args[1].Text()
	switch lang {
	case "graphviz", "dot":
		out, err := runCommand("dot", body, []string{"-Tsvg"})
		if err != nil {
			return knit.Value[CustomValue]{}, knit.FuncError("%s", err)
		}
		return knit.TextValue[CustomValue](out), nil
	case "sh":
		out, err := runCommand("sh", body, nil)
		if err != nil {
			return knit.Value[CustomValue]{}, knit.FuncError("%s", err)
		}
		return knit.TextValue[CustomValue](out), nil
	default:
		return knit.Value[CustomValue]{}, knit.ArgError(0, "unrecognised language tag %q", lang)
	}
}

func ifEqualsFn(args []knit.Value[CustomValue]) (knit.Value[CustomValue], error) {
	if args[0].Text() == args[1].Text() {
		return args[0], nil
	}
	return knit.NullValue[CustomValue](), nil
}

func usizeOf(v knit.Value[CustomValue], def int) int {
	if v.IsUsize() {
		return v.Usize()
	}
	return def
}
