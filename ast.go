package knit

import "sort"

// This pass formats s-exprs into runnable commands: it resolves Stdin
// arguments to the text cell they draw from, collapses now-redundant
// single-argument redirections, removes the gaps left behind, and marks up
// each command with the range of commands that depend on it.

// LabelKind discriminates what a Command's first argument slot meant.
type LabelKind uint8

const (
	// LabelConcat displays every argument as-is: the default when the
	// head of an s-expr was not an identifier, a parenthesised call, or
	// an assignment.
	LabelConcat LabelKind = iota
	// LabelAssign is "<l-value> = <r-value>"; Span names the l-value.
	LabelAssign
	// LabelIdent names a bare identifier: could resolve to either a
	// variable or a function, undetermined until evaluation.
	LabelIdent
	// LabelFunc names an identifier written with a parenthesised call:
	// definitely a function, never falls back to a variable lookup.
	LabelFunc
)

// Label is a Command's discriminated head.
type Label struct {
	Kind LabelKind
	Span Span // valid for LabelAssign, LabelIdent, and LabelFunc
}

// Command is a fully resolved, topologically ordered operation: Args
// indexes a flat, gapless argument buffer, and ProvidesFor indexes a flat
// reverse-dependency buffer naming which later commands consume this
// command's output.
type Command struct {
	Label       Label
	Args        argRange
	ProvidesFor argRange
}

// ResolveAST turns a former's s-expr output into a command list ready for
// evaluation. providees[cmd.ProvidesFor.Start:cmd.ProvidesFor.End] lists
// the command indices that take this command's output as an argument.
func ResolveAST(sexprs []Sexpr, args []Token[Item]) (commands []Command, gaplessArgs []Token[Item], providees []int, err error) {
	sorted, stdinRefs := reorderByCellParity(sexprs)

	resolvedArgs := make([]Token[Item], 0, len(args))
	for i := range sorted {
		exp := &sorted[i]
		outputID := stdinRefs[exp.CellID/2]
		start := len(resolvedArgs)
		for _, p := range args[exp.Args.Start:exp.Args.End] {
			if p.Payload.Kind == ItemStdin {
				resolvedArgs = append(resolvedArgs, NewToken(p.Span, Item{Kind: ItemReference, Ref: outputID}))
			} else {
				resolvedArgs = append(resolvedArgs, p)
			}
		}
		exp.Args = argRange{start, len(resolvedArgs)}
	}

	sorted = collapseRedirections(sorted, resolvedArgs)

	outputIndices := make([]int, len(sexprs))
	for i, exp := range sorted {
		outputIndices[exp.OutputID] = i
	}

	type dependency struct{ provider, receiver int }
	var dependencies []dependency

	for i, exp := range sorted {
		length := exp.Args.End - exp.Args.Start
		label := Label{Kind: LabelConcat}
		skip := 0
		if length > 0 {
			first := resolvedArgs[exp.Args.Start]
			switch first.Payload.Kind {
			case ItemIdent:
				label = Label{Kind: LabelIdent, Span: first.Span}
				skip = 1
			case ItemFunc:
				label = Label{Kind: LabelFunc, Span: first.Span}
				skip = 1
			case ItemAssign:
				label = Label{Kind: LabelAssign, Span: first.Span}
				if length > 1 {
					label.Span = resolvedArgs[exp.Args.Start+1].Span // the l-value
				}
				skip = 1
			}
		}

		newStart := len(gaplessArgs)
		for _, a := range resolvedArgs[exp.Args.Start+skip : exp.Args.End] {
			if a.Payload.Kind == ItemReference {
				idx := outputIndices[a.Payload.Ref]
				gaplessArgs = append(gaplessArgs, NewToken(a.Span, Item{Kind: ItemReference, Ref: idx}))
				dependencies = append(dependencies, dependency{idx, i})
			} else {
				gaplessArgs = append(gaplessArgs, a)
			}
		}
		commands = append(commands, Command{Label: label, Args: argRange{newStart, len(gaplessArgs)}})
	}

	sort.Slice(dependencies, func(i, j int) bool {
		if dependencies[i].provider != dependencies[j].provider {
			return dependencies[i].provider < dependencies[j].provider
		}
		return dependencies[i].receiver < dependencies[j].receiver
	})

	cursor := 0
	lastProvider := len(dependencies)
	for i, d := range dependencies {
		if d.provider != lastProvider {
			lastProvider = d.provider
			cursor = i
		}
		commands[lastProvider].ProvidesFor = argRange{cursor, i + 1}
	}

	if debugAssertions {
		for _, cmd := range commands {
			if cmd.ProvidesFor.Start > cmd.ProvidesFor.End {
				panic("knit: invalid provides_for range")
			}
		}
		for i, cmd := range commands {
			for _, d := range dependencies[cmd.ProvidesFor.Start:cmd.ProvidesFor.End] {
				if d.provider != i {
					panic("knit: provides_for range demarcates the wrong command")
				}
			}
		}
		count := 0
		for _, cmd := range commands {
			count += cmd.ProvidesFor.End - cmd.ProvidesFor.Start
		}
		if count != len(dependencies) {
			panic("knit: provides_for ranges do not cover every dependency")
		}
	}

	providees = make([]int, len(dependencies))
	for i, d := range dependencies {
		providees[i] = d.receiver
	}
	return commands, gaplessArgs, providees, nil
}

// reorderByCellParity moves each heredoc code cell's sexprs (even cell_id)
// to directly follow the text cell (odd cell_id, the next one) that they
// draw stdin from, and records, per paired cell, which sexpr's output (that
// text cell's concatenation sexpr) supplies that stdin.
func reorderByCellParity(sexprs []Sexpr) (sorted []Sexpr, stdinRefs []int) {
	var buffer []Sexpr
	pastID := 0
	for _, exp := range sexprs {
		if pastID+2 <= exp.CellID {
			pastID += 2
			stdinRefs = append(stdinRefs, sorted[len(sorted)-1].OutputID)
			sorted = append(sorted, buffer...)
			buffer = buffer[:0]
		}
		if exp.CellID%2 == 0 {
			buffer = append(buffer, exp)
		} else {
			sorted = append(sorted, exp)
		}
	}
	sorted = append(sorted, buffer...)
	stdinRefs = append(stdinRefs, 0) // keeps stdinRefs[knitCommand.CellID/2] in range
	return sorted, stdinRefs
}

// collapseRedirections drops single-argument sexprs whose one argument is
// a literal or another reference, splicing that argument directly into
// every later sexpr that referenced this one's output. This removes the
// over-specific single-ident and single-quote sexprs the former
// deliberately produces.
func collapseRedirections(sorted []Sexpr, resolvedArgs []Token[Item]) []Sexpr {
	kept := sorted[:0]
	for _, exp := range sorted {
		first := exp.Args.Start
		length := exp.Args.End - first
		retain := true
		if length == 1 {
			switch resolvedArgs[first].Payload.Kind {
			case ItemStr, ItemLiteral:
				firstArg := resolvedArgs[first]
				rest := resolvedArgs[first+1:]
				for i := range rest {
					if rest[i].Payload.Kind == ItemReference && rest[i].Payload.Ref == exp.OutputID {
						rest[i] = firstArg
					}
				}
				retain = len(rest) == 0
			case ItemReference:
				oldRef := resolvedArgs[first].Payload.Ref
				rest := resolvedArgs[first+1:]
				for i := range rest {
					if rest[i].Payload.Kind == ItemReference && rest[i].Payload.Ref == exp.OutputID {
						rest[i].Payload.Ref = oldRef
					}
				}
				retain = false
			}
		}
		if retain {
			kept = append(kept, exp)
		}
	}
	return kept
}
