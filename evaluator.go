package knit

// iterationBudget bounds the fixed-point scheduler: exceeding it without
// the root command becoming Ready is a fatal diagnostic rather than an
// infinite loop.
const iterationBudget = 1000

type dirtyValue[V any] struct {
	Dirty Dirty
	Value Value[V]
}

// Run evaluates a resolved command list to its final rendered text via
// repeated fixed-point passes: each pass walks every command in
// topological order, runs whichever have all their Reference arguments
// Ready, and leaves the rest for a later pass. This lets a stateful
// function (cite accumulating citekeys) stay Waiting across several
// passes while the commands that already have everything they need keep
// making progress.
func Run[K comparable, V any](b *Bindings[K, V], ast []Command, args []Token[Item], source string, logger Logger) (string, error) {
	if len(ast) == 0 {
		return "", Contextless("eval", "nothing to evaluate")
	}

	internal := make(map[string]Value[V])
	external := NewVariables[K, V]()
	outputs := make([]dirtyValue[V], len(ast))
	bound := make([]Value[V], len(args))

	for i, cmd := range ast {
		initArgs(cmd, args, source, bound)
		_ = i
	}

	lastIndex := len(outputs) - 1
	iterCount := 0
	for outputs[lastIndex].Dirty == Waiting {
		for i, cmd := range ast {
			if outputs[i].Dirty == Ready || !argsReady(cmd, args, outputs) {
				continue
			}
			loadArgs(i, ast, args, bound, outputs)
			bound_ := bound[cmd.Args.Start:cmd.Args.End]

			var err error
			switch cmd.Label.Kind {
			case LabelAssign:
				lvalue := args[cmd.Args.Start]
				name := lvalue.Span.Slice(source)
				if _, exists := b.lookup(name); exists {
					return "", Generic("eval", lvalue.Span, source,
						"a function with this name already exists; choose a different name for this variable")
				}
				internal[name] = bound_[1]
				outputs[i] = dirtyValue[V]{Dirty: Ready, Value: bound_[1]}

			case LabelIdent, LabelFunc:
				name := cmd.Label.Span.Slice(source)
				var variable Value[V]
				var isVariable bool
				if cmd.Label.Kind == LabelIdent {
					variable, isVariable = internal[name]
				}
				entry, isFunction := b.lookup(name)

				switch {
				case isVariable && isFunction:
					err = Generic("eval", cmd.Label.Span, source,
						"this name resolves to both a function and a variable")
				case isVariable:
					outputs[i] = dirtyValue[V]{Dirty: Ready, Value: variable}
					if reverseDependantCount(cmd) == 0 {
						internal[name] = NullValue[V]()
					}
				case isFunction:
					outputs[i], err = callFunction(entry, b.parameters, bound_, outputs[i], external)
				default:
					err = Generic("eval", cmd.Label.Span, source, "no function or variable named this")
				}

			default: // LabelConcat
				out, cerr := Concat(bound_)
				if cerr != nil {
					err = toDiagnostic(cerr, cmd, args, source)
				} else {
					outputs[i] = dirtyValue[V]{Dirty: Ready, Value: out}
				}
			}
			if err != nil {
				if _, ok := err.(*Diagnostic); ok {
					return "", err
				}
				return "", toDiagnostic(err, cmd, args, source)
			}
		}

		iterCount++
		debugf(logger, "pass %d complete, root dirty=%v", iterCount, outputs[lastIndex].Dirty)
		if iterCount > iterationBudget {
			return "", Contextless("eval", "evaluation did not converge within the iteration budget")
		}
	}

	final := outputs[lastIndex].Value
	if !final.IsText() {
		return "", Contextless("eval", "the document did not evaluate to text")
	}
	return final.Text(), nil
}

func callFunction[K comparable, V any](entry funcEntry[K, V], params []ValueKind, args []Value[V], prev dirtyValue[V], external *Variables[K, V]) (dirtyValue[V], error) {
	if err := checkArgs(entry.def, params, args); err != nil {
		return dirtyValue[V]{}, err
	}
	switch entry.kind {
	case funcPure:
		out, err := entry.pure(args)
		if err != nil {
			return dirtyValue[V]{}, err
		}
		return dirtyValue[V]{Dirty: Ready, Value: out}, nil
	default: // funcStateful
		dirty, out, err := entry.stateful(args, prev.Value, external)
		if err != nil {
			return dirtyValue[V]{}, err
		}
		return dirtyValue[V]{Dirty: dirty, Value: out}, nil
	}
}

// toDiagnostic attaches real source context to an error a host function or
// the argument checker raised: the blamed argument's span if it named one,
// the command's label span otherwise.
func toDiagnostic(err error, cmd Command, args []Token[Item], source string) error {
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	ce, ok := err.(*CallError)
	if !ok {
		return Contextless("eval", err.Error())
	}
	if ce.positional {
		idx := cmd.Args.Start + ce.argIdx
		if idx >= 0 && idx < len(args) {
			return Positional("eval", ce.argIdx, args[idx].Span, source, ce.message)
		}
	}
	return Generic("eval", cmd.Label.Span, source, ce.message)
}

// reverseDependantCount is the number of commands statically known to
// consume this command's output via a Reference; zero means the output
// can be moved out rather than cloned once it is finally produced.
func reverseDependantCount(cmd Command) int {
	return cmd.ProvidesFor.End - cmd.ProvidesFor.Start
}

// initArgs materialises each command's Str/Literal arguments once, up
// front: they never change across passes. Reference, Ident and Key slots
// start Null; loadArgs fills in the Reference slots once their producer is
// Ready.
func initArgs[V any](cmd Command, args []Token[Item], source string, bound []Value[V]) {
	for i, arg := range args[cmd.Args.Start:cmd.Args.End] {
		idx := cmd.Args.Start + i
		switch arg.Payload.Kind {
		case ItemStr:
			bound[idx] = TextValue[V](arg.Span.Slice(source))
		case ItemLiteral:
			bound[idx] = TextValue[V](arg.Payload.Text)
		case ItemReference, ItemIdent, ItemKey:
			bound[idx] = NullValue[V]()
		default:
			panic("knit: unexpected item kind reaching evaluation")
		}
	}
}

func argsReady[V any](cmd Command, args []Token[Item], outputs []dirtyValue[V]) bool {
	for _, arg := range args[cmd.Args.Start:cmd.Args.End] {
		if arg.Payload.Kind == ItemReference && outputs[arg.Payload.Ref].Dirty != Ready {
			return false
		}
	}
	return true
}

func loadArgs[V any](i int, ast []Command, args []Token[Item], bound []Value[V], outputs []dirtyValue[V]) {
	start := ast[i].Args.Start
	for k, arg := range args[start:ast[i].Args.End] {
		if arg.Payload.Kind != ItemReference {
			continue
		}
		j := arg.Payload.Ref
		if reverseDependantCount(ast[j]) == 0 {
			bound[start+k] = outputs[j].Value
			outputs[j].Value = NullValue[V]()
		} else {
			bound[start+k] = outputs[j].Value
		}
	}
}
