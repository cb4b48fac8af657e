package knit

import "fmt"

// PureFunc is a host function with no side effects: called once, in the
// first pass where all its arguments are Ready, and its result is final.
type PureFunc[V any] func(args []Value[V]) (Value[V], error)

// StatefulFunc is a host function that carries state across fixed-point
// passes. oldOutput is the value this same command produced last pass
// (Value.IsNull on the first call); storage is this evaluation's mutable
// side-table, shared by every stateful function keyed by CustomKey.
type StatefulFunc[K comparable, V any] func(args []Value[V], oldOutput Value[V], storage *Variables[K, V]) (Dirty, Value[V], error)

// Dirty marks whether a command's output is final for this evaluation
// pass or still needs recomputing.
type Dirty uint8

const (
	Waiting Dirty = iota
	Ready
)

// LIMITED and UNLIMITED control whether a registered function's argument
// count must exactly match its declared parameter list (LIMITED) or may
// run long with the declared parameters checked only as a prefix
// (UNLIMITED, for variadic-style functions like concat(...) or shell(...)).
const (
	LIMITED   = true
	UNLIMITED = false
)

type paramDef struct {
	params     argRange // range into Bindings.parameters
	argMin     int
	argMax     int
}

type funcKind uint8

const (
	funcPure funcKind = iota
	funcStateful
)

type funcEntry[K comparable, V any] struct {
	kind     funcKind
	pure     PureFunc[V]
	stateful StatefulFunc[K, V]
	def      paramDef
}

// Bindings is the host function registrar threaded through compilation and
// evaluation: a name-keyed table of the pure and stateful functions a
// document's Ident calls may resolve against.
type Bindings[K comparable, V any] struct {
	functions  map[string]funcEntry[K, V]
	parameters []ValueKind
}

// NewBindings constructs an empty registrar.
func NewBindings[K comparable, V any]() *Bindings[K, V] {
	return &Bindings[K, V]{functions: make(map[string]funcEntry[K, V])}
}

// RegisterPure adds a pure host function under name. limited selects
// LIMITED (exact argument count) or UNLIMITED (at least len(params)).
func (b *Bindings[K, V]) RegisterPure(name string, f PureFunc[V], limited bool, params []ValueKind) {
	start := len(b.parameters)
	b.parameters = append(b.parameters, params...)
	b.functions[name] = funcEntry[K, V]{
		kind: funcPure,
		pure: f,
		def:  paramDefFor(start, len(b.parameters), limited),
	}
}

// RegisterStateful adds a stateful host function under name.
func (b *Bindings[K, V]) RegisterStateful(name string, f StatefulFunc[K, V], limited bool, params []ValueKind) {
	start := len(b.parameters)
	b.parameters = append(b.parameters, params...)
	b.functions[name] = funcEntry[K, V]{
		kind:     funcStateful,
		stateful: f,
		def:      paramDefFor(start, len(b.parameters), limited),
	}
}

func paramDefFor(start, end int, limited bool) paramDef {
	d := paramDef{params: argRange{start, end}}
	if limited == LIMITED {
		d.argMin, d.argMax = end-start, end-start
	} else {
		d.argMin, d.argMax = end-start, int(^uint(0)>>1)
	}
	return d
}

func (b *Bindings[K, V]) lookup(name string) (funcEntry[K, V], bool) {
	e, ok := b.functions[name]
	return e, ok
}

// CallError is the error shape a host function or the argument checker
// raises; the evaluator attaches the real source span when it turns this
// into a Diagnostic.
type CallError struct {
	positional bool
	argIdx     int
	message    string
}

func (e *CallError) Error() string { return e.message }

// ArgError blames argument index i (0-based) for the failure.
func ArgError(i int, format string, a ...any) error {
	return &CallError{positional: true, argIdx: i, message: fmt.Sprintf(format, a...)}
}

// FuncError blames the call as a whole, not a specific argument.
func FuncError(format string, a ...any) error {
	return &CallError{message: fmt.Sprintf(format, a...)}
}

func checkArgs[V any](d paramDef, allParams []ValueKind, args []Value[V]) error {
	if len(args) < d.argMin {
		if len(args) == 0 {
			return FuncError("missing an argument")
		}
		return ArgError(len(args)-1, "need an argument after this")
	}
	if len(args) > d.argMax {
		return ArgError(len(args)-1, "unexpected argument")
	}
	params := allParams[d.params.Start:d.params.End]
	for i := 0; i < len(params) && i < len(args); i++ {
		if params[i] != args[i].Tag() {
			return ArgError(i, "is a value of type %s. Expected a %s", args[i].Tag(), params[i])
		}
	}
	return nil
}
