package knit

import "fmt"

// ValueKind is the stable numeric tag attached to every Value variant,
// used for host-function parameter type-checking and in type-mismatch
// diagnostics.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindText
	KindUsize
	KindChar
	KindBool
	KindList
	KindCustom
)

var valueKindNames = [...]string{
	KindNull:   "Null",
	KindText:   "Text",
	KindUsize:  "Usize",
	KindChar:   "Char",
	KindBool:   "Bool",
	KindList:   "List",
	KindCustom: "Custom",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "?"
}

// Value is the tagged-sum runtime value every command argument and output
// carries. V is the host's custom value type, for embedding values no
// built-in variant covers. Null is the placeholder for "not yet computed".
type Value[V any] struct {
	kind   ValueKind
	text   string
	usize  int
	char   rune
	bool_  bool
	list   []Value[V]
	custom V
}

// Tag reports the value's stable numeric type, collapsed to the one
// comparison host functions need for argument checking.
func (v Value[V]) Tag() ValueKind { return v.kind }

func (v Value[V]) IsNull() bool   { return v.kind == KindNull }
func (v Value[V]) IsText() bool   { return v.kind == KindText }
func (v Value[V]) IsUsize() bool  { return v.kind == KindUsize }
func (v Value[V]) IsChar() bool   { return v.kind == KindChar }
func (v Value[V]) IsBool() bool   { return v.kind == KindBool }
func (v Value[V]) IsList() bool   { return v.kind == KindList }
func (v Value[V]) IsCustom() bool { return v.kind == KindCustom }

// Text returns the text payload; valid only when IsText.
func (v Value[V]) Text() string { return v.text }

// Usize returns the numeric payload; valid only when IsUsize.
func (v Value[V]) Usize() int { return v.usize }

// Char returns the rune payload; valid only when IsChar.
func (v Value[V]) Char() rune { return v.char }

// Bool returns the boolean payload; valid only when IsBool.
func (v Value[V]) Bool() bool { return v.bool_ }

// List returns the element slice; valid only when IsList.
func (v Value[V]) List() []Value[V] { return v.list }

// Custom returns the host payload; valid only when IsCustom.
func (v Value[V]) Custom() V { return v.custom }

func NullValue[V any]() Value[V] { return Value[V]{kind: KindNull} }

func TextValue[V any](s string) Value[V] { return Value[V]{kind: KindText, text: s} }

func UsizeValue[V any](n int) Value[V] { return Value[V]{kind: KindUsize, usize: n} }

func CharValue[V any](c rune) Value[V] { return Value[V]{kind: KindChar, char: c} }

func BoolValue[V any](b bool) Value[V] { return Value[V]{kind: KindBool, bool_: b} }

func ListValue[V any](items []Value[V]) Value[V] { return Value[V]{kind: KindList, list: items} }

func CustomValue[V any](v V) Value[V] { return Value[V]{kind: KindCustom, custom: v} }

// display renders v the way Concat joins its arguments: Text/Usize/Char/
// Bool flatten to their natural spelling, List recurses, Custom is the
// host's concern (callers handling a custom value type must not route it
// through this generic path; Concat rejects it).
func display[V any](v Value[V], buf *[]byte) error {
	switch v.kind {
	case KindNull:
		return fmt.Errorf("left a null value unprocessed")
	case KindText:
		*buf = append(*buf, v.text...)
	case KindChar:
		*buf = append(*buf, string(v.char)...)
	case KindUsize:
		*buf = append(*buf, fmt.Sprintf("%d", v.usize)...)
	case KindBool:
		if v.bool_ {
			*buf = append(*buf, "true"...)
		} else {
			*buf = append(*buf, "false"...)
		}
	case KindList:
		for _, item := range v.list {
			if err := display(item, buf); err != nil {
				return err
			}
		}
	case KindCustom:
		return fmt.Errorf("cannot display a custom value without a host-provided renderer")
	}
	return nil
}

// Concat is the built-in command backing Label.Concat and the document's
// final root command: it joins its arguments into a single Text value.
func Concat[V any](args []Value[V]) (Value[V], error) {
	var buf []byte
	for _, a := range args {
		if err := display(a, &buf); err != nil {
			return Value[V]{}, err
		}
	}
	return TextValue[V](string(buf)), nil
}
