package knit

import "unicode/utf8"

// walker is a UTF-8 character cursor over a source string. It tracks the
// current rune along with its byte range so callers can build spans without
// re-scanning. A single rune of lookahead is cached so advance() can be
// called in do-while style (pass still=true on entry to re-observe the
// current rune without consuming it).
type walker struct {
	src   string
	ch    rune
	curr  int // byte offset of ch
	post  int // byte offset just past ch
	atEnd bool
}

func newWalker(src string) *walker {
	w := &walker{src: src}
	ch, width := utf8.DecodeRuneInString(src)
	if width == 0 {
		ch = ' '
		w.atEnd = true
	}
	w.ch = ch
	w.post = width
	return w
}

// current returns the rune the walker is positioned on along with its span.
func (w *walker) current() (ch rune, start, end int) {
	return w.ch, w.curr, w.post
}

// advance moves to the next rune and returns it, or ok=false at EOF. When
// still is true it re-returns the current rune without consuming input —
// this supports do-while loops that must inspect the rune they are already
// sitting on before deciding whether to step forward. still reports
// ok=false too once the cursor has genuinely run off the end, so a
// do-while loop entered exactly at EOF does not loop on a phantom rune.
func (w *walker) advance(still bool) (ch rune, start, end int, ok bool) {
	if still {
		if w.atEnd {
			return 0, w.curr, w.curr, false
		}
		return w.ch, w.curr, w.post, true
	}
	if w.post >= len(w.src) {
		w.curr = len(w.src)
		w.atEnd = true
		return 0, 0, 0, false
	}
	ch, width := utf8.DecodeRuneInString(w.src[w.post:])
	w.ch = ch
	w.curr = w.post
	w.post += width
	return ch, w.curr, w.post, true
}

// peek looks at the rune that would be returned by the next advance(false)
// without consuming it.
func (w *walker) peek() (ch rune, ok bool) {
	if w.post >= len(w.src) {
		return 0, false
	}
	ch, _ = utf8.DecodeRuneInString(w.src[w.post:])
	return ch, true
}

// skip jumps the cursor forward by amount bytes, which must land on a UTF-8
// character boundary; re-synchronizes the cached rune from that point.
func (w *walker) skip(amount int) {
	assertUTF8Boundary(w.src, w.curr+amount)
	rest := w.src[w.curr+amount:]
	ch, width := utf8.DecodeRuneInString(rest)
	w.atEnd = width == 0
	if width == 0 {
		ch = ' '
	}
	w.curr += amount
	w.ch = ch
	w.post = w.curr + width
}

// advanceUntil consumes runes until predicate holds for the rune at the
// cursor, or EOF is reached.
func (w *walker) advanceUntil(predicate func(rune) bool) {
	rest := w.src[w.curr:]
	for i, r := range rest {
		if predicate(r) {
			w.skip(i)
			return
		}
	}
	w.skip(len(rest))
}

// isEnd reports whether the cursor has consumed the entire source.
func (w *walker) isEnd() bool {
	return w.curr == len(w.src)
}

// assertUTF8Boundary panics in debug builds if pos does not land on a UTF-8
// character boundary. It is the walker's one misuse check: callers must
// only skip by widths they derived from decoding runes in this source.
func assertUTF8Boundary(src string, pos int) {
	if !debugAssertions {
		return
	}
	if pos < 0 || pos > len(src) {
		panic("knit: walker position out of range")
	}
	if pos < len(src) && !utf8.RuneStart(src[pos]) {
		panic("knit: walker position not on a UTF-8 boundary")
	}
}
