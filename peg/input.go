package peg

import (
	"unicode/utf8"

	"github.com/ava12/pegx/source"
)

// Parse is implemented by every input type.
type Parse interface {
	// Start returns the position of the first element.
	Start() int
	// IsEOF tells whether pos is at or past the end of input.
	IsEOF(pos int) bool
	// PositionRepr returns human-readable representation of pos, used only in error messages.
	PositionRepr(pos int) string
}

// ParseElem is implemented by inputs supporting element classes.
type ParseElem[E any] interface {
	Parse
	// ParseElem returns the element at pos and the position after it, fails past the end of input.
	ParseElem(pos int) RuleResult[E]
}

// ParseLiteral is implemented by inputs supporting literals.
type ParseLiteral interface {
	Parse
	// ParseLiteral matches lit at pos and returns the position after it.
	// On mismatch ok is false and end is the position where matching diverged:
	// byte offset into lit is end - pos, inputs unable to report divergence return pos.
	ParseLiteral(pos int, lit string) (end int, ok bool)
}

// ParseSlice is implemented by inputs supporting $(...) captures.
type ParseSlice[S any] interface {
	Parse
	// ParseSlice returns input view between positions p1 and p2.
	ParseSlice(p1, p2 int) S
}

// Str is a string input, positions are byte offsets, elements are runes.
type Str string

// Start returns 0.
func (s Str) Start() int {
	return 0
}

// IsEOF tells whether pos is at or past string length.
func (s Str) IsEOF(pos int) bool {
	return pos >= len(s)
}

// PositionRepr returns "line:col" of pos.
func (s Str) PositionRepr(pos int) string {
	return source.New("", []byte(s)).Repr(pos)
}

// ParseElem decodes a rune at pos.
func (s Str) ParseElem(pos int) RuleResult[rune] {
	if pos < 0 || pos >= len(s) {
		return Failed[rune]()
	}

	r, size := utf8.DecodeRuneInString(string(s[pos:]))
	return Matched(pos+size, r)
}

// ParseLiteral matches lit at pos byte by byte.
func (s Str) ParseLiteral(pos int, lit string) (int, bool) {
	i := 0
	for i < len(lit) && pos+i < len(s) && s[pos+i] == lit[i] {
		i++
	}
	return pos + i, i == len(lit)
}

// ParseSlice returns substring.
func (s Str) ParseSlice(p1, p2 int) string {
	return string(s[p1:p2])
}

// Bytes is a byte slice input, positions are byte offsets, elements are bytes.
type Bytes []byte

// Start returns 0.
func (b Bytes) Start() int {
	return 0
}

// IsEOF tells whether pos is at or past slice length.
func (b Bytes) IsEOF(pos int) bool {
	return pos >= len(b)
}

// PositionRepr returns "line:col" of pos.
func (b Bytes) PositionRepr(pos int) string {
	return source.New("", b).Repr(pos)
}

// ParseElem returns a byte at pos.
func (b Bytes) ParseElem(pos int) RuleResult[byte] {
	if pos < 0 || pos >= len(b) {
		return Failed[byte]()
	}
	return Matched(pos+1, b[pos])
}

// ParseLiteral matches lit at pos byte by byte.
func (b Bytes) ParseLiteral(pos int, lit string) (int, bool) {
	i := 0
	for i < len(lit) && pos+i < len(b) && b[pos+i] == lit[i] {
		i++
	}
	return pos + i, i == len(lit)
}

// ParseSlice returns subslice, it shares memory with input.
func (b Bytes) ParseSlice(p1, p2 int) []byte {
	return b[p1:p2]
}
