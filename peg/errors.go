package peg

import (
	"fmt"
	"sort"
	"strings"
)

// EOFLabel is the label expected when input remains after a complete match.
const EOFLabel = "EOF"

// ExpectedSet is a set of labels expected at the furthest failure position.
type ExpectedSet struct {
	labels map[string]struct{}
}

// Add adds a label.
func (s *ExpectedSet) Add(label string) {
	if s.labels == nil {
		s.labels = make(map[string]struct{})
	}
	s.labels[label] = struct{}{}
}

// Has tells whether the set contains label.
func (s *ExpectedSet) Has(label string) bool {
	_, has := s.labels[label]
	return has
}

// Len returns the number of labels.
func (s *ExpectedSet) Len() int {
	return len(s.labels)
}

// Labels returns sorted labels.
func (s *ExpectedSet) Labels() []string {
	res := make([]string, 0, len(s.labels))
	for l := range s.labels {
		res = append(res, l)
	}
	sort.Strings(res)
	return res
}

// String renders the set as "a" or "one of a, b".
func (s *ExpectedSet) String() string {
	labels := s.Labels()
	switch len(labels) {
	case 0:
		return "nothing"
	case 1:
		return labels[0]
	default:
		return "one of " + strings.Join(labels, ", ")
	}
}

func (s *ExpectedSet) reset() {
	clear(s.labels)
}

// ErrorState tracks the furthest failure of a parse.
// A failure at greater position replaces tracked labels, a failure at the same position adds its label.
// Failures are ignored while suppressed (inside negative lookahead or quiet!{}).
// ErrorState belongs to a single parse and must not be shared between goroutines.
type ErrorState struct {
	// Pos is the furthest failure position.
	Pos int

	// Expected contains labels expected at Pos.
	Expected ExpectedSet

	suppress int
}

// NewErrorState creates error state for input starting at start.
func NewErrorState(start int) *ErrorState {
	return &ErrorState{Pos: start}
}

// MarkFailure records that label was expected at pos.
func (es *ErrorState) MarkFailure(pos int, label string) {
	if es.suppress > 0 || pos < es.Pos {
		return
	}

	if pos > es.Pos {
		es.Pos = pos
		es.Expected.reset()
	}
	es.Expected.Add(label)
}

// Suppress disables failure recording until matching Unsuppress call.
func (es *ErrorState) Suppress() {
	es.suppress++
}

// Unsuppress undoes one Suppress call.
func (es *ErrorState) Unsuppress() {
	if es.suppress > 0 {
		es.suppress--
	}
}

// IsSuppressed tells whether failures are being ignored.
func (es *ErrorState) IsSuppressed() bool {
	return es.suppress > 0
}

// Error converts tracked failure to ParseError.
func (es *ErrorState) Error(input Parse) *ParseError {
	return &ParseError{
		Offset:   es.Pos,
		Location: input.PositionRepr(es.Pos),
		Expected: es.Expected.Labels(),
		AtEOF:    input.IsEOF(es.Pos),
	}
}

// ParseError is returned by generated entry functions.
type ParseError struct {
	// Offset is the furthest failure position.
	Offset int

	// Location is human-readable representation of Offset, e.g. "1:5".
	Location string

	// Expected contains sorted labels expected at Offset.
	Expected []string

	// AtEOF tells that Offset is at the end of input.
	AtEOF bool
}

func (e *ParseError) Error() string {
	var s ExpectedSet
	for _, l := range e.Expected {
		s.Add(l)
	}
	return fmt.Sprintf("error at %s: expected %s", e.Location, s.String())
}
