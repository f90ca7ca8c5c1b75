/*
Package peg defines the runtime protocol generated parsers are written against.

Each generated rule is a method taking start position and returning RuleResult.
A failed result carries no payload: the furthest failure position and the set of
labels expected there are tracked by ErrorState, shared by all rules of a single parse.

Input types implement Parse and any of ParseElem, ParseLiteral, and ParseSlice
required by the grammar; Str and Bytes implement all of them.
*/
package peg

// RuleResult is either a match ending at Pos with Value or a failure.
type RuleResult[T any] struct {
	// Pos is the position after matched input, undefined for failed result.
	Pos int

	// Value is the semantic value, zero for failed result.
	Value T

	matched bool
}

// Matched creates successful result.
func Matched[T any](pos int, value T) RuleResult[T] {
	return RuleResult[T]{Pos: pos, Value: value, matched: true}
}

// Failed creates failed result.
func Failed[T any]() RuleResult[T] {
	return RuleResult[T]{}
}

// IsMatched tells whether the result is a match.
func (r RuleResult[T]) IsMatched() bool {
	return r.matched
}

// IsFailed tells whether the result is a failure.
func (r RuleResult[T]) IsFailed() bool {
	return !r.matched
}

// Unwrap returns end position and value of a match, panics on failure.
func (r RuleResult[T]) Unwrap() (int, T) {
	if !r.matched {
		panic("peg: Unwrap called on failed result")
	}
	return r.Pos, r.Value
}

// Map converts value of a match, failure is passed through.
func Map[T, U any](r RuleResult[T], f func(pos int, value T) U) RuleResult[U] {
	if !r.matched {
		return Failed[U]()
	}
	return Matched(r.Pos, f(r.Pos, r.Value))
}

// Then continues matching after a match, failure short-circuits: f is not called.
func Then[T, U any](r RuleResult[T], f func(pos int, value T) RuleResult[U]) RuleResult[U] {
	if !r.matched {
		return Failed[U]()
	}
	return f(r.Pos, r.Value)
}

// Widen converts match value to any, used to join alternatives of different types.
func Widen[T any](r RuleResult[T]) RuleResult[any] {
	if !r.matched {
		return Failed[any]()
	}
	return Matched[any](r.Pos, r.Value)
}
