package peg

import (
	"strconv"
)

// Fail records failure of label at pos and returns failed result.
func Fail[T any](es *ErrorState, pos int, label string) RuleResult[T] {
	es.MarkFailure(pos, label)
	return Failed[T]()
}

// Literal matches lit at pos.
// On failure the expected label is the quoted unmatched part of lit at the position where matching diverged.
func Literal(es *ErrorState, input ParseLiteral, pos int, lit string) RuleResult[struct{}] {
	end, ok := input.ParseLiteral(pos, lit)
	if ok {
		return Matched(end, struct{}{})
	}

	rest := lit
	if d := end - pos; d > 0 && d < len(lit) {
		rest = lit[d:]
	} else {
		end = pos
	}
	return Fail[struct{}](es, end, strconv.Quote(rest))
}

// Class matches an element satisfying match at pos, label is used on failure.
func Class[E any](es *ErrorState, input ParseElem[E], pos int, label string, match func(E) bool) RuleResult[E] {
	r := input.ParseElem(pos)
	if r.matched && match(r.Value) {
		return r
	}
	return Fail[E](es, pos, label)
}

// SliceOf converts a match started at pos to input slice.
func SliceOf[S, T any](input ParseSlice[S], pos int, r RuleResult[T]) RuleResult[S] {
	if !r.matched {
		return Failed[S]()
	}
	return Matched(r.Pos, input.ParseSlice(pos, r.Pos))
}

// Lookahead converts a match to zero-width match at pos.
func Lookahead[T any](pos int, r RuleResult[T]) RuleResult[struct{}] {
	if !r.matched {
		return Failed[struct{}]()
	}
	return Matched(pos, struct{}{})
}

// Not calls match with suppressed failure recording and inverts its verdict, the result is zero-width.
func Not(es *ErrorState, pos int, match func() bool) RuleResult[struct{}] {
	es.Suppress()
	matched := match()
	es.Unsuppress()
	if matched {
		return Failed[struct{}]()
	}
	return Matched(pos, struct{}{})
}

// Quiet calls match with suppressed failure recording.
func Quiet[T any](es *ErrorState, match func() RuleResult[T]) RuleResult[T] {
	es.Suppress()
	r := match()
	es.Unsuppress()
	return r
}

// Finish converts result of top-level rule to entry function result.
// Match not reaching the end of input fails with EOFLabel expected.
func Finish[T any](input Parse, es *ErrorState, r RuleResult[T]) (T, error) {
	if r.matched {
		if input.IsEOF(r.Pos) {
			return r.Value, nil
		}

		es.MarkFailure(r.Pos, EOFLabel)
	}

	var zero T
	return zero, es.Error(input)
}

// FinishPrefix is like Finish, but allows unmatched input after the match.
func FinishPrefix[T any](input Parse, es *ErrorState, r RuleResult[T]) (T, error) {
	if r.matched {
		return r.Value, nil
	}

	var zero T
	return zero, es.Error(input)
}
