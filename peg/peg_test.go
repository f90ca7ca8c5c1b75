package peg

import (
	"testing"

	. "github.com/ava12/pegx/internal/test"
)

func TestRuleResult(t *testing.T) {
	m := Matched(3, "foo")
	ExpectBool(t, true, m.IsMatched())
	ExpectBool(t, false, m.IsFailed())
	pos, v := m.Unwrap()
	ExpectInt(t, 3, pos)
	ExpectString(t, "foo", v)

	f := Failed[string]()
	ExpectBool(t, false, f.IsMatched())

	l := Map(m, func(pos int, v string) int { return len(v) + pos })
	ExpectInt(t, 6, l.Value)
	ExpectInt(t, 3, l.Pos)
	ExpectBool(t, true, Map(f, func(int, string) int { return 0 }).IsFailed())

	called := false
	r := Then(f, func(pos int, v string) RuleResult[int] {
		called = true
		return Matched(pos, 1)
	})
	ExpectBool(t, false, called)
	ExpectBool(t, true, r.IsFailed())

	w := Widen(m)
	ExpectBool(t, true, w.IsMatched())
	Expect(t, w.Value == any("foo"), "foo", w.Value)
}

func TestUnwrapFailedPanics(t *testing.T) {
	defer func() {
		Assert(t, recover() != nil, "expecting panic")
	}()
	Failed[int]().Unwrap()
}

func TestStrInput(t *testing.T) {
	s := Str("aé\nb")
	ExpectInt(t, 0, s.Start())
	r := s.ParseElem(1)
	ExpectBool(t, true, r.IsMatched())
	ExpectInt(t, 3, r.Pos)
	Expect(t, r.Value == 'é', 'é', r.Value)
	ExpectBool(t, true, s.ParseElem(5).IsFailed())
	ExpectBool(t, true, s.IsEOF(5))
	ExpectBool(t, false, s.IsEOF(4))
	ExpectString(t, "2:1", s.PositionRepr(4))
	ExpectString(t, "aé", s.ParseSlice(0, 3))

	end, ok := s.ParseLiteral(0, "aé")
	ExpectBool(t, true, ok)
	ExpectInt(t, 3, end)
	end, ok = s.ParseLiteral(0, "ax")
	ExpectBool(t, false, ok)
	ExpectInt(t, 1, end)
}

func TestBytesInput(t *testing.T) {
	b := Bytes("xy")
	r := b.ParseElem(1)
	ExpectInt(t, 2, r.Pos)
	Expect(t, r.Value == 'y', 'y', r.Value)
	ExpectBool(t, true, b.ParseElem(2).IsFailed())
	ExpectString(t, "y", string(b.ParseSlice(1, 2)))
	_, ok := b.ParseLiteral(1, "yz")
	ExpectBool(t, false, ok)
}

func TestErrorStateKeepsFurthest(t *testing.T) {
	es := NewErrorState(0)
	es.MarkFailure(2, "a")
	es.MarkFailure(1, "b")
	ExpectInt(t, 2, es.Pos)
	ExpectStrings(t, []string{"a"}, es.Expected.Labels())

	es.MarkFailure(2, "c")
	ExpectStrings(t, []string{"a", "c"}, es.Expected.Labels())

	es.MarkFailure(3, "d")
	ExpectInt(t, 3, es.Pos)
	ExpectStrings(t, []string{"d"}, es.Expected.Labels())

	es.Suppress()
	es.MarkFailure(5, "e")
	ExpectBool(t, true, es.IsSuppressed())
	es.Unsuppress()
	ExpectInt(t, 3, es.Pos)
	ExpectBool(t, false, es.Expected.Has("e"))
}

// S = "ab" / "ac"
func matchS(es *ErrorState, input Str, pos int) RuleResult[struct{}] {
	if r := Literal(es, input, pos, "ab"); r.IsMatched() {
		return r
	}
	return Literal(es, input, pos, "ac")
}

func TestFurthestFailureOfChoice(t *testing.T) {
	input := Str("ax")
	es := NewErrorState(input.Start())
	_, e := Finish(input, es, matchS(es, input, 0))
	Assert(t, e != nil, "expecting error")
	pe := e.(*ParseError)
	ExpectInt(t, 1, pe.Offset)
	ExpectStrings(t, []string{`"b"`, `"c"`}, pe.Expected)
	ExpectString(t, "1:2", pe.Location)
	ExpectString(t, `error at 1:2: expected one of "b", "c"`, pe.Error())
}

func TestFinishRequiresEOF(t *testing.T) {
	input := Str("abc")
	es := NewErrorState(0)
	_, e := Finish(input, es, matchS(es, input, 0))
	pe := e.(*ParseError)
	ExpectInt(t, 2, pe.Offset)
	ExpectStrings(t, []string{EOFLabel}, pe.Expected)

	es = NewErrorState(0)
	_, e = FinishPrefix(input, es, matchS(es, input, 0))
	ExpectNoError(t, e)

	input = Str("ab")
	es = NewErrorState(0)
	_, e = Finish(input, es, matchS(es, input, 0))
	ExpectNoError(t, e)
}

func TestLookaheadIsZeroWidth(t *testing.T) {
	input := Str("abc")
	es := NewErrorState(0)

	r := Lookahead(0, Literal(es, input, 0, "ab"))
	ExpectBool(t, true, r.IsMatched())
	ExpectInt(t, 0, r.Pos)

	r = Not(es, 0, func() bool { return Literal(es, input, 0, "ab").IsMatched() })
	ExpectBool(t, true, r.IsFailed())

	r = Not(es, 1, func() bool { return Literal(es, input, 1, "x").IsMatched() })
	ExpectBool(t, true, r.IsMatched())
	ExpectInt(t, 1, r.Pos)
	ExpectBool(t, false, es.Expected.Has(`"x"`))
	ExpectBool(t, false, es.IsSuppressed())
}

func TestQuietSuppressesLabels(t *testing.T) {
	input := Str("z")
	es := NewErrorState(0)
	r := Quiet(es, func() RuleResult[struct{}] { return Literal(es, input, 0, "a") })
	ExpectBool(t, true, r.IsFailed())
	ExpectInt(t, 0, es.Expected.Len())
	Fail[int](es, 0, "letter")
	ExpectStrings(t, []string{"letter"}, es.Expected.Labels())
}

func TestClassAndSlice(t *testing.T) {
	input := Str("12a")
	es := NewErrorState(0)
	digit := func(c rune) bool { return c >= '0' && c <= '9' }

	pos := 0
	for {
		r := Class[rune](es, input, pos, "['0'-'9']", digit)
		if r.IsFailed() {
			break
		}
		pos = r.Pos
	}
	ExpectInt(t, 2, pos)
	ExpectStrings(t, []string{"['0'-'9']"}, es.Expected.Labels())
	ExpectInt(t, 2, es.Pos)

	s := SliceOf[string](input, 0, Matched(pos, struct{}{}))
	ExpectString(t, "12", s.Value)
	ExpectBool(t, true, SliceOf[string](input, 0, Failed[int]()).IsFailed())
}

func TestCacheIsIdempotent(t *testing.T) {
	var c Cache[int]
	calls := 0
	compute := func(pos int) RuleResult[int] {
		calls++
		return Matched(pos+2, pos*10)
	}

	r1 := c.Memo(3, compute)
	r2 := c.Memo(3, compute)
	ExpectInt(t, 1, calls)
	Expect(t, r1 == r2, r1, r2)
	ExpectInt(t, 5, r2.Pos)
	ExpectInt(t, 1, c.Len())
	_, has := c.Get(4)
	ExpectBool(t, false, has)
}

// E = E "+" "n" / "n", memoized
func TestCacheBoundsSelfReference(t *testing.T) {
	input := Str("n+n")
	es := NewErrorState(0)
	var c Cache[int]
	var rule func(pos int) RuleResult[int]
	rule = func(pos int) RuleResult[int] {
		return c.Memo(pos, func(pos int) RuleResult[int] {
			if r := rule(pos); r.IsMatched() {
				if op := Literal(es, input, r.Pos, "+"); op.IsMatched() {
					if n := Literal(es, input, op.Pos, "n"); n.IsMatched() {
						return Matched(n.Pos, r.Value+1)
					}
				}
			}
			return Map(Literal(es, input, pos, "n"), func(int, struct{}) int { return 1 })
		})
	}

	r := rule(0)
	ExpectBool(t, true, r.IsMatched())
	ExpectInt(t, 1, r.Pos)
	Expect(t, r == rule(0), r, rule(0))
}

// E = E "+" "n" / "n", memoized: reentrant call fails, so the rule never grows past the first "n"
func TestCacheDoesNotGrowLeftRecursion(t *testing.T) {
	input := Str("n+n+n")
	es := NewErrorState(0)
	var c Cache[int]
	calls := 0
	var rule func(pos int) RuleResult[int]
	rule = func(pos int) RuleResult[int] {
		return c.Memo(pos, func(pos int) RuleResult[int] {
			calls++
			if r := rule(pos); r.IsMatched() {
				if op := Literal(es, input, r.Pos, "+"); op.IsMatched() {
					if n := Literal(es, input, op.Pos, "n"); n.IsMatched() {
						return Matched(n.Pos, r.Value+1)
					}
				}
			}
			return Map(Literal(es, input, pos, "n"), func(int, struct{}) int { return 1 })
		})
	}

	r := rule(0)
	ExpectInt(t, 1, calls)
	ExpectInt(t, 1, r.Pos)
	ExpectInt(t, 1, r.Value)

	_, e := Finish(input, es, r)
	pe, is := e.(*ParseError)
	Assert(t, is, "expecting *ParseError, got %v", e)
	ExpectString(t, "1:2", pe.Location)
	ExpectStrings(t, []string{EOFLabel}, pe.Expected)
}
