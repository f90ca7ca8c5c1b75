package peg

import (
	"testing"

	. "github.com/ava12/pegx/internal/test"
)

type testOp struct {
	text  string
	power int
	assoc Assoc
}

// newTestClimber builds a climber over single letter atoms, prefix "-", postfix "!",
// and infix operators grouped into levels.
func newTestClimber(input Str, es *ErrorState, levels [][]testOp) *Climber[string] {
	c := &Climber[string]{}
	c.Prefix = func(pos int) RuleResult[string] {
		if op := Literal(es, input, pos, "-"); op.IsMatched() {
			if r := c.Climb(op.Pos, len(levels)); r.IsMatched() {
				return Matched(r.Pos, "(-"+r.Value+")")
			}
		}
		letter := Class[rune](es, input, pos, "letter", func(ch rune) bool {
			return ch >= 'a' && ch <= 'z'
		})
		return Map(letter, func(_ int, ch rune) string { return string(ch) })
	}

	for i, ops := range levels {
		ops := ops
		power := i + 1
		level := ClimbLevel[string]{Assoc: ops[0].assoc}
		level.Suffix = func(pos int, lhs string) RuleResult[string] {
			for _, o := range ops {
				op := Literal(es, input, pos, o.text)
				if op.IsFailed() {
					continue
				}
				if o.text == "!" {
					return Matched(op.Pos, "("+lhs+"!)")
				}
				rhs := c.Climb(op.Pos, o.assoc.OperandPower(power))
				if rhs.IsMatched() {
					return Matched(rhs.Pos, "("+lhs+o.text+rhs.Value+")")
				}
			}
			return Failed[string]()
		}
		c.Levels = append(c.Levels, level)
	}
	return c
}

func TestClimbAssociativity(t *testing.T) {
	levels := [][]testOp{
		{{"=", 1, AssocNone}},
		{{"+", 2, AssocLeft}, {"-", 2, AssocLeft}},
		{{"*", 3, AssocLeft}},
		{{"^", 4, AssocRight}},
		{{"!", 5, AssocLeft}},
	}
	samples := []struct {
		input, expected string
		end             int
	}{
		{"a", "a", 1},
		{"a+b+c", "((a+b)+c)", 5},
		{"a^b^c", "(a^(b^c))", 5},
		{"a+b*c", "(a+(b*c))", 5},
		{"a*b+c", "((a*b)+c)", 5},
		{"a-b^c^d*e", "(a-((b^(c^d))*e))", 9},
		{"-a^b", "((-a)^b)", 4},
		{"-a!", "(-(a!))", 3},
		{"a!^b", "((a!)^b)", 4},
		{"a=b", "(a=b)", 3},
		{"a=b=c", "(a=b)", 3},
		{"a+", "a", 1},
	}

	for _, s := range samples {
		t.Run(s.input, func(t *testing.T) {
			input := Str(s.input)
			es := NewErrorState(0)
			r := newTestClimber(input, es, levels).Climb(0, 0)
			Assert(t, r.IsMatched(), "expecting match")
			ExpectString(t, s.expected, r.Value)
			ExpectInt(t, s.end, r.Pos)
		})
	}
}

func TestClimbFailsWithoutAtom(t *testing.T) {
	input := Str("+a")
	es := NewErrorState(0)
	r := newTestClimber(input, es, [][]testOp{{{"+", 1, AssocLeft}}}).Climb(0, 0)
	ExpectBool(t, true, r.IsFailed())
	ExpectStrings(t, []string{`"-"`, "letter"}, es.Expected.Labels())
}

func TestAssocOperandPower(t *testing.T) {
	ExpectInt(t, 3, AssocLeft.OperandPower(2))
	ExpectInt(t, 2, AssocRight.OperandPower(2))
	ExpectInt(t, 3, AssocNone.OperandPower(2))
	ExpectString(t, "right", AssocRight.String())
}
