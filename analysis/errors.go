package analysis

import (
	"strings"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/source"
)

const (
	NoRulesError = pegx.AnalysisErrors + iota
	WrongVersionError
	VersionError
	ElementTypeError
	SliceTypeError
	UnknownRuleError
	ArgumentCountError
	ParamCallError
	PublicParamRuleError
	CyclicExpansionError
	NestedPrecedenceError
	OperandOutsideError
	OperandPositionError
	AssocError
	NullablePostfixError
	NullableRepeatError
	RecursionError
	LabelDefinedError
)

func noRulesError(g *grammar.Grammar) *pegx.Error {
	return pegx.FormatErrorPos(g.Pos, NoRulesError, "grammar %s contains no rules", g.Name)
}

func wrongVersionError(g *grammar.Grammar) *pegx.Error {
	return pegx.FormatErrorPos(g.RequiresPos, WrongVersionError, "incorrect required version %q", g.Requires)
}

func versionError(g *grammar.Grammar) *pegx.Error {
	return pegx.FormatErrorPos(g.RequiresPos, VersionError, "grammar requires version %s, current version is %s", g.Requires, pegx.Version)
}

func elementTypeError(e grammar.Expr, input string) *pegx.Error {
	return pegx.FormatErrorPos(e.Pos(), ElementTypeError, "element type of %s input must be declared to use %s", input, e.String())
}

func sliceTypeError(e grammar.Expr, input string) *pegx.Error {
	return pegx.FormatErrorPos(e.Pos(), SliceTypeError, "slice type of %s input must be declared to use $()", input)
}

func unknownRuleError(ref *grammar.RuleRef) *pegx.Error {
	return pegx.FormatErrorPos(ref.Pos(), UnknownRuleError, "undefined rule %q", ref.Name)
}

func argumentCountError(ref *grammar.RuleRef, expected int) *pegx.Error {
	return pegx.FormatErrorPos(ref.Pos(), ArgumentCountError, "rule %q expects %d arguments, got %d", ref.Name, expected, len(ref.Args))
}

func paramCallError(ref *grammar.RuleRef) *pegx.Error {
	return pegx.FormatErrorPos(ref.Pos(), ParamCallError, "cannot pass arguments to parameter %q", ref.Name)
}

func publicParamRuleError(r *grammar.Rule) *pegx.Error {
	return pegx.FormatErrorPos(r.Pos, PublicParamRuleError, "public rule %q cannot have parameters", r.Name)
}

func cyclicExpansionError(ref *grammar.RuleRef) *pegx.Error {
	return pegx.FormatErrorPos(ref.Pos(), CyclicExpansionError, "endless expansion of %s", ref.String())
}

func nestedPrecedenceError(pos source.Pos) *pegx.Error {
	return pegx.FormatErrorPos(pos, NestedPrecedenceError, "precedence block must be the whole rule body")
}

func operandOutsideError(e grammar.Expr) *pegx.Error {
	return pegx.FormatErrorPos(e.Pos(), OperandOutsideError, "operand %s used outside of precedence template", e.String())
}

func operandPositionError(t *grammar.Action, msg string) *pegx.Error {
	return pegx.FormatErrorPos(t.Pos(), OperandPositionError, "incorrect precedence template %s: %s", t.String(), msg)
}

func assocError(pos source.Pos, level int) *pegx.Error {
	return pegx.FormatErrorPos(pos, AssocError, "conflicting associativity of precedence level %d", level)
}

func nullablePostfixError(t *grammar.Action) *pegx.Error {
	return pegx.FormatErrorPos(t.Pos(), NullablePostfixError, "postfix operator of %s may match empty input", t.String())
}

func nullableRepeatError(e *grammar.Repeat) *pegx.Error {
	return pegx.FormatErrorPos(e.Pos(), NullableRepeatError, "unbounded repetition %s may match empty input", e.String())
}

func recursionError(r *grammar.Rule, names []string) *pegx.Error {
	return pegx.FormatErrorPos(r.Pos, RecursionError, "found left-recursive rules without #[cache]: %s", strings.Join(names, ", "))
}

func labelDefinedError(c *grammar.Capture) *pegx.Error {
	return pegx.FormatErrorPos(c.Pos(), LabelDefinedError, "label %q already defined", c.Name)
}
