// Package grammar defines abstract syntax tree of a grammar description.
package grammar

import (
	"strconv"
	"strings"

	"github.com/ava12/pegx/peg"
	"github.com/ava12/pegx/source"
)

// Unbounded is Repeat.Max value for repetitions without upper bound.
const Unbounded = -1

// Import is a Go import copied to generated file.
type Import struct {
	Alias, Path string
}

// Grammar is a parsed grammar description.
type Grammar struct {
	Name       string
	SourceName string

	// Pos is the position of grammar header.
	Pos source.Pos

	// Input is Go type of parser input, e.g. "peg.Str".
	Input string

	// Element and Slice are element and slice types declared for custom inputs, empty if not declared.
	Element, Slice string

	Imports []Import

	// Requires is required generator version, RequiresPos is the position of version string.
	Requires    string
	RequiresPos source.Pos

	Rules []*Rule
}

// Rule returns rule by name or nil.
func (g *Grammar) Rule(name string) *Rule {
	for _, r := range g.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Rule is a named grammar rule.
type Rule struct {
	Pos    source.Pos
	Name   string
	Params []string

	// Type is declared Go result type, empty if not declared.
	Type string

	Body   Expr
	Public bool
	Cache  bool
	NoEOF  bool
}

func (r *Rule) String() string {
	var sb strings.Builder
	if r.Cache {
		sb.WriteString("#[cache] ")
	}
	if r.NoEOF {
		sb.WriteString("#[no_eof] ")
	}
	if r.Public {
		sb.WriteString("pub ")
	}
	sb.WriteString("rule ")
	sb.WriteString(r.Name)
	if len(r.Params) > 0 {
		sb.WriteString("(" + strings.Join(r.Params, ", ") + ")")
	}
	if r.Type != "" {
		sb.WriteString(" -> " + r.Type)
	}
	sb.WriteString(" = ")
	sb.WriteString(r.Body.String())
	return sb.String()
}

// Expr is a parsing expression.
// String returns canonical grammar text of expression, equal expressions have equal representations.
type Expr interface {
	Pos() source.Pos
	String() string
}

// Node holds expression position.
type Node struct {
	At source.Pos
}

// Pos returns expression position.
func (n Node) Pos() source.Pos {
	return n.At
}

// Sequence matches items one after another.
type Sequence struct {
	Node
	Items []Expr
}

func (e *Sequence) String() string {
	return joinItems(e.Items)
}

// Choice tries alternatives in order, the first match wins.
type Choice struct {
	Node
	Alts []Expr
}

func (e *Choice) String() string {
	alts := make([]string, len(e.Alts))
	for i, a := range e.Alts {
		alts[i] = a.String()
	}
	return strings.Join(alts, " / ")
}

// Repeat matches Expr from Min to Max times, separated by Sep if not nil.
type Repeat struct {
	Node
	Expr     Expr
	Min, Max int
	Sep      Expr
}

func (e *Repeat) String() string {
	op := operand(e.Expr)
	switch {
	case e.Sep != nil && e.Min == 0:
		return op + " ** " + operand(e.Sep)
	case e.Sep != nil:
		return op + " ++ " + operand(e.Sep)
	case e.Min == 0 && e.Max == Unbounded:
		return op + "*"
	case e.Min == 1 && e.Max == Unbounded:
		return op + "+"
	case e.Max == Unbounded:
		return op + "{" + strconv.Itoa(e.Min) + ",}"
	case e.Min == e.Max:
		return op + "{" + strconv.Itoa(e.Min) + "}"
	default:
		return op + "{" + strconv.Itoa(e.Min) + "," + strconv.Itoa(e.Max) + "}"
	}
}

// Optional matches Expr or nothing.
type Optional struct {
	Node
	Expr Expr
}

func (e *Optional) String() string {
	return operand(e.Expr) + "?"
}

// PositiveLookahead matches Expr without consuming input.
type PositiveLookahead struct {
	Node
	Expr Expr
}

func (e *PositiveLookahead) String() string {
	return "&" + operand(e.Expr)
}

// NegativeLookahead succeeds without consuming input if Expr fails.
type NegativeLookahead struct {
	Node
	Expr Expr
}

func (e *NegativeLookahead) String() string {
	return "!" + operand(e.Expr)
}

// Literal matches exact text.
type Literal struct {
	Node
	Value string
}

func (e *Literal) String() string {
	return strconv.Quote(e.Value)
}

// CharRange is an inclusive range of characters, Lo == Hi for a single character.
type CharRange struct {
	Lo, Hi rune
}

// Class matches a single input element.
// Any class matches every element, Code class matches elements satisfying Go boolean expression
// with the element bound to c, otherwise the element must fall into one of Ranges.
type Class struct {
	Node
	Ranges  []CharRange
	Negated bool
	Any     bool
	Code    string
}

func (e *Class) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if e.Negated {
		sb.WriteByte('^')
	}
	switch {
	case e.Any:
		sb.WriteByte('_')
	case e.Code != "":
		sb.WriteString("{" + e.Code + "}")
	default:
		for i, r := range e.Ranges {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.QuoteRune(r.Lo))
			if r.Hi != r.Lo {
				sb.WriteByte('-')
				sb.WriteString(strconv.QuoteRune(r.Hi))
			}
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Contains tells whether c falls into class ranges, Negated flag is not applied.
func (e *Class) Contains(c rune) bool {
	for _, r := range e.Ranges {
		if c >= r.Lo && c <= r.Hi {
			return true
		}
	}
	return false
}

// RuleRef invokes a rule, Args are expressions passed to rule parameters.
type RuleRef struct {
	Node
	Name string
	Args []Expr
}

func (e *RuleRef) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// Action matches Items in sequence and then evaluates Go Code.
// Code is either an expression or a function body containing return statements.
// Conditional code also yields an error, non-nil error fails the match.
type Action struct {
	Node
	Items       []Expr
	Code        string
	Conditional bool
}

func (e *Action) String() string {
	code := "{" + e.Code + "}"
	if e.Conditional {
		code = "{?" + e.Code + "}"
	}
	if len(e.Items) == 0 {
		return code
	}
	return joinItems(e.Items) + " " + code
}

// Capture binds the value of Expr to a label visible in enclosing action code.
type Capture struct {
	Node
	Name string
	Expr Expr
}

func (e *Capture) String() string {
	return e.Name + ":" + operand(e.Expr)
}

// Slice matches Expr and yields matched part of input.
type Slice struct {
	Node
	Expr Expr
}

func (e *Slice) String() string {
	return "$(" + e.Expr.String() + ")"
}

// PositionMarker matches nothing and yields current position.
type PositionMarker struct {
	Node
}

func (e *PositionMarker) String() string {
	return "position!()"
}

// Quiet matches Expr without recording expected labels.
type Quiet struct {
	Node
	Expr Expr
}

func (e *Quiet) String() string {
	return "quiet!{" + e.Expr.String() + "}"
}

// Expected always fails recording Label as expected.
type Expected struct {
	Node
	Label string
}

func (e *Expected) String() string {
	return "expected!(" + strconv.Quote(e.Label) + ")"
}

// Operand is an operand placeholder of a precedence template.
// Paren operand "(@)" binds at the level's own power on the left side.
type Operand struct {
	Node
	Paren bool
}

func (e *Operand) String() string {
	if e.Paren {
		return "(@)"
	}
	return "@"
}

// Level is a precedence level, its templates share associativity.
type Level struct {
	Pos       source.Pos
	Templates []*Action

	// Assoc is computed by analyzer.
	Assoc peg.Assoc
}

// PrecedenceBlock is a precedence climbing rule body, levels go from the weakest to the strongest.
type PrecedenceBlock struct {
	Node
	Levels []*Level
}

func (e *PrecedenceBlock) String() string {
	levels := make([]string, len(e.Levels))
	for i, l := range e.Levels {
		ts := make([]string, len(l.Templates))
		for j, t := range l.Templates {
			ts[j] = t.String()
		}
		levels[i] = strings.Join(ts, " ")
	}
	return "precedence!{" + strings.Join(levels, " -- ") + "}"
}

// Children returns direct subexpressions of e in matching order.
// Precedence templates are returned as children of a block.
func Children(e Expr) []Expr {
	switch x := e.(type) {
	case *Sequence:
		return x.Items
	case *Choice:
		return x.Alts
	case *Repeat:
		if x.Sep != nil {
			return []Expr{x.Expr, x.Sep}
		}
		return []Expr{x.Expr}
	case *Optional:
		return []Expr{x.Expr}
	case *PositiveLookahead:
		return []Expr{x.Expr}
	case *NegativeLookahead:
		return []Expr{x.Expr}
	case *RuleRef:
		return x.Args
	case *Action:
		return x.Items
	case *Capture:
		return []Expr{x.Expr}
	case *Slice:
		return []Expr{x.Expr}
	case *Quiet:
		return []Expr{x.Expr}
	case *PrecedenceBlock:
		var res []Expr
		for _, l := range x.Levels {
			for _, t := range l.Templates {
				res = append(res, t)
			}
		}
		return res
	}
	return nil
}

// Walk calls f for e and all its subexpressions in depth-first order.
// Subexpressions of an expression are skipped if f returns false for it.
func Walk(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}

	for _, c := range Children(e) {
		Walk(c, f)
	}
}

func joinItems(items []Expr) string {
	res := make([]string, len(items))
	for i, item := range items {
		switch item.(type) {
		case *Choice, *Action:
			res[i] = "(" + item.String() + ")"
		default:
			res[i] = item.String()
		}
	}
	return strings.Join(res, " ")
}

func operand(e Expr) string {
	switch e.(type) {
	case *Sequence, *Choice, *Action, *Repeat, *Capture, *Optional, *PositiveLookahead, *NegativeLookahead:
		return "(" + e.String() + ")"
	}
	return e.String()
}
