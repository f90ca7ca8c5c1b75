package codegen

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/ava12/pegx/grammar"
)

const (
	unitType = "struct{}"
	anyType  = "any"
)

// label is a captured value visible in action code.
type label struct {
	name, value, typ string
}

// bind returns a copy of scope extended with l, l hides a label with the same name.
func bind(scope []label, l label) []label {
	res := make([]label, 0, len(scope)+1)
	for _, s := range scope {
		if s.name != l.name {
			res = append(res, s)
		}
	}
	return append(res, l)
}

func (g *generator) typeOf(e grammar.Expr) string {
	t := g.a.Info(e).Type
	if t == "" {
		return unitType
	}
	return t
}

// exprAs returns Go expression of type peg.RuleResult[want] matching e at pos.
// Values of other types are converted to any, other conversions are errors.
func (g *generator) exprAs(e grammar.Expr, pos string, scope []label, want string) string {
	switch x := e.(type) {
	case *grammar.Expected:
		return fmt.Sprintf("peg.Fail[%s](p.err, %s, %s)", want, pos, strconv.Quote(x.Label))
	case *grammar.Choice:
		return g.choice(x, pos, scope, want)
	case *grammar.Capture:
		return g.exprAs(x.Expr, pos, scope, want)
	case *grammar.Quiet:
		return fmt.Sprintf("peg.Quiet(p.err, func() peg.RuleResult[%s] {\nreturn %s\n})", want, g.exprAs(x.Expr, pos, scope, want))
	case *grammar.Sequence:
		if len(x.Items) == 1 {
			return g.exprAs(x.Items[0], pos, scope, want)
		}
	}

	t := g.typeOf(e)
	code := g.expr(e, pos, scope)
	switch {
	case t == want:
		return code
	case want == anyType:
		return "peg.Widen(" + code + ")"
	}

	g.setError(typeMismatchError(e, t, want))
	return code
}

// expr returns Go expression of type peg.RuleResult[T] matching e at pos, T is the type of e.
func (g *generator) expr(e grammar.Expr, pos string, scope []label) string {
	switch x := e.(type) {
	case *grammar.Literal:
		if x.Value == "" {
			return "peg.Matched(" + pos + ", struct{}{})"
		}
		return fmt.Sprintf("peg.Literal(p.err, p.input, %s, %s)", pos, strconv.Quote(x.Value))

	case *grammar.Class:
		el := g.a.Element
		return fmt.Sprintf("peg.Class[%s](p.err, p.input, %s, %s, func(c %s) bool {\nreturn %s\n})", el, pos, strconv.Quote(x.String()), el, classCondition(x))

	case *grammar.Slice:
		return fmt.Sprintf("peg.SliceOf[%s](p.input, %s, %s)", g.a.Slice, pos, g.expr(x.Expr, pos, scope))

	case *grammar.PositionMarker:
		return fmt.Sprintf("peg.Matched(%s, %s)", pos, pos)

	case *grammar.PositiveLookahead:
		return fmt.Sprintf("peg.Lookahead(%s, %s)", pos, g.expr(x.Expr, pos, scope))

	case *grammar.NegativeLookahead:
		return fmt.Sprintf("peg.Not(p.err, %s, func() bool {\nreturn %s.IsMatched()\n})", pos, g.expr(x.Expr, pos, scope))

	case *grammar.RuleRef:
		return fmt.Sprintf("p.%s(%s)", ruleMethod(g.a.Target(x)), pos)

	case *grammar.Optional:
		return g.optional(x, pos, scope)

	case *grammar.Repeat:
		return g.repeat(x, pos, scope)

	case *grammar.Action:
		t := g.typeOf(x)
		return g.sequence(x.Items, pos, scope, t, func(end string, scope []label) string {
			return g.finishAction(x, end, scope, t)
		})

	case *grammar.Sequence:
		if len(x.Items) != 1 {
			return g.sequence(x.Items, pos, scope, unitType, func(end string, _ []label) string {
				return "return peg.Matched(" + end + ", struct{}{})\n"
			})
		}

	case *grammar.Operand, *grammar.PrecedenceBlock:
		panic("codegen: unexpected " + e.String())
	}

	return g.exprAs(e, pos, scope, g.typeOf(e))
}

func classCondition(c *grammar.Class) string {
	var cond string
	switch {
	case c.Any:
		cond = "true"
	case c.Code != "":
		cond = "(" + c.Code + ")"
	default:
		parts := make([]string, len(c.Ranges))
		for i, r := range c.Ranges {
			if r.Lo == r.Hi {
				parts[i] = "c == " + strconv.QuoteRune(r.Lo)
			} else {
				parts[i] = "c >= " + strconv.QuoteRune(r.Lo) + " && c <= " + strconv.QuoteRune(r.Hi)
			}
		}
		cond = strings.Join(parts, " || ")
	}

	if c.Negated {
		return "!(" + cond + ")"
	}
	return cond
}

// sequence matches items one by one and then calls finish to get statements returning the result.
// Labels of captured items are visible in subsequent items and in finish.
func (g *generator) sequence(items []grammar.Expr, pos string, scope []label, t string, finish func(end string, scope []label) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func() peg.RuleResult[%s] {\n", t)
	end := pos
	for _, item := range items {
		r := g.newVar("r")
		fmt.Fprintf(&b, "%s := %s\n", r, g.expr(item, end, scope))
		if !g.a.Info(item).Infallible {
			fmt.Fprintf(&b, "if %s.IsFailed() {\nreturn peg.Failed[%s]()\n}\n", r, t)
		}
		if c, is := item.(*grammar.Capture); is {
			g.checkLabel(c.Pos(), c.Name)
			scope = bind(scope, label{c.Name, r + ".Value", g.typeOf(c)})
		}
		end = r + ".Pos"
	}
	b.WriteString(finish(end, scope))
	b.WriteString("}()")
	return b.String()
}

// finishAction returns statements calling action method and returning its result.
// Failed conditional action records error text as expected label.
func (g *generator) finishAction(a *grammar.Action, end string, scope []label, t string) string {
	call := g.action(a, scope, t)
	if !a.Conditional {
		return fmt.Sprintf("return peg.Matched(%s, %s)\n", end, call)
	}

	v, e := g.newVar("v"), g.newVar("e")
	return fmt.Sprintf("%s, %s := %s\nif %s != nil {\nreturn peg.Fail[%s](p.err, %s, %s.Error())\n}\nreturn peg.Matched(%s, %s)\n",
		v, e, call, e, t, end, e, end, v)
}

// action generates action method and returns its call, all labels in scope are passed as arguments.
func (g *generator) action(a *grammar.Action, scope []label, t string) string {
	g.nActions++
	name := "action" + strconv.Itoa(g.nActions)
	params := make([]string, len(scope))
	args := make([]string, len(scope))
	for i, l := range scope {
		params[i] = l.name + " " + l.typ
		args[i] = l.value
	}

	results := t
	if a.Conditional {
		results = "(" + t + ", error)"
	}
	fmt.Fprintf(&g.actions, "\nfunc (*%s) %s(%s) %s {\n%s\n}\n", g.opts.Type, name, strings.Join(params, ", "), results, actionBody(a, t))
	return "p." + name + "(" + strings.Join(args, ", ") + ")"
}

// actionBody returns code as is if it contains return statement, otherwise code is an expression to return.
func actionBody(a *grammar.Action, t string) string {
	code := strings.TrimSpace(a.Code)
	switch {
	case code == "" && a.Conditional:
		return "return *new(" + t + "), nil"
	case code == "":
		return "return *new(" + t + ")"
	case hasReturn(code):
		return code
	default:
		return "return " + code
	}
}

// hasReturn reports whether code has a return statement outside of function literals.
func hasReturn(code string) bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(code))
	var s scanner.Scanner
	s.Init(file, []byte(code), nil, 0)
	var braces []bool
	funcs := 0
	isFunc, isType := false, false
	for {
		_, tok, _ := s.Scan()
		switch tok {
		case token.EOF:
			return false
		case token.FUNC:
			isFunc = true
		case token.STRUCT, token.INTERFACE:
			isType = true
		case token.LBRACE:
			if isType {
				braces = append(braces, false)
				isType = false
				break
			}
			braces = append(braces, isFunc)
			if isFunc {
				funcs++
			}
			isFunc = false
		case token.RBRACE:
			if len(braces) > 0 {
				if braces[len(braces)-1] {
					funcs--
				}
				braces = braces[:len(braces)-1]
			}
		case token.RETURN:
			if funcs == 0 {
				return true
			}
		}
	}
}

func (g *generator) choice(c *grammar.Choice, pos string, scope []label, want string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func() peg.RuleResult[%s] {\n", want)
	for i, alt := range c.Alts {
		code := g.exprAs(alt, pos, scope, want)
		if i == len(c.Alts)-1 || g.a.Info(alt).Infallible {
			fmt.Fprintf(&b, "return %s\n", code)
			break
		}

		r := g.newVar("r")
		fmt.Fprintf(&b, "if %s := %s; %s.IsMatched() {\nreturn %s\n}\n", r, code, r, r)
	}
	b.WriteString("}()")
	return b.String()
}

func (g *generator) optional(o *grammar.Optional, pos string, scope []label) string {
	t := g.typeOf(o)
	r := g.newVar("r")
	return fmt.Sprintf("func() peg.RuleResult[%s] {\nif %s := %s; %s.IsMatched() {\nreturn peg.Matched(%s.Pos, &%s.Value)\n}\nreturn peg.Matched[%s](%s, nil)\n}()",
		t, r, g.expr(o.Expr, pos, scope), r, r, r, t, pos)
}

func (g *generator) repeat(rep *grammar.Repeat, pos string, scope []label) string {
	t := g.typeOf(rep)
	n := g.newVar("")
	items, end, cur, r, s := "items"+n, "end"+n, "cur"+n, "r"+n, "s"+n

	var b strings.Builder
	fmt.Fprintf(&b, "func() peg.RuleResult[%s] {\nvar %s %s\n%s := %s\n", t, items, t, end, pos)
	if rep.Max == grammar.Unbounded {
		b.WriteString("for {\n")
	} else {
		fmt.Fprintf(&b, "for len(%s) < %d {\n", items, rep.Max)
	}
	fmt.Fprintf(&b, "%s := %s\n", cur, end)
	if rep.Sep != nil {
		fmt.Fprintf(&b, "if len(%s) > 0 {\n%s := %s\nif %s.IsFailed() {\nbreak\n}\n%s = %s.Pos\n}\n",
			items, s, g.expr(rep.Sep, cur, scope), s, cur, s)
	}
	fmt.Fprintf(&b, "%s := %s\nif %s.IsFailed() {\nbreak\n}\n%s = append(%s, %s.Value)\n%s = %s.Pos\n}\n",
		r, g.expr(rep.Expr, cur, scope), r, items, items, r, end, r)
	if rep.Min > 0 {
		fmt.Fprintf(&b, "if len(%s) < %d {\nreturn peg.Failed[%s]()\n}\n", items, rep.Min, t)
	}
	fmt.Fprintf(&b, "return peg.Matched(%s, %s)\n}()", end, items)
	return b.String()
}
