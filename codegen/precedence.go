package codegen

import (
	"bytes"
	"fmt"

	"github.com/ava12/pegx/analysis"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/peg"
)

var assocNames = map[peg.Assoc]string{
	peg.AssocNone:  "peg.AssocNone",
	peg.AssocLeft:  "peg.AssocLeft",
	peg.AssocRight: "peg.AssocRight",
}

func (g *generator) table(ri *analysis.RuleInfo) *analysis.Table {
	return g.a.Table(ri.Body.(*grammar.PrecedenceBlock))
}

func hasSuffix(l analysis.Level) bool {
	for _, t := range l.Templates {
		if t.Kind == analysis.Infix || t.Kind == analysis.Postfix {
			return true
		}
	}
	return false
}

func (g *generator) climberInit(buf *bytes.Buffer, ri *analysis.RuleInfo) {
	fmt.Fprintf(buf, "p.%s = &peg.Climber[%s]{\nPrefix: p.%s,\nLevels: []peg.ClimbLevel[%s]{\n", climbField(ri), ri.Type, prefixMethod(ri), ri.Type)
	for _, l := range g.table(ri).Levels {
		if hasSuffix(l) {
			fmt.Fprintf(buf, "{Assoc: %s, Suffix: p.%s},\n", assocNames[l.Assoc], suffixMethod(ri, l.Power))
		} else {
			fmt.Fprintf(buf, "{Assoc: %s},\n", assocNames[l.Assoc])
		}
	}
	buf.WriteString("},\n}\n")
}

// climber generates prefix method matching atoms and prefix operators,
// and a suffix method per level matching infix and postfix operators.
func (g *generator) climber(ri *analysis.RuleInfo) {
	t := ri.Type
	table := g.table(ri)

	fmt.Fprintf(&g.rules, "\nfunc (p *%s) %s(pos int) peg.RuleResult[%s] {\n", g.opts.Type, prefixMethod(ri), t)
	for _, l := range table.Levels {
		for _, tmpl := range l.Templates {
			if tmpl.Kind == analysis.Atom || tmpl.Kind == analysis.Prefix {
				g.tryTemplate(ri, tmpl, l)
			}
		}
	}
	fmt.Fprintf(&g.rules, "return peg.Failed[%s]()\n}\n", t)

	for _, l := range table.Levels {
		if !hasSuffix(l) {
			continue
		}

		fmt.Fprintf(&g.rules, "\nfunc (p *%s) %s(pos int, lhs %s) peg.RuleResult[%s] {\n", g.opts.Type, suffixMethod(ri, l.Power), t, t)
		for _, tmpl := range l.Templates {
			if tmpl.Kind == analysis.Infix || tmpl.Kind == analysis.Postfix {
				g.tryTemplate(ri, tmpl, l)
			}
		}
		fmt.Fprintf(&g.rules, "return peg.Failed[%s]()\n}\n", t)
	}
}

func (g *generator) tryTemplate(ri *analysis.RuleInfo, tmpl analysis.Template, l analysis.Level) {
	r := g.newVar("r")
	fmt.Fprintf(&g.rules, "if %s := %s; %s.IsMatched() {\nreturn %s\n}\n", r, g.template(ri, tmpl, l), r, r)
}

// template matches operator items of a template and its right operand if any.
// Left operand is already matched and passed in lhs.
func (g *generator) template(ri *analysis.RuleInfo, tmpl analysis.Template, l analysis.Level) string {
	t := ri.Type
	var scope []label
	if tmpl.Left != "" {
		g.checkLabel(tmpl.Action.Pos(), tmpl.Left)
		scope = bind(scope, label{tmpl.Left, "lhs", t})
	}

	return g.sequence(tmpl.Items, "pos", scope, t, func(end string, scope []label) string {
		var b bytes.Buffer
		if tmpl.Kind == analysis.Prefix || tmpl.Kind == analysis.Infix {
			power := l.Power
			if tmpl.Kind == analysis.Infix {
				power = l.Assoc.OperandPower(l.Power)
			}

			r := g.newVar("r")
			fmt.Fprintf(&b, "%s := p.%s.Climb(%s, %d)\nif %s.IsFailed() {\nreturn peg.Failed[%s]()\n}\n", r, climbField(ri), end, power, r, t)
			if tmpl.Right != "" {
				g.checkLabel(tmpl.Action.Pos(), tmpl.Right)
				scope = bind(scope, label{tmpl.Right, r + ".Value", t})
			}
			end = r + ".Pos"
		}
		b.WriteString(g.finishAction(tmpl.Action, end, scope, t))
		return b.String()
	})
}
