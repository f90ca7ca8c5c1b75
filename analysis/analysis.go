// Package analysis validates a grammar and computes properties needed by code generator:
// expanded parameterized rules, precedence tables, nullability, left recursion, and Go types.
package analysis

import (
	"strconv"

	"golang.org/x/mod/semver"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/internal/queue"
)

// Analyze checks grammar and returns computed annotations.
// Returns nil and *pegx.Error if the grammar is incorrect.
// Grammar must not be modified afterwards.
func Analyze(g *grammar.Grammar) (*Annotations, error) {
	a := newAnnotations(g)
	e := checkRules(g)
	e = checkRequires(g, e)
	e = a.detectCapabilities(e)
	e = a.resolveReferences(e)
	e = a.expandRules(e)
	e = a.buildTables(e)
	e = a.checkLabels(e)
	e = a.computeFlow(e)
	e = a.checkPostfixes(e)
	e = a.checkRepeats(e)
	e = a.findRecursions(e)
	e = a.inferTypes(e)
	if e != nil {
		return nil, e
	}

	return a, nil
}

func checkRules(g *grammar.Grammar) error {
	if len(g.Rules) == 0 {
		return noRulesError(g)
	}

	for _, r := range g.Rules {
		if r.Public && len(r.Params) > 0 {
			return publicParamRuleError(r)
		}
	}
	return nil
}

func checkRequires(g *grammar.Grammar, e error) error {
	if e != nil || g.Requires == "" {
		return e
	}

	if !semver.IsValid(g.Requires) {
		return wrongVersionError(g)
	}
	if semver.Compare(g.Requires, pegx.Version) > 0 {
		return versionError(g)
	}
	return nil
}

func (a *Annotations) detectCapabilities(e error) error {
	if e != nil {
		return e
	}

	g := a.Grammar
	switch g.Input {
	case "peg.Str":
		a.Element, a.Slice = "rune", "string"
	case "peg.Bytes":
		a.Element, a.Slice = "byte", "[]byte"
	}
	if g.Element != "" {
		a.Element = g.Element
	}
	if g.Slice != "" {
		a.Slice = g.Slice
	}

	for _, r := range g.Rules {
		grammar.Walk(r.Body, func(x grammar.Expr) bool {
			if e != nil {
				return false
			}

			switch x.(type) {
			case *grammar.Literal:
				a.Caps.Literal = true
			case *grammar.Class:
				a.Caps.Elem = true
				if a.Element == "" {
					e = elementTypeError(x, g.Input)
				}
			case *grammar.Slice:
				a.Caps.Slice = true
				if a.Slice == "" {
					e = sliceTypeError(x, g.Input)
				}
			}
			return true
		})
		if e != nil {
			return e
		}
	}
	return nil
}

func (a *Annotations) resolveReferences(e error) error {
	if e != nil {
		return e
	}

	g := a.Grammar
	for _, r := range g.Rules {
		params := make(map[string]bool, len(r.Params))
		for _, p := range r.Params {
			params[p] = true
		}

		grammar.Walk(r.Body, func(x grammar.Expr) bool {
			ref, is := x.(*grammar.RuleRef)
			if e != nil || !is {
				return e == nil
			}

			if params[ref.Name] {
				if len(ref.Args) > 0 {
					e = paramCallError(ref)
				}
				return false
			}

			target := g.Rule(ref.Name)
			if target == nil {
				e = unknownRuleError(ref)
			} else if len(ref.Args) != len(target.Params) {
				e = argumentCountError(ref, len(target.Params))
			}
			return e == nil
		})
		if e != nil {
			return e
		}
	}
	return nil
}

func (a *Annotations) addRule(r *grammar.Rule, body grammar.Expr, args []grammar.Expr, parent *RuleInfo) *RuleInfo {
	name := r.Name
	if args != nil {
		for n := 1; name == r.Name || a.names[name] != nil; n++ {
			name = r.Name + "_" + strconv.Itoa(n)
		}
	}

	ri := &RuleInfo{
		Index:  len(a.Rules),
		Name:   name,
		Rule:   r,
		Body:   body,
		Args:   args,
		Cached: r.Cache,
		parent: parent,
	}
	if r.Cache {
		ri.Kind = Memoized
	}
	a.Rules = append(a.Rules, ri)
	a.names[name] = ri
	return ri
}

func (a *Annotations) expandRules(e error) error {
	if e != nil {
		return e
	}

	for _, r := range a.Grammar.Rules {
		if len(r.Params) == 0 {
			a.addRule(r, r.Body, nil, nil)
		}
	}

	instances := make(map[string]*RuleInfo)
	q := queue.New(a.Rules...)
	for !q.IsEmpty() {
		ri, _ := q.First()
		grammar.Walk(ri.Body, func(x grammar.Expr) bool {
			ref, is := x.(*grammar.RuleRef)
			if e != nil || !is {
				return e == nil
			}

			rule := a.Grammar.Rule(ref.Name)
			if len(rule.Params) == 0 {
				a.targets[ref] = a.names[rule.Name]
				return false
			}

			key := ref.String()
			target := instances[key]
			if target == nil {
				for p := ri; p != nil; p = p.parent {
					if p.Rule == rule && len(p.key) < len(key) {
						e = cyclicExpansionError(ref)
						return false
					}
				}

				args := make(map[string]grammar.Expr, len(rule.Params))
				for i, p := range rule.Params {
					args[p] = ref.Args[i]
				}
				target = a.addRule(rule, substitute(rule.Body, args), ref.Args, ri)
				target.key = key
				instances[key] = target
				q.Append(target)
			}
			a.targets[ref] = target

			// arguments are resolved as a part of instance body
			return false
		})
		if e != nil {
			return e
		}
	}
	return nil
}

// substitute returns a copy of e with parameter references replaced with argument expressions.
// Arguments are inserted as is, context-free leaves are shared.
func substitute(e grammar.Expr, args map[string]grammar.Expr) grammar.Expr {
	sub := func(x grammar.Expr) grammar.Expr {
		return substitute(x, args)
	}

	switch x := e.(type) {
	case *grammar.RuleRef:
		if arg, has := args[x.Name]; has {
			return arg
		}
		c := *x
		c.Args = substituteAll(x.Args, args)
		return &c
	case *grammar.Sequence:
		c := *x
		c.Items = substituteAll(x.Items, args)
		return &c
	case *grammar.Choice:
		c := *x
		c.Alts = substituteAll(x.Alts, args)
		return &c
	case *grammar.Action:
		c := *x
		c.Items = substituteAll(x.Items, args)
		return &c
	case *grammar.Repeat:
		c := *x
		c.Expr = sub(x.Expr)
		if x.Sep != nil {
			c.Sep = sub(x.Sep)
		}
		return &c
	case *grammar.Optional:
		c := *x
		c.Expr = sub(x.Expr)
		return &c
	case *grammar.PositiveLookahead:
		c := *x
		c.Expr = sub(x.Expr)
		return &c
	case *grammar.NegativeLookahead:
		c := *x
		c.Expr = sub(x.Expr)
		return &c
	case *grammar.Capture:
		c := *x
		c.Expr = sub(x.Expr)
		return &c
	case *grammar.Slice:
		c := *x
		c.Expr = sub(x.Expr)
		return &c
	case *grammar.Quiet:
		c := *x
		c.Expr = sub(x.Expr)
		return &c
	case *grammar.Operand:
		c := *x
		return &c
	case *grammar.PrecedenceBlock:
		c := *x
		c.Levels = make([]*grammar.Level, len(x.Levels))
		for i, l := range x.Levels {
			cl := *l
			cl.Templates = make([]*grammar.Action, len(l.Templates))
			for j, t := range l.Templates {
				cl.Templates[j] = sub(t).(*grammar.Action)
			}
			c.Levels[i] = &cl
		}
		return &c
	}
	return e
}

func substituteAll(items []grammar.Expr, args map[string]grammar.Expr) []grammar.Expr {
	if items == nil {
		return nil
	}

	res := make([]grammar.Expr, len(items))
	for i, item := range items {
		res[i] = substitute(item, args)
	}
	return res
}

func (a *Annotations) checkLabels(e error) error {
	if e != nil {
		return e
	}

	for _, ri := range a.Rules {
		grammar.Walk(ri.Body, func(x grammar.Expr) bool {
			action, is := x.(*grammar.Action)
			if e != nil || !is {
				return e == nil
			}

			labels := make(map[string]bool)
			for _, item := range action.Items {
				if c, is := item.(*grammar.Capture); is {
					if labels[c.Name] {
						e = labelDefinedError(c)
						return false
					}
					labels[c.Name] = true
				}
			}
			return true
		})
		if e != nil {
			return e
		}
	}
	return nil
}
