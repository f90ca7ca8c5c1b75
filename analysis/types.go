package analysis

import (
	"github.com/ava12/pegx/grammar"
)

const (
	unitType = "struct{}"
	anyType  = "any"
)

// inferTypes assigns Go types to rules and expressions.
// Rules without declared type get the type of their body, recursive inference yields "any".
func (a *Annotations) inferTypes(e error) error {
	if e != nil {
		return e
	}

	visiting := make(map[*RuleInfo]bool)
	for _, ri := range a.Rules {
		a.ruleType(ri, visiting)
	}

	// all rule types are known now, so expression types are computed once more with final values
	for _, ri := range a.Rules {
		a.typeOf(ri, ri.Body, true, nil)
	}
	return nil
}

func (a *Annotations) ruleType(ri *RuleInfo, visiting map[*RuleInfo]bool) string {
	switch {
	case ri.Type != "":
		return ri.Type
	case ri.Rule.Type != "":
		ri.Type = ri.Rule.Type
		return ri.Type
	case visiting[ri]:
		return anyType
	}

	visiting[ri] = true
	t := a.typeOf(ri, ri.Body, true, visiting)
	delete(visiting, ri)
	if t == "" {
		t = unitType
	}
	ri.Type = t
	return t
}

// declared returns the type of action results of the rule.
func declared(ri *RuleInfo) string {
	if ri.Rule.Type != "" {
		return ri.Rule.Type
	}
	return anyType
}

// typeOf computes and records the type of e.
// Empty string denotes expression that never yields a value.
// top is set for the rule body and alternatives of the top-level choice.
func (a *Annotations) typeOf(ri *RuleInfo, e grammar.Expr, top bool, visiting map[*RuleInfo]bool) string {
	sub := func(x grammar.Expr) string {
		return a.typeOf(ri, x, false, visiting)
	}

	var t string
	switch x := e.(type) {
	case *grammar.Literal:
		t = unitType

	case *grammar.PositiveLookahead:
		sub(x.Expr)
		t = unitType

	case *grammar.NegativeLookahead:
		sub(x.Expr)
		t = unitType

	case *grammar.Expected:
		t = ""

	case *grammar.PositionMarker:
		t = "int"

	case *grammar.Class:
		t = a.Element

	case *grammar.Slice:
		sub(x.Expr)
		t = a.Slice

	case *grammar.Repeat:
		t = "[]" + valueType(sub(x.Expr))
		if x.Sep != nil {
			sub(x.Sep)
		}

	case *grammar.Optional:
		t = "*" + valueType(sub(x.Expr))

	case *grammar.Capture:
		t = sub(x.Expr)

	case *grammar.Quiet:
		t = sub(x.Expr)

	case *grammar.Sequence:
		t = unitType
		for _, item := range x.Items {
			it := sub(item)
			if len(x.Items) == 1 {
				t = it
			}
		}

	case *grammar.Choice:
		t = ""
		for i, alt := range x.Alts {
			at := a.typeOf(ri, alt, top, visiting)
			switch {
			case i == 0 || t == "":
				t = at
			case at != "" && at != t:
				t = anyType
			}
		}

	case *grammar.Action:
		for _, item := range x.Items {
			sub(item)
		}
		t = anyType
		if top {
			t = declared(ri)
		}

	case *grammar.RuleRef:
		target := a.targets[x]
		if visiting == nil {
			t = target.Type
		} else {
			t = a.ruleType(target, visiting)
		}

	case *grammar.Operand:
		t = declared(ri)

	case *grammar.PrecedenceBlock:
		for _, l := range x.Levels {
			for _, template := range l.Templates {
				a.typeOf(ri, template, true, visiting)
			}
		}
		t = declared(ri)
	}

	a.info(e).Type = t
	return t
}

func valueType(t string) string {
	if t == "" {
		return unitType
	}
	return t
}
