package analysis

import (
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/peg"
)

func (a *Annotations) buildTables(e error) error {
	if e != nil {
		return e
	}

	for _, ri := range a.Rules {
		block, isBlock := ri.Body.(*grammar.PrecedenceBlock)
		if !isBlock {
			e = checkNesting(ri.Body)
			if e != nil {
				return e
			}
			continue
		}

		ri.Kind = PrecedenceClimbing
		table, e := buildTable(block)
		if e != nil {
			return e
		}

		a.tables[block] = table
		for _, l := range table.Levels {
			for _, t := range l.Templates {
				for _, item := range t.Items {
					e = checkNesting(item)
					if e != nil {
						return e
					}
				}
			}
		}
	}
	return nil
}

func checkNesting(e grammar.Expr) error {
	var err error
	grammar.Walk(e, func(x grammar.Expr) bool {
		if err != nil {
			return false
		}

		switch x := x.(type) {
		case *grammar.PrecedenceBlock:
			err = nestedPrecedenceError(x.Pos())
		case *grammar.Operand:
			err = operandOutsideError(x)
		}
		return err == nil
	})
	return err
}

func buildTable(block *grammar.PrecedenceBlock) (*Table, error) {
	table := &Table{Levels: make([]Level, len(block.Levels))}
	for i, l := range block.Levels {
		level := Level{Power: i + 1, Assoc: peg.AssocLeft}
		hasInfix := false
		for _, t := range l.Templates {
			template, assoc, e := classify(t)
			if e != nil {
				return nil, e
			}

			if template.Kind == Infix {
				if hasInfix && assoc != level.Assoc {
					return nil, assocError(l.Pos, level.Power)
				}

				level.Assoc = assoc
				hasInfix = true
			}
			level.Templates = append(level.Templates, template)
		}

		l.Assoc = level.Assoc
		table.Levels[i] = level
	}
	return table, nil
}

type operandItem struct {
	index int
	paren bool
	label string
}

func operandOf(e grammar.Expr) (*grammar.Operand, string) {
	switch x := e.(type) {
	case *grammar.Operand:
		return x, ""
	case *grammar.Capture:
		if op, is := x.Expr.(*grammar.Operand); is {
			return op, x.Name
		}
	}
	return nil, ""
}

// classify determines template kind by operand placement:
// no operands for atom, trailing operand for prefix, leading operand for postfix,
// both leading and trailing operands with operator between them for infix.
func classify(t *grammar.Action) (Template, peg.Assoc, error) {
	var ops []operandItem
	for i, item := range t.Items {
		if op, label := operandOf(item); op != nil {
			ops = append(ops, operandItem{i, op.Paren, label})
		}
	}

	items := t.Items
	last := len(items) - 1
	res := Template{Action: t, Items: items}
	assoc := peg.AssocNone
	switch len(ops) {
	case 0:
		res.Kind = Atom

	case 1:
		o := ops[0]
		switch {
		case last == 0:
			return res, assoc, operandPositionError(t, "no operator")
		case o.index == 0:
			res.Kind = Postfix
			res.Left = o.label
			res.Items = items[1:]
		case o.index == last:
			res.Kind = Prefix
			res.Right = o.label
			res.Items = items[:last]
		default:
			return res, assoc, operandPositionError(t, "operand must be the first or the last item")
		}

	case 2:
		l, r := ops[0], ops[1]
		if l.index != 0 || r.index != last {
			return res, assoc, operandPositionError(t, "operands must be the first and the last items")
		}
		if last == 1 {
			return res, assoc, operandPositionError(t, "no operator")
		}

		res.Kind = Infix
		res.Left, res.Right = l.label, r.label
		res.Items = items[1:last]
		switch {
		case l.paren && r.paren:
			return res, assoc, operandPositionError(t, "both operands are parenthesized")
		case l.paren:
			assoc = peg.AssocLeft
		case r.paren:
			assoc = peg.AssocRight
		}

	default:
		return res, assoc, operandPositionError(t, "too many operands")
	}

	return res, assoc, nil
}

func (a *Annotations) checkPostfixes(e error) error {
	if e != nil {
		return e
	}

	for _, ri := range a.Rules {
		block, isBlock := ri.Body.(*grammar.PrecedenceBlock)
		if !isBlock {
			continue
		}

		for _, l := range a.tables[block].Levels {
			for _, t := range l.Templates {
				if t.Kind == Postfix && a.itemsNullable(t.Items) {
					return nullablePostfixError(t.Action)
				}
			}
		}
	}
	return nil
}
