package analysis

import (
	"sort"

	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/internal/ints"
	"github.com/ava12/pegx/internal/queue"
)

// computeFlow finds nullable and infallible expressions.
// Both properties only grow with each pass, so passes are repeated until nothing changes.
func (a *Annotations) computeFlow(e error) error {
	if e != nil {
		return e
	}

	for changed := true; changed; {
		changed = false
		for _, ri := range a.Rules {
			n, i := a.flow(ri.Body)
			if n != ri.Nullable || i != ri.Infallible {
				ri.Nullable, ri.Infallible = n, i
				changed = true
			}
		}
	}
	return nil
}

func (a *Annotations) flow(e grammar.Expr) (nullable, infallible bool) {
	switch x := e.(type) {
	case *grammar.Sequence:
		nullable, infallible = a.flowItems(x.Items)

	case *grammar.Action:
		nullable, infallible = a.flowItems(x.Items)
		infallible = infallible && !x.Conditional

	case *grammar.Choice:
		for _, alt := range x.Alts {
			n, i := a.flow(alt)
			nullable = nullable || n
			infallible = infallible || i
		}

	case *grammar.Repeat:
		en, ei := a.flow(x.Expr)
		sn, si := true, true
		if x.Sep != nil {
			sn, si = a.flow(x.Sep)
		}
		nullable = x.Min == 0 || (en && (x.Min <= 1 || sn))
		infallible = x.Min == 0 || (ei && (x.Min <= 1 || si))

	case *grammar.Optional:
		a.flow(x.Expr)
		nullable, infallible = true, true

	case *grammar.PositiveLookahead:
		_, infallible = a.flow(x.Expr)
		nullable = true

	case *grammar.NegativeLookahead:
		a.flow(x.Expr)
		nullable = true

	case *grammar.Literal:
		nullable = x.Value == ""
		infallible = nullable

	case *grammar.RuleRef:
		target := a.targets[x]
		nullable, infallible = target.Nullable, target.Infallible

	case *grammar.Capture:
		nullable, infallible = a.flow(x.Expr)

	case *grammar.Slice:
		nullable, infallible = a.flow(x.Expr)

	case *grammar.Quiet:
		nullable, infallible = a.flow(x.Expr)

	case *grammar.PositionMarker:
		nullable, infallible = true, true

	case *grammar.PrecedenceBlock:
		for _, l := range a.tables[x].Levels {
			for _, t := range l.Templates {
				n, i := a.flowItems(t.Action.Items)
				info := a.info(t.Action)
				info.Nullable, info.Infallible = n, i && !t.Action.Conditional
				nullable = nullable || (n && t.Kind == Atom)
			}
		}
	}

	info := a.info(e)
	info.Nullable, info.Infallible = nullable, infallible
	return
}

func (a *Annotations) flowItems(items []grammar.Expr) (nullable, infallible bool) {
	nullable, infallible = true, true
	for _, item := range items {
		n, i := a.flow(item)
		nullable = nullable && n
		infallible = infallible && i
	}
	return
}

func (a *Annotations) itemsNullable(items []grammar.Expr) bool {
	for _, item := range items {
		if !a.Info(item).Nullable {
			return false
		}
	}
	return true
}

func (a *Annotations) checkRepeats(e error) error {
	if e != nil {
		return e
	}

	for _, ri := range a.Rules {
		grammar.Walk(ri.Body, func(x grammar.Expr) bool {
			r, is := x.(*grammar.Repeat)
			if e != nil || !is {
				return e == nil
			}

			if r.Max == grammar.Unbounded && a.Info(r.Expr).Nullable && (r.Sep == nil || a.Info(r.Sep).Nullable) {
				e = nullableRepeatError(r)
			}
			return e == nil
		})
		if e != nil {
			return e
		}
	}
	return nil
}

// findRecursions detects left-recursive cycles.
// A rule calls another rule on the left if the call may happen before any input is consumed.
func (a *Annotations) findRecursions(e error) error {
	if e != nil {
		return e
	}

	calls := make([]*ints.Set, len(a.Rules))
	for i, ri := range a.Rules {
		calls[i] = ints.NewSet()
		a.leftCalls(ri.Body, i, calls[i])
	}

	reach := make([]*ints.Set, len(a.Rules))
	for i := range a.Rules {
		reach[i] = ints.NewSet()
		q := queue.New(calls[i].ToSlice()...)
		for !q.IsEmpty() {
			j, _ := q.First()
			if reach[i].Contains(j) {
				continue
			}

			reach[i].Add(j)
			for _, k := range calls[j].ToSlice() {
				if !reach[i].Contains(k) {
					q.Append(k)
				}
			}
		}
	}

	reported := ints.NewSet()
	for i := range a.Rules {
		if reported.Contains(i) || !reach[i].Contains(i) {
			continue
		}

		var names []string
		cached := false
		for _, j := range reach[i].ToSlice() {
			if reach[j].Contains(i) {
				reported.Add(j)
				names = append(names, a.Rules[j].Name)
				cached = cached || a.Rules[j].Cached
				a.Rules[j].LeftRecursive = a.Rules[j].Cached
			}
		}
		if !cached {
			sort.Strings(names)
			return recursionError(a.Rules[i].Rule, names)
		}
	}
	return nil
}

func (a *Annotations) leftCalls(e grammar.Expr, self int, calls *ints.Set) {
	switch x := e.(type) {
	case *grammar.Sequence:
		a.leftCallItems(x.Items, self, calls)

	case *grammar.Action:
		a.leftCallItems(x.Items, self, calls)

	case *grammar.Choice:
		for _, alt := range x.Alts {
			a.leftCalls(alt, self, calls)
		}

	case *grammar.Repeat:
		a.leftCalls(x.Expr, self, calls)
		if x.Sep != nil && a.Info(x.Expr).Nullable {
			a.leftCalls(x.Sep, self, calls)
		}

	case *grammar.Optional:
		a.leftCalls(x.Expr, self, calls)
	case *grammar.PositiveLookahead:
		a.leftCalls(x.Expr, self, calls)
	case *grammar.NegativeLookahead:
		a.leftCalls(x.Expr, self, calls)
	case *grammar.Capture:
		a.leftCalls(x.Expr, self, calls)
	case *grammar.Slice:
		a.leftCalls(x.Expr, self, calls)
	case *grammar.Quiet:
		a.leftCalls(x.Expr, self, calls)

	case *grammar.RuleRef:
		calls.Add(a.targets[x].Index)

	case *grammar.PrecedenceBlock:
		// operators are matched after an operand, only atoms and prefix operators start a match
		for _, l := range a.tables[x].Levels {
			for _, t := range l.Templates {
				switch t.Kind {
				case Atom:
					a.leftCallItems(t.Items, self, calls)
				case Prefix:
					if a.leftCallItems(t.Items, self, calls) {
						calls.Add(self)
					}
				}
			}
		}
	}
}

// leftCallItems returns true if all items are nullable.
func (a *Annotations) leftCallItems(items []grammar.Expr, self int, calls *ints.Set) bool {
	for _, item := range items {
		a.leftCalls(item, self, calls)
		if !a.Info(item).Nullable {
			return false
		}
	}
	return true
}
