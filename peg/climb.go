package peg

// Assoc is associativity of a precedence level.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	default:
		return "none"
	}
}

// OperandPower returns minimum binding power of the right operand of an infix operator at power.
func (a Assoc) OperandPower(power int) int {
	if a == AssocRight {
		return power
	}
	return power + 1
}

// ClimbLevel describes infix and postfix operators of a single precedence level.
type ClimbLevel[T any] struct {
	Assoc Assoc

	// Suffix matches an infix or postfix operator (with right operand) following lhs at pos.
	// nil if the level has no infix or postfix operators.
	Suffix func(pos int, lhs T) RuleResult[T]
}

// Climber drives precedence climbing over levels ordered from the weakest to the strongest.
// Level with index i has binding power i + 1.
type Climber[T any] struct {
	// Prefix matches a prefix operator with its operand or an atom at pos.
	Prefix func(pos int) RuleResult[T]

	Levels []ClimbLevel[T]
}

// Climb matches an operand and then folds operators with binding power not less than minPower.
// Levels are tried in increasing power order, the first matching operator wins.
// After a non-associative operator the loop accepts only operators of lower power.
func (c *Climber[T]) Climb(pos, minPower int) RuleResult[T] {
	r := c.Prefix(pos)
	if !r.matched {
		return r
	}

	pos, value := r.Pos, r.Value
	limit := len(c.Levels)
	if minPower < 1 {
		minPower = 1
	}

	for {
		matched := false
		for power := minPower; power <= limit; power++ {
			level := c.Levels[power-1]
			if level.Suffix == nil {
				continue
			}

			s := level.Suffix(pos, value)
			if !s.matched {
				continue
			}

			pos, value = s.Pos, s.Value
			if level.Assoc == AssocNone {
				limit = power - 1
			}
			matched = true
			break
		}

		if !matched {
			return Matched(pos, value)
		}
	}
}
