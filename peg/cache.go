package peg

// Cache memoizes results of a single rule by start position.
// Zero value is ready to use. Cache belongs to a single parse.
type Cache[T any] struct {
	entries map[int]RuleResult[T]
}

// Get returns stored result for pos.
func (c *Cache[T]) Get(pos int) (RuleResult[T], bool) {
	r, has := c.entries[pos]
	return r, has
}

// Memo returns stored result for pos or calls compute and stores its result.
// A failure is stored before compute is called, so a rule reentering itself at the same position
// fails instead of recursing endlessly. The stored failure is not retried: memoization only
// bounds repeated work and never grows a left-recursive match.
func (c *Cache[T]) Memo(pos int, compute func(pos int) RuleResult[T]) RuleResult[T] {
	if r, has := c.entries[pos]; has {
		return r
	}

	if c.entries == nil {
		c.entries = make(map[int]RuleResult[T])
	}
	c.entries[pos] = Failed[T]()
	r := compute(pos)
	c.entries[pos] = r
	return r
}

// Len returns the number of stored results.
func (c *Cache[T]) Len() int {
	return len(c.entries)
}
