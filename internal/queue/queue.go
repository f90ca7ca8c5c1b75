// Package queue implements FIFO worklist used by grammar analysis.
package queue

const minCap = 4

// Queue is a ring buffer, capacity is always a power of 2.
type Queue[T any] struct {
	items []T
	head  int
	len   int
}

// New creates a queue containing items, the first item is taken first.
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, capFor(len(items)))}
	q.len = copy(q.items, items)
	return q
}

func capFor(length int) int {
	c := minCap
	for c < length {
		c <<= 1
	}
	return c
}

func (q *Queue[T]) IsEmpty() bool {
	return q.len == 0
}

func (q *Queue[T]) Len() int {
	return q.len
}

func (q *Queue[T]) mask() int {
	return len(q.items) - 1
}

// Append adds item to the end of the queue.
func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.len == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.len)&q.mask()] = item
	q.len++
	return q
}

// First removes and returns the first item, false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.len == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.mask()
	q.len--
	return item, true
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.items = items
	q.head = 0
}
