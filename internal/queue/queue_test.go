package queue

import (
	"fmt"
	"testing"

	. "github.com/ava12/pegx/internal/test"
)

func TestCapFor(t *testing.T) {
	for i := 0; i <= 33; i++ {
		name := fmt.Sprintf("%d elements", i)
		t.Run(name, func(t *testing.T) {
			c := capFor(i)
			Assert(t, c >= minCap, "expecting at least %d, got %d", minCap, c)
			Assert(t, c&(c-1) == 0, "expecting 2^n, got %b", c)
			Assert(t, c >= i, "expecting capacity >= %d, got %d", i, c)
			if c > minCap {
				Assert(t, (c>>1) < i, "expecting capacity/2 < %d, got capacity %d", i, c)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectBool(t, true, q.IsEmpty())
	ExpectInt(t, 0, q.Len())
	ExpectInt(t, minCap, len(q.items))

	_, ok := q.First()
	ExpectBool(t, false, ok)
}

func TestOrder(t *testing.T) {
	q := New(1, 2, 3)
	q.Append(4).Append(5)
	ExpectInt(t, 5, q.Len())
	for i := 1; i <= 5; i++ {
		item, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectInt(t, i, item)
	}
	ExpectBool(t, true, q.IsEmpty())
}

func TestWrapAndGrow(t *testing.T) {
	q := New[int]()
	next, expected := 0, 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			q.Append(next)
			next++
		}
		for i := 0; i < 2; i++ {
			item, _ := q.First()
			ExpectInt(t, expected, item)
			expected++
		}
	}

	ExpectInt(t, next-expected, q.Len())
	Assert(t, len(q.items) >= q.Len(), "capacity %d is less than length %d", len(q.items), q.Len())
	for !q.IsEmpty() {
		item, _ := q.First()
		ExpectInt(t, expected, item)
		expected++
	}
	ExpectInt(t, next, expected)
}
