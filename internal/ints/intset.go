// Package ints contains a bit set of small non-negative ints, e.g. rule indexes.
package ints

import "math/bits"

const chunkBits = bits.UintSize

// Set is a bit set. Zero value is an empty set.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	return (&Set{}).Add(items...)
}

func position(item int) (int, uint) {
	return item / chunkBits, 1 << (item % chunkBits)
}

// Add adds items to the set, items must not be negative.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		i, mask := position(item)
		for len(s.chunks) <= i {
			s.chunks = append(s.chunks, 0)
		}
		s.chunks[i] |= mask
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 {
		return false
	}

	i, mask := position(item)
	return i < len(s.chunks) && s.chunks[i]&mask != 0
}

func (s *Set) Len() int {
	n := 0
	for _, chunk := range s.chunks {
		n += bits.OnesCount(chunk)
	}
	return n
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	res := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			res = append(res, i*chunkBits+bits.TrailingZeros(chunk))
			chunk &= chunk - 1
		}
	}
	return res
}
