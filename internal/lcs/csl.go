// Package lcs implements the two-sequence diff engine: a Myers O(ND)
// longest-common-subsequence search, a unique-token filtering optimisation,
// and a post-pass fixup that stabilises alignment around newlines. The
// search is a single forward pass that records each diagonal's path as a
// linked list of snakes; it does not split the problem at a midpoint snake
// and recurse on the two halves.
package lcs

// Entry is one CSL triple: elements A[a:a+len] equal B[b:b+len].
type Entry struct {
	A, B, Len int
}

// CSL is a Common-Subsequence List: a strictly monotone, finite sequence of
// Entry, terminated by a sentinel Entry{A: len(A), B: len(B), Len: 0}.
type CSL []Entry

// sentinel appends the terminating zero-length entry at (lenA, lenB).
func sentinel(lenA, lenB int) Entry { return Entry{A: lenA, B: lenB, Len: 0} }

// Valid checks the CSL monotonicity and termination invariant from the data
// model: for consecutive entries, a_i+len_i <= a_{i+1} and b_i+len_i <= b_{i+1},
// and the final entry is the (lenA, lenB, 0) sentinel.
func (c CSL) Valid(lenA, lenB int) bool {
	if len(c) == 0 {
		return lenA == 0 && lenB == 0
	}
	for i := 1; i < len(c); i++ {
		prev, cur := c[i-1], c[i]
		if prev.A+prev.Len > cur.A || prev.B+prev.Len > cur.B {
			return false
		}
	}
	last := c[len(c)-1]
	return last.Len == 0 && last.A == lenA && last.B == lenB
}

// appendSnake pushes a matched run onto a CSL, merging it into the previous
// entry when contiguous on both sides.
func appendSnake(c CSL, a, b, length int) CSL {
	if length == 0 {
		return c
	}
	if n := len(c); n > 0 {
		last := &c[n-1]
		if last.A+last.Len == a && last.B+last.Len == b {
			last.Len += length
			return c
		}
	}
	return append(c, Entry{A: a, B: b, Len: length})
}
