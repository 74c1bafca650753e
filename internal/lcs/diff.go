package lcs

import "github.com/wiggle-go/wiggle/internal/token"

// Diff computes the CSL for two whole files.
func Diff(a, b *token.File) CSL {
	return DiffPartial(a, b, 0, a.Len(), 0, b.Len())
}

// DiffPartial computes the CSL for the subranges a[alo:ahi] and b[blo:bhi],
// terminated by the (ahi, bhi) sentinel entry required by the CSL invariant.
// Indices outside the subrange are never referenced by the result.
func DiffPartial(a, b *token.File, alo, ahi, blo, bhi int) CSL {
	cs := diffRange(a, b, alo, ahi, blo, bhi)
	return append(cs, sentinel(ahi, bhi))
}

// DiffPatch diffs a patch file against an original hunk-by-hunk: when both
// files begin each hunk with a chunk sentinel, the hunks are diffed
// independently (preserving hunk alignment) and the CSLs concatenated.
// chunks is the number of hunks in b (the patch file).
func DiffPatch(a, b *token.File, chunks int) CSL {
	boundsB := hunkBounds(b, chunks)
	var out CSL
	aLo := 0
	for _, hb := range boundsB {
		sub := diffRange(a, b, aLo, a.Len(), hb.lo, hb.hi)
		out = append(out, sub...)
		if n := len(out); n > 0 {
			if last := out[n-1]; last.A+last.Len <= a.Len() {
				aLo = last.A + last.Len
			}
		}
	}
	return append(out, sentinel(a.Len(), b.Len()))
}

type hunkRange struct{ lo, hi int }

// hunkBounds partitions b's elements into per-chunk ranges delimited by
// chunk sentinels.
func hunkBounds(b *token.File, chunks int) []hunkRange {
	var bounds []hunkRange
	start := -1
	cur := -1
	for i := 0; i < b.Len(); i++ {
		e := b.Elements[i]
		if !e.IsSentinel {
			continue
		}
		if start >= 0 {
			bounds = append(bounds, hunkRange{lo: start, hi: i})
		}
		start = i
		cur = e.Chunk
		_ = cur
	}
	if start >= 0 {
		bounds = append(bounds, hunkRange{lo: start, hi: b.Len()})
	}
	if len(bounds) == 0 && chunks > 0 {
		bounds = append(bounds, hunkRange{lo: 0, hi: b.Len()})
	}
	return bounds
}
