package pdiff

import (
	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/token"
)

// Patch places chunks hunks of patch file b against original file a,
// tolerating surrounding noise and out-of-order hunks, and returns the CSL
// over the full (unreduced) files describing the matched regions.
func Patch(a, b *token.File, chunks int) lcs.CSL {
	redA, idxA := reduce(a)
	redB, idxB := reduce(b)

	bests := findBest(redA, redB, chunks)
	ordered := findBestInorder(bests, 0, redA.Len(), 0, redB.Len())

	fullX := fullIndexer(idxA, a.Len())
	fullY := fullIndexer(idxB, b.Len())

	var out lcs.CSL
	prevA, prevB := 0, 0
	for _, p := range ordered {
		xhi := fullX(p.xhi)
		yhi := fullY(p.yhi)
		if xhi <= prevA || yhi <= prevB {
			// Placement lost its ordering after rounding to full-file
			// coordinates; drop it (section 4.3 "lost a hunk" rule).
			continue
		}
		out = appendStripped(out, lcs.DiffPartial(a, b, prevA, xhi, prevB, yhi))
		prevA, prevB = xhi, yhi
	}
	if prevA < a.Len() || prevB < b.Len() {
		out = appendStripped(out, lcs.DiffPartial(a, b, prevA, a.Len(), prevB, b.Len()))
	}
	return append(out, lcs.Entry{A: a.Len(), B: b.Len(), Len: 0})
}

// fullIndexer maps a position in the reduced index space (0..len(idx),
// inclusive of the one-past-the-end position) to the corresponding offset
// in the full file, absorbing the run of skipped tokens that sits between
// consecutive interesting tokens into whichever neighbour claims it.
func fullIndexer(idx []int, fullLen int) func(int) int {
	return func(i int) int {
		if i <= 0 {
			return 0
		}
		if i >= len(idx) {
			return fullLen
		}
		return idx[i]
	}
}

// appendStripped concatenates cs onto out, dropping cs's own trailing
// sentinel entry (valid only as the terminator of cs's own sub-range, not of
// the overall CSL being assembled).
func appendStripped(out lcs.CSL, cs lcs.CSL) lcs.CSL {
	if n := len(cs); n > 0 && cs[n-1].Len == 0 {
		cs = cs[:n-1]
	}
	return append(out, cs...)
}
