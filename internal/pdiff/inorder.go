package pdiff

// findBestInorder resolves overlaps among the raw per-chunk bests into a
// monotone placement: within a range of chunks, fix the single
// highest-scoring chunk first, then recurse on the two halves restricted to
// the region left unclaimed by that placement. Each recursive call fixes at
// least one chunk (or narrows to an empty range), so the recursion
// terminates.
func findBestInorder(bests []best, alo, ahi, blo, bhi int) []best {
	var fixed []best
	var resolve func(lo, hi, alo, ahi, blo, bhi int)
	resolve = func(lo, hi, alo, ahi, blo, bhi int) {
		if lo >= hi || alo >= ahi || blo >= bhi {
			return
		}
		p := -1
		for i := lo; i < hi; i++ {
			b := bests[i]
			if !b.found || b.val <= 0 {
				continue
			}
			if b.xlo < alo || b.xhi > ahi || b.ylo < blo || b.yhi > bhi {
				continue
			}
			if p < 0 || b.val > bests[p].val {
				p = i
			}
		}
		if p < 0 {
			return
		}
		chosen := bests[p]
		fixed = append(fixed, chosen)
		resolve(lo, p, alo, chosen.xlo, blo, chosen.ylo)
		resolve(p+1, hi, chosen.xhi, ahi, chosen.yhi, bhi)
	}
	resolve(0, len(bests), alo, ahi, blo, bhi)
	// Restore chunk order: fixed is discovered highest-value-first, but
	// downstream remap needs chunks walked in the order they appear in B.
	ordered := make([]best, 0, len(fixed))
	for c := 0; c < len(bests); c++ {
		for _, f := range fixed {
			if f.chunk == c {
				ordered = append(ordered, f)
				break
			}
		}
	}
	return ordered
}
