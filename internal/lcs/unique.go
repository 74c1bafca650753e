package lcs

import "github.com/wiggle-go/wiggle/internal/token"

// reduceUnique implements the unique-token filtering optimisation: elements
// with no possible match on the other side are collapsed, in maximal runs of
// two or more, down to a single placeholder before the main search runs.
// Sentinels are never collapsed since they always participate in matching.
func reduceUnique(fa, fb *token.File, aLo, aHi, bLo, bHi int) (redA, redB *token.File, mapA, mapB []int, filtered bool) {
	hashesInB := hashSet(fb, bLo, bHi)
	hashesInA := hashSet(fa, aLo, aHi)

	elemsA, mapA := reduceSide(fa, aLo, aHi, hashesInB)
	elemsB, mapB := reduceSide(fb, bLo, bHi, hashesInA)

	filtered = len(elemsA) != aHi-aLo || len(elemsB) != bHi-bLo
	redA = &token.File{Stream: fa.Stream, Elements: elemsA}
	redB = &token.File{Stream: fb.Stream, Elements: elemsB}
	return
}

func hashSet(f *token.File, lo, hi int) map[uint64]bool {
	m := make(map[uint64]bool, hi-lo)
	for i := lo; i < hi; i++ {
		e := f.Elements[i]
		if !e.IsSentinel {
			m[e.Hash] = true
		}
	}
	return m
}

// reduceSide walks f[lo:hi), collapsing any maximal run of >=2 consecutive
// elements that have no possible counterpart (per otherHashes) down to the
// run's first element, and returns the surviving elements plus a map from
// reduced index back to the original index.
func reduceSide(f *token.File, lo, hi int, otherHashes map[uint64]bool) ([]token.Element, []int) {
	var elems []token.Element
	var idx []int
	i := lo
	for i < hi {
		e := f.Elements[i]
		if e.IsSentinel || otherHashes[e.Hash] {
			elems = append(elems, e)
			idx = append(idx, i)
			i++
			continue
		}
		j := i + 1
		for j < hi {
			ej := f.Elements[j]
			if ej.IsSentinel || otherHashes[ej.Hash] {
				break
			}
			j++
		}
		elems = append(elems, e)
		idx = append(idx, i)
		i = j
	}
	return elems, idx
}

// remapCSL translates a CSL computed over the reduced files back into
// indices of the full files.
func remapCSL(fa, fb *token.File, reduced CSL, mapA, mapB []int, aLo, aHi, bLo, bHi int) CSL {
	var out CSL
	for _, e := range reduced {
		for k := 0; k < e.Len; k++ {
			out = appendSnake(out, mapA[e.A+k], mapB[e.B+k], 1)
		}
	}
	return out
}
