package lcs

import "github.com/wiggle-go/wiggle/internal/token"

// comparator adapts two token.File ranges to element-equality, matching
// sentinels by their parsed chunk number rather than by text (token.Equal).
type comparator struct {
	fa, fb *token.File
}

func (c *comparator) eq(i, j int) bool {
	return token.Equal(c.fa.Stream, c.fa.Elements[i], c.fb.Stream, c.fb.Elements[j])
}

// change is one edit-script operation in global file coordinates: A[a:a+del]
// is replaced by B[b:b+ins].
type change struct {
	a, b, del, ins int
}

// snakePath is a linked list of snakes (diagonal runs) recording the
// furthest-reaching path for one diagonal, built while the forward search
// climbs from cost c to c+1. Walking pre pointers backward from the winning
// diagonal yields the full path in reverse.
type snakePath struct {
	pre          *snakePath
	x, y, length int
}

// diagonalArray is V[] from the Myers paper: the furthest x reached on
// diagonal k = x-y, indexed with negative diagonals mapped below zero.
type diagonalArray struct {
	pos, neg []int
}

func newDiagonalArray() *diagonalArray {
	return &diagonalArray{pos: make([]int, 16), neg: make([]int, 16)}
}

func (d *diagonalArray) get(k int) int {
	if k < 0 {
		k = -k - 1
		if k >= len(d.neg) {
			return 0
		}
		return d.neg[k]
	}
	if k >= len(d.pos) {
		return 0
	}
	return d.pos[k]
}

func (d *diagonalArray) set(k, v int) {
	if k < 0 {
		k = -k - 1
		for k >= len(d.neg) {
			d.neg = append(d.neg, make([]int, len(d.neg)+16)...)
		}
		d.neg[k] = v
		return
	}
	for k >= len(d.pos) {
		d.pos = append(d.pos, make([]int, len(d.pos)+16)...)
	}
	d.pos[k] = v
}

type pathArray struct {
	pos, neg map[int]*snakePath
}

func newPathArray() *pathArray {
	return &pathArray{pos: map[int]*snakePath{}, neg: map[int]*snakePath{}}
}

func (p *pathArray) get(k int) *snakePath {
	if k < 0 {
		return p.neg[-k-1]
	}
	return p.pos[k]
}

func (p *pathArray) set(k int, v *snakePath) {
	if k < 0 {
		p.neg[-k-1] = v
		return
	}
	p.pos[k] = v
}

// editScript runs the forward O(ND) search over the local subrectangle
// [aLo,aHi) x [bLo,bHi) and returns the edit script in global coordinates,
// in order. Ported from the classic forward-search/path-linked-list
// formulation (see myers.go in the teacher package) generalised to work over
// an arbitrary token.File subrange instead of a comparable slice.
func editScript(c *comparator, aLo, aHi, bLo, bHi int) []change {
	n, m := aHi-aLo, bHi-bLo
	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		return []change{{a: aLo, b: bLo, ins: m}}
	}
	if m == 0 {
		return []change{{a: aLo, b: bLo, del: n}}
	}

	afterSnake := func(x, y int) int {
		for x < n && y < m && c.eq(aLo+x, bLo+y) {
			x++
			y++
		}
		return x
	}

	v := newDiagonalArray()
	v.set(0, afterSnake(0, 0))
	paths := newPathArray()
	if v.get(0) != 0 {
		paths.set(0, &snakePath{x: 0, y: 0, length: v.get(0)})
	}

	d := 0
	k := 0
outer:
	for {
		d++
		lo := -min(d, m+(d%2))
		hi := min(d, n+(d%2))
		for k = lo; k <= hi; k += 2 {
			var fromTop, fromLeft = -1, -1
			if k != hi {
				fromTop = v.get(k + 1)
			}
			if k != lo {
				fromLeft = v.get(k-1) + 1
			}
			x := max(fromTop, fromLeft)
			if x > n {
				x = n
			}
			y := x - k
			if x > n || y > m {
				continue
			}
			newX := afterSnake(x, y)
			v.set(k, newX)
			var prev *snakePath
			if x == fromTop {
				prev = paths.get(k + 1)
			} else {
				prev = paths.get(k - 1)
			}
			if newX != x {
				paths.set(k, &snakePath{pre: prev, x: x, y: y, length: newX - x})
			} else {
				paths.set(k, prev)
			}
			if newX == n && newX-k == m {
				break outer
			}
		}
	}

	path := paths.get(k)
	lastX, lastY := n, m
	var changes []change
	for {
		var endX, endY int
		if path != nil {
			endX = path.x + path.length
			endY = path.y + path.length
		}
		if endX != lastX || endY != lastY {
			changes = append(changes, change{
				a:   aLo + endX,
				b:   bLo + endY,
				del: lastX - endX,
				ins: lastY - endY,
			})
		}
		if path == nil {
			break
		}
		lastX, lastY = path.x, path.y
		path = path.pre
	}
	for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
		changes[i], changes[j] = changes[j], changes[i]
	}
	return changes
}

// csFromChanges converts an ordered edit script over [aLo,aHi)x[bLo,bHi)
// into a CSL: every gap between consecutive edits (and before the first /
// after the last) is, by construction of the forward search, a diagonal run
// and therefore a match.
func csFromChanges(aLo, aHi, bLo, bHi int, changes []change) CSL {
	var out CSL
	lastA, lastB := aLo, bLo
	for _, ch := range changes {
		if gap := ch.a - lastA; gap > 0 {
			out = appendSnake(out, lastA, lastB, gap)
		}
		lastA = ch.a + ch.del
		lastB = ch.b + ch.ins
	}
	if gap := aHi - lastA; gap > 0 {
		out = appendSnake(out, lastA, lastB, gap)
	}
	return out
}

// diffRange computes the CSL for fa[aLo:aHi] vs fb[bLo:bHi] using the unique-
// token filter, the core forward search, and the newline-stabilising fixup.
func diffRange(fa, fb *token.File, aLo, aHi, bLo, bHi int) CSL {
	c := &comparator{fa: fa, fb: fb}
	redA, redB, mapA, mapB, filtered := reduceUnique(fa, fb, aLo, aHi, bLo, bHi)
	var out CSL
	if filtered {
		rc := &comparator{fa: redA, fb: redB}
		changes := editScript(rc, 0, redA.Len(), 0, redB.Len())
		reduced := csFromChanges(0, redA.Len(), 0, redB.Len(), changes)
		out = remapCSL(fa, fb, reduced, mapA, mapB, aLo, aHi, bLo, bHi)
	} else {
		changes := editScript(c, aLo, aHi, bLo, bHi)
		out = csFromChanges(aLo, aHi, bLo, bHi, changes)
	}
	return fixup(fa, fb, out)
}
