// Package merge implements the three-way merger: walking two CSLs (A<->B,
// B<->C) to tile the three files into Unchanged/Changed/Conflict sections,
// then isolating conflicts to cut-points for display.
package merge

import (
	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/token"
)

// Kind tags a merge Entry's section type.
type Kind int

const (
	Unmatched Kind = iota
	Unchanged
	Extraneous
	Changed
	Conflict
	AlreadyApplied
	End
)

// Entry is one tile of the three-way merge: A[a:a+al], B[b:b+bl], C[c:c+cl],
// plus the CSL cursor positions that produced it and the conflict-isolation
// fields filled in by Isolate.
type Entry struct {
	A, B, C    int
	C1, C2     int
	Al, Bl, Cl int
	Kind       Kind
	OldKind    Kind

	InConflict int // 0 clean, 1 border, 2 conflict, 3 wiggle
	Lo, Hi     int
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func endsLine(s *token.Stream, e token.Element) bool {
	if e.Plen == 0 {
		return false
	}
	return s.Byte(e.PrintEnd()-1) == '\n'
}

// Walk runs the three-way merge walk described in the data model: cursors
// (a,b,c,c1,c2) advance through af/bf/cf and csl1 (A<->B), csl2 (B<->C)
// until both CSLs reach their sentinels. ignoreAlready requests
// already-applied detection; the returned ignored count tallies conflicts
// retagged AlreadyApplied this way.
func Walk(af, bf, cf *token.File, csl1, csl2 lcs.CSL, ignoreAlready bool) ([]Entry, int) {
	var out []Entry
	ignored := 0

	a, b, c, c1, c2 := 0, 0, 0, 0, 0
	headerChecked := -1
	headerFound := -1

	for {
		match1 := a >= csl1[c1].A && b >= csl1[c1].B
		match2 := b >= csl2[c2].A && c >= csl2[c2].B

		if headerChecked != c2 {
			headerFound = -1
			for j := b; j < csl2[c2].A+csl2[c2].Len; j++ {
				if bf.Elements[j].IsSentinel {
					headerFound = j
					break
				}
			}
			headerChecked = c2
		}

		e := Entry{A: a, B: b, C: c, C1: c1, C2: c2}

		switch {
		case !match1 && match2:
			newA := csl1[c1].A
			if headerFound >= 0 {
				for newA > a && !endsLine(af.Stream, af.Elements[newA-1]) {
					newA--
				}
			}
			if a == newA && b == csl1[c1].B {
				newA = csl1[c1].A
			}
			if a < newA {
				e.Kind = Unmatched
				e.Al = newA - a
			} else {
				e.Kind = Extraneous
				newB := b + min(csl1[c1].B-b, csl2[c2].Len-(b-csl2[c2].A))
				if headerFound == b {
					newB = b + 1
					headerChecked = -1
				} else if headerFound > b && headerFound < newB {
					newB = headerFound
					headerChecked = -1
				}
				e.Bl = newB - b
				e.Cl = newB - b
			}

		case match1 && !match2:
			e.Kind = Changed
			e.Bl = min(csl1[c1].B+csl1[c1].Len, csl2[c2].A) - b
			e.Al = e.Bl
			e.Cl = csl2[c2].B - c

		case match1 && match2:
			e.Kind = Unchanged
			e.Bl = min(csl1[c1].Len-(b-csl1[c1].B), csl2[c2].Len-(b-csl2[c2].A))
			e.Al = e.Bl
			e.Cl = e.Bl

		default:
			e.Kind = Conflict
			e.Al = csl1[c1].A - a
			e.Cl = csl2[c2].B - c
			e.Bl = min(csl1[c1].B, csl2[c2].A) - b
			if ignoreAlready && checkAlreadyApplied(af, cf, &e) {
				ignored++
			} else if e.Bl == 0 && e.Cl > 0 {
				e.Al = 0
			}
		}

		e.OldKind = e.Kind
		out = append(out, e)

		a += e.Al
		b += e.Bl
		c += e.Cl

		for csl1[c1].Len != 0 && csl1[c1].A+csl1[c1].Len <= a {
			c1++
		}
		for csl2[c2].Len != 0 && csl2[c2].B+csl2[c2].Len <= c {
			c2++
		}
		if csl1[c1].Len == 0 && csl2[c2].Len == 0 &&
			a == csl1[c1].A && b == csl1[c1].B &&
			b == csl2[c2].A && c == csl2[c2].B {
			break
		}
	}

	out = append(out, Entry{A: a, B: b, C: c, C1: c1, C2: c2, Kind: End, OldKind: End})

	for i := range out {
		if out[i].Kind != AlreadyApplied {
			continue
		}
		if i > 0 && out[i-1].Kind != Unchanged && out[i-1].Kind != Changed {
			out[i].Kind = Conflict
		}
		if out[i+1].Kind != Unchanged && out[i+1].Kind != Changed && out[i+1].Kind != End {
			out[i].Kind = Conflict
		}
	}

	return out, ignored
}

func checkAlreadyApplied(af, cf *token.File, e *Entry) bool {
	if e.Al != e.Cl {
		return false
	}
	for i := 0; i < e.Al; i++ {
		if !token.Equal(af.Stream, af.Elements[e.A+i], cf.Stream, cf.Elements[e.C+i]) {
			return false
		}
	}
	e.Kind = AlreadyApplied
	return true
}
