package lcs

import "github.com/wiggle-go/wiggle/internal/token"

// fixup stabilises alignment around line boundaries: for every add-only or
// delete-only gap between two adjacent snakes, if the snake's last element
// equals the gap's last element (a repeated token, e.g. a duplicated blank
// line at a hunk boundary), the boundary is walked forward one element at a
// time so the match prefers to end at a newline rather than in the middle of
// a run of identical tokens.
func fixup(fa, fb *token.File, in CSL) CSL {
	out := append(CSL(nil), in...)
	for i := 0; i+1 < len(out); i++ {
		shiftBoundary(fa, fb, &out, i)
	}
	// Emptied snakes (shrunk to Len==0 by a shift) are merges-in-waiting:
	// drop them so adjacent real snakes sit next to each other.
	compact := out[:0]
	for _, e := range out {
		if e.Len == 0 {
			continue
		}
		compact = appendSnake(compact, e.A, e.B, e.Len)
	}
	return compact
}

func endsInNewline(s *token.Stream, e token.Element) bool {
	if e.Length == 0 {
		return false
	}
	return s.Byte(e.BodyStart+e.Length-1) == '\n'
}

func shiftBoundary(fa, fb *token.File, out *CSL, i int) {
	for {
		cs := *out
		prev := &cs[i]
		next := &cs[i+1]
		if prev.Len == 0 {
			return
		}
		addOnly := prev.A+prev.Len == next.A
		delOnly := prev.B+prev.Len == next.B
		if !addOnly && !delOnly {
			return
		}
		lastMatchA := prev.A + prev.Len - 1
		lastMatchB := prev.B + prev.Len - 1
		var equalAcrossGap, atNewline bool
		if addOnly {
			if next.B-1 < prev.B+prev.Len {
				return
			}
			equalAcrossGap = token.Equal(fb.Stream, fb.Elements[next.B-1], fa.Stream, fa.Elements[lastMatchA])
			atNewline = endsInNewline(fa.Stream, fa.Elements[lastMatchA])
		} else {
			if next.A-1 < prev.A+prev.Len {
				return
			}
			equalAcrossGap = token.Equal(fa.Stream, fa.Elements[next.A-1], fb.Stream, fb.Elements[lastMatchB])
			atNewline = endsInNewline(fb.Stream, fb.Elements[lastMatchB])
		}
		if !equalAcrossGap {
			return
		}
		prev.Len--
		next.Len++
		next.A--
		next.B--
		if atNewline || prev.Len == 0 {
			return
		}
	}
}
