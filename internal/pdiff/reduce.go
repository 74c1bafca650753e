// Package pdiff implements the best-match patch locator: placing each hunk
// of a patch file against an original file, tolerant of surrounding noise
// and out-of-order hunks.
package pdiff

import "github.com/wiggle-go/wiggle/internal/token"

// reduce keeps only "interesting" elements: ones that end a line, or begin
// with an alphanumeric/underscore byte. Sentinels always survive (they drive
// chunk-boundary detection). The returned index slice maps reduced position
// back to the original file's element index.
func reduce(f *token.File) (*token.File, []int) {
	var elems []token.Element
	var idx []int
	for i := 0; i < f.Len(); i++ {
		e := f.Elements[i]
		if e.IsSentinel || isInteresting(f.Stream, e) {
			elems = append(elems, e)
			idx = append(idx, i)
		}
	}
	return &token.File{Stream: f.Stream, Elements: elems}, idx
}

func isInteresting(s *token.Stream, e token.Element) bool {
	if e.Length == 0 {
		return false
	}
	last := s.Byte(e.BodyStart + e.Length - 1)
	if last == '\n' {
		return true
	}
	first := s.Byte(e.BodyStart)
	return isAlnumUnderscore(first)
}

func isAlnumUnderscore(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}
