// Package render walks an annotated merge stream and emits the clean result
// or, inside isolated conflict regions, the found/expected/replacement
// marker blocks a human or patch tool can act on.
package render

import (
	"io"

	"github.com/wiggle-go/wiggle/internal/merge"
	"github.com/wiggle-go/wiggle/internal/term"
	"github.com/wiggle-go/wiggle/internal/token"
)

// Render writes the merge of af/bf/cf described by entries to w. words
// selects the short inline markers used for word-granularity merges.
// ignoreAlready drops conflict markers whose every non-border section is
// AlreadyApplied, counting them in the returned ignored total instead.
// color is the terminal's colour depth; markers are painted through it and
// degrade to plain text at term.LevelNone.
func Render(w io.Writer, af, bf, cf *token.File, entries []merge.Entry, words, ignoreAlready bool, color term.Level) (conflicts, wiggles, ignored int, err error) {
	i := 0
	for entries[i].Kind != merge.End {
		if entries[i].InConflict == 0 {
			if err = printClean(w, af, cf, entries[i]); err != nil {
				return
			}
			i++
			continue
		}

		j := i
		for entries[j].Kind != merge.End && entries[j].InConflict != 0 {
			j++
		}
		group := entries[i:j]

		leadBorder := group[0].InConflict == 1
		trailBorder := len(group) > 1 && group[len(group)-1].InConflict == 1
		if len(group) == 1 && group[0].InConflict == 1 {
			// A lone border with nothing between two conflicts: print its
			// common text and move on without opening a block.
			if err = printRange(w, af, group[0].A+group[0].Lo, group[0].Hi-group[0].Lo); err != nil {
				return
			}
			i = j
			continue
		}

		if leadBorder {
			e := group[0]
			if err = printRange(w, af, e.A, e.Hi); err != nil {
				return
			}
		}

		foundConflict := false
		allApplied := true
		for idx, e := range group {
			if (idx == 0 && leadBorder) || (trailBorder && idx == len(group)-1) {
				continue
			}
			if e.InConflict == 2 {
				foundConflict = true
			}
			if e.Kind != merge.AlreadyApplied {
				allApplied = false
			}
		}

		if ignoreAlready && allApplied {
			ignored++
			for idx, e := range group {
				lo, hi := sectionBounds(e, idx, leadBorder, trailBorder, len(group), e.Al)
				if err = printRange(w, af, e.A+lo, hi-lo); err != nil {
					return
				}
			}
			if err = printTrailBorder(w, af, group, trailBorder); err != nil {
				return
			}
			i = j
			continue
		}

		if foundConflict {
			conflicts++
		} else {
			wiggles++
		}

		if err = writeMarker(w, words, "<<<<<<<", "<<<---", "found", color.Red); err != nil {
			return
		}
		for idx, e := range group {
			if e.Kind == merge.Extraneous {
				continue
			}
			lo, hi := sectionBounds(e, idx, leadBorder, trailBorder, len(group), e.Al)
			if err = printRange(w, af, e.A+lo, hi-lo); err != nil {
				return
			}
		}

		if err = writeMarker(w, words, "|||||||", "|||", "expected", color.Yellow); err != nil {
			return
		}
		for idx, e := range group {
			if e.Kind == merge.Extraneous && bf.Elements[e.B].IsSentinel {
				continue
			}
			lo, hi := sectionBounds(e, idx, leadBorder, trailBorder, len(group), e.Bl)
			if err = printRange(w, bf, e.B+lo, hi-lo); err != nil {
				return
			}
		}

		if err = writeMarker(w, words, "=======", "===", "", color.Purple); err != nil {
			return
		}
		for idx, e := range group {
			if e.Kind == merge.Extraneous {
				continue
			}
			// A Changed section's replacement text is never trimmed by a
			// bordering cut-point: a partial "new" side reads as wrong.
			if e.Kind == merge.Changed {
				if err = printRange(w, cf, e.C, e.Cl); err != nil {
					return
				}
				continue
			}
			lo, hi := sectionBounds(e, idx, leadBorder, trailBorder, len(group), e.Cl)
			if err = printRange(w, cf, e.C+lo, hi-lo); err != nil {
				return
			}
		}

		if !foundConflict {
			if err = writeMarker(w, words, "&&&&&&&", "&&&", "resolution", color.Green); err != nil {
				return
			}
			for idx, e := range group {
				if e.Kind == merge.Extraneous {
					continue
				}
				switch e.Kind {
				case merge.Changed:
					lo, hi := sectionBounds(e, idx, leadBorder, trailBorder, len(group), e.Cl)
					if err = printRange(w, cf, e.C+lo, hi-lo); err != nil {
						return
					}
				default:
					lo, hi := sectionBounds(e, idx, leadBorder, trailBorder, len(group), e.Al)
					if err = printRange(w, af, e.A+lo, hi-lo); err != nil {
						return
					}
				}
			}
		}

		if err = writeMarker(w, words, ">>>>>>>", "--->>>", "replacement", color.Blue); err != nil {
			return
		}
		if err = printTrailBorder(w, af, group, trailBorder); err != nil {
			return
		}
		i = j
	}
	return
}

// sectionBounds returns the (lo, hi) offsets of entry's contribution to a
// conflict section, defaulting to the section's full length and trimmed at
// the group's leading/trailing border (border entries are always Unchanged
// or Changed, whose al/bl/cl agree at the border position, so the isolator's
// Lo/Hi — computed by scanning af — apply unchanged to any of the streams).
func sectionBounds(e merge.Entry, idx int, leadBorder, trailBorder bool, n, length int) (lo, hi int) {
	lo, hi = 0, length
	if idx == 0 && leadBorder {
		lo = e.Hi
	}
	if trailBorder && idx == n-1 {
		hi = e.Lo
	}
	return lo, hi
}

// printTrailBorder writes the common text A[a+lo:a+hi] of a group's trailing
// border, the part of that section left outside the conflict block.
func printTrailBorder(w io.Writer, af *token.File, group []merge.Entry, trailBorder bool) error {
	if !trailBorder {
		return nil
	}
	e := group[len(group)-1]
	return printRange(w, af, e.A+e.Lo, e.Hi-e.Lo)
}

func printClean(w io.Writer, af, cf *token.File, e merge.Entry) error {
	switch e.Kind {
	case merge.Unchanged, merge.AlreadyApplied, merge.Unmatched:
		return printRange(w, af, e.A, e.Al)
	case merge.Changed:
		return printRange(w, cf, e.C, e.Cl)
	case merge.Extraneous:
		return nil
	default:
		return nil
	}
}

func printRange(w io.Writer, f *token.File, start, length int) error {
	for i := start; i < start+length && i >= 0 && i < f.Len(); i++ {
		if _, err := w.Write(f.Elements[i].Print(f.Stream)); err != nil {
			return err
		}
	}
	return nil
}

func writeMarker(w io.Writer, words bool, long, short, label string, colorize func(string) string) error {
	if words {
		_, err := io.WriteString(w, colorize(short))
		return err
	}
	text := long
	if label != "" {
		text = long + " " + label
	}
	_, err := io.WriteString(w, colorize(text)+"\n")
	return err
}
