package main

import (
	"fmt"
	"io"

	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/term"
	"github.com/wiggle-go/wiggle/internal/token"
)

// endsLine reports whether e's printed span in s ends with a newline, the
// line-boundary test do_diff_words uses to decide where a run of changed
// words can be collapsed back into a whole-line -/+ prefix.
func endsLine(s *token.Stream, e token.Element) bool {
	if e.Plen == 0 {
		return false
	}
	return s.Byte(e.PrintEnd()-1) == '\n'
}

// printSep reconstructs a "@@ -b,c +e,f @@" hunk header from a pair of
// matched chunk sentinels, the way wiggle's own printsep does when a diff
// walk crosses a hunk boundary that both sides agree on.
func printSep(w io.Writer, a, b token.Element) {
	fmt.Fprintf(w, "@@ -%d,%d +%d,%d @@\n", a.SentStart, a.SentLen, b.SentStart, b.SentLen)
}

// diffLines ports do_diff_lines: walk both files against csl, printing a
// '-' line for every A-only element, a '+' line for every B-only element,
// and a ' ' line (or a reconstructed hunk header, for matched sentinel
// pairs) for every element both sides share. color paints the -/+ markers
// and degrades to plain text at term.LevelNone.
func diffLines(w io.Writer, af, bf *token.File, csl lcs.CSL, color term.Level) int {
	a, b := 0, 0
	c := 0
	changed := 0
	for a < af.Len() || b < bf.Len() {
		if a < csl[c].A {
			if !af.Elements[a].IsSentinel {
				io.WriteString(w, color.Red("-"))
				w.Write(af.Elements[a].Print(af.Stream))
			}
			a++
			changed++
			continue
		}
		if b < csl[c].B {
			if !bf.Elements[b].IsSentinel {
				io.WriteString(w, color.Green("+"))
				w.Write(bf.Elements[b].Print(bf.Stream))
			}
			b++
			changed++
			continue
		}
		ea, eb := af.Elements[a], bf.Elements[b]
		if ea.IsSentinel {
			printSep(w, ea, eb)
		} else {
			io.WriteString(w, " ")
			w.Write(ea.Print(af.Stream))
		}
		a++
		b++
		if a >= csl[c].A+csl[c].Len {
			c++
		}
	}
	return changed
}

// diffWords is a simplified port of do_diff_words: the original bunches a
// run of changed words back into a whole "-line"/"+line" form whenever the
// run happens to span exactly one full line, falling back to inline
// "<<<--"/"-->>>" and "<<<++"/"++>>>" brackets otherwise. wiggle-go always
// uses the inline bracket form (dropping the whole-line special case) since
// CLI word-diff display is supplemental sugar, not part of the merge core;
// the bracket vocabulary and per-word emission order match the original
// exactly. color paints the bracket markers and degrades to plain text at
// term.LevelNone.
func diffWords(w io.Writer, af, bf *token.File, csl lcs.CSL, color term.Level) int {
	a, b := 0, 0
	c := 0
	changed := 0
	for a < af.Len() || b < bf.Len() {
		if a < csl[c].A {
			io.WriteString(w, color.Red("<<<--"))
			for a < csl[c].A {
				w.Write(af.Elements[a].Print(af.Stream))
				a++
				changed++
			}
			io.WriteString(w, color.Red("-->>>"))
			continue
		}
		if b < csl[c].B {
			io.WriteString(w, color.Green("<<<++"))
			for b < csl[c].B {
				w.Write(bf.Elements[b].Print(bf.Stream))
				b++
				changed++
			}
			io.WriteString(w, color.Green("++>>>"))
			continue
		}
		w.Write(af.Elements[a].Print(af.Stream))
		a++
		b++
		if a >= csl[c].A+csl[c].Len {
			c++
		}
	}
	return changed
}

// countLines reports how many elements in f end a line, used to synthesise
// the "@@ -1,N +1,M @@" header do_diff prints ahead of a word-mode diff
// that wasn't itself derived from an existing patch.
func countLines(f *token.File) int {
	n := 0
	for _, e := range f.Elements {
		if endsLine(f.Stream, e) {
			n++
		}
	}
	return n
}
