package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wiggle-go/wiggle/internal/format"
	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/merge"
	"github.com/wiggle-go/wiggle/internal/pdiff"
	"github.com/wiggle-go/wiggle/internal/render"
	"github.com/wiggle-go/wiggle/internal/term"
	"github.com/wiggle-go/wiggle/internal/textio"
	"github.com/wiggle-go/wiggle/internal/token"
)

// granularity resolves the tokenisation Options for the selected mode. The
// original CLI's default is word granularity everywhere except when --lines
// is given explicitly (do_merge: `if (obj == 'l') blanks |= ByLine; else
// blanks |= ByWord`, and main()'s `if (mode != 'm' && !obj) obj = 'w'`); we
// reproduce that default rather than the more expected "lines by default".
func granularity(cli *CLI) token.Options {
	g := token.ByWord
	if cli.Lines {
		g = token.ByLine
	}
	return token.Options{
		Granularity:  g,
		IgnoreBlanks: cli.IgnoreBlanks,
		NonSpace:     cli.NonSpace,
	}
}

func loadFile(path string) ([]byte, os.FileInfo, error) {
	return textio.ReadFile(path)
}

// writeStripped writes f's content to w, dropping any chunk sentinels a
// patch split embedded — extract's output is always plain reconstructed
// text, never the internal sentinel-delimited form.
func writeStripped(w io.Writer, f *token.File) error {
	for _, e := range f.Elements {
		if e.IsSentinel {
			continue
		}
		if _, err := w.Write(e.Print(f.Stream)); err != nil {
			return err
		}
	}
	return nil
}

func runExtract(cli *CLI, g *Globals) int {
	if len(cli.Files) == 0 {
		fmt.Fprintln(os.Stderr, "wiggle: no file given for --extract")
		return 2
	}
	if len(cli.Files) > 1 {
		fmt.Fprintln(os.Stderr, "wiggle: only give one file for --extract")
		return 2
	}
	which := selected(cli)
	if which == 0 {
		fmt.Fprintln(os.Stderr, "wiggle: must specify -1, -2 or -3 with --extract")
		return 2
	}
	data, _, err := loadFile(cli.Files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[0], err)
		return 2
	}

	var streams [3]*token.Stream
	if cli.Patch {
		before, after, chunks := format.SplitPatch(cli.Files[0], data)
		if chunks == 0 {
			fmt.Fprintf(os.Stderr, "wiggle: No chunk found in patch: %s\n", cli.Files[0])
			return 0
		}
		if which == 3 {
			fmt.Fprintln(os.Stderr, "wiggle: cannot extract -3 from a patch.")
			return 2
		}
		streams[0], streams[1] = before, after
	} else {
		orig, before, after := format.SplitMerge(cli.Files[0], data)
		streams[0], streams[1], streams[2] = orig, before, after
	}

	s := streams[which-1]
	if s == nil {
		fmt.Fprintf(os.Stderr, "wiggle: %s has no -%d component.\n", cli.Files[0], which)
		return 2
	}
	f := token.Tokenize(s, token.Options{Granularity: token.ByLine})
	if err := writeStripped(os.Stdout, f); err != nil {
		fmt.Fprintf(os.Stderr, "wiggle: write error: %v\n", err)
		return 2
	}
	return 0
}

func selected(cli *CLI) int {
	switch {
	case cli.Select1:
		return 1
	case cli.Select2:
		return 2
	case cli.Select3:
		return 3
	default:
		return 0
	}
}

func runDiff(cli *CLI, g *Globals) int {
	opts := granularity(cli)
	var a, b *token.File
	var chunks1, chunks2 int

	switch len(cli.Files) {
	case 0:
		fmt.Fprintln(os.Stderr, "wiggle: no file given for --diff")
		return 2
	case 1:
		data, _, err := loadFile(cli.Files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[0], err)
			return 2
		}
		before, after, chunks := format.SplitPatch(cli.Files[0], data)
		if chunks == 0 {
			fmt.Fprintf(os.Stderr, "wiggle: couldn't parse patch %s\n", cli.Files[0])
			return 2
		}
		chunks1, chunks2 = chunks, chunks
		a = token.Tokenize(before, opts)
		b = token.Tokenize(after, opts)
	case 2:
		data0, _, err := loadFile(cli.Files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[0], err)
			return 2
		}
		a = token.Tokenize(token.NewStream(cli.Files[0], data0), opts)
		if cli.Patch {
			data1, _, err := loadFile(cli.Files[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "wiggle: cannot load patch '%s' - %v\n", cli.Files[1], err)
				return 2
			}
			_, after, chunks := format.SplitPatch(cli.Files[1], data1)
			chunks2 = chunks
			b = token.Tokenize(after, opts)
		} else {
			data1, _, err := loadFile(cli.Files[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[1], err)
				return 2
			}
			b = token.Tokenize(token.NewStream(cli.Files[1], data1), opts)
		}
	default:
		fmt.Fprintln(os.Stderr, "wiggle: too many files given for --diff")
		return 2
	}

	if cli.Reverse {
		a, b = b, a
	}

	var csl lcs.CSL
	if chunks2 != 0 && chunks1 == 0 {
		csl = pdiff.Patch(a, b, chunks2)
	} else {
		csl = lcs.Diff(a, b)
	}

	if opts.Granularity == token.ByLine {
		if chunks1 == 0 {
			fmt.Printf("@@ -1,%d +1,%d @@\n", a.Len(), b.Len())
		}
		diffLines(os.Stdout, a, b, csl, term.StdoutLevel)
	} else {
		if chunks1 == 0 {
			fmt.Printf("@@ -1,%d +1,%d @@\n", countLines(a), countLines(b))
		}
		diffWords(os.Stdout, a, b, csl, term.StdoutLevel)
	}
	return 0
}

// mergeResult holds one merge's outcome, enough to render, summarise, and
// (under --replace) commit to disk.
type mergeResult struct {
	af, bf, cf       *token.File
	entries          []merge.Entry
	conflicts        int
	wiggles          int
	ignored          int
	chunks           int
}

func runMergeOne(cli *CLI, opts token.Options, af, bf, cf *token.File, chunks int) *mergeResult {
	if cli.Reverse {
		bf, cf = cf, bf
	}
	csl1 := lcs.Diff(af, bf)
	if chunks > 0 {
		csl1 = pdiff.Patch(af, bf, chunks)
	}
	csl2 := lcs.Diff(bf, cf)

	ignoreAlready := !cli.NoIgnore
	entries, _ := merge.Walk(af, bf, cf, csl1, csl2, ignoreAlready)
	merge.Isolate(af, bf, cf, entries, opts.Granularity == token.ByWord, cli.ShowWiggles)

	return &mergeResult{af: af, bf: bf, cf: cf, entries: entries, chunks: chunks}
}

func (r *mergeResult) render(w io.Writer, words, ignoreAlready bool, color term.Level) error {
	conflicts, wiggles, ignored, err := render.Render(w, r.af, r.bf, r.cf, r.entries, words, ignoreAlready, color)
	r.conflicts, r.wiggles, r.ignored = conflicts, wiggles, ignored
	return err
}

// loadMergeSet resolves the three streams do_merge's switch over argc
// produces: a bare merge-marker file (1 arg), an original plus a patch
// (2 args), or three independent files (3 args).
func loadMergeSet(cli *CLI, opts token.Options) (af, bf, cf *token.File, chunks int, exitCode int) {
	switch len(cli.Files) {
	case 0:
		fmt.Fprintln(os.Stderr, "wiggle: no files given for --merge")
		return nil, nil, nil, 0, 2
	case 1:
		data, _, err := loadFile(cli.Files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[0], err)
			return nil, nil, nil, 0, 2
		}
		orig, before, after := format.SplitMerge(cli.Files[0], data)
		if orig.Len() == 0 && before.Len() == 0 && after.Len() == 0 {
			fmt.Fprintf(os.Stderr, "wiggle: merge file %s looks bad.\n", cli.Files[0])
			return nil, nil, nil, 0, 2
		}
		return token.Tokenize(orig, opts), token.Tokenize(before, opts), token.Tokenize(after, opts), 0, 0
	case 2:
		data0, _, err := loadFile(cli.Files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[0], err)
			return nil, nil, nil, 0, 2
		}
		data1, _, err := loadFile(cli.Files[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", cli.Files[1], err)
			return nil, nil, nil, 0, 2
		}
		before, after, chunks := format.SplitPatch(cli.Files[1], data1)
		if chunks == 0 {
			fmt.Fprintf(os.Stderr, "wiggle: couldn't parse patch %s\n", cli.Files[1])
			return nil, nil, nil, 0, 2
		}
		af = token.Tokenize(token.NewStream(cli.Files[0], data0), opts)
		return af, token.Tokenize(before, opts), token.Tokenize(after, opts), chunks, 0
	case 3:
		var files [3]*token.File
		for i, p := range cli.Files {
			data, _, err := loadFile(p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", p, err)
				return nil, nil, nil, 0, 2
			}
			files[i] = token.Tokenize(token.NewStream(p, data), opts)
		}
		return files[0], files[1], files[2], 0, 0
	default:
		fmt.Fprintln(os.Stderr, "wiggle: too many files given for --merge")
		return nil, nil, nil, 0, 2
	}
}

func runMerge(cli *CLI, g *Globals) int {
	opts := granularity(cli)

	if cli.Patch {
		return runMultiMerge(cli, opts)
	}

	af, bf, cf, chunks, code := loadMergeSet(cli, opts)
	if code != 0 {
		return code
	}

	res := runMergeOne(cli, opts, af, bf, cf, chunks)

	var out io.Writer = os.Stdout
	var rw *replaceWriter
	colorLevel := term.StdoutLevel
	if cli.Replace {
		if len(cli.Files) == 0 {
			fmt.Fprintln(os.Stderr, "wiggle: --replace requires a target file")
			return 2
		}
		var err error
		rw, err = newReplaceWriter(cli.Files[0], cli.NoBackup)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		out = rw
		colorLevel = term.LevelNone
	}

	if err := res.render(out, opts.Granularity == token.ByWord, !cli.NoIgnore, colorLevel); err != nil {
		if rw != nil {
			rw.Abort()
		}
		fmt.Fprintf(os.Stderr, "wiggle: write error: %v\n", err)
		return 2
	}

	if rw != nil {
		if err := rw.Commit(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	if !cli.Quiet && res.conflicts > 0 {
		fmt.Fprintf(os.Stderr, "%d unresolved conflict%s found\n", res.conflicts, plural(res.conflicts))
	}
	if !cli.Quiet && res.ignored > 0 {
		fmt.Fprintf(os.Stderr, "%d already-applied change%s ignored\n", res.ignored, plural(res.ignored))
	}
	if g.Verbose {
		dbgPrint("%s", summaryLine(cli.Files[0], int64(af.Stream.Len()), res.chunks, res.conflicts, res.wiggles, res.ignored))
	}

	if res.conflicts > 0 {
		return 1
	}
	return 0
}

// runMultiMerge ports multi_merge: -p in merge mode treats its one argument
// as a multi-file patch, determines the shared path-strip depth, and runs
// one merge per file it names, each requiring --replace (there is no single
// stdout to send N results to).
func runMultiMerge(cli *CLI, opts token.Options) int {
	if !cli.Replace {
		fmt.Fprintln(os.Stderr, "wiggle: -p in merge mode requires -r")
		return 2
	}
	if len(cli.Files) != 1 {
		fmt.Fprintln(os.Stderr, "wiggle: -p in merge mode requires exactly one file")
		return 2
	}
	data, _, err := loadFile(cli.Files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "wiggle: cannot open %s\n", cli.Files[0])
		return 2
	}
	subs := splitMultiFilePatch(data)
	if len(subs) == 0 {
		fmt.Fprintf(os.Stderr, "wiggle: no per-file patches found in %s\n", cli.Files[0])
		return 2
	}

	strip := -1
	if cli.PatchStrip != "" {
		if n, err := parseStrip(cli.PatchStrip); err == nil {
			strip = n
		}
	}
	if strip < 0 {
		names := make([]string, len(subs))
		for i, s := range subs {
			names[i] = s.Name
		}
		n, err := autoStrip(names)
		if err != nil {
			fmt.Fprintln(os.Stderr, "wiggle: aborting")
			return 2
		}
		strip = n
	}

	rv := 0
	for _, sp := range subs {
		target := stripPath(sp.Name, strip)
		if target == "" {
			fmt.Fprintf(os.Stderr, "wiggle: cannot strip %d segments from %s\n", strip, sp.Name)
			rv |= 2
			continue
		}
		oData, _, err := loadFile(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wiggle: cannot load file '%s' - %v\n", target, err)
			rv |= 2
			continue
		}
		before, after, chunks := format.SplitPatch(target, sp.Body)
		if chunks == 0 {
			fmt.Fprintf(os.Stderr, "wiggle: couldn't parse patch for %s\n", target)
			rv |= 2
			continue
		}
		af := token.Tokenize(token.NewStream(target, oData), opts)
		bf := token.Tokenize(before, opts)
		cf := token.Tokenize(after, opts)

		res := runMergeOne(cli, opts, af, bf, cf, chunks)
		rw, err := newReplaceWriter(target, cli.NoBackup)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			rv |= 2
			continue
		}
		if err := res.render(rw, opts.Granularity == token.ByWord, !cli.NoIgnore, term.LevelNone); err != nil {
			rw.Abort()
			fmt.Fprintf(os.Stderr, "wiggle: write error: %v\n", err)
			rv |= 2
			continue
		}
		if err := rw.Commit(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			rv |= 2
			continue
		}
		if !cli.Quiet && res.conflicts > 0 {
			fmt.Fprintf(os.Stderr, "%s: %d unresolved conflict%s found\n", target, res.conflicts, plural(res.conflicts))
		}
		if res.conflicts > 0 {
			rv |= 1
		}
	}
	return rv
}

func parseStrip(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func runBrowse(cli *CLI, g *Globals) int {
	fmt.Fprintln(os.Stderr, "wiggle: --browse is not implemented in this build")
	return 2
}
