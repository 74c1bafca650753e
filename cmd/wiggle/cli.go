// Command wiggle applies a rejected patch against a possibly-diverged
// original file, wiggling hunks into place and isolating any real conflicts.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Globals carries the flags every mode shares, mirroring the teacher's
// Globals/Debuger split (pkg/command.Globals) but sized for a single-binary
// driver instead of a subcommand tree.
type Globals struct {
	Verbose bool `short:"v" help:"Make the operation more talkative."`
	Quiet   bool `short:"q" help:"Suppress the unresolved-conflict and already-applied messages."`
}

func (g *Globals) DbgPrint(format string, args ...any) {
	if !g.Verbose {
		return
	}
	dbgPrint(format, args...)
}

// CLI is wiggle-go's flat flag surface (spec.md §6.2): one binary, one
// mode, no subcommands. Kong's mutually-exclusive group enforces that at
// most one of extract/diff/merge/browse is selected.
type CLI struct {
	Globals

	Extract bool `name:"extract" xor:"mode" help:"Extract the before/after sides of a patch or merge."`
	Diff    bool `name:"diff" xor:"mode" help:"Create a patch from two files."`
	Merge   bool `name:"merge" xor:"mode" help:"Merge a patch into a file, wiggling around changes."`
	Browse  bool `name:"browse" xor:"mode" help:"Interactively browse a merge (not implemented; reports an error)."`

	Words bool `name:"words" xor:"granularity" help:"Tokenise by word (default)."`
	Lines bool `name:"lines" xor:"granularity" help:"Tokenise by line instead of by word."`

	Select1 bool `name:"select1" short:"1" help:"Select the first (original) stream for --extract."`
	Select2 bool `name:"select2" short:"2" help:"Select the second (before) stream for --extract."`
	Select3 bool `name:"select3" short:"3" help:"Select the third (after) stream for --extract."`

	Patch      bool   `name:"p" help:"Treat the last argument as a patch file."`
	PatchStrip string `name:"p-strip" help:"Path components to strip for -p (auto-detected when omitted)."`

	Replace      bool `name:"replace" short:"r" help:"Replace the original file with the merge result."`
	Reverse      bool `name:"reverse" short:"R" help:"Reverse the sense of the patch before applying."`
	NoIgnore     bool `name:"no-ignore" short:"i" help:"Do not treat already-applied hunks specially."`
	IgnoreBlanks bool `name:"ignore-blanks" short:"b" help:"Ignore changes in blank runs when tokenising."`
	ShowWiggles  bool `name:"show-wiggles" short:"W" help:"Report wiggled (offset but clean) hunks as a distinct count."`
	NoBackup     bool `name:"no-backup" help:"Do not write a .porig backup before --replace."`
	NonSpace     bool `name:"non-space" help:"Word-tokenise on non-space runs instead of identifier runs."`
	Watch        bool `name:"watch" help:"Re-run --merge whenever the patch or original file changes (CLI convenience, not part of the core pipeline)."`

	Files []string `arg:"" optional:"" name:"file" help:"Original file, patch/merge file, or (--diff) the two files to compare."`
}

func parseCLI(args []string) (*CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("wiggle"),
		kong.Description("Apply a rejected patch, wiggling hunks around surrounding changes."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fatalf(3, "wiggle: internal error: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		// Usage errors exit 2 per spec.md §6.2/§7, not kong's default 1.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return &cli, ctx
}
