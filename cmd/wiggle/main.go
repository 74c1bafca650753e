package main

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/wiggle-go/wiggle/internal/trace"
)

func main() {
	cli, _ := parseCLI(os.Args[1:])
	g := &cli.Globals
	if g.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	modeCount := boolCount(cli.Extract, cli.Diff, cli.Merge, cli.Browse)
	if modeCount > 1 {
		fatalf(2, "wiggle: only one of --extract, --diff, --merge, --browse may be given")
	}
	if cli.Words && cli.Lines {
		fatalf(2, "wiggle: cannot select both words and lines.")
	}
	if cli.Select1 && cli.Select2 || cli.Select1 && cli.Select3 || cli.Select2 && cli.Select3 {
		fatalf(2, "wiggle: can only select one of -1, -2, -3")
	}
	if !cli.Extract && !cli.Diff && selected(cli) != 0 {
		fatalf(2, "wiggle: -1, -2 or -3 only allowed with --extract or --diff")
	}
	if cli.Replace && !cli.Merge {
		fatalf(2, "wiggle: --replace only allowed with --merge")
	}

	if cli.Watch {
		runWatch(cli, g)
		return
	}

	os.Exit(dispatch(cli, g))
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func dispatch(cli *CLI, g *Globals) int {
	switch {
	case cli.Extract:
		return runExtract(cli, g)
	case cli.Diff:
		return runDiff(cli, g)
	case cli.Browse:
		return runBrowse(cli, g)
	default:
		return runMerge(cli, g)
	}
}

// runWatch is CLI-only convenience sugar (SPEC_FULL's supplemental feature,
// not part of the core pipeline): re-run a --merge whenever the patch file
// or the original changes, so a developer can leave wiggle running while
// iterating on a conflicting patch by hand.
func runWatch(cli *CLI, g *Globals) {
	if !cli.Merge {
		fatalf(2, "wiggle: --watch is only meaningful with --merge")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fatalf(2, "wiggle: could not start file watcher: %v", err)
	}
	defer watcher.Close()
	for _, f := range cli.Files {
		if err := watcher.Add(f); err != nil {
			trace.DbgPrint("watch: cannot watch %s: %v", f, err)
		}
	}
	runMerge(cli, g)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				trace.DbgPrint("watch: %s changed, re-merging", ev.Name)
				runMerge(cli, g)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			trace.DbgPrint("watch: %v", err)
		}
	}
}
