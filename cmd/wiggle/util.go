package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/wiggle-go/wiggle/internal/trace"
)

func dbgPrint(format string, args ...any) {
	trace.DbgPrint(format, args...)
}

// fatalf logs the message through logrus the way trace.Errorf does for
// internal callers, then exits with code, the driver's sole path to
// terminating the process outside of normal return values.
func fatalf(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logrus.Error(msg)
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// summaryLine renders the --verbose per-file report: byte size of the
// original, hunk count, and conflict/wiggle/ignored tallies, using
// go-humanize for the byte count the way a CLI status line reads at a
// glance rather than as a raw integer.
func summaryLine(name string, size int64, chunks, conflicts, wiggles, ignored int) string {
	s := fmt.Sprintf("%s: %s, %d hunk%s", name, humanize.Bytes(uint64(size)), chunks, plural(chunks))
	if conflicts > 0 {
		s += fmt.Sprintf(", %d conflict%s", conflicts, plural(conflicts))
	}
	if wiggles > 0 {
		s += fmt.Sprintf(", %d wiggle%s", wiggles, plural(wiggles))
	}
	if ignored > 0 {
		s += fmt.Sprintf(", %d already-applied change%s ignored", ignored, plural(ignored))
	}
	return s
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
