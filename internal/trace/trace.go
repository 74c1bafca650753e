package trace

import (
	"fmt"
	"os"
	"strings"

	"github.com/wiggle-go/wiggle/internal/term"
)

type Debuger interface {
	DbgPrint(format string, args ...any)
}

func NewDebuger(verbose bool) Debuger {
	return &debuger{verbose: verbose}
}

type debuger struct {
	verbose bool
}

// DbgPrint writes a "* "-prefixed debug line per message line to stderr,
// painted yellow through the caller's detected colour depth so it reads
// the same as a wiggled-conflict "expected" marker.
func DbgPrint(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	for _, s := range strings.Split(message, "\n") {
		fmt.Fprintln(os.Stderr, term.StderrLevel.Yellow("* "+s))
	}
}

func (d debuger) DbgPrint(format string, args ...any) {
	if !d.verbose {
		return
	}
	DbgPrint(format, args...)
}

var (
	_ Debuger = &debuger{}
)
