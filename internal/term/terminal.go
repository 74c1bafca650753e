// Package term detects terminal colour capability and renders ANSI colour
// the way wiggle-go's conflict markers and --diff output are painted.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Level is the colour depth a stream supports.
type Level int

const (
	LevelNone Level = iota
	Level256
	Level16M
)

var (
	StderrLevel Level
	StdoutLevel Level
)

func simpleAtob(s string, dv bool) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return dv
}

func detectLevel() Level {
	if simpleAtob(os.Getenv("WIGGLE_FORCE_TRUECOLOR"), false) {
		return Level16M
	}
	if simpleAtob(os.Getenv("NO_COLOR"), false) {
		return LevelNone
	}
	if _, ok := os.LookupEnv("WT_SESSION"); ok {
		return Level16M
	}
	colorTermEnv := os.Getenv("COLORTERM")
	termEnv := os.Getenv("TERM")
	switch {
	case strings.Contains(termEnv, "24bit"), strings.Contains(termEnv, "truecolor"),
		strings.Contains(colorTermEnv, "24bit"), strings.Contains(colorTermEnv, "truecolor"):
		return Level16M
	case strings.Contains(termEnv, "256"), strings.Contains(colorTermEnv, "256"):
		return Level256
	}
	return LevelNone
}

func init() {
	level := detectLevel()
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		StderrLevel = level
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		StdoutLevel = level
	}
}

// IsTerminal reports whether fd refers to a terminal, including Cygwin/MSYS2 ptys.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
