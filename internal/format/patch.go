// Package format implements the stream producers that turn external patch
// and merge-marker text into the synthetic, sentinel-delimited streams the
// rest of wiggle-go operates on.
package format

import (
	"regexp"
	"strconv"

	"github.com/wiggle-go/wiggle/internal/token"
)

var (
	unifiedHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
	ctxBeforeHdr  = regexp.MustCompile(`^\*\*\* (\d+)(?:,(\d+))? \*\*\*\*`)
	ctxAfterHdr   = regexp.MustCompile(`^--- (\d+)(?:,(\d+))? ----`)
)

// SplitPatch parses a unified or context-format patch into its before/after
// streams. Each hunk contributes a chunk sentinel to both streams, followed
// by its '-'/'!' lines to before, its '+'/'!' lines to after, and its
// context lines to both. Returns chunks == 0 on parse failure (no
// recognisable hunk found), per the ParseError contract: callers reclassify
// the input as an ordinary file rather than treating this as fatal.
func SplitPatch(name string, data []byte) (before, after *token.Stream, chunks int) {
	lines := splitLinesKeepEnds(data)
	var beforeBuf, afterBuf []byte
	chunk := 0

	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := unifiedHeader.FindSubmatch(line); m != nil {
			start := atoiDefault(m[1], 1)
			count := atoiDefault(m[2], 1)
			sent := token.FormatSentinel(chunk, start-1, count)
			beforeBuf = append(beforeBuf, sent...)
			afterBuf = append(afterBuf, sent...)
			chunk++
			i++
			for i < len(lines) {
				l := lines[i]
				if len(l) == 0 {
					break
				}
				switch l[0] {
				case '-':
					beforeBuf = append(beforeBuf, l[1:]...)
				case '+':
					afterBuf = append(afterBuf, l[1:]...)
				case ' ':
					beforeBuf = append(beforeBuf, l[1:]...)
					afterBuf = append(afterBuf, l[1:]...)
				case '\\':
					// "\ No newline at end of file" — not content.
				default:
					goto nextLine
				}
				i++
			}
		nextLine:
			continue
		}

		if m := ctxBeforeHdr.FindSubmatch(line); m != nil {
			start := atoiDefault(m[1], 1)
			count := atoiDefault(m[2], 1)
			sent := token.FormatSentinel(chunk, start-1, count)
			beforeBuf = append(beforeBuf, sent...)
			afterBuf = append(afterBuf, sent...)
			chunk++
			i++
			for i < len(lines) && !ctxAfterHdr.Match(lines[i]) {
				l := lines[i]
				if len(l) >= 2 {
					switch l[0] {
					case '!', '-':
						beforeBuf = append(beforeBuf, l[2:]...)
					case ' ':
						beforeBuf = append(beforeBuf, l[2:]...)
						afterBuf = append(afterBuf, l[2:]...)
					}
				}
				i++
			}
			if i < len(lines) {
				i++ // skip the "--- l,c ----" marker itself
			}
			for i < len(lines) {
				l := lines[i]
				if len(l) >= 2 && (l[0] == '!' || l[0] == '+') {
					afterBuf = append(afterBuf, l[2:]...)
					i++
					continue
				}
				if len(l) >= 2 && l[0] == ' ' {
					// Context already emitted from the before block.
					i++
					continue
				}
				break
			}
			continue
		}

		i++
	}

	if chunk == 0 {
		return nil, nil, 0
	}
	return token.NewStream(name+".orig", beforeBuf), token.NewStream(name+".new", afterBuf), chunk
}

func atoiDefault(m []byte, dv int) int {
	if len(m) == 0 {
		return dv
	}
	n, err := strconv.Atoi(string(m))
	if err != nil {
		return dv
	}
	return n
}

// splitLinesKeepEnds splits data into lines, each including its trailing
// newline (the final line may lack one).
func splitLinesKeepEnds(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i+1])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
