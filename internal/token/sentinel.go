package token

import "fmt"

// Chunk sentinels mark hunk boundaries inside synthetic patch/merge streams:
// a NUL byte followed by three 5-digit zero-padded decimal fields separated
// by spaces and terminated by a newline, e.g. "\x0000003 00012 00004\n" for
// chunk 3 starting at source line 12, spanning 4 lines. Consumers must treat
// these as opaque elements that compare by their parsed chunk number, never
// by text (see token.Equal).

// FormatSentinel renders a chunk sentinel for (chunk, start, length).
func FormatSentinel(chunk, start, length int) []byte {
	return []byte(fmt.Sprintf("\x00%05d %05d %05d\n", chunk, start, length))
}

// ParseSentinel reads a chunk sentinel starting at b[0] == 0. It returns the
// parsed triple and the number of bytes consumed, or ok=false if b does not
// hold a well-formed sentinel.
func ParseSentinel(b []byte) (chunk, start, length, n int, ok bool) {
	if len(b) == 0 || b[0] != 0 {
		return 0, 0, 0, 0, false
	}
	rest := b[1:]
	nl := -1
	for i, c := range rest {
		if c == '\n' {
			nl = i
			break
		}
	}
	if nl < 0 {
		return 0, 0, 0, 0, false
	}
	line := rest[:nl]
	if _, err := fmt.Sscanf(string(line), "%05d %05d %05d", &chunk, &start, &length); err != nil {
		return 0, 0, 0, 0, false
	}
	return chunk, start, length, nl + 2, true
}
