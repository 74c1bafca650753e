package format

import (
	"bytes"

	"github.com/wiggle-go/wiggle/internal/token"
)

// SplitMerge parses diff3 -m / merge -A conflict-marker output back into
// its three source streams. State machine: 0 outside any conflict, 1
// between "<<<<<<<" and "|||||||" (orig), 2 between "|||||||" and "======="
// (before), 3 between "=======" and ">>>>>>>" (after). The diff3 short form
// omits the "|||||||" section when the first and third sides are identical;
// that section's text is then used for both orig and before.
func SplitMerge(name string, data []byte) (orig, before, after *token.Stream) {
	lines := splitLinesKeepEnds(data)
	var origBuf, beforeBuf, afterBuf, headBuf []byte
	state := 0

	for _, l := range lines {
		switch {
		case bytes.HasPrefix(l, []byte("<<<<<<<")):
			state = 1
			headBuf = nil
		case bytes.HasPrefix(l, []byte("|||||||")):
			origBuf = append(origBuf, headBuf...)
			headBuf = nil
			state = 2
		case bytes.HasPrefix(l, []byte("=======")):
			if state == 1 {
				origBuf = append(origBuf, headBuf...)
				beforeBuf = append(beforeBuf, headBuf...)
				headBuf = nil
			}
			state = 3
		case bytes.HasPrefix(l, []byte(">>>>>>>")):
			state = 0
		default:
			switch state {
			case 0:
				origBuf = append(origBuf, l...)
				beforeBuf = append(beforeBuf, l...)
				afterBuf = append(afterBuf, l...)
			case 1:
				headBuf = append(headBuf, l...)
			case 2:
				beforeBuf = append(beforeBuf, l...)
			case 3:
				afterBuf = append(afterBuf, l...)
			}
		}
	}

	return token.NewStream(name+".orig", origBuf),
		token.NewStream(name+".before", beforeBuf),
		token.NewStream(name+".after", afterBuf)
}
