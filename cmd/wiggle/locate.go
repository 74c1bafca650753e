package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// stripCount mirrors parse.c's get_strip/set_prefix: given a candidate patch
// target path, find how many leading '/'-separated components must be
// dropped before the remainder names a file that exists on disk. Returns -1
// if no prefix length (0..3) succeeds.
func stripCount(file string) int {
	for strip := 0; strip < 4; strip++ {
		candidate := stripPath(file, strip)
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return strip
		}
	}
	return -1
}

// stripPath drops n leading path components from file, the way set_prefix
// walks successive '/' separators.
func stripPath(file string, n int) string {
	p := file
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(p, '/')
		if idx < 0 {
			return ""
		}
		p = p[idx+1:]
		for len(p) > 0 && p[0] == '/' {
			p = p[1:]
		}
	}
	return p
}

// autoStrip picks a single strip count shared by every candidate path,
// trying each of the first 4 candidates in turn until one resolves,
// exactly as set_prefix does for a whole plist.
func autoStrip(candidates []string) (int, error) {
	for i := 0; i < 4 && i < len(candidates); i++ {
		if s := stripCount(candidates[i]); s >= 0 {
			return s, nil
		}
	}
	return -1, fmt.Errorf("cannot find files to patch: please specify --p-strip")
}

// subPatch is one file's worth of a multi-file patch: the bytes of its hunks
// alongside the target name found on its "+++ " line.
type subPatch struct {
	Name  string
	Body  []byte
}

// splitMultiFilePatch locates each "+++ <name>" hunk-group boundary in a
// multi-file unified patch and slices out that file's own hunks, the way
// parse_patch scans for "\n+++ " to start a sub-patch and "\n--- " to end
// the preceding one. Context-style patches (whose per-file boundary is
// "*** <name> ****" either side) are not handled here: -p is documented
// against unified multi-file patches, matching the common `diff -ru` output
// wiggle's own test corpus exercises.
func splitMultiFilePatch(data []byte) []subPatch {
	lines := bytes.SplitAfter(data, []byte("\n"))
	var out []subPatch
	var curName string
	var curBody []byte
	flush := func() {
		if curName != "" {
			out = append(out, subPatch{Name: curName, Body: curBody})
		}
	}
	for i, l := range lines {
		if bytes.HasPrefix(l, []byte("--- ")) && i+1 < len(lines) && bytes.HasPrefix(lines[i+1], []byte("+++ ")) {
			flush()
			curName = ""
			curBody = nil
			continue
		}
		if bytes.HasPrefix(l, []byte("+++ ")) {
			flush()
			curName = patchTargetName(l)
			curBody = nil
			continue
		}
		if curName != "" {
			curBody = append(curBody, l...)
		}
	}
	flush()
	return out
}

// patchTargetName extracts the path from a "+++ path\tdate" or "+++ path"
// line, stopping at the first tab, space, or newline.
func patchTargetName(line []byte) string {
	s := bytes.TrimPrefix(line, []byte("+++ "))
	sc := bufio.NewScanner(bytes.NewReader(s))
	sc.Split(bufio.ScanWords)
	if sc.Scan() {
		return sc.Text()
	}
	return strings.TrimSpace(string(s))
}
