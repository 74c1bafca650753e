package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/term"
	"github.com/wiggle-go/wiggle/internal/token"
)

func TestStripPath(t *testing.T) {
	assert.Equal(t, "b/file.c", stripPath("a/b/file.c", 1))
	assert.Equal(t, "file.c", stripPath("a/b/file.c", 2))
	assert.Equal(t, "", stripPath("file.c", 1))
	assert.Equal(t, "file.c", stripPath("file.c", 0))
}

func TestSplitMultiFilePatch(t *testing.T) {
	data := []byte("--- a/x.c\n+++ x.c\n@@ -1,1 +1,1 @@\n-old\n+new\n" +
		"--- a/y.c\n+++ y.c\n@@ -1,1 +1,1 @@\n-foo\n+bar\n")
	subs := splitMultiFilePatch(data)
	require.Len(t, subs, 2)
	assert.Equal(t, "x.c", subs[0].Name)
	assert.Equal(t, "y.c", subs[1].Name)
	assert.Contains(t, string(subs[0].Body), "-old\n")
	assert.Contains(t, string(subs[1].Body), "+bar\n")
}

func TestDiffLinesClean(t *testing.T) {
	af := token.Tokenize(token.NewStream("a", []byte("one\ntwo\nthree\n")), token.Options{Granularity: token.ByLine})
	bf := token.Tokenize(token.NewStream("b", []byte("one\nTWO\nthree\n")), token.Options{Granularity: token.ByLine})
	csl := lcs.Diff(af, bf)
	var buf bytes.Buffer
	changed := diffLines(&buf, af, bf, csl, term.LevelNone)
	assert.Greater(t, changed, 0)
	out := buf.String()
	assert.Contains(t, out, "-two\n")
	assert.Contains(t, out, "+TWO\n")
	assert.Contains(t, out, " one\n")
}

func TestDiffLinesColorized(t *testing.T) {
	af := token.Tokenize(token.NewStream("a", []byte("one\ntwo\nthree\n")), token.Options{Granularity: token.ByLine})
	bf := token.Tokenize(token.NewStream("b", []byte("one\nTWO\nthree\n")), token.Options{Granularity: token.ByLine})
	csl := lcs.Diff(af, bf)
	var buf bytes.Buffer
	diffLines(&buf, af, bf, csl, term.Level256)
	out := buf.String()
	assert.Contains(t, out, term.Level256.Red("-"))
	assert.Contains(t, out, term.Level256.Green("+"))
}

func TestSummaryLine(t *testing.T) {
	s := summaryLine("foo.c", 42, 2, 1, 0, 0)
	assert.Contains(t, s, "foo.c")
	assert.Contains(t, s, "2 hunks")
	assert.Contains(t, s, "1 conflict")
}
