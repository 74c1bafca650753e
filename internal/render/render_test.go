package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/merge"
	"github.com/wiggle-go/wiggle/internal/term"
	"github.com/wiggle-go/wiggle/internal/token"
)

func lines(t *testing.T, name, text string) *token.File {
	t.Helper()
	return token.Tokenize(token.NewStream(name, []byte(text)), token.Options{Granularity: token.ByLine})
}

func TestRenderCleanMerge(t *testing.T) {
	a := lines(t, "a", "one\ntwo\nthree\n")
	b := lines(t, "b", "one\ntwo\nthree\n")
	c := lines(t, "c", "one\ntwo\nthree\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, _ := merge.Walk(a, b, c, csl1, csl2, true)
	merge.Isolate(a, b, c, entries, false, false)

	var buf strings.Builder
	conflicts, wiggles, ignored, err := Render(&buf, a, b, c, entries, false, true, term.LevelNone)
	require.NoError(t, err)
	assert.Equal(t, 0, conflicts)
	assert.Equal(t, 0, wiggles)
	assert.Equal(t, 0, ignored)
	assert.Equal(t, "one\ntwo\nthree\n", buf.String())
}

func TestRenderConflictMarkers(t *testing.T) {
	a := lines(t, "a", "ctx1\nctx2\nctx3\none\ntwo\nthree\nctx4\nctx5\nctx6\n")
	b := lines(t, "b", "ctx1\nctx2\nctx3\none\nTWO-B\nthree\nctx4\nctx5\nctx6\n")
	c := lines(t, "c", "ctx1\nctx2\nctx3\none\nTWO-C\nthree\nctx4\nctx5\nctx6\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, _ := merge.Walk(a, b, c, csl1, csl2, true)
	merge.Isolate(a, b, c, entries, false, false)

	var buf strings.Builder
	conflicts, _, _, err := Render(&buf, a, b, c, entries, false, true, term.LevelNone)
	require.NoError(t, err)
	assert.Equal(t, 1, conflicts)
	out := buf.String()
	assert.Contains(t, out, "<<<<<<< found\n")
	assert.Contains(t, out, "||||||| expected\n")
	assert.Contains(t, out, "=======\n")
	assert.Contains(t, out, ">>>>>>> replacement\n")
}

func TestRenderConflictMarkersColorized(t *testing.T) {
	a := lines(t, "a", "ctx1\nctx2\nctx3\none\ntwo\nthree\nctx4\nctx5\nctx6\n")
	b := lines(t, "b", "ctx1\nctx2\nctx3\none\nTWO-B\nthree\nctx4\nctx5\nctx6\n")
	c := lines(t, "c", "ctx1\nctx2\nctx3\none\nTWO-C\nthree\nctx4\nctx5\nctx6\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, _ := merge.Walk(a, b, c, csl1, csl2, true)
	merge.Isolate(a, b, c, entries, false, false)

	var buf strings.Builder
	_, _, _, err := Render(&buf, a, b, c, entries, false, true, term.Level256)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, term.Level256.Red("<<<<<<< found"))
	assert.Contains(t, out, term.Level256.Yellow("||||||| expected"))
	assert.Contains(t, out, term.Level256.Blue(">>>>>>> replacement"))
}
