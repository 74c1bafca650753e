package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiggle-go/wiggle/internal/lcs"
	"github.com/wiggle-go/wiggle/internal/token"
)

func lines(t *testing.T, name, text string) *token.File {
	t.Helper()
	return token.Tokenize(token.NewStream(name, []byte(text)), token.Options{Granularity: token.ByLine})
}

func TestWalkAllUnchanged(t *testing.T) {
	a := lines(t, "a", "one\ntwo\nthree\n")
	b := lines(t, "b", "one\ntwo\nthree\n")
	c := lines(t, "c", "one\ntwo\nthree\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, ignored := Walk(a, b, c, csl1, csl2, true)
	require.Equal(t, 0, ignored)
	require.NotEmpty(t, entries)
	assert.Equal(t, End, entries[len(entries)-1].Kind)
	for _, e := range entries[:len(entries)-1] {
		assert.Equal(t, Unchanged, e.Kind)
	}
}

func TestWalkChangedInC(t *testing.T) {
	a := lines(t, "a", "one\ntwo\nthree\n")
	b := lines(t, "b", "one\ntwo\nthree\n")
	c := lines(t, "c", "one\nTWO\nthree\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, _ := Walk(a, b, c, csl1, csl2, true)
	var kinds []Kind
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, Changed)
}

func TestWalkConflict(t *testing.T) {
	a := lines(t, "a", "one\ntwo\nthree\n")
	b := lines(t, "b", "one\nTWO-B\nthree\n")
	c := lines(t, "c", "one\nTWO-C\nthree\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, _ := Walk(a, b, c, csl1, csl2, true)
	var kinds []Kind
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, Conflict)
}

func TestIsolateMarksConflictRegion(t *testing.T) {
	a := lines(t, "a", "ctx1\nctx2\nctx3\none\ntwo\nthree\nctx4\nctx5\nctx6\n")
	b := lines(t, "b", "ctx1\nctx2\nctx3\none\nTWO-B\nthree\nctx4\nctx5\nctx6\n")
	c := lines(t, "c", "ctx1\nctx2\nctx3\none\nTWO-C\nthree\nctx4\nctx5\nctx6\n")
	csl1 := lcs.Diff(a, b)
	csl2 := lcs.Diff(b, c)
	entries, _ := Walk(a, b, c, csl1, csl2, true)
	conflicts, wiggles := Isolate(a, b, c, entries, false, false)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 0, wiggles)
	found := false
	for _, e := range entries {
		if e.InConflict == 2 {
			found = true
		}
	}
	assert.True(t, found)
}
