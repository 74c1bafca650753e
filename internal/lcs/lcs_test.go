package lcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiggle-go/wiggle/internal/token"
)

func tokenizeLines(t *testing.T, name, text string) *token.File {
	t.Helper()
	return token.Tokenize(token.NewStream(name, []byte(text)), token.Options{Granularity: token.ByLine})
}

// bruteLCS is a reference O(N*M) dynamic-programming LCS length used to
// cross-check the Myers engine's match count.
func bruteLCS(fa, fb *token.File) int {
	n, m := fa.Len(), fb.Len()
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if token.Equal(fa.Stream, fa.Elements[i-1], fb.Stream, fb.Elements[j-1]) {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp[n][m]
}

func matchCount(cs CSL) int {
	total := 0
	for _, e := range cs {
		total += e.Len
	}
	return total
}

func TestDiffIdentical(t *testing.T) {
	fa := tokenizeLines(t, "a", "one\ntwo\nthree\n")
	fb := tokenizeLines(t, "b", "one\ntwo\nthree\n")
	cs := Diff(fa, fb)
	require.True(t, cs.Valid(fa.Len(), fb.Len()))
	assert.Equal(t, fa.Len(), matchCount(cs))
}

func TestDiffDisjoint(t *testing.T) {
	fa := tokenizeLines(t, "a", "alpha\nbeta\n")
	fb := tokenizeLines(t, "b", "gamma\ndelta\n")
	cs := Diff(fa, fb)
	require.True(t, cs.Valid(fa.Len(), fb.Len()))
	assert.Equal(t, 0, matchCount(cs))
}

func TestDiffMatchesBruteForce(t *testing.T) {
	cases := []struct{ a, b string }{
		{"a\nb\nc\nd\n", "a\nx\nc\nd\ny\n"},
		{"1\n2\n3\n4\n5\n", "1\n3\n2\n4\n5\n"},
		{"same\nsame\nsame\n", "same\nsame\n"},
		{"", "a\nb\n"},
		{"a\nb\n", ""},
		{"x\n", "x\n"},
	}
	for _, c := range cases {
		fa := tokenizeLines(t, "a", c.a)
		fb := tokenizeLines(t, "b", c.b)
		cs := Diff(fa, fb)
		require.True(t, cs.Valid(fa.Len(), fb.Len()), "case %q/%q", c.a, c.b)
		assert.Equal(t, bruteLCS(fa, fb), matchCount(cs), "case %q/%q", c.a, c.b)
	}
}

func TestDiffIsMonotoneAndExact(t *testing.T) {
	fa := tokenizeLines(t, "a", "the\nquick\nbrown\nfox\njumps\n")
	fb := tokenizeLines(t, "b", "the\nslow\nbrown\nfox\nsleeps\n")
	cs := Diff(fa, fb)
	require.True(t, cs.Valid(fa.Len(), fb.Len()))
	for _, e := range cs {
		if e.Len == 0 {
			continue
		}
		for k := 0; k < e.Len; k++ {
			assert.True(t, token.Equal(fa.Stream, fa.Elements[e.A+k], fb.Stream, fb.Elements[e.B+k]))
		}
	}
}

func TestDiffPartialRestrictsRange(t *testing.T) {
	fa := tokenizeLines(t, "a", "h1\nbody-a\nh2\nbody-b\n")
	fb := tokenizeLines(t, "b", "h1\nbody-a-changed\nh2\nbody-b\n")
	// Diff only the first two lines of each: header should match, body should not.
	cs := DiffPartial(fa, fb, 0, 2, 0, 2)
	require.True(t, cs.Valid(2, 2))
	assert.Equal(t, 1, matchCount(cs))
}

func TestDiffPatchConcatenatesPerHunk(t *testing.T) {
	sentA := string(token.FormatSentinel(0, 0, 1))
	sentB := string(token.FormatSentinel(0, 0, 1))
	fa := tokenizeLines(t, "a", sentA+"same\n")
	fb := tokenizeLines(t, "b", sentB+"same\n")
	cs := DiffPatch(fa, fb, 1)
	require.True(t, cs.Valid(fa.Len(), fb.Len()))
	// Sentinel + the one body line should both land in the CSL as matches.
	assert.Equal(t, fa.Len(), matchCount(cs))
}

func TestCSLValidRejectsNonMonotone(t *testing.T) {
	bad := CSL{{A: 0, B: 0, Len: 3}, {A: 1, B: 3, Len: 1}, {A: 4, B: 4, Len: 0}}
	assert.False(t, bad.Valid(4, 4))
}

// TestFixupSeparatedDuplicateSnakesStaysValid exercises a newline-stabilising
// shift where the add-only/delete-only gap sits between two snakes that are
// not adjacent to the file's start, so both the shifted snake's A and B
// coordinates must move together. A one-sided shift leaves the later snake's
// other coordinate too high, which here would read past fb's last element.
func TestFixupSeparatedDuplicateSnakesStaysValid(t *testing.T) {
	fa := tokenizeLines(t, "a", "a\nx\nx\nb\n")
	fb := tokenizeLines(t, "b", "a\nx\nb\n")
	cs := Diff(fa, fb)
	require.True(t, cs.Valid(fa.Len(), fb.Len()))
	for _, e := range cs {
		if e.Len == 0 {
			continue
		}
		assert.LessOrEqual(t, e.A+e.Len, fa.Len())
		assert.LessOrEqual(t, e.B+e.Len, fb.Len())
		for k := 0; k < e.Len; k++ {
			assert.True(t, token.Equal(fa.Stream, fa.Elements[e.A+k], fb.Stream, fb.Elements[e.B+k]))
		}
	}
	assert.Equal(t, 3, matchCount(cs))
}

func TestAppendSnakeMerges(t *testing.T) {
	var cs CSL
	cs = appendSnake(cs, 0, 0, 2)
	cs = appendSnake(cs, 2, 2, 3)
	require.Len(t, cs, 1)
	assert.Equal(t, 5, cs[0].Len)
}
