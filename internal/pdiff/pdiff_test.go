package pdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiggle-go/wiggle/internal/token"
)

func lines(t *testing.T, name, text string) *token.File {
	t.Helper()
	return token.Tokenize(token.NewStream(name, []byte(text)), token.Options{Granularity: token.ByLine})
}

func TestPatchSingleHunkNoNoise(t *testing.T) {
	orig := lines(t, "a", "one\ntwo\nthree\nfour\nfive\n")
	sent := string(token.FormatSentinel(0, 1, 1))
	patch := lines(t, "b", sent+"two\n")
	cs := Patch(orig, patch, 1)
	require.True(t, cs.Valid(orig.Len(), patch.Len()))
	total := 0
	for _, e := range cs {
		total += e.Len
	}
	assert.Greater(t, total, 0)
}

func TestPatchEmptyPatch(t *testing.T) {
	orig := lines(t, "a", "x\ny\n")
	patch := lines(t, "b", "")
	cs := Patch(orig, patch, 0)
	assert.True(t, cs.Valid(orig.Len(), patch.Len()))
}

func TestPatchNoisyContext(t *testing.T) {
	orig := lines(t, "a", "alpha\nbeta\ngamma\ndelta\nepsilon\n")
	sent := string(token.FormatSentinel(0, 2, 1))
	patch := lines(t, "b", sent+"noise\ngamma\nnoise2\n")
	cs := Patch(orig, patch, 1)
	require.True(t, cs.Valid(orig.Len(), patch.Len()))
}
