package pdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiggle-go/wiggle/internal/token"
	"github.com/wiggle-go/wiggle/internal/txtarfixture"
)

const goldenArchive = `
-- name --
single-hunk-with-surrounding-noise
-- a --
alpha
one
two
three
omega
-- b --
one
TWO
three
-- name --
reordered-hunks
-- a --
first
second
third
-- b --
third
first
second
`

func TestPatchGolden(t *testing.T) {
	cases := txtarfixture.Load([]byte(goldenArchive))
	require.Len(t, cases, 2)

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			a := token.Tokenize(token.NewStream("a", c.A), token.Options{Granularity: token.ByLine})
			b := token.Tokenize(token.NewStream("b", c.B), token.Options{Granularity: token.ByLine})
			csl := Patch(a, b, 1)
			assert.NotEmpty(t, csl)
			last := csl[len(csl)-1]
			assert.Equal(t, a.Len(), last.A)
			assert.Equal(t, b.Len(), last.B)
			assert.Equal(t, 0, last.Len)
		})
	}
}
