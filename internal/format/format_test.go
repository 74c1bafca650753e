package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPatchUnified(t *testing.T) {
	patch := "@@ -1,3 +1,3 @@\n one\n-two\n+TWO\n three\n"
	before, after, chunks := SplitPatch("p", []byte(patch))
	require.Equal(t, 1, chunks)
	require.NotNil(t, before)
	require.NotNil(t, after)
	assert.Contains(t, string(before.Bytes(0, before.Len())), "two\n")
	assert.Contains(t, string(after.Bytes(0, after.Len())), "TWO\n")
	assert.Contains(t, string(before.Bytes(0, before.Len())), "one\n")
	assert.Contains(t, string(after.Bytes(0, after.Len())), "three\n")
}

func TestSplitPatchUnifiedMultiHunk(t *testing.T) {
	patch := "@@ -1,2 +1,2 @@\n a\n-b\n+B\n@@ -10,2 +10,2 @@\n x\n-y\n+Y\n"
	_, _, chunks := SplitPatch("p", []byte(patch))
	assert.Equal(t, 2, chunks)
}

func TestSplitPatchContext(t *testing.T) {
	patch := "*** 1,3 ****\n  one\n! two\n  three\n--- 1,3 ----\n  one\n! TWO\n  three\n"
	before, after, chunks := SplitPatch("p", []byte(patch))
	require.Equal(t, 1, chunks)
	assert.Contains(t, string(before.Bytes(0, before.Len())), "two\n")
	assert.Contains(t, string(after.Bytes(0, after.Len())), "TWO\n")
}

func TestSplitPatchNoHunks(t *testing.T) {
	_, _, chunks := SplitPatch("p", []byte("not a patch at all\n"))
	assert.Equal(t, 0, chunks)
}

func TestSplitMergeLongForm(t *testing.T) {
	text := "context\n<<<<<<< found\nmine\n||||||| expected\nancestor\n=======\ntheirs\n>>>>>>> replacement\ntail\n"
	orig, before, after := SplitMerge("m", []byte(text))
	assert.Contains(t, string(orig.Bytes(0, orig.Len())), "mine\n")
	assert.Contains(t, string(before.Bytes(0, before.Len())), "ancestor\n")
	assert.Contains(t, string(after.Bytes(0, after.Len())), "theirs\n")
	assert.Contains(t, string(orig.Bytes(0, orig.Len())), "context\n")
}

func TestSplitMergeShortForm(t *testing.T) {
	text := "<<<<<<< found\nsame\n=======\ndifferent\n>>>>>>> replacement\n"
	orig, before, after := SplitMerge("m", []byte(text))
	assert.Contains(t, string(orig.Bytes(0, orig.Len())), "same\n")
	assert.Contains(t, string(before.Bytes(0, before.Len())), "same\n")
	assert.Contains(t, string(after.Bytes(0, after.Len())), "different\n")
}
