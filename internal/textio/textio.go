// Package textio loads candidate patch/merge/original files, rejecting
// binary content up front the way the rest of the pipeline's Non-goals
// require (spec.md §1: binary files are out of scope, not silently
// mis-tokenised).
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

const sniffLen = 8000

// ErrBinaryData is returned when a loaded file's leading bytes contain a
// NUL, the same binary heuristic readRawText uses before handing content to
// the tokenizer.
var ErrBinaryData = errors.New("binary data")

// ReadFile loads path's full contents, rejecting it with ErrBinaryData if a
// NUL byte appears in the first sniffLen bytes.
func ReadFile(path string) ([]byte, os.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	sniff := data
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	if bytes.IndexByte(sniff, 0) != -1 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrBinaryData)
	}
	return data, fi, nil
}
