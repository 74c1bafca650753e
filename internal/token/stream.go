// Package token turns a byte stream into an ordered sequence of Elements
// (lines or words), preserving enough of the surrounding whitespace that the
// original bytes can be reconstructed exactly from the tokenisation.
package token

// Stream is an immutable byte buffer with a known length. Streams own their
// bytes; every File built from a Stream references it and must not outlive it.
type Stream struct {
	name string
	buf  []byte
}

// NewStream wraps buf as a Stream. buf must not be mutated afterwards.
func NewStream(name string, buf []byte) *Stream {
	return &Stream{name: name, buf: buf}
}

func (s *Stream) Name() string { return s.name }

func (s *Stream) Len() int { return len(s.buf) }

// Bytes returns the slice buf[lo:hi]. Callers must not mutate the result.
func (s *Stream) Bytes(lo, hi int) []byte { return s.buf[lo:hi] }

func (s *Stream) Byte(i int) byte { return s.buf[i] }
