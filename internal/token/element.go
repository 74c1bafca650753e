package token

// Element is the atomic unit of comparison: a word or a line, or a synthetic
// hunk-boundary sentinel. All offsets are relative to the owning Stream.
//
// Reconstruction: stream[BodyStart-PrefixLength : BodyStart+Plen] is exactly
// the bytes this element contributes to the original stream, in both
// ignore-blanks and non-ignore-blanks tokenisations.
type Element struct {
	BodyStart    int
	Length       int // canonical byte length, used for equality/hash
	PrefixLength int // ignored leading bytes (blank runs collapsed under IgnoreBlanks)
	Plen         int // bytes to print: canonical + absorbed trailing whitespace/blank lines
	Hash         uint64

	// Sentinel fields, valid only when IsSentinel is true.
	IsSentinel bool
	Chunk      int
	SentStart  int
	SentLen    int
}

// PrefixStart is the stream offset at which this element's printed span begins.
func (e Element) PrefixStart() int { return e.BodyStart - e.PrefixLength }

// PrintEnd is the stream offset just past this element's printed span.
func (e Element) PrintEnd() int { return e.BodyStart + e.Plen }

// Canonical returns the element's canonical (hash/equality) bytes.
func (e Element) Canonical(s *Stream) []byte {
	return s.Bytes(e.BodyStart, e.BodyStart+e.Length)
}

// Print returns the full span of bytes this element contributes when the
// file is reconstructed, including any absorbed prefix/trailing whitespace.
func (e Element) Print(s *Stream) []byte {
	return s.Bytes(e.PrefixStart(), e.PrintEnd())
}

// Equal implements element equality: hash, length, and canonical bytes must
// all match. Sentinels compare by their parsed chunk number alone, rather
// than by text or hash; their start and length fields are not compared.
func Equal(sa *Stream, a Element, sb *Stream, b Element) bool {
	if a.IsSentinel || b.IsSentinel {
		if !a.IsSentinel || !b.IsSentinel {
			return false
		}
		return a.Chunk == b.Chunk
	}
	if a.Hash != b.Hash || a.Length != b.Length {
		return false
	}
	return string(a.Canonical(sa)) == string(b.Canonical(sb))
}

// fnv1a64 computes a 64-bit FNV-1a hash, the canonical equality shortcut for
// elements (matching the "integer hash of canonical bytes" contract in the
// data model).
func fnv1a64(b []byte) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}
