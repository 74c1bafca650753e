package token

// Granularity selects whether Tokenize produces line or word Elements.
type Granularity int

const (
	ByLine Granularity = iota
	ByWord
)

// Options configures a tokenisation pass. Only WholeWord/NonSpace apply to
// ByWord; they are ignored for ByLine.
type Options struct {
	Granularity  Granularity
	IgnoreBlanks bool
	WholeWord    bool
	NonSpace     bool
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isAlnumUnderscore(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Tokenize produces the finite Element sequence for s under opts. Elements
// tile the stream exactly: element i's PrefixStart()/PrintEnd() abut element
// i+1's, with no gaps, so concatenating every element's Print(s) yields s's
// bytes back byte-for-byte.
func Tokenize(s *Stream, opts Options) *File {
	if opts.Granularity == ByLine {
		return tokenizeLines(s, opts.IgnoreBlanks)
	}
	return tokenizeWords(s, opts)
}

// nextLineLen returns the length of the line starting at pos: up to and
// including the next '\n', or the remainder of the buffer at EOF.
func nextLineLen(buf []byte, pos int) int {
	for i := pos; i < len(buf); i++ {
		if buf[i] == '\n' {
			return i - pos + 1
		}
	}
	return len(buf) - pos
}

// nextWordLen returns the length of the next word-mode token starting at pos.
func nextWordLen(buf []byte, pos int, opts Options) int {
	b := buf[pos]
	switch {
	case opts.NonSpace:
		if isWhitespaceByte(b) {
			i := pos
			for i < len(buf) && isWhitespaceByte(buf[i]) && buf[i] != 0 {
				i++
			}
			return i - pos
		}
		i := pos
		for i < len(buf) && !isWhitespaceByte(buf[i]) && buf[i] != 0 {
			i++
		}
		return i - pos
	case opts.WholeWord:
		if b == '\n' {
			return 1
		}
		if isBlank(b) {
			i := pos
			for i < len(buf) && isBlank(buf[i]) {
				i++
			}
			return i - pos
		}
		i := pos
		for i < len(buf) && buf[i] != '\n' && !isBlank(buf[i]) && buf[i] != 0 {
			i++
		}
		return i - pos
	default:
		if isAlnumUnderscore(b) {
			i := pos
			for i < len(buf) && isAlnumUnderscore(buf[i]) {
				i++
			}
			return i - pos
		}
		if isBlank(b) {
			i := pos
			for i < len(buf) && isBlank(buf[i]) {
				i++
			}
			return i - pos
		}
		return 1
	}
}

func tryParseSentinel(s *Stream, pos int) (Element, bool) {
	remaining := s.Bytes(pos, s.Len())
	chunk, start, length, n, ok := ParseSentinel(remaining)
	if !ok {
		return Element{}, false
	}
	return Element{
		BodyStart:  pos,
		Length:     n,
		Plen:       n,
		IsSentinel: true,
		Chunk:      chunk,
		SentStart:  start,
		SentLen:    length,
	}, true
}

func tokenizeLines(s *Stream, ignoreBlanks bool) *File {
	buf := s.Bytes(0, s.Len())
	f := &File{Stream: s}
	pos := 0
	for pos < len(buf) {
		if buf[pos] == 0 {
			if el, ok := tryParseSentinel(s, pos); ok {
				f.Elements = append(f.Elements, el)
				pos += el.Length
				continue
			}
		}
		prefixStart := pos
		bodyStart := pos
		if ignoreBlanks {
			bodyStart = absorbLeadingBlankLines(buf, pos, pos == 0)
		}
		tokLen := 0
		if bodyStart < len(buf) {
			tokLen = nextLineLen(buf, bodyStart)
		}
		canonicalEnd := bodyStart + tokLen
		canon := buf[bodyStart:canonicalEnd]
		// A line's canonical bytes exclude a trailing ignored run of
		// whitespace when ignoring blanks; the trailing '\n' itself still
		// ends the line.
		length := len(canon)
		if ignoreBlanks && length > 0 {
			trimmed := length
			for trimmed > 0 && (canon[trimmed-1] == '\n' || canon[trimmed-1] == '\r' || canon[trimmed-1] == ' ' || canon[trimmed-1] == '\t') {
				trimmed--
			}
			length = trimmed
		}
		el := Element{
			BodyStart:    bodyStart,
			Length:       length,
			PrefixLength: bodyStart - prefixStart,
			Plen:         canonicalEnd - bodyStart,
		}
		el.Hash = fnv1a64(buf[bodyStart : bodyStart+length])
		f.Elements = append(f.Elements, el)
		pos = canonicalEnd
	}
	return f
}

func absorbLeadingBlankLines(buf []byte, pos int, atFileStart bool) int {
	if !atFileStart {
		return pos
	}
	for {
		i := pos
		for i < len(buf) && isBlank(buf[i]) {
			i++
		}
		if i < len(buf) && buf[i] == '\n' {
			pos = i + 1
			continue
		}
		return pos
	}
}

func tokenizeWords(s *Stream, opts Options) *File {
	buf := s.Bytes(0, s.Len())
	f := &File{Stream: s}
	pos := 0
	first := true
	for pos < len(buf) {
		if buf[pos] == 0 {
			if el, ok := tryParseSentinel(s, pos); ok {
				f.Elements = append(f.Elements, el)
				pos += el.Length
				first = false
				continue
			}
		}
		prefixStart := pos
		bodyStart := pos
		if opts.IgnoreBlanks {
			bodyStart = absorbLeadingBlankRun(buf, pos, first)
		}
		tokLen := 0
		if bodyStart < len(buf) {
			tokLen = nextWordLen(buf, bodyStart, opts)
		}
		canonicalEnd := bodyStart + tokLen
		plenEnd := canonicalEnd
		if opts.IgnoreBlanks && tokLen > 0 {
			plenEnd = absorbTrailingBlanks(buf, canonicalEnd)
		}
		el := Element{
			BodyStart:    bodyStart,
			Length:       tokLen,
			PrefixLength: bodyStart - prefixStart,
			Plen:         plenEnd - bodyStart,
		}
		el.Hash = fnv1a64(buf[bodyStart:canonicalEnd])
		f.Elements = append(f.Elements, el)
		pos = plenEnd
		first = false
	}
	return f
}

// absorbLeadingBlankRun advances past whitespace that belongs to the next
// element's prefix rather than to the previous element's trailing extension:
// at file start this includes whole blank lines; mid-file it is just the
// plain (non-newline-terminated) inter-word blank run, since any blank run
// that reaches a newline was already consumed by the previous element's
// trailing absorption.
func absorbLeadingBlankRun(buf []byte, pos int, atFileStart bool) int {
	if atFileStart {
		for {
			i := pos
			for i < len(buf) && isBlank(buf[i]) {
				i++
			}
			if i < len(buf) && buf[i] == '\n' {
				pos = i + 1
				continue
			}
			return i
		}
	}
	i := pos
	for i < len(buf) && isBlank(buf[i]) {
		i++
	}
	return i
}

// absorbTrailingBlanks extends a word element's Plen through a trailing
// blank run only when that run reaches a newline, in which case it also
// absorbs any further wholly-blank lines.
func absorbTrailingBlanks(buf []byte, pos int) int {
	i := pos
	for i < len(buf) && isBlank(buf[i]) {
		i++
	}
	if i >= len(buf) || buf[i] != '\n' {
		return pos
	}
	pos = i + 1
	for {
		j := pos
		for j < len(buf) && isBlank(buf[j]) {
			j++
		}
		if j < len(buf) && buf[j] == '\n' {
			pos = j + 1
			continue
		}
		return pos
	}
}
