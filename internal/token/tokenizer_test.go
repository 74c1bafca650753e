package token

import "testing"

func reconstruct(f *File) []byte {
	var out []byte
	for _, el := range f.Elements {
		out = append(out, el.Print(f.Stream)...)
	}
	return out
}

func TestRoundTripLines(t *testing.T) {
	cases := []string{
		"a\nb\nc\n",
		"a\nb\nc",
		"",
		"\n\n\na\nb\n\n\n",
		"no newline at all",
	}
	for _, c := range cases {
		for _, ignore := range []bool{false, true} {
			s := NewStream("t", []byte(c))
			f := Tokenize(s, Options{Granularity: ByLine, IgnoreBlanks: ignore})
			got := reconstruct(f)
			if string(got) != c {
				t.Fatalf("ignore=%v: round trip mismatch: got %q want %q", ignore, got, c)
			}
		}
	}
}

func TestRoundTripWords(t *testing.T) {
	cases := []string{
		"int foo(int x) { return x; }\n",
		"  leading blank line\n\nmiddle\n   trailing spaces   \n",
		"one_word",
		"",
	}
	for _, c := range cases {
		for _, ignore := range []bool{false, true} {
			s := NewStream("t", []byte(c))
			f := Tokenize(s, Options{Granularity: ByWord, IgnoreBlanks: ignore})
			got := reconstruct(f)
			if string(got) != c {
				t.Fatalf("ignore=%v: round trip mismatch: got %q want %q", ignore, got, c)
			}
		}
	}
}

func TestSentinelRoundTrip(t *testing.T) {
	sent := FormatSentinel(3, 12, 4)
	buf := append(append([]byte{}, sent...), []byte("trailing text\n")...)
	s := NewStream("t", buf)
	f := Tokenize(s, Options{Granularity: ByLine})
	if len(f.Elements) == 0 || !f.Elements[0].IsSentinel {
		t.Fatalf("expected first element to be a sentinel")
	}
	if f.Elements[0].Chunk != 3 || f.Elements[0].SentStart != 12 || f.Elements[0].SentLen != 4 {
		t.Fatalf("sentinel fields not parsed correctly: %+v", f.Elements[0])
	}
	if string(reconstruct(f)) != string(buf) {
		t.Fatalf("sentinel stream did not round trip")
	}
}

func TestWordModeModifiers(t *testing.T) {
	text := "foo.bar(baz)\n"
	def := Tokenize(NewStream("t", []byte(text)), Options{Granularity: ByWord})
	whole := Tokenize(NewStream("t", []byte(text)), Options{Granularity: ByWord, WholeWord: true})
	if len(whole.Elements) >= len(def.Elements) {
		t.Fatalf("WholeWord should coalesce punctuation into fewer elements than the default splitter: whole=%d default=%d", len(whole.Elements), len(def.Elements))
	}
	if string(reconstruct(whole)) != text {
		t.Fatalf("WholeWord round trip mismatch")
	}
}
