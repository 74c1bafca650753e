package token

// File is the ordered, finite Element sequence the tokenizer produces for a
// Stream. The Stream must outlive the File.
type File struct {
	Stream   *Stream
	Elements []Element
}

func (f *File) Len() int { return len(f.Elements) }

func (f *File) At(i int) Element { return f.Elements[i] }

// Sub returns a File sharing the same Stream but restricted to
// Elements[lo:hi]; used by diff_partial and by pdiff's reduced-file search.
func (f *File) Sub(lo, hi int) *File {
	return &File{Stream: f.Stream, Elements: f.Elements[lo:hi]}
}
