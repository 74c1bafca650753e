// Package txtarfixture loads golden merge/diff scenarios from txtar
// archives, so a pdiff or merge test case can be reviewed and edited as one
// readable fixture file instead of three Go string literals.
package txtarfixture

import "golang.org/x/tools/txtar"

// Case is a three-way merge (or two-way diff, with C left nil) scenario: the
// original, the patch's before/expected side, and the patch's after/new
// side, named by the contents of the archive's "name" file.
type Case struct {
	Name    string
	A, B, C []byte
}

// Load parses data as a txtar archive and returns one Case per group of files
// that starts with a file named "name", matching the files "a", "b", and
// optionally "c" that follow it.
func Load(data []byte) []Case {
	ar := txtar.Parse(data)
	var cur Case
	var out []Case
	flush := func() {
		if cur.Name != "" {
			out = append(out, cur)
		}
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "name":
			flush()
			cur = Case{Name: string(f.Data)}
		case "a":
			cur.A = f.Data
		case "b":
			cur.B = f.Data
		case "c":
			cur.C = f.Data
		}
	}
	flush()
	return out
}
