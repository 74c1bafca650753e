package merge

import "github.com/wiggle-go/wiggle/internal/token"

// isCutpoint reports whether position e is a reasonable place to switch
// between merged and separate-stream display: all three streams must be at
// a line end (or at file start).
func isCutpoint(e Entry, af, bf, cf *token.File) bool {
	return (e.A == 0 || endsLine(af.Stream, af.Elements[e.A-1])) &&
		(e.B == 0 || endsLine(bf.Stream, bf.Elements[e.B-1])) &&
		(e.C == 0 || endsLine(cf.Stream, cf.Elements[e.C-1]))
}

// Isolate widens every Conflict (and, if showWiggles, every wiggle: a run
// bordered by both a Changed section and an Unmatched/Extraneous section)
// out to the nearest cut-points, filling in InConflict/Lo/Hi on the entries
// in m, and returns the conflict and wiggle counts.
func Isolate(af, bf, cf *token.File, m []Entry, words, showWiggles bool) (conflicts, wiggles int) {
	for idx := range m {
		if m[idx].Kind != End {
			m[idx].InConflict = 0
		}
	}

	changed, unmatched, extraneous := 0, 0, 0
	inWiggle := false
	wigglesSeen := 0

	i := 0
	for m[i].Kind != End {
		if m[i].Kind == Changed {
			changed = 3
		}
		if m[i].Kind == Unmatched {
			unmatched = 3
		}
		if m[i].Kind == Extraneous && !bf.Elements[m[i].B].IsSentinel {
			extraneous = 3
		}

		if m[i].Kind != Unchanged && changed > 0 && (unmatched > 0 || extraneous > 0) {
			if !inWiggle {
				wigglesSeen++
			}
			inWiggle = true
		} else {
			inWiggle = false
		}

		if m[i].Kind == Conflict || (showWiggles && inWiggle) {
			i = resolveConflictRegion(af, bf, cf, m, i, words)
			if m[i].Kind == End {
				break
			}
		}

		for k := 1; k < m[i].Al; k++ {
			if m[i].A+k >= af.Len() {
				break
			}
			if words || endsLine(af.Stream, af.Elements[m[i].A+k]) {
				if unmatched > 0 {
					unmatched--
				}
				if changed > 0 {
					changed--
				}
				if extraneous > 0 {
					extraneous--
				}
			}
		}
		i++
	}

	conflicts, regionWiggles := countRegions(m)
	if showWiggles {
		return conflicts, regionWiggles
	}
	return conflicts, wigglesSeen
}

// resolveConflictRegion expands the conflict/wiggle seeded at m[seed]
// backward and forward to cut-points, demotes it if nothing actually
// changed within the expanded range, and returns the index the outer scan
// should resume from.
func resolveConflictRegion(af, bf, cf *token.File, m []Entry, seed int, words bool) int {
	if m[seed].Kind == Conflict {
		m[seed].InConflict = 2
	} else {
		m[seed].InConflict = 3
	}

	newlines := 0
	j := seed
	for {
		j--
		if j < 0 {
			break
		}
		if m[j].Kind == Extraneous && bf.Elements[m[j].B].IsSentinel {
			break
		}
		if m[j].InConflict > 1 {
			break
		}
		if m[j].InConflict == 0 {
			m[j].InConflict = 1
			m[j].Lo = 0
		}
		if m[j].Kind == Extraneous {
			for k := m[j].Bl; k > 0; k-- {
				if endsLine(bf.Stream, bf.Elements[m[j].B+k-1]) {
					newlines++
				}
			}
		}
		if m[j].Kind != Unchanged && m[j].Kind != Changed {
			if m[j].Kind == Conflict {
				m[j].InConflict = 2
			} else {
				m[j].InConflict = m[seed].InConflict
			}
			continue
		}
		firstk := m[j].Al + 1
		if words {
			m[j].Hi = m[j].Al
			break
		}
		k := m[j].Al
		for ; k > 0; k-- {
			if m[j].A+k >= af.Len() {
				break
			}
			if endsLine(af.Stream, af.Elements[m[j].A+k-1]) {
				if firstk > m[j].Al {
					firstk = k
				}
				newlines++
				if newlines >= 3 {
					k = firstk
					break
				}
			}
		}
		switch {
		case k > 0:
			m[j].Hi = k
		case j == 0:
			m[j].Hi = firstk
		case isCutpoint(m[j], af, bf, cf):
			m[j].Hi = 0
		default:
			m[j].Hi = -1
		}
		if m[j].Hi > 0 && m[j].Kind == Changed && !isCutpoint(m[j], af, bf, cf) {
			m[j].Hi = -1
		}
		if m[j].Hi >= 0 {
			break
		}
		m[j].InConflict = m[seed].InConflict
	}

	newlines = 0
	jf := seed + 1
	for ; m[jf].Kind != End; jf++ {
		if m[jf].Kind == Extraneous {
			for k := 0; k < m[jf].Bl; k++ {
				if endsLine(bf.Stream, bf.Elements[m[jf].B+k]) {
					newlines++
				}
			}
		}
		if m[jf].Kind != Unchanged && m[jf].Kind != Changed {
			if m[jf].Kind == Conflict {
				m[jf].InConflict = 2
			} else {
				m[jf].InConflict = m[seed].InConflict
			}
			continue
		}
		m[jf].InConflict = 1
		m[jf].Hi = m[jf].Al
		if words {
			m[jf].Lo = 0
			break
		}
		if isCutpoint(m[jf], af, bf, cf) {
			m[jf].Lo = 0
		} else {
			firstk := -1
			k := 0
			for ; k < m[jf].Al; k++ {
				if endsLine(af.Stream, af.Elements[m[jf].A+k]) {
					if firstk < 0 {
						firstk = k
					}
					newlines++
					if newlines >= 3 {
						k = firstk
						break
					}
				}
			}
			if newlines < 3 && m[jf+1].Kind == End {
				k = firstk
			}
			if firstk >= 0 && m[jf+1].Kind == Unmatched {
				nl := 0
				for p := 0; p < m[jf+1].Al; p++ {
					if endsLine(af.Stream, af.Elements[m[jf+1].A+p]) {
						nl++
						if nl > 3 {
							break
						}
					}
				}
				if nl > 3 {
					k = firstk
				}
			}
			if k < m[jf].Al {
				m[jf].Lo = k + 1
			} else {
				m[jf].Lo = m[jf].Al + 1
			}
		}
		if m[jf].Lo <= m[jf].Al+1 && m[jf].Kind == Changed && !isCutpoint(m[jf+1], af, bf, cf) {
			m[jf].Lo = m[jf].Al + 1
		}
		if m[jf].Lo < m[jf].Al+1 {
			break
		}
		m[jf].InConflict = m[seed].InConflict
	}

	var end int
	if jf > 0 && m[jf-1].InConflict == 1 {
		end = jf - 1
	} else {
		end = jf
	}

	if m[end].Kind == End {
		return end
	}

	realConflict := m[end].Kind == Changed
	jb := end - 1
	if !realConflict {
		for ; jb >= 0 && m[jb].InConflict > 1; jb-- {
			if m[jb].Kind == Changed || m[jb].Kind == Conflict {
				realConflict = true
				break
			}
		}
		if !realConflict && jb >= 0 && m[jb].Kind == Changed {
			realConflict = true
		}
	}
	if !realConflict {
		if jb < 0 {
			jb = 0
		}
		if m[jb].InConflict == 1 {
			m[jb].Hi = m[jb].Al
			if m[jb].Lo == 0 {
				m[jb].InConflict = 0
			}
			jb++
		}
		for ; jb <= end; jb++ {
			m[jb].InConflict = 0
		}
	}

	return end
}

// countRegions makes the final pass over m, tallying contiguous in_conflict
// runs as conflicts (contain an entry at level 2) or wiggles (level 3 only).
func countRegions(m []Entry) (conflicts, wiggles int) {
	i := 0
	for m[i].Kind != End {
		if m[i].InConflict == 0 {
			i++
			continue
		}
		trueConflict := false
		j := i
		for m[j].Kind != End && m[j].InConflict != 0 {
			if m[j].InConflict == 2 {
				trueConflict = true
			}
			if j > i && m[j].InConflict == 1 {
				if m[j+1].InConflict == 0 {
					j++
				}
				break
			}
			j++
		}
		if trueConflict {
			conflicts++
		} else {
			wiggles++
		}
		i = j
	}
	return conflicts, wiggles
}
