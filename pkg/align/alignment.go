package align

import "strings"

// GapChar marks a position where one sequence has no character.
const GapChar = '-'

// Alignment is one optimal pairing of the two sequences. Left and Top always
// have the same length; removing [GapChar] from Left gives back the left
// sequence, and likewise for Top.
type Alignment struct {
	Left string `json:"left"`
	Top  string `json:"top"`
}

// Len returns the number of aligned columns.
func (a Alignment) Len() int { return len(a.Left) }

// Midline returns a marker line for display: '|' for a match, '.' for a
// mismatch and ' ' where either side is a gap.
func (a Alignment) Midline() string {
	var b strings.Builder
	b.Grow(len(a.Left))
	for i := 0; i < len(a.Left) && i < len(a.Top); i++ {
		l, t := a.Left[i], a.Top[i]
		switch {
		case l == GapChar || t == GapChar:
			b.WriteByte(' ')
		case l == t:
			b.WriteByte('|')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Identity returns the fraction of columns that are matches, or 0 for an
// empty alignment.
func (a Alignment) Identity() float64 {
	if a.Len() == 0 {
		return 0
	}
	return float64(strings.Count(a.Midline(), "|")) / float64(a.Len())
}

// String renders the alignment as two lines.
func (a Alignment) String() string { return a.Left + "\n" + a.Top }
