package align

import "strings"

// Backlink is a set of directions pointing from a cell to the predecessors
// that produced its score. Several bits may be set when candidates tie.
type Backlink uint8

const (
	// Up points to (row-1, col): the left sequence's character is aligned
	// against a gap.
	Up Backlink = 1 << iota
	// Left points to (row, col-1): the top sequence's character is aligned
	// against a gap.
	Left
	// Diagonal points to (row-1, col-1): one character from each sequence.
	Diagonal
)

// NoBacklinks is the empty set.
const NoBacklinks Backlink = 0

// allDirections lists the directions in traversal priority order.
var allDirections = [...]Backlink{Diagonal, Up, Left}

// Has reports whether every direction in d is set in b.
func (b Backlink) Has(d Backlink) bool { return d != 0 && b&d == d }

// Directions returns the set directions, diagonal first, then up, then left.
func (b Backlink) Directions() []Backlink {
	var dirs []Backlink
	for _, d := range allDirections {
		if b.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// String returns the directions joined by "|", or "none".
func (b Backlink) String() string {
	if b == NoBacklinks {
		return "none"
	}
	names := make([]string, 0, 3)
	for _, d := range b.Directions() {
		switch d {
		case Diagonal:
			names = append(names, "diagonal")
		case Up:
			names = append(names, "up")
		case Left:
			names = append(names, "left")
		}
	}
	return strings.Join(names, "|")
}

// Step returns the cell that direction b points to from (row, col).
// b must be a single direction.
func (b Backlink) Step(row, col int) (int, int) {
	switch b {
	case Diagonal:
		return row - 1, col - 1
	case Up:
		return row - 1, col
	default:
		return row, col - 1
	}
}
