package align

import "strings"

// frame is one pending cell on the traceback stack. depth is the number of
// moves from the bottom-right cell, move the last of them.
type frame struct {
	row, col int
	depth    int
	move     Backlink
}

// Traceback enumerates every optimal alignment of a filled matrix and then
// removes the backlinks of cells that no optimal path visits.
//
// The walk starts at the bottom-right cell and follows every backlink with
// an explicit stack, so long sequences do not grow the call stack. A cell
// reached by several paths is expanded once per path; the number of
// alignments can therefore grow combinatorially when many scores tie. A cell
// without backlinks ends a path.
//
// The walk only reads the matrix. Reached cells are recorded in a separate
// set, and backlinks are cleared in a second pass once the walk is done.
func Traceback(m *Matrix) ([]Alignment, error) {
	reachable := newBitset(len(m.links))
	alns, err := walk(m, reachable)
	if err != nil {
		return nil, err
	}
	prune(m, reachable)
	return alns, nil
}

func walk(m *Matrix, reachable bitset) ([]Alignment, error) {
	var (
		alns  []Alignment
		moves []Backlink
	)
	stack := []frame{{row: m.rows - 1, col: m.cols - 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Everything popped since f was pushed descends from f's parent,
		// so the first depth-1 moves are still the parent's path.
		moves = moves[:max(f.depth-1, 0)]
		if f.depth > 0 {
			moves = append(moves, f.move)
		}

		links, err := m.Backlinks(f.row, f.col)
		if err != nil {
			return nil, err
		}
		if links == NoBacklinks {
			alns = append(alns, m.spell(f.row, f.col, moves))
			continue
		}
		reachable.set(f.row*m.cols + f.col)

		dirs := links.Directions()
		for k := len(dirs) - 1; k >= 0; k-- {
			r, c := dirs[k].Step(f.row, f.col)
			if _, err := m.index(r, c); err != nil {
				return nil, err
			}
			stack = append(stack, frame{row: r, col: c, depth: f.depth + 1, move: dirs[k]})
		}
	}
	return alns, nil
}

// spell builds the alignment strings for a path that ended at (row, col).
// moves were recorded walking backwards, so they are replayed in reverse.
func (m *Matrix) spell(row, col int, moves []Backlink) Alignment {
	var left, top strings.Builder
	left.Grow(len(moves))
	top.Grow(len(moves))
	for k := len(moves) - 1; k >= 0; k-- {
		switch moves[k] {
		case Diagonal:
			left.WriteByte(m.left[row])
			top.WriteByte(m.top[col])
			row, col = row+1, col+1
		case Up:
			left.WriteByte(m.left[row])
			top.WriteByte(GapChar)
			row++
		case Left:
			left.WriteByte(GapChar)
			top.WriteByte(m.top[col])
			col++
		}
	}
	return Alignment{Left: left.String(), Top: top.String()}
}

// prune clears the backlinks of every cell the walk never expanded.
func prune(m *Matrix, reachable bitset) {
	for i := range m.links {
		if !reachable.has(i) {
			m.links[i] = NoBacklinks
		}
	}
}

// Align builds a matrix for left and top, fills it under s and returns it
// together with every optimal alignment.
func Align(left, top string, s Scoring) (*Matrix, []Alignment, error) {
	m := NewMatrix(left, top)
	if err := Fill(m, s); err != nil {
		return nil, nil, err
	}
	alns, err := Traceback(m)
	if err != nil {
		return nil, nil, err
	}
	return m, alns, nil
}
