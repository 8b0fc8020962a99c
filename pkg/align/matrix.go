package align

import (
	"iter"
	"slices"
)

// Cell is a snapshot of one matrix position.
type Cell struct {
	Row   int
	Col   int
	Score int
	Links Backlink
}

// Matrix is the dynamic programming grid for two sequences.
//
// Cells live in a flat arena indexed by row*cols+col. Sequences are indexed
// by byte, so inputs are expected to be ASCII letters.
//
// The zero value is not usable - use [NewMatrix]. A Matrix is owned by a
// single alignment; [FillWavefront] is the only operation that writes to it
// from several goroutines.
type Matrix struct {
	left, top  string
	rows, cols int
	scores     []int
	links      []Backlink
}

// NewMatrix allocates a matrix with len(left)+1 rows and len(top)+1 columns.
// Every cell starts with score 0 and no backlinks.
func NewMatrix(left, top string) *Matrix {
	rows, cols := len(left)+1, len(top)+1
	return &Matrix{
		left:   left,
		top:    top,
		rows:   rows,
		cols:   cols,
		scores: make([]int, rows*cols),
		links:  make([]Backlink, rows*cols),
	}
}

// Rows returns the number of rows, len(left)+1.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns, len(top)+1.
func (m *Matrix) Cols() int { return m.cols }

// Left returns the sequence running down the rows.
func (m *Matrix) Left() string { return m.left }

// Top returns the sequence running across the columns.
func (m *Matrix) Top() string { return m.top }

func (m *Matrix) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, &RangeError{Row: row, Col: col, Rows: m.rows, Cols: m.cols}
	}
	return row*m.cols + col, nil
}

// Score returns the score at (row, col).
func (m *Matrix) Score(row, col int) (int, error) {
	i, err := m.index(row, col)
	if err != nil {
		return 0, err
	}
	return m.scores[i], nil
}

// SetScore sets the score at (row, col).
func (m *Matrix) SetScore(row, col, score int) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.scores[i] = score
	return nil
}

// Backlinks returns the backlink set at (row, col).
func (m *Matrix) Backlinks(row, col int) (Backlink, error) {
	i, err := m.index(row, col)
	if err != nil {
		return NoBacklinks, err
	}
	return m.links[i], nil
}

// AddBacklink sets the directions in b at (row, col), keeping existing ones.
func (m *Matrix) AddBacklink(row, col int, b Backlink) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.links[i] |= b
	return nil
}

// RemoveBacklink clears the directions in b at (row, col).
func (m *Matrix) RemoveBacklink(row, col int, b Backlink) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.links[i] &^= b
	return nil
}

// Matches reports whether left[row-1] equals top[col-1]. Row and column 0
// carry no character, so both indices must be at least 1.
func (m *Matrix) Matches(row, col int) (bool, error) {
	if _, err := m.index(row, col); err != nil {
		return false, err
	}
	if row == 0 || col == 0 {
		return false, &RangeError{Row: row, Col: col, Rows: m.rows, Cols: m.cols}
	}
	return m.left[row-1] == m.top[col-1], nil
}

// Cell returns a snapshot of (row, col).
func (m *Matrix) Cell(row, col int) (Cell, error) {
	i, err := m.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Row: row, Col: col, Score: m.scores[i], Links: m.links[i]}, nil
}

// Cells iterates over every cell in row-major order.
func (m *Matrix) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i := range m.scores {
			c := Cell{Row: i / m.cols, Col: i % m.cols, Score: m.scores[i], Links: m.links[i]}
			if !yield(c) {
				return
			}
		}
	}
}

// FinalScore returns the score of the bottom-right cell, the score of every
// optimal alignment once the matrix is filled.
func (m *Matrix) FinalScore() int { return m.scores[len(m.scores)-1] }

// Equal reports whether both matrices hold the same sequences, scores and
// backlinks.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.left == o.left && m.top == o.top &&
		slices.Equal(m.scores, o.scores) && slices.Equal(m.links, o.links)
}

// Clone returns an independent copy of m.
func (m *Matrix) Clone() *Matrix {
	c := *m
	c.scores = slices.Clone(m.scores)
	c.links = slices.Clone(m.links)
	return &c
}

func (m *Matrix) reset() {
	clear(m.scores)
	clear(m.links)
}
