package nodelink

import (
	"fmt"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/dag"
)

// CellID returns the node ID used for (row, col).
func CellID(row, col int) string { return fmt.Sprintf("%d,%d", row, col) }

// FromMatrix builds the backlink graph of a traced matrix. Every cell with
// backlinks becomes a node together with the cells it points to.
//
// The bottom-right cell is always included and marked [dag.NodeKindStart].
// Cells without backlinks are marked [dag.NodeKindEnd].
func FromMatrix(m *align.Matrix) (*dag.DAG, error) {
	g := dag.New(dag.Metadata{
		"left":  m.Left(),
		"top":   m.Top(),
		"score": m.FinalScore(),
	})

	add := func(row, col int) error {
		id := CellID(row, col)
		if _, ok := g.Node(id); ok {
			return nil
		}
		c, err := m.Cell(row, col)
		if err != nil {
			return err
		}
		kind := dag.NodeKindCell
		switch {
		case row == m.Rows()-1 && col == m.Cols()-1:
			kind = dag.NodeKindStart
		case c.Links == align.NoBacklinks:
			kind = dag.NodeKindEnd
		}
		return g.AddNode(dag.Node{
			ID:    id,
			Row:   row,
			Col:   col,
			Label: fmt.Sprintf("%d", c.Score),
			Kind:  kind,
			Meta:  dag.Metadata{"score": c.Score, "pair": pairLabel(m, row, col)},
		})
	}

	if err := add(m.Rows()-1, m.Cols()-1); err != nil {
		return nil, err
	}
	for c := range m.Cells() {
		if c.Links == align.NoBacklinks {
			continue
		}
		if err := add(c.Row, c.Col); err != nil {
			return nil, err
		}
		for _, d := range c.Links.Directions() {
			r, col := d.Step(c.Row, c.Col)
			if err := add(r, col); err != nil {
				return nil, fmt.Errorf("backlink %v from (%d, %d): %w", d, c.Row, c.Col, err)
			}
			if err := g.AddEdge(dag.Edge{From: CellID(c.Row, c.Col), To: CellID(r, col), Label: d.String()}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// pairLabel shows the characters heading row and col, with '-' for the
// empty first row or column.
func pairLabel(m *align.Matrix, row, col int) string {
	l, t := byte(align.GapChar), byte(align.GapChar)
	if row > 0 {
		l = m.Left()[row-1]
	}
	if col > 0 {
		t = m.Top()[col-1]
	}
	return string([]byte{l, '/', t})
}
