package align

// Fill computes every score and backlink of m under s.
//
// All cells are reset first, so filling a matrix twice with the same scoring
// produces the same result. Edges are initialized with [Scoring] edge gap
// costs, then interior cells are computed row by row: each cell depends on
// its upper-left, left and upper neighbours, which are final by the time it
// is visited.
func Fill(m *Matrix, s Scoring) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.reset()
	if err := initEdges(m, s); err != nil {
		return err
	}
	for i := 1; i < m.rows; i++ {
		for j := 1; j < m.cols; j++ {
			if err := fillCell(m, s, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// initEdges scores row 0 and column 0. Column 0 cells link up, row 0 cells
// link left, and (0, 0) stays at 0 with no links.
func initEdges(m *Matrix, s Scoring) error {
	if err := m.SetScore(0, 0, 0); err != nil {
		return err
	}
	gap := s.edgeGap()
	for i := 1; i < m.rows; i++ {
		prev, err := m.Score(i-1, 0)
		if err != nil {
			return err
		}
		if err := m.SetScore(i, 0, prev+gap); err != nil {
			return err
		}
		if err := m.AddBacklink(i, 0, Up); err != nil {
			return err
		}
	}
	for j := 1; j < m.cols; j++ {
		prev, err := m.Score(0, j-1)
		if err != nil {
			return err
		}
		if err := m.SetScore(0, j, prev+gap); err != nil {
			return err
		}
		if err := m.AddBacklink(0, j, Left); err != nil {
			return err
		}
	}
	return nil
}

// fillCell computes (i, j) from its three predecessors. Every candidate that
// reaches the maximum gets a backlink.
func fillCell(m *Matrix, s Scoring, i, j int) error {
	diag, err := m.Score(i-1, j-1)
	if err != nil {
		return err
	}
	match, err := m.Matches(i, j)
	if err != nil {
		return err
	}
	diag += s.substitution(match)

	left, err := m.Score(i, j-1)
	if err != nil {
		return err
	}
	left += s.leftGap(m.rows, i)

	up, err := m.Score(i-1, j)
	if err != nil {
		return err
	}
	up += s.upGap(m.cols, j)

	best := max(diag, left, up)
	if err := m.SetScore(i, j, best); err != nil {
		return err
	}

	var links Backlink
	if diag == best {
		links |= Diagonal
	}
	if left == best {
		links |= Left
	}
	if up == best {
		links |= Up
	}
	return m.AddBacklink(i, j, links)
}
