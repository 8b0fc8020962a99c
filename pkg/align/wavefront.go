package align

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FillWavefront is [Fill] computed one anti-diagonal at a time, with the
// cells of each anti-diagonal split across up to workers goroutines.
//
// Cells on the same anti-diagonal only read cells from earlier ones, so they
// can be computed concurrently. Every anti-diagonal finishes before the next
// starts. The result is identical to [Fill]. With workers <= 1 it falls back
// to [Fill]. The context is checked between anti-diagonals.
func FillWavefront(ctx context.Context, m *Matrix, s Scoring, workers int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if workers <= 1 {
		return Fill(m, s)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	m.reset()
	if err := initEdges(m, s); err != nil {
		return err
	}

	last := (m.rows - 1) + (m.cols - 1)
	for d := 2; d <= last; d++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lo, hi := max(1, d-(m.cols-1)), min(m.rows-1, d-1)
		if lo > hi {
			continue
		}
		chunk := (hi - lo + workers) / workers

		var g errgroup.Group
		for start := lo; start <= hi; start += chunk {
			end := min(start+chunk-1, hi)
			g.Go(func() error {
				for i := start; i <= end; i++ {
					if err := fillCell(m, s, i, d-i); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
