// Package align computes pairwise sequence alignments by dynamic programming.
//
// # Overview
//
// Two sequences are laid out on a scoring [Matrix]: the left sequence runs
// down the rows and the top sequence across the columns. Row and column 0
// stand for "before any character", so a matrix for sequences of length n
// and m has (n+1) x (m+1) cells.
//
// Alignment happens in three steps:
//
//  1. [NewMatrix] allocates the grid with every score 0 and no backlinks.
//  2. [Fill] (or [FillWavefront]) initializes the edges and computes every
//     interior cell, recording a [Backlink] for each predecessor that ties
//     for the best score.
//  3. [Traceback] walks the backlinks from the bottom-right cell back to the
//     origin, returning every optimal [Alignment], and clears backlinks on
//     cells that no optimal path reaches.
//
// [Align] runs all three steps.
//
// # Scoring
//
// [Scoring] holds flat match, mismatch, gap and terminal gap scores and the
// alignment [Mode]. In [SemiGlobal] mode (the default) gaps at either end of
// a sequence cost [Scoring.TerminalGap], which is 0 by default so overhangs
// are free. In [Global] mode every gap costs [Scoring.Gap].
//
// # Errors
//
// Every matrix accessor checks its indices and returns a [*RangeError]
// wrapping [ErrOutOfRange] instead of clamping. Use errors.Is to test for it.
//
// # Example
//
//	m, alns, err := align.Align("CGCA", "CACGTAT", align.DefaultScoring())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.FinalScore())
//	for _, a := range alns {
//	    fmt.Println(a.Left)
//	    fmt.Println(a.Top)
//	}
package align
