package align

import (
	"errors"
	"slices"
	"testing"
)

var fillCases = []struct {
	name      string
	left, top string
}{
	{"scenario", "CGCA", "CACGTAT"},
	{"identical", "ACGT", "ACGT"},
	{"single mismatch", "A", "C"},
	{"left empty", "", "ACG"},
	{"top empty", "ACG", ""},
	{"both empty", "", ""},
	{"repeats", "AAAA", "AA"},
	{"protein", "HEAGAWGHEE", "PAWHEAE"},
}

func rowScores(t *testing.T, m *Matrix, row int) []int {
	t.Helper()
	out := make([]int, m.Cols())
	for j := range out {
		s, err := m.Score(row, j)
		if err != nil {
			t.Fatal(err)
		}
		out[j] = s
	}
	return out
}

func TestFillOrigin(t *testing.T) {
	for _, mode := range []Mode{SemiGlobal, Global} {
		for _, tc := range fillCases {
			m := NewMatrix(tc.left, tc.top)
			s := DefaultScoring()
			s.Mode = mode
			if err := Fill(m, s); err != nil {
				t.Fatalf("%s/%v: Fill error: %v", tc.name, mode, err)
			}
			if got, _ := m.Score(0, 0); got != 0 {
				t.Errorf("%s/%v: score(0, 0) = %d, want 0", tc.name, mode, got)
			}
			if got, _ := m.Backlinks(0, 0); got != NoBacklinks {
				t.Errorf("%s/%v: backlinks(0, 0) = %v, want none", tc.name, mode, got)
			}
		}
	}
}

// TestFillRecurrence recomputes every interior cell from its neighbours.
func TestFillRecurrence(t *testing.T) {
	for _, mode := range []Mode{SemiGlobal, Global} {
		for _, tc := range fillCases {
			t.Run(tc.name+"/"+mode.String(), func(t *testing.T) {
				s := DefaultScoring()
				s.Mode = mode
				m := NewMatrix(tc.left, tc.top)
				if err := Fill(m, s); err != nil {
					t.Fatal(err)
				}
				rows, cols := m.Rows(), m.Cols()
				for i := 1; i < rows; i++ {
					for j := 1; j < cols; j++ {
						d, _ := m.Score(i-1, j-1)
						if tc.left[i-1] == tc.top[j-1] {
							d += s.Match
						} else {
							d += s.Mismatch
						}
						l, _ := m.Score(i, j-1)
						if mode == SemiGlobal && i == rows-1 {
							l += s.TerminalGap
						} else {
							l += s.Gap
						}
						u, _ := m.Score(i-1, j)
						if mode == SemiGlobal && j == cols-1 {
							u += s.TerminalGap
						} else {
							u += s.Gap
						}
						want := max(d, l, u)
						got, _ := m.Score(i, j)
						if got != want {
							t.Fatalf("score(%d, %d) = %d, want %d", i, j, got, want)
						}
						var links Backlink
						if d == want {
							links |= Diagonal
						}
						if l == want {
							links |= Left
						}
						if u == want {
							links |= Up
						}
						if bl, _ := m.Backlinks(i, j); bl != links {
							t.Fatalf("backlinks(%d, %d) = %v, want %v", i, j, bl, links)
						}
					}
				}
			})
		}
	}
}

func TestFillEdges(t *testing.T) {
	m := NewMatrix("CGCA", "CACGTAT")
	if err := Fill(m, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < m.Rows(); i++ {
		if s, _ := m.Score(i, 0); s != 0 {
			t.Errorf("semi-global score(%d, 0) = %d, want 0", i, s)
		}
		if bl, _ := m.Backlinks(i, 0); bl != Up {
			t.Errorf("backlinks(%d, 0) = %v, want up", i, bl)
		}
	}
	for j := 1; j < m.Cols(); j++ {
		if s, _ := m.Score(0, j); s != 0 {
			t.Errorf("semi-global score(0, %d) = %d, want 0", j, s)
		}
		if bl, _ := m.Backlinks(0, j); bl != Left {
			t.Errorf("backlinks(0, %d) = %v, want left", j, bl)
		}
	}

	g := DefaultScoring()
	g.Mode = Global
	if err := Fill(m, g); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < m.Rows(); i++ {
		if s, _ := m.Score(i, 0); s != -i {
			t.Errorf("global score(%d, 0) = %d, want %d", i, s, -i)
		}
	}
	for j := 0; j < m.Cols(); j++ {
		if s, _ := m.Score(0, j); s != -j {
			t.Errorf("global score(0, %d) = %d, want %d", j, s, -j)
		}
	}
}

func TestFillScenario(t *testing.T) {
	semi := NewMatrix("CGCA", "CACGTAT")
	if err := Fill(semi, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	if got := semi.FinalScore(); got != 3 {
		t.Errorf("semi-global final score = %d, want 3", got)
	}
	if got, want := rowScores(t, semi, 4), []int{0, 0, 2, 2, 2, 2, 3, 3}; !slices.Equal(got, want) {
		t.Errorf("semi-global last row = %v, want %v", got, want)
	}

	s := DefaultScoring()
	s.Mode = Global
	global := NewMatrix("CGCA", "CACGTAT")
	if err := Fill(global, s); err != nil {
		t.Fatal(err)
	}
	if got := global.FinalScore(); got != 0 {
		t.Errorf("global final score = %d, want 0", got)
	}
	if got, want := rowScores(t, global, 4), []int{-4, -2, 0, 1, 2, 1, 1, 0}; !slices.Equal(got, want) {
		t.Errorf("global last row = %v, want %v", got, want)
	}
	if semi.Equal(global) {
		t.Error("global and semi-global matrices should differ")
	}
}

func TestFillDeterministic(t *testing.T) {
	a := NewMatrix("CGCA", "CACGTAT")
	b := NewMatrix("CGCA", "CACGTAT")
	if err := Fill(a, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	if err := Fill(b, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("two fills of the same input differ")
	}
}

func TestFillIdempotent(t *testing.T) {
	m := NewMatrix("HEAGAWGHEE", "PAWHEAE")
	if err := Fill(m, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	first := m.Clone()

	if err := Fill(m, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(first) {
		t.Error("refilling a filled matrix changed it")
	}

	if _, err := Traceback(m); err != nil {
		t.Fatal(err)
	}
	if err := Fill(m, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(first) {
		t.Error("refilling a pruned matrix should restore every backlink")
	}
}

func TestFillEmptySequence(t *testing.T) {
	m := NewMatrix("", "ACG")
	if err := Fill(m, DefaultScoring()); err != nil {
		t.Fatal(err)
	}
	if got, want := rowScores(t, m, 0), []int{0, 0, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("semi-global row = %v, want %v", got, want)
	}

	s := DefaultScoring()
	s.Mode = Global
	if err := Fill(m, s); err != nil {
		t.Fatal(err)
	}
	if got, want := rowScores(t, m, 0), []int{0, -1, -2, -3}; !slices.Equal(got, want) {
		t.Errorf("global row = %v, want %v", got, want)
	}
}

func TestFillRejectsUnknownMode(t *testing.T) {
	m := NewMatrix("A", "A")
	s := DefaultScoring()
	s.Mode = Mode(9)
	if err := Fill(m, s); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Fill error = %v, want ErrUnknownMode", err)
	}
}
