package heatmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seqalign/pkg/align"
)

func filled(t *testing.T, left, top string, mode align.Mode) *align.Matrix {
	t.Helper()
	s := align.DefaultScoring()
	s.Mode = mode
	m := align.NewMatrix(left, top)
	if err := align.Fill(m, s); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestAxes(t *testing.T) {
	cols, rows := Axes(filled(t, "GA", "GTA", align.Global))

	if diff := cmp.Diff([]string{"0 -", "1 G", "2 T", "3 A"}, cols); diff != "" {
		t.Errorf("cols mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2 A", "1 G", "0 -"}, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestData(t *testing.T) {
	data, lo, hi := Data(filled(t, "GA", "GTA", align.Global))

	if len(data) != 12 {
		t.Fatalf("len(data) = %d, want 12", len(data))
	}
	if lo != -3 || hi != 1 {
		t.Errorf("range = [%d, %d], want [-3, 1]", lo, hi)
	}
	// The origin sits on the top row of the chart.
	if got, want := data[0].Value, [3]any{0, 2, 0}; got != want {
		t.Errorf("data[0] = %v, want %v", got, want)
	}
	// The final cell is bottom-right.
	if got, want := data[11].Value, [3]any{3, 0, 1}; got != want {
		t.Errorf("data[11] = %v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, filled(t, "CGCA", "CACGTAT", align.SemiGlobal), Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CGCA vs CACGTAT", "heatmap", "final score 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}
