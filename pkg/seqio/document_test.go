package seqio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seqalign/pkg/align"
	errs "github.com/matzehuels/seqalign/pkg/errors"
)

func alignedDocument(t *testing.T) (*align.Matrix, Document) {
	t.Helper()
	s := align.DefaultScoring()
	m, alns, err := align.Align("CGCA", "CACGTAT", s)
	if err != nil {
		t.Fatal(err)
	}
	return m, NewDocument(m, s, alns)
}

func TestNewDocument(t *testing.T) {
	m, doc := alignedDocument(t)

	if doc.Rows != 5 || doc.Cols != 8 {
		t.Errorf("dims = %dx%d, want 5x8", doc.Rows, doc.Cols)
	}
	if doc.Score != 3 {
		t.Errorf("Score = %d, want 3", doc.Score)
	}
	if len(doc.Scores) != m.Rows()*m.Cols() {
		t.Errorf("len(Scores) = %d, want %d", len(doc.Scores), m.Rows()*m.Cols())
	}
	// (0, 1) follows a left backlink after pruning.
	if doc.Backlinks[1] != int(align.Left) {
		t.Errorf("Backlinks[1] = %d, want %d", doc.Backlinks[1], align.Left)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	m, doc := alignedDocument(t)

	path := filepath.Join(t.TempDir(), "aln.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	rebuilt, err := got.Matrix()
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if !rebuilt.Equal(m) {
		t.Error("rebuilt matrix differs from the original")
	}
}

func TestDocumentModeEncoding(t *testing.T) {
	_, doc := alignedDocument(t)
	doc.Scoring.Mode = align.Global

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"mode": "global"`)) {
		t.Errorf("encoded document does not name the mode:\n%s", buf.String())
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Scoring.Mode != align.Global {
		t.Errorf("Mode = %v, want %v", got.Scoring.Mode, align.Global)
	}
}

func TestDocumentMatrixRejectsInconsistentData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"wrong rows", func(d *Document) { d.Rows++ }},
		{"short scores", func(d *Document) { d.Scores = d.Scores[:3] }},
		{"short backlinks", func(d *Document) { d.Backlinks = d.Backlinks[1:] }},
		{"unknown direction", func(d *Document) { d.Backlinks[5] = 8 }},
		{"negative direction", func(d *Document) { d.Backlinks[5] = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, doc := alignedDocument(t)
			tt.mutate(&doc)
			if _, err := doc.Matrix(); !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("Matrix() error = %v, want code %v", err, errs.ErrCodeInvalidInput)
			}
		})
	}
}

func TestReadJSONInvalid(t *testing.T) {
	if _, err := ReadJSON(bytes.NewBufferString("{not json")); err == nil {
		t.Error("ReadJSON should fail on malformed input")
	}
}
