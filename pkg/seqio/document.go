package seqio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/seqalign/pkg/align"
	errs "github.com/matzehuels/seqalign/pkg/errors"
)

// Document is the serialized form of a filled, traced matrix.
type Document struct {
	Left       string            `json:"left"`
	Top        string            `json:"top"`
	Scoring    align.Scoring     `json:"scoring"`
	Rows       int               `json:"rows"`
	Cols       int               `json:"cols"`
	Score      int               `json:"score"`
	Scores     []int             `json:"scores"`
	Backlinks  []int             `json:"backlinks"`
	Alignments []align.Alignment `json:"alignments"`
}

// NewDocument captures m, the scoring it was filled with and its alignments.
func NewDocument(m *align.Matrix, s align.Scoring, alns []align.Alignment) Document {
	doc := Document{
		Left:       m.Left(),
		Top:        m.Top(),
		Scoring:    s,
		Rows:       m.Rows(),
		Cols:       m.Cols(),
		Score:      m.FinalScore(),
		Scores:     make([]int, 0, m.Rows()*m.Cols()),
		Backlinks:  make([]int, 0, m.Rows()*m.Cols()),
		Alignments: alns,
	}
	for c := range m.Cells() {
		doc.Scores = append(doc.Scores, c.Score)
		doc.Backlinks = append(doc.Backlinks, int(c.Links))
	}
	return doc
}

// Matrix rebuilds the matrix described by d.
func (d Document) Matrix() (*align.Matrix, error) {
	m := align.NewMatrix(d.Left, d.Top)
	n := m.Rows() * m.Cols()
	if d.Rows != m.Rows() || d.Cols != m.Cols() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document is %dx%d but sequences need %dx%d", d.Rows, d.Cols, m.Rows(), m.Cols())
	}
	if len(d.Scores) != n || len(d.Backlinks) != n {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document has %d scores and %d backlinks, want %d", len(d.Scores), len(d.Backlinks), n)
	}

	all := int(align.Up | align.Left | align.Diagonal)
	for i := range n {
		row, col := i/m.Cols(), i%m.Cols()
		if err := m.SetScore(row, col, d.Scores[i]); err != nil {
			return nil, err
		}
		b := d.Backlinks[i]
		if b < 0 || b&^all != 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "cell (%d, %d) has invalid backlinks %d", row, col, b)
		}
		if err := m.AddBacklink(row, col, align.Backlink(b)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a document from r. It does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ImportJSON reads a document from the JSON file at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
