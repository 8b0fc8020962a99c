// Package html renders an alignment matrix as a standalone HTML5 page.
//
// The page draws the grid on a canvas: the top sequence across, the left
// sequence down, the score in every cell and an arrow for every backlink.
// The optimal alignments are listed below the drawing. The page has no
// external assets.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/matzehuels/seqalign/pkg/align"
)

// DefaultCellSize is the edge length of one grid cell in pixels.
const DefaultCellSize = 40

// Options configures the page.
type Options struct {
	Title    string // Page title; defaults to "<left>-<top>"
	CellSize int    // Cell edge in pixels; defaults to DefaultCellSize
}

//go:embed page.html.tmpl
var pageSource string

var page = template.Must(template.New("page").Parse(pageSource))

type arrow struct {
	X, Y    int
	Degrees int
}

type label struct {
	Text string
	X, Y int
}

type pageData struct {
	Title      string
	Cell       int
	Width      int
	Height     int
	GridX      []int
	GridY      []int
	GridRight  int
	GridBottom int
	Labels     []label
	Arrows     []arrow
	Alignments []align.Alignment
	Score      int
}

// Render writes the page for m and its alignments to w.
func Render(w io.Writer, m *align.Matrix, alns []align.Alignment, opts Options) error {
	data := layout(m, alns, opts)
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// layout places every label and arrow. Cell (row, col) occupies the square
// whose top-left corner is ((col+1)*cell, (row+1)*cell); the first row and
// column of the canvas hold the sequence characters.
func layout(m *align.Matrix, alns []align.Alignment, opts Options) pageData {
	cell := opts.CellSize
	if cell <= 0 {
		cell = DefaultCellSize
	}
	title := opts.Title
	if title == "" {
		title = m.Left() + "-" + m.Top()
	}

	d := pageData{
		Title:      title,
		Cell:       cell,
		Width:      cell * (m.Cols() + 2),
		Height:     cell * (m.Rows() + 2),
		GridRight:  cell * (m.Cols() + 1),
		GridBottom: cell * (m.Rows() + 1),
		Alignments: alns,
		Score:      m.FinalScore(),
	}
	for i := 1; i <= m.Cols()+1; i++ {
		d.GridX = append(d.GridX, i*cell)
	}
	for i := 1; i <= m.Rows()+1; i++ {
		d.GridY = append(d.GridY, i*cell)
	}

	for j := 0; j < len(m.Top()); j++ {
		d.Labels = append(d.Labels, label{Text: string(m.Top()[j]), X: cell/2 + (j+2)*cell, Y: cell * 2 / 3})
	}
	for i := 0; i < len(m.Left()); i++ {
		d.Labels = append(d.Labels, label{Text: string(m.Left()[i]), X: cell / 2, Y: cell*2/3 + (i+2)*cell})
	}

	for c := range m.Cells() {
		x, y := (c.Col+1)*cell, (c.Row+1)*cell
		d.Labels = append(d.Labels, label{Text: fmt.Sprint(c.Score), X: x + cell/2, Y: y + cell*2/3})
		if c.Links.Has(align.Left) {
			d.Arrows = append(d.Arrows, arrow{X: x, Y: y + cell/3, Degrees: 90})
		}
		if c.Links.Has(align.Up) {
			d.Arrows = append(d.Arrows, arrow{X: x + cell/3, Y: y, Degrees: 0})
		}
		if c.Links.Has(align.Diagonal) {
			d.Arrows = append(d.Arrows, arrow{X: x, Y: y, Degrees: 45})
		}
	}
	return d
}
