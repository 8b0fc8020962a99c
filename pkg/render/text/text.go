// Package text renders alignment matrices and alignments for the terminal.
//
// The matrix is drawn as a table with the top sequence across and the left
// sequence down. Each cell holds two lines: the diagonal ('\') and up ('^')
// backlinks on the first, the left ('<') backlink and the score on the
// second.
//
//	   │    │ C  │ A
//	───┼────┼────┼────
//	   │    │    │
//	   │ 0  │ <0 │ <0
package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/seqalign/pkg/align"
)

// Options controls styling.
type Options struct {
	// Styled enables colors. Leave it off when writing to files.
	Styled bool
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	finalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Glyphs for each backlink direction.
const (
	GlyphDiagonal = `\`
	GlyphUp       = "^"
	GlyphLeft     = "<"
)

// CellText returns the two-line content of cell c.
func CellText(c align.Cell) string {
	top := [2]string{" ", " "}
	if c.Links.Has(align.Diagonal) {
		top[0] = GlyphDiagonal
	}
	if c.Links.Has(align.Up) {
		top[1] = GlyphUp
	}
	left := " "
	if c.Links.Has(align.Left) {
		left = GlyphLeft
	}
	return top[0] + top[1] + "\n" + left + fmt.Sprint(c.Score)
}

// Matrix renders m as a table.
func Matrix(m *align.Matrix, opts Options) string {
	headers := make([]string, 0, m.Cols()+1)
	headers = append(headers, "", "")
	for i := 0; i < len(m.Top()); i++ {
		headers = append(headers, string(m.Top()[i]))
	}

	rows := make([][]string, m.Rows())
	for i := range rows {
		rows[i] = make([]string, m.Cols()+1)
		if i > 0 {
			rows[i][0] = "\n" + string(m.Left()[i-1])
		}
	}
	for c := range m.Cells() {
		rows[c.Row][c.Col+1] = CellText(c)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...)

	if opts.Styled {
		last := m.Rows() - 1
		t = t.BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow || col == 0:
					return headerStyle
				case row == last && col == m.Cols():
					return finalStyle
				}
				return lipgloss.NewStyle()
			})
	}
	out := t.Render()
	if opts.Styled {
		out = strings.NewReplacer(
			GlyphDiagonal, linkStyle.Render(GlyphDiagonal),
			GlyphUp, linkStyle.Render(GlyphUp),
			GlyphLeft, linkStyle.Render(GlyphLeft),
		).Replace(out)
	}
	return out
}

// Alignments renders each alignment as three lines (left, midline, top)
// under a numbered heading.
func Alignments(alns []align.Alignment, score int, opts Options) string {
	var b strings.Builder
	for i, a := range alns {
		if i > 0 {
			b.WriteString("\n")
		}
		heading := fmt.Sprintf("Alignment %d of %d  score %d  identity %.1f%%", i+1, len(alns), score, a.Identity()*100)
		mid := a.Midline()
		if opts.Styled {
			heading = headerStyle.Render(heading)
			mid = matchStyle.Render(mid)
		}
		b.WriteString(heading + "\n")
		b.WriteString("  " + a.Left + "\n")
		b.WriteString("  " + mid + "\n")
		b.WriteString("  " + a.Top + "\n")
	}
	if len(alns) == 0 {
		msg := "no alignments"
		if opts.Styled {
			msg = dimStyle.Render(msg)
		}
		b.WriteString(msg + "\n")
	}
	return b.String()
}
