package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/render/text"
)

// Browser styles
var (
	pathStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	offPathStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browseDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	browseHeadStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// AlignmentModel - Interactive alignment browser
// =============================================================================

// AlignmentModel is the bubbletea model that steps through the optimal
// alignments of a matrix, highlighting the path of the current one.
type AlignmentModel struct {
	Matrix     *align.Matrix
	Alignments []align.Alignment
	LeftName   string
	TopName    string
	Index      int
}

// NewAlignmentModel creates a browser positioned on the first alignment.
func NewAlignmentModel(m *align.Matrix, alns []align.Alignment, leftName, topName string) AlignmentModel {
	return AlignmentModel{
		Matrix:     m,
		Alignments: alns,
		LeftName:   leftName,
		TopName:    topName,
	}
}

func (m AlignmentModel) Init() tea.Cmd {
	return nil
}

func (m AlignmentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.Index < len(m.Alignments)-1 {
				m.Index++
			}
		case "left", "h", "p":
			if m.Index > 0 {
				m.Index--
			}
		case "home", "g":
			m.Index = 0
		case "end", "G":
			if len(m.Alignments) > 0 {
				m.Index = len(m.Alignments) - 1
			}
		}
	}
	return m, nil
}

func (m AlignmentModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s vs %s", m.LeftName, m.TopName)))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("←/→ previous/next  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Alignments) == 0 {
		b.WriteString(text.Matrix(m.Matrix, text.Options{Styled: true}))
		b.WriteString("\n\n")
		b.WriteString(browseDimStyle.Render("no alignments"))
		b.WriteString("\n")
		return b.String()
	}

	a := m.Alignments[m.Index]
	b.WriteString(m.matrixView(alignmentPath(a)))
	b.WriteString("\n\n")
	b.WriteString("  " + a.Left + "\n")
	b.WriteString("  " + pathStyle.Render(a.Midline()) + "\n")
	b.WriteString("  " + a.Top + "\n\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  score %d  identity %.1f%%  [%d/%d]",
		m.Matrix.FinalScore(), a.Identity()*100, m.Index+1, len(m.Alignments))))
	b.WriteString("\n")

	return b.String()
}

// matrixView renders the matrix with the cells on path emphasized.
func (m AlignmentModel) matrixView(path map[[2]int]bool) string {
	mat := m.Matrix
	headers := []string{"", ""}
	for i := 0; i < len(mat.Top()); i++ {
		headers = append(headers, string(mat.Top()[i]))
	}
	rows := make([][]string, mat.Rows())
	for i := range rows {
		rows[i] = make([]string, mat.Cols()+1)
		if i > 0 {
			rows[i][0] = "\n" + string(mat.Left()[i-1])
		}
	}
	for c := range mat.Cells() {
		rows[c.Row][c.Col+1] = text.CellText(c)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return browseHeadStyle
			}
			if path[[2]int{row, col - 1}] {
				return pathStyle
			}
			return offPathStyle
		}).
		Render()
}

// alignmentPath returns the matrix cells an alignment passes through,
// from the top-left corner to the bottom-right one.
func alignmentPath(a align.Alignment) map[[2]int]bool {
	path := map[[2]int]bool{{0, 0}: true}
	row, col := 0, 0
	for i := 0; i < a.Len(); i++ {
		switch {
		case a.Left[i] == align.GapChar:
			col++
		case a.Top[i] == align.GapChar:
			row++
		default:
			row++
			col++
		}
		path[[2]int{row, col}] = true
	}
	return path
}
