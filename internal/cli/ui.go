package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// out receives every status line. Tests swap it for a buffer.
var out io.Writer = os.Stdout

// Palette. Numbers are ANSI 256 colors.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink  = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// status is a one-character marker in front of a message.
type status struct {
	icon  string
	style lipgloss.Style
	// body, when set, also styles the message text
	body *lipgloss.Style
}

var (
	warnStyle = lipgloss.NewStyle().Foreground(colorYellow)

	statusSuccess = status{icon: "✓", style: lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{icon: "✗", style: lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{icon: "!", style: warnStyle, body: &warnStyle}
	statusInfo    = status{icon: "›", style: lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.body != nil {
		msg = s.body.Render(msg)
	}
	fmt.Fprintln(out, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printError(format string, args ...any)   { statusError.print(format, args...) }
func printWarning(format string, args ...any) { statusWarning.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented, dimmed line under a status message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints a one-line summary of a run, e.g.
// "5x8 matrix · score 1 · 3 alignments · fresh".
func printStats(rows, cols, alignments, score int, cached bool) {
	noun := "alignments"
	if alignments == 1 {
		noun = "alignment"
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%dx%d matrix", rows, cols)),
		StyleDim.Render(fmt.Sprintf("score %d", score)),
		StyleDim.Render(fmt.Sprintf("%d %s", alignments, noun)),
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, StyleDim.Render(iconFresh))
	}
	fmt.Fprintln(out, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(out) }
