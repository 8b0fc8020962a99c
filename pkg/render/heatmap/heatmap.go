// Package heatmap renders the score matrix as an interactive go-echarts
// heatmap.
//
// Columns follow the top sequence and rows the left sequence, with the
// origin in the top-left corner as in the table view. Hovering a cell shows
// its score.
package heatmap

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/seqalign/pkg/align"
)

// Options configures the chart page.
type Options struct {
	Title      string // Chart title; defaults to "<left> vs <top>"
	AssetsHost string // echarts asset host; empty uses the go-echarts default
}

var palette = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Axes returns the category labels of both axes. Labels carry the index so
// repeated characters stay distinct; index 0 is the empty prefix "-".
// Row labels are listed bottom-up, the order echarts draws a y axis in.
func Axes(m *align.Matrix) (cols, rows []string) {
	cols = make([]string, m.Cols())
	for j := range cols {
		cols[j] = axisLabel(j, m.Top())
	}
	rows = make([]string, m.Rows())
	for i := range rows {
		rows[i] = axisLabel(i, m.Left())
	}
	slices.Reverse(rows)
	return cols, rows
}

func axisLabel(i int, s string) string {
	if i == 0 {
		return "0 -"
	}
	return fmt.Sprintf("%d %c", i, s[i-1])
}

// Data returns one point per cell as [col, y, score], where y counts rows
// from the bottom. It also returns the lowest and highest score.
func Data(m *align.Matrix) (data []opts.HeatMapData, lo, hi int) {
	data = make([]opts.HeatMapData, 0, m.Rows()*m.Cols())
	first := true
	for c := range m.Cells() {
		y := m.Rows() - 1 - c.Row
		data = append(data, opts.HeatMapData{Value: [3]any{c.Col, y, c.Score}})
		if first || c.Score < lo {
			lo = c.Score
		}
		if first || c.Score > hi {
			hi = c.Score
		}
		first = false
	}
	return data, lo, hi
}

// Render writes the heatmap page for m to w.
func Render(w io.Writer, m *align.Matrix, o Options) error {
	title := o.Title
	if title == "" {
		title = fmt.Sprintf("%s vs %s", m.Left(), m.Top())
	}
	cols, rows := Axes(m)
	data, lo, hi := Data(m)

	initOpts := opts.Initialization{PageTitle: title, Width: "900px", Height: "700px"}
	if o.AssetsHost != "" {
		initOpts.AssetsHost = o.AssetsHost
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("final score %d", m.FinalScore())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "top"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows, Name: "left"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: palette},
		}),
	)
	hm.AddSeries("score", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	var buf bytes.Buffer
	if err := hm.Render(&buf); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
