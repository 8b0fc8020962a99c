package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/seqalign/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the cell position and aligned characters to each label.
	Detailed bool
}

// attrs is an ordered DOT attribute list.
type attrs [][2]string

func (a attrs) String() string {
	parts := make([]string, len(a))
	for i, kv := range a {
		parts[i] = kv[0] + "=" + quoteIfNeeded(kv[1])
	}
	return strings.Join(parts, ", ")
}

var bareID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$|^-?[0-9]*\.?[0-9]+$`)

func quoteIfNeeded(v string) string {
	if bareID.MatchString(v) {
		return v
	}
	return strconv.Quote(v)
}

var (
	graphAttrs = attrs{{"rankdir", "TB"}, {"bgcolor", "transparent"}, {"ranksep", "0.4"}, {"nodesep", "0.3"}}
	nodeAttrs  = attrs{{"shape", "box"}, {"style", "rounded,filled"}, {"fillcolor", "white"}, {"fontsize", "14"}, {"margin", "0.15,0.05"}}
	edgeAttrs  = attrs{{"dir", "back"}}
)

// kindAttrs styles the start and end cells of the paths.
var kindAttrs = map[dag.NodeKind]attrs{
	dag.NodeKindStart: {{"fillcolor", "lightblue"}, {"penwidth", "2"}},
	dag.NodeKindEnd:   {{"style", "rounded,filled,dashed"}, {"fillcolor", "lightgrey"}},
}

// gapEdge styles the horizontal and vertical moves that insert a gap.
var gapEdge = attrs{{"style", "dashed"}, {"color", "gray40"}}

// ToDOT writes g in Graphviz DOT.
//
// Every edge is emitted predecessor first with dir=back: the origin ranks at
// the top while arrowheads still follow the backlinks. Cells of one matrix
// row share a rank.
func ToDOT(g *dag.DAG, opts Options) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	ga := append(slices.Clone(graphAttrs), [2]string{"tooltip", pathsTooltip(g)})
	fmt.Fprintf(&b, "  graph [%s];\n  node [%s];\n  edge [%s];\n\n", ga, nodeAttrs, edgeAttrs)

	for _, n := range g.Nodes() {
		a := append(attrs{{"label", fmtLabel(*n, opts.Detailed)}}, kindAttrs[n.Kind]...)
		fmt.Fprintf(&b, "  %q [%s];\n", n.ID, a)
	}

	b.WriteString("\n")
	for _, row := range g.RowIDs() {
		ids := dag.NodeIDs(g.NodesInRow(row))
		if len(ids) < 2 {
			continue
		}
		for i := range ids {
			ids[i] = strconv.Quote(ids[i])
		}
		fmt.Fprintf(&b, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	b.WriteString("\n")
	for _, e := range g.Edges() {
		a := attrs{{"tooltip", e.Label}}
		if e.Label != "diagonal" {
			a = append(a, gapEdge...)
		}
		fmt.Fprintf(&b, "  %q -> %q [%s];\n", e.To, e.From, a)
	}

	b.WriteString("}\n")
	return b.String()
}

// pathsTooltip names the number of optimal alignments drawn.
func pathsTooltip(g *dag.DAG) string {
	n, exact := g.PathCount()
	if !exact {
		return fmt.Sprintf("at least %d optimal alignments", n)
	}
	if n == 1 {
		return "1 optimal alignment"
	}
	return fmt.Sprintf("%d optimal alignments", n)
}

// fmtLabel is the score, optionally preceded by the cell position and
// followed by the character pair heading the cell.
func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}
	lines := []string{"(" + n.ID + ")", n.DisplayLabel()}
	if pair, ok := n.Meta["pair"].(string); ok {
		lines = append(lines, pair)
	}
	return strings.Join(lines, "\n")
}

// RenderSVG lays out dot with Graphviz and returns the SVG. Convert it with
// render.ToPDF or render.ToPNG for raster and print output.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return pixelSize(buf.Bytes()), nil
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	viewBox    = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// pixelSize replaces Graphviz's point-based width and height with pixel
// sizes taken from the viewBox, so browsers and rsvg agree on the size.
func pixelSize(svg []byte) []byte {
	m := viewBox.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(tag))
}
