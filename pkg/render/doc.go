// Package render turns filled alignment matrices into visual outputs.
//
// # Overview
//
// Each subpackage renders one view of the same data:
//
//   - [text]: terminal table of scores and backlinks, plus the alignments
//   - [html]: standalone HTML5 canvas drawing of the grid with arrows
//   - [heatmap]: interactive score heatmap built with go-echarts
//   - [nodelink]: the pruned backlink graph drawn by Graphviz
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [text]: github.com/matzehuels/seqalign/pkg/render/text
// [html]: github.com/matzehuels/seqalign/pkg/render/html
// [heatmap]: github.com/matzehuels/seqalign/pkg/render/heatmap
// [nodelink]: github.com/matzehuels/seqalign/pkg/render/nodelink
package render
