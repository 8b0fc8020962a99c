// Package nodelink draws the pruned backlink graph of an alignment matrix.
//
// # Overview
//
// After traceback only the backlinks on optimal paths survive. [FromMatrix]
// turns them into a [dag.DAG]: a node per cell that lies on a path and an
// edge per backlink. [ToDOT] lays the graph out with the origin at the top,
// and [RenderSVG] runs Graphviz on it.
//
//	g, err := nodelink.FromMatrix(m)
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Gap moves (up and left backlinks) are drawn dashed. PDF and PNG output go
// through render.ToPDF and render.ToPNG.
//
// # Options
//
//   - Detailed: node labels also show the cell position and aligned characters
//
// [dag.DAG]: github.com/matzehuels/seqalign/pkg/dag.DAG
package nodelink
