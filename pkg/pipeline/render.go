package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/render"
	"github.com/matzehuels/seqalign/pkg/render/heatmap"
	"github.com/matzehuels/seqalign/pkg/render/html"
	"github.com/matzehuels/seqalign/pkg/render/nodelink"
	"github.com/matzehuels/seqalign/pkg/render/text"
	"github.com/matzehuels/seqalign/pkg/seqio"
)

// Render generates output artifacts in the requested formats from a
// traced matrix and its document. ctx bounds the Graphviz layout.
func Render(ctx context.Context, m *align.Matrix, doc seqio.Document, opts Options) (map[string][]byte, error) {
	r := &renderer{ctx: ctx, m: m, doc: doc, opts: opts}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := r.render(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderer memoizes the DOT source and SVG shared by the graph formats.
type renderer struct {
	ctx  context.Context
	m    *align.Matrix
	doc  seqio.Document
	opts Options

	dot string
	svg []byte
}

func (r *renderer) render(format string) ([]byte, error) {
	title := fmt.Sprintf("%s vs %s", r.opts.LeftName, r.opts.TopName)
	var buf bytes.Buffer

	switch format {
	case FormatText:
		buf.WriteString(text.Matrix(r.m, text.Options{}))
		buf.WriteString("\n\n")
		buf.WriteString(text.Alignments(r.doc.Alignments, r.doc.Score, text.Options{}))
	case FormatJSON:
		if err := seqio.WriteJSON(r.doc, &buf); err != nil {
			return nil, err
		}
	case FormatHTML:
		if err := html.Render(&buf, r.m, r.doc.Alignments, html.Options{Title: title}); err != nil {
			return nil, err
		}
	case FormatHeatmap:
		if err := heatmap.Render(&buf, r.m, heatmap.Options{Title: title}); err != nil {
			return nil, err
		}
	case FormatFASTA:
		if err := seqio.WriteFASTA(&buf, r.opts.LeftName, r.opts.TopName, r.doc.Alignments); err != nil {
			return nil, err
		}
	case FormatDOT:
		dot, err := r.dotSource()
		if err != nil {
			return nil, err
		}
		buf.WriteString(dot)
	case FormatSVG:
		return r.svgData()
	case FormatPDF:
		svg, err := r.svgData()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	case FormatPNG:
		svg, err := r.svgData()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, PNGScale)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

func (r *renderer) dotSource() (string, error) {
	if r.dot != "" {
		return r.dot, nil
	}
	g, err := nodelink.FromMatrix(r.m)
	if err != nil {
		return "", fmt.Errorf("build backlink graph: %w", err)
	}
	r.dot = nodelink.ToDOT(g, nodelink.Options{Detailed: r.opts.Detailed})
	return r.dot, nil
}

func (r *renderer) svgData() ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	dot, err := r.dotSource()
	if err != nil {
		return nil, err
	}
	svg, err := nodelink.RenderSVG(r.ctx, dot)
	if err != nil {
		return nil, err
	}
	r.svg = svg
	return svg, nil
}
