// Package pkg provides the core libraries of seqalign.
//
// # Overview
//
// seqalign aligns two sequences with a dynamic-programming matrix and reports
// every optimal alignment. The pkg directory is organized into four areas:
//
//  1. Domain logic: [align], [seqio], [dag]
//  2. Visualization: [render] and its subpackages
//  3. Orchestration: [pipeline]
//  4. Infrastructure: [cache], [store], [config], [server], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	sequences (literal or FASTA)
//	         ↓
//	    [seqio] package (read and normalize)
//	         ↓
//	    [align] package (fill the matrix, trace every optimal path)
//	         ↓
//	    [render] packages (text, HTML, heatmap, Graphviz)
//	         ↓
//	    TXT/JSON/HTML/DOT/SVG/PDF/PNG/FASTA output
//
// # Quick Start
//
//	m, alns, err := align.Align("CGCA", "CACGTAT", align.DefaultScoring())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(text.Matrix(m, text.Options{}))
//	for _, a := range alns {
//	    fmt.Println(a)
//	}
//
// # Main Packages
//
// [align] - The matrix, the fill engine (sequential and wavefront) and the
// traceback engine that prunes backlinks off optimal paths.
//
// [seqio] - FASTA input and output, plus the JSON document form of a filled
// matrix.
//
// [dag] - The backlink graph of a matrix as a directed acyclic graph.
//
// [render] - Terminal tables, HTML pages, ECharts heatmaps and Graphviz
// diagrams, with SVG to PDF/PNG conversion.
//
// [pipeline] - Align → render with caching, shared by the CLI and the HTTP
// server.
//
// [cache] - File, Redis and null caches plus the key derivation.
//
// [store] - Memory, file and MongoDB stores for alignments kept by the server.
//
// [server] - The HTTP API and its Prometheus metrics.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/align/...    # Specific package
//	go test -run Example       # Examples only
//
// Redis and MongoDB tests run only when SEQALIGN_REDIS_ADDR and
// SEQALIGN_MONGO_URI are set.
//
// [align]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/align
// [seqio]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/seqio
// [dag]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/dag
// [render]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/seqalign/pkg/observability
package pkg
