// Package pipeline provides the align → render pipeline for seqalign.
//
// This package implements the complete pipeline that the CLI and the HTTP
// server both use. By centralizing this logic, both entry points validate,
// cache and render in exactly the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Align: fill the dynamic-programming matrix and trace every optimal
//     alignment back through it
//  2. Render: generate output in the requested formats (text, JSON, HTML,
//     heatmap, DOT, SVG, PDF, PNG, FASTA)
//
// The result of the first stage is cached as a [seqio.Document] under the
// key of its inputs; every artifact is cached separately under the key of
// the alignment and the format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Left:    "CGCA",
//	    Top:     "CACGTAT",
//	    Scoring: align.DefaultScoring(),
//	    Formats: []string{"text", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/cache"
	errs "github.com/matzehuels/seqalign/pkg/errors"
	"github.com/matzehuels/seqalign/pkg/seqio"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultLeftName and DefaultTopName label sequences that have no name.
	DefaultLeftName = "left"
	DefaultTopName  = "top"

	// DefaultWorkers fills the matrix sequentially.
	DefaultWorkers = 1

	// MaxWorkers bounds the goroutines used by the wavefront fill.
	MaxWorkers = 64

	// MaxAlignments bounds the optimal alignments one run may enumerate.
	// Scorings where many cells tie can have combinatorially many.
	MaxAlignments = 10_000

	// PNGScale is the resolution factor of PNG output.
	PNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatHTML    = "html"
	FormatHeatmap = "heatmap"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPDF     = "pdf"
	FormatPNG     = "png"
	FormatFASTA   = "fasta"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatText

// SupportedFormats lists every output format in display order.
var SupportedFormats = []string{
	FormatText, FormatJSON, FormatHTML, FormatHeatmap,
	FormatDOT, FormatSVG, FormatPDF, FormatPNG, FormatFASTA,
}

var extensions = map[string]string{
	FormatText:    "txt",
	FormatJSON:    "json",
	FormatHTML:    "html",
	FormatHeatmap: "heatmap.html",
	FormatDOT:     "dot",
	FormatSVG:     "svg",
	FormatPDF:     "pdf",
	FormatPNG:     "png",
	FormatFASTA:   "fasta",
}

var contentTypes = map[string]string{
	FormatText:    "text/plain; charset=utf-8",
	FormatJSON:    "application/json",
	FormatHTML:    "text/html; charset=utf-8",
	FormatHeatmap: "text/html; charset=utf-8",
	FormatDOT:     "text/vnd.graphviz",
	FormatSVG:     "image/svg+xml",
	FormatPDF:     "application/pdf",
	FormatPNG:     "image/png",
	FormatFASTA:   "text/x-fasta",
}

// Extension returns the file extension for format, without the dot.
func Extension(format string) string { return extensions[format] }

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Align options
	Left        string        `json:"left"`
	Top         string        `json:"top"`
	LeftName    string        `json:"left_name,omitempty"`
	TopName     string        `json:"top_name,omitempty"`
	Scoring     align.Scoring `json:"scoring"`
	Workers     int           `json:"workers,omitempty"`
	ShorterLeft bool          `json:"shorter_left,omitempty"` // Put the shorter sequence on the left
	Refresh     bool          `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Label graph nodes with pair and score

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the serialized alignment, as cached and stored.
	Document seqio.Document

	// Matrix is the filled matrix with backlinks pruned to optimal paths.
	Matrix *align.Matrix

	// Alignments lists every optimal alignment.
	Alignments []align.Alignment

	// Score is the score of the bottom-right cell.
	Score int

	// Key is the cache key of the alignment.
	Key string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Cols       int
	Alignments int
	AlignTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AlignHit  bool // Whether the alignment came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errs.ValidateFormat(f, SupportedFormats); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults normalizes the sequences, checks every field and
// applies defaults. This method is idempotent - calling it multiple times
// has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForAlign(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForAlign normalizes and checks the sequences and the scoring.
func (o *Options) ValidateForAlign() error {
	o.Left = seqio.Normalize(o.Left)
	o.Top = seqio.Normalize(o.Top)
	if err := errs.ValidateSequence(o.Left); err != nil {
		return err
	}
	if err := errs.ValidateSequence(o.Top); err != nil {
		return err
	}
	if err := o.Scoring.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidScoring, err, "invalid scoring")
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errs.New(errs.ErrCodeInvalidInput, "workers must be between 0 and %d, got %d", MaxWorkers, o.Workers)
	}

	if o.LeftName == "" {
		o.LeftName = DefaultLeftName
	}
	if o.TopName == "" {
		o.TopName = DefaultTopName
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.ShorterLeft && len(o.Left) > len(o.Top) {
		o.Left, o.Top = o.Top, o.Left
		o.LeftName, o.TopName = o.TopName, o.LeftName
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender sets the default format and checks the requested ones.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// AlignmentKeyOpts returns cache key options for the alignment stage.
func (o *Options) AlignmentKeyOpts() cache.AlignmentKeyOpts {
	return cache.AlignmentKeyOpts{
		Left:        o.Left,
		Top:         o.Top,
		Match:       o.Scoring.Match,
		Mismatch:    o.Scoring.Mismatch,
		Gap:         o.Scoring.Gap,
		TerminalGap: o.Scoring.TerminalGap,
		Mode:        o.Scoring.Mode.String(),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		LeftName: o.LeftName,
		TopName:  o.TopName,
		Detailed: o.Detailed,
	}
}
