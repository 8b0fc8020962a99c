package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/cache"
	errs "github.com/matzehuels/seqalign/pkg/errors"
	"github.com/matzehuels/seqalign/pkg/observability"
	"github.com/matzehuels/seqalign/pkg/seqio"
)

// Cache key types reported to observability hooks.
const (
	keyTypeAlignment = "alignment"
	keyTypeArtifact  = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete align → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Align
	alignStart := time.Now()
	doc, m, alignHit, err := r.AlignWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	result.Document = doc
	result.Matrix = m
	result.Alignments = doc.Alignments
	result.Score = doc.Score
	result.Key = r.Keyer.AlignmentKey(opts.AlignmentKeyOpts())
	result.Stats.Rows = m.Rows()
	result.Stats.Cols = m.Cols()
	result.Stats.Alignments = len(doc.Alignments)
	result.Stats.AlignTime = time.Since(alignStart)
	result.CacheInfo.AlignHit = alignHit

	r.Logger.Info("aligned sequences",
		"rows", m.Rows(),
		"cols", m.Cols(),
		"score", doc.Score,
		"alignments", len(doc.Alignments),
		"cached", alignHit,
		"duration", result.Stats.AlignTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Key, doc, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AlignWithCacheInfo fills and traces the matrix with caching and returns
// cache hit info. On a hit the matrix is rebuilt from the cached document.
func (r *Runner) AlignWithCacheInfo(ctx context.Context, opts Options) (seqio.Document, *align.Matrix, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForAlign(); err != nil {
		return seqio.Document{}, nil, false, err
	}

	cacheKey := r.Keyer.AlignmentKey(opts.AlignmentKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			doc, err := seqio.ReadJSON(bytes.NewReader(data))
			if err == nil {
				if m, err := doc.Matrix(); err == nil {
					observability.Cache().OnCacheHit(ctx, keyTypeAlignment)
					return doc, m, true, nil // Cache hit
				}
			}
			// If deserialization fails, fall through to recompute
			r.Logger.Debug("discarding unreadable cache entry", "key", cacheKey)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeAlignment)
	}

	m, alns, err := Compute(ctx, opts)
	if err != nil {
		return seqio.Document{}, nil, false, err
	}
	doc := seqio.NewDocument(m, opts.Scoring, alns)

	if cache.Enabled(r.Cache) {
		var buf bytes.Buffer
		if err := seqio.WriteJSON(doc, &buf); err == nil {
			r.set(ctx, keyTypeAlignment, cacheKey, buf.Bytes(), cache.TTLAlignment)
		}
	}

	return doc, m, false, nil // Cache miss
}

// Align is a convenience wrapper that calls AlignWithCacheInfo and discards the cache hit info.
func (r *Runner) Align(ctx context.Context, opts Options) (seqio.Document, *align.Matrix, error) {
	doc, m, _, err := r.AlignWithCacheInfo(ctx, opts)
	return doc, m, err
}

// Compute fills and traces a fresh matrix without caching. More than one
// worker selects the wavefront fill.
//
// Before tracing, the optimal paths are counted; more than MaxAlignments is
// rejected as ErrCodeTooManyAlignments. A done ctx stops the run between
// fill and traceback.
func Compute(ctx context.Context, opts Options) (*align.Matrix, []align.Alignment, error) {
	hooks := observability.Pipeline()
	m := align.NewMatrix(opts.Left, opts.Top)

	fillStart := time.Now()
	hooks.OnAlignStart(ctx, m.Rows(), m.Cols())
	var err error
	if opts.Workers > 1 {
		err = align.FillWavefront(ctx, m, opts.Scoring, opts.Workers)
	} else {
		err = align.Fill(m, opts.Scoring)
	}
	hooks.OnAlignComplete(ctx, m.Rows(), m.Cols(), time.Since(fillStart), err)
	if err != nil {
		return nil, nil, fmt.Errorf("fill: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("filled matrix", "rows", m.Rows(), "cols", m.Cols(), "workers", opts.Workers, "duration", time.Since(fillStart))
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeTimeout, err, "alignment stopped after fill")
	}
	if _, exact := align.CountPaths(m, MaxAlignments); !exact {
		return nil, nil, errs.New(errs.ErrCodeTooManyAlignments,
			"more than %d optimal alignments; use a scoring with fewer ties", MaxAlignments)
	}

	traceStart := time.Now()
	alns, err := align.Traceback(m)
	hooks.OnTracebackComplete(ctx, len(alns), time.Since(traceStart), err)
	if err != nil {
		return nil, nil, fmt.Errorf("traceback: %w", err)
	}
	return m, alns, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// alignmentKey scopes the artifact keys; m must be the matrix described by doc.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, alignmentKey string, doc seqio.Document, m *align.Matrix, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Collect what the cache already has; render only the rest.
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if _, seen := artifacts[format]; seen {
			continue
		}
		if !opts.Refresh {
			cacheKey := r.Keyer.ArtifactKey(alignmentKey, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		if !slices.Contains(missing, format) {
			missing = append(missing, format)
		}
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, m, doc, sub)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(alignmentKey, opts.ArtifactKeyOpts(format))
		r.set(ctx, keyTypeArtifact, cacheKey, data, cache.TTLArtifact)
		artifacts[format] = data
	}

	return artifacts, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// set writes to the cache. Write failures are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
