package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/cache"
	errs "github.com/matzehuels/seqalign/pkg/errors"
	"github.com/matzehuels/seqalign/pkg/seqio"
)

// memCache is an in-memory cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "svg", "fasta"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want invalid format", err)
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	for _, f := range SupportedFormats {
		if Extension(f) == "" {
			t.Errorf("Extension(%q) is empty", f)
		}
		if ContentType(f) == "application/octet-stream" {
			t.Errorf("ContentType(%q) has no specific type", f)
		}
	}
	if got := ContentType("nope"); got != "application/octet-stream" {
		t.Errorf("ContentType(nope) = %q", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Left: " cgca\n", Top: "cacgtat", Scoring: align.DefaultScoring()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Left != "CGCA" || opts.Top != "CACGTAT" {
		t.Errorf("sequences = %q, %q; want normalized", opts.Left, opts.Top)
	}
	if diff := cmp.Diff([]string{DefaultFormat}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.LeftName != DefaultLeftName || opts.TopName != DefaultTopName {
		t.Errorf("names = %q, %q", opts.LeftName, opts.TopName)
	}
	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, DefaultWorkers)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"gap in sequence", Options{Left: "AC-G", Top: "A"}, errs.ErrCodeInvalidSequence},
		{"digit in sequence", Options{Left: "A", Top: "A1"}, errs.ErrCodeInvalidSequence},
		{"unknown mode", Options{Left: "A", Top: "A", Scoring: align.Scoring{Mode: align.Mode(7)}}, errs.ErrCodeInvalidScoring},
		{"negative workers", Options{Left: "A", Top: "A", Workers: -1}, errs.ErrCodeInvalidInput},
		{"too many workers", Options{Left: "A", Top: "A", Workers: MaxWorkers + 1}, errs.ErrCodeInvalidInput},
		{"bad format", Options{Left: "A", Top: "A", Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsShorterLeft(t *testing.T) {
	opts := Options{Left: "CACGTAT", Top: "CGCA", LeftName: "long", TopName: "short", ShorterLeft: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Left != "CGCA" || opts.LeftName != "short" {
		t.Errorf("left = %s (%s), want CGCA (short)", opts.Left, opts.LeftName)
	}
	if opts.Top != "CACGTAT" || opts.TopName != "long" {
		t.Errorf("top = %s (%s), want CACGTAT (long)", opts.Top, opts.TopName)
	}

	// Equal lengths keep their order.
	opts = Options{Left: "GT", Top: "AC", ShorterLeft: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Left != "GT" {
		t.Errorf("equal lengths swapped: left = %s", opts.Left)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Left: "CACGTAT", Top: "CGCA", ShorterLeft: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.Left
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Left != first {
		t.Errorf("second call changed left from %s to %s", first, opts.Left)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(ctx, Options{
		Left:    "CGCA",
		Top:     "CACGTAT",
		Scoring: align.DefaultScoring(),
		Formats: []string{FormatText, FormatJSON, FormatFASTA, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Score != 3 {
		t.Errorf("Score = %d, want 3", result.Score)
	}
	want := []align.Alignment{{Left: "--CGCA-", Top: "CACGTAT"}}
	if diff := cmp.Diff(want, result.Alignments); diff != "" {
		t.Errorf("Alignments mismatch (-want +got):\n%s", diff)
	}
	if result.Stats.Rows != 5 || result.Stats.Cols != 8 || result.Stats.Alignments != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.CacheInfo.AlignHit || result.CacheInfo.RenderHit {
		t.Errorf("NullCache should never hit: %+v", result.CacheInfo)
	}
	if !strings.HasPrefix(result.Key, "alignment:") {
		t.Errorf("Key = %q", result.Key)
	}

	for _, f := range []string{FormatText, FormatJSON, FormatFASTA, FormatDOT} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatText]), "--CGCA-") {
		t.Errorf("text artifact lacks the alignment:\n%s", result.Artifacts[FormatText])
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact is not a digraph:\n%s", result.Artifacts[FormatDOT])
	}

	doc, err := seqio.ReadJSON(bytes.NewReader(result.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	m, err := doc.Matrix()
	if err != nil {
		t.Fatalf("json artifact matrix: %v", err)
	}
	if !m.Equal(result.Matrix) {
		t.Error("json artifact does not describe the result matrix")
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	opts := Options{
		Left:    "GATTACA",
		Top:     "GCATGCT",
		Scoring: align.Scoring{Match: 1, Mismatch: -1, Gap: -1, Mode: align.Global},
		Formats: []string{FormatText, FormatJSON},
	}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.AlignHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if c.sets != 3 {
		t.Errorf("first run wrote %d entries, want 3", c.sets)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.AlignHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if c.sets != 3 {
		t.Errorf("second run wrote to the cache: %d sets", c.sets)
	}
	if !second.Matrix.Equal(first.Matrix) {
		t.Error("cached matrix differs")
	}
	if diff := cmp.Diff(first.Alignments, second.Alignments); diff != "" {
		t.Errorf("cached alignments mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("cached artifacts mismatch (-first +second):\n%s", diff)
	}

	// A new format renders only what is missing.
	opts.Formats = []string{FormatJSON, FormatFASTA}
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if !third.CacheInfo.AlignHit || third.CacheInfo.RenderHit {
		t.Errorf("third run: %+v, want align hit and render miss", third.CacheInfo)
	}
	if c.sets != 4 {
		t.Errorf("third run should add one entry, have %d sets", c.sets)
	}

	// Refresh bypasses reads but refills the cache.
	opts.Refresh = true
	fourth, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if fourth.CacheInfo.AlignHit || fourth.CacheInfo.RenderHit {
		t.Errorf("refresh should not hit: %+v", fourth.CacheInfo)
	}
}

func TestRunnerCacheKeyDependsOnScoring(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil)

	opts := Options{Left: "GA", Top: "GTA", Scoring: align.DefaultScoring()}
	semi, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Scoring.Mode = align.Global
	global, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if semi.Key == global.Key {
		t.Error("different modes share a cache key")
	}
	if global.CacheInfo.AlignHit {
		t.Error("global run hit the semi-global entry")
	}
}

func TestRunnerScopedKeyer(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), nil)

	result, err := runner.Execute(ctx, Options{Left: "A", Top: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(result.Key, "test:alignment:") {
		t.Errorf("Key = %q, want scoped prefix", result.Key)
	}
	for k := range c.data {
		if !strings.HasPrefix(k, "test:") {
			t.Errorf("unscoped key %q written", k)
		}
	}
}

func TestRunnerCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	opts := Options{Left: "CGCA", Top: "CACGTAT", Formats: []string{FormatJSON}}

	key := runner.Keyer.AlignmentKey(cache.AlignmentKeyOpts{
		Left: "CGCA", Top: "CACGTAT", Mode: align.SemiGlobal.String(),
	})
	c.data[key] = []byte("{broken")

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.AlignHit {
		t.Error("corrupt entry reported as hit")
	}
	if result.Key != key {
		t.Fatalf("Key = %q, want %q", result.Key, key)
	}
	if _, err := seqio.ReadJSON(bytes.NewReader(c.data[key])); err != nil {
		t.Errorf("corrupt entry was not replaced: %v", err)
	}
}

func TestComputeWorkers(t *testing.T) {
	ctx := context.Background()
	base := Options{Left: "ACGTTGCAACGT", Top: "TGCATGCAAGT", Scoring: align.Scoring{Match: 2, Mismatch: -1, Gap: -2, Mode: align.Global}}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	want, wantAlns, err := Compute(ctx, base)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{2, 4, 8} {
		opts := base
		opts.Workers = workers
		got, alns, err := Compute(ctx, opts)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !got.Equal(want) {
			t.Errorf("workers=%d: matrix differs from sequential fill", workers)
		}
		if diff := cmp.Diff(wantAlns, alns); diff != "" {
			t.Errorf("workers=%d: alignments mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestComputeRejectsTooManyAlignments(t *testing.T) {
	// Every move scores zero, so the number of optimal paths through the
	// 14x14 matrix is the central Delannoy number D(13,13).
	opts := Options{
		Left:    strings.Repeat("A", 13),
		Top:     strings.Repeat("C", 13),
		Scoring: align.Scoring{Mode: align.Global},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	_, _, err := Compute(context.Background(), opts)
	if !errs.Is(err, errs.ErrCodeTooManyAlignments) {
		t.Fatalf("Compute() error = %v, want %s", err, errs.ErrCodeTooManyAlignments)
	}
	if got := errs.ClassOf(err); got != errs.ClassInput {
		t.Errorf("ClassOf() = %v, want input", got)
	}

	// Small tie-heavy inputs stay under the limit and are fully enumerated.
	opts.Left, opts.Top = "AAA", "CCC"
	_, alns, err := Compute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(alns) != 63 {
		t.Errorf("len(alignments) = %d, want 63", len(alns))
	}
}

func TestComputeCanceledAfterFill(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{Left: "GATTACA", Top: "GCATGCT", Scoring: align.DefaultScoring()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	_, _, err := Compute(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Compute() error = %v, want context.Canceled", err)
	}
	if !errs.Is(err, errs.ErrCodeTimeout) {
		t.Errorf("Compute() error code = %s, want %s", errs.GetCode(err), errs.ErrCodeTimeout)
	}
}

func TestRenderDeduplicatesFormats(t *testing.T) {
	m, alns, err := align.Align("GA", "GTA", align.DefaultScoring())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Formats: []string{FormatText, FormatText}, LeftName: "a", TopName: "b"}
	artifacts, err := Render(context.Background(), m, seqio.NewDocument(m, align.DefaultScoring(), alns), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 1 {
		t.Errorf("len(artifacts) = %d, want 1", len(artifacts))
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	m, alns, err := align.Align("GA", "GTA", align.DefaultScoring())
	if err != nil {
		t.Fatal(err)
	}
	_, err = Render(context.Background(), m, seqio.NewDocument(m, align.DefaultScoring(), alns), Options{Formats: []string{"gif"}})
	if err == nil {
		t.Error("Render should reject an unknown format")
	}
}
