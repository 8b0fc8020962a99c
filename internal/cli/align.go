package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/pipeline"
	"github.com/matzehuels/seqalign/pkg/render/text"
	"github.com/matzehuels/seqalign/pkg/seqio"
)

// alignFlags holds the flag values of the align command that do not map
// directly onto pipeline.Options.
type alignFlags struct {
	formats     string
	output      string
	noCache     bool
	interactive bool
	open        bool
}

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	var flags alignFlags
	opts := pipeline.Options{ShorterLeft: true}

	cmd := &cobra.Command{
		Use:   "align <seq1> <seq2>",
		Short: "Align two sequences and print every optimal alignment",
		Long: `Align two sequences and print every optimal alignment.

Each argument is either a literal sequence or a FASTA file, in which case the
first record is used and its name labels the output. By default the filled
matrix and the alignments are printed to the terminal. Other formats are
written to files named after the two sequences.

Scoring defaults come from the config file; flags override them.`,
		Example: `  seqalign align CGCA CACGTAT
  seqalign align --global --gap -2 GA GTA
  seqalign align a.fasta b.fasta -f html,svg -o out
  seqalign align CGCA CACGTAT --open`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scoring, err := c.scoringFromFlags(cmd)
			if err != nil {
				return err
			}
			opts.Scoring = scoring
			opts.Formats = parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			left, err := seqio.Resolve(args[0])
			if err != nil {
				return err
			}
			top, err := seqio.Resolve(args[1])
			if err != nil {
				return err
			}
			opts.Left, opts.LeftName = left.Sequence, left.Label(pipeline.DefaultLeftName)
			opts.Top, opts.TopName = top.Sequence, top.Label(pipeline.DefaultTopName)

			return c.runAlign(cmd.Context(), opts, flags)
		},
	}

	// Scoring flags
	cmd.Flags().Bool("global", false, "charge the regular gap penalty for terminal gaps")
	cmd.Flags().Int("match", align.DefaultMatch, "score for matching characters")
	cmd.Flags().Int("mismatch", align.DefaultMismatch, "score for mismatching characters")
	cmd.Flags().Int("gap", align.DefaultGap, "score for an inner gap")
	cmd.Flags().Int("terminal-gap", align.DefaultTerminalGap, "score for a terminal gap (semi-global only)")

	// Pipeline flags
	cmd.Flags().IntVar(&opts.Workers, "workers", pipeline.DefaultWorkers, "goroutines used to fill the matrix")
	cmd.Flags().BoolVar(&opts.ShorterLeft, "shorter-left", opts.ShorterLeft, "put the shorter sequence on the left")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label graph nodes with their pair and score")

	// Output flags
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.SupportedFormats, ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse the alignments interactively")
	cmd.Flags().BoolVar(&flags.open, "open", false, "open the HTML rendering in a browser")

	return cmd
}

// scoringFromFlags starts from the configured scoring and applies every
// scoring flag the user set explicitly.
func (c *CLI) scoringFromFlags(cmd *cobra.Command) (align.Scoring, error) {
	s := c.Config.Scoring
	fs := cmd.Flags()
	if fs.Changed("global") {
		global, err := fs.GetBool("global")
		if err != nil {
			return s, err
		}
		s.Mode = align.SemiGlobal
		if global {
			s.Mode = align.Global
		}
	}
	for name, dst := range map[string]*int{
		"match":        &s.Match,
		"mismatch":     &s.Mismatch,
		"gap":          &s.Gap,
		"terminal-gap": &s.TerminalGap,
	} {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetInt(name)
		if err != nil {
			return s, err
		}
		*dst = v
	}
	return s, s.Validate()
}

// runAlign executes the pipeline and presents the result.
func (c *CLI) runAlign(ctx context.Context, opts pipeline.Options, flags alignFlags) error {
	opts.Logger = c.Logger
	if flags.open && !slices.Contains(opts.Formats, pipeline.FormatHTML) {
		opts.Formats = append(opts.Formats, pipeline.FormatHTML)
	}
	// Resolve the final sequence order up front so output names match.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger, "align")
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Aligning %s and %s...", opts.LeftName, opts.TopName))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Alignment failed")
		return err
	}
	spinner.Stop()
	prog.done("aligned", "rows", result.Stats.Rows, "cols", result.Stats.Cols, "alignments", len(result.Alignments))

	if flags.interactive {
		model := NewAlignmentModel(result.Matrix, result.Alignments, opts.LeftName, opts.TopName)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("interactive view: %w", err)
		}
	} else if flags.output == "" && slices.Contains(opts.Formats, pipeline.FormatText) {
		printMatrix(result, opts)
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      outputBase(opts.LeftName, opts.TopName),
		output:    flags.output,
		cacheHit:  result.CacheInfo.AlignHit && result.CacheInfo.RenderHit,
	})
	if err != nil {
		return err
	}
	printStats(result.Stats.Rows, result.Stats.Cols, result.Stats.Alignments, result.Score,
		result.CacheInfo.AlignHit)

	if flags.open {
		path, ok := paths[pipeline.FormatHTML]
		if !ok {
			return fmt.Errorf("no HTML output to open")
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if err := openBrowser("file://" + filepath.ToSlash(abs)); err != nil {
			printWarning("Could not open browser: %v", err)
			printDetail("Open %s manually", abs)
		}
	}
	return nil
}

// printMatrix writes the styled matrix and alignments to stdout.
func printMatrix(result *pipeline.Result, opts pipeline.Options) {
	styled := text.Options{Styled: true}
	printKeyValue("Left", opts.LeftName)
	printKeyValue("Top", opts.TopName)
	printKeyValue("Scoring", fmt.Sprintf("%s  match %d  mismatch %d  gap %d  terminal gap %d",
		opts.Scoring.Mode, opts.Scoring.Match, opts.Scoring.Mismatch, opts.Scoring.Gap, opts.Scoring.TerminalGap))
	printNewline()
	fmt.Fprintln(out, text.Matrix(result.Matrix, styled))
	printNewline()
	fmt.Fprint(out, text.Alignments(result.Alignments, result.Score, styled))
	printNewline()
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // default file name stem
	output    string // -o value
	cacheHit  bool
}

// writeArtifacts writes every file artifact and returns the paths by
// format. Text goes to a file only when an output path was given, since
// it has already been printed.
func writeArtifacts(p artifactWriteParams) (map[string]string, error) {
	var formats []string
	for _, f := range p.formats {
		if f == pipeline.FormatText && p.output == "" {
			continue
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return map[string]string{}, nil
	}

	paths := outputPaths(formats, p.base, p.output)
	if p.cacheHit {
		printSuccess("Rendered %d file(s) %s", len(formats), styleCached.Render("("+iconCached+")"))
	} else {
		printSuccess("Rendered %d file(s)", len(formats))
	}
	for _, f := range formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return paths, nil
}

// outputPaths maps formats to file paths. A single format with an explicit
// output uses it verbatim; otherwise output (or base) is a stem and the
// format extension is appended.
func outputPaths(formats []string, base, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	stem := base
	if output != "" {
		stem = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = stem + "." + pipeline.Extension(f)
	}
	return paths
}

// outputBase returns the default file stem for two sequence labels.
func outputBase(leftName, topName string) string {
	return sanitizeName(leftName) + "_" + sanitizeName(topName)
}

// sanitizeName keeps letters, digits, dots, dashes and underscores.
func sanitizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
	if s == "" {
		return "seq"
	}
	return s
}
