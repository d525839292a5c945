package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oadl/heatsheet/pkg/pipeline"
	"github.com/oadl/heatsheet/pkg/render"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	output     string // output file path (or base path for multiple formats)
	formatsStr string
	formats    []string
	document   bool   // wrap HTML in a standalone page
	title      string // page title for --document
	plain      bool   // disable text styling
	indent     bool   // pretty-print JSON
	noCache    bool
	refresh    bool // recompute even on cache hit
	config     string
}

// drawCommand creates the draw command: payload in, artifacts out.
func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw [payload]",
		Short: "Draw a results payload to HTML, text, or JSON",
		Long: `Draw reads a payload file (or stdin with "-"), groups the rows into
races and heats, and writes one artifact per requested format.

A malformed payload is not a command failure: it draws the error state,
the same as any embedding host would show.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): html (default), text, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.document, "document", false, "emit a standalone HTML page")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title for --document")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable text styling")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "pretty-print JSON output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute artifacts even when cached")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")

	return cmd
}

func (c *CLI) runDraw(cmd *cobra.Command, input string, opts *drawOpts) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	// The flag wins; the config's default format applies when no flag
	// was given.
	opts.formats = parseFormats(firstNonEmpty(opts.formatsStr, cfg.Render.Format))
	if err := pipeline.ValidateFormats(opts.formats); err != nil {
		return err
	}

	raw, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Formats:  opts.formats,
		Document: opts.document || cfg.Render.Document,
		Title:    firstNonEmpty(opts.title, cfg.Render.Title),
		Plain:    opts.plain || cfg.Render.Plain,
		Indent:   opts.indent || cfg.Render.Indent,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	}

	prog := newProgress(c.Logger)
	result, err := runner.DrawRaw(ctx, raw, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Drew %d rows", result.Stats.RowCount))

	switch result.Tree.State {
	case render.StateError:
		printWarning("Payload could not be drawn: %s", result.Tree.Message)
	case render.StateEmpty:
		printInfo("No rows; drew the empty state")
	default:
		printSuccess("Drew %d races, %d swimmers", result.Stats.RaceCount, result.Stats.SwimmerCount)
	}

	// Text to stdout unless an output path was given.
	if opts.output == "" && len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatText {
		fmt.Println(string(result.Artifacts[pipeline.FormatText]))
		return nil
	}

	base := drawBasePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + extension(format)
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printCacheStats(result)
	return nil
}

// drawBasePath derives the base output path from the output and input
// paths, stripping any known format extension.
func drawBasePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "heatsheet"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, format := range []string{pipeline.FormatHTML, pipeline.FormatText, pipeline.FormatJSON} {
		if ext == extension(format) {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}

// extension maps a format to its file extension.
func extension(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

func printCacheStats(result *pipeline.Result) {
	hits := 0
	for _, hit := range result.CacheInfo.ArtifactHits {
		if hit {
			hits++
		}
	}
	if hits > 0 {
		printDetail("%d of %d artifacts cached", hits, len(result.CacheInfo.ArtifactHits))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
