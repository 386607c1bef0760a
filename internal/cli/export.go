package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: svg, html, dot, png, json
	width    float64  // viewport width in pixels
	detailed bool     // include type and metadata in DOT labels
	noCache  bool     // disable artifact caching
	refresh  bool     // bypass cache and recompute
}

// exportCommand creates the export command for generating diagram files.
func (c *CLI) exportCommand() *cobra.Command {
	var formatsStr string
	opts := exportOpts{
		width: pipeline.DefaultWidth,
	}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a workflow diagram to SVG, HTML, DOT, PNG, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runExport(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, dot, png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include type and metadata in DOT labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")

	return cmd
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	logger := loggerFromContext(cmd.Context())

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering "+input)
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Source:   input,
		Width:    opts.width,
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Title:    strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)),
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	// Single format with an explicit output keeps the exact path.
	if len(opts.formats) == 1 && opts.output != "" {
		if err := os.WriteFile(opts.output, result.Artifacts[opts.formats[0]], 0644); err != nil {
			return err
		}
		printSuccess("Wrote %s", opts.output)
		printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
		return nil
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}
