package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/pipeline"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	output  string  // output file path
	width   float64 // viewport width in pixels
	title   string  // page title
	noCache bool    // disable artifact caching
	refresh bool    // bypass cache and recompute
}

// viewCommand creates the view command, which renders a workflow definition
// to a standalone HTML viewer page.
func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{
		width: pipeline.DefaultWidth,
	}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Render a workflow to a standalone HTML viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .html)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title (default: workflow file name)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")

	return cmd
}

func (c *CLI) runView(cmd *cobra.Command, input string, opts *viewOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	title := opts.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Source:  input,
		Width:   opts.width,
		Formats: []string{pipeline.FormatHTML},
		Title:   title,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
	}
	if err := os.WriteFile(output, result.Artifacts[pipeline.FormatHTML], 0644); err != nil {
		return err
	}

	prog.done("Rendered " + output)
	printSuccess("Wrote %s", output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	printNextStep("Open it in a browser, or serve it live", "flowcanvas serve "+input)
	return nil
}
