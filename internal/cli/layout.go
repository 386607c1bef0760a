package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output string   // output file path ("" writes to stdout)
	width  float64  // viewport width in pixels
	pins   []string // manual position overrides "id=x,y"
	reset  bool     // discard pins before layout
}

// layoutCommand creates the layout command, which computes node positions
// and prints them as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{
		width: pipeline.DefaultWidth,
	}

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node positions for a viewport and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().StringArrayVar(&opts.pins, "pin", nil, "pin a node to a position (id=x,y, repeatable)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "discard pinned positions before layout")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, opts *layoutOpts) error {
	logger := loggerFromContext(cmd.Context())

	pins, err := parsePins(opts.pins)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Source:      input,
		Width:       opts.width,
		Pins:        pins,
		ResetPinned: opts.reset,
		Formats:     []string{pipeline.FormatJSON},
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	data := result.Artifacts[pipeline.FormatJSON]
	if opts.output == "" {
		cmd.OutOrStdout().Write(data)
		cmd.OutOrStdout().Write([]byte("\n"))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return err
	}
	printSuccess("Wrote %s", opts.output)
	return nil
}
