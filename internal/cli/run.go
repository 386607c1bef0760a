package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/pipeline"
	"github.com/matzehuels/flowcanvas/pkg/run"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	interval time.Duration // delay between simulated steps
}

// runCommand creates the run command, which steps through the workflow
// execution order in an interactive terminal view.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{
		interval: 800 * time.Millisecond,
	}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Simulate a workflow run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd, args[0], &opts)
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", opts.interval, "delay between steps")

	return cmd
}

func (c *CLI) runRun(cmd *cobra.Command, input string, opts *runOpts) error {
	logger := loggerFromContext(cmd.Context())

	_, g, _, err := pipeline.Load(pipeline.Options{Source: input, Logger: logger})
	if err != nil {
		return err
	}

	seq, err := run.Start(g)
	if err != nil {
		return err
	}
	logger.Debug("run started", "id", seq.ID(), "steps", len(seq.Order()))

	model := newRunModel(g, seq, opts.interval)
	prog := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	final, err := prog.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(runModel); ok {
		visited, total := seq.Progress()
		switch {
		case m.cancelled:
			printWarning("Run %s cancelled after %d of %d steps", seq.ID(), visited, total)
		case seq.State() == run.StateDone:
			printSuccess("Run %s complete: %d steps", seq.ID(), total)
		}
	}
	return nil
}
