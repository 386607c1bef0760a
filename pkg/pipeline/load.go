package pipeline

import (
	"bytes"
	"os"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// Load reads the workflow definition, decodes it and validates it into a
// graph. The raw definition bytes are returned for cache keying.
func Load(opts Options) (*workflow.Workflow, *dag.Graph, []byte, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, nil, err
	}

	raw, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "workflow definition %q", opts.Source)
		}
		return nil, nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read workflow definition %q", opts.Source)
	}

	format := workflow.Format(opts.InputFormat)
	if format == "" {
		format, err = workflow.FormatForPath(opts.Source)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	wf, err := workflow.Decode(bytes.NewReader(raw), format)
	if err != nil {
		return nil, nil, nil, err
	}

	g, err := wf.Build()
	if err != nil {
		return nil, nil, nil, err
	}

	opts.Logger.Debug("loaded workflow",
		"source", opts.Source,
		"format", format,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())

	return wf, g, raw, nil
}

// ComputeLayout builds a layout engine for the graph, applies any manual
// pins and runs a full layout pass. The reset runs first, so pins requested
// in the same options are new placements and survive it.
func ComputeLayout(g *dag.Graph, opts Options) (*layout.Engine, error) {
	opts.SetLayoutDefaults()

	eng := layout.New(g, layout.DefaultParams())
	if opts.ResetPinned {
		if err := eng.Relayout(true, opts.Width); err != nil {
			return nil, err
		}
	}
	for id, pos := range opts.Pins {
		if err := eng.Pin(id, pos); err != nil {
			return nil, err
		}
	}
	if err := eng.Relayout(false, opts.Width); err != nil {
		return nil, err
	}
	return eng, nil
}
