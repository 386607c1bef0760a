package pipeline

import (
	"context"
	"encoding/json"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/render"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// jsonArtifact is the payload of the "json" output format.
type jsonArtifact struct {
	Workflow  *workflow.Workflow         `json:"workflow"`
	Positions map[string]layout.Position `json:"positions"`
	Pinned    []string                   `json:"pinned"`
}

// RenderFromLayout produces all requested output formats from a computed
// layout. PNG goes through the embedded graphviz engine; everything else is
// rendered directly.
func RenderFromLayout(ctx context.Context, wf *workflow.Workflow, g *dag.Graph, eng *layout.Engine, opts Options) (map[string][]byte, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, wf, g, eng, opts, format)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, wf *workflow.Workflow, g *dag.Graph, eng *layout.Engine, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.RenderSVG(g, eng, opts.Width), nil

	case FormatHTML:
		return render.RenderHTML(wf, g, eng, opts.Width, render.HTMLOptions{Title: opts.Title})

	case FormatDOT:
		return []byte(render.ToDOT(g, render.DOTOptions{Detailed: opts.Detailed})), nil

	case FormatPNG:
		dot := render.ToDOT(g, render.DOTOptions{Detailed: opts.Detailed})
		return render.RenderDOT(ctx, dot, graphviz.PNG)

	case FormatJSON:
		data, err := json.MarshalIndent(jsonArtifact{
			Workflow:  wf,
			Positions: eng.Positions(),
			Pinned:    eng.Pinned(),
		}, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal json artifact")
		}
		return data, nil

	default:
		return nil, ValidateFormat(format)
	}
}
