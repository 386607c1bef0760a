package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowcanvas/pkg/dag"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes the node type and metadata in labels.
	// When false, only the node title is shown.
	Detailed bool
}

// ToDOT converts a workflow graph to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderDOT] or fed to an external graphviz
// toolchain. Edges point from a dependency to the node that requires it, so
// arrows follow execution order.
func ToDOT(g *dag.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph workflow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := dotLabel(*n, opts.Detailed)
		style := StyleFor(n.Type)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, color=%q];\n",
			n.ID, label, style.Fill, style.Accent)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.Label()
	}

	parts := []string{n.Label()}
	if n.Type != "" {
		parts = append(parts, "type: "+n.Type)
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return strings.Join(parts, "\n")
}

// RenderDOT renders a DOT graph using Graphviz. The format is one of
// [graphviz.SVG] or [graphviz.PNG].
func RenderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
