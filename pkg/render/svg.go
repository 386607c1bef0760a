package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

const nodeInteractionCSS = `
    .node rect { transition: stroke-width 0.15s ease; }
    .node.active rect { stroke-width: 3; filter: drop-shadow(0 0 6px rgba(37,99,235,0.6)); }
    .node.visited rect { opacity: 0.85; }
    a { cursor: pointer; }`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	active  string
	visited map[string]bool
}

// WithActive highlights one node as the currently running step.
func WithActive(id string) SVGOption { return func(r *svgRenderer) { r.active = id } }

// WithVisited marks nodes already stepped through by a run simulation.
func WithVisited(ids map[string]bool) SVGOption {
	return func(r *svgRenderer) { r.visited = ids }
}

// RenderSVG draws the workflow diagram: one box per node at the engine's
// position, one connector curve per edge. Edges are directional and carry a
// distinct glyph pair - a dot at the source, an arrowhead at the target - so
// direction is always visually distinguishable.
//
// Every node must have a position; call Engine.Relayout first.
func RenderSVG(g *dag.Graph, eng *layout.Engine, width float64, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	p := eng.Params()
	height := diagramHeight(g, eng, p)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	renderDefs(&buf)
	for _, e := range g.Edges() {
		renderEdge(&buf, eng, p, e)
	}
	for _, n := range g.Nodes() {
		renderNode(&buf, eng, p, n, &r)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderDefs emits the shared edge glyphs and interaction CSS. The dot
// marks the edge's source (the dependency); the arrowhead marks its target
// (the dependent step).
func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="edge-source" viewBox="0 0 8 8" refX="4" refY="4" markerWidth="5" markerHeight="5">
      <circle cx="4" cy="4" r="3" fill="#94a3b8"/>
    </marker>
    <marker id="edge-target" viewBox="0 0 10 10" refX="8" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#64748b"/>
    </marker>
  </defs>
`)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
}

func renderEdge(buf *bytes.Buffer, eng *layout.Engine, p layout.Params, e dag.Edge) {
	from, okF := eng.Position(e.From)
	to, okT := eng.Position(e.To)
	if !okF || !okT {
		return
	}

	// Bottom center of the source box to top center of the target box.
	x1 := from.X + p.NodeWidth/2
	y1 := from.Y + p.NodeHeight
	x2 := to.X + p.NodeWidth/2
	y2 := to.Y

	bend := (y2 - y1) / 2
	if bend < 24 {
		bend = 24
	}
	fmt.Fprintf(buf,
		`  <path class="edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="#94a3b8" stroke-width="1.5" marker-start="url(#edge-source)" marker-end="url(#edge-target)"/>`+"\n",
		x1, y1, x1, y1+bend, x2, y2-bend, x2, y2)
}

func renderNode(buf *bytes.Buffer, eng *layout.Engine, p layout.Params, n *dag.Node, r *svgRenderer) {
	pos, ok := eng.Position(n.ID)
	if !ok {
		return
	}
	style := StyleFor(n.Type)

	class := "node"
	if n.ID == r.active {
		class += " active"
	} else if r.visited[n.ID] {
		class += " visited"
	}

	fmt.Fprintf(buf, `  <g id="node-%s" class="%s">`+"\n", html.EscapeString(n.ID), class)
	if n.URL != "" {
		fmt.Fprintf(buf, `    <a href="%s" target="_blank">`+"\n", html.EscapeString(n.URL))
	}
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		pos.X, pos.Y, p.NodeWidth, p.NodeHeight, style.Fill, style.Stroke)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="4" height="%.1f" rx="2" fill="%s"/>`+"\n",
		pos.X+6, pos.Y+6, p.NodeHeight-12, style.Accent)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="13" font-weight="600" fill="#1e293b">%s</text>`+"\n",
		pos.X+18, pos.Y+p.NodeHeight/2-4, html.EscapeString(n.Label()))
	if n.Type != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
			pos.X+18, pos.Y+p.NodeHeight/2+14, style.Accent, html.EscapeString(n.Type))
	}
	if n.URL != "" {
		buf.WriteString("    </a>\n")
	}
	buf.WriteString("  </g>\n")
}

// diagramHeight extends the canvas to the lowest node plus padding.
func diagramHeight(g *dag.Graph, eng *layout.Engine, p layout.Params) float64 {
	maxY := 0.0
	for _, id := range g.NodeIDs() {
		if pos, ok := eng.Position(id); ok && pos.Y > maxY {
			maxY = pos.Y
		}
	}
	return maxY + p.NodeHeight + p.TopPad
}
