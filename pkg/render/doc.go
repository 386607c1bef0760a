// Package render turns a laid-out workflow graph into visual outputs.
//
// # Overview
//
// Rendering is read-only: every renderer takes a [dag.Graph] together with a
// [layout.Engine] holding current positions and produces bytes. It provides:
//
//   - SVG diagrams with directional edges ([RenderSVG])
//   - A self-contained HTML viewer page ([RenderHTML])
//   - Graphviz DOT export and rasterization ([ToDOT], [RenderDOT])
//
// # SVG Diagrams
//
// [RenderSVG] draws each node as a card at its layout position and each
// dependency as a curve running from the bottom of the dependency to the top
// of the dependent node. A small dot marks the source end and an arrowhead
// the target end, so edge direction stays readable even when a drag moves a
// node above its dependency.
//
//	svg := render.RenderSVG(g, eng, 1280)
//
// Run progress can be overlaid with [WithActive] and [WithVisited].
//
// # HTML Viewer
//
// [RenderHTML] wraps the SVG in a standalone page with pan, zoom and drag
// handling. With [HTMLOptions].Live set, drags and resizes call back into the
// serving process; otherwise the page is a static export.
//
// # DOT Export
//
// [ToDOT] emits a Graphviz digraph for external tooling and [RenderDOT]
// rasterizes it in-process via the embedded graphviz engine.
package render
