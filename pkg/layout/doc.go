// Package layout computes 2D positions for workflow diagrams using a simple
// layered placement: layer depth decides the vertical band, topological
// order decides left-to-right placement within a band, and rows are centered
// in the viewport.
//
// # Drag Overrides
//
// The engine reconciles automatic placement with manual placement through a
// pinned set. [Engine.Pin] records a user-dragged position; subsequent
// [Engine.Relayout] calls flow every other node around it and only a full
// reset (resetPinned=true) reclaims pinned nodes for the grid. This makes
// window resizes cheap - re-run Relayout with the new viewport width - while
// hand-tuned placement survives.
//
// # Fallback Packing
//
// After the layered pass, any node still without a position is packed
// left-to-right with wrap-on-overflow in the top band. Every node in the
// graph has some position after a successful Relayout, including isolated
// nodes with no dependencies and no dependents.
//
// # Cycles
//
// A cyclic graph never produces a partial layout: Relayout returns a
// GRAPH_CYCLE error and leaves the position table exactly as it was.
package layout
