package layout

import (
	"slices"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// Engine assigns 2D coordinates to the nodes of a workflow graph. It owns
// the position table and the pinned set exclusively; it reads the graph by
// reference and never mutates it.
//
// The reconciliation rule at the heart of the engine: automatic layout never
// overwrites a pinned (manually placed) node, except on an explicit full
// reset. The pinned set grows through [Engine.Pin] and shrinks only through
// Relayout(resetPinned=true).
//
// Engine is not safe for concurrent use without external synchronization.
// Callers with concurrent input sources (e.g. HTTP handlers) must serialize
// access; Relayout additionally snapshots the pinned set on entry so its
// pass stays internally consistent.
type Engine struct {
	graph     *dag.Graph
	params    Params
	positions map[string]Position
	pinned    map[string]struct{}
}

// New creates an engine for the given graph.
func New(g *dag.Graph, params Params) *Engine {
	return &Engine{
		graph:     g,
		params:    params,
		positions: make(map[string]Position),
		pinned:    make(map[string]struct{}),
	}
}

// Params returns the engine's geometry parameters.
func (e *Engine) Params() Params { return e.params }

// SetGraph swaps in a newly loaded graph. Positions and pins of nodes that
// survived the reload are kept so a re-imported workflow doesn't lose manual
// placement; entries for removed nodes are pruned rather than left stale.
func (e *Engine) SetGraph(g *dag.Graph) {
	e.graph = g
	for id := range e.positions {
		if _, ok := g.Node(id); !ok {
			delete(e.positions, id)
		}
	}
	for id := range e.pinned {
		if _, ok := g.Node(id); !ok {
			delete(e.pinned, id)
		}
	}
}

// Relayout recomputes positions for the current graph.
//
// On a cyclic graph it returns a GRAPH_CYCLE error and leaves every position
// untouched - a cycle is a reported, recoverable condition, never a partial
// layout. Otherwise:
//
//   - resetPinned=true clears the pinned set and all positions first
//   - nodes are grouped into layers by depth, keeping topological order
//     within each layer
//   - each layer is laid out left to right, centered in the viewport but
//     never left of the minimum left padding
//   - pinned nodes are skipped (unless this is a full reset)
//   - any node still unplaced afterwards is packed left-to-right with
//     wrap-on-overflow in the top band, so every node in the graph has a
//     position when Relayout returns nil
func (e *Engine) Relayout(resetPinned bool, viewportWidth float64) error {
	if viewportWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport width must be positive, got %g", viewportWidth)
	}

	order, ok := e.graph.TopoOrder()
	if !ok {
		return errors.New(errors.ErrCodeCycle, "workflow contains a dependency cycle; layout refused")
	}

	if resetPinned {
		clear(e.pinned)
		clear(e.positions)
	}

	// Snapshot so concurrent Pin calls mid-pass (behind the caller's lock)
	// cannot produce partially-inconsistent layers.
	pinned := make(map[string]struct{}, len(e.pinned))
	for id := range e.pinned {
		pinned[id] = struct{}{}
	}

	depths := e.graph.Depths(order)
	maxDepth := 0
	layers := make(map[int][]string)
	for _, id := range order {
		d := depths[id]
		layers[d] = append(layers[d], id)
		if d > maxDepth {
			maxDepth = d
		}
	}

	p := e.params
	for d := 0; d <= maxDepth; d++ {
		layer := layers[d]
		start := max(p.LeftPad, (viewportWidth-p.RowWidth(len(layer)))/2)
		y := p.RowY(d)
		for i, id := range layer {
			if _, isPinned := pinned[id]; isPinned {
				continue
			}
			e.positions[id] = Position{X: start + float64(i)*(p.NodeWidth+p.GapX), Y: y}
		}
	}

	e.packUnplaced(viewportWidth)
	return nil
}

// packUnplaced gives a fallback slot to any node the layered pass left
// without a position. Slots fill left to right in the top band and wrap to
// the next band on overflow, independent of the layered grid.
func (e *Engine) packUnplaced(viewportWidth float64) {
	p := e.params
	x, y := p.LeftPad, p.TopPad
	for _, id := range e.graph.NodeIDs() {
		if _, placed := e.positions[id]; placed {
			continue
		}
		if x > p.LeftPad && x+p.NodeWidth > viewportWidth {
			x = p.LeftPad
			y += p.NodeHeight + p.GapY
		}
		e.positions[id] = Position{X: x, Y: y}
		x += p.NodeWidth + p.GapX
	}
}

// Pin records a manual position for the node and marks it pinned, shielding
// it from automatic layout until the next full reset. Viewer drags and the
// --pin flag both land here.
func (e *Engine) Pin(id string, pos Position) error {
	if _, ok := e.graph.Node(id); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "cannot pin unknown node %q", id)
	}
	e.positions[id] = pos
	e.pinned[id] = struct{}{}
	return nil
}

// IsPinned reports whether the node is in the pinned set.
func (e *Engine) IsPinned(id string) bool {
	_, ok := e.pinned[id]
	return ok
}

// Pinned returns the pinned node IDs in sorted order.
func (e *Engine) Pinned() []string {
	ids := make([]string, 0, len(e.pinned))
	for id := range e.pinned {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Restore installs a previously computed result, replacing current positions
// and the pinned set. Entries for nodes no longer in the graph are dropped.
// Callers use this to resume a session or reuse a cached layout.
func (e *Engine) Restore(positions map[string]Position, pinned []string) {
	clear(e.positions)
	clear(e.pinned)
	for id, pos := range positions {
		if _, ok := e.graph.Node(id); ok {
			e.positions[id] = pos
		}
	}
	for _, id := range pinned {
		if _, ok := e.positions[id]; ok {
			e.pinned[id] = struct{}{}
		}
	}
}

// Position returns the node's current position and whether one exists.
func (e *Engine) Position(id string) (Position, bool) {
	pos, ok := e.positions[id]
	return pos, ok
}

// Positions returns a copy of the position table. Modifications to the
// returned map do not affect the engine.
func (e *Engine) Positions() map[string]Position {
	out := make(map[string]Position, len(e.positions))
	for id, pos := range e.positions {
		out[id] = pos
	}
	return out
}
