// Package dag provides the directed graph underlying flowcanvas workflow
// diagrams: a node set with declaration order, derived edges, topological
// ordering, and per-node layer depth.
//
// # Overview
//
// Flowcanvas renders a workflow as a layered diagram where every node sits
// strictly below the nodes it depends on. This package provides the core
// data structure and the two computations everything else consumes:
// [Graph.TopoOrder] (Kahn's algorithm with a FIFO queue) and [Graph.Depths]
// (longest-path layer assignment over a topological order).
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [Graph.AddNode], and edges
// with [Graph.AddEdge]. Nodes must have unique, non-empty IDs, and edges can
// only connect existing nodes:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "geometry"})
//	g.AddNode(dag.Node{ID: "seismic"})
//	g.AddEdge(dag.Edge{From: "geometry", To: "seismic"})
//
// An edge From→To means "From must complete before To". Query structure
// with [Graph.Predecessors], [Graph.Successors], [Graph.Sources], and
// [Graph.Sinks].
//
// # Declaration Order
//
// Unlike a plain map-backed graph, Graph remembers the order nodes were
// added. TopoOrder seeds its queue in that order and breaks ties FIFO, so
// independent nodes always come out in the order the input declared them.
// This determinism is what makes repeated re-layouts of the same workflow
// produce identical diagrams.
//
// # Cycles
//
// A cyclic input is an expected, checkable outcome of arbitrary workflow
// data, not a programming error. TopoOrder reports it through its ok result
// instead of returning a partial order; callers (layout, run simulation)
// refuse to proceed and leave prior state untouched.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
