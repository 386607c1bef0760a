// Package pkg provides the core libraries for FlowCanvas workflow visualization.
//
// # Overview
//
// FlowCanvas loads engineering workflow definitions, validates them as
// directed acyclic graphs, computes a layered layout, and renders the result
// as interactive or static diagrams. The pkg directory is organized around
// that flow:
//
//  1. [workflow] - Workflow document model and decoders (JSON, TOML, HCL)
//  2. [dag] - Validated graph structure with topological ordering and depths
//  3. [layout] - Layered layout engine with pinning and drag overrides
//  4. [run] - Step-by-step run sequencing over the topological order
//  5. [render] - Output formats (SVG, HTML viewer, DOT, PNG, JSON)
//  6. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow through FlowCanvas:
//
//	Workflow file (JSON/TOML/HCL)
//	         ↓
//	    [workflow] package (decode + build)
//	         ↓
//	    [dag] package (validation, topological order, depths)
//	         ↓
//	    [layout] package (positions, pins)
//	         ↓
//	    [render] package (SVG/HTML/DOT/PNG/JSON output)
//
// # Quick Start
//
// Load a workflow and render an SVG diagram:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/flowcanvas/pkg/layout"
//	    "github.com/matzehuels/flowcanvas/pkg/render"
//	    "github.com/matzehuels/flowcanvas/pkg/workflow"
//	)
//
//	// 1. Decode and validate
//	f, _ := os.Open("bridge.json")
//	wf, _ := workflow.Decode(f, workflow.FormatJSON)
//	g, _ := wf.Build()
//
//	// 2. Compute layout
//	eng := layout.New(g, layout.DefaultParams())
//	eng.Relayout(false, 1280)
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(g, eng, 1280)
//
// # Main Packages
//
// [workflow] - The serialized workflow document: nodes, dependencies, and
// metadata. Decoders for JSON, TOML, and HCL, plus Build which produces a
// validated graph or a structured error.
//
// [dag] - Directed acyclic graph keyed by node ID. Construction is atomic:
// validation failures (duplicate IDs, dangling references, cycles) leave no
// partial graph behind. Exposes the topological order, per-node depths, and
// cycle extraction for error reporting.
//
// [layout] - Layered layout engine. Nodes are placed by depth into horizontal
// layers and centered within the viewport. Individual nodes can be pinned to
// fixed positions that survive relayout, or dragged to override the computed
// position until the next relayout.
//
// [run] - Sequencer that walks the topological order one node at a time,
// tracking visited nodes and overall progress. Used by the run command's
// terminal animation.
//
// [render] - Output formats. RenderSVG draws nodes and directional edges,
// RenderHTML wraps the SVG in an interactive pan/zoom/drag viewer, ToDOT
// emits Graphviz source, and RenderDOT rasterizes it to PNG in-process.
//
// [pipeline] - The load → layout → render pipeline shared by every CLI
// command. Handles input format detection, layout and artifact caching, and
// timing stats.
//
// ## Infrastructure
//
// [cache] - Content-addressed file cache with TTL expiry, plus the Keyer
// that derives stable keys from workflow bytes, layout inputs, and render
// options.
//
// [errors] - Structured errors with stable codes and user-facing messages,
// shared by the CLI and the HTTP viewer.
//
// [observability] - Optional hooks for pipeline stages and cache activity.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Common Workflows
//
// Pin a node and recompute the layout:
//
//	eng.Pin("structural", layout.Position{X: 640, Y: 120})
//	eng.Relayout(false, 1280)
//
// Step through a run:
//
//	seq, _ := run.Start(g)
//	for {
//	    id, ok := seq.Advance()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println("running", id)
//	}
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Source:  "bridge.json",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/dag/...        # Specific package
//	go test -run Example         # Examples only
//
// [workflow]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/workflow
// [dag]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/dag
// [layout]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/layout
// [run]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/run
// [render]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flowcanvas/pkg/buildinfo
package pkg
