package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/observability"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// layoutState is the cached form of a computed layout.
type layoutState struct {
	Positions map[string]layout.Position `json:"positions"`
	Pinned    []string                   `json:"pinned"`
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	wf, g, raw, err := Load(opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Source, 0, time.Since(loadStart), err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, g.NodeCount(), time.Since(loadStart), nil)
	result.Workflow = wf
	result.Graph = g
	result.WorkflowHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("loaded workflow",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Width, g.NodeCount())
	eng, layoutHit, err := r.layoutWithCache(ctx, g, result.WorkflowHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Width, time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Positions = eng.Positions()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"positions", len(result.Positions),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.renderWithCache(ctx, wf, g, eng, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layoutWithCache computes or restores a layout and reports whether it came
// from cache.
func (r *Runner) layoutWithCache(ctx context.Context, g *dag.Graph, workflowHash string, opts Options) (*layout.Engine, bool, error) {
	cacheKey := r.Keyer.LayoutKey(workflowHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var state layoutState
			if err := json.Unmarshal(data, &state); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				eng := layout.New(g, layout.DefaultParams())
				eng.Restore(state.Positions, state.Pinned)
				return eng, true, nil
			}
			// Corrupt entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	eng, err := ComputeLayout(g, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(layoutState{Positions: eng.Positions(), Pinned: eng.Pinned()}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return eng, false, nil
}

// renderWithCache produces artifacts, serving them from cache when every
// requested format is present.
func (r *Runner) renderWithCache(ctx context.Context, wf *workflow.Workflow, g *dag.Graph, eng *layout.Engine, opts Options) (map[string][]byte, bool, error) {
	state, err := json.Marshal(layoutState{Positions: eng.Positions(), Pinned: eng.Pinned()})
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(state)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := RenderFromLayout(ctx, wf, g, eng, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
