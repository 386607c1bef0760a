// Package cache provides pluggable byte caching for rendered artifacts.
//
// The pipeline uses it to skip re-rendering when the workflow definition,
// layout inputs and render options are unchanged. Keys are content-addressed:
// a Keyer hashes the inputs so any change invalidates naturally without
// explicit eviction.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// LayoutKeyOpts captures the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Width   float64
	Pinned  map[string][2]float64
	Version string
}

// ArtifactKeyOpts captures the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string
	Title    string
	Detailed bool
	Active   string
	Version  string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// WorkflowKey keys a parsed workflow by its raw definition bytes.
	WorkflowKey(source string, raw []byte) string

	// LayoutKey keys computed positions by the workflow hash and layout inputs.
	LayoutKey(workflowHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered output by the layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// WorkflowKey generates a key for a parsed workflow.
func (k *DefaultKeyer) WorkflowKey(source string, raw []byte) string {
	return hashKey("workflow", source, Hash(raw))
}

// LayoutKey generates a key for computed positions.
func (k *DefaultKeyer) LayoutKey(workflowHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", workflowHash, opts.Width, opts.Pinned, opts.Version)
}

// ArtifactKey generates a key for rendered output.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Title, opts.Detailed, opts.Active, opts.Version)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// Default TTLs per pipeline stage. Layouts and artifacts are cheap to rebuild
// so they expire faster than parsed workflows.
const (
	TTLWorkflow = 24 * time.Hour
	TTLLayout   = 12 * time.Hour
	TTLArtifact = 12 * time.Hour
)
