package cache

// ScopedKeyer wraps a Keyer with a prefix so several workflow projects can
// share one cache directory without key collisions.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "bridge-footing:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// WorkflowKey generates a prefixed key for a parsed workflow.
func (k *ScopedKeyer) WorkflowKey(source string, raw []byte) string {
	return k.prefix + k.inner.WorkflowKey(source, raw)
}

// LayoutKey generates a prefixed key for computed positions.
func (k *ScopedKeyer) LayoutKey(workflowHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(workflowHash, opts)
}

// ArtifactKey generates a prefixed key for rendered output.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
