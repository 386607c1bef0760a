package workflow

import (
	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// DefaultKind is the dependency kind used when the input does not declare one.
const DefaultKind = "default"

// Dependency is a reference to another node's ID. It must resolve to an
// existing node; unresolved references are a load-time error, not a silent
// drop.
type Dependency struct {
	NodeID string `json:"node_id" toml:"node_id"`
	Kind   string `json:"kind,omitempty" toml:"kind"`
}

// Node is a single workflow step as declared in the input. Identity is ID;
// uniqueness is enforced by [Workflow.Build]. Fields the core does not know
// about are carried through in Meta untouched.
type Node struct {
	ID        string         `json:"id" toml:"id"`
	Type      string         `json:"type,omitempty" toml:"type"`
	Title     string         `json:"title,omitempty" toml:"title"`
	DependsOn []Dependency   `json:"depends_on,omitempty" toml:"depends_on"`
	URL       string         `json:"url,omitempty" toml:"url"`
	Meta      map[string]any `json:"meta,omitempty" toml:"meta"`
}

// Workflow is the raw, ordered node list as declared by the input. Decode
// front-ends ([Decode], [DecodeFile]) produce it; [Workflow.Build] turns it
// into a validated graph.
type Workflow struct {
	Nodes []Node `json:"nodes" toml:"nodes"`
}

// Build validates the workflow and constructs the graph.
//
// Validation happens in two phases so no partial state is ever visible:
// first every node is checked (non-empty ID, no duplicates) and every
// depends_on reference is resolved against the full node set; only then is
// the graph assembled. A failure in either phase returns a structured error
// and no graph, so a caller holding a previous graph keeps it.
//
// Each dependency produces one derived edge {From: dependency, To: node},
// meaning the dependency must complete before the node.
func (w *Workflow) Build() (*dag.Graph, error) {
	seen := make(map[string]struct{}, len(w.Nodes))
	for i, n := range w.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidNode, "node %d has an empty ID", i)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateNode, "duplicate node ID %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	for _, n := range w.Nodes {
		for _, dep := range n.DependsOn {
			if _, ok := seen[dep.NodeID]; !ok {
				return nil, errors.New(errors.ErrCodeUnresolvedDep,
					"node %q depends on unknown node %q", n.ID, dep.NodeID)
			}
		}
	}

	g := dag.New()
	for _, n := range w.Nodes {
		node := dag.Node{
			ID:    n.ID,
			Type:  n.Type,
			Title: n.Title,
			URL:   n.URL,
			Meta:  copyMeta(n.Meta),
		}
		if err := g.AddNode(node); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkflow, err, "add node %q", n.ID)
		}
	}
	for _, n := range w.Nodes {
		for _, dep := range n.DependsOn {
			kind := dep.Kind
			if kind == "" {
				kind = DefaultKind
			}
			e := dag.Edge{From: dep.NodeID, To: n.ID, Kind: kind}
			if err := g.AddEdge(e); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidWorkflow, err, "add edge %s→%s", e.From, e.To)
			}
		}
	}
	return g, nil
}

// LoadFile decodes and validates a workflow file in one step, returning both
// the raw workflow (for serialization to viewers) and the built graph.
func LoadFile(path string) (*Workflow, *dag.Graph, error) {
	w, err := DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := w.Build()
	if err != nil {
		return nil, nil, err
	}
	return w, g, nil
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
