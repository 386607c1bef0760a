package workflow

import (
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

func TestBuild_Diamond(t *testing.T) {
	w := &Workflow{Nodes: []Node{
		{ID: "a"},
		{ID: "b", DependsOn: []Dependency{{NodeID: "a"}}},
		{ID: "c", DependsOn: []Dependency{{NodeID: "a"}}},
		{ID: "d", DependsOn: []Dependency{{NodeID: "b"}, {NodeID: "c"}}},
	}}

	g, err := w.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}

	// Edges point dependency→dependent.
	for _, e := range g.Edges() {
		if e.To == "a" {
			t.Errorf("edge %s→%s: root node must have no incoming edges", e.From, e.To)
		}
		if e.Kind != DefaultKind {
			t.Errorf("edge %s→%s kind = %q, want %q", e.From, e.To, e.Kind, DefaultKind)
		}
	}
}

func TestBuild_EmptyID(t *testing.T) {
	w := &Workflow{Nodes: []Node{{ID: ""}}}

	g, err := w.Build()
	if g != nil {
		t.Error("Build() should not return a graph on validation failure")
	}
	if !errors.Is(err, errors.ErrCodeInvalidNode) {
		t.Errorf("Build() error = %v, want INVALID_NODE", err)
	}
}

func TestBuild_DuplicateID(t *testing.T) {
	w := &Workflow{Nodes: []Node{{ID: "a"}, {ID: "a"}}}

	_, err := w.Build()
	if !errors.Is(err, errors.ErrCodeDuplicateNode) {
		t.Errorf("Build() error = %v, want DUPLICATE_NODE", err)
	}
}

func TestBuild_UnresolvedDependency(t *testing.T) {
	w := &Workflow{Nodes: []Node{
		{ID: "a", DependsOn: []Dependency{{NodeID: "missing"}}},
	}}

	g, err := w.Build()
	if g != nil {
		t.Error("Build() should not return a graph when a reference is unresolved")
	}
	if !errors.Is(err, errors.ErrCodeUnresolvedDep) {
		t.Errorf("Build() error = %v, want UNRESOLVED_DEPENDENCY", err)
	}
}

func TestBuild_ForwardReference(t *testing.T) {
	// Depending on a node declared later in the file is legal: validation
	// resolves references against the complete node set.
	w := &Workflow{Nodes: []Node{
		{ID: "late", DependsOn: []Dependency{{NodeID: "early"}}},
		{ID: "early"},
	}}

	if _, err := w.Build(); err != nil {
		t.Errorf("Build() error = %v, want nil", err)
	}
}

func TestBuild_KindPreserved(t *testing.T) {
	w := &Workflow{Nodes: []Node{
		{ID: "a"},
		{ID: "b", DependsOn: []Dependency{{NodeID: "a", Kind: "optional"}}},
	}}

	g, err := w.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := g.Edges()[0].Kind; got != "optional" {
		t.Errorf("edge kind = %q, want %q", got, "optional")
	}
}

func TestBuild_MetaCopied(t *testing.T) {
	meta := map[string]any{"team": "geo"}
	w := &Workflow{Nodes: []Node{{ID: "a", Meta: meta}}}

	g, err := w.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	n, _ := g.Node("a")
	n.Meta["team"] = "changed"
	if meta["team"] != "geo" {
		t.Error("Build() must copy metadata, not alias the input map")
	}
}

func TestBuild_ValidationLeavesNoPartialState(t *testing.T) {
	// The bad reference sits on the last node; earlier nodes must not leak
	// out as a partially built graph.
	w := &Workflow{Nodes: []Node{
		{ID: "a"},
		{ID: "b", DependsOn: []Dependency{{NodeID: "a"}}},
		{ID: "c", DependsOn: []Dependency{{NodeID: "ghost"}}},
	}}

	g, err := w.Build()
	if g != nil {
		t.Fatal("Build() returned a graph despite a trailing validation failure")
	}
	if !errors.IsValidation(err) {
		t.Errorf("Build() error = %v, want a validation error", err)
	}
}
