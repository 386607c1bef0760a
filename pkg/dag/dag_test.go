package dag

import (
	"errors"
	"testing"
)

func TestAddNode_EmptyID(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode() error = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddNode_Duplicate(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode() error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddNode_InitializesMeta(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	n, ok := g.Node("a")
	if !ok {
		t.Fatal("Node(a) not found")
	}
	if n.Meta == nil {
		t.Error("Meta should be initialized to an empty map")
	}
}

func TestAddEdge_UnknownEndpoints(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})

	if err := g.AddEdge(Edge{From: "missing", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge() error = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "missing"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge() error = %v, want ErrUnknownTargetNode", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 after failed AddEdge", g.EdgeCount())
	}
}

func TestNodes_DeclarationOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c", "a", "b"} {
		g.AddNode(Node{ID: id})
	}

	got := g.NodeIDs()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NodeIDs() = %v, want %v", got, want)
		}
	}
}

func TestAdjacency(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c"})
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "a", To: "c"})

	if got := g.Successors("a"); len(got) != 2 {
		t.Errorf("Successors(a) = %v, want 2 entries", got)
	}
	if got := g.Predecessors("b"); len(got) != 1 || got[0] != "a" {
		t.Errorf("Predecessors(b) = %v, want [a]", got)
	}
	if g.InDegree("a") != 0 || g.OutDegree("a") != 2 {
		t.Errorf("degree(a) = in %d out %d, want in 0 out 2", g.InDegree("a"), g.OutDegree("a"))
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "lonely"})
	g.AddEdge(Edge{From: "a", To: "b"})

	sources := g.Sources()
	if len(sources) != 2 || sources[0].ID != "a" || sources[1].ID != "lonely" {
		t.Errorf("Sources() = %v, want [a lonely]", ids(sources))
	}

	sinks := g.Sinks()
	if len(sinks) != 2 || sinks[0].ID != "b" || sinks[1].ID != "lonely" {
		t.Errorf("Sinks() = %v, want [b lonely]", ids(sinks))
	}
}

func TestNodeLabel(t *testing.T) {
	if got := (Node{ID: "a", Title: "Step A"}).Label(); got != "Step A" {
		t.Errorf("Label() = %q, want %q", got, "Step A")
	}
	if got := (Node{ID: "a"}).Label(); got != "a" {
		t.Errorf("Label() = %q, want %q", got, "a")
	}
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
