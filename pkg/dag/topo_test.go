package dag

import (
	"slices"
	"testing"
)

// diamond builds the fixture A; B←A; C←A; D←B,C.
func diamond() *Graph {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "a", To: "c"})
	g.AddEdge(Edge{From: "b", To: "d"})
	g.AddEdge(Edge{From: "c", To: "d"})
	return g
}

func TestTopoOrder_Diamond(t *testing.T) {
	g := diamond()

	order, ok := g.TopoOrder()
	if !ok {
		t.Fatal("TopoOrder() ok = false, want true")
	}
	if len(order) != 4 {
		t.Fatalf("TopoOrder() len = %d, want 4", len(order))
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("edge %s→%s out of order: index %d >= %d", e.From, e.To, pos[e.From], pos[e.To])
		}
	}
}

func TestTopoOrder_ContainsEveryNodeOnce(t *testing.T) {
	g := diamond()
	order, _ := g.TopoOrder()

	seen := make(map[string]int)
	for _, id := range order {
		seen[id]++
	}
	for _, id := range g.NodeIDs() {
		if seen[id] != 1 {
			t.Errorf("node %s appears %d times in order, want 1", id, seen[id])
		}
	}
}

func TestTopoOrder_DeclarationOrderTieBreak(t *testing.T) {
	// Three independent nodes: the order must match declaration order.
	g := New()
	for _, id := range []string{"z", "m", "a"} {
		g.AddNode(Node{ID: id})
	}

	order, ok := g.TopoOrder()
	if !ok {
		t.Fatal("TopoOrder() ok = false, want true")
	}
	if !slices.Equal(order, []string{"z", "m", "a"}) {
		t.Errorf("TopoOrder() = %v, want [z m a]", order)
	}
}

func TestTopoOrder_Cycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "b", To: "a"})

	order, ok := g.TopoOrder()
	if ok {
		t.Error("TopoOrder() ok = true, want false for cyclic graph")
	}
	if len(order) != 0 {
		t.Errorf("TopoOrder() order = %v, want empty on cycle", order)
	}
}

func TestTopoOrder_PartialCycle(t *testing.T) {
	// A clean prefix feeding into a cycle must still be reported as cyclic.
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "b", To: "c"})
	g.AddEdge(Edge{From: "c", To: "b"})

	if _, ok := g.TopoOrder(); ok {
		t.Error("TopoOrder() ok = true, want false")
	}
}

func TestTopoOrder_Empty(t *testing.T) {
	order, ok := New().TopoOrder()
	if !ok {
		t.Error("TopoOrder() ok = false, want true for empty graph")
	}
	if len(order) != 0 {
		t.Errorf("TopoOrder() = %v, want empty", order)
	}
}

func TestDepths_Diamond(t *testing.T) {
	g := diamond()
	order, ok := g.TopoOrder()
	if !ok {
		t.Fatal("TopoOrder() ok = false")
	}

	depths := g.Depths(order)
	want := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	for id, d := range want {
		if depths[id] != d {
			t.Errorf("Depths()[%s] = %d, want %d", id, depths[id], d)
		}
	}
}

func TestDepths_EdgesStrictlyDescend(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(Node{ID: id})
	}
	// Long edge a→e alongside the chain a→b→c→e pushes e to depth 3.
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "b", To: "c"})
	g.AddEdge(Edge{From: "c", To: "e"})
	g.AddEdge(Edge{From: "a", To: "e"})
	g.AddEdge(Edge{From: "a", To: "d"})

	order, _ := g.TopoOrder()
	depths := g.Depths(order)

	for _, e := range g.Edges() {
		if depths[e.To] <= depths[e.From] {
			t.Errorf("edge %s→%s: depth %d not above %d", e.From, e.To, depths[e.To], depths[e.From])
		}
	}
	if depths["e"] != 3 {
		t.Errorf("Depths()[e] = %d, want 3 (longest path)", depths["e"])
	}
}

func TestDepths_IsolatedNode(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "lonely"})

	order, _ := g.TopoOrder()
	if d := g.Depths(order)["lonely"]; d != 0 {
		t.Errorf("Depths()[lonely] = %d, want 0", d)
	}
}
