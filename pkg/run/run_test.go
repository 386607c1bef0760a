package run

import (
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

func chain(t *testing.T) *dag.Graph {
	t.Helper()
	g := dag.New()
	for _, id := range []string{"a", "b", "c"} {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.AddEdge(dag.Edge{From: "b", To: "c"})
	return g
}

func TestStart(t *testing.T) {
	s, err := Start(chain(t))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v, want idle", s.State())
	}
	if s.ID() == "" {
		t.Error("run ID should not be empty")
	}
	if s.Active() != "" {
		t.Errorf("Active() = %q, want empty before first Advance", s.Active())
	}
}

func TestStart_CycleRefused(t *testing.T) {
	g := dag.New()
	g.AddNode(dag.Node{ID: "a"})
	g.AddNode(dag.Node{ID: "b"})
	g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.AddEdge(dag.Edge{From: "b", To: "a"})

	s, err := Start(g)
	if s != nil {
		t.Error("Start() should not return a sequencer for a cyclic graph")
	}
	if !errors.Is(err, errors.ErrCodeRunRefused) {
		t.Errorf("Start() error = %v, want RUN_REFUSED", err)
	}
}

func TestAdvance_VisitsInOrder(t *testing.T) {
	s, _ := Start(chain(t))

	var visited []string
	for {
		id, ok := s.Advance()
		if !ok {
			break
		}
		// Exactly one active node at a time.
		if s.Active() != id {
			t.Errorf("Active() = %q, want %q", s.Active(), id)
		}
		visited = append(visited, id)
	}

	want := []string{"a", "b", "c"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
	if s.State() != StateDone {
		t.Errorf("State() = %v, want done after exhausting the order", s.State())
	}
}

func TestAdvance_AfterDone(t *testing.T) {
	s, _ := Start(chain(t))
	for {
		if _, ok := s.Advance(); !ok {
			break
		}
	}
	if _, ok := s.Advance(); ok {
		t.Error("Advance() after done should return ok=false")
	}
}

func TestCancel(t *testing.T) {
	s, _ := Start(chain(t))
	s.Advance()
	s.Cancel()

	if s.State() != StateDone {
		t.Errorf("State() = %v, want done after cancel", s.State())
	}
	if _, ok := s.Advance(); ok {
		t.Error("Advance() after cancel should return ok=false")
	}
	if s.Active() != "" {
		t.Errorf("Active() = %q, want empty after cancel", s.Active())
	}
}

func TestVisitedAndProgress(t *testing.T) {
	s, _ := Start(chain(t))

	if s.Visited("a") {
		t.Error("nothing is visited before the first Advance")
	}

	s.Advance()
	s.Advance()
	if !s.Visited("a") || !s.Visited("b") {
		t.Error("a and b should be visited after two steps")
	}
	if s.Visited("c") {
		t.Error("c should not be visited yet")
	}

	visited, total := s.Progress()
	if visited != 2 || total != 3 {
		t.Errorf("Progress() = %d/%d, want 2/3", visited, total)
	}
}
