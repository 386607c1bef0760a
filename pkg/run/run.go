// Package run drives the simulated execution of a workflow: nodes are
// visited strictly in topological order, exactly one node active at a time.
//
// This is a sequencing contract, not a scheduler. The sequencer is a small
// finite-state machine (Idle → Running → Done) advanced by an external
// driver - the CLI steps it from a bubbletea tick, the HTTP viewer from its
// animation loop. There is no concurrency: cancelling simply stops the index
// from advancing, and since steps are idempotent visual highlights there is
// nothing to roll back.
package run

import (
	"github.com/google/uuid"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// State is the sequencer's lifecycle phase.
type State int

const (
	// StateIdle means the run has not started.
	StateIdle State = iota
	// StateRunning means a node is currently active.
	StateRunning
	// StateDone means every node has been visited or the run was cancelled.
	StateDone
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Sequencer walks a workflow's topological order one node at a time.
//
// Sequencer is not safe for concurrent use; the model is single-threaded
// and all transitions happen from the driving event loop.
type Sequencer struct {
	id    string
	order []string
	index int
	state State
}

// Start creates a sequencer for the given graph. It refuses to start on a
// cyclic graph with a RUN_REFUSED error, mirroring the layout engine's
// cycle handling. Each run gets a unique ID for logging.
func Start(g *dag.Graph) (*Sequencer, error) {
	order, ok := g.TopoOrder()
	if !ok {
		return nil, errors.New(errors.ErrCodeRunRefused, "workflow contains a dependency cycle; run refused")
	}
	return &Sequencer{
		id:    uuid.NewString(),
		order: order,
		index: -1,
		state: StateIdle,
	}, nil
}

// ID returns the unique identifier of this run.
func (s *Sequencer) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *Sequencer) State() State { return s.state }

// Order returns the full visiting order of the run.
func (s *Sequencer) Order() []string { return s.order }

// Active returns the currently active node ID, or "" when no node is active
// (idle or done).
func (s *Sequencer) Active() string {
	if s.state != StateRunning {
		return ""
	}
	return s.order[s.index]
}

// Advance activates the next node in order and returns its ID. When the
// order is exhausted it transitions to Done and returns ok=false. Calling
// Advance on a done (or cancelled) sequencer keeps returning ok=false.
func (s *Sequencer) Advance() (id string, ok bool) {
	if s.state == StateDone {
		return "", false
	}
	s.index++
	if s.index >= len(s.order) {
		s.state = StateDone
		return "", false
	}
	s.state = StateRunning
	return s.order[s.index], true
}

// Visited reports whether the node has already been activated during this
// run (including the currently active node).
func (s *Sequencer) Visited(id string) bool {
	if s.state == StateIdle {
		return false
	}
	for i := 0; i <= s.index && i < len(s.order); i++ {
		if s.order[i] == id {
			return true
		}
	}
	return false
}

// Progress returns the number of visited nodes and the total.
func (s *Sequencer) Progress() (visited, total int) {
	done := s.index + 1
	if done < 0 {
		done = 0
	}
	if done > len(s.order) {
		done = len(s.order)
	}
	return done, len(s.order)
}

// Cancel stops the run. Future Advance calls return ok=false. Graph and
// position state are untouched; the sequencer never writes to either.
func (s *Sequencer) Cancel() {
	s.state = StateDone
}
