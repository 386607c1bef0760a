package dag

// TopoOrder computes a topological ordering of the graph using Kahn's
// algorithm. It returns the order and true on success, or nil and false when
// the graph contains a cycle. A cycle is a reported condition, not an error:
// callers must check ok before using the order (layout and run both refuse
// to proceed on a cyclic graph).
//
// The queue is seeded with all zero-in-degree nodes in declaration order and
// drained FIFO, so ties among simultaneously-ready nodes are broken by the
// order the input declared them. This keeps layering deterministic for the
// same input.
//
// Time complexity is O(V + E), where V is nodes and E is edges.
func (g *Graph) TopoOrder() ([]string, bool) {
	inDegree := make(map[string]int, len(g.nodes))
	queue := newQueue(len(g.nodes))

	for _, id := range g.order {
		degree := g.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue.push(id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for queue.len() > 0 {
		curr := queue.pop()
		order = append(order, curr)

		for _, succ := range g.outgoing[curr] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue.push(succ)
			}
		}
	}

	if len(order) < len(g.nodes) {
		return nil, false
	}
	return order, true
}

// Depths computes the layer depth of every node in a single forward pass
// over order, which must be a valid topological ordering of the graph (as
// returned by [Graph.TopoOrder] with ok=true). A node with no predecessors
// has depth 0; otherwise its depth is one more than the deepest node it
// depends on. Because order is topological, every predecessor has been
// visited before the node itself.
//
// Behavior on a cyclic graph is undefined; callers must check TopoOrder's
// ok result first.
func (g *Graph) Depths(order []string) map[string]int {
	depths := make(map[string]int, len(order))
	for _, id := range order {
		depth := 0
		for _, pred := range g.incoming[id] {
			if d := depths[pred] + 1; d > depth {
				depth = d
			}
		}
		depths[id] = depth
	}
	return depths
}

// queue is a FIFO queue of node IDs with an explicit head index, so popping
// does not reslice-and-shift the backing array on every call.
type queue struct {
	items []string
	head  int
}

func newQueue(capacity int) *queue {
	return &queue{items: make([]string, 0, capacity)}
}

func (q *queue) push(id string) { q.items = append(q.items, id) }

func (q *queue) pop() string {
	id := q.items[q.head]
	q.head++
	return id
}

func (q *queue) len() int { return len(q.items) - q.head }
