package analyzer

import "github.com/sassdep/sass-dep/internal/depgraph"

// detectCycles finds every non-trivial strongly connected component via
// Tarjan's algorithm, walking nodes in insertion order and neighbors in
// edge-insertion order so the result is deterministic for a given
// graph. An SCC is reported when it has two or more members, or one
// member with a self-loop. Each reported cycle is rotated so its
// lexicographically smallest NodeId comes first.
func detectCycles(g *depgraph.Graph) [][]depgraph.NodeId {
	t := &tarjan{
		g:       g,
		index:   make(map[depgraph.NodeId]int),
		lowlink: make(map[depgraph.NodeId]int),
		onStack: make(map[depgraph.NodeId]bool),
	}

	for _, id := range g.NodeOrder() {
		if _, seen := t.index[id]; !seen {
			t.strongconnect(id)
		}
	}

	var cycles [][]depgraph.NodeId
	for _, scc := range t.sccs {
		if len(scc) >= 2 || (len(scc) == 1 && hasSelfLoop(g, scc[0])) {
			cycles = append(cycles, rotateToSmallest(scc))
		}
	}
	return cycles
}

type tarjan struct {
	g       *depgraph.Graph
	next    int
	index   map[depgraph.NodeId]int
	lowlink map[depgraph.NodeId]int
	onStack map[depgraph.NodeId]bool
	stack   []depgraph.NodeId
	sccs    [][]depgraph.NodeId
}

func (t *tarjan) strongconnect(v depgraph.NodeId) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.OutNeighbors(v) {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var scc []depgraph.NodeId
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	t.sccs = append(t.sccs, scc)
}

func hasSelfLoop(g *depgraph.Graph, id depgraph.NodeId) bool {
	for _, neighbor := range g.OutNeighbors(id) {
		if neighbor == id {
			return true
		}
	}
	return false
}

func rotateToSmallest(scc []depgraph.NodeId) []depgraph.NodeId {
	minIdx := 0
	for i, id := range scc {
		if id < scc[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]depgraph.NodeId, 0, len(scc))
	rotated = append(rotated, scc[minIdx:]...)
	rotated = append(rotated, scc[:minIdx]...)
	return rotated
}
