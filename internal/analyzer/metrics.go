// Package analyzer computes per-node metrics, detects cycles, and
// assigns flags over a frozen depgraph.Graph.
package analyzer

import "github.com/sassdep/sass-dep/internal/depgraph"

// calculateFanInOut sets FanIn/FanOut from direct edge counts; parallel
// edges between the same pair are counted individually.
func calculateFanInOut(g *depgraph.Graph) {
	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		n.Metrics.FanIn = g.InDegree(id)
		n.Metrics.FanOut = g.OutDegree(id)
	}
}

// calculateDepths runs a multi-source BFS from the entry-point set,
// treated as a single virtual super-source at depth 0. Nodes with no
// path from any entry point keep the unreachable sentinel.
func calculateDepths(g *depgraph.Graph) {
	depth := make(map[depgraph.NodeId]int, g.Len())
	for _, id := range g.NodeOrder() {
		depth[id] = depgraph.UnreachableDepth
	}

	var queue []depgraph.NodeId
	for _, id := range g.NodeOrder() {
		if _, ok := g.EntryPoints[id]; ok {
			depth[id] = 0
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := depth[cur] + 1
		for _, neighbor := range g.OutNeighbors(cur) {
			if next < depth[neighbor] {
				depth[neighbor] = next
				queue = append(queue, neighbor)
			}
		}
	}

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		n.Metrics.Depth = depth[id]
	}
}

// calculateTransitiveDeps sets TransitiveDeps to the count of distinct
// reachable descendants (excluding the node itself), safe under
// cycles via a per-node visited set.
func calculateTransitiveDeps(g *depgraph.Graph) {
	for _, id := range g.NodeOrder() {
		visited := make(map[depgraph.NodeId]struct{})
		stack := []depgraph.NodeId{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, neighbor := range g.OutNeighbors(cur) {
				if neighbor == id {
					continue
				}
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = struct{}{}
				stack = append(stack, neighbor)
			}
		}
		n, _ := g.Node(id)
		n.Metrics.TransitiveDeps = len(visited)
	}
}
