package analyzer

import "github.com/sassdep/sass-dep/internal/depgraph"

// Thresholds controls HighFanIn/HighFanOut flag assignment. Comparisons
// are strict: a node must exceed the threshold, not merely meet it.
type Thresholds struct {
	HighFanIn  int
	HighFanOut int
}

// DefaultThresholds matches sass-dep's zero-configuration defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{HighFanIn: 5, HighFanOut: 10}
}

// assignFlags sets EntryPoint, Leaf, Orphan, HighFanIn, HighFanOut, and
// InCycle on every node from its metrics, entry-point membership, and
// cycle membership. Must run after cycles and all metrics have been
// computed.
func assignFlags(g *depgraph.Graph, thresholds Thresholds) {
	inCycle := make(map[depgraph.NodeId]struct{})
	for _, cycle := range g.Cycles {
		for _, id := range cycle {
			inCycle[id] = struct{}{}
		}
	}

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)

		if _, ok := g.EntryPoints[id]; ok {
			n.AddFlag(depgraph.FlagEntryPoint)
		}
		if n.Metrics.FanOut == 0 {
			n.AddFlag(depgraph.FlagLeaf)
		}
		if n.Metrics.Depth == depgraph.UnreachableDepth {
			n.AddFlag(depgraph.FlagOrphan)
		}
		if n.Metrics.FanIn > thresholds.HighFanIn {
			n.AddFlag(depgraph.FlagHighFanIn)
		}
		if n.Metrics.FanOut > thresholds.HighFanOut {
			n.AddFlag(depgraph.FlagHighFanOut)
		}
		if _, ok := inCycle[id]; ok {
			n.AddFlag(depgraph.FlagInCycle)
		}
	}
}
