package analyzer

import "github.com/sassdep/sass-dep/internal/depgraph"

// Stats summarizes a finished analysis: totals, maxima, and counts
// used both by the emitter's metadata.stats field and by analyze
// --stats's human-readable summary.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	CycleCount int
	MaxDepth   int // 0 when no reachable node has positive depth
	MaxFanIn   int
	MaxFanOut  int
}

// Config controls flag-assignment thresholds.
type Config struct {
	Thresholds Thresholds
}

// DefaultConfig returns sass-dep's zero-configuration analyzer defaults.
func DefaultConfig() Config {
	return Config{Thresholds: DefaultThresholds()}
}

// Analyze runs the fixed analysis pipeline over g in place and returns
// the resulting Stats:
//
//  1. fan-in / fan-out
//  2. cycle detection (Tarjan's algorithm)
//  3. depth from entry points (multi-source BFS)
//  4. transitive dependency counts
//  5. flag assignment
//  6. statistics
func Analyze(g *depgraph.Graph, cfg Config) Stats {
	calculateFanInOut(g)
	g.SetCycles(detectCycles(g))
	calculateDepths(g)
	calculateTransitiveDeps(g)
	assignFlags(g, cfg.Thresholds)
	return computeStats(g)
}

func computeStats(g *depgraph.Graph) Stats {
	stats := Stats{
		NodeCount:  g.Len(),
		EdgeCount:  len(g.Edges),
		CycleCount: len(g.Cycles),
	}
	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		if n.Metrics.Depth != depgraph.UnreachableDepth && n.Metrics.Depth > stats.MaxDepth {
			stats.MaxDepth = n.Metrics.Depth
		}
		if n.Metrics.FanIn > stats.MaxFanIn {
			stats.MaxFanIn = n.Metrics.FanIn
		}
		if n.Metrics.FanOut > stats.MaxFanOut {
			stats.MaxFanOut = n.Metrics.FanOut
		}
	}
	return stats
}
