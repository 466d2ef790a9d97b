package checker

import (
	"testing"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

func intp(n int) *int { return &n }

func TestCheckNoCyclesPasses(t *testing.T) {
	t.Parallel()
	g := depgraph.New()
	g.EnsureNode("a.scss", "/a.scss")

	v := Check(g, Rules{NoCycles: true})
	if len(v) != 0 {
		t.Errorf("violations = %v, want none", v)
	}
}

func TestCheckNoCyclesFails(t *testing.T) {
	t.Parallel()
	g := depgraph.New()
	g.EnsureNode("a.scss", "/a.scss")
	g.EnsureNode("b.scss", "/b.scss")
	g.SetCycles([][]depgraph.NodeId{{"a.scss", "b.scss"}})

	v := Check(g, Rules{NoCycles: true})
	if len(v) != 1 || v[0].Rule != "no_cycles" {
		t.Errorf("violations = %v, want one no_cycles violation", v)
	}
}

func TestCheckMaxDepthIgnoresUnreachable(t *testing.T) {
	t.Parallel()
	g := depgraph.New()
	n := g.EnsureNode("a.scss", "/a.scss")
	n.Metrics.Depth = depgraph.UnreachableDepth

	v := Check(g, Rules{MaxDepth: intp(2)})
	if len(v) != 0 {
		t.Errorf("violations = %v, want none (unreachable nodes are exempt)", v)
	}
}

func TestCheckMaxDepthFails(t *testing.T) {
	t.Parallel()
	g := depgraph.New()
	n := g.EnsureNode("a.scss", "/a.scss")
	n.Metrics.Depth = 5

	v := Check(g, Rules{MaxDepth: intp(2)})
	if len(v) != 1 || v[0].Rule != "max_depth" {
		t.Errorf("violations = %v, want one max_depth violation", v)
	}
}

func TestCheckMaxFanOutAndFanIn(t *testing.T) {
	t.Parallel()
	g := depgraph.New()
	n := g.EnsureNode("a.scss", "/a.scss")
	n.Metrics.FanOut = 20
	n.Metrics.FanIn = 8

	v := Check(g, Rules{MaxFanOut: intp(10), MaxFanIn: intp(5)})
	if len(v) != 2 {
		t.Fatalf("violations = %v, want 2", v)
	}
	if v[0].Rule != "max_fan_out" || v[1].Rule != "max_fan_in" {
		t.Errorf("violations not in rule order: %v", v)
	}
}

func TestCheckReportsEveryViolationNotJustFirst(t *testing.T) {
	t.Parallel()
	g := depgraph.New()
	a := g.EnsureNode("a.scss", "/a.scss")
	a.Metrics.FanOut = 99
	b := g.EnsureNode("b.scss", "/b.scss")
	b.Metrics.FanOut = 99

	v := Check(g, Rules{MaxFanOut: intp(1)})
	if len(v) != 2 {
		t.Errorf("violations = %v, want 2 (one per offending node)", v)
	}
}
