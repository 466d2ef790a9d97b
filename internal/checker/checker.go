// Package checker evaluates constraint rules against a finished
// analysis for CI use, reporting every violation rather than failing
// fast on the first.
package checker

import (
	"fmt"

	"github.com/sassdep/sass-dep/internal/depgraph"
	"github.com/sassdep/sass-dep/internal/diag"
)

// Rules are the constraints a check run evaluates. A zero value for a
// *int field means that rule is not enabled.
type Rules struct {
	NoCycles  bool
	MaxDepth  *int
	MaxFanOut *int
	MaxFanIn  *int
}

// Check evaluates rules against g and returns every violation found,
// in node-insertion order within each rule and rule order
// (no_cycles, max_depth, max_fan_out, max_fan_in).
func Check(g *depgraph.Graph, rules Rules) []diag.CheckViolation {
	var violations []diag.CheckViolation

	if rules.NoCycles && len(g.Cycles) > 0 {
		for _, cycle := range g.Cycles {
			violations = append(violations, diag.CheckViolation{
				Rule:    "no_cycles",
				Node:    cycleLabel(cycle),
				Message: fmt.Sprintf("cycle detected: %s", cycleLabel(cycle)),
			})
		}
	}

	if rules.MaxDepth != nil {
		limit := *rules.MaxDepth
		for _, id := range g.NodeOrder() {
			n, _ := g.Node(id)
			if n.Metrics.Depth == depgraph.UnreachableDepth {
				continue
			}
			if n.Metrics.Depth > limit {
				violations = append(violations, diag.CheckViolation{
					Rule:    "max_depth",
					Node:    string(id),
					Message: fmt.Sprintf("depth %d exceeds max_depth %d", n.Metrics.Depth, limit),
				})
			}
		}
	}

	if rules.MaxFanOut != nil {
		limit := *rules.MaxFanOut
		for _, id := range g.NodeOrder() {
			n, _ := g.Node(id)
			if n.Metrics.FanOut > limit {
				violations = append(violations, diag.CheckViolation{
					Rule:    "max_fan_out",
					Node:    string(id),
					Message: fmt.Sprintf("fan_out %d exceeds max_fan_out %d", n.Metrics.FanOut, limit),
				})
			}
		}
	}

	if rules.MaxFanIn != nil {
		limit := *rules.MaxFanIn
		for _, id := range g.NodeOrder() {
			n, _ := g.Node(id)
			if n.Metrics.FanIn > limit {
				violations = append(violations, diag.CheckViolation{
					Rule:    "max_fan_in",
					Node:    string(id),
					Message: fmt.Sprintf("fan_in %d exceeds max_fan_in %d", n.Metrics.FanIn, limit),
				})
			}
		}
	}

	return violations
}

// cycleLabel names a cycle by its first member; analyzer cycles are
// already rotated so that member is lexicographically smallest.
func cycleLabel(cycle []depgraph.NodeId) string {
	if len(cycle) == 0 {
		return ""
	}
	return string(cycle[0])
}
