// Package exporter renders a depgraph.Graph into graph-visualization
// and compact text formats for the export subcommand.
package exporter

import (
	"fmt"
	"strings"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

// DOT generates a Graphviz DOT representation of g.
func DOT(g *depgraph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph sass_dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Helvetica\" shape=box];\n")
	b.WriteString("  edge [fontname=\"Helvetica\" fontsize=10];\n\n")

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		b.WriteString(fmt.Sprintf("  \"%s\" [style=filled fillcolor=\"%s\"];\n",
			string(id), nodeColor(n)))
	}
	b.WriteString("\n")

	for _, e := range g.Edges {
		name := string(e.DirectiveType)
		if e.Namespace != "" {
			name = fmt.Sprintf("%s (%s)", name, e.Namespace)
		}
		label := fmt.Sprintf(" label=\"%s\"", name)
		b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [style=%s color=\"%s\"%s];\n",
			string(e.From), string(e.To), edgeStyle(e.DirectiveType), edgeColor(e.DirectiveType), label))
	}

	b.WriteString("}\n")
	return b.String()
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, s)
}

func nodeColor(n *depgraph.FileNode) string {
	switch {
	case n.HasFlag(depgraph.FlagEntryPoint):
		return "#1f6feb"
	case n.HasFlag(depgraph.FlagInCycle):
		return "#f85149"
	case n.HasFlag(depgraph.FlagOrphan):
		return "#d29922"
	case n.HasFlag(depgraph.FlagLeaf):
		return "#238636"
	default:
		return "#8957e5"
	}
}

func edgeStyle(kind depgraph.DirectiveType) string {
	switch kind {
	case depgraph.DirectiveUse:
		return "solid"
	case depgraph.DirectiveForward:
		return "dashed"
	default:
		return "dotted"
	}
}

func edgeColor(kind depgraph.DirectiveType) string {
	switch kind {
	case depgraph.DirectiveUse:
		return "#3fb950"
	case depgraph.DirectiveForward:
		return "#8957e5"
	default:
		return "#8b949e"
	}
}
