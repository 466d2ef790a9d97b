package exporter

import (
	"fmt"
	"strings"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

// Mermaid generates a Mermaid flowchart of g.
func Mermaid(g *depgraph.Graph) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		b.WriteString(fmt.Sprintf("  %s%s\n", sanitizeID(string(id)), mermaidShape(n)))
	}

	for _, e := range g.Edges {
		arrow := mermaidArrow(e.DirectiveType)
		label := ""
		if e.Namespace != "" {
			label = "|" + e.Namespace + "|"
		}
		b.WriteString(fmt.Sprintf("  %s %s%s %s\n",
			sanitizeID(string(e.From)), arrow, label, sanitizeID(string(e.To))))
	}

	return b.String()
}

func mermaidShape(n *depgraph.FileNode) string {
	switch {
	case n.HasFlag(depgraph.FlagEntryPoint):
		return fmt.Sprintf("[[\"%s\"]]", n.ID)
	case n.HasFlag(depgraph.FlagOrphan):
		return fmt.Sprintf("((\"%s\"))", n.ID)
	default:
		return fmt.Sprintf("[\"%s\"]", n.ID)
	}
}

func mermaidArrow(kind depgraph.DirectiveType) string {
	switch kind {
	case depgraph.DirectiveUse:
		return "-->"
	case depgraph.DirectiveForward:
		return "-.->"
	default:
		return "-..->"
	}
}
