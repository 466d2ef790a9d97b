package exporter

import (
	"fmt"
	"strings"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

// D2 generates a D2 (terrastruct.com/d2) diagram of g.
func D2(g *depgraph.Graph) string {
	var b strings.Builder

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		b.WriteString(fmt.Sprintf("%s: {\n  label: \"%s\"\n  style.fill: \"%s\"\n}\n",
			sanitizeID(string(id)), string(id), nodeColor(n)))
	}
	b.WriteString("\n")

	for _, e := range g.Edges {
		style := "solid"
		if e.DirectiveType == depgraph.DirectiveForward {
			style = "dashed"
		} else if e.DirectiveType == depgraph.DirectiveImport {
			style = "dotted"
		}
		b.WriteString(fmt.Sprintf("%s -> %s: %s {\n  style.stroke-dash: %s\n}\n",
			sanitizeID(string(e.From)), sanitizeID(string(e.To)), string(e.DirectiveType), d2Dash(style)))
	}

	return b.String()
}

func d2Dash(style string) string {
	switch style {
	case "dashed":
		return "3"
	case "dotted":
		return "1"
	default:
		return "0"
	}
}
