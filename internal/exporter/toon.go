package exporter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	toonKeywords = map[string]struct{}{"true": {}, "false": {}, "null": {}}
)

// TOON renders g in Token-Oriented Object Notation: a compact tabular
// text format with one row per node and per edge, cheaper to paste
// into an LLM prompt than the full JSON document.
func TOON(g *depgraph.Graph) string {
	var parts []string

	var nodeRows [][]string
	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		nodeRows = append(nodeRows, []string{
			string(id),
			fmt.Sprintf("%d", n.Metrics.FanIn),
			fmt.Sprintf("%d", n.Metrics.FanOut),
			depthCell(n.Metrics.Depth),
			strings.Join(flagNames(n), " "),
		})
	}
	parts = append(parts, formatTabular("nodes", []string{"id", "fan_in", "fan_out", "depth", "flags"}, nodeRows))

	var edgeRows [][]string
	for _, e := range g.Edges {
		edgeRows = append(edgeRows, []string{
			string(e.From),
			string(e.To),
			string(e.DirectiveType),
			e.Namespace,
		})
	}
	parts = append(parts, formatTabular("edges", []string{"from", "to", "kind", "namespace"}, edgeRows))

	if len(g.Cycles) > 0 {
		var cycleRows [][]string
		for _, cycle := range g.Cycles {
			ids := make([]string, len(cycle))
			for i, id := range cycle {
				ids[i] = string(id)
			}
			cycleRows = append(cycleRows, []string{strings.Join(ids, " -> ")})
		}
		parts = append(parts, formatTabular("cycles", []string{"members"}, cycleRows))
	}

	return strings.Join(parts, "\n")
}

func depthCell(depth int) string {
	if depth == depgraph.UnreachableDepth {
		return "unreachable"
	}
	return fmt.Sprintf("%d", depth)
}

func flagNames(n *depgraph.FileNode) []string {
	flags := n.SortedFlags()
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeTOONValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeTOONValue(value string) string {
	if value == "" {
		return `""`
	}
	if value != strings.TrimSpace(value) || strings.ContainsAny(value, "\n\r\t") {
		return quoteTOON(value)
	}
	if _, ok := toonKeywords[strings.ToLower(value)]; ok {
		return quoteTOON(value)
	}
	if looksNumeric.MatchString(value) {
		return value
	}
	if needsQuoting.MatchString(value) || strings.HasPrefix(value, "-") {
		return quoteTOON(value)
	}
	return value
}

func quoteTOON(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
