package output

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/sassdep/sass-dep/internal/analyzer"
	"github.com/sassdep/sass-dep/internal/depgraph"
)

// Build assembles the deterministic output Document for g and stats.
// now and root are injected so callers (and tests) control the only
// two non-deterministic inputs: wall-clock time and the absolute
// project root.
func Build(g *depgraph.Graph, stats analyzer.Stats, now time.Time, root, version string) Document {
	doc := Document{
		Schema:  SchemaURL,
		Version: SchemaVersion,
		Metadata: Metadata{
			GeneratedAt:    now.UTC().Format(time.RFC3339),
			Root:           root,
			SassDepVersion: version,
			Stats:          statsFrom(stats),
		},
		Nodes:  make(map[string]Node, g.Len()),
		Cycles: make([][]string, 0, len(g.Cycles)),
	}

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		doc.Nodes[string(id)] = Node{
			AbsolutePath: n.AbsolutePath,
			Metrics: Metrics{
				FanIn:          n.Metrics.FanIn,
				FanOut:         n.Metrics.FanOut,
				Depth:          n.Metrics.Depth,
				TransitiveDeps: n.Metrics.TransitiveDeps,
			},
			Flags: flagStrings(n.SortedFlags()),
		}
	}

	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, toEdge(e))
	}
	sort.SliceStable(doc.Edges, func(i, j int) bool {
		a, b := doc.Edges[i], doc.Edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.DirectiveType < b.DirectiveType
	})

	for _, cycle := range g.Cycles {
		var s []string
		for _, id := range cycle {
			s = append(s, string(id))
		}
		doc.Cycles = append(doc.Cycles, s)
	}
	sort.Slice(doc.Cycles, func(i, j int) bool {
		return lexLess(doc.Cycles[i], doc.Cycles[j])
	})

	return doc
}

func toEdge(e depgraph.DependencyEdge) Edge {
	out := Edge{
		From:           string(e.From),
		To:             string(e.To),
		DirectiveType:  string(e.DirectiveType),
		Location:       Location{Line: e.Location.Line, Column: e.Location.Column},
		Namespace:      e.Namespace,
		Configured:     e.Configured,
		ConfiguredVars: e.ConfiguredVars,
	}
	if e.Forward != nil {
		fd := &ForwardDetail{Prefix: e.Forward.Prefix}
		if e.Forward.Visibility != nil {
			fd.Visibility = &Visibility{Hide: e.Forward.Visibility.Hide, Names: e.Forward.Visibility.Names}
		}
		out.Forward = fd
	}
	return out
}

func flagStrings(flags []depgraph.NodeFlag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}

func lexLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Marshal renders doc as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
