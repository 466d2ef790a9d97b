package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sassdep/sass-dep/internal/depgraph"
	"github.com/sassdep/sass-dep/internal/diag"
	"github.com/sassdep/sass-dep/internal/exporter"
)

func newExportCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <INPUT.json | ENTRY...>",
		Short: "Render a graph as DOT, Mermaid, D2, or TOON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := loadExportGraph(g, args, stderr)
			if err != nil {
				return err
			}

			var rendered string
			switch format {
			case "dot":
				rendered = exporter.DOT(graph)
			case "mermaid":
				rendered = exporter.Mermaid(graph)
			case "d2":
				rendered = exporter.D2(graph)
			case "toon":
				rendered = exporter.TOON(graph)
			default:
				return diag.NewConfigError("export: unsupported --format %q (want dot, mermaid, d2, or toon)", format)
			}

			_, err = io.WriteString(cmd.OutOrStdout(), rendered+"\n")
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot, mermaid, d2, or toon")
	return cmd
}

// loadExportGraph accepts either a single pre-built JSON document
// (detected by a ".json" extension) or one or more raw SCSS entry
// points, in which case it runs the full build+analyze pipeline
// in-process before exporting.
func loadExportGraph(g *globals, args []string, stderr io.Writer) (*depgraph.Graph, error) {
	if len(args) == 1 && strings.HasSuffix(args[0], ".json") {
		return loadGraphFromDocument(args[0])
	}
	p, err := runPipeline(g, args, false, stderr)
	if err != nil {
		return nil, err
	}
	return p.graph, nil
}

// documentGraph is the minimal shape read back from an output.Document
// for re-export; only the fields exporters consume are decoded.
type documentGraph struct {
	Nodes map[string]struct {
		Metrics struct {
			FanIn          int `json:"fan_in"`
			FanOut         int `json:"fan_out"`
			Depth          int `json:"depth"`
			TransitiveDeps int `json:"transitive_deps"`
		} `json:"metrics"`
		Flags []string `json:"flags"`
	} `json:"nodes"`
	Edges []struct {
		From          string `json:"from"`
		To            string `json:"to"`
		DirectiveType string `json:"directive_type"`
		Namespace     string `json:"namespace"`
	} `json:"edges"`
}

func loadGraphFromDocument(path string) (*depgraph.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &diag.IoError{Path: path, Err: err}
	}

	var doc documentGraph
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &diag.ParseError{File: path, Msg: err.Error()}
	}

	g := depgraph.New()
	for id := range doc.Nodes {
		g.EnsureNode(depgraph.NodeId(id), id)
	}
	for id, n := range doc.Nodes {
		node, _ := g.Node(depgraph.NodeId(id))
		node.Metrics.FanIn = n.Metrics.FanIn
		node.Metrics.FanOut = n.Metrics.FanOut
		node.Metrics.Depth = n.Metrics.Depth
		node.Metrics.TransitiveDeps = n.Metrics.TransitiveDeps
		for _, f := range n.Flags {
			node.AddFlag(depgraph.NodeFlag(f))
		}
		if node.HasFlag(depgraph.FlagEntryPoint) {
			g.MarkEntryPoint(depgraph.NodeId(id))
		}
	}
	for _, e := range doc.Edges {
		g.AddEdge(depgraph.DependencyEdge{
			From:          depgraph.NodeId(e.From),
			To:            depgraph.NodeId(e.To),
			DirectiveType: depgraph.DirectiveType(e.DirectiveType),
			Namespace:     e.Namespace,
		})
	}
	return g, nil
}
