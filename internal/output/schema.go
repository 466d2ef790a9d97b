// Package output serializes a depgraph.Graph into sass-dep's
// deterministic JSON document (schema v1.0.0).
package output

import "github.com/sassdep/sass-dep/internal/analyzer"

// SchemaVersion is the output document's schema version.
const SchemaVersion = "1.0.0"

// SchemaURL identifies the JSON schema this document conforms to.
const SchemaURL = "https://sassdep.dev/schema/v1.0.0/graph.json"

// Document is the top-level output document.
type Document struct {
	Schema   string   `json:"$schema"`
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Nodes    map[string]Node `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Cycles   [][]string `json:"cycles"`
}

// Metadata describes how and where the document was produced.
type Metadata struct {
	GeneratedAt    string `json:"generated_at"` // RFC 3339 UTC
	Root           string `json:"root"`         // absolute path
	SassDepVersion string `json:"sass_dep_version"`
	Stats          Stats  `json:"stats"`
}

// Stats mirrors analyzer.Stats for the document.
type Stats struct {
	NodeCount  int `json:"node_count"`
	EdgeCount  int `json:"edge_count"`
	CycleCount int `json:"cycle_count"`
	MaxDepth   int `json:"max_depth"`
	MaxFanIn   int `json:"max_fan_in"`
	MaxFanOut  int `json:"max_fan_out"`
}

func statsFrom(s analyzer.Stats) Stats {
	return Stats{
		NodeCount:  s.NodeCount,
		EdgeCount:  s.EdgeCount,
		CycleCount: s.CycleCount,
		MaxDepth:   s.MaxDepth,
		MaxFanIn:   s.MaxFanIn,
		MaxFanOut:  s.MaxFanOut,
	}
}

// Node is one FileNode's serialized form.
type Node struct {
	AbsolutePath string   `json:"absolute_path"`
	Metrics      Metrics  `json:"metrics"`
	Flags        []string `json:"flags"`
}

// Metrics mirrors depgraph.NodeMetrics.
type Metrics struct {
	FanIn          int `json:"fan_in"`
	FanOut         int `json:"fan_out"`
	Depth          int `json:"depth"`
	TransitiveDeps int `json:"transitive_deps"`
}

// Edge is one DependencyEdge's serialized form.
type Edge struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	DirectiveType  string   `json:"directive_type"`
	Location       Location `json:"location"`
	Namespace      string   `json:"namespace,omitempty"`
	Configured     bool     `json:"configured"`
	ConfiguredVars []string `json:"configured_vars,omitempty"`
	Forward        *ForwardDetail `json:"forward,omitempty"`
}

// Location is a 1-indexed source position.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ForwardDetail mirrors depgraph.ForwardDetail for @forward edges.
type ForwardDetail struct {
	Prefix     string      `json:"prefix,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
}

// Visibility mirrors depgraph.Visibility.
type Visibility struct {
	Hide  bool     `json:"hide"`
	Names []string `json:"names,omitempty"`
}
