// Package depgraph holds the in-memory dependency graph: nodes, edges,
// and the ordered store the builder and analyzer operate on.
package depgraph

// NodeId is a file's path relative to the configured project root,
// forward-slash separated, with no leading "./". Two imports that
// reach the same file through different specifiers share one NodeId.
type NodeId string

// DirectiveType identifies which SCSS directive produced an edge.
type DirectiveType string

const (
	DirectiveUse     DirectiveType = "use"
	DirectiveForward DirectiveType = "forward"
	DirectiveImport  DirectiveType = "import"
)

// NodeFlag classifies a FileNode based on analysis results. The fixed
// enum order below is also the order the emitter sorts flags into.
type NodeFlag string

const (
	FlagEntryPoint NodeFlag = "entry_point"
	FlagLeaf       NodeFlag = "leaf"
	FlagOrphan     NodeFlag = "orphan"
	FlagInCycle    NodeFlag = "in_cycle"
	FlagHighFanIn  NodeFlag = "high_fan_in"
	FlagHighFanOut NodeFlag = "high_fan_out"
)

// FlagOrder is the fixed serialization order for a node's flag set.
var FlagOrder = []NodeFlag{
	FlagEntryPoint, FlagLeaf, FlagOrphan, FlagInCycle, FlagHighFanIn, FlagHighFanOut,
}

// UnreachableDepth is the sentinel depth for a node not reachable from
// any entry point. Serialized as 2^53-1 so JSON consumers can detect it
// without losing precision in a float64 decoder.
const UnreachableDepth = (1 << 53) - 1

// Location is a 1-indexed line/column source position. Column counts
// Unicode scalar values on the line where the directive keyword's '@'
// appears.
type Location struct {
	Line   int
	Column int
}

// Visibility is a @forward show/hide clause.
type Visibility struct {
	Hide  bool     // true for "hide", false for "show"
	Names []string // member names listed
}

// ForwardDetail carries @forward-specific metadata not present on
// @use/@import: an optional member prefix and an optional show/hide
// visibility clause.
type ForwardDetail struct {
	Prefix     string
	Visibility *Visibility
}

// NodeMetrics are the per-node figures computed by the analyzer.
type NodeMetrics struct {
	FanIn          int
	FanOut         int
	Depth          int
	TransitiveDeps int
}

// FileNode is one SCSS file in the dependency graph.
type FileNode struct {
	ID           NodeId
	AbsolutePath string
	Metrics      NodeMetrics
	Flags        map[NodeFlag]struct{}
}

// NewFileNode creates a node with zero metrics and no flags.
func NewFileNode(id NodeId, absolutePath string) *FileNode {
	return &FileNode{
		ID:           id,
		AbsolutePath: absolutePath,
		Flags:        make(map[NodeFlag]struct{}),
	}
}

// AddFlag is idempotent: adding an already-present flag is a no-op.
func (n *FileNode) AddFlag(flag NodeFlag) {
	n.Flags[flag] = struct{}{}
}

// HasFlag reports whether flag is set on n.
func (n *FileNode) HasFlag(flag NodeFlag) bool {
	_, ok := n.Flags[flag]
	return ok
}

// SortedFlags returns n's flags in the fixed enum order.
func (n *FileNode) SortedFlags() []NodeFlag {
	var out []NodeFlag
	for _, f := range FlagOrder {
		if n.HasFlag(f) {
			out = append(out, f)
		}
	}
	return out
}

// DependencyEdge is one directive-derived dependency between two nodes.
// Parallel edges between the same pair are permitted: a file that both
// @uses and @forwards the same module produces two distinct edges.
type DependencyEdge struct {
	From          NodeId
	To            NodeId
	DirectiveType DirectiveType
	Location      Location
	Namespace     string // only meaningful for @use; "" when absent or not applicable
	Configured    bool
	ConfiguredVars []string
	Forward       *ForwardDetail // only set for @forward edges carrying a prefix or visibility clause
}
