package depgraph

// Graph is a directed multigraph of SCSS files with stable, insertion-
// preserving node ordering. Nodes and edges are created by the builder
// during a crawl and never mutated structurally afterward; the analyzer
// assigns metrics and flags in a single pass over the frozen topology.
type Graph struct {
	order       []NodeId
	nodes       map[NodeId]*FileNode
	Edges       []DependencyEdge
	EntryPoints map[NodeId]struct{}
	Cycles      [][]NodeId

	out map[NodeId][]int // node -> indices into Edges, in insertion order
	in  map[NodeId][]int
}

// New returns an empty graph ready for building.
func New() *Graph {
	return &Graph{
		nodes:       make(map[NodeId]*FileNode),
		EntryPoints: make(map[NodeId]struct{}),
		out:         make(map[NodeId][]int),
		in:          make(map[NodeId][]int),
	}
}

// EnsureNode returns the existing node for id, or creates one with
// absolutePath and inserts it at the end of iteration order.
func (g *Graph) EnsureNode(id NodeId, absolutePath string) *FileNode {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := NewFileNode(id, absolutePath)
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// Node looks up a node by id.
func (g *Graph) Node(id NodeId) (*FileNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*FileNode {
	out := make([]*FileNode, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// NodeOrder returns node ids in insertion order.
func (g *Graph) NodeOrder() []NodeId {
	out := make([]NodeId, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.order) }

// AddEdge appends e to the graph and indexes it for adjacency queries.
// Both endpoints must already exist via EnsureNode.
func (g *Graph) AddEdge(e DependencyEdge) {
	idx := len(g.Edges)
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], idx)
	g.in[e.To] = append(g.in[e.To], idx)
}

// MarkEntryPoint records id as an entry point and flags its node.
func (g *Graph) MarkEntryPoint(id NodeId) {
	g.EntryPoints[id] = struct{}{}
	if n, ok := g.nodes[id]; ok {
		n.AddFlag(FlagEntryPoint)
	}
}

// OutEdges returns, in edge-insertion order, the indices of edges
// leaving id.
func (g *Graph) OutEdges(id NodeId) []int {
	return g.out[id]
}

// InEdges returns, in edge-insertion order, the indices of edges
// entering id.
func (g *Graph) InEdges(id NodeId) []int {
	return g.in[id]
}

// OutNeighbors returns the distinct targets reachable by one edge from
// id, in first-seen order.
func (g *Graph) OutNeighbors(id NodeId) []NodeId {
	seen := make(map[NodeId]struct{})
	var out []NodeId
	for _, idx := range g.out[id] {
		to := g.Edges[idx].To
		if _, ok := seen[to]; ok {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, to)
	}
	return out
}

// OutDegree is the number of edges leaving id (parallel edges counted
// individually).
func (g *Graph) OutDegree(id NodeId) int { return len(g.out[id]) }

// InDegree is the number of edges entering id (parallel edges counted
// individually).
func (g *Graph) InDegree(id NodeId) int { return len(g.in[id]) }

// SetCycles records the analyzer's detected cycles.
func (g *Graph) SetCycles(cycles [][]NodeId) { g.Cycles = cycles }
