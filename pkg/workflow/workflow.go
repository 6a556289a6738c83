package workflow

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the Source node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the Target node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrSelfLoopEdge is returned by [Graph.Validate] when an edge connects a
	// node to itself. Self-loops carry no execution semantics and are pruned
	// by the optimizer.
	ErrSelfLoopEdge = errors.New("edge connects node to itself")
)

// Graph is a directed graph of workflow steps. Nodes are indexed by ID and
// iterated in insertion order, which keeps every optimization pass
// deterministic (the first-encountered node in a duplicate group is always
// the same one).
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty workflow graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the node ID
// is empty, or ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the Source node doesn't exist, or
// ErrUnknownTargetNode if the Target node doesn't exist.
//
// AddEdge does not reject self-loops or parallel edges - editor snapshots
// sometimes contain them. Use Validate to detect them, or run the optimizer,
// which prunes both.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
	g.incoming[e.Target] = append(g.incoming[e.Target], e.Source)
	return nil
}

// RemoveNode removes the node and every edge referencing it.
// No error is returned if the node does not exist.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })
	g.SetEdges(slices.DeleteFunc(slices.Clone(g.edges), func(e Edge) bool {
		return e.Source == id || e.Target == id
	}))
}

// RemoveEdge removes all edges from source to target.
// No error is returned if no such edge exists.
func (g *Graph) RemoveEdge(source, target string) {
	g.SetEdges(slices.DeleteFunc(slices.Clone(g.edges), func(e Edge) bool {
		return e.Source == source && e.Target == target
	}))
}

// SetEdges replaces the edge set and rebuilds the adjacency indices.
// Endpoints are not validated - callers rewiring edges in bulk (the
// optimization passes) are expected to keep endpoints consistent with the
// node set. Use Validate to verify afterwards.
func (g *Graph) SetEdges(edges []Edge) {
	g.edges = edges
	g.outgoing = make(map[string][]string, len(g.nodes))
	g.incoming = make(map[string][]string, len(g.nodes))
	for _, e := range edges {
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
		g.incoming[e.Target] = append(g.incoming[e.Target], e.Source)
	}
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph, so
// modifications affect the graph (except ID changes).
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs, so
// modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in the graph.
// The order matches insertion order. Modifications to the returned slice or
// its edge structs do not affect the graph.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs of nodes this node has edges to.
// Returns nil if the node has no successors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs of nodes that have edges to this node.
// Returns nil if the node has no predecessors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes with no incoming edges (triggers/entry points),
// in insertion order. Returns nil for an empty graph.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges (terminal actions),
// in insertion order. Returns nil for an empty graph.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.nodes[id])
		}
	}
	return sinks
}

// Clone returns an independent copy of the graph. Node structs and their
// Config maps are copied one level deep; values nested inside Config (and
// the Compliance payload) are copied as well, so mutating the clone never
// leaks into the original's node data. Callers must still avoid mutating
// shared values stored inside Config entries concurrently.
func (g *Graph) Clone() *Graph {
	out := New()
	for _, id := range g.order {
		out.mustAddNode(g.nodes[id].Clone())
	}
	out.SetEdges(slices.Clone(g.edges))
	return out
}

func (g *Graph) mustAddNode(n Node) {
	if err := g.AddNode(n); err != nil {
		panic(err) // clone of a valid graph cannot collide
	}
}

// Validate checks structural integrity and returns the first violation found:
//
//   - ErrInvalidEdgeEndpoint if an edge references a missing node
//   - ErrSelfLoopEdge if an edge connects a node to itself
//
// Cycles are not a validation error - the optimizer tolerates cyclic input
// (the execution-order pass leaves cyclic graphs untouched). Use Acyclic to
// check for cycles explicitly.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.Source]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := g.nodes[e.Target]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if e.Source == e.Target {
			return ErrSelfLoopEdge
		}
	}
	return nil
}

// Acyclic reports whether the graph contains no directed cycles.
// Detection runs in O(N+E) time using depth-first search with
// white/gray/black coloring.
func (g *Graph) Acyclic() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return false
			}
		}
	}
	return true
}
