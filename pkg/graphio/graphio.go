package graphio

import (
	"encoding/json"

	"github.com/flowtune/flowtune/pkg/errors"
	"github.com/flowtune/flowtune/pkg/workflow"
)

// =============================================================================
// Graph - Workflow Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for workflow graphs.
// Used for editor exchange, storage, caching, and API payloads.
//
// The format is human-readable and designed for round-trip fidelity:
// import → optimize → export → re-import produces identical results.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the wire form of a single workflow step.
type Node struct {
	ID       string            `json:"id" bson:"id"`
	Type     string            `json:"type" bson:"type"`
	Position workflow.Position `json:"position" bson:"position"`
	Data     workflow.NodeData `json:"data" bson:"data"`
}

// Edge is the wire form of a directed connection between two steps.
type Edge struct {
	Source   string `json:"source" bson:"source"`
	Target   string `json:"target" bson:"target"`
	Type     string `json:"type,omitempty" bson:"type,omitempty"`
	Animated bool   `json:"animated,omitempty" bson:"animated,omitempty"`
	Label    string `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Wire ↔ Workflow Conversion
// =============================================================================

// ToWorkflow converts a wire graph to an in-memory workflow graph.
// Returns an error on duplicate or invalid node IDs and on edges that
// reference unknown nodes.
func ToWorkflow(g Graph) (*workflow.Graph, error) {
	w := workflow.New()
	for _, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		err := w.AddNode(workflow.Node{
			ID:       n.ID,
			Type:     n.Type,
			Position: n.Position,
			Data:     n.Data,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNode, err, "node %s", n.ID)
		}
	}
	for _, e := range g.Edges {
		err := w.AddEdge(workflow.Edge{
			Source:   e.Source,
			Target:   e.Target,
			Type:     e.Type,
			Animated: e.Animated,
			Label:    e.Label,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEdge, err, "edge %s->%s", e.Source, e.Target)
		}
	}
	return w, nil
}

// FromWorkflow converts an in-memory workflow graph to its wire form.
// Nodes appear in the graph's insertion order, so the output is
// deterministic for a given graph.
func FromWorkflow(w *workflow.Graph) Graph {
	nodes := w.Nodes()
	edges := w.Edges()

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:       n.ID,
			Type:     n.Type,
			Position: n.Position,
			Data:     n.Data,
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{
			Source:   e.Source,
			Target:   e.Target,
			Type:     e.Type,
			Animated: e.Animated,
			Label:    e.Label,
		}
	}
	return out
}

// UnmarshalGraph deserializes JSON bytes to a wire Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
