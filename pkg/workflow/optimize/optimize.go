package optimize

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowtune/flowtune/pkg/observability"
	"github.com/flowtune/flowtune/pkg/workflow"
)

// Category classifies which optimization pass produced a record.
type Category string

// Pass categories, in execution order.
const (
	CategoryRedundancy     Category = "redundancy-removal"
	CategoryExecutionOrder Category = "execution-order"
	CategoryParallel       Category = "parallel-execution"
	CategoryDataFlow       Category = "data-flow-optimization"
	CategoryCompliance     Category = "compliance-enhancement"
)

// Impact classifies what a recorded optimization improves.
type Impact string

// Impact classifications.
const (
	ImpactPerformance     Impact = "performance"
	ImpactCompliance      Impact = "compliance"
	ImpactMaintainability Impact = "maintainability"
)

// Record is an audit entry describing one applied transformation.
type Record struct {
	ID          string   `json:"id" bson:"id"`
	Category    Category `json:"category" bson:"category"`
	Description string   `json:"description" bson:"description"`
	Impact      Impact   `json:"impact" bson:"impact"`
	Nodes       []string `json:"nodes" bson:"nodes"`
}

// Result holds the optimized graph and the ordered list of transformations
// applied to produce it. Records appear in the order the passes ran.
type Result struct {
	Graph   *workflow.Graph
	Records []Record
}

// Engine applies the five-pass optimization sequence. It holds no state
// across invocations; a single Engine is safe to share between goroutines
// processing independent graphs.
type Engine struct{}

// NewEngine creates an optimization engine.
func NewEngine() *Engine { return &Engine{} }

// pass is one step of the fixed optimization sequence.
type pass struct {
	name string
	run  func(g *workflow.Graph) ([]Record, error)
}

// Optimize runs the five passes against a clone of g and returns the
// transformed graph plus the applied-optimization records. The caller's
// graph is never modified. The context is used only for observability hooks;
// the passes themselves are synchronous and cannot block.
func (e *Engine) Optimize(ctx context.Context, g *workflow.Graph) (*Result, error) {
	working := g.Clone()
	passes := []pass{
		{string(CategoryRedundancy), dedupe},
		{string(CategoryExecutionOrder), reorder},
		{string(CategoryParallel), parallelize},
		{string(CategoryDataFlow), mergeChains},
		{string(CategoryCompliance), harden},
	}

	start := time.Now()
	observability.Optimizer().OnOptimizeStart(ctx, working.NodeCount(), working.EdgeCount())

	var records []Record
	for _, p := range passes {
		passStart := time.Now()
		observability.Optimizer().OnPassStart(ctx, p.name, working.NodeCount())

		recs, err := p.run(working)
		if err != nil {
			err = fmt.Errorf("%s pass: %w", p.name, err)
			observability.Optimizer().OnOptimizeComplete(ctx, len(records), time.Since(start), err)
			return nil, err
		}
		records = append(records, recs...)

		observability.Optimizer().OnPassComplete(ctx, p.name, len(recs), time.Since(passStart))
	}

	observability.Optimizer().OnOptimizeComplete(ctx, len(records), time.Since(start), nil)
	return &Result{Graph: working, Records: records}, nil
}

// newRecord creates a record with a fresh identifier.
func newRecord(cat Category, impact Impact, nodes []string, format string, args ...any) Record {
	return Record{
		ID:          uuid.NewString(),
		Category:    cat,
		Description: fmt.Sprintf(format, args...),
		Impact:      impact,
		Nodes:       nodes,
	}
}

// rewireEdges redirects every edge endpoint through remap, then prunes
// self-loops and collapses edges that became identical (source, target,
// type) triples. Used by the redundancy and data-flow passes after they
// merge nodes.
func rewireEdges(g *workflow.Graph, remap map[string]string) {
	seen := make(map[string]struct{}, g.EdgeCount())
	var out []workflow.Edge
	for _, e := range g.Edges() {
		if to, ok := remap[e.Source]; ok {
			e.Source = to
		}
		if to, ok := remap[e.Target]; ok {
			e.Target = to
		}
		if e.Source == e.Target {
			continue
		}
		key := e.Source + "\x00" + e.Target + "\x00" + e.Type
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	g.SetEdges(out)
}

// nodeIDs extracts the ID from each node in a slice.
func nodeIDs(nodes []*workflow.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
