package optimize

import (
	"fmt"
	"strings"

	"github.com/flowtune/flowtune/pkg/workflow"
)

// mergeChains collapses chains of consecutive data-transformation steps.
// Starting from each unvisited "data-" node it follows outgoing edges while
// the next node is also an unvisited data-type node. Chains longer than two
// nodes are merged into the first node: configurations are combined in chain
// order (later keys overwrite earlier ones), the label and description are
// rewritten to reflect the merge, and the remaining chain members are
// removed with their edges rewired through the head.
func mergeChains(g *workflow.Graph) ([]Record, error) {
	visited := make(map[string]bool, g.NodeCount())
	remap := make(map[string]string)
	var toRemove []string
	var records []Record

	for _, n := range g.Nodes() {
		if visited[n.ID] || !workflow.IsDataType(n.Type) {
			continue
		}
		chain := collectChain(g, n, visited)
		if len(chain) <= 2 {
			continue
		}

		head := chain[0]
		for _, m := range chain[1:] {
			for k, v := range m.Data.Config {
				head.SetConfig(k, v)
			}
			remap[m.ID] = head.ID
			toRemove = append(toRemove, m.ID)
		}

		ids := nodeIDs(chain)
		head.Data.Label = fmt.Sprintf("Merged transform (%d steps)", len(chain))
		head.Data.Description = fmt.Sprintf("Combined chained data steps: %s", strings.Join(ids, " > "))
		records = append(records, newRecord(CategoryDataFlow, ImpactPerformance, ids,
			"Merged %d chained data-transformation steps into %s", len(chain), head.ID))
	}

	if len(remap) > 0 {
		rewireEdges(g, remap)
		for _, id := range toRemove {
			g.RemoveNode(id)
		}
	}
	return records, nil
}

// collectChain follows outgoing edges from start while the next node is an
// unvisited data-type node, marking everything it touches as visited. When a
// node has several outgoing edges, the first data-type successor in edge
// order is followed.
func collectChain(g *workflow.Graph, start *workflow.Node, visited map[string]bool) []*workflow.Node {
	chain := []*workflow.Node{start}
	visited[start.ID] = true

	curr := start
	for {
		var next *workflow.Node
		for _, succ := range g.Successors(curr.ID) {
			if visited[succ] {
				continue
			}
			sn, ok := g.Node(succ)
			if !ok || !workflow.IsDataType(sn.Type) {
				continue
			}
			next = sn
			break
		}
		if next == nil {
			return chain
		}
		visited[next.ID] = true
		chain = append(chain, next)
		curr = next
	}
}
