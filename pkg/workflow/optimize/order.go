package optimize

import (
	"github.com/flowtune/flowtune/pkg/workflow"
)

// spacingX is the horizontal distance between consecutive steps after the
// execution-order pass rewrites layout positions.
const spacingX = 200

// reorder computes a topological ordering with Kahn's algorithm and rewrites
// each node's layout position to x = index * spacingX, y = 0 in sorted
// order.
//
// If the graph contains a cycle the sorted list comes up short of the node
// count; in that case positions are left untouched and no record is emitted.
// A record is also skipped when every node already sits at its topological
// position, so repeated optimization reports no further changes.
func reorder(g *workflow.Graph) ([]Record, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	sorted := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		sorted = append(sorted, curr)

		for _, child := range g.Successors(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(sorted) != g.NodeCount() {
		return nil, nil // cycle: cannot fully order, leave positions alone
	}

	changed := false
	for i, id := range sorted {
		want := workflow.Position{X: float64(i) * spacingX, Y: 0}
		n, _ := g.Node(id)
		if n.Position != want {
			n.Position = want
			changed = true
		}
	}
	if !changed {
		return nil, nil
	}

	return []Record{newRecord(CategoryExecutionOrder, ImpactPerformance, sorted,
		"Reordered %d steps into topological execution order", len(sorted))}, nil
}
