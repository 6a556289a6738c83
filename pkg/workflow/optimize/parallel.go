package optimize

import (
	"strings"

	"github.com/flowtune/flowtune/pkg/workflow"
)

// Configuration keys written by the parallel-execution pass. The editor's
// execution runtime reads them as scheduling hints.
const (
	ConfigKeyParallelGroup  = "parallelGroup"
	ConfigKeyCanRunParallel = "canRunParallel"
)

// parallelize groups each unvisited node with its unvisited direct
// successors (single hop only) and tags groups of two or more as
// parallel-executable.
//
// This is a heuristic: it does not verify data independence between
// siblings beyond the absence of a direct edge in this grouping. The tags
// are hints for the execution runtime, not a schedule.
func parallelize(g *workflow.Graph) ([]Record, error) {
	visited := make(map[string]bool, g.NodeCount())
	var records []Record
	groupIndex := 0

	for _, n := range g.Nodes() {
		if visited[n.ID] {
			continue
		}
		group := []*workflow.Node{n}
		visited[n.ID] = true
		for _, succ := range g.Successors(n.ID) {
			if visited[succ] {
				continue
			}
			sn, ok := g.Node(succ)
			if !ok {
				continue
			}
			visited[succ] = true
			group = append(group, sn)
		}

		if len(group) < 2 {
			continue
		}
		for _, m := range group {
			m.SetConfig(ConfigKeyParallelGroup, groupIndex)
			m.SetConfig(ConfigKeyCanRunParallel, true)
		}
		ids := nodeIDs(group)
		records = append(records, newRecord(CategoryParallel, ImpactPerformance, ids,
			"Steps %s can execute in parallel (group %d)", strings.Join(ids, ", "), groupIndex))
		groupIndex++
	}
	return records, nil
}
