package optimize

import (
	"github.com/flowtune/flowtune/pkg/workflow"
)

// dedupe merges nodes that share a type tag and a structurally equal
// configuration. Within each duplicate group the first-encountered node (in
// insertion order) is the primary; the rest are removed and every edge
// referencing them is rewired through the primary. Edges that become
// self-loops after rewiring are pruned, as are pre-existing self-loops.
//
// Running dedupe on an already-deduplicated graph is a no-op and emits no
// records.
func dedupe(g *workflow.Graph) ([]Record, error) {
	groups := make(map[string][]*workflow.Node)
	var keyOrder []string

	for _, n := range g.Nodes() {
		key, err := workflow.NodeKey(n)
		if err != nil {
			return nil, err
		}
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], n)
	}

	remap := make(map[string]string)
	var records []Record
	for _, key := range keyOrder {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		primary := members[0]
		removed := make([]string, 0, len(members)-1)
		for _, dup := range members[1:] {
			remap[dup.ID] = primary.ID
			removed = append(removed, dup.ID)
		}
		records = append(records, newRecord(CategoryRedundancy, ImpactMaintainability, removed,
			"Removed %d duplicate %q step(s); flow rewired through %s", len(removed), primary.Type, primary.ID))
	}

	// Rewiring also prunes self-loops that were present in the input, so it
	// runs even when no duplicates were found.
	rewireEdges(g, remap)
	for id := range remap {
		g.RemoveNode(id)
	}
	return records, nil
}
