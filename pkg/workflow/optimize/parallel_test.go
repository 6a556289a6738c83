package optimize

import (
	"testing"

	"github.com/flowtune/flowtune/pkg/workflow"
)

func TestParallelize_FanOutGrouped(t *testing.T) {
	g := buildGraph(t,
		[]workflow.Node{
			node("t", workflow.TypeScheduleTrigger),
			node("a", workflow.TypeResearchAgent),
			node("b", workflow.TypeContentAgent),
		},
		[]workflow.Edge{edge("t", "a"), edge("t", "b")},
	)

	records, err := parallelize(g)
	if err != nil {
		t.Fatalf("parallelize: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 parallel record, got %d", len(records))
	}
	if len(records[0].Nodes) != 3 {
		t.Errorf("group should contain trigger plus both successors, got %v", records[0].Nodes)
	}

	for _, id := range []string{"t", "a", "b"} {
		n, _ := g.Node(id)
		if got := n.Data.Config[ConfigKeyParallelGroup]; got != 0 {
			t.Errorf("node %s parallelGroup = %v, want 0", id, got)
		}
		if got, _ := n.Data.Config[ConfigKeyCanRunParallel].(bool); !got {
			t.Errorf("node %s should be tagged canRunParallel", id)
		}
	}
}

func TestParallelize_IsolatedNodesUntagged(t *testing.T) {
	g := buildGraph(t,
		[]workflow.Node{node("a", workflow.TypeAction), node("b", workflow.TypeAction)},
		nil,
	)

	records, err := parallelize(g)
	if err != nil {
		t.Fatalf("parallelize: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("isolated nodes form single-member groups, expected no records, got %d", len(records))
	}
	for _, n := range g.Nodes() {
		if _, tagged := n.Data.Config[ConfigKeyCanRunParallel]; tagged {
			t.Errorf("node %s should not carry parallel tags", n.ID)
		}
	}
}

func TestParallelize_GroupIndicesIncrement(t *testing.T) {
	g := buildGraph(t,
		[]workflow.Node{
			node("t1", workflow.TypeScheduleTrigger),
			node("a1", workflow.TypeAction),
			node("t2", workflow.TypeWebhookTrigger),
			node("a2", workflow.TypeCondition),
		},
		[]workflow.Edge{edge("t1", "a1"), edge("t2", "a2")},
	)

	records, err := parallelize(g)
	if err != nil {
		t.Fatalf("parallelize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 parallel groups, got %d", len(records))
	}

	n1, _ := g.Node("t1")
	n2, _ := g.Node("t2")
	if n1.Data.Config[ConfigKeyParallelGroup] != 0 || n2.Data.Config[ConfigKeyParallelGroup] != 1 {
		t.Errorf("group indices = %v, %v; want 0, 1",
			n1.Data.Config[ConfigKeyParallelGroup], n2.Data.Config[ConfigKeyParallelGroup])
	}
}

func TestParallelize_VisitedSuccessorNotRegrouped(t *testing.T) {
	// b is claimed by a's group, so c's group is only {c} and gets no tag.
	g := buildGraph(t,
		[]workflow.Node{
			node("a", workflow.TypeScheduleTrigger),
			node("b", workflow.TypeAction),
			node("c", workflow.TypeCondition),
		},
		[]workflow.Edge{edge("a", "b"), edge("c", "b")},
	)

	records, err := parallelize(g)
	if err != nil {
		t.Fatalf("parallelize: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 parallel record, got %d", len(records))
	}
	c, _ := g.Node("c")
	if _, tagged := c.Data.Config[ConfigKeyCanRunParallel]; tagged {
		t.Error("node c should remain untagged after its successor was claimed")
	}
}
