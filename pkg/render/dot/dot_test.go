package dot

import (
	"strings"
	"testing"

	"github.com/flowtune/flowtune/pkg/workflow"
)

func testGraph(t *testing.T) *workflow.Graph {
	t.Helper()
	g := workflow.New()
	nodes := []workflow.Node{
		{ID: "fetch", Type: workflow.TypeWebhookTrigger, Data: workflow.NodeData{Label: "Fetch"}},
		{ID: "check", Type: workflow.TypeDataValidate, Data: workflow.NodeData{
			Label: "Compliance Validation",
			Compliance: &workflow.Compliance{
				Level:      workflow.LevelCritical,
				AuditTrail: true,
			},
		}},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	err := g.AddEdge(workflow.Edge{
		Source: "fetch", Target: "check", Type: workflow.EdgeTypeDefault, Animated: true,
	})
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func TestToDOT_Structure(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("missing digraph header: %q", dot[:20])
	}
	for _, want := range []string{`"fetch"`, `"check"`, `"fetch" -> "check"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_ComplianceStyling(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	if !strings.Contains(dot, "fillcolor=lightpink") {
		t.Error("critical node should be filled lightpink")
	}
	if !strings.Contains(dot, `style="rounded,filled,dashed"`) {
		t.Error("validation node should have dashed outline")
	}
}

func TestToDOT_AnimatedEdgeDashed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	if !strings.Contains(dot, `"fetch" -> "check" [style=dashed]`) {
		t.Errorf("animated edge should render dashed:\n%s", dot)
	}
}

func TestToDOT_DetailedLabels(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})

	if !strings.Contains(dot, "type: webhook-trigger") {
		t.Error("detailed labels should include node type")
	}
	if !strings.Contains(dot, "compliance: critical") {
		t.Error("detailed labels should include compliance level")
	}
}

func TestToDOT_LabelFallsBackToID(t *testing.T) {
	g := workflow.New()
	if err := g.AddNode(workflow.Node{ID: "bare", Type: workflow.TypeAction}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `label="bare"`) {
		t.Errorf("unlabeled node should use its ID:\n%s", dot)
	}
}

func TestToDOT_ParallelGroupClustered(t *testing.T) {
	g := workflow.New()
	nodes := []workflow.Node{
		{ID: "split", Type: workflow.TypeAction, Data: workflow.NodeData{
			Config: map[string]any{"parallelGroup": 0, "canRunParallel": true},
		}},
		{ID: "left", Type: workflow.TypeAction, Data: workflow.NodeData{
			Config: map[string]any{"parallelGroup": 0, "canRunParallel": true},
		}},
		{ID: "solo", Type: workflow.TypeAction},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "subgraph cluster_0") {
		t.Errorf("grouped nodes should render in a cluster:\n%s", dot)
	}
	if !strings.Contains(dot, `label="parallel group 0"`) {
		t.Errorf("cluster should be labeled:\n%s", dot)
	}
	if idx := strings.Index(dot, "subgraph"); idx >= 0 {
		if strings.Contains(dot[idx:], `"solo"`) {
			t.Error("ungrouped node should stay outside the cluster")
		}
	}
}

func TestToDOT_ParallelGroupFromJSON(t *testing.T) {
	// After a cache round trip the group index arrives as a float64.
	g := workflow.New()
	err := g.AddNode(workflow.Node{ID: "a", Type: workflow.TypeAction, Data: workflow.NodeData{
		Config: map[string]any{"parallelGroup": float64(1)},
	}})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	if dot := ToDOT(g, Options{}); !strings.Contains(dot, "subgraph cluster_1") {
		t.Errorf("float64 group tag should still cluster:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)

	if !strings.Contains(string(out), `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(string(out), `width="100" height="50"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}
}

func TestNormalizeViewBox_NoViewBox(t *testing.T) {
	in := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("svg without viewBox should pass through unchanged")
	}
}
