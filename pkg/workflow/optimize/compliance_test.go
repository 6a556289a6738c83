package optimize

import (
	"testing"

	"github.com/flowtune/flowtune/pkg/workflow"
)

func TestHarden_StandardLevelGetsValidator(t *testing.T) {
	n := node("step", workflow.TypeResearchAgent)
	n.Data.Compliance = &workflow.Compliance{Level: workflow.LevelStandard}
	g := buildGraph(t, []workflow.Node{n}, nil)

	records, err := harden(g)
	if err != nil {
		t.Fatalf("harden: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record (validator only, no audit-trail fix), got %d", len(records))
	}
	if _, ok := g.Node("step_validate"); !ok {
		t.Error("validator should be synthesized for standard-level steps")
	}

	orig, _ := g.Node("step")
	if orig.Data.Compliance.AuditTrail {
		t.Error("audit trail must not be forced on below critical level")
	}
}

func TestHarden_NoComplianceMetadataSkipped(t *testing.T) {
	g := buildGraph(t, []workflow.Node{node("plain", workflow.TypeAction)}, nil)

	records, err := harden(g)
	if err != nil {
		t.Fatalf("harden: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("nodes without compliance metadata are skipped, got %d records", len(records))
	}
	if g.NodeCount() != 1 {
		t.Errorf("expected 1 node, got %d", g.NodeCount())
	}
}

func TestHarden_ValidatorIDCollisionSuffixed(t *testing.T) {
	n := node("x", workflow.TypeAction)
	n.Data.Compliance = &workflow.Compliance{Level: workflow.LevelStandard}
	taken := node("x_validate", workflow.TypeAction)
	g := buildGraph(t, []workflow.Node{n, taken}, nil)

	if _, err := harden(g); err != nil {
		t.Fatalf("harden: %v", err)
	}
	if _, ok := g.Node("x_validate__2"); !ok {
		t.Error("expected collision-suffixed validator x_validate__2")
	}
}

func TestIDGen_SequentialSuffixes(t *testing.T) {
	g := buildGraph(t, []workflow.Node{node("a", workflow.TypeAction)}, nil)
	gen := newIDGen(g)

	first := gen.next("a")
	second := gen.next("a")
	third := gen.next("a")

	if first != "a_validate" || second != "a_validate__2" || third != "a_validate__3" {
		t.Errorf("got %q, %q, %q", first, second, third)
	}
}
