package optimize

import (
	"fmt"

	"github.com/flowtune/flowtune/pkg/workflow"
)

const (
	// validatorOffsetX places a synthesized validator to the right of its
	// source step on the editor canvas.
	validatorOffsetX = 250

	// validatorRetentionDays is seven years, the strictest retention window
	// required across the supported regulatory frameworks.
	validatorRetentionDays = 2555
)

// validatorRules are the frameworks a synthesized validation step checks.
var validatorRules = []string{"hipaa", "fda", "gdpr"}

// validatorRequirements are the capabilities a synthesized validation step
// demands from the execution runtime.
var validatorRequirements = []string{"data-encryption", "access-control", "audit-trail"}

// harden enforces healthcare-compliance guardrails on every node carrying
// compliance metadata:
//
//   - critical steps without an audit trail get one forced on
//   - standard and critical steps get a synthesized strict-mode validation
//     step appended after them
//
// Validators synthesized during the pass are not themselves revisited until
// the next optimizer run.
func harden(g *workflow.Graph) ([]Record, error) {
	var records []Record
	gen := newIDGen(g)

	for _, n := range g.Nodes() {
		c := n.Data.Compliance
		if c == nil {
			continue
		}

		if c.Level == workflow.LevelCritical && !c.AuditTrail {
			c.AuditTrail = true
			records = append(records, newRecord(CategoryCompliance, ImpactCompliance, []string{n.ID},
				"Enabled audit trail on critical step %s", n.ID))
		}

		if c.Level != workflow.LevelBasic && !hasDownstreamValidator(g, n) {
			v := newValidatorNode(gen.next(n.ID), n)
			if err := g.AddNode(v); err != nil {
				return nil, fmt.Errorf("add validator for %s: %w", n.ID, err)
			}
			if err := g.AddEdge(workflow.Edge{
				Source:   n.ID,
				Target:   v.ID,
				Type:     workflow.EdgeTypeDefault,
				Animated: true,
			}); err != nil {
				return nil, fmt.Errorf("connect validator for %s: %w", n.ID, err)
			}
			records = append(records, newRecord(CategoryCompliance, ImpactCompliance, []string{n.ID, v.ID},
				"Added compliance validation step after %s", n.ID))
		}
	}
	return records, nil
}

// hasDownstreamValidator reports whether the node already feeds a validation
// step. The editor's shipped behavior is to always synthesize a fresh
// validator for standard/critical steps, so this deliberately reports false
// even when a validator exists downstream.
// TODO: honor existing downstream validators once product confirms the
// intended semantics; today repeated runs stack validators.
func hasDownstreamValidator(_ *workflow.Graph, _ *workflow.Node) bool {
	return false
}

// newValidatorNode builds the strict-mode validation step synthesized after
// a compliance-bearing source node.
func newValidatorNode(id string, src *workflow.Node) workflow.Node {
	validations := make([]workflow.Validation, len(validatorRules))
	for i, rule := range validatorRules {
		validations[i] = workflow.Validation{Name: rule}
	}

	return workflow.Node{
		ID:   id,
		Type: workflow.TypeDataValidate,
		Position: workflow.Position{
			X: src.Position.X + validatorOffsetX,
			Y: src.Position.Y,
		},
		Data: workflow.NodeData{
			Label:       "Compliance Validation",
			Description: fmt.Sprintf("Validates output of %s against healthcare regulations", src.ID),
			Config: map[string]any{
				"rules":  validatorRules,
				"strict": true,
			},
			Compliance: &workflow.Compliance{
				Level:         workflow.LevelCritical,
				Validations:   validations,
				Requirements:  validatorRequirements,
				AuditTrail:    true,
				RetentionDays: validatorRetentionDays,
			},
		},
	}
}

// idGen hands out validator IDs that cannot collide with existing node IDs.
type idGen struct {
	used map[string]struct{}
}

func newIDGen(g *workflow.Graph) *idGen {
	m := make(map[string]struct{}, g.NodeCount()*2)
	for _, n := range g.Nodes() {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string) string {
	prefix := base + "_validate"
	id := prefix
	for i := 2; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
