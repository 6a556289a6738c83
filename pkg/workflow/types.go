package workflow

import (
	"maps"
	"slices"
	"strings"
)

// Well-known node type tags. The optimizer treats type strings as opaque
// values except for the "data-" prefix convention (transformation-chain
// merging) and the "data-validate" literal (synthesized compliance
// validators). The full vocabulary is owned by the editor's node-type
// registry; these constants cover the types this repo itself produces or
// tests against.
const (
	TypeScheduleTrigger = "schedule-trigger"
	TypeWebhookTrigger  = "webhook-trigger"
	TypeResearchAgent   = "research-agent"
	TypeContentAgent    = "content-agent"
	TypeDataTransform   = "data-transform"
	TypeDataFilter      = "data-filter"
	TypeDataEnrich      = "data-enrich"
	TypeDataValidate    = "data-validate"
	TypeCondition       = "condition"
	TypeAction          = "action"
)

// dataTypePrefix marks the transformation-node family merged by the
// data-flow optimization pass.
const dataTypePrefix = "data-"

// IsDataType reports whether the type tag belongs to the data-transformation
// family ("data-transform", "data-filter", ...).
func IsDataType(typ string) bool {
	return strings.HasPrefix(typ, dataTypePrefix)
}

// Level classifies how strictly a node's healthcare-compliance metadata must
// be enforced.
type Level string

// Compliance levels, from least to most strict.
const (
	LevelBasic    Level = "basic"
	LevelStandard Level = "standard"
	LevelCritical Level = "critical"
)

// Validation is a single named compliance check and whether it has passed.
type Validation struct {
	Name      string `json:"name" bson:"name"`
	Validated bool   `json:"validated" bson:"validated"`
}

// Compliance holds per-node healthcare-regulatory annotations.
// A nil *Compliance means the node carries no compliance requirements and is
// skipped by the compliance-hardening pass.
type Compliance struct {
	Level         Level        `json:"level" bson:"level"`
	Validations   []Validation `json:"validations,omitempty" bson:"validations,omitempty"`
	Requirements  []string     `json:"requirements,omitempty" bson:"requirements,omitempty"`
	AuditTrail    bool         `json:"auditTrail,omitempty" bson:"audit_trail,omitempty"`
	RetentionDays int          `json:"retentionDays,omitempty" bson:"retention_days,omitempty"`
}

// Clone returns an independent copy of the compliance payload.
func (c *Compliance) Clone() *Compliance {
	if c == nil {
		return nil
	}
	out := *c
	out.Validations = slices.Clone(c.Validations)
	out.Requirements = slices.Clone(c.Requirements)
	return &out
}

// Position is a 2D layout hint for the visual editor. It carries no
// execution semantics; the execution-order pass rewrites X coordinates to
// reflect topological order.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// NodeData is the payload attached to a workflow node.
type NodeData struct {
	Label       string         `json:"label" bson:"label"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty" bson:"config,omitempty"`
	Inputs      []string       `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Outputs     []string       `json:"outputs,omitempty" bson:"outputs,omitempty"`
	Compliance  *Compliance    `json:"compliance,omitempty" bson:"compliance,omitempty"`
	Status      string         `json:"status,omitempty" bson:"status,omitempty"`
}

// Node represents a single step in a workflow graph.
//
// The zero value is not usable - ID and Type must be set before adding to a
// Graph.
type Node struct {
	ID       string
	Type     string
	Position Position
	Data     NodeData
}

// Clone returns an independent copy of the node. The Config map and
// Compliance payload are copied; values stored inside Config are shared with
// the original.
func (n *Node) Clone() Node {
	out := *n
	if n.Data.Config != nil {
		out.Data.Config = maps.Clone(n.Data.Config)
	}
	out.Data.Inputs = slices.Clone(n.Data.Inputs)
	out.Data.Outputs = slices.Clone(n.Data.Outputs)
	out.Data.Compliance = n.Data.Compliance.Clone()
	return out
}

// SetConfig stores a key in the node's configuration map, allocating the map
// if the node had no configuration yet.
func (n *Node) SetConfig(key string, value any) {
	if n.Data.Config == nil {
		n.Data.Config = make(map[string]any)
	}
	n.Data.Config[key] = value
}

// Edge represents a directed connection between two nodes indicating
// execution and data flow. Edges have no identity beyond
// (Source, Target, Type); Animated and Label are rendering metadata.
type Edge struct {
	Source   string
	Target   string
	Type     string
	Animated bool
	Label    string
}

// EdgeTypeDefault is the rendering type assigned to edges synthesized by the
// optimizer (the editor recognizes it as its standard connector).
const EdgeTypeDefault = "smoothstep"
