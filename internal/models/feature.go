package models

import "time"

// NodeStatus is the execution state of a feature node.
type NodeStatus string

// Feature node states. "planned" and "ready" are accepted as input
// aliases for draft and done; see view.NormalizeNodeStatus.
const (
	NodeDraft      NodeStatus = "draft"
	NodeInProgress NodeStatus = "in_progress"
	NodeBlocked    NodeStatus = "blocked"
	NodeDone       NodeStatus = "done"
)

// Priority is a P0 (highest) to P3 (lowest) priority band.
type Priority string

// Priority bands.
const (
	P0 Priority = "P0"
	P1 Priority = "P1"
	P2 Priority = "P2"
	P3 Priority = "P3"
)

// IntakeStatus is the derived completion state of a feature's micro-ledger.
type IntakeStatus string

// Feature intake states.
const (
	IntakeNotStarted IntakeStatus = "not_started"
	IntakeInProgress IntakeStatus = "in_progress"
	IntakeComplete   IntakeStatus = "complete"
)

// FeatureIntake is a per-node question/answer micro-ledger. Status is
// derived from the answered/total ratio whenever the record is written.
type FeatureIntake struct {
	Questions []Question   `json:"questions"`
	Status    IntakeStatus `json:"status"`
}

// FeatureNode is one entry in the hierarchical feature tree, held in a
// flat collection with a parent reference. An empty ParentID marks a
// root. The parent graph must stay acyclic and parent ids must resolve
// within the same project.
type FeatureNode struct {
	ID                 string         `json:"id"`
	ParentID           string         `json:"parent_id,omitempty"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Status             NodeStatus     `json:"status"`
	Priority           Priority       `json:"priority"`
	Owner              string         `json:"owner,omitempty"`
	Tags               []string       `json:"tags"`
	AcceptanceCriteria []string       `json:"acceptance_criteria"`
	DependsOn          []string       `json:"depends_on"`
	Sources            []Citation     `json:"sources"`
	Intake             *FeatureIntake `json:"intake,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// NodeCreate is the caller-supplied shape for creating a feature node.
type NodeCreate struct {
	ID                 string     `json:"id,omitempty"`
	ParentID           string     `json:"parent_id,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Status             NodeStatus `json:"status,omitempty"`
	Priority           Priority   `json:"priority,omitempty"`
	Owner              string     `json:"owner,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	AcceptanceCriteria []string   `json:"acceptance_criteria,omitempty"`
	DependsOn          []string   `json:"depends_on,omitempty"`
	Sources            []Citation `json:"sources,omitempty"`
}

// NodePatch is a partial update; nil fields are left unchanged.
type NodePatch struct {
	ParentID           *string     `json:"parent_id,omitempty"`
	Title              *string     `json:"title,omitempty"`
	Description        *string     `json:"description,omitempty"`
	Status             *NodeStatus `json:"status,omitempty"`
	Priority           *Priority   `json:"priority,omitempty"`
	Owner              *string     `json:"owner,omitempty"`
	Tags               *[]string   `json:"tags,omitempty"`
	AcceptanceCriteria *[]string   `json:"acceptance_criteria,omitempty"`
	DependsOn          *[]string   `json:"depends_on,omitempty"`
	Sources            *[]Citation `json:"sources,omitempty"`
}
