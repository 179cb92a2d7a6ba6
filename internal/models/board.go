package models

import "time"

// Lane is a stage in the Kanban execution pipeline.
type Lane string

// Pipeline lanes. The nominal flow is proposed → queued → development →
// review → done, with blocked reachable from and returning to any lane.
// Operator overrides may reassign a card to any lane.
const (
	LaneProposed    Lane = "proposed"
	LaneQueued      Lane = "queued"
	LaneDevelopment Lane = "development"
	LaneReview      Lane = "review"
	LaneBlocked     Lane = "blocked"
	LaneDone        Lane = "done"
)

// LaneChange is one entry in a card's or task's lane history, appended
// on every lane change and never rewritten.
type LaneChange struct {
	At   time.Time `json:"at"`
	From Lane      `json:"from,omitempty"`
	To   Lane      `json:"to"`
	Note string    `json:"note,omitempty"`
}

// KanbanCard is one card on a project's execution board, optionally
// linked to a feature node. The link is not a hard foreign key: a
// dangling FeatureID after a node deletion is tolerated and resolved to
// "no feature link" at display time.
type KanbanCard struct {
	ID          string       `json:"id"`
	FeatureID   string       `json:"feature_id,omitempty"`
	Title       string       `json:"title"`
	Lane        Lane         `json:"lane"`
	Priority    Priority     `json:"priority"`
	Owner       string       `json:"owner,omitempty"`
	Description string       `json:"description,omitempty"`
	History     []LaneChange `json:"history"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CardCreate is the caller-supplied shape for creating a card.
type CardCreate struct {
	ID          string   `json:"id,omitempty"`
	FeatureID   string   `json:"feature_id,omitempty"`
	Title       string   `json:"title"`
	Lane        Lane     `json:"lane,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CardPatch is a partial update; nil fields are left unchanged. A Lane
// differing from the card's current lane appends a history entry.
type CardPatch struct {
	FeatureID   *string   `json:"feature_id,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Lane        *Lane     `json:"lane,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Owner       *string   `json:"owner,omitempty"`
	Description *string   `json:"description,omitempty"`
	Note        *string   `json:"note,omitempty"`
}

// ActivityEntry is one append-only audit record of an operator or agent
// action, ordered by At descending for display.
type ActivityEntry struct {
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
	Actor string    `json:"actor"`
	Text  string    `json:"text"`
}

// Task is a flat, non-hierarchical work item on the top-level operator
// board. StatusHistory is appended on every lane change.
type Task struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Lane               Lane         `json:"lane"`
	Priority           Priority     `json:"priority"`
	Owner              string       `json:"owner,omitempty"`
	Problem            string       `json:"problem,omitempty"`
	Scope              string       `json:"scope,omitempty"`
	AcceptanceCriteria []string     `json:"acceptance_criteria"`
	StatusHistory      []LaneChange `json:"status_history"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// TaskCreate is the caller-supplied shape for creating a task.
type TaskCreate struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title"`
	Lane               Lane     `json:"lane,omitempty"`
	Priority           Priority `json:"priority,omitempty"`
	Owner              string   `json:"owner,omitempty"`
	Problem            string   `json:"problem,omitempty"`
	Scope              string   `json:"scope,omitempty"`
	AcceptanceCriteria []string `json:"acceptance_criteria,omitempty"`
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title              *string   `json:"title,omitempty"`
	Lane               *Lane     `json:"lane,omitempty"`
	Priority           *Priority `json:"priority,omitempty"`
	Owner              *string   `json:"owner,omitempty"`
	Problem            *string   `json:"problem,omitempty"`
	Scope              *string   `json:"scope,omitempty"`
	AcceptanceCriteria *[]string `json:"acceptance_criteria,omitempty"`
	Note               *string   `json:"note,omitempty"`
}
