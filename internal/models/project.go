// Package models defines the domain types for Raido.
package models

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project lifecycle states.
const (
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Link is a labelled external URL attached to a project.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project is the top-level container for one unit of tracked work.
// It exclusively owns its feature tree, Kanban cards, intake ledger,
// and activity trail; none of those are shared across projects.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Summary   string        `json:"summary,omitempty"`
	Status    ProjectStatus `json:"status"`
	Tags      []string      `json:"tags"`
	Owner     string        `json:"owner,omitempty"`
	Links     []Link        `json:"links"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProjectCreate is the caller-supplied shape for creating a project.
// ID is optional; the adapter assigns one when absent.
type ProjectCreate struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Owner   string   `json:"owner,omitempty"`
	Links   []Link   `json:"links,omitempty"`
}

// ProjectPatch is a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Name    *string        `json:"name,omitempty"`
	Summary *string        `json:"summary,omitempty"`
	Status  *ProjectStatus `json:"status,omitempty"`
	Tags    *[]string      `json:"tags,omitempty"`
	Owner   *string        `json:"owner,omitempty"`
	Links   *[]Link        `json:"links,omitempty"`
}

// ProjectExport is the verbatim JSON export aggregate for one project.
type ProjectExport struct {
	Project Project        `json:"project"`
	Tree    []FeatureNode  `json:"tree"`
	Cards   []KanbanCard   `json:"cards"`
	Intake  IntakeSnapshot `json:"intake"`
}
