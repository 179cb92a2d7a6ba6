// Package view maps canonical storage shapes onto the denormalized
// aggregate display logic consumes, and maps display vocabulary back to
// canonical values. Everything here is side-effect-free; mutation flows
// through the service layer only.
package view

import (
	"strings"

	"github.com/starford/raido/internal/intake"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/tree"
)

// Config controls display-level choices. ReviewBucket names the column
// that receives review-lane cards; when left empty, review keeps its
// own column.
type Config struct {
	ReviewBucket string
}

// Display column keys.
const (
	ColTodo       = "todo"
	ColQueued     = "queued"
	ColInProgress = "in_progress"
	ColReview     = "review"
	ColBlocked    = "blocked"
	ColDone       = "done"
)

// DisplayColumn maps a canonical lane to its display column.
func DisplayColumn(l models.Lane, cfg Config) string {
	switch l {
	case models.LaneProposed:
		return ColTodo
	case models.LaneQueued:
		return ColQueued
	case models.LaneDevelopment:
		return ColInProgress
	case models.LaneReview:
		if cfg.ReviewBucket != "" {
			return cfg.ReviewBucket
		}
		return ColReview
	case models.LaneBlocked:
		return ColBlocked
	case models.LaneDone:
		return ColDone
	default:
		return string(l)
	}
}

// ColumnLane is the reverse mapping from display vocabulary to a
// canonical lane. Unknown columns map to proposed.
func ColumnLane(col string) models.Lane {
	switch col {
	case ColTodo, "proposed":
		return models.LaneProposed
	case ColQueued:
		return models.LaneQueued
	case ColInProgress, "development":
		return models.LaneDevelopment
	case ColReview:
		return models.LaneReview
	case ColBlocked:
		return models.LaneBlocked
	case ColDone:
		return models.LaneDone
	default:
		return models.LaneProposed
	}
}

// DisplayPriority lowers the canonical P0..P3 casing for display.
func DisplayPriority(p models.Priority) string {
	return strings.ToLower(string(p))
}

// ParsePriority restores canonical casing from display input. Anything
// unrecognized falls back to P2.
func ParsePriority(s string) models.Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P0":
		return models.P0
	case "P1":
		return models.P1
	case "P2":
		return models.P2
	case "P3":
		return models.P3
	default:
		return models.P2
	}
}

// NormalizeNodeStatus accepts display aliases for node status:
// "planned" for draft and "ready" for done.
func NormalizeNodeStatus(s models.NodeStatus) models.NodeStatus {
	switch s {
	case "planned":
		return models.NodeDraft
	case "ready":
		return models.NodeDone
	default:
		return s
	}
}

// CardView is one card prepared for display, with its feature link
// resolved. A dangling feature id resolves to FeatureLinked=false, not
// an error.
type CardView struct {
	Card          models.KanbanCard `json:"card"`
	Column        string            `json:"column"`
	PriorityLabel string            `json:"priority_label"`
	FeatureTitle  string            `json:"feature_title,omitempty"`
	FeatureLinked bool              `json:"feature_linked"`
}

// Column is one display column with its cards in insertion order.
type Column struct {
	Key   string     `json:"key"`
	Cards []CardView `json:"cards"`
}

// IntakeSummary is the condensed intake state shown on the dashboard.
type IntakeSummary struct {
	IdeaText          string              `json:"idea_text,omitempty"`
	IdeaVersions      int                 `json:"idea_versions"`
	AnalysisSummary   string              `json:"analysis_summary,omitempty"`
	QuestionsTotal    int                 `json:"questions_total"`
	QuestionsAnswered int                 `json:"questions_answered"`
	Progress          string              `json:"progress"`
	Status            models.IntakeStatus `json:"status"`
}

// ProjectView is the display-ready aggregate for one project.
type ProjectView struct {
	Project  models.Project         `json:"project"`
	Tree     []*tree.Node           `json:"tree"`
	Columns  []Column               `json:"columns"`
	Intake   IntakeSummary          `json:"intake"`
	Activity []models.ActivityEntry `json:"activity"`
}

// columnOrder returns the display columns in board order for a config.
func columnOrder(cfg Config) []string {
	cols := []string{ColTodo, ColQueued, ColInProgress}
	if cfg.ReviewBucket == "" {
		cols = append(cols, ColReview)
	}
	return append(cols, ColBlocked, ColDone)
}

// Build assembles the display aggregate from canonical shapes. Pure:
// calling it twice on the same input yields structurally identical
// output.
func Build(p models.Project, flat []models.FeatureNode, cards []models.KanbanCard, snap models.IntakeSnapshot, activity []models.ActivityEntry, cfg Config) ProjectView {
	titles := make(map[string]string, len(flat))
	for _, n := range flat {
		titles[n.ID] = n.Title
	}

	byCol := make(map[string][]CardView)
	for _, c := range cards {
		col := DisplayColumn(c.Lane, cfg)
		title, linked := "", false
		if c.FeatureID != "" {
			title, linked = titles[c.FeatureID], true
			if title == "" {
				linked = false // dangling link: render "no feature link"
			}
		}
		byCol[col] = append(byCol[col], CardView{
			Card:          c,
			Column:        col,
			PriorityLabel: DisplayPriority(c.Priority),
			FeatureTitle:  title,
			FeatureLinked: linked,
		})
	}

	columns := []Column{}
	for _, key := range columnOrder(cfg) {
		cs := byCol[key]
		if cs == nil {
			cs = []CardView{}
		}
		columns = append(columns, Column{Key: key, Cards: cs})
	}

	answered := 0
	for _, q := range snap.Questions {
		if q.Answered() {
			answered++
		}
	}
	summary := IntakeSummary{
		IdeaVersions:      len(snap.Ideas),
		QuestionsTotal:    len(snap.Questions),
		QuestionsAnswered: answered,
		Progress:          intake.ProgressLabel(snap.Questions),
		Status:            intake.DeriveStatus(snap.Questions),
	}
	if idea := snap.LatestIdea(); idea != nil {
		summary.IdeaText = idea.Text
	}
	if an := snap.LatestAnalysis(); an != nil {
		summary.AnalysisSummary = an.Summary
	}

	if activity == nil {
		activity = []models.ActivityEntry{}
	}
	return ProjectView{
		Project:  p,
		Tree:     tree.Build(flat),
		Columns:  columns,
		Intake:   summary,
		Activity: activity,
	}
}
