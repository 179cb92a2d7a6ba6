// Package store defines the persistence contract for project data and
// provides the in-memory and SQLite backends. A Store holds raw
// collections only; lane history, cascade rules, and intake flows are
// the service layer's concern.
package store

import (
	"context"

	"github.com/starford/raido/internal/models"
)

// Store is the persistence interface implemented by Memory and SQLite.
// Put operations are upserts; Get and Delete return apperr.ErrNotFound
// for unknown ids. List order is insertion order. DeleteProject cascades
// to the project's tree, cards, intake, and activity.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	PutProject(ctx context.Context, p models.Project) error
	DeleteProject(ctx context.Context, id string) error

	ListNodes(ctx context.Context, projectID string) ([]models.FeatureNode, error)
	GetNode(ctx context.Context, projectID, id string) (*models.FeatureNode, error)
	PutNode(ctx context.Context, projectID string, n models.FeatureNode) error
	DeleteNode(ctx context.Context, projectID, id string) error
	// DeleteNodes removes the given nodes as one unit: either every id
	// is deleted or, on any unknown id, none is.
	DeleteNodes(ctx context.Context, projectID string, ids []string) error

	ListCards(ctx context.Context, projectID string) ([]models.KanbanCard, error)
	GetCard(ctx context.Context, projectID, id string) (*models.KanbanCard, error)
	PutCard(ctx context.Context, projectID string, c models.KanbanCard) error
	DeleteCard(ctx context.Context, projectID, id string) error

	GetIntake(ctx context.Context, projectID string) (*models.IntakeSnapshot, error)
	PutIntake(ctx context.Context, projectID string, s models.IntakeSnapshot) error

	ListActivity(ctx context.Context, projectID string, limit int) ([]models.ActivityEntry, error)
	AppendActivity(ctx context.Context, projectID string, e models.ActivityEntry) error

	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	PutTask(ctx context.Context, t models.Task) error
	DeleteTask(ctx context.Context, id string) error

	Close() error
}

// Compile-time interface checks.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*SQLite)(nil)
)
