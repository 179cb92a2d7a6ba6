package projectservice

import (
	"context"

	"github.com/starford/raido/internal/models"
)

// Adapter is the capability contract the core is consumed through.
// Three implementations exist: Service over a local store, the HTTP
// bridge client in internal/bridge, and Fallback combining a primary
// with a local stand-in. Selection happens once at composition time.
type Adapter interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, c models.ProjectCreate) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, p models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	GetTree(ctx context.Context, projectID string) ([]models.FeatureNode, error)
	CreateTreeNode(ctx context.Context, projectID string, c models.NodeCreate) (*models.FeatureNode, error)
	UpdateTreeNode(ctx context.Context, projectID, nodeID string, p models.NodePatch) (*models.FeatureNode, error)
	DeleteTreeNode(ctx context.Context, projectID, nodeID string) error
	GetFeatureIntake(ctx context.Context, projectID, nodeID string) (*models.FeatureIntake, error)
	SetFeatureIntake(ctx context.Context, projectID, nodeID string, fi models.FeatureIntake) (*models.FeatureIntake, error)

	ListCards(ctx context.Context, projectID string) ([]models.KanbanCard, error)
	CreateCard(ctx context.Context, projectID string, c models.CardCreate) (*models.KanbanCard, error)
	UpdateCard(ctx context.Context, projectID, cardID string, p models.CardPatch) (*models.KanbanCard, error)
	DeleteCard(ctx context.Context, projectID, cardID string) error

	GetIntake(ctx context.Context, projectID string) (*models.IntakeSnapshot, error)
	SetIntake(ctx context.Context, projectID string, s models.IntakeSnapshot) (*models.IntakeSnapshot, error)
	AddIdeaVersion(ctx context.Context, projectID, text string) (*models.IntakeSnapshot, error)
	AddAnalysis(ctx context.Context, projectID, summary string, keyPoints []string) (*models.IntakeSnapshot, error)
	GenerateQuestions(ctx context.Context, projectID string) (*models.IntakeSnapshot, error)
	AnswerQuestion(ctx context.Context, projectID, questionID, answer string) (*models.IntakeSnapshot, error)
	SynthesizeTree(ctx context.Context, projectID string) ([]models.FeatureNode, error)

	ListActivity(ctx context.Context, projectID string, limit int) ([]models.ActivityEntry, error)
	AddActivity(ctx context.Context, projectID, actor, text string) (*models.ActivityEntry, error)

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, c models.TaskCreate) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, p models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ExportJSON(ctx context.Context, projectID string) (*models.ProjectExport, error)
	ExportMarkdown(ctx context.Context, projectID string) (string, error)
}

// Compile-time checks.
var (
	_ Adapter = (*Service)(nil)
	_ Adapter = (*Fallback)(nil)
)
