package projectservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// Fallback pairs a primary adapter (typically the HTTP bridge) with a
// locally-held one. Whenever the primary reports ErrUnreachable the
// call is served by the local adapter instead, so the operator is never
// blocked by a transient backend failure. The policy is uniform across
// all operations; reconciliation of locally-created entities is the
// transport collaborator's concern.
type Fallback struct {
	primary Adapter
	local   Adapter
}

// NewFallback wraps primary with local as the unreachable stand-in.
func NewFallback(primary, local Adapter) *Fallback {
	return &Fallback{primary: primary, local: local}
}

// fb2 runs the primary call and reroutes to local on ErrUnreachable.
func fb2[T any](name string, primary func() (T, error), local func() (T, error)) (T, error) {
	v, err := primary()
	if err != nil && errors.Is(err, apperr.ErrUnreachable) {
		slog.Warn("primary backend unreachable, serving locally", slog.String("op", name))
		return local()
	}
	return v, err
}

func fb1(name string, primary func() error, local func() error) error {
	err := primary()
	if err != nil && errors.Is(err, apperr.ErrUnreachable) {
		slog.Warn("primary backend unreachable, serving locally", slog.String("op", name))
		return local()
	}
	return err
}

func (f *Fallback) ListProjects(ctx context.Context) ([]models.Project, error) {
	return fb2("listProjects",
		func() ([]models.Project, error) { return f.primary.ListProjects(ctx) },
		func() ([]models.Project, error) { return f.local.ListProjects(ctx) })
}

func (f *Fallback) CreateProject(ctx context.Context, c models.ProjectCreate) (*models.Project, error) {
	return fb2("createProject",
		func() (*models.Project, error) { return f.primary.CreateProject(ctx, c) },
		func() (*models.Project, error) { return f.local.CreateProject(ctx, c) })
}

func (f *Fallback) UpdateProject(ctx context.Context, id string, p models.ProjectPatch) (*models.Project, error) {
	return fb2("updateProject",
		func() (*models.Project, error) { return f.primary.UpdateProject(ctx, id, p) },
		func() (*models.Project, error) { return f.local.UpdateProject(ctx, id, p) })
}

func (f *Fallback) DeleteProject(ctx context.Context, id string) error {
	return fb1("deleteProject",
		func() error { return f.primary.DeleteProject(ctx, id) },
		func() error { return f.local.DeleteProject(ctx, id) })
}

func (f *Fallback) GetTree(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	return fb2("getTree",
		func() ([]models.FeatureNode, error) { return f.primary.GetTree(ctx, projectID) },
		func() ([]models.FeatureNode, error) { return f.local.GetTree(ctx, projectID) })
}

func (f *Fallback) CreateTreeNode(ctx context.Context, projectID string, c models.NodeCreate) (*models.FeatureNode, error) {
	return fb2("createTreeNode",
		func() (*models.FeatureNode, error) { return f.primary.CreateTreeNode(ctx, projectID, c) },
		func() (*models.FeatureNode, error) { return f.local.CreateTreeNode(ctx, projectID, c) })
}

func (f *Fallback) UpdateTreeNode(ctx context.Context, projectID, nodeID string, p models.NodePatch) (*models.FeatureNode, error) {
	return fb2("updateTreeNode",
		func() (*models.FeatureNode, error) { return f.primary.UpdateTreeNode(ctx, projectID, nodeID, p) },
		func() (*models.FeatureNode, error) { return f.local.UpdateTreeNode(ctx, projectID, nodeID, p) })
}

func (f *Fallback) DeleteTreeNode(ctx context.Context, projectID, nodeID string) error {
	return fb1("deleteTreeNode",
		func() error { return f.primary.DeleteTreeNode(ctx, projectID, nodeID) },
		func() error { return f.local.DeleteTreeNode(ctx, projectID, nodeID) })
}

func (f *Fallback) GetFeatureIntake(ctx context.Context, projectID, nodeID string) (*models.FeatureIntake, error) {
	return fb2("getFeatureIntake",
		func() (*models.FeatureIntake, error) { return f.primary.GetFeatureIntake(ctx, projectID, nodeID) },
		func() (*models.FeatureIntake, error) { return f.local.GetFeatureIntake(ctx, projectID, nodeID) })
}

func (f *Fallback) SetFeatureIntake(ctx context.Context, projectID, nodeID string, fi models.FeatureIntake) (*models.FeatureIntake, error) {
	return fb2("setFeatureIntake",
		func() (*models.FeatureIntake, error) {
			return f.primary.SetFeatureIntake(ctx, projectID, nodeID, fi)
		},
		func() (*models.FeatureIntake, error) {
			return f.local.SetFeatureIntake(ctx, projectID, nodeID, fi)
		})
}

func (f *Fallback) ListCards(ctx context.Context, projectID string) ([]models.KanbanCard, error) {
	return fb2("listCards",
		func() ([]models.KanbanCard, error) { return f.primary.ListCards(ctx, projectID) },
		func() ([]models.KanbanCard, error) { return f.local.ListCards(ctx, projectID) })
}

func (f *Fallback) CreateCard(ctx context.Context, projectID string, c models.CardCreate) (*models.KanbanCard, error) {
	return fb2("createCard",
		func() (*models.KanbanCard, error) { return f.primary.CreateCard(ctx, projectID, c) },
		func() (*models.KanbanCard, error) { return f.local.CreateCard(ctx, projectID, c) })
}

func (f *Fallback) UpdateCard(ctx context.Context, projectID, cardID string, p models.CardPatch) (*models.KanbanCard, error) {
	return fb2("updateCard",
		func() (*models.KanbanCard, error) { return f.primary.UpdateCard(ctx, projectID, cardID, p) },
		func() (*models.KanbanCard, error) { return f.local.UpdateCard(ctx, projectID, cardID, p) })
}

func (f *Fallback) DeleteCard(ctx context.Context, projectID, cardID string) error {
	return fb1("deleteCard",
		func() error { return f.primary.DeleteCard(ctx, projectID, cardID) },
		func() error { return f.local.DeleteCard(ctx, projectID, cardID) })
}

func (f *Fallback) GetIntake(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	return fb2("getIntake",
		func() (*models.IntakeSnapshot, error) { return f.primary.GetIntake(ctx, projectID) },
		func() (*models.IntakeSnapshot, error) { return f.local.GetIntake(ctx, projectID) })
}

func (f *Fallback) SetIntake(ctx context.Context, projectID string, s models.IntakeSnapshot) (*models.IntakeSnapshot, error) {
	return fb2("setIntake",
		func() (*models.IntakeSnapshot, error) { return f.primary.SetIntake(ctx, projectID, s) },
		func() (*models.IntakeSnapshot, error) { return f.local.SetIntake(ctx, projectID, s) })
}

func (f *Fallback) AddIdeaVersion(ctx context.Context, projectID, text string) (*models.IntakeSnapshot, error) {
	return fb2("addIdeaVersion",
		func() (*models.IntakeSnapshot, error) { return f.primary.AddIdeaVersion(ctx, projectID, text) },
		func() (*models.IntakeSnapshot, error) { return f.local.AddIdeaVersion(ctx, projectID, text) })
}

func (f *Fallback) AddAnalysis(ctx context.Context, projectID, summary string, keyPoints []string) (*models.IntakeSnapshot, error) {
	return fb2("addAnalysis",
		func() (*models.IntakeSnapshot, error) {
			return f.primary.AddAnalysis(ctx, projectID, summary, keyPoints)
		},
		func() (*models.IntakeSnapshot, error) {
			return f.local.AddAnalysis(ctx, projectID, summary, keyPoints)
		})
}

func (f *Fallback) GenerateQuestions(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	return fb2("generateQuestions",
		func() (*models.IntakeSnapshot, error) { return f.primary.GenerateQuestions(ctx, projectID) },
		func() (*models.IntakeSnapshot, error) { return f.local.GenerateQuestions(ctx, projectID) })
}

func (f *Fallback) AnswerQuestion(ctx context.Context, projectID, questionID, answer string) (*models.IntakeSnapshot, error) {
	return fb2("answerQuestion",
		func() (*models.IntakeSnapshot, error) {
			return f.primary.AnswerQuestion(ctx, projectID, questionID, answer)
		},
		func() (*models.IntakeSnapshot, error) {
			return f.local.AnswerQuestion(ctx, projectID, questionID, answer)
		})
}

func (f *Fallback) SynthesizeTree(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	return fb2("synthesizeTree",
		func() ([]models.FeatureNode, error) { return f.primary.SynthesizeTree(ctx, projectID) },
		func() ([]models.FeatureNode, error) { return f.local.SynthesizeTree(ctx, projectID) })
}

func (f *Fallback) ListActivity(ctx context.Context, projectID string, limit int) ([]models.ActivityEntry, error) {
	return fb2("listActivity",
		func() ([]models.ActivityEntry, error) { return f.primary.ListActivity(ctx, projectID, limit) },
		func() ([]models.ActivityEntry, error) { return f.local.ListActivity(ctx, projectID, limit) })
}

func (f *Fallback) AddActivity(ctx context.Context, projectID, actor, text string) (*models.ActivityEntry, error) {
	return fb2("addActivity",
		func() (*models.ActivityEntry, error) { return f.primary.AddActivity(ctx, projectID, actor, text) },
		func() (*models.ActivityEntry, error) { return f.local.AddActivity(ctx, projectID, actor, text) })
}

func (f *Fallback) ListTasks(ctx context.Context) ([]models.Task, error) {
	return fb2("listTasks",
		func() ([]models.Task, error) { return f.primary.ListTasks(ctx) },
		func() ([]models.Task, error) { return f.local.ListTasks(ctx) })
}

func (f *Fallback) CreateTask(ctx context.Context, c models.TaskCreate) (*models.Task, error) {
	return fb2("createTask",
		func() (*models.Task, error) { return f.primary.CreateTask(ctx, c) },
		func() (*models.Task, error) { return f.local.CreateTask(ctx, c) })
}

func (f *Fallback) UpdateTask(ctx context.Context, id string, p models.TaskPatch) (*models.Task, error) {
	return fb2("updateTask",
		func() (*models.Task, error) { return f.primary.UpdateTask(ctx, id, p) },
		func() (*models.Task, error) { return f.local.UpdateTask(ctx, id, p) })
}

func (f *Fallback) DeleteTask(ctx context.Context, id string) error {
	return fb1("deleteTask",
		func() error { return f.primary.DeleteTask(ctx, id) },
		func() error { return f.local.DeleteTask(ctx, id) })
}

func (f *Fallback) ExportJSON(ctx context.Context, projectID string) (*models.ProjectExport, error) {
	return fb2("exportProjectJSON",
		func() (*models.ProjectExport, error) { return f.primary.ExportJSON(ctx, projectID) },
		func() (*models.ProjectExport, error) { return f.local.ExportJSON(ctx, projectID) })
}

func (f *Fallback) ExportMarkdown(ctx context.Context, projectID string) (string, error) {
	return fb2("exportProjectMarkdown",
		func() (string, error) { return f.primary.ExportMarkdown(ctx, projectID) },
		func() (string, error) { return f.local.ExportMarkdown(ctx, projectID) })
}
