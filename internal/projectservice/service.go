// Package projectservice implements the capability contract over a
// persistence store: project lifecycle, intake flows, feature-tree
// mutations with cascade rules, the card and task lane state machines,
// activity, and exports.
package projectservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/ident"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// OperatorActor is the actor recorded for mutations without an explicit
// actor.
const OperatorActor = "operator"

// NotifyFunc receives a change event kind ("project", "tree", "card",
// "intake", "task") and the affected project id ("" for tasks).
type NotifyFunc func(kind, projectID string)

// Service implements Adapter over a store.Store.
type Service struct {
	store  store.Store
	notify NotifyFunc
}

// NewService creates a service over the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// SetNotify installs a change-event callback. Pass nil to disable.
func (s *Service) SetNotify(fn NotifyFunc) { s.notify = fn }

func (s *Service) emit(kind, projectID string) {
	if s.notify != nil {
		s.notify(kind, projectID)
	}
}

// log appends an activity entry; failures are logged, never surfaced,
// so audit writes cannot fail a mutation that already committed.
func (s *Service) log(ctx context.Context, projectID, actor, text string) {
	if actor == "" {
		actor = OperatorActor
	}
	entry := models.ActivityEntry{
		ID:    ident.New("act"),
		At:    time.Now().UTC(),
		Actor: actor,
		Text:  text,
	}
	if err := s.store.AppendActivity(ctx, projectID, entry); err != nil {
		slog.Warn("activity append failed",
			slog.String("project_id", projectID),
			slog.String("error", err.Error()))
	}
}

// touchProject bumps the project's UpdatedAt; every child mutation
// routes through here.
func (s *Service) touchProject(ctx context.Context, projectID string) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.store.PutProject(ctx, *p); err != nil {
		slog.Warn("project touch failed",
			slog.String("project_id", projectID),
			slog.String("error", err.Error()))
	}
}

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
}

// ListProjects returns every project in creation order.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

// CreateProject creates a project with defaults applied. The id is
// assigned when absent; supplying a colliding id fails with
// ErrAlreadyExists.
func (s *Service) CreateProject(ctx context.Context, c models.ProjectCreate) (*models.Project, error) {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
	); err != nil {
		return nil, validationErr(err)
	}
	id := c.ID
	if id == "" {
		id = ident.New("proj")
	} else if _, err := s.store.GetProject(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: project %s", apperr.ErrAlreadyExists, id)
	}

	now := time.Now().UTC()
	p := models.Project{
		ID:        id,
		Name:      c.Name,
		Summary:   c.Summary,
		Status:    models.ProjectActive,
		Tags:      nonNil(c.Tags),
		Owner:     c.Owner,
		Links:     nonNil(c.Links),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutProject(ctx, p); err != nil {
		return nil, err
	}
	s.log(ctx, p.ID, "", fmt.Sprintf("created project %q", p.Name))
	s.emit("project", p.ID)
	return &p, nil
}

// UpdateProject applies a partial patch and bumps UpdatedAt.
func (s *Service) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperr.ErrValidation)
		}
		p.Name = *patch.Name
	}
	if patch.Summary != nil {
		p.Summary = *patch.Summary
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Tags != nil {
		p.Tags = nonNil(*patch.Tags)
	}
	if patch.Owner != nil {
		p.Owner = *patch.Owner
	}
	if patch.Links != nil {
		p.Links = nonNil(*patch.Links)
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.store.PutProject(ctx, *p); err != nil {
		return nil, err
	}
	s.emit("project", id)
	return p, nil
}

// DeleteProject removes a project and everything it owns: tree, cards,
// intake ledger, and activity trail.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.emit("project", id)
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
