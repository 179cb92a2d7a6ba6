package projectservice

import (
	"context"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/export"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/tree"
)

// ExportJSON assembles the verbatim export aggregate for one project:
// {project, tree, cards, intake}.
func (s *Service) ExportJSON(ctx context.Context, projectID string) (*models.ProjectExport, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	nodes, err := s.store.ListNodes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cards, err := s.store.ListCards(ctx, projectID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	normalizeIntake(snap)
	return &models.ProjectExport{
		Project: *p,
		Tree:    nonNil(nodes),
		Cards:   nonNil(cards),
		Intake:  *snap,
	}, nil
}

// ExportMarkdown renders the human-readable projection of a project.
// It is not lossless.
func (s *Service) ExportMarkdown(ctx context.Context, projectID string) (string, error) {
	agg, err := s.ExportJSON(ctx, projectID)
	if err != nil {
		return "", err
	}
	return export.Markdown(*agg), nil
}

// ImportProject recreates a project from an export aggregate. Existing
// state under the same project id is replaced wholesale. A snapshot
// whose tree carries duplicate ids or a parent cycle is rejected before
// any state changes.
func (s *Service) ImportProject(ctx context.Context, agg models.ProjectExport) error {
	if err := tree.Validate(agg.Tree); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if err := s.store.PutProject(ctx, agg.Project); err != nil {
		return err
	}
	// Drop any prior tree/cards before replaying the imported ones.
	if old, err := s.store.ListNodes(ctx, agg.Project.ID); err == nil {
		for _, n := range old {
			_ = s.store.DeleteNode(ctx, agg.Project.ID, n.ID)
		}
	}
	if old, err := s.store.ListCards(ctx, agg.Project.ID); err == nil {
		for _, c := range old {
			_ = s.store.DeleteCard(ctx, agg.Project.ID, c.ID)
		}
	}
	for _, n := range agg.Tree {
		if err := s.store.PutNode(ctx, agg.Project.ID, n); err != nil {
			return err
		}
	}
	for _, c := range agg.Cards {
		if err := s.store.PutCard(ctx, agg.Project.ID, c); err != nil {
			return err
		}
	}
	if err := s.store.PutIntake(ctx, agg.Project.ID, agg.Intake); err != nil {
		return err
	}
	s.log(ctx, agg.Project.ID, "importer", "imported project snapshot")
	s.emit("project", agg.Project.ID)
	return nil
}
