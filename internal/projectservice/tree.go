package projectservice

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/ident"
	"github.com/starford/raido/internal/intake"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/tree"
)

// GetTree returns the project's flat node collection in insertion order.
func (s *Service) GetTree(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	return s.store.ListNodes(ctx, projectID)
}

// CreateTreeNode creates a feature node with defaults applied
// (status draft, priority P2, empty collections). A non-empty ParentID
// must resolve within the same project.
func (s *Service) CreateTreeNode(ctx context.Context, projectID string, c models.NodeCreate) (*models.FeatureNode, error) {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
	); err != nil {
		return nil, validationErr(err)
	}
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	id := c.ID
	if id == "" {
		id = ident.New("node")
	} else if _, err := s.store.GetNode(ctx, projectID, id); err == nil {
		return nil, fmt.Errorf("%w: node %s", apperr.ErrAlreadyExists, id)
	}
	if c.ParentID != "" {
		if _, err := s.store.GetNode(ctx, projectID, c.ParentID); err != nil {
			return nil, fmt.Errorf("%w: parent %s does not resolve", apperr.ErrValidation, c.ParentID)
		}
	}

	status := c.Status
	if status == "" {
		status = models.NodeDraft
	}
	priority := c.Priority
	if priority == "" {
		priority = models.P2
	}
	now := time.Now().UTC()
	n := models.FeatureNode{
		ID:                 id,
		ParentID:           c.ParentID,
		Title:              c.Title,
		Description:        c.Description,
		Status:             status,
		Priority:           priority,
		Owner:              c.Owner,
		Tags:               nonNil(c.Tags),
		AcceptanceCriteria: nonNil(c.AcceptanceCriteria),
		DependsOn:          nonNil(c.DependsOn),
		Sources:            nonNil(c.Sources),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.PutNode(ctx, projectID, n); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("tree", projectID)
	return &n, nil
}

// UpdateTreeNode applies a partial patch and bumps UpdatedAt. A parent
// change is rejected if it fails to resolve or would introduce a cycle.
func (s *Service) UpdateTreeNode(ctx context.Context, projectID, nodeID string, patch models.NodePatch) (*models.FeatureNode, error) {
	n, err := s.store.GetNode(ctx, projectID, nodeID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
		}
		n.Title = *patch.Title
	}
	if patch.ParentID != nil && *patch.ParentID != n.ParentID {
		if err := s.checkReparent(ctx, projectID, nodeID, *patch.ParentID); err != nil {
			return nil, err
		}
		n.ParentID = *patch.ParentID
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Status != nil {
		n.Status = *patch.Status
	}
	if patch.Priority != nil {
		n.Priority = *patch.Priority
	}
	if patch.Owner != nil {
		n.Owner = *patch.Owner
	}
	if patch.Tags != nil {
		n.Tags = nonNil(*patch.Tags)
	}
	if patch.AcceptanceCriteria != nil {
		n.AcceptanceCriteria = nonNil(*patch.AcceptanceCriteria)
	}
	if patch.DependsOn != nil {
		n.DependsOn = nonNil(*patch.DependsOn)
	}
	if patch.Sources != nil {
		n.Sources = nonNil(*patch.Sources)
	}
	n.UpdatedAt = time.Now().UTC()
	if err := s.store.PutNode(ctx, projectID, *n); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("tree", projectID)
	return n, nil
}

// checkReparent validates a parent change against the current flat
// collection: the new parent must resolve (or be empty) and the
// resulting graph must stay acyclic.
func (s *Service) checkReparent(ctx context.Context, projectID, nodeID, newParent string) error {
	if newParent == "" {
		return nil
	}
	flat, err := s.store.ListNodes(ctx, projectID)
	if err != nil {
		return err
	}
	found := false
	for i := range flat {
		if flat[i].ID == newParent {
			found = true
		}
		if flat[i].ID == nodeID {
			flat[i].ParentID = newParent
		}
	}
	if !found {
		return fmt.Errorf("%w: parent %s does not resolve", apperr.ErrValidation, newParent)
	}
	if err := tree.Validate(flat); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

// DeleteTreeNode removes a node, cascades to its descendants, and
// detaches dependsOn edges that referenced any deleted node. Cards
// linked to deleted nodes keep their featureId; the dangling link is
// resolved to "no feature" at display time.
func (s *Service) DeleteTreeNode(ctx context.Context, projectID, nodeID string) error {
	if _, err := s.store.GetNode(ctx, projectID, nodeID); err != nil {
		return err
	}
	flat, err := s.store.ListNodes(ctx, projectID)
	if err != nil {
		return err
	}

	doomed := map[string]struct{}{nodeID: {}}
	ids := []string{nodeID}
	for _, id := range tree.Descendants(flat, nodeID) {
		doomed[id] = struct{}{}
		ids = append(ids, id)
	}
	// Single batch delete: the subtree goes as one unit, never partially.
	if err := s.store.DeleteNodes(ctx, projectID, ids); err != nil {
		return err
	}

	// Detach dangling dependsOn edges on the survivors.
	for _, n := range flat {
		if _, gone := doomed[n.ID]; gone {
			continue
		}
		kept := n.DependsOn[:0]
		changed := false
		for _, dep := range n.DependsOn {
			if _, gone := doomed[dep]; gone {
				changed = true
				continue
			}
			kept = append(kept, dep)
		}
		if changed {
			n.DependsOn = nonNil(kept)
			n.UpdatedAt = time.Now().UTC()
			if err := s.store.PutNode(ctx, projectID, n); err != nil {
				return err
			}
		}
	}

	s.log(ctx, projectID, "", fmt.Sprintf("deleted feature node %s (%d descendants)", nodeID, len(doomed)-1))
	s.touchProject(ctx, projectID)
	s.emit("tree", projectID)
	return nil
}

// GetFeatureIntake returns the node's micro-ledger, or an empty
// not_started record when none exists yet.
func (s *Service) GetFeatureIntake(ctx context.Context, projectID, nodeID string) (*models.FeatureIntake, error) {
	n, err := s.store.GetNode(ctx, projectID, nodeID)
	if err != nil {
		return nil, err
	}
	if n.Intake == nil {
		return &models.FeatureIntake{Questions: []models.Question{}, Status: models.IntakeNotStarted}, nil
	}
	return n.Intake, nil
}

// SetFeatureIntake replaces the node's micro-ledger. Status is derived
// from the answered/total ratio, never taken from the caller.
func (s *Service) SetFeatureIntake(ctx context.Context, projectID, nodeID string, fi models.FeatureIntake) (*models.FeatureIntake, error) {
	n, err := s.store.GetNode(ctx, projectID, nodeID)
	if err != nil {
		return nil, err
	}
	fi.Questions = nonNil(fi.Questions)
	fi.Status = intake.DeriveStatus(fi.Questions)
	n.Intake = &fi
	n.UpdatedAt = time.Now().UTC()
	if err := s.store.PutNode(ctx, projectID, *n); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("tree", projectID)
	return &fi, nil
}
