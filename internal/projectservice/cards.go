package projectservice

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/board"
	"github.com/starford/raido/internal/ident"
	"github.com/starford/raido/internal/models"
)

// ListCards returns the project's cards in insertion order.
func (s *Service) ListCards(ctx context.Context, projectID string) ([]models.KanbanCard, error) {
	return s.store.ListCards(ctx, projectID)
}

// CreateCard creates a card, defaulting lane=proposed and priority=P2.
// History starts empty; the first entry appears on the first lane
// change. FeatureID is not enforced as a foreign key here: link
// validation belongs to creation-adjacent UI layers, and a dangling
// link is tolerated at read time.
func (s *Service) CreateCard(ctx context.Context, projectID string, c models.CardCreate) (*models.KanbanCard, error) {
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
		id = ident.New("card")
	} else if _, err := s.store.GetCard(ctx, projectID, id); err == nil {
		return nil, fmt.Errorf("%w: card %s", apperr.ErrAlreadyExists, id)
	}

	lane := board.NormalizeLane(c.Lane)
	if lane == "" {
		lane = models.LaneProposed
	}
	if !board.ValidLane(lane) {
		return nil, fmt.Errorf("%w: unknown lane %q", apperr.ErrValidation, c.Lane)
	}
	priority := c.Priority
	if priority == "" {
		priority = models.P2
	}

	now := time.Now().UTC()
	card := models.KanbanCard{
		ID:          id,
		FeatureID:   c.FeatureID,
		Title:       c.Title,
		Lane:        lane,
		Priority:    priority,
		Owner:       c.Owner,
		Description: c.Description,
		History:     []models.LaneChange{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.PutCard(ctx, projectID, card); err != nil {
		return nil, err
	}
	s.log(ctx, projectID, "", fmt.Sprintf("created card %q in %s", card.Title, card.Lane))
	s.touchProject(ctx, projectID)
	s.emit("card", projectID)
	return &card, nil
}

// UpdateCard applies a partial patch. A lane differing from the current
// one appends a history record ({at, from, to, note}, note defaulting
// to "moved"); any other update leaves history untouched.
func (s *Service) UpdateCard(ctx context.Context, projectID, cardID string, patch models.CardPatch) (*models.KanbanCard, error) {
	card, err := s.store.GetCard(ctx, projectID, cardID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
		}
		card.Title = *patch.Title
	}
	if patch.FeatureID != nil {
		card.FeatureID = *patch.FeatureID
	}
	if patch.Priority != nil {
		card.Priority = *patch.Priority
	}
	if patch.Owner != nil {
		card.Owner = *patch.Owner
	}
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	if patch.Lane != nil {
		to := board.NormalizeLane(*patch.Lane)
		if !board.ValidLane(to) {
			return nil, fmt.Errorf("%w: unknown lane %q", apperr.ErrValidation, *patch.Lane)
		}
		note := "moved"
		if patch.Note != nil {
			note = *patch.Note
		}
		if to != card.Lane {
			card.History = board.ApplyLaneChange(card.History, card.Lane, to, note)
			card.Lane = to
			s.log(ctx, projectID, "", fmt.Sprintf("moved card %q to %s", card.Title, to))
		}
	}
	card.UpdatedAt = time.Now().UTC()
	if err := s.store.PutCard(ctx, projectID, *card); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("card", projectID)
	return card, nil
}

// DeleteCard removes a card.
func (s *Service) DeleteCard(ctx context.Context, projectID, cardID string) error {
	if err := s.store.DeleteCard(ctx, projectID, cardID); err != nil {
		return err
	}
	s.touchProject(ctx, projectID)
	s.emit("card", projectID)
	return nil
}
