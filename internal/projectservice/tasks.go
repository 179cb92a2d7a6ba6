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

// ListTasks returns the flat operator board in insertion order.
func (s *Service) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// CreateTask creates an operator task, defaulting lane=proposed and
// priority=P2. StatusHistory starts empty.
func (s *Service) CreateTask(ctx context.Context, c models.TaskCreate) (*models.Task, error) {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
	); err != nil {
		return nil, validationErr(err)
	}
	id := c.ID
	if id == "" {
		id = ident.New("task")
	} else if _, err := s.store.GetTask(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: task %s", apperr.ErrAlreadyExists, id)
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
	t := models.Task{
		ID:                 id,
		Title:              c.Title,
		Lane:               lane,
		Priority:           priority,
		Owner:              c.Owner,
		Problem:            c.Problem,
		Scope:              c.Scope,
		AcceptanceCriteria: nonNil(c.AcceptanceCriteria),
		StatusHistory:      []models.LaneChange{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.PutTask(ctx, t); err != nil {
		return nil, err
	}
	s.emit("task", "")
	return &t, nil
}

// UpdateTask applies a partial patch. Lane changes append to
// StatusHistory, which is never rewritten.
func (s *Service) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
		}
		t.Title = *patch.Title
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Owner != nil {
		t.Owner = *patch.Owner
	}
	if patch.Problem != nil {
		t.Problem = *patch.Problem
	}
	if patch.Scope != nil {
		t.Scope = *patch.Scope
	}
	if patch.AcceptanceCriteria != nil {
		t.AcceptanceCriteria = nonNil(*patch.AcceptanceCriteria)
	}
	if patch.Lane != nil {
		to := board.NormalizeLane(*patch.Lane)
		if !board.ValidLane(to) {
			return nil, fmt.Errorf("%w: unknown lane %q", apperr.ErrValidation, *patch.Lane)
		}
		note := ""
		if patch.Note != nil {
			note = *patch.Note
		}
		if to != t.Lane {
			t.StatusHistory = board.ApplyLaneChange(t.StatusHistory, t.Lane, to, note)
			t.Lane = to
		}
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.store.PutTask(ctx, *t); err != nil {
		return nil, err
	}
	s.emit("task", "")
	return t, nil
}

// DeleteTask removes an operator task.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.emit("task", "")
	return nil
}
