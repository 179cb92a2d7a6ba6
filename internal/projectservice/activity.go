package projectservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/ident"
	"github.com/starford/raido/internal/models"
)

// ListActivity returns up to limit entries, newest first. A limit of
// zero or less returns everything.
func (s *Service) ListActivity(ctx context.Context, projectID string, limit int) ([]models.ActivityEntry, error) {
	return s.store.ListActivity(ctx, projectID, limit)
}

// AddActivity appends an explicit audit entry. Entries are immutable
// once written.
func (s *Service) AddActivity(ctx context.Context, projectID, actor, text string) (*models.ActivityEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: activity text must not be empty", apperr.ErrValidation)
	}
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
		return nil, err
	}
	return &entry, nil
}
