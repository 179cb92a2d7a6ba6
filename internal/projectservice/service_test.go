package projectservice

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(store.NewMemory())
}

func mustProject(t *testing.T, svc *Service, name string) *models.Project {
	t.Helper()
	p, err := svc.CreateProject(context.Background(), models.ProjectCreate{Name: name})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func strPtr(s string) *string { return &s }

func lanePtr(l models.Lane) *models.Lane { return &l }

func TestCreateProject_Defaults(t *testing.T) {
	svc := newTestService(t)
	p := mustProject(t, svc, "Trips App")

	if p.ID == "" {
		t.Error("id not assigned")
	}
	if p.Status != models.ProjectActive {
		t.Errorf("status = %q, want active", p.Status)
	}
	if p.Tags == nil || p.Links == nil {
		t.Error("collections should be empty, not nil")
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("timestamps: created=%v updated=%v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestCreateProject_RequiresName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateProject(context.Background(), models.ProjectCreate{})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestCreateProject_IDCollision(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.CreateProject(ctx, models.ProjectCreate{ID: "p1", Name: "One"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateProject(ctx, models.ProjectCreate{ID: "p1", Name: "Two"})
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateProject_PartialPatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "Old Name")

	got, err := svc.UpdateProject(ctx, p.ID, models.ProjectPatch{Summary: strPtr("a summary")})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Old Name" || got.Summary != "a summary" {
		t.Errorf("patch clobbered fields: %+v", got)
	}

	_, err = svc.UpdateProject(ctx, p.ID, models.ProjectPatch{Name: strPtr("")})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty name err = %v, want ErrValidation", err)
	}
}

func TestDeleteProject_Missing(t *testing.T) {
	svc := newTestService(t)
	if err := svc.DeleteProject(context.Background(), "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateCard_DefaultsAndEmptyHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")

	card, err := svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "Do the thing"})
	if err != nil {
		t.Fatal(err)
	}
	if card.Lane != models.LaneProposed {
		t.Errorf("lane = %q, want proposed", card.Lane)
	}
	if card.Priority != models.P2 {
		t.Errorf("priority = %q, want P2", card.Priority)
	}
	if card.History == nil || len(card.History) != 0 {
		t.Errorf("history should start empty, got %v", card.History)
	}
}

func TestCreateCard_LegacyLaneAlias(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")

	card, err := svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T", Lane: "todo"})
	if err != nil {
		t.Fatal(err)
	}
	if card.Lane != models.LaneProposed {
		t.Errorf("lane = %q, want proposed", card.Lane)
	}

	_, err = svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T2", Lane: "shipped"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("unknown lane err = %v, want ErrValidation", err)
	}
}

func TestCreateCard_DanglingFeatureIDTolerated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")

	card, err := svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T", FeatureID: "never-existed"})
	if err != nil {
		t.Fatalf("dangling feature link should be accepted: %v", err)
	}
	if card.FeatureID != "never-existed" {
		t.Errorf("feature id = %q", card.FeatureID)
	}
}

func TestUpdateCard_LaneChangeAppendsHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")
	card, _ := svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T"})

	got, err := svc.UpdateCard(ctx, p.ID, card.ID, models.CardPatch{Lane: lanePtr(models.LaneDevelopment)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Lane != models.LaneDevelopment {
		t.Errorf("lane = %q", got.Lane)
	}
	if len(got.History) != 1 {
		t.Fatalf("history len = %d, want 1", len(got.History))
	}
	h := got.History[0]
	if h.From != models.LaneProposed || h.To != models.LaneDevelopment || h.Note != "moved" {
		t.Errorf("history entry = %+v", h)
	}

	// Same-lane patch must not append.
	got, err = svc.UpdateCard(ctx, p.ID, card.ID, models.CardPatch{Lane: lanePtr(models.LaneDevelopment)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.History) != 1 {
		t.Errorf("same-lane update appended history: %v", got.History)
	}

	// Non-lane patch must not append either.
	got, _ = svc.UpdateCard(ctx, p.ID, card.ID, models.CardPatch{Title: strPtr("Renamed")})
	if len(got.History) != 1 {
		t.Errorf("title update appended history: %v", got.History)
	}
}

func TestUpdateCard_CustomNote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")
	card, _ := svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T"})

	got, err := svc.UpdateCard(ctx, p.ID, card.ID, models.CardPatch{
		Lane: lanePtr(models.LaneBlocked), Note: strPtr("waiting on credentials"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.History[0].Note != "waiting on credentials" {
		t.Errorf("note = %q", got.History[0].Note)
	}
}

func TestTasks_LaneHistoryOnFlatBoard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, models.TaskCreate{Title: "Upgrade router firmware"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Lane != models.LaneProposed || len(task.StatusHistory) != 0 {
		t.Fatalf("defaults wrong: %+v", task)
	}

	got, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{Lane: lanePtr(models.LaneQueued)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.StatusHistory) != 1 || got.StatusHistory[0].To != models.LaneQueued {
		t.Errorf("status history = %v", got.StatusHistory)
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateTask(ctx, task.ID, models.TaskPatch{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update deleted = %v, want ErrNotFound", err)
	}
}

func TestActivity_RecordedForMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")

	if _, err := svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T"}); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.ListActivity(ctx, p.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Project creation + card creation.
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2: %v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Actor != OperatorActor {
			t.Errorf("actor = %q, want %q", e.Actor, OperatorActor)
		}
	}
}

func TestAddActivity_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "P")

	entry, err := svc.AddActivity(ctx, p.ID, "", "did a thing")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Actor != OperatorActor {
		t.Errorf("empty actor should default to operator, got %q", entry.Actor)
	}

	if _, err := svc.AddActivity(ctx, p.ID, "agent", ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty text err = %v, want ErrValidation", err)
	}
}

func TestNotify_EmitsOnMutation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var kinds []string
	svc.SetNotify(func(kind, projectID string) { kinds = append(kinds, kind) })

	p := mustProject(t, svc, "P")
	_, _ = svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "T"})
	_, _ = svc.AddIdeaVersion(ctx, p.ID, "an idea")

	want := map[string]bool{"project": false, "card": false, "intake": false}
	for _, k := range kinds {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("no %q event emitted; got %v", k, kinds)
		}
	}
}
