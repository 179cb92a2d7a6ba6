package projectservice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// flakyPrimary embeds the Adapter interface so only the methods a test
// exercises need stubs; anything else panics loudly.
type flakyPrimary struct {
	Adapter
	err   error
	calls int
}

func (f *flakyPrimary) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyPrimary) CreateProject(ctx context.Context, c models.ProjectCreate) (*models.Project, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyPrimary) DeleteProject(ctx context.Context, id string) error {
	f.calls++
	return f.err
}

func TestFallback_ReroutesOnUnreachable(t *testing.T) {
	ctx := context.Background()
	local := NewService(store.NewMemory())
	primary := &flakyPrimary{err: fmt.Errorf("bridge: %w: connection refused", apperr.ErrUnreachable)}
	fb := NewFallback(primary, local)

	p, err := fb.CreateProject(ctx, models.ProjectCreate{Name: "Offline"})
	if err != nil {
		t.Fatalf("rerouted create failed: %v", err)
	}

	got, err := fb.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != p.ID {
		t.Errorf("local stand-in not serving: %v", got)
	}
	if primary.calls != 2 {
		t.Errorf("primary tried %d times, want 2 (once per call)", primary.calls)
	}
}

func TestFallback_OtherErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	local := NewService(store.NewMemory())
	mustProject(t, local, "Local Only")

	primary := &flakyPrimary{err: fmt.Errorf("%w: project nope", apperr.ErrNotFound)}
	fb := NewFallback(primary, local)

	err := fb.DeleteProject(ctx, "nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want primary's ErrNotFound", err)
	}

	// The local copy is untouched: only unreachability reroutes.
	locals, _ := local.ListProjects(ctx)
	if len(locals) != 1 {
		t.Errorf("local state changed on pass-through error: %v", locals)
	}
}

func TestFallback_PrimarySuccessWins(t *testing.T) {
	ctx := context.Background()
	primarySvc := NewService(store.NewMemory())
	mustProject(t, primarySvc, "Remote")
	local := NewService(store.NewMemory())

	fb := NewFallback(primarySvc, local)
	got, err := fb.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Remote" {
		t.Errorf("primary result not returned: %v", got)
	}
}
