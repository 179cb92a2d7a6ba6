package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// backends returns every Store implementation under test.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	dbFile, err := os.CreateTemp("", "raido-store-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	sqlite, err := OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func putProject(t *testing.T, st Store, id, name string) {
	t.Helper()
	now := time.Now().UTC()
	err := st.PutProject(context.Background(), models.Project{
		ID: id, Name: name, Status: models.ProjectActive,
		Tags: []string{}, Links: []models.Link{},
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("put project: %v", err)
	}
}

func TestProjectLifecycle(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			putProject(t, st, "p1", "First")
			putProject(t, st, "p2", "Second")

			got, err := st.ListProjects(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
				t.Fatalf("list order = %v", got)
			}

			p, err := st.GetProject(ctx, "p1")
			if err != nil || p.Name != "First" {
				t.Fatalf("get = %v, %v", p, err)
			}

			// Upsert keeps insertion order.
			putProject(t, st, "p1", "Renamed")
			got, _ = st.ListProjects(ctx)
			if got[0].ID != "p1" || got[0].Name != "Renamed" {
				t.Errorf("upsert moved or lost project: %v", got)
			}

			if err := st.DeleteProject(ctx, "p1"); err != nil {
				t.Fatal(err)
			}
			if _, err := st.GetProject(ctx, "p1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("get deleted = %v, want ErrNotFound", err)
			}
			if err := st.DeleteProject(ctx, "p1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("double delete = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestNodesScopedByProject(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			putProject(t, st, "p1", "One")
			putProject(t, st, "p2", "Two")

			n := models.FeatureNode{ID: "n1", Title: "Root", Status: models.NodeDraft, Priority: models.P1}
			if err := st.PutNode(ctx, "p1", n); err != nil {
				t.Fatal(err)
			}

			if _, err := st.GetNode(ctx, "p2", "n1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("node leaked across projects: %v", err)
			}
			got, err := st.GetNode(ctx, "p1", "n1")
			if err != nil || got.Title != "Root" {
				t.Fatalf("get = %v, %v", got, err)
			}

			// Writes against a missing project fail.
			if err := st.PutNode(ctx, "nope", n); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("put into missing project = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestNodeListOrderSurvivesUpsert(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			putProject(t, st, "p1", "One")

			for _, id := range []string{"a", "b", "c"} {
				if err := st.PutNode(ctx, "p1", models.FeatureNode{ID: id, Title: id}); err != nil {
					t.Fatal(err)
				}
			}
			// Re-put the first node; it must stay first.
			if err := st.PutNode(ctx, "p1", models.FeatureNode{ID: "a", Title: "a2"}); err != nil {
				t.Fatal(err)
			}

			nodes, err := st.ListNodes(ctx, "p1")
			if err != nil {
				t.Fatal(err)
			}
			if len(nodes) != 3 || nodes[0].ID != "a" || nodes[0].Title != "a2" {
				t.Errorf("order after upsert = %v", nodes)
			}
		})
	}
}

func TestDeleteNodesAllOrNothing(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			putProject(t, st, "p1", "One")
			for _, id := range []string{"a", "b", "c"} {
				if err := st.PutNode(ctx, "p1", models.FeatureNode{ID: id, Title: id}); err != nil {
					t.Fatal(err)
				}
			}

			if err := st.DeleteNodes(ctx, "p1", []string{"a", "b"}); err != nil {
				t.Fatal(err)
			}
			nodes, _ := st.ListNodes(ctx, "p1")
			if len(nodes) != 1 || nodes[0].ID != "c" {
				t.Fatalf("after batch delete = %v, want only c", nodes)
			}

			// An unknown id in the batch rolls the whole batch back.
			if err := st.DeleteNodes(ctx, "p1", []string{"c", "ghost"}); !errors.Is(err, apperr.ErrNotFound) {
				t.Fatalf("batch with unknown id = %v, want ErrNotFound", err)
			}
			nodes, _ = st.ListNodes(ctx, "p1")
			if len(nodes) != 1 || nodes[0].ID != "c" {
				t.Errorf("failed batch mutated state: %v", nodes)
			}
		})
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			putProject(t, st, "p1", "One")
			_ = st.PutNode(ctx, "p1", models.FeatureNode{ID: "n1", Title: "n"})
			_ = st.PutCard(ctx, "p1", models.KanbanCard{ID: "c1", Title: "c", Lane: models.LaneProposed})
			_ = st.PutIntake(ctx, "p1", models.IntakeSnapshot{Ideas: []models.IdeaVersion{{ID: "i1", Text: "x"}}})
			_ = st.AppendActivity(ctx, "p1", models.ActivityEntry{ID: "a1", At: time.Now().UTC(), Actor: "operator", Text: "t"})

			if err := st.DeleteProject(ctx, "p1"); err != nil {
				t.Fatal(err)
			}

			// Re-create the project id; children must not resurrect.
			putProject(t, st, "p1", "Again")
			nodes, _ := st.ListNodes(ctx, "p1")
			cards, _ := st.ListCards(ctx, "p1")
			acts, _ := st.ListActivity(ctx, "p1", 0)
			snap, _ := st.GetIntake(ctx, "p1")
			if len(nodes) != 0 || len(cards) != 0 || len(acts) != 0 {
				t.Errorf("cascade left residue: nodes=%d cards=%d activity=%d", len(nodes), len(cards), len(acts))
			}
			if snap == nil || len(snap.Ideas) != 0 {
				t.Errorf("intake not cleared: %v", snap)
			}
		})
	}
}

func TestIntakeDefaultsEmpty(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			putProject(t, st, "p1", "One")

			snap, err := st.GetIntake(ctx, "p1")
			if err != nil {
				t.Fatalf("fresh intake: %v", err)
			}
			if len(snap.Ideas) != 0 || len(snap.Questions) != 0 {
				t.Errorf("fresh intake not empty: %v", snap)
			}

			if _, err := st.GetIntake(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("intake for missing project = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestActivityNewestFirstWithLimit(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			putProject(t, st, "p1", "One")

			base := time.Now().UTC()
			for i := 0; i < 5; i++ {
				err := st.AppendActivity(ctx, "p1", models.ActivityEntry{
					ID: string(rune('a' + i)), At: base.Add(time.Duration(i) * time.Second),
					Actor: "operator", Text: "entry",
				})
				if err != nil {
					t.Fatal(err)
				}
			}

			got, err := st.ListActivity(ctx, "p1", 3)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 3 {
				t.Fatalf("limit ignored: len = %d", len(got))
			}
			if got[0].ID != "e" || got[2].ID != "c" {
				t.Errorf("order = %s,%s,%s, want e,d,c", got[0].ID, got[1].ID, got[2].ID)
			}
		})
	}
}

func TestTasksFlatBoard(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			task := models.Task{
				ID: "t1", Title: "Ship it", Lane: models.LaneProposed, Priority: models.P2,
				AcceptanceCriteria: []string{}, StatusHistory: []models.LaneChange{},
			}
			if err := st.PutTask(ctx, task); err != nil {
				t.Fatal(err)
			}
			got, err := st.GetTask(ctx, "t1")
			if err != nil || got.Title != "Ship it" {
				t.Fatalf("get = %v, %v", got, err)
			}
			if err := st.DeleteTask(ctx, "t1"); err != nil {
				t.Fatal(err)
			}
			if _, err := st.GetTask(ctx, "t1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("get deleted = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	putProject(t, m, "p1", "One")
	_ = m.PutNode(ctx, "p1", models.FeatureNode{ID: "n1", Title: "orig", DependsOn: []string{"x"}})

	got, _ := m.GetNode(ctx, "p1", "n1")
	got.Title = "mutated"
	got.DependsOn[0] = "y"

	again, _ := m.GetNode(ctx, "p1", "n1")
	if again.Title != "orig" || again.DependsOn[0] != "x" {
		t.Errorf("stored state aliased by caller: %+v", again)
	}
}
