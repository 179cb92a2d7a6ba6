package projectservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

func TestExportJSON_AggregateShape(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "Exported")

	n := mustNode(t, svc, p.ID, models.NodeCreate{Title: "Feature"})
	_, _ = svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "Card", FeatureID: n.ID})
	_, _ = svc.AddIdeaVersion(ctx, p.ID, "the idea")

	agg, err := svc.ExportJSON(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if agg.Project.ID != p.ID {
		t.Errorf("project id = %q", agg.Project.ID)
	}
	if len(agg.Tree) != 1 || len(agg.Cards) != 1 || len(agg.Intake.Ideas) != 1 {
		t.Errorf("aggregate incomplete: tree=%d cards=%d ideas=%d",
			len(agg.Tree), len(agg.Cards), len(agg.Intake.Ideas))
	}
	if agg.Tree == nil || agg.Cards == nil || agg.Intake.Questions == nil {
		t.Error("aggregate collections should be empty, not nil")
	}
}

func TestExportMarkdown_Projection(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "Trips App")

	n := mustNode(t, svc, p.ID, models.NodeCreate{Title: "Trip Recording"})
	_, _ = svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "GPS capture", FeatureID: n.ID})
	_, _ = svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "Unlinked card"})
	_, _ = svc.AddIdeaVersion(ctx, p.ID, "a trip tracking app")

	md, err := svc.ExportMarkdown(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Trips App",
		"## Intake",
		"a trip tracking app",
		"## Feature Tree",
		"Trip Recording",
		"## Board",
		"| GPS capture | proposed | P2 | Trip Recording |",
		"| Unlinked card | proposed | P2 | — |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestImportProject_ReplacesWholesale(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "Original")
	mustNode(t, svc, p.ID, models.NodeCreate{Title: "Stale node"})
	_, _ = svc.CreateCard(ctx, p.ID, models.CardCreate{Title: "Stale card"})

	agg := models.ProjectExport{
		Project: *p,
		Tree:    []models.FeatureNode{{ID: "imp-n1", Title: "Imported node", Status: models.NodeDraft, Priority: models.P2}},
		Cards:   []models.KanbanCard{{ID: "imp-c1", Title: "Imported card", Lane: models.LaneQueued, Priority: models.P1}},
		Intake: models.IntakeSnapshot{
			Ideas: []models.IdeaVersion{{ID: "imp-i1", Text: "imported idea"}},
		},
	}
	agg.Project.Name = "Renamed by import"

	if err := svc.ImportProject(ctx, agg); err != nil {
		t.Fatal(err)
	}

	got, _ := svc.GetTree(ctx, p.ID)
	if len(got) != 1 || got[0].ID != "imp-n1" {
		t.Errorf("tree not replaced: %v", got)
	}
	cards, _ := svc.ListCards(ctx, p.ID)
	if len(cards) != 1 || cards[0].ID != "imp-c1" {
		t.Errorf("cards not replaced: %v", cards)
	}
	snap, _ := svc.GetIntake(ctx, p.ID)
	if len(snap.Ideas) != 1 || snap.Ideas[0].ID != "imp-i1" {
		t.Errorf("intake not replaced: %v", snap)
	}
	projects, _ := svc.ListProjects(ctx)
	if projects[0].Name != "Renamed by import" {
		t.Errorf("project record not upserted: %q", projects[0].Name)
	}

	entries, _ := svc.ListActivity(ctx, p.ID, 1)
	if len(entries) != 1 || entries[0].Actor != "importer" {
		t.Errorf("import not logged by importer actor: %v", entries)
	}
}

func TestImportProject_RejectsCorruptTree(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, "Original")
	keep := mustNode(t, svc, p.ID, models.NodeCreate{Title: "Keep"})

	cases := map[string][]models.FeatureNode{
		"parent cycle": {
			{ID: "a", ParentID: "b", Title: "A"},
			{ID: "b", ParentID: "a", Title: "B"},
			{ID: "c", Title: "C"},
		},
		"duplicate id": {
			{ID: "a", Title: "A"},
			{ID: "a", Title: "A again"},
		},
	}
	for name, nodes := range cases {
		t.Run(name, func(t *testing.T) {
			agg := models.ProjectExport{Project: *p, Tree: nodes}
			err := svc.ImportProject(ctx, agg)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			// The rejected snapshot must leave prior state untouched.
			got, _ := svc.GetTree(ctx, p.ID)
			if len(got) != 1 || got[0].ID != keep.ID {
				t.Errorf("tree mutated by rejected import: %v", got)
			}
		})
	}
}

func TestImportProject_CreatesMissingProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	agg := models.ProjectExport{
		Project: models.Project{ID: "fresh", Name: "Fresh", Status: models.ProjectActive},
	}
	if err := svc.ImportProject(ctx, agg); err != nil {
		t.Fatal(err)
	}
	projects, _ := svc.ListProjects(ctx)
	if len(projects) != 1 || projects[0].ID != "fresh" {
		t.Errorf("imported project missing: %v", projects)
	}
}
