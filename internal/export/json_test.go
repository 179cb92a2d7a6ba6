package export

import (
	"strings"
	"testing"

	"github.com/starford/raido/internal/models"
)

func TestJSONRoundTrip(t *testing.T) {
	agg := models.ProjectExport{
		Project: models.Project{ID: "p1", Name: "P"},
		Tree:    []models.FeatureNode{{ID: "n1", Title: "Root"}},
		Cards:   []models.KanbanCard{{ID: "c1", Title: "Card", Lane: models.LaneProposed}},
	}
	data, err := EncodeJSON(agg)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Project.ID != "p1" || len(got.Tree) != 1 || len(got.Cards) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestDecodeJSON_RequiresIdentity(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{"project":{"name":"no id"}}`)); err == nil {
		t.Error("missing project id should be rejected")
	}
	if _, err := DecodeJSON([]byte(`{"project":{"id":"p1"}}`)); err == nil {
		t.Error("missing project name should be rejected")
	}
	if _, err := DecodeJSON([]byte(`{not json`)); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("malformed input err = %v", err)
	}
}
