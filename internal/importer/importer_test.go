package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/export"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/testutil"
)

type recordingSink struct {
	imported []models.ProjectExport
}

func (r *recordingSink) ImportProject(ctx context.Context, agg models.ProjectExport) error {
	r.imported = append(r.imported, agg)
	return nil
}

func newTestImporter(t *testing.T) (*Importer, *recordingSink, string) {
	t.Helper()
	root, drop := testutil.TestDropDir(t)
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(drop, sink, logger), sink, root
}

func snapshotBytes(t *testing.T, id, name string) []byte {
	t.Helper()
	data, err := export.EncodeJSON(models.ProjectExport{
		Project: models.Project{ID: id, Name: name, Status: models.ProjectActive},
	})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestSweep_AppliesAndArchives(t *testing.T) {
	imp, sink, root := newTestImporter(t)

	path := filepath.Join(root, "trips.json")
	if err := os.WriteFile(path, snapshotBytes(t, "p1", "Trips"), 0o644); err != nil {
		t.Fatal(err)
	}

	imp.Sweep(context.Background())

	if len(sink.imported) != 1 || sink.imported[0].Project.ID != "p1" {
		t.Fatalf("imported = %v", sink.imported)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("original file not moved: %v", err)
	}
	archived, err := filepath.Glob(filepath.Join(root, "processed", "*-trips.json"))
	if err != nil || len(archived) != 1 {
		t.Errorf("archive missing: %v, %v", archived, err)
	}
}

func TestSweep_DuplicateChecksumSkipped(t *testing.T) {
	imp, sink, root := newTestImporter(t)

	data := snapshotBytes(t, "p1", "Trips")
	_ = os.WriteFile(filepath.Join(root, "a.json"), data, 0o644)

	ctx := context.Background()
	imp.Sweep(ctx)

	// Same bytes dropped again under a new name: archived, not reapplied.
	_ = os.WriteFile(filepath.Join(root, "b.json"), data, 0o644)
	imp.Sweep(ctx)

	if len(sink.imported) != 1 {
		t.Errorf("duplicate applied: %d imports", len(sink.imported))
	}
	remaining, _ := filepath.Glob(filepath.Join(root, "*.json"))
	if len(remaining) != 0 {
		t.Errorf("duplicate not archived: %v", remaining)
	}
}

func TestSweep_MalformedLeftInPlace(t *testing.T) {
	imp, sink, root := newTestImporter(t)

	path := filepath.Join(root, "broken.json")
	_ = os.WriteFile(path, []byte(`{"project":`), 0o644)

	imp.Sweep(context.Background())

	if len(sink.imported) != 0 {
		t.Errorf("malformed snapshot applied: %v", sink.imported)
	}
	// The file stays put so a completed rewrite can be retried.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("malformed file moved away: %v", err)
	}
}

func TestSweep_IgnoresProcessedAndNonJSON(t *testing.T) {
	imp, sink, root := newTestImporter(t)

	_ = os.MkdirAll(filepath.Join(root, "processed"), 0o755)
	_ = os.WriteFile(filepath.Join(root, "processed", "old.json"), snapshotBytes(t, "p0", "Old"), 0o644)
	_ = os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not a snapshot"), 0o644)

	imp.Sweep(context.Background())

	if len(sink.imported) != 0 {
		t.Errorf("archive or non-json picked up: %v", sink.imported)
	}
}
