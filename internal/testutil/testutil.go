// Package testutil provides shared test helpers for setting up stores
// and seeded services.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/projectservice"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/store"
)

// TestSQLite creates a temporary SQLite store that is automatically cleaned up.
func TestSQLite(t *testing.T) *store.SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	st, err := store.OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestService creates a service over an in-memory store.
func TestService(t *testing.T) *projectservice.Service {
	t.Helper()
	return projectservice.NewService(store.NewMemory())
}

// SeedProject creates a project through the service and returns it.
func SeedProject(t *testing.T, svc *projectservice.Service, name string) *models.Project {
	t.Helper()
	p, err := svc.CreateProject(context.Background(), models.ProjectCreate{Name: name})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

// TestDropDir creates a temporary snapshot drop directory with a
// storage.Provider.
func TestDropDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dropDir := t.TempDir()
	drop, err := storage.NewFS(dropDir)
	if err != nil {
		t.Fatal(err)
	}
	return dropDir, drop
}
