// Package importer watches a drop directory for project snapshot files
// and applies them to the service. Snapshots are the same aggregate the
// JSON export produces, so two instances can exchange whole projects
// through a shared folder.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/export"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/storage"
)

// processedDir is where applied snapshots are archived, relative to the
// drop root. Files under it are never picked up again.
const processedDir = "processed"

// Sink applies a decoded snapshot.
type Sink interface {
	ImportProject(ctx context.Context, agg models.ProjectExport) error
}

// Importer processes snapshot files from a drop directory.
type Importer struct {
	store  storage.Provider
	sink   Sink
	logger *slog.Logger

	applied map[string]struct{} // checksums already imported this run
}

// New creates an importer over the given drop-directory provider.
func New(store storage.Provider, sink Sink, logger *slog.Logger) *Importer {
	return &Importer{
		store:   store,
		sink:    sink,
		logger:  logger,
		applied: make(map[string]struct{}),
	}
}

// Sweep processes every snapshot already sitting in the drop directory.
// Called once on startup, before the watcher takes over.
func (imp *Importer) Sweep(ctx context.Context) {
	metas, err := imp.store.List("")
	if err != nil {
		imp.logger.Warn("importer: sweep list failed", slog.String("error", err.Error()))
		return
	}
	for _, m := range metas {
		if skipPath(m.Path) {
			continue
		}
		if err := imp.process(ctx, m.Path); err != nil {
			imp.logger.Warn("importer: sweep failed",
				slog.String("path", m.Path),
				slog.String("error", err.Error()))
		}
	}
}

// process reads, deduplicates, decodes, and applies one snapshot, then
// archives the file under processed/.
func (imp *Importer) process(ctx context.Context, rel string) error {
	data, err := imp.store.Read(rel)
	if err != nil {
		return err
	}

	sum := checksum.Sum(data)
	if _, ok := imp.applied[sum]; ok {
		imp.logger.Debug("importer: duplicate snapshot skipped",
			slog.String("path", rel),
			slog.String("checksum", checksum.Short(data)))
		return imp.archive(rel)
	}

	agg, err := export.DecodeJSON(data)
	if err != nil {
		return err
	}
	if err := imp.sink.ImportProject(ctx, *agg); err != nil {
		return fmt.Errorf("importer: apply %s: %w", rel, err)
	}
	imp.applied[sum] = struct{}{}

	imp.logger.Info("importer: snapshot applied",
		slog.String("path", rel),
		slog.String("project_id", agg.Project.ID),
		slog.String("checksum", checksum.Short(data)))

	return imp.archive(rel)
}

// archive moves a processed file under processed/ with a timestamp
// prefix so repeated drops of the same name never collide.
func (imp *Importer) archive(rel string) error {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(rel))
	return imp.store.Move(rel, filepath.Join(processedDir, name))
}

func skipPath(rel string) bool {
	if !strings.HasSuffix(rel, ".json") {
		return true
	}
	return rel == processedDir || strings.HasPrefix(rel, processedDir+string(os.PathSeparator))
}

// Watch starts an fsnotify watcher on the drop root and processes file
// change events until ctx is cancelled. New directories created at
// runtime are automatically added to the watch list; the processed/
// archive is excluded.
func (imp *Importer) Watch(ctx context.Context, root string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	imp.logger.Info("importer: watching", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			imp.logger.Info("importer: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories: add to watcher and sweep their contents.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if filepath.Base(absPath) == processedDir {
						continue
					}
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						imp.logger.Warn("importer: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					}
					imp.Sweep(ctx)
					continue
				}
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil || skipPath(rel) {
				continue
			}

			// Partially written files fail to decode here; the final
			// write event retries them.
			if err := imp.process(ctx, rel); err != nil {
				imp.logger.Warn("importer: process failed",
					slog.String("path", rel),
					slog.String("error", err.Error()))
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			imp.logger.Error("importer: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher,
// skipping the processed/ archive.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == processedDir && path != root {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}
