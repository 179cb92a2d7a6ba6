package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
	id  TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS nodes (
	project_id TEXT NOT NULL,
	id         TEXT NOT NULL,
	doc        TEXT NOT NULL,
	UNIQUE(project_id, id)
);

CREATE TABLE IF NOT EXISTS cards (
	project_id TEXT NOT NULL,
	id         TEXT NOT NULL,
	doc        TEXT NOT NULL,
	UNIQUE(project_id, id)
);

CREATE TABLE IF NOT EXISTS intakes (
	project_id TEXT PRIMARY KEY,
	doc        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activity (
	project_id TEXT NOT NULL,
	id         TEXT NOT NULL,
	at         TEXT NOT NULL,
	doc        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id  TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_nodes_project ON nodes(project_id);
CREATE INDEX IF NOT EXISTS idx_cards_project ON cards(project_id);
CREATE INDEX IF NOT EXISTS idx_activity_project ON activity(project_id, at);
`

// SQLite is the document-store backend: one JSON document per entity,
// keyed by project id and entity id. Insertion order is preserved by
// rowid, which conflict-update upserts leave untouched.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database and applies the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

func marshalDoc(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("store: marshal doc: %w", err)
	}
	return string(data), nil
}

func (s *SQLite) projectExists(ctx context.Context, id string) error {
	var one int
	err := s.conn.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *SQLite) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT doc FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()
	out := []models.Project{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p models.Project
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("store: decode project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLite) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var doc string
	err := s.conn.QueryRowContext(ctx, `SELECT doc FROM projects WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get project: %w", err)
	}
	var p models.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("store: decode project: %w", err)
	}
	return &p, nil
}

func (s *SQLite) PutProject(ctx context.Context, p models.Project) error {
	doc, err := marshalDoc(p)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO projects (id, doc) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, p.ID, doc)
	if err != nil {
		return fmt.Errorf("store: put project: %w", err)
	}
	return nil
}

// DeleteProject removes the project row and cascades to every owned
// sub-collection.
func (s *SQLite) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete project: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	for _, table := range []string{"nodes", "cards", "intakes", "activity"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("store: cascade %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) listDocs(ctx context.Context, table, projectID string) ([]string, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT doc FROM `+table+` WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", table, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *SQLite) getDoc(ctx context.Context, table, projectID, id string) (string, error) {
	var doc string
	err := s.conn.QueryRowContext(ctx,
		`SELECT doc FROM `+table+` WHERE project_id = ? AND id = ?`, projectID, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: get from %s: %w", table, err)
	}
	return doc, nil
}

func (s *SQLite) putDoc(ctx context.Context, table, projectID, id string, v any) error {
	if err := s.projectExists(ctx, projectID); err != nil {
		return err
	}
	doc, err := marshalDoc(v)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO `+table+` (project_id, id, doc) VALUES (?, ?, ?)
		 ON CONFLICT(project_id, id) DO UPDATE SET doc = excluded.doc`,
		projectID, id, doc)
	if err != nil {
		return fmt.Errorf("store: put into %s: %w", table, err)
	}
	return nil
}

func (s *SQLite) deleteDoc(ctx context.Context, table, projectID, id string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE project_id = ? AND id = ?`, projectID, id)
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *SQLite) ListNodes(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	docs, err := s.listDocs(ctx, "nodes", projectID)
	if err != nil {
		return nil, err
	}
	out := make([]models.FeatureNode, len(docs))
	for i, doc := range docs {
		if err := json.Unmarshal([]byte(doc), &out[i]); err != nil {
			return nil, fmt.Errorf("store: decode node: %w", err)
		}
	}
	return out, nil
}

func (s *SQLite) GetNode(ctx context.Context, projectID, id string) (*models.FeatureNode, error) {
	doc, err := s.getDoc(ctx, "nodes", projectID, id)
	if err != nil {
		return nil, err
	}
	var n models.FeatureNode
	if err := json.Unmarshal([]byte(doc), &n); err != nil {
		return nil, fmt.Errorf("store: decode node: %w", err)
	}
	return &n, nil
}

func (s *SQLite) PutNode(ctx context.Context, projectID string, n models.FeatureNode) error {
	return s.putDoc(ctx, "nodes", projectID, n.ID, n)
}

func (s *SQLite) DeleteNode(ctx context.Context, projectID, id string) error {
	return s.deleteDoc(ctx, "nodes", projectID, id)
}

// DeleteNodes removes the batch in one transaction so a cascade never
// leaves a half-deleted subtree behind.
func (s *SQLite) DeleteNodes(ctx context.Context, projectID string, ids []string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin delete nodes: %w", err)
	}
	defer tx.Rollback()
	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM nodes WHERE project_id = ? AND id = ?`, projectID, id)
		if err != nil {
			return fmt.Errorf("store: delete node %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.ErrNotFound
		}
	}
	return tx.Commit()
}

func (s *SQLite) ListCards(ctx context.Context, projectID string) ([]models.KanbanCard, error) {
	docs, err := s.listDocs(ctx, "cards", projectID)
	if err != nil {
		return nil, err
	}
	out := make([]models.KanbanCard, len(docs))
	for i, doc := range docs {
		if err := json.Unmarshal([]byte(doc), &out[i]); err != nil {
			return nil, fmt.Errorf("store: decode card: %w", err)
		}
	}
	return out, nil
}

func (s *SQLite) GetCard(ctx context.Context, projectID, id string) (*models.KanbanCard, error) {
	doc, err := s.getDoc(ctx, "cards", projectID, id)
	if err != nil {
		return nil, err
	}
	var c models.KanbanCard
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, fmt.Errorf("store: decode card: %w", err)
	}
	return &c, nil
}

func (s *SQLite) PutCard(ctx context.Context, projectID string, c models.KanbanCard) error {
	return s.putDoc(ctx, "cards", projectID, c.ID, c)
}

func (s *SQLite) DeleteCard(ctx context.Context, projectID, id string) error {
	return s.deleteDoc(ctx, "cards", projectID, id)
}

func (s *SQLite) GetIntake(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	var doc string
	err := s.conn.QueryRowContext(ctx,
		`SELECT doc FROM intakes WHERE project_id = ?`, projectID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.IntakeSnapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get intake: %w", err)
	}
	var snap models.IntakeSnapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return nil, fmt.Errorf("store: decode intake: %w", err)
	}
	return &snap, nil
}

func (s *SQLite) PutIntake(ctx context.Context, projectID string, snap models.IntakeSnapshot) error {
	if err := s.projectExists(ctx, projectID); err != nil {
		return err
	}
	doc, err := marshalDoc(snap)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO intakes (project_id, doc) VALUES (?, ?)
		 ON CONFLICT(project_id) DO UPDATE SET doc = excluded.doc`, projectID, doc)
	if err != nil {
		return fmt.Errorf("store: put intake: %w", err)
	}
	return nil
}

func (s *SQLite) ListActivity(ctx context.Context, projectID string, limit int) ([]models.ActivityEntry, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	q := `SELECT doc FROM activity WHERE project_id = ? ORDER BY at DESC, rowid DESC`
	args := []any{projectID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list activity: %w", err)
	}
	defer rows.Close()
	out := []models.ActivityEntry{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var e models.ActivityEntry
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			return nil, fmt.Errorf("store: decode activity: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) AppendActivity(ctx context.Context, projectID string, e models.ActivityEntry) error {
	if err := s.projectExists(ctx, projectID); err != nil {
		return err
	}
	doc, err := marshalDoc(e)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO activity (project_id, id, at, doc) VALUES (?, ?, ?, ?)`,
		projectID, e.ID, e.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"), doc)
	if err != nil {
		return fmt.Errorf("store: append activity: %w", err)
	}
	return nil
}

func (s *SQLite) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT doc FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	defer rows.Close()
	out := []models.Task{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var t models.Task
		if err := json.Unmarshal([]byte(doc), &t); err != nil {
			return nil, fmt.Errorf("store: decode task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var doc string
	err := s.conn.QueryRowContext(ctx, `SELECT doc FROM tasks WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get task: %w", err)
	}
	var t models.Task
	if err := json.Unmarshal([]byte(doc), &t); err != nil {
		return nil, fmt.Errorf("store: decode task: %w", err)
	}
	return &t, nil
}

func (s *SQLite) PutTask(ctx context.Context, t models.Task) error {
	doc, err := marshalDoc(t)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO tasks (id, doc) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, t.ID, doc)
	if err != nil {
		return fmt.Errorf("store: put task: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
