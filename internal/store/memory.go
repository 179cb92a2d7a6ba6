package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// arena owns every sub-collection of one project. Arenas are keyed by
// project id inside Memory and passed nowhere else; there is no
// process-wide state.
type arena struct {
	project  models.Project
	nodes    []models.FeatureNode
	cards    []models.KanbanCard
	intake   models.IntakeSnapshot
	activity []models.ActivityEntry
}

// Memory is the in-memory Store backend: a mutex-guarded map of project
// arenas plus the flat operator task list. Values are deep-copied on
// the way in and out so callers never alias stored state.
type Memory struct {
	mu     sync.RWMutex
	arenas map[string]*arena
	order  []string // project insertion order
	tasks  []models.Task
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{arenas: make(map[string]*arena)}
}

// Close implements Store; a Memory store holds no external resources.
func (m *Memory) Close() error { return nil }

// cloneDoc deep-copies a document-shaped value through JSON. All stored
// types are plain data, so this is lossless.
func cloneDoc[T any](v T) T {
	data, err := json.Marshal(v)
	if err != nil {
		panic("store: clone marshal: " + err.Error())
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic("store: clone unmarshal: " + err.Error())
	}
	return out
}

func (m *Memory) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Project, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneDoc(m.arenas[id].project))
	}
	return out, nil
}

func (m *Memory) GetProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.arenas[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	p := cloneDoc(a.project)
	return &p, nil
}

func (m *Memory) PutProject(_ context.Context, p models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.arenas[p.ID]
	if !ok {
		a = &arena{}
		m.arenas[p.ID] = a
		m.order = append(m.order, p.ID)
	}
	a.project = cloneDoc(p)
	return nil
}

func (m *Memory) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.arenas[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.arenas, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) getArena(projectID string) (*arena, error) {
	a, ok := m.arenas[projectID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return a, nil
}

func (m *Memory) ListNodes(_ context.Context, projectID string) ([]models.FeatureNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return nil, err
	}
	return cloneDoc(append([]models.FeatureNode{}, a.nodes...)), nil
}

func (m *Memory) GetNode(_ context.Context, projectID, id string) (*models.FeatureNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return nil, err
	}
	for i := range a.nodes {
		if a.nodes[i].ID == id {
			n := cloneDoc(a.nodes[i])
			return &n, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *Memory) PutNode(_ context.Context, projectID string, n models.FeatureNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	for i := range a.nodes {
		if a.nodes[i].ID == n.ID {
			a.nodes[i] = cloneDoc(n)
			return nil
		}
	}
	a.nodes = append(a.nodes, cloneDoc(n))
	return nil
}

func (m *Memory) DeleteNode(_ context.Context, projectID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	for i := range a.nodes {
		if a.nodes[i].ID == id {
			a.nodes = append(a.nodes[:i], a.nodes[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *Memory) DeleteNodes(_ context.Context, projectID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	byID := make(map[string]struct{}, len(a.nodes))
	for _, n := range a.nodes {
		byID[n.ID] = struct{}{}
	}
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return apperr.ErrNotFound
		}
		doomed[id] = struct{}{}
	}
	kept := a.nodes[:0]
	for _, n := range a.nodes {
		if _, gone := doomed[n.ID]; gone {
			continue
		}
		kept = append(kept, n)
	}
	a.nodes = kept
	return nil
}

func (m *Memory) ListCards(_ context.Context, projectID string) ([]models.KanbanCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return nil, err
	}
	return cloneDoc(append([]models.KanbanCard{}, a.cards...)), nil
}

func (m *Memory) GetCard(_ context.Context, projectID, id string) (*models.KanbanCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return nil, err
	}
	for i := range a.cards {
		if a.cards[i].ID == id {
			c := cloneDoc(a.cards[i])
			return &c, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *Memory) PutCard(_ context.Context, projectID string, c models.KanbanCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	for i := range a.cards {
		if a.cards[i].ID == c.ID {
			a.cards[i] = cloneDoc(c)
			return nil
		}
	}
	a.cards = append(a.cards, cloneDoc(c))
	return nil
}

func (m *Memory) DeleteCard(_ context.Context, projectID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	for i := range a.cards {
		if a.cards[i].ID == id {
			a.cards = append(a.cards[:i], a.cards[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *Memory) GetIntake(_ context.Context, projectID string) (*models.IntakeSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return nil, err
	}
	s := cloneDoc(a.intake)
	return &s, nil
}

func (m *Memory) PutIntake(_ context.Context, projectID string, s models.IntakeSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	a.intake = cloneDoc(s)
	return nil
}

func (m *Memory) ListActivity(_ context.Context, projectID string, limit int) ([]models.ActivityEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return nil, err
	}
	out := cloneDoc(append([]models.ActivityEntry{}, a.activity...))
	// Newest first for display.
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) AppendActivity(_ context.Context, projectID string, e models.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.getArena(projectID)
	if err != nil {
		return err
	}
	a.activity = append(a.activity, cloneDoc(e))
	return nil
}

func (m *Memory) ListTasks(_ context.Context) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneDoc(append([]models.Task{}, m.tasks...)), nil
}

func (m *Memory) GetTask(_ context.Context, id string) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			t := cloneDoc(m.tasks[i])
			return &t, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *Memory) PutTask(_ context.Context, t models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID {
			m.tasks[i] = cloneDoc(t)
			return nil
		}
	}
	m.tasks = append(m.tasks, cloneDoc(t))
	return nil
}

func (m *Memory) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}
