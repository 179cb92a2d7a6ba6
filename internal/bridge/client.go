// Package bridge implements the capability adapter over HTTP against a
// remote Raido instance's REST API. Transport failures surface as
// apperr.ErrUnreachable so composition layers can fall back to a local
// store.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/projectservice"
)

// Client talks to a remote Raido API.
type Client struct {
	base  string
	token string
	http  *http.Client
}

var _ projectservice.Adapter = (*Client)(nil)

// New creates a bridge client for baseURL (e.g. http://127.0.0.1:8080/api).
// token may be empty when the remote runs with auth disabled.
func New(baseURL, token string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

type remoteError struct {
	Error string `json:"error"`
}

// statusError maps an error response onto the sentinel taxonomy:
// 404 not found, 409 already exists, 422 validation, 502/503 unreachable.
// It consumes the response body.
func statusError(resp *http.Response) error {
	var re remoteError
	_ = json.NewDecoder(resp.Body).Decode(&re)
	msg := re.Error
	if msg == "" {
		msg = resp.Status
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", apperr.ErrAlreadyExists, msg)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", apperr.ErrValidation, msg)
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", apperr.ErrUnreachable, msg)
	default:
		return fmt.Errorf("bridge: remote error: %s", msg)
	}
}

// do executes one request/response cycle. out, when non-nil, receives
// the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bridge: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("bridge: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bridge: %w: %v", apperr.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bridge: decode response: %w", err)
	}
	return nil
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var resp struct {
		Projects []models.Project `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *Client) CreateProject(ctx context.Context, create models.ProjectCreate) (*models.Project, error) {
	var p models.Project
	if err := c.do(ctx, http.MethodPost, "/projects", create, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	var p models.Project
	if err := c.do(ctx, http.MethodPatch, "/projects/"+url.PathEscape(id), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) projectPath(projectID string, parts ...string) string {
	path := "/projects/" + url.PathEscape(projectID)
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

func (c *Client) GetTree(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	var resp struct {
		Nodes []models.FeatureNode `json:"nodes"`
	}
	if err := c.do(ctx, http.MethodGet, c.projectPath(projectID, "tree"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

func (c *Client) CreateTreeNode(ctx context.Context, projectID string, create models.NodeCreate) (*models.FeatureNode, error) {
	var n models.FeatureNode
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "tree"), create, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateTreeNode(ctx context.Context, projectID, nodeID string, patch models.NodePatch) (*models.FeatureNode, error) {
	var n models.FeatureNode
	if err := c.do(ctx, http.MethodPatch, c.projectPath(projectID, "tree", url.PathEscape(nodeID)), patch, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteTreeNode(ctx context.Context, projectID, nodeID string) error {
	return c.do(ctx, http.MethodDelete, c.projectPath(projectID, "tree", url.PathEscape(nodeID)), nil, nil)
}

func (c *Client) GetFeatureIntake(ctx context.Context, projectID, nodeID string) (*models.FeatureIntake, error) {
	var fi models.FeatureIntake
	if err := c.do(ctx, http.MethodGet, c.projectPath(projectID, "tree", url.PathEscape(nodeID), "intake"), nil, &fi); err != nil {
		return nil, err
	}
	return &fi, nil
}

func (c *Client) SetFeatureIntake(ctx context.Context, projectID, nodeID string, fi models.FeatureIntake) (*models.FeatureIntake, error) {
	var out models.FeatureIntake
	if err := c.do(ctx, http.MethodPut, c.projectPath(projectID, "tree", url.PathEscape(nodeID), "intake"), fi, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCards(ctx context.Context, projectID string) ([]models.KanbanCard, error) {
	var resp struct {
		Cards []models.KanbanCard `json:"cards"`
	}
	if err := c.do(ctx, http.MethodGet, c.projectPath(projectID, "cards"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

func (c *Client) CreateCard(ctx context.Context, projectID string, create models.CardCreate) (*models.KanbanCard, error) {
	var card models.KanbanCard
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "cards"), create, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, projectID, cardID string, patch models.CardPatch) (*models.KanbanCard, error) {
	var card models.KanbanCard
	if err := c.do(ctx, http.MethodPatch, c.projectPath(projectID, "cards", url.PathEscape(cardID)), patch, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, projectID, cardID string) error {
	return c.do(ctx, http.MethodDelete, c.projectPath(projectID, "cards", url.PathEscape(cardID)), nil, nil)
}

func (c *Client) GetIntake(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	var snap models.IntakeSnapshot
	if err := c.do(ctx, http.MethodGet, c.projectPath(projectID, "intake"), nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) SetIntake(ctx context.Context, projectID string, snap models.IntakeSnapshot) (*models.IntakeSnapshot, error) {
	var out models.IntakeSnapshot
	if err := c.do(ctx, http.MethodPut, c.projectPath(projectID, "intake"), snap, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddIdeaVersion(ctx context.Context, projectID, text string) (*models.IntakeSnapshot, error) {
	var snap models.IntakeSnapshot
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "intake", "ideas"), body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) AddAnalysis(ctx context.Context, projectID, summary string, keyPoints []string) (*models.IntakeSnapshot, error) {
	var snap models.IntakeSnapshot
	body := map[string]any{"summary": summary, "key_points": keyPoints}
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "intake", "analyses"), body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) GenerateQuestions(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	var snap models.IntakeSnapshot
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "intake", "questions", "generate"), nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) AnswerQuestion(ctx context.Context, projectID, questionID, answer string) (*models.IntakeSnapshot, error) {
	var snap models.IntakeSnapshot
	body := map[string]string{"answer": answer}
	path := c.projectPath(projectID, "intake", "questions", url.PathEscape(questionID), "answer")
	if err := c.do(ctx, http.MethodPost, path, body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) SynthesizeTree(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	var resp struct {
		Nodes []models.FeatureNode `json:"nodes"`
	}
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "tree", "synthesize"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

func (c *Client) ListActivity(ctx context.Context, projectID string, limit int) ([]models.ActivityEntry, error) {
	var resp struct {
		Entries []models.ActivityEntry `json:"entries"`
	}
	path := c.projectPath(projectID, "activity")
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *Client) AddActivity(ctx context.Context, projectID, actor, text string) (*models.ActivityEntry, error) {
	var entry models.ActivityEntry
	body := map[string]string{"actor": actor, "text": text}
	if err := c.do(ctx, http.MethodPost, c.projectPath(projectID, "activity"), body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, create models.TaskCreate) (*models.Task, error) {
	var t models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", create, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var t models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ExportJSON(ctx context.Context, projectID string) (*models.ProjectExport, error) {
	var agg models.ProjectExport
	if err := c.do(ctx, http.MethodGet, c.projectPath(projectID, "export", "json"), nil, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

func (c *Client) ExportMarkdown(ctx context.Context, projectID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+c.projectPath(projectID, "export", "markdown"), nil)
	if err != nil {
		return "", fmt.Errorf("bridge: build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("bridge: %w: %v", apperr.ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", statusError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("bridge: read response: %w", err)
	}
	return string(data), nil
}
