package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/projectservice"
	"github.com/starford/raido/internal/view"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc projectservice.Adapter, viewCfg view.Config, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, viewCfg)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Projects.
	r.Get("/projects", h.ListProjects)
	r.Post("/projects", h.CreateProject)
	r.Patch("/projects/{projectID}", h.UpdateProject)
	r.Delete("/projects/{projectID}", h.DeleteProject)
	r.Get("/projects/{projectID}/view", h.ProjectView)

	// Feature tree.
	r.Get("/projects/{projectID}/tree", h.GetTree)
	r.Post("/projects/{projectID}/tree", h.CreateTreeNode)
	r.Post("/projects/{projectID}/tree/synthesize", h.SynthesizeTree)
	r.Patch("/projects/{projectID}/tree/{nodeID}", h.UpdateTreeNode)
	r.Delete("/projects/{projectID}/tree/{nodeID}", h.DeleteTreeNode)
	r.Get("/projects/{projectID}/tree/{nodeID}/intake", h.GetFeatureIntake)
	r.Put("/projects/{projectID}/tree/{nodeID}/intake", h.SetFeatureIntake)

	// Cards.
	r.Get("/projects/{projectID}/cards", h.ListCards)
	r.Post("/projects/{projectID}/cards", h.CreateCard)
	r.Patch("/projects/{projectID}/cards/{cardID}", h.UpdateCard)
	r.Delete("/projects/{projectID}/cards/{cardID}", h.DeleteCard)

	// Intake ledger.
	r.Get("/projects/{projectID}/intake", h.GetIntake)
	r.Put("/projects/{projectID}/intake", h.SetIntake)
	r.Post("/projects/{projectID}/intake/ideas", h.AddIdea)
	r.Post("/projects/{projectID}/intake/analyses", h.AddAnalysis)
	r.Post("/projects/{projectID}/intake/questions/generate", h.GenerateQuestions)
	r.Post("/projects/{projectID}/intake/questions/{questionID}/answer", h.AnswerQuestion)

	// Activity and exports.
	r.Get("/projects/{projectID}/activity", h.ListActivity)
	r.Post("/projects/{projectID}/activity", h.AddActivity)
	r.Get("/projects/{projectID}/export/json", h.ExportJSON)
	r.Get("/projects/{projectID}/export/markdown", h.ExportMarkdown)

	// Flat operator board.
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Patch("/tasks/{taskID}", h.UpdateTask)
	r.Delete("/tasks/{taskID}", h.DeleteTask)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
