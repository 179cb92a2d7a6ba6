package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/projectservice"
	"github.com/starford/raido/internal/view"
)

// Handler holds API route handlers over the capability adapter.
type Handler struct {
	svc     projectservice.Adapter
	viewCfg view.Config
}

// NewHandler creates a new Handler.
func NewHandler(svc projectservice.Adapter, viewCfg view.Config) *Handler {
	return &Handler{svc: svc, viewCfg: viewCfg}
}

// currentProject fetches the committed project state for revert
// payloads on failed updates. Best effort: nil when unavailable.
func (h *Handler) currentProject(ctx context.Context, id string) *models.Project {
	projects, err := h.svc.ListProjects(ctx)
	if err != nil {
		return nil
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}

// ListProjects handles GET /api/projects.
//
//	@Summary		List projects
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	ProjectListResponse
//	@Security		BearerAuth
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectListResponse{Projects: projects, Total: len(projects)})
}

// CreateProject handles POST /api/projects.
//
//	@Summary		Create a project
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.ProjectCreate	true	"Project to create"
//	@Success		201		{object}	models.Project
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectCreate
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.svc.CreateProject(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProject handles PATCH /api/projects/{projectID}. On failure the
// response carries the previous committed project under "current".
//
//	@Summary		Patch a project
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string				true	"Project id"
//	@Param			body		body		models.ProjectPatch	true	"Fields to change"
//	@Success		200			{object}	models.Project
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID} [patch]
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	var req models.ProjectPatch
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.svc.UpdateProject(r.Context(), id, req)
	if err != nil {
		writeErrWith(w, err, h.currentProject(r.Context(), id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProject handles DELETE /api/projects/{projectID}. Deletion
// cascades to the project's tree, cards, intake, and activity.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProjectView handles GET /api/projects/{projectID}/view: the
// display-ready aggregate consumed by rendering.
//
//	@Summary		Get the display aggregate for a project
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	view.ProjectView
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/view [get]
func (h *Handler) ProjectView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	ctx := r.Context()

	p := h.currentProject(ctx, id)
	if p == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	nodes, err := h.svc.GetTree(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	cards, err := h.svc.ListCards(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	snap, err := h.svc.GetIntake(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	activity, err := h.svc.ListActivity(ctx, id, 20)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Build(*p, nodes, cards, *snap, activity, h.viewCfg))
}
