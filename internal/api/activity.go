package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListActivity handles GET /api/projects/{projectID}/activity.
// Entries come back newest first; ?limit caps the count.
//
//	@Summary		List a project's activity trail
//	@Tags			activity
//	@Produce		json
//	@Param			projectID	path		string	true	"Project id"
//	@Param			limit		query		int		false	"Max entries"
//	@Success		200			{object}	ActivityResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/activity [get]
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.svc.ListActivity(r.Context(), chi.URLParam(r, "projectID"), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Entries: entries})
}

// AddActivity handles POST /api/projects/{projectID}/activity.
func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	entry, err := h.svc.AddActivity(r.Context(), chi.URLParam(r, "projectID"), req.Actor, req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ExportJSON handles GET /api/projects/{projectID}/export/json:
// the verbatim {project, tree, cards, intake} aggregate.
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	agg, err := h.svc.ExportJSON(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

// ExportMarkdown handles GET /api/projects/{projectID}/export/markdown:
// the human-readable projection (not lossless).
func (h *Handler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	md, err := h.svc.ExportMarkdown(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}
