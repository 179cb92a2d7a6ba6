package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/models"
)

func (h *Handler) currentTask(ctx context.Context, id string) *models.Task {
	tasks, err := h.svc.ListTasks(ctx)
	if err != nil {
		return nil
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

// ListTasks handles GET /api/tasks: the flat top-level operator board.
//
//	@Summary		List operator tasks
//	@Tags			tasks
//	@Produce		json
//	@Success		200	{object}	TaskListResponse
//	@Security		BearerAuth
//	@Router			/tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.TaskCreate
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.svc.CreateTask(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTask handles PATCH /api/tasks/{taskID}. Lane changes append to
// the task's status history; on failure the response carries the
// committed task under "current".
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	var req models.TaskPatch
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.svc.UpdateTask(r.Context(), id, req)
	if err != nil {
		writeErrWith(w, err, h.currentTask(r.Context(), id))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTask handles DELETE /api/tasks/{taskID}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
