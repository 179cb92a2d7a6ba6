package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/models"
)

// GetIntake handles GET /api/projects/{projectID}/intake.
//
//	@Summary		Get the intake ledger snapshot
//	@Tags			intake
//	@Produce		json
//	@Param			projectID	path		string	true	"Project id"
//	@Success		200			{object}	models.IntakeSnapshot
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/intake [get]
func (h *Handler) GetIntake(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetIntake(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SetIntake handles PUT /api/projects/{projectID}/intake: a whole-ledger
// replace, used by import and requirement editing.
func (h *Handler) SetIntake(w http.ResponseWriter, r *http.Request) {
	var req models.IntakeSnapshot
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := h.svc.SetIntake(r.Context(), chi.URLParam(r, "projectID"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// AddIdea handles POST /api/projects/{projectID}/intake/ideas.
// Idea versioning is append-only.
func (h *Handler) AddIdea(w http.ResponseWriter, r *http.Request) {
	var req IdeaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := h.svc.AddIdeaVersion(r.Context(), chi.URLParam(r, "projectID"), req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// AddAnalysis handles POST /api/projects/{projectID}/intake/analyses.
func (h *Handler) AddAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := h.svc.AddAnalysis(r.Context(), chi.URLParam(r, "projectID"), req.Summary, req.KeyPoints)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// GenerateQuestions handles POST /api/projects/{projectID}/intake/questions/generate.
// Classifies the latest idea and replaces the question set.
//
//	@Summary		Generate clarifying questions from the latest idea
//	@Tags			intake
//	@Produce		json
//	@Param			projectID	path		string	true	"Project id"
//	@Success		200			{object}	models.IntakeSnapshot
//	@Failure		422			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/intake/questions/generate [post]
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GenerateQuestions(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// AnswerQuestion handles POST /api/projects/{projectID}/intake/questions/{questionID}/answer.
// Last write wins for repeated submissions on the same id.
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := h.svc.AnswerQuestion(r.Context(),
		chi.URLParam(r, "projectID"), chi.URLParam(r, "questionID"), req.Answer)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
