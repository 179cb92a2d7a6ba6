package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/models"
)

func (h *Handler) currentCard(ctx context.Context, projectID, cardID string) *models.KanbanCard {
	cards, err := h.svc.ListCards(ctx, projectID)
	if err != nil {
		return nil
	}
	for i := range cards {
		if cards[i].ID == cardID {
			return &cards[i]
		}
	}
	return nil
}

// ListCards handles GET /api/projects/{projectID}/cards.
//
//	@Summary		List a project's Kanban cards
//	@Tags			cards
//	@Produce		json
//	@Param			projectID	path		string	true	"Project id"
//	@Success		200			{object}	CardListResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/cards [get]
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.ListCards(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if cards == nil {
		cards = []models.KanbanCard{}
	}
	writeJSON(w, http.StatusOK, CardListResponse{Cards: cards})
}

// CreateCard handles POST /api/projects/{projectID}/cards.
//
//	@Summary		Create a card (defaults: lane=proposed, priority=P2)
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string				true	"Project id"
//	@Param			body		body		models.CardCreate	true	"Card to create"
//	@Success		201			{object}	models.KanbanCard
//	@Failure		422			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/cards [post]
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req models.CardCreate
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.svc.CreateCard(r.Context(), chi.URLParam(r, "projectID"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCard handles PATCH /api/projects/{projectID}/cards/{cardID}.
// A lane change appends one history record; on failure the response
// carries the committed card under "current".
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	cardID := chi.URLParam(r, "cardID")
	var req models.CardPatch
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.svc.UpdateCard(r.Context(), projectID, cardID, req)
	if err != nil {
		writeErrWith(w, err, h.currentCard(r.Context(), projectID, cardID))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCard handles DELETE /api/projects/{projectID}/cards/{cardID}.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteCard(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "cardID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
