package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/tree"
)

func (h *Handler) currentNode(ctx context.Context, projectID, nodeID string) *models.FeatureNode {
	nodes, err := h.svc.GetTree(ctx, projectID)
	if err != nil {
		return nil
	}
	for i := range nodes {
		if nodes[i].ID == nodeID {
			return &nodes[i]
		}
	}
	return nil
}

// GetTree handles GET /api/projects/{projectID}/tree. The flat,
// parent-referenced collection is the wire shape; pass ?shape=nested to
// get the reconstructed hierarchy instead.
//
//	@Summary		Get a project's feature tree
//	@Tags			tree
//	@Produce		json
//	@Param			projectID	path		string	true	"Project id"
//	@Param			shape		query		string	false	"flat (default) or nested"
//	@Success		200			{object}	TreeResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/tree [get]
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.GetTree(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if r.URL.Query().Get("shape") == "nested" {
		roots := tree.Build(nodes)
		if roots == nil {
			roots = []*tree.Node{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"roots": roots})
		return
	}
	if nodes == nil {
		nodes = []models.FeatureNode{}
	}
	writeJSON(w, http.StatusOK, TreeResponse{Nodes: nodes})
}

// CreateTreeNode handles POST /api/projects/{projectID}/tree.
//
//	@Summary		Create a feature node
//	@Tags			tree
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path		string				true	"Project id"
//	@Param			body		body		models.NodeCreate	true	"Node to create"
//	@Success		201			{object}	models.FeatureNode
//	@Failure		409			{object}	errResponse
//	@Failure		422			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/tree [post]
func (h *Handler) CreateTreeNode(w http.ResponseWriter, r *http.Request) {
	var req models.NodeCreate
	if !decodeBody(w, r, &req) {
		return
	}
	n, err := h.svc.CreateTreeNode(r.Context(), chi.URLParam(r, "projectID"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// UpdateTreeNode handles PATCH /api/projects/{projectID}/tree/{nodeID}.
// On failure the response carries the committed node under "current".
func (h *Handler) UpdateTreeNode(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	nodeID := chi.URLParam(r, "nodeID")
	var req models.NodePatch
	if !decodeBody(w, r, &req) {
		return
	}
	n, err := h.svc.UpdateTreeNode(r.Context(), projectID, nodeID, req)
	if err != nil {
		writeErrWith(w, err, h.currentNode(r.Context(), projectID, nodeID))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// DeleteTreeNode handles DELETE /api/projects/{projectID}/tree/{nodeID}.
// The node's descendants are deleted with it and surviving dependsOn
// edges referencing the deleted subtree are detached.
func (h *Handler) DeleteTreeNode(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteTreeNode(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "nodeID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SynthesizeTree handles POST /api/projects/{projectID}/tree/synthesize.
//
//	@Summary		Synthesize the seed feature tree from the latest idea
//	@Tags			tree
//	@Produce		json
//	@Success		201	{object}	TreeResponse
//	@Failure		422	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/projects/{projectID}/tree/synthesize [post]
func (h *Handler) SynthesizeTree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.SynthesizeTree(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TreeResponse{Nodes: nodes})
}

// GetFeatureIntake handles GET /api/projects/{projectID}/tree/{nodeID}/intake.
func (h *Handler) GetFeatureIntake(w http.ResponseWriter, r *http.Request) {
	fi, err := h.svc.GetFeatureIntake(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "nodeID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fi)
}

// SetFeatureIntake handles PUT /api/projects/{projectID}/tree/{nodeID}/intake.
// Status is derived server-side from the answered/total ratio.
func (h *Handler) SetFeatureIntake(w http.ResponseWriter, r *http.Request) {
	var req models.FeatureIntake
	if !decodeBody(w, r, &req) {
		return
	}
	fi, err := h.svc.SetFeatureIntake(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "nodeID"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fi)
}
