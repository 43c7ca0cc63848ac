package comment

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/feed"
)

// ListHandler lists and creates comments under a post
type ListHandler struct {
	service feed.Service
}

// NewListHandler creates a new comment list handler
func NewListHandler(service feed.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/posts/{postID}/comments
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	list, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /api/posts/{postID}/comments
//
// Request body: { "content": "..." }
func (h *ListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	var req comments.CreateCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.CreateComment(r.Context(), middleware.GetPrincipal(r), postID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, view)
}
