package post

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service feed.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service feed.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/posts/{postID}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), middleware.GetPrincipal(r), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
