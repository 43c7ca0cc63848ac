package post

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
)

// GetHandler handles post detail requests
type GetHandler struct {
	service feed.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service feed.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /api/posts/{postID}
// The response embeds the post's comments, oldest first.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	detail, err := h.service.GetPost(r.Context(), middleware.GetPrincipal(r), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, detail)
}
