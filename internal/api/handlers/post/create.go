package post

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
	"Socialsphere/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service feed.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service feed.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /api/posts
//
// Request body: { "content": "...", "image": "optional reference" }
// Any author field in the body is ignored; the author is the caller.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.CreatePost(r.Context(), middleware.GetPrincipal(r), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, view)
}
