package post

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
	"Socialsphere/internal/core/posts"
)

type updateInput struct {
	Content *string                 `json:"content"`
	Image   handlers.OptionalString `json:"image"`
}

// UpdateHandler handles PUT and PATCH on a post
type UpdateHandler struct {
	service feed.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service feed.Service) *UpdateHandler {
	return &UpdateHandler{service: service}
}

// HandleUpdate handles PUT/PATCH /api/posts/{postID}
// PUT is a full update and must carry content; PATCH applies only the fields present. "image": null clears the image.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	var in updateInput
	if !handlers.DecodeJSON(w, r, &in) {
		return
	}
	req := posts.UpdatePostRequest{Content: in.Content, Replace: r.Method == http.MethodPut}
	if in.Image.Set {
		if in.Image.Value == nil {
			req.ClearImage = true
		} else {
			req.Image = in.Image.Value
		}
	}

	view, err := h.service.UpdatePost(r.Context(), middleware.GetPrincipal(r), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}
