package comment

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/feed"
)

// DetailHandler serves a single comment, either flat or nested under its post
type DetailHandler struct {
	service feed.Service
}

// NewDetailHandler creates a new comment detail handler
func NewDetailHandler(service feed.Service) *DetailHandler {
	return &DetailHandler{service: service}
}

// HandleGet handles GET /api/posts/comments/{commentID} and
// GET /api/posts/{postID}/comments/{commentID}
func (h *DetailHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, ok := scope(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "commentID")
	if !ok {
		return
	}

	view, err := h.service.GetComment(r.Context(), postID, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleUpdate handles PUT and PATCH. PUT is a full update and must carry content.
func (h *DetailHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	postID, ok := scope(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "commentID")
	if !ok {
		return
	}

	var req comments.UpdateCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	req.Replace = r.Method == http.MethodPut

	view, err := h.service.UpdateComment(r.Context(), middleware.GetPrincipal(r), postID, id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleDelete handles DELETE; 204 on success
func (h *DetailHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID, ok := scope(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), middleware.GetPrincipal(r), postID, id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
