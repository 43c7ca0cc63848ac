package like

import (
	"errors"
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/likes"
)

// ToggleResponse is the body of a toggle; status is "liked" or "unliked"
type ToggleResponse struct {
	Status     likes.Outcome `json:"status"`
	Message    string        `json:"message"`
	LikesCount int           `json:"likes_count"`
}

// ToggleHandler handles like toggles
type ToggleHandler struct {
	service likes.Service
}

// NewToggleHandler creates a new toggle handler
func NewToggleHandler(service likes.Service) *ToggleHandler {
	return &ToggleHandler{service: service}
}

// HandleToggle handles POST /api/posts/{postID}/like
// Responds 201 when the post became liked and 200 when the like was removed.
func (h *ToggleHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	result, err := h.service.Toggle(r.Context(), middleware.GetPrincipal(r), postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == likes.OutcomeLiked {
		status = http.StatusCreated
	}
	handlers.WriteJSON(w, status, ToggleResponse{
		Status:     result.Outcome,
		Message:    result.Message(),
		LikesCount: result.LikesCount,
	})
}

// HandleStatus handles GET /api/posts/{postID}/like
func (h *ToggleHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(w, r, "postID")
	if !ok {
		return
	}

	status, err := h.service.Status(r.Context(), middleware.GetPrincipal(r), postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, status)
}

// handleServiceError converts like service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, identity.ErrUnauthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication credentials were not provided.")
	case errors.Is(err, likes.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "No Post matches the given query.")
	default:
		handlers.WriteInternalError(w, r, err)
	}
}
