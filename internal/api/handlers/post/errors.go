package post

import (
	"errors"
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/posts"
)

// handleServiceError maps post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *posts.ValidationError
	switch {
	case errors.Is(err, identity.ErrUnauthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication credentials were not provided.")
	case errors.Is(err, posts.ErrInvalidPage):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Invalid page.")
	case errors.Is(err, posts.ErrNotFound), errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "No Post matches the given query.")
	case errors.Is(err, posts.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "PermissionDenied", "You do not have permission to perform this action.")
	case errors.As(err, &validationErr):
		handlers.WriteValidationError(w, validationErr.Field, validationErr.Message)
	default:
		handlers.WriteInternalError(w, r, err)
	}
}
