package comment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/identity"
)

// handleServiceError maps comment service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *comments.ValidationError
	switch {
	case errors.Is(err, identity.ErrUnauthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication credentials were not provided.")
	case errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "No Post matches the given query.")
	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "No Comment matches the given query.")
	case errors.Is(err, comments.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "PermissionDenied", "You do not have permission to perform this action.")
	case errors.As(err, &validationErr):
		handlers.WriteValidationError(w, validationErr.Field, validationErr.Message)
	default:
		handlers.WriteInternalError(w, r, err)
	}
}

// scope returns the {postID} the comment route is nested under, or zero for
// the flat /comments/{commentID} routes
func scope(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if chi.URLParam(r, "postID") == "" {
		return 0, true
	}
	return handlers.PathID(w, r, "postID")
}
