package user

import (
	"context"
	"errors"
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/auth"
	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/users"
)

// TokenService mints and rotates token pairs
type TokenService interface {
	IssuePair(userID int64) (auth.TokenPair, error)
	Rotate(ctx context.Context, refreshToken string) (auth.TokenPair, int64, error)
}

// handleServiceError maps user and auth errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *users.ValidationError
	switch {
	case errors.Is(err, identity.ErrUnauthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication credentials were not provided.")
	case errors.Is(err, users.ErrInvalidCredentials):
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidCredentials", users.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenRevoked):
		handlers.WriteError(w, http.StatusUnauthorized, "TokenNotValid", "Token is invalid or expired")
	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "No User matches the given query.")
	case errors.As(err, &validationErr):
		handlers.WriteValidationError(w, validationErr.Field, validationErr.Message)
	default:
		handlers.WriteInternalError(w, r, err)
	}
}
