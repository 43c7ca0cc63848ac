package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"Socialsphere/internal/core/identity"
)

// Context keys for storing request identity
type contextKey string

const (
	PrincipalKey contextKey = "principal"
)

// TokenVerifier validates an access token and returns the user id it was issued to
type TokenVerifier interface {
	VerifyAccess(token string) (int64, error)
}

// AuthMiddleware resolves Bearer access tokens into an identity.Principal
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid access token with 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Authentication credentials were not provided.")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		userID, err := m.verifier.VerifyAccess(token)
		if err != nil {
			slog.WarnContext(r.Context(), "auth failure",
				"type", "verification_failed",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			writeAuthError(w, "Given token not valid for any token type")
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, identity.User(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the principal when a valid token is present.
// Requests without one, or with an invalid one, continue anonymously.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.verifier.VerifyAccess(token)
		if err != nil {
			slog.DebugContext(r.Context(), "optional auth failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, identity.User(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// GetPrincipal returns the request's principal; identity.Anonymous when unauthenticated
func GetPrincipal(r *http.Request) identity.Principal {
	p, _ := r.Context().Value(PrincipalKey).(identity.Principal)
	return p
}

// SetTestPrincipal sets an authenticated principal in the context.
// This function should ONLY be used in tests.
func SetTestPrincipal(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, PrincipalKey, identity.User(userID))
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeJSONError(w, http.StatusUnauthorized, "AuthenticationRequired", message)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	}); err != nil {
		slog.Error("failed to write error response", "error", err, "status", status)
	}
}
