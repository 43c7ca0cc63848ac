package user

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/auth"
	"Socialsphere/internal/core/users"
)

// LoginResponse carries the token pair and the authenticated user
type LoginResponse struct {
	User *users.User `json:"user"`
	auth.TokenPair
}

// TokenHandler exchanges credentials and refresh tokens for token pairs
type TokenHandler struct {
	userService users.UserService
	tokens      TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(userService users.UserService, tokens TokenService) *TokenHandler {
	return &TokenHandler{userService: userService, tokens: tokens}
}

// HandleLogin handles POST /api/users/login
func (h *TokenHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" {
		handlers.WriteValidationError(w, "username", "This field is required.")
		return
	}
	if req.Password == "" {
		handlers.WriteValidationError(w, "password", "This field is required.")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	pair, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, LoginResponse{TokenPair: pair, User: user})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// HandleRefresh handles POST /api/users/token/refresh
// The presented refresh token is single-use; a new pair is returned.
func (h *TokenHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		handlers.WriteValidationError(w, "refresh", "This field is required.")
		return
	}

	pair, _, err := h.tokens.Rotate(r.Context(), req.Refresh)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, pair)
}
