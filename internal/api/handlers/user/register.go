package user

import (
	"net/http"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/core/users"
)

// RegisterHandler handles account registration
type RegisterHandler struct {
	userService users.UserService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(userService users.UserService) *RegisterHandler {
	return &RegisterHandler{userService: userService}
}

// HandleRegister handles POST /api/users/register
//
// Request body: { "username", "email", "password", "password_confirm" }
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, user)
}
