package user

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/users"
)

// ProfileHandler serves the current user and public profiles
type ProfileHandler struct {
	userService users.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService users.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// HandleMe handles GET /api/users/me
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetMe(r.Context(), middleware.GetPrincipal(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user)
}

// HandleGetOwn handles GET /api/users/profile
func (h *ProfileHandler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetOwnProfile(r.Context(), middleware.GetPrincipal(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleUpdateOwn handles PATCH /api/users/profile
//
// Request body: any of { "email", "bio", "avatar" }
func (h *ProfileHandler) HandleUpdateOwn(w http.ResponseWriter, r *http.Request) {
	var req users.UpdateProfileRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), middleware.GetPrincipal(r), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, profile)
}

// publicProfile hides the email of other users
type publicProfile struct {
	users.PublicUser
	CreatedAt  time.Time `json:"created_at"`
	Bio        string    `json:"bio"`
	PostsCount int       `json:"posts_count"`
}

// HandleGetByUsername handles GET /api/users/{username}
func (h *ProfileHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, publicProfile{
		PublicUser: profile.Public(),
		Bio:        profile.Bio,
		CreatedAt:  profile.CreatedAt,
		PostsCount: profile.PostsCount,
	})
}
