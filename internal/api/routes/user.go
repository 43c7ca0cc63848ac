package routes

import (
	"github.com/go-chi/chi/v5"

	"Socialsphere/internal/api/handlers/user"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/users"
)

// RegisterUserRoutes registers account, token and profile endpoints under /users
func RegisterUserRoutes(r chi.Router, service users.UserService, tokens user.TokenService, authMiddleware *middleware.AuthMiddleware) {
	registerHandler := user.NewRegisterHandler(service)
	tokenHandler := user.NewTokenHandler(service, tokens)
	profileHandler := user.NewProfileHandler(service)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", registerHandler.HandleRegister)
		r.Post("/login", tokenHandler.HandleLogin)
		r.Post("/token/refresh", tokenHandler.HandleRefresh)

		r.With(authMiddleware.RequireAuth).Get("/me", profileHandler.HandleMe)
		r.With(authMiddleware.RequireAuth).Get("/profile", profileHandler.HandleGetOwn)
		r.With(authMiddleware.RequireAuth).Patch("/profile", profileHandler.HandleUpdateOwn)

		r.Get("/{username}", profileHandler.HandleGetByUsername)
	})
}
