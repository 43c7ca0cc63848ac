package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Socialsphere/internal/api/handlers/user"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
	"Socialsphere/internal/core/likes"
	"Socialsphere/internal/core/users"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Feed           feed.Service
	Likes          likes.Service
	Users          users.UserService
	Tokens         user.TokenService
	AuthMiddleware *middleware.AuthMiddleware
	AllowedOrigins []string
}

// NewRouter builds the full HTTP handler: middleware stack, /health and /api
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		RegisterPostRoutes(r, deps.Feed, deps.Likes, deps.AuthMiddleware)
		RegisterUserRoutes(r, deps.Users, deps.Tokens, deps.AuthMiddleware)
	})

	return r
}
