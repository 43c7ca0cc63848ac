package routes

import (
	"github.com/go-chi/chi/v5"

	"Socialsphere/internal/api/handlers/comment"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
)

// RegisterCommentRoutes registers the comment endpoints nested under a post
func RegisterCommentRoutes(r chi.Router, service feed.Service, authMiddleware *middleware.AuthMiddleware) {
	listHandler := comment.NewListHandler(service)

	r.Get("/comments", listHandler.HandleList)
	r.With(authMiddleware.RequireAuth).Post("/comments", listHandler.HandleCreate)

	registerCommentDetailRoutes(r, "/comments/{commentID}", service, authMiddleware)
}

func registerCommentDetailRoutes(r chi.Router, pattern string, service feed.Service, authMiddleware *middleware.AuthMiddleware) {
	detailHandler := comment.NewDetailHandler(service)

	r.Get(pattern, detailHandler.HandleGet)
	r.With(authMiddleware.RequireAuth).Put(pattern, detailHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Patch(pattern, detailHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete(pattern, detailHandler.HandleDelete)
}
