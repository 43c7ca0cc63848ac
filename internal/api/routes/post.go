package routes

import (
	"github.com/go-chi/chi/v5"

	"Socialsphere/internal/api/handlers/like"
	"Socialsphere/internal/api/handlers/post"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
	"Socialsphere/internal/core/likes"
)

// RegisterPostRoutes registers post, comment and like endpoints under /posts.
// Reads accept anonymous callers; writes require a valid access token.
func RegisterPostRoutes(r chi.Router, service feed.Service, likeService likes.Service, authMiddleware *middleware.AuthMiddleware) {
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	toggleHandler := like.NewToggleHandler(likeService)

	r.Route("/posts", func(r chi.Router) {
		r.With(authMiddleware.OptionalAuth).Get("/", listHandler.HandleList)
		r.With(authMiddleware.RequireAuth).Post("/", createHandler.HandleCreate)

		// Flat comment routes; the static segment wins over /{postID}
		registerCommentDetailRoutes(r, "/comments/{commentID}", service, authMiddleware)

		r.Route("/{postID}", func(r chi.Router) {
			r.With(authMiddleware.OptionalAuth).Get("/", getHandler.HandleGet)
			r.With(authMiddleware.RequireAuth).Put("/", updateHandler.HandleUpdate)
			r.With(authMiddleware.RequireAuth).Patch("/", updateHandler.HandleUpdate)
			r.With(authMiddleware.RequireAuth).Delete("/", deleteHandler.HandleDelete)

			r.With(authMiddleware.OptionalAuth).Get("/like", toggleHandler.HandleStatus)
			r.With(authMiddleware.RequireAuth).Post("/like", toggleHandler.HandleToggle)

			RegisterCommentRoutes(r, service, authMiddleware)
		})
	})
}
