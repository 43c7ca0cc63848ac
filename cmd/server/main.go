package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/api/routes"
	"Socialsphere/internal/auth"
	"Socialsphere/internal/config"
	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/feed"
	"Socialsphere/internal/core/likes"
	"Socialsphere/internal/core/posts"
	"Socialsphere/internal/core/users"
	"Socialsphere/internal/db/migrations"
	postgresRepo "Socialsphere/internal/db/postgres"
	"Socialsphere/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}
	slog.Info("connected to database")

	if cfg.AutoMigrate {
		if err := migrations.Up(ctx, db); err != nil {
			return err
		}
		slog.Info("migrations completed")
	}

	// Rows for tokens that have expired anyway are dead weight
	if n, err := postgresRepo.PruneExpired(ctx, db, time.Now()); err != nil {
		slog.Warn("failed to prune revoked tokens", "error", err)
	} else if n > 0 {
		slog.Info("pruned revoked tokens", "count", n)
	}

	// Initialize repositories and services
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	likeRepo := postgresRepo.NewLikeRepository(db)
	engagementRepo := postgresRepo.NewEngagementRepository(db)
	tokenRepo := postgresRepo.NewTokenRepository(db)

	userService := users.NewUserService(userRepo)
	postService := posts.NewPostService(postRepo, cfg.PageSize)
	commentService := comments.NewCommentService(commentRepo, postRepo)
	likeService := likes.NewLikeService(likeRepo, postRepo)
	feedService := feed.NewFeedService(postService, commentService, userService, engagementRepo)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, tokenRepo)

	router := routes.NewRouter(routes.Dependencies{
		Feed:           feedService,
		Likes:          likeService,
		Users:          userService,
		Tokens:         issuer,
		AuthMiddleware: middleware.NewAuthMiddleware(issuer),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
