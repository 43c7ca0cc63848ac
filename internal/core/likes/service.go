package likes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/posts"
)

type likeService struct {
	repo     Repository
	postRepo posts.Repository
}

// NewLikeService creates a new like service
func NewLikeService(repo Repository, postRepo posts.Repository) Service {
	return &likeService{
		repo:     repo,
		postRepo: postRepo,
	}
}

func (s *likeService) Toggle(ctx context.Context, principal identity.Principal, postID int64) (*ToggleResult, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	outcome, count, err := s.repo.Toggle(ctx, principal.UserID, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	slog.DebugContext(ctx, "like toggled",
		"post_id", postID, "user_id", principal.UserID, "outcome", outcome, "likes_count", count)
	return &ToggleResult{Outcome: outcome, LikesCount: count}, nil
}

func (s *likeService) Status(ctx context.Context, principal identity.Principal, postID int64) (*Status, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	status := &Status{LikesCount: count}
	if principal.Authenticated() {
		status.Liked, err = s.repo.Exists(ctx, principal.UserID, postID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like: %w", err)
		}
	}
	return status, nil
}

func (s *likeService) requirePost(ctx context.Context, postID int64) error {
	if postID <= 0 {
		return ErrPostNotFound
	}
	_, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, posts.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	return nil
}
