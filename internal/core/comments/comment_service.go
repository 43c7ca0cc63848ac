package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/posts"
)

// commentService implements the Service interface
type commentService struct {
	commentRepo Repository       // Comment data access
	postRepo    posts.Repository // Parent post existence checks
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo Repository, postRepo posts.Repository) Service {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListForPost returns a post's comments, oldest first
func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]*Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	list, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return list, nil
}

// Create adds a comment to an existing post
func (s *commentService) Create(ctx context.Context, principal identity.Principal, postID int64, req CreateCommentRequest) (*Comment, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	comment := &Comment{
		AuthorID: principal.UserID,
		PostID:   postID,
		Content:  req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.DebugContext(ctx, "comment created",
		"comment_id", comment.ID, "post_id", postID, "author_id", principal.UserID)
	return comment, nil
}

// Get retrieves a comment by id
func (s *commentService) Get(ctx context.Context, id int64) (*Comment, error) {
	if id <= 0 {
		return nil, ErrCommentNotFound
	}
	return s.commentRepo.GetByID(ctx, id)
}

// Update edits a comment's content; only the author may do so
func (s *commentService) Update(ctx context.Context, principal identity.Principal, id int64, req UpdateCommentRequest) (*Comment, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	comment, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if req.Content == nil {
		if req.Replace {
			return nil, NewValidationError("content", "This field is required.")
		}
		return comment, nil
	}
	if err := validateContent(*req.Content); err != nil {
		return nil, err
	}
	comment.Content = *req.Content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment; only the author may do so
func (s *commentService) Delete(ctx context.Context, principal identity.Principal, id int64) error {
	if !principal.Authenticated() {
		return identity.ErrUnauthenticated
	}

	if _, err := s.loadOwned(ctx, principal, id); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// loadOwned checks existence first, then ownership
func (s *commentService) loadOwned(ctx context.Context, principal identity.Principal, id int64) (*Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.Is(comment.AuthorID) {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *commentService) requirePost(ctx context.Context, postID int64) error {
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

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "This field may not be blank.")
	}
	if strings.ContainsRune(content, 0) {
		return NewValidationError("content", "Null characters are not allowed.")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return NewValidationError("content", fmt.Sprintf("Ensure this field has no more than %d characters.", MaxContentLength))
	}
	return nil
}
