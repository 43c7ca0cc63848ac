package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"Socialsphere/internal/core/identity"
)

type postService struct {
	repo     Repository
	pageSize int
}

// NewPostService creates a new post service. pageSize must be positive.
func NewPostService(repo Repository, pageSize int) Service {
	if pageSize < 1 {
		pageSize = 10
	}
	return &postService{
		repo:     repo,
		pageSize: pageSize,
	}
}

// List returns one page of posts, newest first
func (s *postService) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	// Page 1 always exists, even when empty. Compare page numbers, not
	// offsets, so huge pages cannot overflow.
	if page > 1 && (total == 0 || page-1 > (total-1)/s.pageSize) {
		return nil, ErrInvalidPage
	}
	offset := (page - 1) * s.pageSize

	list, err := s.repo.List(ctx, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &Page{Posts: list, Total: total, Number: page, Size: s.pageSize}, nil
}

// Create stores a new post authored by the principal
func (s *postService) Create(ctx context.Context, principal identity.Principal, req CreatePostRequest) (*Post, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}
	if err := validateImage(req.Image); err != nil {
		return nil, err
	}

	post := &Post{
		AuthorID: principal.UserID,
		Content:  req.Content,
		Image:    normalizeImage(req.Image),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.DebugContext(ctx, "post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

// Get retrieves a post by id
func (s *postService) Get(ctx context.Context, id int64) (*Post, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Update changes a post's content and/or image; only the author may do so
func (s *postService) Update(ctx context.Context, principal identity.Principal, id int64, req UpdatePostRequest) (*Post, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	post, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if req.Replace && req.Content == nil {
		return nil, NewValidationError("content", "This field is required.")
	}
	if req.Content != nil {
		if err := validateContent(*req.Content); err != nil {
			return nil, err
		}
		post.Content = *req.Content
	}
	switch {
	case req.ClearImage:
		post.Image = nil
	case req.Image != nil:
		if err := validateImage(req.Image); err != nil {
			return nil, err
		}
		post.Image = normalizeImage(req.Image)
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes a post; only the author may do so
func (s *postService) Delete(ctx context.Context, principal identity.Principal, id int64) error {
	if !principal.Authenticated() {
		return identity.ErrUnauthenticated
	}

	if _, err := s.loadOwned(ctx, principal, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	slog.DebugContext(ctx, "post deleted", "post_id", id, "author_id", principal.UserID)
	return nil
}

// loadOwned checks existence first, then ownership
func (s *postService) loadOwned(ctx context.Context, principal identity.Principal, id int64) (*Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.Is(post.AuthorID) {
		return nil, ErrForbidden
	}
	return post, nil
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

func validateImage(image *string) error {
	if image != nil && strings.ContainsRune(*image, 0) {
		return NewValidationError("image", "Null characters are not allowed.")
	}
	if image != nil && utf8.RuneCountInString(*image) > MaxImageLength {
		return NewValidationError("image", fmt.Sprintf("Ensure this field has no more than %d characters.", MaxImageLength))
	}
	return nil
}

// normalizeImage treats an empty reference as no image
func normalizeImage(image *string) *string {
	if image == nil || strings.TrimSpace(*image) == "" {
		return nil
	}
	v := strings.TrimSpace(*image)
	return &v
}
