package posts

import (
	"context"

	"Socialsphere/internal/core/identity"
)

// Service defines the business logic interface for posts.
// Every mutation takes the principal explicitly; ownership is checked after existence.
type Service interface {
	// List returns one page of posts, newest first. Pages are 1-based.
	List(ctx context.Context, page int) (*Page, error)

	// Create stores a post authored by the principal
	Create(ctx context.Context, principal identity.Principal, req CreatePostRequest) (*Post, error)

	Get(ctx context.Context, id int64) (*Post, error)

	// Update changes content/image. NotFound before Forbidden before validation.
	Update(ctx context.Context, principal identity.Principal, id int64, req UpdatePostRequest) (*Post, error)

	// Delete removes the post; comments and likes go with it
	Delete(ctx context.Context, principal identity.Principal, id int64) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts the post and fills ID, CreatedAt and UpdatedAt
	Create(ctx context.Context, post *Post) error

	// GetByID returns ErrNotFound for unknown ids
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Update persists Content and Image and bumps UpdatedAt
	Update(ctx context.Context, post *Post) error

	// Delete removes the row; the schema cascades to comments and likes
	Delete(ctx context.Context, id int64) error

	// List returns posts ordered by created_at DESC, id DESC
	List(ctx context.Context, limit, offset int) ([]*Post, error)

	Count(ctx context.Context) (int, error)
}
