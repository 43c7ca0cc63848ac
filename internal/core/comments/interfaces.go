package comments

import (
	"context"

	"Socialsphere/internal/core/identity"
)

// Service defines the business logic interface for comments
type Service interface {
	// ListForPost returns the post's comments oldest first; ErrPostNotFound for unknown posts
	ListForPost(ctx context.Context, postID int64) ([]*Comment, error)

	// Create adds a comment by the principal to an existing post
	Create(ctx context.Context, principal identity.Principal, postID int64, req CreateCommentRequest) (*Comment, error)

	Get(ctx context.Context, id int64) (*Comment, error)

	// Update edits a comment. NotFound before Forbidden before validation.
	Update(ctx context.Context, principal identity.Principal, id int64, req UpdateCommentRequest) (*Comment, error)

	Delete(ctx context.Context, principal identity.Principal, id int64) error
}

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts the comment and fills ID and timestamps.
	// Returns ErrPostNotFound when the post vanished (foreign key violation).
	Create(ctx context.Context, comment *Comment) error

	// GetByID returns ErrCommentNotFound for unknown ids
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// Update persists Content and bumps UpdatedAt
	Update(ctx context.Context, comment *Comment) error

	Delete(ctx context.Context, id int64) error

	// ListByPost returns comments ordered by created_at ASC, id ASC
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)
}
