package likes

import (
	"context"

	"Socialsphere/internal/core/identity"
)

// Service defines the business logic interface for likes
type Service interface {
	// Toggle likes the post if the principal hasn't, otherwise removes the like.
	// Concurrent toggles by the same user serialize: one likes, the next unlikes.
	Toggle(ctx context.Context, principal identity.Principal, postID int64) (*ToggleResult, error)

	// Status reports the like count and whether the principal likes the post.
	// Anonymous callers always get Liked false.
	Status(ctx context.Context, principal identity.Principal, postID int64) (*Status, error)
}

// Repository defines the data access interface for likes
type Repository interface {
	// Toggle flips the (user, post) relation atomically and returns the new
	// like count. Returns ErrPostNotFound when the post is gone.
	Toggle(ctx context.Context, userID, postID int64) (Outcome, int, error)

	Exists(ctx context.Context, userID, postID int64) (bool, error)

	CountByPost(ctx context.Context, postID int64) (int, error)
}
