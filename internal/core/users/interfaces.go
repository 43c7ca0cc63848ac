package users

import (
	"context"

	"Socialsphere/internal/core/identity"
)

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts the user and fills ID and CreatedAt.
	// Returns ErrUsernameTaken or ErrEmailTaken on unique violations.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByIDs retrieves multiple users in a single query.
	// Missing users are not included in the result map.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*User, error)

	// UpdateProfile applies the non-nil fields and returns the updated row
	UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*User, error)

	// CountPosts returns the number of posts authored by the user
	CountPosts(ctx context.Context, id int64) (int, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate checks a username/password pair, returning ErrInvalidCredentials on mismatch
	Authenticate(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id int64) (*User, error)

	// GetMe returns the principal's own record
	GetMe(ctx context.Context, principal identity.Principal) (*User, error)

	// GetProfile returns a user's profile with posts_count by username
	GetProfile(ctx context.Context, username string) (*Profile, error)

	// GetOwnProfile returns the principal's profile with posts_count
	GetOwnProfile(ctx context.Context, principal identity.Principal) (*Profile, error)

	UpdateProfile(ctx context.Context, principal identity.Principal, req UpdateProfileRequest) (*Profile, error)

	// GetPublicByIDs resolves author projections in batch
	GetPublicByIDs(ctx context.Context, ids []int64) (map[int64]PublicUser, error)
}
