package users

import (
	"time"
)

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Bio          string    `json:"bio" db:"bio"`
	Avatar       *string   `json:"avatar" db:"avatar"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// Public returns the projection embedded as "author" in posts and comments
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// PublicUser is the subset of a user visible to everyone
type PublicUser struct {
	Avatar   *string `json:"avatar"`
	Username string  `json:"username"`
	ID       int64   `json:"id"`
}

// Profile is a user with aggregated statistics
type Profile struct {
	User
	PostsCount int `json:"posts_count"`
}

// RegisterRequest is the input for account registration
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginRequest is the input for exchanging credentials for tokens
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Email  *string `json:"email,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}
