package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"Socialsphere/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, bio, avatar, created_at`

func scanUser(row interface{ Scan(...any) error }) (*users.User, error) {
	user := &users.User{}
	var avatar sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Bio, &avatar, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if avatar.Valid {
		user.Avatar = &avatar.String
	}
	return user, nil
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, bio, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Bio, user.Avatar).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if constraint, ok := constraintViolation(err, pqUniqueViolation); ok {
			switch constraint {
			case "users_username_key":
				return nil, users.ErrUsernameTaken
			case "users_email_key":
				return nil, users.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by exact username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetByIDs retrieves multiple users in a single query.
// Missing users are not included in the result map.
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*users.User, error) {
	if len(ids) == 0 {
		return make(map[int64]*users.User), nil
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(ids), MaxBatchSize)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by ids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := make(map[int64]*users.User, len(ids))
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result[user.ID] = user
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}

// UpdateProfile applies the non-nil fields and returns the updated row
func (r *postgresUserRepo) UpdateProfile(ctx context.Context, id int64, req users.UpdateProfileRequest) (*users.User, error) {
	// COALESCE keeps the stored value for nil fields. An empty avatar clears it.
	query := `
		UPDATE users
		SET email = COALESCE($2, email),
		    bio = COALESCE($3, bio),
		    avatar = CASE WHEN $4::text IS NULL THEN avatar ELSE NULLIF($4::text, '') END
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, req.Email, req.Bio, req.Avatar))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		if constraint, ok := constraintViolation(err, pqUniqueViolation); ok && constraint == "users_email_key" {
			return nil, users.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// CountPosts returns the number of posts authored by the user
func (r *postgresUserRepo) CountPosts(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
