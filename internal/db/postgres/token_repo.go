package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"Socialsphere/internal/auth"
)

type postgresTokenRepo struct {
	db *sql.DB
}

// NewTokenRepository creates the refresh token revocation store
func NewTokenRepository(db *sql.DB) auth.RevocationStore {
	return &postgresTokenRepo{db: db}
}

// Revoke records jti as used. It reports false when the jti was already
// revoked, which makes concurrent rotations of one token single-winner.
func (r *postgresTokenRepo) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING`, jti, expiresAt)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check revoke result: %w", err)
	}
	return rowsAffected == 1, nil
}

// PruneExpired deletes revocations whose tokens can no longer verify anyway
func PruneExpired(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to prune revoked tokens: %w", err)
	}
	return result.RowsAffected()
}
