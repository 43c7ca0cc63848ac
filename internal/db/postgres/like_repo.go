package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"Socialsphere/internal/core/likes"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Toggle flips the (user, post) like inside one transaction.
//
// Toggles of the same pair queue on a transaction-scoped advisory lock, so
// each one sees every earlier toggle committed. The DELETE runs first: if a
// row goes away the toggle is an unlike, otherwise the INSERT likes. Of two
// racing toggles one likes and the other unlikes. The count is read before
// commit.
func (r *postgresLikeRepo) Toggle(ctx context.Context, userID, postID int64) (likes.Outcome, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction",
				slog.Int64("user_id", userID),
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()),
			)
		}
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		fmt.Sprintf("likes:%d:%d", userID, postID)); err != nil {
		return "", 0, fmt.Errorf("failed to lock like: %w", err)
	}

	outcome, err := toggleInTx(ctx, tx, userID, postID)
	if err != nil {
		return "", 0, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return "", 0, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("failed to commit like toggle: %w", err)
	}
	return outcome, count, nil
}

func toggleInTx(ctx context.Context, tx *sql.Tx, userID, postID int64) (likes.Outcome, error) {
	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return "", fmt.Errorf("failed to delete like: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to check delete result: %w", err)
	}
	if deleted > 0 {
		return likes.OutcomeUnliked, nil
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING id`, userID, postID).Scan(&id)
	if isPostForeignKeyViolation(err, likesPostFKey) {
		return "", likes.ErrPostNotFound
	}
	if err != nil {
		// sql.ErrNoRows here means a writer bypassed the advisory lock
		return "", fmt.Errorf("failed to insert like: %w", err)
	}
	return likes.OutcomeLiked, nil
}

func (r *postgresLikeRepo) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`,
		userID, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

func (r *postgresLikeRepo) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
