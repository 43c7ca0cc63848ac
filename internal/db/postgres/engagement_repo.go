package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"Socialsphere/internal/core/feed"
)

type postgresEngagementRepo struct {
	db *sql.DB
}

// NewEngagementRepository creates the batch reader for like and comment counts
func NewEngagementRepository(db *sql.DB) feed.EngagementReader {
	return &postgresEngagementRepo{db: db}
}

// PostStats counts likes and comments for each id with one query.
// Every requested id is present in the result.
func (r *postgresEngagementRepo) PostStats(ctx context.Context, postIDs []int64) (map[int64]feed.Stats, error) {
	result := make(map[int64]feed.Stats, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	if len(postIDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), MaxBatchSize)
	}

	query := `
		SELECT ids.id,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = ids.id) AS likes_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = ids.id) AS comments_count
		FROM unnest($1::bigint[]) AS ids(id)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query post stats: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		var id int64
		var st feed.Stats
		if err := rows.Scan(&id, &st.Likes, &st.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan post stats: %w", err)
		}
		result[id] = st
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post stats: %w", err)
	}
	return result, nil
}

// LikedPosts returns which of postIDs the user has liked
func (r *postgresEngagementRepo) LikedPosts(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	if len(postIDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), MaxBatchSize)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`,
		userID, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query liked posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked post: %w", err)
		}
		result[id] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liked posts: %w", err)
	}
	return result, nil
}
