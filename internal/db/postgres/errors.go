package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories translate into domain errors
const (
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqCheckViolation      pq.ErrorCode = "23514"
)

// constraintViolation returns the violated constraint name when err is a pq
// error with the given code
func constraintViolation(err error, code pq.ErrorCode) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != code {
		return "", false
	}
	return pqErr.Constraint, true
}

// Foreign keys naming a post. Postgres derives these names from the
// REFERENCES clauses in the migrations.
const (
	likesPostFKey    = "likes_post_id_fkey"
	commentsPostFKey = "comments_post_id_fkey"
)

// isPostForeignKeyViolation reports whether err is a foreign key violation on
// the given post constraint. Violations of any other key are not a missing post.
func isPostForeignKeyViolation(err error, constraint string) bool {
	name, ok := constraintViolation(err, pqForeignKeyViolation)
	return ok && name == constraint
}

// MaxBatchSize bounds the id lists passed to ANY($1) lookups
const MaxBatchSize = 1000
