package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"Socialsphere/internal/core/users"
	"Socialsphere/internal/db/migrations"
)

// setupTestDB connects to TEST_DATABASE_URL and runs migrations.
// Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db), "Failed to run migrations")
	return db
}

var userSeq atomic.Int64

// createTestUser inserts a user with a unique username; deleting it cascades
// to everything the test created
func createTestUser(t *testing.T, db *sql.DB) *users.User {
	t.Helper()
	n := userSeq.Add(1)
	name := fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), n)
	user, err := NewUserRepository(db).Create(context.Background(), &users.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}
