package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Socialsphere/internal/core/likes"
	"Socialsphere/internal/core/posts"
)

func TestLikeRepo_Toggle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db)
	fan := createTestUser(t, db)
	post := &posts.Post{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, NewPostRepository(db).Create(ctx, post))

	repo := NewLikeRepository(db)

	outcome, count, err := repo.Toggle(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, likes.OutcomeLiked, outcome)
	assert.Equal(t, 1, count)

	exists, err := repo.Exists(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	liked, err := NewEngagementRepository(db).LikedPosts(ctx, fan.ID, []int64{post.ID})
	require.NoError(t, err)
	assert.True(t, liked[post.ID])

	outcome, count, err = repo.Toggle(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, likes.OutcomeUnliked, outcome)
	assert.Equal(t, 0, count)
}

func TestLikeRepo_ToggleMissingPost(t *testing.T) {
	db := setupTestDB(t)
	fan := createTestUser(t, db)

	_, _, err := NewLikeRepository(db).Toggle(context.Background(), fan.ID, -1)
	assert.ErrorIs(t, err, likes.ErrPostNotFound)
}

func TestLikeRepo_ToggleMissingUserIsNotMissingPost(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db)
	post := &posts.Post{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, NewPostRepository(db).Create(ctx, post))

	_, _, err := NewLikeRepository(db).Toggle(ctx, -1, post.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, likes.ErrPostNotFound)
}

func TestLikeRepo_ConcurrentToggles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db)
	fan := createTestUser(t, db)
	post := &posts.Post{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, NewPostRepository(db).Create(ctx, post))

	repo := NewLikeRepository(db)

	const n = 40
	outcomes := make([]likes.Outcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, _, err := repo.Toggle(ctx, fan.ID, post.ID)
			assert.NoError(t, err)
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	var liked, unliked int
	for _, o := range outcomes {
		switch o {
		case likes.OutcomeLiked:
			liked++
		case likes.OutcomeUnliked:
			unliked++
		}
	}
	// Toggles serialize: likes and unlikes alternate, never two likes in a row
	assert.Equal(t, n/2, liked)
	assert.Equal(t, n/2, unliked)

	count, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
