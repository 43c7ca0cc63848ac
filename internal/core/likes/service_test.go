package likes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/posts"
)

// memoryRepository mirrors the postgres toggle: the relation is flipped
// under a lock and the count is read before the lock is released.
type memoryRepository struct {
	liked map[[2]int64]bool
	mu    sync.Mutex
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{liked: make(map[[2]int64]bool)}
}

func (r *memoryRepository) Toggle(ctx context.Context, userID, postID int64) (Outcome, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{userID, postID}
	outcome := OutcomeLiked
	if r.liked[key] {
		delete(r.liked, key)
		outcome = OutcomeUnliked
	} else {
		r.liked[key] = true
	}
	return outcome, r.count(postID), nil
}

func (r *memoryRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.liked[[2]int64{userID, postID}], nil
}

func (r *memoryRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count(postID), nil
}

func (r *memoryRepository) count(postID int64) int {
	n := 0
	for k := range r.liked {
		if k[1] == postID {
			n++
		}
	}
	return n
}

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) Toggle(ctx context.Context, userID, postID int64) (Outcome, int, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).(Outcome), args.Int(1), args.Error(2)
}

func (m *mockLikeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

// mockPostRepository only answers GetByID
type mockPostRepository struct {
	mock.Mock
	posts.Repository
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func existingPost(id int64) *mockPostRepository {
	postRepo := new(mockPostRepository)
	postRepo.On("GetByID", mock.Anything, id).Return(&posts.Post{ID: id, AuthorID: 1}, nil)
	return postRepo
}

func TestToggle_LikeThenUnlike(t *testing.T) {
	service := NewLikeService(newMemoryRepository(), existingPost(10))
	ctx := context.Background()

	res, err := service.Toggle(ctx, identity.User(2), 10)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLiked, res.Outcome)
	assert.Equal(t, 1, res.LikesCount)
	assert.Equal(t, "Post liked", res.Message())

	status, err := service.Status(ctx, identity.User(2), 10)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 1, status.LikesCount)

	res, err = service.Toggle(ctx, identity.User(2), 10)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnliked, res.Outcome)
	assert.Equal(t, 0, res.LikesCount)
	assert.Equal(t, "Post unliked", res.Message())
}

func TestToggle_CountsAcrossUsers(t *testing.T) {
	service := NewLikeService(newMemoryRepository(), existingPost(10))
	ctx := context.Background()

	for _, u := range []int64{1, 2, 3} {
		_, err := service.Toggle(ctx, identity.User(u), 10)
		require.NoError(t, err)
	}
	res, err := service.Toggle(ctx, identity.User(2), 10)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnliked, res.Outcome)
	assert.Equal(t, 2, res.LikesCount)
}

func TestToggle_ConcurrentSameUser(t *testing.T) {
	repo := newMemoryRepository()
	service := NewLikeService(repo, existingPost(10))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Toggle(context.Background(), identity.User(2), 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the relation where it started
	count, err := repo.CountByPost(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestToggle_Unauthenticated(t *testing.T) {
	repo := new(mockLikeRepository)
	postRepo := new(mockPostRepository)
	service := NewLikeService(repo, postRepo)

	_, err := service.Toggle(context.Background(), identity.Anonymous, 10)
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	repo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	postRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestToggle_PostNotFound(t *testing.T) {
	repo := new(mockLikeRepository)
	postRepo := new(mockPostRepository)
	postRepo.On("GetByID", mock.Anything, int64(9999)).Return(nil, posts.ErrNotFound)
	service := NewLikeService(repo, postRepo)

	_, err := service.Toggle(context.Background(), identity.User(2), 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)
	repo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)

	_, err = service.Toggle(context.Background(), identity.User(2), 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggle_RepositoryErrors(t *testing.T) {
	t.Run("post deleted mid-toggle", func(t *testing.T) {
		repo := new(mockLikeRepository)
		repo.On("Toggle", mock.Anything, int64(2), int64(10)).Return(Outcome(""), 0, ErrPostNotFound)
		service := NewLikeService(repo, existingPost(10))

		_, err := service.Toggle(context.Background(), identity.User(2), 10)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		storageErr := errors.New("connection refused")
		repo := new(mockLikeRepository)
		repo.On("Toggle", mock.Anything, int64(2), int64(10)).Return(Outcome(""), 0, storageErr)
		service := NewLikeService(repo, existingPost(10))

		_, err := service.Toggle(context.Background(), identity.User(2), 10)
		assert.ErrorIs(t, err, storageErr)
		assert.NotErrorIs(t, err, ErrPostNotFound)
	})
}

func TestStatus_Anonymous(t *testing.T) {
	repo := new(mockLikeRepository)
	repo.On("CountByPost", mock.Anything, int64(10)).Return(3, nil)
	service := NewLikeService(repo, existingPost(10))

	status, err := service.Status(context.Background(), identity.Anonymous, 10)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 3, status.LikesCount)
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatus_PostNotFound(t *testing.T) {
	postRepo := new(mockPostRepository)
	postRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, posts.ErrNotFound)
	repo := new(mockLikeRepository)
	service := NewLikeService(repo, postRepo)

	_, err := service.Status(context.Background(), identity.User(1), 404)
	assert.ErrorIs(t, err, ErrPostNotFound)
	repo.AssertNotCalled(t, "CountByPost", mock.Anything, mock.Anything)
}
