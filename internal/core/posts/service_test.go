package posts

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Socialsphere/internal/core/identity"
)

// fakeRepository is an in-memory Repository
type fakeRepository struct {
	posts   map[int64]*Post
	now     time.Time
	listErr error
	nextID  int64
	calls   map[string]int
	mu      sync.Mutex
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		posts: make(map[int64]*Post),
		now:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		calls: make(map[string]int),
	}
}

func (r *fakeRepository) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *fakeRepository) Create(ctx context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Create"]++
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = r.tick()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepository) Update(ctx context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Update"]++
	stored, ok := r.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Content = post.Content
	stored.Image = post.Image
	stored.UpdatedAt = r.tick()
	post.UpdatedAt = stored.UpdatedAt
	post.CreatedAt = stored.CreatedAt
	post.AuthorID = stored.AuthorID
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Delete"]++
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeRepository) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	all := make([]*Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []*Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts), nil
}

const (
	alice int64 = 1
	bob   int64 = 2
)

func strPtr(s string) *string { return &s }

func createPost(t *testing.T, s Service, author int64, content string) *Post {
	t.Helper()
	p, err := s.Create(context.Background(), identity.User(author), CreatePostRequest{Content: content})
	require.NoError(t, err)
	return p
}

func TestCreate(t *testing.T) {
	repo := newFakeRepository()
	s := NewPostService(repo, 10)

	post, err := s.Create(context.Background(), identity.User(alice), CreatePostRequest{
		Content: "hello",
		Image:   strPtr("posts/cat.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, alice, post.AuthorID)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, "posts/cat.png", *post.Image)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestCreate_Unauthenticated(t *testing.T) {
	repo := newFakeRepository()
	s := NewPostService(repo, 10)

	_, err := s.Create(context.Background(), identity.Anonymous, CreatePostRequest{Content: "hello"})
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	assert.Zero(t, repo.calls["Create"])
}

func TestCreate_ContentValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \n\t", true},
		{"exactly max", strings.Repeat("a", MaxContentLength), false},
		{"over max", strings.Repeat("a", MaxContentLength+1), true},
		{"null character", "hi\x00there", true},
		// Length counts code points, not bytes
		{"multibyte at max", strings.Repeat("é", MaxContentLength), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostService(newFakeRepository(), 10)
			_, err := s.Create(context.Background(), identity.User(alice), CreatePostRequest{Content: tt.content})
			if tt.wantErr {
				assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreate_NullCharactersNeverReachStorage(t *testing.T) {
	repo := newFakeRepository()
	s := NewPostService(repo, 10)

	_, err := s.Create(context.Background(), identity.User(alice), CreatePostRequest{Content: "hi\x00there"})
	assert.True(t, IsValidationError(err))

	_, err = s.Create(context.Background(), identity.User(alice), CreatePostRequest{Content: "hi", Image: strPtr("a\x00.png")})
	assert.True(t, IsValidationError(err))
	assert.Zero(t, repo.calls["Create"])

	post := createPost(t, s, alice, "hello")
	_, err = s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{Content: strPtr("\x00")})
	assert.True(t, IsValidationError(err))
	assert.Zero(t, repo.calls["Update"])
}

func TestCreate_EmptyImageIsNil(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)
	post, err := s.Create(context.Background(), identity.User(alice), CreatePostRequest{Content: "x", Image: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, post.Image)
}

func TestGet_NotFound(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)

	for _, id := range []int64{0, -1, 9999} {
		_, err := s.Get(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	repo := newFakeRepository()
	s := NewPostService(repo, 10)
	post := createPost(t, s, alice, "hello")

	_, err := s.Update(context.Background(), identity.User(bob), post.ID, UpdatePostRequest{Content: strPtr("x")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, repo.calls["Update"])

	updated, err := s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{Content: strPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, "x", updated.Content)
	assert.Equal(t, post.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))
	assert.Equal(t, alice, updated.AuthorID)
}

func TestUpdate_ExistenceBeforeOwnership(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)

	// Any principal gets NotFound for a missing id, never Forbidden
	for _, p := range []identity.Principal{identity.User(alice), identity.User(bob)} {
		_, err := s.Update(context.Background(), p, 9999, UpdatePostRequest{Content: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)

		err = s.Delete(context.Background(), p, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestUpdate_Unauthenticated(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)
	post := createPost(t, s, alice, "hello")

	_, err := s.Update(context.Background(), identity.Anonymous, post.ID, UpdatePostRequest{Content: strPtr("x")})
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestUpdate_InvalidContent(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)
	post := createPost(t, s, alice, "hello")

	_, err := s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{Content: strPtr("")})
	assert.True(t, IsValidationError(err))

	got, err := s.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
}

func TestUpdate_ReplaceRequiresContent(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)
	post := createPost(t, s, alice, "hello")

	_, err := s.Update(context.Background(), identity.User(bob), post.ID, UpdatePostRequest{Replace: true})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{Replace: true, Image: strPtr("a.png")})
	assert.True(t, IsValidationError(err))

	updated, err := s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{Replace: true, Content: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)
}

func TestUpdate_PartialAndClearImage(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)
	post, err := s.Create(context.Background(), identity.User(alice), CreatePostRequest{Content: "hello", Image: strPtr("a.png")})
	require.NoError(t, err)

	// Image only: content untouched
	updated, err := s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{Image: strPtr("b.png")})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)
	assert.Equal(t, "b.png", *updated.Image)

	updated, err = s.Update(context.Background(), identity.User(alice), post.ID, UpdatePostRequest{ClearImage: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Image)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepository()
	s := NewPostService(repo, 10)
	post := createPost(t, s, alice, "hello")

	err := s.Delete(context.Background(), identity.User(bob), post.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, repo.calls["Delete"])

	err = s.Delete(context.Background(), identity.Anonymous, post.ID)
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	require.NoError(t, s.Delete(context.Background(), identity.User(alice), post.ID))

	_, err = s.Get(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirstAndPaging(t *testing.T) {
	repo := newFakeRepository()
	s := NewPostService(repo, 2)
	for _, c := range []string{"one", "two", "three"} {
		createPost(t, s, alice, c)
	}

	page1, err := s.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page1.Posts, 2)
	assert.Equal(t, "three", page1.Posts[0].Content)
	assert.Equal(t, "two", page1.Posts[1].Content)
	assert.Equal(t, 3, page1.Total)
	assert.True(t, page1.HasNext())
	assert.False(t, page1.HasPrevious())

	page2, err := s.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, page2.Posts, 1)
	assert.Equal(t, "one", page2.Posts[0].Content)
	assert.False(t, page2.HasNext())
	assert.True(t, page2.HasPrevious())

	_, err = s.List(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = s.List(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestList_HugePageIsInvalid(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)
	createPost(t, s, alice, "one")

	// (page-1)*10 would wrap to a negative offset
	for _, page := range []int{922337203685477582, math.MaxInt} {
		_, err := s.List(context.Background(), page)
		assert.ErrorIs(t, err, ErrInvalidPage, "page %d", page)
	}
}

func TestList_EmptyStorePastFirstPage(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)

	_, err := s.List(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestList_EmptyFirstPage(t *testing.T) {
	s := NewPostService(newFakeRepository(), 10)

	page, err := s.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 0, page.Total)
}

func TestList_StorageError(t *testing.T) {
	repo := newFakeRepository()
	repo.listErr = errors.New("connection reset")
	s := NewPostService(repo, 10)

	_, err := s.List(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
