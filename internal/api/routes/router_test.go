package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/auth"
	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/feed"
	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/likes"
	"Socialsphere/internal/core/posts"
)

// stubFeed records the principal and scope each call saw
type stubFeed struct {
	feed.Service
	principal identity.Principal
	postScope int64
}

func (s *stubFeed) ListPosts(ctx context.Context, p identity.Principal, page int) (*feed.PostPage, error) {
	s.principal = p
	return &feed.PostPage{Results: []feed.PostView{}, Page: page}, nil
}

func (s *stubFeed) CreatePost(ctx context.Context, p identity.Principal, req posts.CreatePostRequest) (*feed.PostView, error) {
	s.principal = p
	return &feed.PostView{ID: 1, Content: req.Content}, nil
}

func (s *stubFeed) GetComment(ctx context.Context, postID, id int64) (*feed.CommentView, error) {
	s.postScope = postID
	return &feed.CommentView{ID: id}, nil
}

func (s *stubFeed) ListComments(ctx context.Context, postID int64) ([]feed.CommentView, error) {
	return []feed.CommentView{}, nil
}

func (s *stubFeed) CreateComment(ctx context.Context, p identity.Principal, postID int64, req comments.CreateCommentRequest) (*feed.CommentView, error) {
	return &feed.CommentView{PostID: postID}, nil
}

type stubLikes struct{ likes.Service }

func (stubLikes) Toggle(ctx context.Context, p identity.Principal, postID int64) (*likes.ToggleResult, error) {
	return &likes.ToggleResult{Outcome: likes.OutcomeLiked, LikesCount: 1}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubFeed, string) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour, nil)
	pair, err := issuer.IssuePair(4)
	require.NoError(t, err)

	f := &stubFeed{}
	router := NewRouter(Dependencies{
		Feed:           f,
		Likes:          stubLikes{},
		Tokens:         issuer,
		AuthMiddleware: middleware.NewAuthMiddleware(issuer),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return router, f, pair.Access
}

func do(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)
	w := do(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestWritesRequireAuth(t *testing.T) {
	router, _, token := newTestRouter(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodPatch, "/api/posts/1"},
		{http.MethodDelete, "/api/posts/1"},
		{http.MethodPost, "/api/posts/1/like"},
		{http.MethodPost, "/api/posts/1/comments"},
		{http.MethodDelete, "/api/posts/comments/3"},
		{http.MethodGet, "/api/users/me"},
	} {
		w := do(router, tc.method, tc.target, `{"content":"x"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.target)
	}

	w := do(router, http.MethodPost, "/api/posts", `{"content":"x"}`, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/api/posts/1/like", "", token)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestOptionalAuthOnReads(t *testing.T) {
	router, f, token := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/posts", "", "").Code)
	assert.False(t, f.principal.Authenticated())

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/posts", "", token).Code)
	assert.Equal(t, int64(4), f.principal.UserID)
}

func TestTrailingSlashes(t *testing.T) {
	router, _, token := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/posts/", "", "").Code)
	assert.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/posts/", `{"content":"x"}`, token).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/posts/1/comments/", "", "").Code)
}

func TestCommentRouteScopes(t *testing.T) {
	router, f, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/posts/comments/3", "", "").Code)
	assert.Equal(t, int64(0), f.postScope)

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/posts/8/comments/3", "", "").Code)
	assert.Equal(t, int64(8), f.postScope)
}

func TestCORSPreflight(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
