package feed

import (
	"context"

	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/posts"
	"Socialsphere/internal/core/users"
)

// EngagementReader fetches derived post fields in batch
type EngagementReader interface {
	// PostStats returns like and comment counts; ids without rows map to zero
	PostStats(ctx context.Context, postIDs []int64) (map[int64]Stats, error)

	// LikedPosts returns the subset of postIDs the user likes
	LikedPosts(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

// AuthorResolver resolves public author projections
type AuthorResolver interface {
	GetPublicByIDs(ctx context.Context, ids []int64) (map[int64]users.PublicUser, error)
}

// Service assembles client views of posts and comments. Writes are delegated
// to the posts and comments services, which own authorization.
type Service interface {
	ListPosts(ctx context.Context, principal identity.Principal, page int) (*PostPage, error)
	GetPost(ctx context.Context, principal identity.Principal, id int64) (*PostDetail, error)
	CreatePost(ctx context.Context, principal identity.Principal, req posts.CreatePostRequest) (*PostView, error)
	UpdatePost(ctx context.Context, principal identity.Principal, id int64, req posts.UpdatePostRequest) (*PostView, error)
	DeletePost(ctx context.Context, principal identity.Principal, id int64) error

	ListComments(ctx context.Context, postID int64) ([]CommentView, error)
	CreateComment(ctx context.Context, principal identity.Principal, postID int64, req comments.CreateCommentRequest) (*CommentView, error)

	// The comment methods below take a postID scope; zero means any post.
	// A comment outside the scope is reported as not found.
	GetComment(ctx context.Context, postID, id int64) (*CommentView, error)
	UpdateComment(ctx context.Context, principal identity.Principal, postID, id int64, req comments.UpdateCommentRequest) (*CommentView, error)
	DeleteComment(ctx context.Context, principal identity.Principal, postID, id int64) error
}
