package feed

import (
	"context"
	"fmt"

	"Socialsphere/internal/core/comments"
	"Socialsphere/internal/core/identity"
	"Socialsphere/internal/core/posts"
	"Socialsphere/internal/core/users"
)

type feedService struct {
	posts      posts.Service
	comments   comments.Service
	authors    AuthorResolver
	engagement EngagementReader
}

// NewFeedService creates the view-assembling service
func NewFeedService(postService posts.Service, commentService comments.Service, authors AuthorResolver, engagement EngagementReader) Service {
	return &feedService{
		posts:      postService,
		comments:   commentService,
		authors:    authors,
		engagement: engagement,
	}
}

func (s *feedService) ListPosts(ctx context.Context, principal identity.Principal, page int) (*PostPage, error) {
	p, err := s.posts.List(ctx, page)
	if err != nil {
		return nil, err
	}

	views, err := s.assemblePosts(ctx, principal, p.Posts)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Results:     views,
		Count:       p.Total,
		Page:        p.Number,
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}, nil
}

func (s *feedService) GetPost(ctx context.Context, principal identity.Principal, id int64) (*PostDetail, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.assemblePost(ctx, principal, post)
	if err != nil {
		return nil, err
	}

	list, err := s.comments.ListForPost(ctx, id)
	if err != nil {
		return nil, err
	}
	commentViews, err := s.assembleComments(ctx, list)
	if err != nil {
		return nil, err
	}

	return &PostDetail{PostView: *view, Comments: commentViews}, nil
}

func (s *feedService) CreatePost(ctx context.Context, principal identity.Principal, req posts.CreatePostRequest) (*PostView, error) {
	post, err := s.posts.Create(ctx, principal, req)
	if err != nil {
		return nil, err
	}
	return s.assemblePost(ctx, principal, post)
}

func (s *feedService) UpdatePost(ctx context.Context, principal identity.Principal, id int64, req posts.UpdatePostRequest) (*PostView, error) {
	post, err := s.posts.Update(ctx, principal, id, req)
	if err != nil {
		return nil, err
	}
	return s.assemblePost(ctx, principal, post)
}

func (s *feedService) DeletePost(ctx context.Context, principal identity.Principal, id int64) error {
	return s.posts.Delete(ctx, principal, id)
}

func (s *feedService) ListComments(ctx context.Context, postID int64) ([]CommentView, error) {
	list, err := s.comments.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.assembleComments(ctx, list)
}

func (s *feedService) CreateComment(ctx context.Context, principal identity.Principal, postID int64, req comments.CreateCommentRequest) (*CommentView, error) {
	c, err := s.comments.Create(ctx, principal, postID, req)
	if err != nil {
		return nil, err
	}
	return s.assembleComment(ctx, c)
}

func (s *feedService) GetComment(ctx context.Context, postID, id int64) (*CommentView, error) {
	c, err := s.scopedComment(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	return s.assembleComment(ctx, c)
}

func (s *feedService) UpdateComment(ctx context.Context, principal identity.Principal, postID, id int64, req comments.UpdateCommentRequest) (*CommentView, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}
	if _, err := s.scopedComment(ctx, postID, id); err != nil {
		return nil, err
	}
	c, err := s.comments.Update(ctx, principal, id, req)
	if err != nil {
		return nil, err
	}
	return s.assembleComment(ctx, c)
}

func (s *feedService) DeleteComment(ctx context.Context, principal identity.Principal, postID, id int64) error {
	if !principal.Authenticated() {
		return identity.ErrUnauthenticated
	}
	if _, err := s.scopedComment(ctx, postID, id); err != nil {
		return err
	}
	return s.comments.Delete(ctx, principal, id)
}

func (s *feedService) scopedComment(ctx context.Context, postID, id int64) (*comments.Comment, error) {
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if postID != 0 && c.PostID != postID {
		return nil, comments.ErrCommentNotFound
	}
	return c, nil
}

func (s *feedService) assemblePost(ctx context.Context, principal identity.Principal, post *posts.Post) (*PostView, error) {
	views, err := s.assemblePosts(ctx, principal, []*posts.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// assemblePosts fills derived fields with one query per concern, not per post
func (s *feedService) assemblePosts(ctx context.Context, principal identity.Principal, list []*posts.Post) ([]PostView, error) {
	views := make([]PostView, 0, len(list))
	if len(list) == 0 {
		return views, nil
	}

	ids := make([]int64, len(list))
	authorIDs := make([]int64, len(list))
	for i, p := range list {
		ids[i] = p.ID
		authorIDs[i] = p.AuthorID
	}

	authors, err := s.authors.GetPublicByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}
	stats, err := s.engagement.PostStats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load post stats: %w", err)
	}
	liked := map[int64]bool{}
	if principal.Authenticated() {
		liked, err = s.engagement.LikedPosts(ctx, principal.UserID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load liked posts: %w", err)
		}
	}

	for _, p := range list {
		st := stats[p.ID]
		views = append(views, PostView{
			ID:            p.ID,
			Author:        authorOf(authors, p.AuthorID),
			Content:       p.Content,
			Image:         p.Image,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
			LikesCount:    st.Likes,
			CommentsCount: st.Comments,
			IsLiked:       liked[p.ID],
		})
	}
	return views, nil
}

func (s *feedService) assembleComment(ctx context.Context, c *comments.Comment) (*CommentView, error) {
	views, err := s.assembleComments(ctx, []*comments.Comment{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *feedService) assembleComments(ctx context.Context, list []*comments.Comment) ([]CommentView, error) {
	views := make([]CommentView, 0, len(list))
	if len(list) == 0 {
		return views, nil
	}

	authorIDs := make([]int64, len(list))
	for i, c := range list {
		authorIDs[i] = c.AuthorID
	}
	authors, err := s.authors.GetPublicByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}

	for _, c := range list {
		views = append(views, CommentView{
			ID:        c.ID,
			Author:    authorOf(authors, c.AuthorID),
			PostID:    c.PostID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return views, nil
}

// authorOf falls back to a bare id when the author row is gone
func authorOf(authors map[int64]users.PublicUser, id int64) users.PublicUser {
	if a, ok := authors[id]; ok {
		return a
	}
	return users.PublicUser{ID: id}
}
