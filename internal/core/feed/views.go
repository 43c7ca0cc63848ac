package feed

import (
	"time"

	"Socialsphere/internal/core/users"
)

// Stats holds the derived counters of a post
type Stats struct {
	Likes    int
	Comments int
}

// PostView is a post as returned to clients, with derived fields filled in
type PostView struct {
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Image         *string          `json:"image"`
	Author        users.PublicUser `json:"author"`
	Content       string           `json:"content"`
	ID            int64            `json:"id"`
	LikesCount    int              `json:"likes_count"`
	CommentsCount int              `json:"comments_count"`
	IsLiked       bool             `json:"is_liked"`
}

// PostDetail is a single post with its comments embedded, oldest first
type PostDetail struct {
	PostView
	Comments []CommentView `json:"comments"`
}

// CommentView is a comment as returned to clients
type CommentView struct {
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Author    users.PublicUser `json:"author"`
	Content   string           `json:"content"`
	ID        int64            `json:"id"`
	PostID    int64            `json:"post"`
}

// PostPage is one page of the post listing
type PostPage struct {
	Results     []PostView
	Count       int
	Page        int
	HasNext     bool
	HasPrevious bool
}
