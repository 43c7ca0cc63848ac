package comments

import (
	"time"
)

// MaxContentLength bounds comment content, counted in code points
const MaxContentLength = 500

// Comment is a stored comment row. AuthorID and PostID never change after Create.
type Comment struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Content   string    `json:"content" db:"content"`
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	PostID    int64     `json:"post" db:"post_id"`
}

// CreateCommentRequest is the input for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateCommentRequest is the input for editing a comment
type UpdateCommentRequest struct {
	Content *string `json:"content,omitempty"`
	// Replace marks a full update, which must carry Content
	Replace bool `json:"-"`
}
