package posts

import (
	"time"
)

// Limits on post fields, counted in code points
const (
	MaxContentLength = 1000
	MaxImageLength   = 255
)

// Post is a stored post row. AuthorID and CreatedAt never change after Create.
type Post struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Image     *string   `json:"image" db:"image"`
	Content   string    `json:"content" db:"content"`
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
}

// CreatePostRequest is the input for creating a post. The author always comes
// from the principal, never from the request.
type CreatePostRequest struct {
	Image   *string `json:"image,omitempty"`
	Content string  `json:"content"`
}

// UpdatePostRequest carries the mutable fields; nil fields are left unchanged
type UpdatePostRequest struct {
	Content *string `json:"content,omitempty"`
	Image   *string `json:"image,omitempty"`
	// ClearImage removes the image reference (image: null in a request body)
	ClearImage bool `json:"-"`
	// Replace marks a full update, which must carry Content
	Replace bool `json:"-"`
}

// Page is one page of the newest-first post listing
type Page struct {
	Posts  []*Post
	Total  int
	Number int
	Size   int
}

// HasNext reports whether a later page exists
func (p *Page) HasNext() bool {
	return p.Number*p.Size < p.Total
}

// HasPrevious reports whether an earlier page exists
func (p *Page) HasPrevious() bool {
	return p.Number > 1
}
