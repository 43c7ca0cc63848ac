package likes

import "time"

// Like records that a user likes a post. At most one per (user, post).
type Like struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user" db:"user_id"`
	PostID    int64     `json:"post" db:"post_id"`
}

// Outcome is the effect a toggle had on the like relation
type Outcome string

const (
	OutcomeLiked   Outcome = "liked"
	OutcomeUnliked Outcome = "unliked"
)

// ToggleResult is returned by a successful toggle. LikesCount is read in the
// same transaction as the change.
type ToggleResult struct {
	Outcome    Outcome `json:"status"`
	LikesCount int     `json:"likes_count"`
}

// Status is a post's like state as seen by one caller
type Status struct {
	Liked      bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// Message is the human readable summary returned to clients
func (r ToggleResult) Message() string {
	if r.Outcome == OutcomeLiked {
		return "Post liked"
	}
	return "Post unliked"
}
