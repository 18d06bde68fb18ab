package models

import (
	"time"
)

type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;uniqueIndex:idx_likes_post_user"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeState is what a client displays for one post: its count and whether
// the viewer is a member of the like set.
type LikeState struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"likesCount"`
}

// Toggle flips membership and moves the count by exactly one.
func (s LikeState) Toggle() LikeState {
	if s.Liked {
		next := s.Count - 1
		if next < 0 {
			next = 0
		}
		return LikeState{Liked: false, Count: next}
	}
	return LikeState{Liked: true, Count: s.Count + 1}
}

// Reconcile replaces an optimistic state with the authoritative one.
// The server always wins.
func (s LikeState) Reconcile(server LikeState) LikeState {
	return server
}
