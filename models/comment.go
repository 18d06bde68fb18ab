package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;index"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;type:uuid"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}

type CommentCreate struct {
	Content string `json:"content"`
}

// CommentView is a comment joined with its author.
type CommentView struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"-"`
}

// DisplayAuthor mirrors User.DisplayName for joined rows.
func (c CommentView) DisplayAuthor() string {
	if c.AuthorName != "" {
		return c.AuthorName
	}
	return c.AuthorEmail
}
