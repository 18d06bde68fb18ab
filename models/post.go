package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;type:uuid"`
	StoreID   *string   `json:"storeId" gorm:"column:store_id;type:uuid"`
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Post) TableName() string {
	return "posts"
}

// PostImage links a post to an object in the image bucket. ImageURL holds
// the object key, or an absolute URL for providers that return one.
type PostImage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;index"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostImage) TableName() string {
	return "post_images"
}

// PostSummary is a list entry: feed, store page and profile page.
type PostSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AuthorID  string    `json:"authorId"`
	StoreID   *string   `json:"storeId"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostDetail struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	StoreID      *string       `json:"storeId"`
	CreatedAt    time.Time     `json:"createdAt"`
	Images       []string      `json:"images"`
	Author       *UserSummary  `json:"author"`
	Comments     []CommentView `json:"comments"`
	LikesCount   int64         `json:"likesCount"`
	LikedByMe    bool          `json:"likedByMe"`
	ReportedByMe bool          `json:"reportedByMe"`
}
