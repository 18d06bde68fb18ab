package repository

import (
	"nostalgic-food-map/models"

	"gorm.io/gorm"
)

// Comments lists the comments of a post oldest first, with their authors.
func Comments(tx *gorm.DB, postID string) ([]models.CommentView, error) {
	views := []models.CommentView{}
	err := tx.Table("comments").
		Select("comments.id, comments.post_id, comments.content, comments.created_at, comments.author_id, COALESCE(users.name, '') AS author_name, COALESCE(users.email, '') AS author_email").
		Joins("LEFT JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}

	for i := range views {
		views[i].AuthorName = views[i].DisplayAuthor()
	}
	return views, nil
}
