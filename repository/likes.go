package repository

import (
	"nostalgic-food-map/models"

	"gorm.io/gorm"
)

func LikesCount(tx *gorm.DB, postID string) (int64, error) {
	var count int64
	err := tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func LikedBy(tx *gorm.DB, postID, userID string) (bool, error) {
	var count int64
	err := tx.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// LikeState is the authoritative like state of a post for one viewer.
func LikeState(tx *gorm.DB, postID, userID string) (models.LikeState, error) {
	count, err := LikesCount(tx, postID)
	if err != nil {
		return models.LikeState{}, err
	}
	if userID == "" {
		return models.LikeState{Count: count}, nil
	}
	liked, err := LikedBy(tx, postID, userID)
	if err != nil {
		return models.LikeState{}, err
	}
	return models.LikeState{Liked: liked, Count: count}, nil
}
