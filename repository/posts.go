// Package repository holds the queries shared by several handlers. Each
// function returns an explicit typed shape instead of ad hoc field lists.
package repository

import (
	"errors"

	"nostalgic-food-map/models"
	"nostalgic-food-map/utils"

	"gorm.io/gorm"
)

// PostSummaries runs query (already narrowed by the caller) ordered by
// newest first and attaches each post's first image.
func PostSummaries(query *gorm.DB) ([]models.PostSummary, error) {
	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	if len(posts) == 0 {
		return summaries, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	firstImages, err := FirstImages(query.Session(&gorm.Session{NewDB: true}), ids)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		summaries = append(summaries, models.PostSummary{
			ID:        p.ID,
			Title:     p.Title,
			AuthorID:  p.AuthorID,
			StoreID:   p.StoreID,
			ImageURL:  utils.ImageURL(firstImages[p.ID]),
			CreatedAt: p.CreatedAt,
		})
	}
	return summaries, nil
}

// FirstImages maps post id to the path of its earliest image.
func FirstImages(tx *gorm.DB, postIDs []string) (map[string]string, error) {
	var images []models.PostImage
	if err := tx.Where("post_id IN ?", postIDs).Order("created_at ASC").Find(&images).Error; err != nil {
		return nil, err
	}

	first := make(map[string]string, len(postIDs))
	for _, img := range images {
		if _, seen := first[img.PostID]; !seen {
			first[img.PostID] = img.ImageURL
		}
	}
	return first, nil
}

// PostImages returns every image path of a post, oldest first.
func PostImages(tx *gorm.DB, postID string) ([]string, error) {
	var images []models.PostImage
	if err := tx.Where("post_id = ?", postID).Order("created_at ASC").Find(&images).Error; err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, utils.ImageURL(img.ImageURL))
	}
	return urls, nil
}

// PostExists reports whether a post with id exists.
func PostExists(tx *gorm.DB, id string) (bool, error) {
	var post models.Post
	err := tx.Select("id").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
