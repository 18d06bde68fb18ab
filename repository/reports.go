package repository

import (
	"nostalgic-food-map/models"

	"gorm.io/gorm"
)

func ReportedBy(tx *gorm.DB, postID, userID string) (bool, error) {
	var count int64
	err := tx.Model(&models.Report{}).Where("post_id = ? AND reporter_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// ReportViews lists every report newest first, joined with the post title
// and the reporter.
func ReportViews(tx *gorm.DB) ([]models.ReportView, error) {
	views := []models.ReportView{}
	err := tx.Table("reports").
		Select("reports.id, reports.post_id, COALESCE(posts.title, '') AS post_title, reports.reporter_id, COALESCE(users.name, '') AS reporter_name, COALESCE(users.email, '') AS reporter_email, reports.reason, reports.resolved, reports.created_at").
		Joins("LEFT JOIN posts ON posts.id = reports.post_id").
		Joins("LEFT JOIN users ON users.id = reports.reporter_id").
		Order("reports.created_at DESC").
		Scan(&views).Error
	return views, err
}
