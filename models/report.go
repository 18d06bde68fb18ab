package models

import "time"

// Report flags a post. Resolved only ever moves from false to true.
type Report struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID     string    `json:"postId" gorm:"column:post_id;type:uuid;index"`
	ReporterID string    `json:"reporterId" gorm:"column:reporter_id;type:uuid"`
	Reason     string    `json:"reason" gorm:"not null"`
	Resolved   bool      `json:"resolved" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}

type ReportCreate struct {
	Reason string `json:"reason"`
}

// ReportView is a report joined with the post title and the reporter.
type ReportView struct {
	ID            string    `json:"id"`
	PostID        string    `json:"postId"`
	PostTitle     string    `json:"postTitle"`
	ReporterID    string    `json:"reporterId"`
	ReporterName  string    `json:"reporterName"`
	ReporterEmail string    `json:"reporterEmail"`
	Reason        string    `json:"reason"`
	Resolved      bool      `json:"resolved"`
	CreatedAt     time.Time `json:"createdAt"`
}
