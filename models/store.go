package models

import "time"

type Store struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"not null"`
	Address      string    `json:"address,omitempty"`
	FoundingYear *int      `json:"foundingYear" gorm:"column:founding_year"`
	DeepNight    bool      `json:"deepNight" gorm:"column:deep_night"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Store) TableName() string {
	return "stores"
}

type StoreDetail struct {
	Store Store         `json:"store"`
	Posts []PostSummary `json:"posts"`
}
