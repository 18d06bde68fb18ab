package models

import "time"

type Role string

const (
	AdminRole Role = "admin"
	UserRole  Role = "user"
)

// User is the public profile of an account. The id is the subject issued
// by the auth provider and never changes.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl" gorm:"column:avatar_url"`
	RepScore  int       `json:"repScore" gorm:"column:rep_score"`
	Role      Role      `json:"role" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName falls back to the email when the provider gave no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// UserSummary is the author/reporter shape embedded in other responses.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type UserProfile struct {
	User  User          `json:"user"`
	Posts []PostSummary `json:"posts"`
}
