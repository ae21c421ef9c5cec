package domain

import (
	"time"
)

// User represents a registered account
type User struct {
	BaseModel
	Email                string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName            string     `gorm:"type:varchar(100);not null;default:''" json:"firstName"`
	LastName             string     `gorm:"type:varchar(100);not null;default:''" json:"lastName"`
	Verified             bool       `gorm:"not null;default:false" json:"verified"`
	VerificationCodeHash string     `gorm:"type:varchar(100)" json:"-"`
	CodeExpiresAt        *time.Time `json:"-"`
	LastLogin            *time.Time `json:"lastLogin,omitempty"`

	GitHubAccessToken *string    `gorm:"column:github_access_token;type:text" json:"-"`
	GitHubUsername    *string    `gorm:"column:github_username;type:varchar(255)" json:"githubUsername,omitempty"`
	GitHubID          *int64     `gorm:"column:github_id" json:"githubId,omitempty"`
	GitHubAvatarURL   *string    `gorm:"column:github_avatar_url;type:text" json:"githubAvatarUrl,omitempty"`
	GitHubConnectedAt *time.Time `gorm:"column:github_connected_at" json:"githubConnectedAt,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// HasGitHub reports whether the user has a stored GitHub token
func (u *User) HasGitHub() bool {
	return u.GitHubAccessToken != nil && *u.GitHubAccessToken != ""
}
