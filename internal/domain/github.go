package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GitHubAttachmentKind is the kind of GitHub entity linked to a task
type GitHubAttachmentKind string

const (
	GitHubAttachmentPullRequest GitHubAttachmentKind = "pull_request"
	GitHubAttachmentCommit      GitHubAttachmentKind = "commit"
	GitHubAttachmentIssue       GitHubAttachmentKind = "issue"
)

// IsValid reports whether k is a supported kind
func (k GitHubAttachmentKind) IsValid() bool {
	switch k {
	case GitHubAttachmentPullRequest, GitHubAttachmentCommit, GitHubAttachmentIssue:
		return true
	}
	return false
}

// GitHubAttachment links a pull request, commit or issue to a task.
// Number is set for pull requests and issues, SHA for commits.
type GitHubAttachment struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"attachmentId"`
	TaskID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_github_attachments_task_id" json:"taskId"`
	CardID    uuid.UUID            `gorm:"type:uuid;not null" json:"cardId"`
	BoardID   uuid.UUID            `gorm:"type:uuid;not null;index:idx_github_attachments_board_id" json:"boardId"`
	Kind      GitHubAttachmentKind `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Number    *int                 `json:"number,omitempty"`
	SHA       *string              `gorm:"column:sha;type:varchar(64)" json:"sha,omitempty"`
	CreatedBy uuid.UUID            `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt time.Time            `gorm:"not null;index" json:"createdAt"`
}

// TableName specifies the table name for GitHubAttachment
func (GitHubAttachment) TableName() string {
	return "github_attachments"
}

// BeforeCreate assigns an ID when the caller did not set one
func (a *GitHubAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// GitHubRepository caches a repository the user can access on GitHub
type GitHubRepository struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_github_repositories_user_repo,priority:1" json:"userId"`
	GitHubID    int64     `gorm:"column:github_id;not null;uniqueIndex:uq_github_repositories_user_repo,priority:2" json:"githubId"`
	FullName    string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Owner       string    `gorm:"type:varchar(255);not null" json:"owner"`
	Private     bool      `json:"private"`
	URL         string    `gorm:"type:text" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	Language    string    `gorm:"type:varchar(100)" json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
}

// TableName specifies the table name for GitHubRepository
func (GitHubRepository) TableName() string {
	return "github_repositories"
}
