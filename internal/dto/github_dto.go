package dto

import (
	"time"

	"github.com/google/uuid"
)

// GitHubConnectionResponse reports whether the caller linked a GitHub account
type GitHubConnectionResponse struct {
	Connected       bool       `json:"connected"`
	GitHubUsername  *string    `json:"githubUsername"`
	GitHubAvatarURL *string    `json:"githubAvatarUrl"`
	ConnectedAt     *time.Time `json:"connectedAt"`
}

// GitHubRepositoryResponse is one cached repository
type GitHubRepositoryResponse struct {
	ID          uuid.UUID `json:"id"`
	GitHubID    int64     `json:"githubId"`
	FullName    string    `json:"fullName"`
	Name        string    `json:"name"`
	Owner       string    `json:"owner"`
	Private     bool      `json:"private"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
}

type GitHubBranchInfo struct {
	Name          string `json:"name"`
	LastCommitSHA string `json:"lastCommitSha"`
}

type GitHubPullInfo struct {
	Title      string `json:"title"`
	PullNumber int    `json:"pullNumber"`
}

type GitHubIssueInfo struct {
	Title       string `json:"title"`
	IssueNumber int    `json:"issueNumber"`
}

type GitHubCommitInfo struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// GitHubRepositoryInfoResponse aggregates branches, pull requests, issues and recent commits
type GitHubRepositoryInfoResponse struct {
	Repository *GitHubRepositoryResponse `json:"repository"`
	Branches   []GitHubBranchInfo        `json:"branches"`
	Pulls      []GitHubPullInfo          `json:"pulls"`
	Issues     []GitHubIssueInfo         `json:"issues"`
	Commits    []GitHubCommitInfo        `json:"commits"`
}

// GitHubAttachRequest links a pull request, issue or commit to a task.
// Commits need sha, pull requests and issues need number.
type GitHubAttachRequest struct {
	Type   string  `json:"type" binding:"required" example:"pull_request"`
	Number *int    `json:"number,omitempty" binding:"omitempty,min=1"`
	SHA    *string `json:"sha,omitempty" binding:"omitempty,hexadecimal,min=4,max=64"`
}

// GitHubAttachmentResponse represents the attachment response
type GitHubAttachmentResponse struct {
	TaskID       uuid.UUID `json:"taskId"`
	AttachmentID uuid.UUID `json:"attachmentId"`
	Type         string    `json:"type"`
	Number       *int      `json:"number,omitempty"`
	SHA          *string   `json:"sha,omitempty"`
	CreatedBy    uuid.UUID `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}
