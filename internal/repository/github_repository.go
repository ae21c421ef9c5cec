package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/internal/domain"
)

// GitHubAttachmentRepository defines the interface for GitHub attachment data access
type GitHubAttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.GitHubAttachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GitHubAttachment, error)
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.GitHubAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gitHubAttachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewGitHubAttachmentRepository creates a new instance of GitHubAttachmentRepository
func NewGitHubAttachmentRepository(db *gorm.DB) GitHubAttachmentRepository {
	return &gitHubAttachmentRepositoryImpl{db: db}
}

func (r *gitHubAttachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.GitHubAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *gitHubAttachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.GitHubAttachment, error) {
	var attachment domain.GitHubAttachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *gitHubAttachmentRepositoryImpl) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.GitHubAttachment, error) {
	var attachments []*domain.GitHubAttachment
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *gitHubAttachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.GitHubAttachment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GitHubRepoRepository caches the repositories a user can see on GitHub
type GitHubRepoRepository interface {
	UpsertForUser(ctx context.Context, repos []*domain.GitHubRepository) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GitHubRepository, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GitHubRepository, error)
}

type gitHubRepoRepositoryImpl struct {
	db *gorm.DB
}

// NewGitHubRepoRepository creates a new instance of GitHubRepoRepository
func NewGitHubRepoRepository(db *gorm.DB) GitHubRepoRepository {
	return &gitHubRepoRepositoryImpl{db: db}
}

// UpsertForUser inserts repos or refreshes the cached metadata keyed by (user_id, github_id).
// On return every element carries the ID of its stored row.
func (r *gitHubRepoRepositoryImpl) UpsertForUser(ctx context.Context, repos []*domain.GitHubRepository) error {
	if len(repos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, repo := range repos {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "github_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"full_name", "name", "owner", "private", "url",
					"description", "language", "stars", "forks", "updated_at",
				}),
			}).Create(repo).Error
			if err != nil {
				return err
			}

			var stored domain.GitHubRepository
			if err := tx.Where("user_id = ? AND github_id = ?", repo.UserID, repo.GitHubID).
				First(&stored).Error; err != nil {
				return err
			}
			repo.ID = stored.ID
			repo.CreatedAt = stored.CreatedAt
		}
		return nil
	})
}

func (r *gitHubRepoRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.GitHubRepository, error) {
	var repo domain.GitHubRepository
	if err := r.db.WithContext(ctx).First(&repo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &repo, nil
}

func (r *gitHubRepoRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GitHubRepository, error) {
	var repos []*domain.GitHubRepository
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("full_name ASC").
		Find(&repos).Error; err != nil {
		return nil, err
	}
	return repos, nil
}
