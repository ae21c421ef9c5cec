package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error)
	FindByBoardAndOwner(ctx context.Context, boardID, ownerID uuid.UUID) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	DeleteCascade(ctx context.Context, cardID uuid.UUID) error
}

type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepositoryImpl) FindByBoardAndOwner(ctx context.Context, boardID, ownerID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND owner_id = ?", boardID, ownerID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Update writes the mutable columns. board_id, owner_id and tasks_count are never written here.
func (r *cardRepositoryImpl) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).
		Model(card).
		Select("name", "description", "list_member", "updated_at").
		Updates(card).Error
}

// DeleteCascade removes the card, its tasks and their assignments and attachments
func (r *cardRepositoryImpl) DeleteCascade(ctx context.Context, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []uuid.UUID
		if err := tx.Model(&domain.Task{}).Where("card_id = ?", cardID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.TaskAssignee{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.GitHubAttachment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&domain.Task{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", cardID).Delete(&domain.Card{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
