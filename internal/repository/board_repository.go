package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/internal/domain"
)

// ErrOwnerMembership is returned when the board owner would leave the member set
var ErrOwnerMembership = errors.New("board owner cannot be removed from members")

// BoardRepository defines the interface for board and membership data access
type BoardRepository interface {
	CreateWithOwner(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	AddMember(ctx context.Context, boardID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error
	DeleteCascade(ctx context.Context, boardID uuid.UUID) error
}

type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// CreateWithOwner inserts the board and the owner's membership in one transaction
func (r *boardRepositoryImpl) CreateWithOwner(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(board).Error; err != nil {
			return err
		}
		owner := domain.BoardMember{BoardID: board.ID, UserID: board.OwnerID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&owner).Error; err != nil {
			return err
		}
		board.Members = []domain.BoardMember{owner}
		return nil
	})
}

// FindByID loads a board with its member set
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).Preload("Members").First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByUser returns boards the user owns or belongs to, each board once, newest first
func (r *boardRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	memberOf := r.db.Model(&domain.BoardMember{}).Select("board_id").Where("user_id = ?", userID)

	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update writes name and description; owner and membership are not touched
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).
		Model(board).
		Select("name", "description", "updated_at").
		Updates(board).Error
}

// AddMember is idempotent: adding an existing member is a no-op
func (r *boardRepositoryImpl) AddMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return addMember(r.db.WithContext(ctx), boardID, userID)
}

func addMember(tx *gorm.DB, boardID, userID uuid.UUID) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.BoardMember{BoardID: boardID, UserID: userID}).Error
}

// RemoveMember drops a member, their task assignments and their card list_member entries on the board
func (r *boardRepositoryImpl) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board domain.Board
		if err := tx.First(&board, "id = ?", boardID).Error; err != nil {
			return err
		}
		if board.OwnerID == userID {
			return ErrOwnerMembership
		}

		result := tx.Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&domain.BoardMember{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var taskIDs []uuid.UUID
		if err := tx.Model(&domain.Task{}).Where("board_id = ?", boardID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ? AND user_id = ?", taskIDs, userID).Delete(&domain.TaskAssignee{}).Error; err != nil {
				return err
			}
		}

		return pruneListMember(tx, boardID, userID)
	})
}

// pruneListMember drops userID from list_member of every card on the board
func pruneListMember(tx *gorm.DB, boardID, userID uuid.UUID) error {
	var cards []domain.Card
	if err := tx.Select("id", "list_member").Where("board_id = ?", boardID).Find(&cards).Error; err != nil {
		return err
	}

	for _, card := range cards {
		kept := make(datatypes.JSONSlice[uuid.UUID], 0, len(card.ListMember))
		for _, id := range card.ListMember {
			if id != userID {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(card.ListMember) {
			continue
		}
		if err := tx.Model(&domain.Card{}).Where("id = ?", card.ID).Update("list_member", kept).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteCascade removes the board and everything under it in one transaction
func (r *boardRepositoryImpl) DeleteCascade(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []uuid.UUID
		if err := tx.Model(&domain.Task{}).Where("board_id = ?", boardID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.TaskAssignee{}).Error; err != nil {
				return err
			}
		}

		for _, model := range []interface{}{
			&domain.GitHubAttachment{},
			&domain.Task{},
			&domain.Card{},
			&domain.Invitation{},
			&domain.BoardMember{},
		} {
			if err := tx.Where("board_id = ?", boardID).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", boardID).Delete(&domain.Board{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
