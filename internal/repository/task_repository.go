package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/internal/domain"
)

// TaskRepository defines the interface for task and assignment data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
	Delete(ctx context.Context, task *domain.Task) error
	AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	FindAssignees(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAssignee, error)
}

type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create inserts the task with its initial assignees and recounts the card's tasks
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignees := task.Assignees
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		for i := range assignees {
			assignees[i].TaskID = task.ID
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignees[i]).Error; err != nil {
				return err
			}
		}
		task.Assignees = assignees
		return recountTasks(tx, task.CardID)
	})
}

func recountTasks(tx *gorm.DB, cardID uuid.UUID) error {
	var count int64
	if err := tx.Model(&domain.Task{}).Where("card_id = ?", cardID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Card{}).Where("id = ?", cardID).UpdateColumn("tasks_count", count).Error
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Preload("Assignees").First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignees").
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the mutable columns. card_id, board_id and owner_id are never written here.
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).
		Model(task).
		Select("title", "description", "status", "priority", "deadline", "updated_at").
		Updates(task).Error
}

func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the task with its assignments and attachments and recounts the card's tasks
func (r *taskRepositoryImpl) Delete(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&domain.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&domain.GitHubAttachment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", task.ID).Delete(&domain.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recountTasks(tx, task.CardID)
	})
}

// AddAssignee is idempotent
func (r *taskRepositoryImpl) AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.TaskAssignee{TaskID: taskID, UserID: userID}).Error
}

// RemoveAssignee is idempotent
func (r *taskRepositoryImpl) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&domain.TaskAssignee{}).Error
}

func (r *taskRepositoryImpl) FindAssignees(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAssignee, error) {
	var assignees []domain.TaskAssignee
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&assignees).Error; err != nil {
		return nil, err
	}
	return assignees, nil
}
